package rail

import (
	"math"

	"github.com/ungerik/go3d/float64/mat4"
	"github.com/ungerik/go3d/float64/vec3"
)

// Tie box dimensions, in the tie's own frame (Z runs across the track).
const (
	TieHalfWidth  = 1.5
	TieHeight     = 1
	TieHalfLength = 5
)

type FaceKind int

const (
	FaceBottom FaceKind = iota
	FaceTop
	FaceLeft
	FaceRight
	FaceFront
	FaceBack
)

func (f FaceKind) String() string {
	switch f {
	case FaceBottom:
		return "bottom"
	case FaceTop:
		return "top"
	case FaceLeft:
		return "left"
	case FaceRight:
		return "right"
	case FaceFront:
		return "front"
	case FaceBack:
		return "back"
	}
	return "unknown"
}

type Face struct {
	Kind FaceKind  `json:"kind"`
	Quad [4]vec3.T `json:"quad"`
}

const (
	x0, x1 = -TieHalfWidth, TieHalfWidth
	y0, y1 = 0, TieHeight
	z0, z1 = -TieHalfLength, TieHalfLength
)

var tieFaces = [6]Face{
	{FaceBottom, [4]vec3.T{{x0, y0, z1}, {x1, y0, z1}, {x1, y0, z0}, {x0, y0, z0}}},
	{FaceTop, [4]vec3.T{{x0, y1, z1}, {x1, y1, z1}, {x1, y1, z0}, {x0, y1, z0}}},
	{FaceLeft, [4]vec3.T{{x0, y0, z1}, {x0, y1, z1}, {x0, y1, z0}, {x0, y0, z0}}},
	{FaceRight, [4]vec3.T{{x1, y0, z1}, {x1, y1, z1}, {x1, y1, z0}, {x1, y0, z0}}},
	{FaceFront, [4]vec3.T{{x0, y1, z1}, {x1, y1, z1}, {x1, y0, z1}, {x0, y0, z1}}},
	{FaceBack, [4]vec3.T{{x0, y1, z0}, {x1, y1, z0}, {x1, y0, z0}, {x0, y0, z0}}},
}

var tieCorners = [8]vec3.T{
	{x0, y0, z0}, {x1, y0, z0}, {x1, y0, z1}, {x0, y0, z1},
	{x0, y1, z0}, {x1, y1, z0}, {x1, y1, z1}, {x0, y1, z1},
}

// Tie is a cross-tie placed at a station.
type Tie struct {
	// Station is the index into Geometry.Stations.
	Station int     `json:"station"`
	Pos     vec3.T  `json:"pos"`
	AngleY  float64 `json:"angle-y"`
	Angle   float64 `json:"angle"`
	// Transform maps the tie's own frame to world space.
	Transform mat4.T `json:"transform"`
}

func newTie(i int, prev, cur *Station) Tie {
	dir := vec3.Sub(&cur.Pos, &prev.Pos)
	ay, ok := angleY(dir)
	if !ok {
		ay, _ = angleY(cur.Tangent)
	}
	a := TiltAngle(cur.Orient)
	return Tie{
		Station:   i,
		Pos:       cur.Pos,
		AngleY:    ay,
		Angle:     a,
		Transform: Placement(cur.Pos, ay, a),
	}
}

// Corners returns the eight corners of the tie in world space.
func (t *Tie) Corners() [8]vec3.T {
	var res [8]vec3.T
	for i := range tieCorners {
		res[i] = t.Transform.MulVec3(&tieCorners[i])
	}
	return res
}

// Faces returns the six faces of the tie in world space.
func (t *Tie) Faces() [6]Face {
	res := tieFaces
	for i := range res {
		for j := range res[i].Quad {
			res[i].Quad[j] = t.Transform.MulVec3(&res[i].Quad[j])
		}
	}
	return res
}

// AngleY returns the yaw in degrees between dir's horizontal part and +X.
// acos alone is unsigned, so the angle is negated for directions with z > 0
// and x ≠ 0. A vertical or zero dir gives 0.
func AngleY(dir vec3.T) float64 {
	a, _ := angleY(dir)
	return a
}

func angleY(dir vec3.T) (float64, bool) {
	h := vec3.T{dir[0], 0, dir[2]}
	l := h.Length()
	if !(l > epsilon) {
		return 0, false
	}
	a := degrees(math.Acos(clamp(dir[0] / l)))
	if (dir[0] < 0 && dir[2] > 0) || (dir[0] > 0 && dir[2] > 0) {
		a = -a
	}
	return a, true
}

// TiltAngle returns the unsigned angle in degrees between orient and +Y.
func TiltAngle(orient vec3.T) float64 {
	u := unitOr(orient, vec3.UnitY)
	return degrees(math.Acos(clamp(u[1])))
}

// Placement returns translate(pos) · rotY(angleY) · rotX(angle), angles in degrees.
func Placement(pos vec3.T, angleY, angle float64) mat4.T {
	var m mat4.T
	ry, rx := mat4.Ident, mat4.Ident
	ry.AssignYRotation(radians(angleY))
	rx.AssignXRotation(radians(angle))
	m.AssignMul(&ry, &rx)
	m.SetTranslation(&pos)
	return m
}

func clamp(cos float64) float64 {
	return math.Max(-1, math.Min(1, cos))
}

func degrees(rad float64) float64 { return rad * 180 / math.Pi }

func radians(deg float64) float64 { return deg * math.Pi / 180 }
