package scene

import (
	"fmt"
	"image/color"
	"time"

	"github.com/google/uuid"
	"github.com/ungerik/go3d/float64/vec3"
	"nyiyui.ca/hato/senro/rail"
	"nyiyui.ca/hato/senro/spline"
	"nyiyui.ca/hato/senro/track"
)

// MarkerHalfSize is half the edge length of a control point's cube.
const MarkerHalfSize = 2

var (
	MarkerColor   = color.RGBA{240, 60, 60, 255}
	SelectedColor = color.RGBA{240, 240, 30, 255}
	RailColor     = color.RGBA{40, 30, 40, 255}
	TieColor      = color.RGBA{100, 80, 100, 255}
	TieTopColor   = color.RGBA{40, 40, 40, 255}
)

// View is what the host asks to have drawn.
type View struct {
	Track  *track.Track
	Kind   spline.Kind
	Params rail.Params
	Camera Camera
	// Selected is the index of the selected control point, or -1.
	Selected int
}

type PrimitiveKind int

const (
	// Lines: every two vertices are one segment.
	Lines PrimitiveKind = iota
	// Quads: every four vertices are one quad.
	Quads
	// Cube: Vertices[0] is the centre, HalfSize the half edge length.
	Cube
)

type Role string

const (
	RoleMarker Role = "marker"
	RoleRail   Role = "rail"
	RoleTie    Role = "tie"
	RoleTieTop Role = "tie-top"
)

type Primitive struct {
	Kind     PrimitiveKind `json:"kind"`
	Role     Role          `json:"role"`
	Vertices []vec3.T      `json:"vertices"`
	HalfSize float64       `json:"half-size,omitempty"`
	// Index is the control point index for markers.
	Index int `json:"index"`
	// Color is nil when colours were not requested (shadow pass).
	Color *color.RGBA `json:"color,omitempty"`
}

type DrawList []Primitive

// Draw turns geometry into primitives. With emitColor false every Color is
// nil, so the same list can be drawn as a shadow.
func Draw(g *rail.Geometry, v View, emitColor bool) DrawList {
	paint := func(c color.RGBA) *color.RGBA {
		if !emitColor {
			return nil
		}
		return &c
	}
	dl := make(DrawList, 0, v.Track.Len()+3)
	// markers would sit right in front of the train camera
	if v.Camera != Train {
		for i, cp := range v.Track.Points {
			c := MarkerColor
			if i == v.Selected {
				c = SelectedColor
			}
			dl = append(dl, Primitive{
				Kind:     Cube,
				Role:     RoleMarker,
				Vertices: []vec3.T{cp.Pos},
				HalfSize: MarkerHalfSize,
				Index:    i,
				Color:    paint(c),
			})
		}
	}

	rails := make([]vec3.T, 0, 4*len(g.Left))
	for i := range g.Left {
		rails = append(rails, g.Right[i].A, g.Right[i].B, g.Left[i].A, g.Left[i].B)
	}
	dl = append(dl, Primitive{Kind: Lines, Role: RoleRail, Vertices: rails, Color: paint(RailColor)})

	sides := make([]vec3.T, 0, 20*len(g.Ties))
	tops := make([]vec3.T, 0, 4*len(g.Ties))
	for i := range g.Ties {
		for _, f := range g.Ties[i].Faces() {
			if f.Kind == rail.FaceTop {
				tops = append(tops, f.Quad[:]...)
			} else {
				sides = append(sides, f.Quad[:]...)
			}
		}
	}
	dl = append(dl,
		Primitive{Kind: Quads, Role: RoleTie, Vertices: sides, Color: paint(TieColor)},
		Primitive{Kind: Quads, Role: RoleTieTop, Vertices: tops, Color: paint(TieTopColor)},
	)
	return dl
}

type Stats struct {
	Stations   int `json:"stations"`
	Ties       int `json:"ties"`
	Degenerate int `json:"degenerate"`
}

// Frame is the output of one render request.
type Frame struct {
	TrackID  uuid.UUID   `json:"track-id"`
	Kind     spline.Kind `json:"kind"`
	Camera   Camera      `json:"camera"`
	Selected int         `json:"selected"`
	Time     time.Time   `json:"time"`
	Stats    Stats       `json:"stats"`
	Main     DrawList    `json:"main"`
	// Shadow is drawn a second time without colours; nil for the top camera.
	// It repeats Main's vertices, so it is not serialized.
	Shadow DrawList `json:"-"`
	// Geometry is kept for renderers that work from rails and ties directly.
	Geometry *rail.Geometry `json:"-"`
}

// Render runs one sampling pass for v and draws it.
func Render(v View) (Frame, error) {
	if v.Camera < World || v.Camera > Train {
		return Frame{}, fmt.Errorf("%s: %w", v.Camera, ErrUnsupportedCamera)
	}
	g, err := rail.Build(v.Track, v.Kind, v.Params)
	if err != nil {
		return Frame{}, fmt.Errorf("build %s: %w", v.Kind, err)
	}
	f := Frame{
		TrackID:  v.Track.ID,
		Kind:     v.Kind,
		Camera:   v.Camera,
		Selected: v.Selected,
		Time:     time.Now(),
		Stats: Stats{
			Stations:   len(g.Stations),
			Ties:       len(g.Ties),
			Degenerate: g.Degenerate,
		},
		Main:     Draw(&g, v, true),
		Geometry: &g,
	}
	if v.Camera != Top {
		f.Shadow = Draw(&g, v, false)
	}
	return f, nil
}
