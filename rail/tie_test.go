package rail

import (
	"fmt"
	"math"
	"testing"

	"github.com/ungerik/go3d/float64/vec3"
	"nyiyui.ca/hato/senro/spline"
	"nyiyui.ca/hato/senro/track/preset"
)

func TestAngleY(t *testing.T) {
	type setup struct {
		dir  vec3.T
		want float64
	}
	setups := []setup{
		{vec3.T{1, 0, 0}, 0},
		{vec3.T{1, 0, 1}, -45},
		{vec3.T{1, 0, -1}, 45},
		{vec3.T{0, 0, 1}, 90},
		{vec3.T{0, 0, -1}, 90},
		{vec3.T{-1, 0, 1}, -135},
		{vec3.T{-1, 0, -1}, 135},
		{vec3.T{-1, 0, 0}, 180},
		// only the horizontal part counts
		{vec3.T{1, 7, -1}, 45},
		{vec3.T{0, 3, 0}, 0},
		{vec3.T{}, 0},
	}
	for _, s := range setups {
		t.Run(fmt.Sprint(s.dir), func(t *testing.T) {
			if got := AngleY(s.dir); math.Abs(got-s.want) > 1e-9 {
				t.Fatalf("expected %g, got %g", s.want, got)
			}
		})
	}
}

func TestTiltAngle(t *testing.T) {
	for _, s := range []struct {
		orient vec3.T
		want   float64
	}{
		{vec3.T{0, 1, 0}, 0},
		{vec3.T{0, 4, 0}, 0},
		{vec3.T{0, 0, 1}, 90},
		{vec3.T{0, 1, 1}, 45},
		{vec3.T{0, -1, 1}, 135},
		{vec3.T{0, -2, 0}, 180},
		{vec3.T{}, 0},
	} {
		if got := TiltAngle(s.orient); math.Abs(got-s.want) > 1e-9 {
			t.Fatalf("TiltAngle(%v): expected %g, got %g", s.orient, s.want, got)
		}
	}
}

func TestPlacementTranslateOnly(t *testing.T) {
	pos := vec3.T{10, 5, -3}
	tie := Tie{Transform: Placement(pos, 0, 0)}
	for i, c := range tie.Corners() {
		want := vec3.Add(&tieCorners[i], &pos)
		if !near(c, want, 1e-12) {
			t.Fatalf("corner %d: expected %v, got %v", i, want, c)
		}
	}
}

func TestPlacementYaw(t *testing.T) {
	pos := vec3.T{10, 5, -3}
	m := Placement(pos, 90, 0)
	end := vec3.T{0, 0, TieHalfLength}
	got := m.MulVec3(&end)
	rel := vec3.Sub(&got, &pos)
	// a quarter turn about Y swings the tie's far end onto +X
	if want := (vec3.T{TieHalfLength, 0, 0}); !near(rel, want, 1e-9) {
		t.Fatalf("expected end %v, got %v", want, rel)
	}
}

func TestPlacementTilt(t *testing.T) {
	m := Placement(vec3.T{}, 0, 90)
	top := vec3.T{0, TieHeight, 0}
	got := m.MulVec3(&top)
	if want := (vec3.T{0, 0, TieHeight}); !near(got, want, 1e-9) {
		t.Fatalf("expected top %v, got %v", want, got)
	}
}

// Yaw and tilt do not commute: tilting first and then yawing lands +Y on +X,
// the other way round leaves it on +Z.
func TestPlacementOrder(t *testing.T) {
	pos := vec3.T{1, 2, 3}
	m := Placement(pos, 90, 90)
	up := vec3.UnitY
	got := m.MulVec3(&up)
	rel := vec3.Sub(&got, &pos)
	if !near(rel, vec3.UnitX, 1e-9) {
		t.Fatalf("expected +Y to map to %v, got %v", vec3.UnitX, rel)
	}
	for _, tc := range []struct {
		angleY, angle float64
		in, want      vec3.T
	}{
		{-90, 0, vec3.T{0, 0, 1}, vec3.T{-1, 0, 0}},
		{0, -90, vec3.T{0, 1, 0}, vec3.T{0, 0, -1}},
		{180, 0, vec3.T{1, 0, 0}, vec3.T{-1, 0, 0}},
		{90, 0, vec3.T{1, 0, 0}, vec3.T{0, 0, -1}},
	} {
		t.Run(fmt.Sprintf("%g,%g", tc.angleY, tc.angle), func(t *testing.T) {
			m := Placement(vec3.T{}, tc.angleY, tc.angle)
			if got := m.MulVec3(&tc.in); !near(got, tc.want, 1e-9) {
				t.Fatalf("%v: expected %v, got %v", tc.in, tc.want, got)
			}
		})
	}
}

func TestTieIsRigid(t *testing.T) {
	g, err := Build(preset.Oval(7, 80, 40, 5), spline.Cardinal, DefaultParams())
	if err != nil {
		t.Fatalf("Build: %s", err)
	}
	for i := range g.Ties {
		tie := &g.Ties[i]
		c := tie.Corners()
		for j := 1; j < 8; j++ {
			want := vec3.Distance(&tieCorners[0], &tieCorners[j])
			if got := vec3.Distance(&c[0], &c[j]); math.Abs(got-want) > 1e-9 {
				t.Fatalf("tie %d: corner 0-%d distance %g, expected %g", i, j, got, want)
			}
		}
		faces := tie.Faces()
		if faces[FaceTop].Kind != FaceTop {
			t.Fatalf("faces out of order: %v", faces[FaceTop].Kind)
		}
		// the bottom face is centred on the station
		var centre vec3.T
		for _, v := range faces[FaceBottom].Quad {
			centre.Add(&v)
		}
		centre.Scale(0.25)
		if !near(centre, tie.Pos, 1e-9) {
			t.Fatalf("tie %d: bottom centre %v, station %v", i, centre, tie.Pos)
		}
	}
}

func TestDefaultTrackFirstTie(t *testing.T) {
	g, err := Build(preset.Default(), spline.Linear, DefaultParams())
	if err != nil {
		t.Fatalf("Build: %s", err)
	}
	// the loop reaches (50,5,0) heading +X+Z
	tie := g.Ties[0]
	if math.Abs(tie.AngleY-(-45)) > 1e-6 {
		t.Fatalf("expected yaw -45, got %g", tie.AngleY)
	}
	if tie.Angle != 0 {
		t.Fatalf("expected no tilt, got %g", tie.Angle)
	}
}
