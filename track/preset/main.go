package preset

import (
	"math"

	"github.com/google/uuid"
	"github.com/ungerik/go3d/float64/vec3"
	"nyiyui.ca/hato/senro/track"
)

var up = vec3.T{0, 1, 0}

// Default returns the loop the viewer starts with.
func Default() *track.Track {
	return &track.Track{
		ID:      uuid.MustParse("4c0f7d36-2b8a-4a8e-9d0c-5e3f1f6a9b21"),
		Comment: "default",
		Points: []track.ControlPoint{
			{Pos: vec3.T{50, 5, 0}, Orient: up},
			{Pos: vec3.T{0, 5, 50}, Orient: up},
			{Pos: vec3.T{-50, 5, 0}, Orient: up},
			{Pos: vec3.T{0, 5, -50}, Orient: up},
		},
	}
}

// Oval returns an n-point ellipse at height y with radii rx and rz.
// Points run counterclockwise seen from above, starting on +X.
func Oval(n int, rx, rz, y float64) *track.Track {
	t := &track.Track{
		ID:      uuid.New(),
		Comment: "oval",
		Points:  make([]track.ControlPoint, n),
	}
	for i := range t.Points {
		theta := 2 * math.Pi * float64(i) / float64(n)
		t.Points[i] = track.ControlPoint{
			Pos:    vec3.T{rx * math.Cos(theta), y, rz * math.Sin(theta)},
			Orient: up,
		}
	}
	return t
}
