package track

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ungerik/go3d/float64/vec3"
)

// MinPoints is the smallest loop the editor keeps. Four points are needed for
// the four-point bases to have a distinct window per segment.
const MinPoints = 4

var (
	ErrOutOfRange   = errors.New("control point index out of range")
	ErrTooFewPoints = errors.New("too few control points")
)

// ControlPoint is a point the rail passes by (or through, depending on the basis).
type ControlPoint struct {
	Pos vec3.T `json:"pos"`
	// Orient is the up direction of the track's cross-section at Pos.
	// It does not have to be unit length.
	Orient vec3.T `json:"orient"`
}

// Track is a closed loop of control points. Index arithmetic wraps, so the
// point after the last is the first.
type Track struct {
	ID      uuid.UUID      `json:"id"`
	Comment string         `json:"comment"`
	Points  []ControlPoint `json:"points"`
}

func (t *Track) Len() int { return len(t.Points) }

// Index wraps i (which may be negative) into [0, Len()).
func (t *Track) Index(i int) int {
	n := len(t.Points)
	if n == 0 {
		panic("index into empty track")
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func (t *Track) At(i int) ControlPoint {
	return t.Points[t.Index(i)]
}

// Window returns the k points starting at i, wrapping around the end of the loop.
func (t *Track) Window(i, k int) []ControlPoint {
	w := make([]ControlPoint, k)
	for j := range w {
		w[j] = t.At(i + j)
	}
	return w
}

func (t *Track) Clone() *Track {
	t2 := *t
	t2.Points = append([]ControlPoint(nil), t.Points...)
	return &t2
}

func (t *Track) checkIndex(i int) error {
	if i < 0 || i >= len(t.Points) {
		return fmt.Errorf("%d (have %d): %w", i, len(t.Points), ErrOutOfRange)
	}
	return nil
}

// Describe formats point i the way the viewer prints a selected point.
func (t *Track) Describe(i int) string {
	if t.checkIndex(i) != nil {
		return "Nothing Selected"
	}
	p := t.Points[i]
	return fmt.Sprintf("Selected(%d) (%g %g %g) (%g %g %g)",
		i,
		p.Pos[0], p.Pos[1], p.Pos[2],
		p.Orient[0], p.Orient[1], p.Orient[2])
}
