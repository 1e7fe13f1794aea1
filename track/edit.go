package track

import (
	"fmt"
	"math"

	"github.com/ungerik/go3d/float64/mat4"
	"github.com/ungerik/go3d/float64/vec3"
	"golang.org/x/exp/slices"
)

// SetPosition moves point i, e.g. at the end of a drag.
func (t *Track) SetPosition(i int, pos vec3.T) error {
	if err := t.checkIndex(i); err != nil {
		return err
	}
	t.Points[i].Pos = pos
	return nil
}

// InsertAfter adds a point halfway between i and the next point and returns
// its index. The new point takes i's orientation.
func (t *Track) InsertAfter(i int) (int, error) {
	if err := t.checkIndex(i); err != nil {
		return 0, err
	}
	a, b := t.At(i), t.At(i+1)
	cp := ControlPoint{
		Pos:    vec3.Interpolate(&a.Pos, &b.Pos, 0.5),
		Orient: a.Orient,
	}
	t.Points = slices.Insert(t.Points, i+1, cp)
	return i + 1, nil
}

// Delete removes point i unless that would leave fewer than MinPoints.
func (t *Track) Delete(i int) error {
	if err := t.checkIndex(i); err != nil {
		return err
	}
	if len(t.Points) <= MinPoints {
		return fmt.Errorf("delete %d: %w (need at least %d)", i, ErrTooFewPoints, MinPoints)
	}
	t.Points = slices.Delete(t.Points, i, i+1)
	return nil
}

// Rotate tilts the orientation of point i by xDeg about world X, then zDeg
// about world Z.
func (t *Track) Rotate(i int, xDeg, zDeg float64) error {
	if err := t.checkIndex(i); err != nil {
		return err
	}
	var rx, rz, m mat4.T
	rx = mat4.Ident
	rz = mat4.Ident
	rx.AssignXRotation(xDeg * math.Pi / 180)
	rz.AssignZRotation(zDeg * math.Pi / 180)
	m.AssignMul(&rz, &rx)
	t.Points[i].Orient = m.MulVec3W(&t.Points[i].Orient, 0)
	return nil
}
