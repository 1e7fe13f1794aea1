package rail

import (
	"errors"
	"fmt"
	"math"

	"github.com/ungerik/go3d/float64/vec3"
	"nyiyui.ca/hato/senro/spline"
	"nyiyui.ca/hato/senro/track"
)

var (
	ErrInsufficientControlPoints = errors.New("insufficient control points")
	ErrNonFiniteParameter        = errors.New("non-finite curve parameter")
)

// Curve is one basis applied to every window of a track.
// The track must not change while a Curve is in use.
type Curve struct {
	tr    *track.Track
	basis spline.Basis
	// scratch for weights; a Curve is not safe for concurrent use
	w, d []float64
}

// NewCurve checks that tr has enough points for kind's window.
func NewCurve(tr *track.Track, kind spline.Kind) (*Curve, error) {
	b, err := spline.For(kind)
	if err != nil {
		return nil, err
	}
	if tr.Len() < b.Size() {
		return nil, fmt.Errorf("%s needs %d, track has %d: %w", kind, b.Size(), tr.Len(), ErrInsufficientControlPoints)
	}
	return &Curve{
		tr:    tr,
		basis: b,
		w:     make([]float64, b.Size()),
		d:     make([]float64, b.Size()),
	}, nil
}

func (c *Curve) Kind() spline.Kind { return c.basis.Kind() }

// Segments is the number of windows in one loop (one per control point).
func (c *Curve) Segments() int { return c.tr.Len() }

// At evaluates segment seg at local parameter t. orient is normalized; tangent
// is normalized when the curve is not stationary at t and zero otherwise.
func (c *Curve) At(seg int, t float64) (pos, orient, tangent vec3.T) {
	c.basis.Weights(t, c.w)
	c.basis.Derivative(t, c.d)
	for j := range c.w {
		cp := c.tr.At(seg + j)
		p, o, d := cp.Pos.Scaled(c.w[j]), cp.Orient.Scaled(c.w[j]), cp.Pos.Scaled(c.d[j])
		pos.Add(&p)
		orient.Add(&o)
		tangent.Add(&d)
	}
	orient = unitOr(orient, vec3.UnitY)
	tangent = unitOr(tangent, vec3.Zero)
	return
}

// Locate evaluates the loop at global parameter u, where the integer part
// selects the segment. u wraps, so Locate(float64(Segments())) == Locate(0).
// NaN and infinite u are rejected.
func (c *Curve) Locate(u float64) (pos, orient, tangent vec3.T, err error) {
	if math.IsNaN(u) || math.IsInf(u, 0) {
		return pos, orient, tangent, fmt.Errorf("locate %g: %w", u, ErrNonFiniteParameter)
	}
	n := float64(c.Segments())
	u = math.Mod(u, n)
	if u < 0 {
		u += n
	}
	seg := int(u)
	pos, orient, tangent = c.At(seg, u-float64(seg))
	return pos, orient, tangent, nil
}

// unitOr normalizes v, or returns fallback if v has (almost) no length.
func unitOr(v, fallback vec3.T) vec3.T {
	l := v.Length()
	if l < epsilon || math.IsNaN(l) {
		return fallback
	}
	return v.Scaled(1 / l)
}

const epsilon = 1e-12
