package rail

import (
	"github.com/ungerik/go3d/float64/vec3"
)

// frameBuilder computes cross offsets station by station, remembering the
// last good one for the fallback.
type frameBuilder struct {
	halfGauge  float64
	last       vec3.T
	haveLast   bool
	degenerate int
}

// cross returns normalize((cur.Pos-prev.Pos) × cur.Orient) * halfGauge.
// When that is undefined it tries the curve tangent, then the previous good
// offset, then +Z.
func (b *frameBuilder) cross(prev, cur *Station) vec3.T {
	delta := vec3.Sub(&cur.Pos, &prev.Pos)
	if c, ok := crossOffset(delta, cur.Orient, b.halfGauge); ok {
		b.last, b.haveLast = c, true
		return c
	}
	b.degenerate++
	if c, ok := crossOffset(cur.Tangent, cur.Orient, b.halfGauge); ok {
		b.last, b.haveLast = c, true
		return c
	}
	if b.haveLast {
		return b.last
	}
	return vec3.UnitZ.Scaled(b.halfGauge)
}

func crossOffset(dir, orient vec3.T, halfGauge float64) (vec3.T, bool) {
	c := vec3.Cross(&dir, &orient)
	l := c.Length()
	if !(l > epsilon) {
		return vec3.T{}, false
	}
	return c.Scaled(halfGauge / l), true
}
