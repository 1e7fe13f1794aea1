package spline

import (
	"errors"
	"fmt"
	"strings"
)

// Kind selects the interpolation basis used for a whole track in one pass.
// The values match the order of the spline browser (1-indexed).
type Kind int

const (
	Linear Kind = iota + 1
	Cardinal
	BSpline
)

var ErrUnsupportedKind = errors.New("unsupported spline kind")

func (k Kind) String() string {
	switch k {
	case Linear:
		return "linear"
	case Cardinal:
		return "cardinal"
	case BSpline:
		return "b-spline"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) Valid() bool {
	return k >= Linear && k <= BSpline
}

// ParseKind accepts the names returned by String (case-insensitive).
// "catmull-rom" is accepted as an alias of cardinal.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear":
		return Linear, nil
	case "cardinal", "catmull-rom":
		return Cardinal, nil
	case "b-spline", "bspline":
		return BSpline, nil
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnsupportedKind)
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%d: %w", int(k), ErrUnsupportedKind)
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	k2, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = k2
	return nil
}

// Basis computes the blending weights of a control point window.
type Basis interface {
	Kind() Kind
	// Size is the number of control points in a window (2 or 4).
	Size() int
	// Weights writes Size() weights for parameter t into w.
	Weights(t float64, w []float64)
	// Derivative writes the weights of the first derivative at t into w.
	Derivative(t float64, w []float64)
}

var bases = map[Kind]Basis{
	Linear:   linear{},
	Cardinal: &matrix{kind: Cardinal, m: cardinalMatrix},
	BSpline:  &matrix{kind: BSpline, m: bSplineMatrix},
}

// For returns the Basis for k. The lookup is meant to happen once per pass.
func For(k Kind) (Basis, error) {
	b, ok := bases[k]
	if !ok {
		return nil, fmt.Errorf("%s: %w", k, ErrUnsupportedKind)
	}
	return b, nil
}

type linear struct{}

func (linear) Kind() Kind { return Linear }

func (linear) Size() int { return 2 }

func (linear) Weights(t float64, w []float64) {
	w[0] = 1 - t
	w[1] = t
}

func (linear) Derivative(_ float64, w []float64) {
	w[0] = -1
	w[1] = 1
}

// Row i of a basis matrix holds the coefficients of t^(3-i); column j belongs
// to control point j of the window.
var cardinalMatrix = [4][4]float64{
	{-0.5, 1.5, -1.5, 0.5},
	{1, -2.5, 2, -0.5},
	{-0.5, 0, 0.5, 0},
	{0, 1, 0, 0},
}

var bSplineMatrix = [4][4]float64{
	{-1.0 / 6, 1.0 / 2, -1.0 / 2, 1.0 / 6},
	{1.0 / 2, -1, 1.0 / 2, 0},
	{-1.0 / 2, 0, 1.0 / 2, 0},
	{1.0 / 6, 2.0 / 3, 1.0 / 6, 0},
}

type matrix struct {
	kind Kind
	m    [4][4]float64
}

func (b *matrix) Kind() Kind { return b.kind }

func (b *matrix) Size() int { return 4 }

func (b *matrix) Weights(t float64, w []float64) {
	b.apply([4]float64{t * t * t, t * t, t, 1}, w)
}

func (b *matrix) Derivative(t float64, w []float64) {
	b.apply([4]float64{3 * t * t, 2 * t, 1, 0}, w)
}

func (b *matrix) apply(T [4]float64, w []float64) {
	for j := 0; j < 4; j++ {
		w[j] = T[0]*b.m[0][j] + T[1]*b.m[1][j] + T[2]*b.m[2][j] + T[3]*b.m[3][j]
	}
}
