package rail

import (
	"errors"
	"fmt"

	"github.com/ungerik/go3d/float64/vec3"
	"go.uber.org/zap"
	"nyiyui.ca/hato/senro/spline"
	"nyiyui.ca/hato/senro/track"
)

var ErrInvalidParams = errors.New("invalid rail parameters")

type Params struct {
	// Subdivisions is the number of stations per segment.
	Subdivisions int `json:"subdivisions"`
	// TieInterval is the number of stations between ties (counted per segment).
	TieInterval int `json:"tie-interval"`
	// HalfGauge is the distance from the centerline to each rail.
	HalfGauge float64 `json:"half-gauge"`
}

func DefaultParams() Params {
	return Params{
		Subdivisions: 1000,
		TieInterval:  100,
		HalfGauge:    2.5,
	}
}

func (p Params) Validate() error {
	switch {
	case p.Subdivisions <= 0:
		return fmt.Errorf("subdivisions %d: %w", p.Subdivisions, ErrInvalidParams)
	case p.TieInterval <= 0:
		return fmt.Errorf("tie interval %d: %w", p.TieInterval, ErrInvalidParams)
	case p.HalfGauge <= 0:
		return fmt.Errorf("half gauge %g: %w", p.HalfGauge, ErrInvalidParams)
	}
	return nil
}

// Station is one sample of the centerline.
type Station struct {
	// Segment is the index of the control point that starts this station's window.
	Segment int
	// Index is the station's position inside its segment, in [0, Subdivisions).
	Index int
	// T is the local parameter, Index/Subdivisions.
	T       float64
	Pos     vec3.T
	Orient  vec3.T
	Tangent vec3.T
	// Cross points from the centerline to the right-hand rail (seen along the
	// direction of travel with Orient up); its length is the half gauge.
	Cross vec3.T
}

type Segment struct {
	A vec3.T `json:"a"`
	B vec3.T `json:"b"`
}

// Geometry is everything one pass produces for a track.
type Geometry struct {
	Kind     spline.Kind
	Params   Params
	Stations []Station
	// Left and Right have one segment per station, ending at that station.
	Left  []Segment
	Right []Segment
	Ties  []Tie
	// Degenerate counts stations whose cross offset needed a fallback.
	Degenerate int
}

// Sample walks every window of tr once and returns Len()*Subdivisions
// stations in traversal order, with cross offsets filled in.
func Sample(tr *track.Track, kind spline.Kind, p Params) ([]Station, error) {
	stations, _, err := sample(tr, kind, p)
	return stations, err
}

func sample(tr *track.Track, kind spline.Kind, p Params) ([]Station, int, error) {
	if err := p.Validate(); err != nil {
		return nil, 0, err
	}
	c, err := NewCurve(tr, kind)
	if err != nil {
		return nil, 0, err
	}
	n := c.Segments()
	stations := make([]Station, 0, n*p.Subdivisions)
	for seg := 0; seg < n; seg++ {
		for j := 0; j < p.Subdivisions; j++ {
			t := float64(j) / float64(p.Subdivisions)
			pos, orient, tangent := c.At(seg, t)
			stations = append(stations, Station{
				Segment: seg,
				Index:   j,
				T:       t,
				Pos:     pos,
				Orient:  orient,
				Tangent: tangent,
			})
		}
	}
	fb := frameBuilder{halfGauge: p.HalfGauge}
	for i := range stations {
		stations[i].Cross = fb.cross(&stations[prevIndex(i, len(stations))], &stations[i])
	}
	if fb.degenerate > 0 {
		zap.S().Debugw("degenerate frames",
			"track", tr.ID,
			"kind", kind,
			"count", fb.degenerate)
	}
	return stations, fb.degenerate, nil
}

// Build samples tr and emits rails and ties.
func Build(tr *track.Track, kind spline.Kind, p Params) (Geometry, error) {
	stations, degenerate, err := sample(tr, kind, p)
	if err != nil {
		return Geometry{}, err
	}
	g := Geometry{
		Kind:       kind,
		Params:     p,
		Stations:   stations,
		Left:       make([]Segment, len(stations)),
		Right:      make([]Segment, len(stations)),
		Ties:       make([]Tie, 0, tr.Len()*((p.Subdivisions+p.TieInterval-1)/p.TieInterval)),
		Degenerate: degenerate,
	}
	for i := range stations {
		cur := &stations[i]
		prev := &stations[prevIndex(i, len(stations))]
		g.Left[i] = Segment{A: vec3.Sub(&prev.Pos, &cur.Cross), B: vec3.Sub(&cur.Pos, &cur.Cross)}
		g.Right[i] = Segment{A: vec3.Add(&prev.Pos, &cur.Cross), B: vec3.Add(&cur.Pos, &cur.Cross)}
		if cur.Index%p.TieInterval == 0 {
			g.Ties = append(g.Ties, newTie(i, prev, cur))
		}
	}
	return g, nil
}

func prevIndex(i, n int) int {
	if i == 0 {
		return n - 1
	}
	return i - 1
}
