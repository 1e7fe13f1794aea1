// Package senri plots the top view of a rendered frame.
package senri

import (
	"errors"
	"image"
	"image/color"
	"io"

	"github.com/ungerik/go3d/float64/vec3"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"nyiyui.ca/hato/senro/rail"
	"nyiyui.ca/hato/senro/scene"
)

var ErrNoGeometry = errors.New("frame has no geometry")

func toDrawing(c color.RGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// series collects points seen from above: world X to the right, world Z
// downwards (as the top camera shows it).
type series struct {
	xs, ys []float64
}

func (s *series) add(v vec3.T) {
	s.xs = append(s.xs, v[0])
	s.ys = append(s.ys, -v[2])
}

func (s *series) line(style chart.Style) chart.ContinuousSeries {
	return chart.ContinuousSeries{Style: style, XValues: s.xs, YValues: s.ys}
}

func railSeries(segs []rail.Segment) *series {
	s := &series{}
	for _, seg := range segs {
		s.add(seg.B)
	}
	if len(segs) > 0 {
		s.add(segs[0].B)
	}
	return s
}

func topChart(f *scene.Frame, width, height int) (*chart.Chart, error) {
	g := f.Geometry
	if g == nil || len(g.Stations) == 0 {
		return nil, ErrNoGeometry
	}
	railStyle := chart.Style{
		StrokeWidth: 1,
		StrokeColor: toDrawing(scene.RailColor),
	}
	tieStyle := chart.Style{
		StrokeWidth: 1,
		StrokeColor: toDrawing(scene.TieColor),
		FillColor:   toDrawing(scene.TieTopColor),
	}
	all := []chart.Series{
		railSeries(g.Left).line(railStyle),
		railSeries(g.Right).line(railStyle),
	}
	for i := range g.Ties {
		s := &series{}
		faces := g.Ties[i].Faces()
		for _, v := range faces[rail.FaceTop].Quad {
			s.add(v)
		}
		s.add(faces[rail.FaceTop].Quad[0])
		all = append(all, s.line(tieStyle))
	}
	if f.Camera != scene.Train {
		for _, p := range f.Main {
			if p.Role != scene.RoleMarker {
				continue
			}
			s := &series{}
			s.add(p.Vertices[0])
			c := scene.MarkerColor
			if p.Index == f.Selected {
				c = scene.SelectedColor
			}
			all = append(all, s.line(chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    p.HalfSize * 2,
				DotColor:    toDrawing(c),
			}))
		}
	}
	return &chart.Chart{
		Width:  width,
		Height: height,
		Series: all,
	}, nil
}

// TopView renders f's rails, tie tops and control points as an image.
func TopView(f *scene.Frame, width, height int) (image.Image, error) {
	graph, err := topChart(f, width, height)
	if err != nil {
		return nil, err
	}
	collector := &chart.ImageWriter{}
	if err := graph.Render(chart.PNG, collector); err != nil {
		return nil, err
	}
	return collector.Image()
}

// WritePNG is TopView encoded as PNG.
func WritePNG(w io.Writer, f *scene.Frame, width, height int) error {
	graph, err := topChart(f, width, height)
	if err != nil {
		return err
	}
	return graph.Render(chart.PNG, w)
}
