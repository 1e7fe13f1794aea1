// Package ui is a terminal editor showing the track from above.
package ui

import (
	"fmt"
	"image"
	"math"

	"github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
	"go.uber.org/zap"
	"nyiyui.ca/hato/senro/notify"
	"nyiyui.ca/hato/senro/rail"
	"nyiyui.ca/hato/senro/scene"
	"nyiyui.ca/hato/senro/track"
)

const (
	statusHeight = 5
	// railStride thins out stations when drawing rails on the canvas.
	railStride = 10
)

const help = "1/2/3 kind · c camera · n/N select · arrows/hjkl move · PgUp/PgDn height · x/z tilt · +/- add/delete · p print · q quit"

type Conf struct {
	Track *track.Track
	View  scene.View
	// Frames, if not nil, receives every rendered frame.
	Frames *notify.MultiplexerSender[scene.Frame]
}

func Main(conf Conf) error {
	err := termui.Init()
	if err != nil {
		return fmt.Errorf("termui init: %s", err)
	}
	defer termui.Close()

	e := newEditor(conf.Track, conf.View)
	status := widgets.NewParagraph()
	status.Title = "status"
	var w, h int
	layout := func() {
		w, h = termui.TerminalDimensions()
		status.SetRect(0, h-statusHeight, w, h)
	}
	layout()
	redraw := func() {
		// a fresh canvas per pass; drawille cells only accumulate
		canvas := termui.NewCanvas()
		canvas.Title = "senro"
		canvas.SetRect(0, 0, w, h-statusHeight)
		f, err := scene.Render(e.view)
		if err != nil {
			zap.S().Errorw("render", "err", err)
			e.msg = fmt.Sprintf("error: %s", err)
		} else {
			if conf.Frames != nil {
				conf.Frames.Send(f)
			}
			plot(canvas, &f)
		}
		status.Text = statusText(e, &f)
		termui.Render(canvas, status)
	}
	redraw()
	for ev := range termui.PollEvents() {
		switch ev.Type {
		case termui.ResizeEvent:
			layout()
			termui.Clear()
		case termui.KeyboardEvent:
			if e.handle(ev.ID) {
				return nil
			}
		default:
			continue
		}
		redraw()
	}
	return nil
}

func statusText(e *editor, f *scene.Frame) string {
	sel := e.tr.Describe(e.view.Selected)
	text := fmt.Sprintf("%s · %s · %d stations · %d ties · %d degenerate\n%s\n%s",
		e.view.Kind, e.view.Camera,
		f.Stats.Stations, f.Stats.Ties, f.Stats.Degenerate,
		sel, help)
	if e.msg != "" {
		text = e.msg + "\n" + text
	}
	return text
}

// projection maps world XZ onto canvas dots, keeping the aspect ratio
// (a braille cell is 2×4 dots and roughly twice as tall as wide).
type projection struct {
	minX, minZ float64
	scale      float64
	origin     image.Point
}

func newProjection(g *rail.Geometry, inner image.Rectangle) projection {
	minX, minZ := math.Inf(1), math.Inf(1)
	maxX, maxZ := math.Inf(-1), math.Inf(-1)
	for _, s := range g.Stations {
		minX, maxX = math.Min(minX, s.Pos[0]), math.Max(maxX, s.Pos[0])
		minZ, maxZ = math.Min(minZ, s.Pos[2]), math.Max(maxZ, s.Pos[2])
	}
	pad := 2 * g.Params.HalfGauge
	minX, minZ, maxX, maxZ = minX-pad, minZ-pad, maxX+pad, maxZ+pad
	dotsW := float64(inner.Dx()*2 - 1)
	dotsH := float64(inner.Dy()*4 - 1)
	scale := math.Min(dotsW/math.Max(maxX-minX, 1), dotsH/math.Max(maxZ-minZ, 1))
	return projection{
		minX:   minX,
		minZ:   minZ,
		scale:  scale,
		origin: image.Pt(inner.Min.X*2, inner.Min.Y*4),
	}
}

func (p projection) dot(x, z float64) image.Point {
	return p.origin.Add(image.Pt(
		int(math.Round((x-p.minX)*p.scale)),
		int(math.Round((z-p.minZ)*p.scale)),
	))
}

func plot(c *termui.Canvas, f *scene.Frame) {
	g := f.Geometry
	if g == nil || len(g.Stations) == 0 {
		return
	}
	p := newProjection(g, c.Inner)
	for _, segs := range [][]rail.Segment{g.Left, g.Right} {
		for i := 0; i < len(segs); i += railStride {
			j := (i + railStride) % len(segs)
			a, b := segs[i].B, segs[j].B
			c.SetLine(p.dot(a[0], a[2]), p.dot(b[0], b[2]), termui.ColorWhite)
		}
	}
	for i := range g.Ties {
		q := g.Ties[i].Faces()[rail.FaceTop].Quad
		// the short edges are the tie's ends; join their midpoints
		a := midpoint(q[0][0], q[0][2], q[1][0], q[1][2])
		b := midpoint(q[2][0], q[2][2], q[3][0], q[3][2])
		c.SetLine(p.dot(a[0], a[1]), p.dot(b[0], b[1]), termui.ColorMagenta)
	}
	for _, prim := range f.Main {
		if prim.Role != scene.RoleMarker {
			continue
		}
		col := termui.ColorRed
		if prim.Index == f.Selected {
			col = termui.ColorYellow
		}
		v := prim.Vertices[0]
		c.SetPoint(p.dot(v[0], v[2]), col)
	}
}

func midpoint(x0, z0, x1, z1 float64) [2]float64 {
	return [2]float64{(x0 + x1) / 2, (z0 + z1) / 2}
}
