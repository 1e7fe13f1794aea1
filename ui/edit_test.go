package ui

import (
	"testing"

	"github.com/ungerik/go3d/float64/vec3"
	"nyiyui.ca/hato/senro/rail"
	"nyiyui.ca/hato/senro/scene"
	"nyiyui.ca/hato/senro/spline"
	"nyiyui.ca/hato/senro/track/preset"
)

func newTestEditor() *editor {
	return newEditor(preset.Default(), scene.View{
		Kind:     spline.Cardinal,
		Params:   rail.DefaultParams(),
		Camera:   scene.World,
		Selected: -1,
	})
}

func TestSelectAndMove(t *testing.T) {
	e := newTestEditor()
	e.handle("<Up>")
	if e.msg != "Nothing Selected" {
		t.Fatalf("unexpected msg %q", e.msg)
	}
	e.handle("n")
	e.handle("n")
	if e.view.Selected != 1 {
		t.Fatalf("expected point 1 selected, got %d", e.view.Selected)
	}
	e.handle("<Up>")
	e.handle("l")
	if got, want := e.tr.Points[1].Pos, (vec3.T{5, 5, 45}); got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
	e.handle("p")
	if e.msg != "Selected(1) (5 5 45) (0 1 0)" {
		t.Fatalf("unexpected msg %q", e.msg)
	}
	e.handle("N")
	e.handle("N")
	if e.view.Selected != 3 {
		t.Fatalf("expected wrap to 3, got %d", e.view.Selected)
	}
	e.handle("<Escape>")
	if e.view.Selected != -1 {
		t.Fatalf("expected no selection, got %d", e.view.Selected)
	}
}

func TestKindAndCamera(t *testing.T) {
	e := newTestEditor()
	e.handle("3")
	if e.view.Kind != spline.BSpline {
		t.Fatalf("expected b-spline, got %s", e.view.Kind)
	}
	e.handle("1")
	if e.view.Kind != spline.Linear {
		t.Fatalf("expected linear, got %s", e.view.Kind)
	}
	for _, want := range []scene.Camera{scene.Top, scene.Train, scene.World} {
		e.handle("c")
		if e.view.Camera != want {
			t.Fatalf("expected %s, got %s", want, e.view.Camera)
		}
	}
}

func TestInsertDeleteKeys(t *testing.T) {
	e := newTestEditor()
	e.handle("n")
	e.handle("-")
	if e.msg == "" || e.tr.Len() != 4 {
		t.Fatalf("delete below minimum: msg %q, len %d", e.msg, e.tr.Len())
	}
	e.handle("+")
	if e.tr.Len() != 5 || e.view.Selected != 1 {
		t.Fatalf("insert: len %d, selected %d", e.tr.Len(), e.view.Selected)
	}
	e.handle("-")
	if e.tr.Len() != 4 || e.view.Selected != -1 {
		t.Fatalf("delete: len %d, selected %d", e.tr.Len(), e.view.Selected)
	}
}

func TestTiltAndRender(t *testing.T) {
	e := newTestEditor()
	e.handle("n")
	e.handle("x")
	if o := e.tr.Points[0].Orient; o[2] == 0 {
		t.Fatalf("orientation not tilted: %v", o)
	}
	// every edit must still leave a drawable track
	f, err := scene.Render(e.view)
	if err != nil {
		t.Fatalf("Render: %s", err)
	}
	if f.Stats.Ties != 40 {
		t.Fatalf("unexpected ties %d", f.Stats.Ties)
	}
	if quit := e.handle("q"); !quit {
		t.Fatal("q did not quit")
	}
}
