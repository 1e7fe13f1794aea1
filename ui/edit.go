package ui

import (
	"fmt"

	"github.com/ungerik/go3d/float64/vec3"
	"nyiyui.ca/hato/senro/scene"
	"nyiyui.ca/hato/senro/spline"
	"nyiyui.ca/hato/senro/track"
)

const (
	moveStep = 5
	tiltStep = 10
)

// editor owns the track between passes. Keys mutate it; the caller renders
// after every key, so edits and passes never overlap.
type editor struct {
	tr   *track.Track
	view scene.View
	msg  string
}

func newEditor(tr *track.Track, view scene.View) *editor {
	view.Track = tr
	return &editor{tr: tr, view: view}
}

var moves = map[string]vec3.T{
	"<Up>":       {0, 0, -moveStep},
	"k":          {0, 0, -moveStep},
	"<Down>":     {0, 0, moveStep},
	"j":          {0, 0, moveStep},
	"<Left>":     {-moveStep, 0, 0},
	"h":          {-moveStep, 0, 0},
	"<Right>":    {moveStep, 0, 0},
	"l":          {moveStep, 0, 0},
	"<PageUp>":   {0, moveStep, 0},
	"<PageDown>": {0, -moveStep, 0},
}

// handle applies one key. It reports whether the editor should quit.
func (e *editor) handle(key string) (quit bool) {
	e.msg = ""
	switch key {
	case "q", "<C-c>":
		return true
	case "1", "2", "3":
		e.view.Kind = spline.Kind(key[0] - '0')
	case "c":
		e.view.Camera = (e.view.Camera + 1) % (scene.Train + 1)
	case "<Tab>", "n":
		e.view.Selected = (e.view.Selected + 1) % e.tr.Len()
	case "N":
		if e.view.Selected <= 0 {
			e.view.Selected = e.tr.Len()
		}
		e.view.Selected--
	case "<Escape>":
		e.view.Selected = -1
	case "p":
		e.msg = e.tr.Describe(e.view.Selected)
	case "+":
		e.withSelected(func(i int) error {
			j, err := e.tr.InsertAfter(i)
			if err == nil {
				e.view.Selected = j
			}
			return err
		})
	case "-":
		e.withSelected(func(i int) error {
			err := e.tr.Delete(i)
			if err == nil {
				e.view.Selected = -1
			}
			return err
		})
	case "x", "X", "z", "Z":
		deg := float64(tiltStep)
		if key == "X" || key == "Z" {
			deg = -deg
		}
		e.withSelected(func(i int) error {
			if key == "x" || key == "X" {
				return e.tr.Rotate(i, deg, 0)
			}
			return e.tr.Rotate(i, 0, deg)
		})
	default:
		if d, ok := moves[key]; ok {
			e.withSelected(func(i int) error {
				pos := e.tr.Points[i].Pos
				return e.tr.SetPosition(i, vec3.Add(&pos, &d))
			})
		}
	}
	return false
}

func (e *editor) withSelected(f func(i int) error) {
	if e.view.Selected < 0 {
		e.msg = "Nothing Selected"
		return
	}
	if err := f(e.view.Selected); err != nil {
		e.msg = fmt.Sprintf("error: %s", err)
	}
}
