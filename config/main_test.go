package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"nyiyui.ca/hato/senro/rail"
	"nyiyui.ca/hato/senro/scene"
	"nyiyui.ca/hato/senro/spline"
)

func write(t *testing.T, data string) string {
	path := filepath.Join(t.TempDir(), "senro.json")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %s", err)
	}
	return path
}

func TestLoadMissing(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load: %s", err)
	}
	if !cmp.Equal(c, Default()) {
		t.Fatalf("diff: %s", cmp.Diff(c, Default()))
	}
}

func TestLoad(t *testing.T) {
	c, err := Load(write(t, `{"kind": "b-spline", "camera": "train", "tie-interval": 50, "allowed-origins": ["http://localhost:5173"]}`))
	if err != nil {
		t.Fatalf("Load: %s", err)
	}
	want := Default()
	want.Kind = spline.BSpline
	want.Camera = scene.Train
	want.TieInterval = 50
	want.AllowedOrigins = []string{"http://localhost:5173"}
	if !cmp.Equal(c, want) {
		t.Fatalf("diff: %s", cmp.Diff(c, want))
	}
	if p := c.Params(); p != (rail.Params{Subdivisions: 1000, TieInterval: 50, HalfGauge: 2.5}) {
		t.Fatalf("unexpected params %#v", p)
	}
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load(write(t, `{"kind": "bezier"}`))
	if !errors.Is(err, spline.ErrUnsupportedKind) {
		t.Fatalf("expected ErrUnsupportedKind, got %v", err)
	}
	_, err = Load(write(t, `{"camera": "chase"}`))
	if !errors.Is(err, scene.ErrUnsupportedCamera) {
		t.Fatalf("expected ErrUnsupportedCamera, got %v", err)
	}
	_, err = Load(write(t, `{"subdivisions": 0}`))
	if !errors.Is(err, rail.ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams, got %v", err)
	}
	_, err = Load(write(t, `{`))
	if err == nil {
		t.Fatal("expected a parse error")
	}
}
