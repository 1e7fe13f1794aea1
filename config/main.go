package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"nyiyui.ca/hato/senro/rail"
	"nyiyui.ca/hato/senro/scene"
	"nyiyui.ca/hato/senro/spline"
)

type Config struct {
	Kind         spline.Kind  `json:"kind"`
	Subdivisions int          `json:"subdivisions"`
	TieInterval  int          `json:"tie-interval"`
	HalfGauge    float64      `json:"half-gauge"`
	Camera       scene.Camera `json:"camera"`
	// Listen is the address for the web view and event stream. Empty disables them.
	Listen string `json:"listen"`
	// AllowedOrigins lists origins allowed to read the event stream cross-origin.
	AllowedOrigins []string `json:"allowed-origins"`
}

func Default() Config {
	p := rail.DefaultParams()
	return Config{
		Kind:         spline.Cardinal,
		Subdivisions: p.Subdivisions,
		TieInterval:  p.TieInterval,
		HalfGauge:    p.HalfGauge,
		Camera:       scene.World,
		Listen:       "127.0.0.1:8001",
	}
}

func (c Config) Params() rail.Params {
	return rail.Params{
		Subdivisions: c.Subdivisions,
		TieInterval:  c.TieInterval,
		HalfGauge:    c.HalfGauge,
	}
}

func (c Config) Validate() error {
	if !c.Kind.Valid() {
		return fmt.Errorf("kind: %w", spline.ErrUnsupportedKind)
	}
	if _, err := c.Camera.MarshalText(); err != nil {
		return fmt.Errorf("camera: %w", err)
	}
	return c.Params().Validate()
}

// Load reads a JSON config from path. Fields missing from the file keep their
// defaults; a missing file gives Default().
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	err = json.Unmarshal(data, &c)
	if err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	err = c.Validate()
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
