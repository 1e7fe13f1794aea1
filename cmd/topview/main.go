package main

import (
	"flag"
	"os"

	"go.uber.org/zap"
	"nyiyui.ca/hato/senro/config"
	"nyiyui.ca/hato/senro/scene"
	"nyiyui.ca/hato/senro/senri"
	"nyiyui.ca/hato/senro/spline"
	"nyiyui.ca/hato/senro/track/preset"
)

func main() {
	defer zap.S().Sync()
	level := zap.LevelFlag("log-level", zap.InfoLevel, "set log level")
	configPath := flag.String("config", "senro.json", "path to config file")
	kind := flag.String("kind", "", "override the spline kind (linear, cardinal, b-spline)")
	out := flag.String("o", "topview.png", "output PNG")
	width := flag.Int("width", 800, "image width")
	height := flag.Int("height", 800, "image height")
	flag.Parse()
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(*level)
	dev, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(dev)

	c, err := config.Load(*configPath)
	if err != nil {
		zap.S().Fatalf("config: %s", err)
	}
	if *kind != "" {
		c.Kind, err = spline.ParseKind(*kind)
		if err != nil {
			zap.S().Fatalf("kind: %s", err)
		}
	}

	f, err := scene.Render(scene.View{
		Track:    preset.Default(),
		Kind:     c.Kind,
		Params:   c.Params(),
		Camera:   scene.Top,
		Selected: -1,
	})
	if err != nil {
		zap.S().Fatalf("render: %s", err)
	}
	file, err := os.Create(*out)
	if err != nil {
		zap.S().Fatalf("create %s: %s", *out, err)
	}
	defer file.Close()
	err = senri.WritePNG(file, &f, *width, *height)
	if err != nil {
		zap.S().Fatalf("write %s: %s", *out, err)
	}
	zap.S().Infow("wrote top view",
		"path", *out,
		"kind", f.Kind,
		"stations", f.Stats.Stations,
		"ties", f.Stats.Ties,
		"degenerate", f.Stats.Degenerate)
}
