package main

import (
	"errors"
	"flag"
	"net/http"

	"github.com/rs/cors"
	"go.uber.org/zap"
	"nyiyui.ca/hato/senro/config"
	"nyiyui.ca/hato/senro/kujo"
	"nyiyui.ca/hato/senro/notify"
	"nyiyui.ca/hato/senro/sakuragi"
	"nyiyui.ca/hato/senro/scene"
	"nyiyui.ca/hato/senro/track/preset"
	"nyiyui.ca/hato/senro/ui"
)

func main() {
	defer zap.S().Sync()
	level := zap.LevelFlag("log-level", zap.DebugLevel, "set log level")
	configPath := flag.String("config", "senro.json", "path to config file")
	useUI := flag.Bool("ui", true, "run the terminal editor (otherwise render once and serve)")
	logPath := flag.String("log", "senro.log", "log file while the terminal editor is running")
	flag.Parse()
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(*level)
	if *useUI {
		// stderr belongs to termui
		cfg.OutputPaths = []string{*logPath}
		cfg.ErrorOutputPaths = []string{*logPath}
	}
	dev, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(dev)

	c, err := config.Load(*configPath)
	if err != nil {
		zap.S().Fatalf("config: %s", err)
	}
	zap.S().Infow("config loaded", "config", c)

	tr := preset.Default()
	view := scene.View{
		Track:    tr,
		Kind:     c.Kind,
		Params:   c.Params(),
		Camera:   c.Camera,
		Selected: -1,
	}

	sender, frames := notify.NewMultiplexerSender[scene.Frame]("frames")
	if c.Listen != "" {
		kujoServer := kujo.NewServer(frames)
		sakuragiServer := sakuragi.New(frames)
		sm := http.NewServeMux()
		sm.Handle("/events", kujoServer.Handler())
		sm.Handle("/", sakuragiServer.Handler())
		corsHandler := cors.New(cors.Options{
			AllowedOrigins: c.AllowedOrigins,
		})
		server := &http.Server{
			Addr:    c.Listen,
			Handler: corsHandler.Handler(sm),
		}
		go func() {
			zap.S().Infof("listening on %s…", c.Listen)
			err := server.ListenAndServe()
			if !errors.Is(err, http.ErrServerClosed) {
				zap.S().Fatalf("http: %s", err)
			}
		}()
	}

	if *useUI {
		err = ui.Main(ui.Conf{
			Track:  tr,
			View:   view,
			Frames: sender,
		})
		if err != nil {
			zap.S().Fatalf("ui: %s", err)
		}
		return
	}

	f, err := scene.Render(view)
	if err != nil {
		zap.S().Fatalf("render: %s", err)
	}
	zap.S().Infow("rendered",
		"track", f.TrackID,
		"kind", f.Kind,
		"stats", f.Stats)
	sender.SendSync(f)
	if c.Listen != "" {
		select {}
	}
}
