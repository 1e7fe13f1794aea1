// Package sakuragi serves a web page showing the latest frame from above.
package sakuragi

import (
	"embed"
	"fmt"
	"html/template"
	"image/color"
	"math"
	"net/http"
	"sync"

	"github.com/Masterminds/sprig/v3"
	"github.com/ungerik/go3d/float64/vec3"
	"go.uber.org/zap"
	"nyiyui.ca/hato/senro/notify"
	"nyiyui.ca/hato/senro/rail"
	"nyiyui.ca/hato/senro/scene"
	"nyiyui.ca/hato/senro/senri"
)

//go:embed index.html
var templates embed.FS

const (
	pngWidth  = 640
	pngHeight = 480
	margin    = 10
)

type Server struct {
	sm *http.ServeMux
	t  *template.Template

	latestLock sync.Mutex
	latest     *scene.Frame
}

// New serves frames published on frames. Call Handler to mount it.
func New(frames *notify.Multiplexer[scene.Frame]) *Server {
	s := &Server{
		sm: http.NewServeMux(),
	}
	s.t = template.Must(template.New("index").Funcs(sprig.FuncMap()).Funcs(template.FuncMap{
		"pt": func(v vec3.T) string {
			return fmt.Sprintf("%.2f,%.2f", v[0], v[2])
		},
		"rgb": func(c color.RGBA) string {
			return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
		},
		"topFace": func(t rail.Tie) [4]vec3.T {
			return t.Faces()[rail.FaceTop].Quad
		},
		"isMarker": func(p scene.Primitive) bool {
			return p.Role == scene.RoleMarker
		},
	}).ParseFS(templates, "*.html"))
	s.sm.HandleFunc("/", s.handleIndex)
	s.sm.HandleFunc("/top.png", s.handlePNG)
	if frames != nil {
		ch := make(chan scene.Frame, 1)
		frames.Subscribe("sakuragi", ch)
		go s.loop(ch)
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.sm
}

func (s *Server) loop(ch chan scene.Frame) {
	for f := range ch {
		s.update(f)
	}
}

func (s *Server) update(f scene.Frame) {
	s.latestLock.Lock()
	defer s.latestLock.Unlock()
	s.latest = &f
}

func (s *Server) frame() *scene.Frame {
	s.latestLock.Lock()
	defer s.latestLock.Unlock()
	return s.latest
}

// viewBox returns an SVG viewBox around the rails, in the XZ plane.
func viewBox(g *rail.Geometry) string {
	minX, minZ := math.Inf(1), math.Inf(1)
	maxX, maxZ := math.Inf(-1), math.Inf(-1)
	for _, segs := range [][]rail.Segment{g.Left, g.Right} {
		for _, seg := range segs {
			minX, maxX = math.Min(minX, seg.B[0]), math.Max(maxX, seg.B[0])
			minZ, maxZ = math.Min(minZ, seg.B[2]), math.Max(maxZ, seg.B[2])
		}
	}
	return fmt.Sprintf("%.2f %.2f %.2f %.2f",
		minX-margin, minZ-margin,
		maxX-minX+2*margin, maxZ-minZ+2*margin)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	data := map[string]interface{}{
		"f":             nil,
		"railColor":     scene.RailColor,
		"tieColor":      scene.TieTopColor,
		"markerColor":   scene.MarkerColor,
		"selectedColor": scene.SelectedColor,
	}
	if f := s.frame(); f != nil && f.Geometry != nil {
		data["f"] = f
		data["viewBox"] = viewBox(f.Geometry)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := s.t.ExecuteTemplate(w, "index", data)
	if err != nil {
		zap.S().Errorw("render index", "err", err)
	}
}

func (s *Server) handlePNG(w http.ResponseWriter, r *http.Request) {
	f := s.frame()
	if f == nil {
		http.Error(w, "no frame yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := senri.WritePNG(w, f, pngWidth, pngHeight); err != nil {
		zap.S().Errorw("render png", "err", err)
	}
}
