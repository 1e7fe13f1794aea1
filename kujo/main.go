// Package kujo streams rendered frames to browsers over server-sent events.
package kujo

import (
	"encoding/json"
	"net/http"

	"github.com/r3labs/sse/v2"
	"go.uber.org/zap"
	"nyiyui.ca/hato/senro/notify"
	"nyiyui.ca/hato/senro/scene"
)

const StreamFrame = "frame"

type Server struct {
	frames *notify.Multiplexer[scene.Frame]
	s      *sse.Server
	ch     chan scene.Frame
}

func NewServer(frames *notify.Multiplexer[scene.Frame]) *Server {
	s := &Server{
		frames: frames,
		s:      sse.New(),
		ch:     make(chan scene.Frame, 1),
	}
	// late subscribers only care about the latest frame
	s.s.AutoReplay = false
	s.s.CreateStream(StreamFrame)
	frames.Subscribe("kujo", s.ch)
	go s.forward()
	return s
}

func (s *Server) forward() {
	for f := range s.ch {
		data, err := json.Marshal(f)
		if err != nil {
			zap.S().Errorw("marshal frame",
				"track", f.TrackID,
				"err", err)
			continue
		}
		s.s.TryPublish(StreamFrame, &sse.Event{
			Event: []byte(StreamFrame),
			Data:  data,
		})
	}
}

// Close stops forwarding frames and closes all client connections.
func (s *Server) Close() {
	s.frames.Unsubscribe(s.ch)
	close(s.ch)
	s.s.Close()
}

func (s *Server) Handler() http.Handler {
	return s
}

// ServeHTTP serves the stream; clients connect with ?stream=frame.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.s.ServeHTTP(w, r)
}
