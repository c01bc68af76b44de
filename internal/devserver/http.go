package devserver

import (
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/websocket"
)

func (s *Server) handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/livereload", websocket.Handler(s.serveLiveReload))
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/", s.serveStatic)
	return mux
}

// serveLiveReload is one session loop: it relays every broadcast signal to
// its client as a text message until a send fails or the client goes away.
func (s *Server) serveLiveReload(ws *websocket.Conn) {
	id, signals := s.hub.Subscribe()
	defer s.hub.Unsubscribe(id)
	slog.Debug("live-reload session connected", "id", id)

	ctx := ws.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return
		case signal, ok := <-signals:
			if !ok {
				return
			}
			if err := websocket.Message.Send(ws, signal); err != nil {
				slog.Debug("live-reload session gone", "id", id, "error", err)
				return
			}
		}
	}
}

// serveStatic serves the output directory. The root redirects to the index;
// anything that is not a file in the output tree is not found.
func (s *Server) serveStatic(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/" {
		http.Redirect(w, r, "/index.html", http.StatusFound)
		return
	}

	clean := path.Clean(r.URL.Path)
	file := filepath.Join(s.outputDir, filepath.FromSlash(clean))
	if fi, err := os.Stat(file); err != nil || fi.IsDir() {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, file)
}
