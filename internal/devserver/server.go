// Package devserver rebuilds the site on content changes and pushes reload
// signals to connected browser sessions.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/pageturtle/pageturtle/internal/config"
	"github.com/pageturtle/pageturtle/internal/metrics"
	"github.com/pageturtle/pageturtle/internal/site"
)

// Server watches a content tree, rebuilds through the full pipeline on
// relevant changes, and serves the output directory with live reload.
type Server struct {
	cfg        *config.Config
	contentDir string
	outputDir  string
	port       int

	hub      *Hub
	registry *prom.Registry
	recorder metrics.Recorder

	// rebuild runs one full build pass. Overridable in tests.
	rebuild func() error
}

// New prepares a dev server. The configuration is forced into dev mode
// regardless of what the file said, so rendered pages embed the live-reload
// client.
func New(cfg *config.Config, contentDir, outputDir string, port int) *Server {
	cfg.IsDevServer = true

	registry := prom.NewRegistry()
	recorder := metrics.NewPrometheusRecorder(registry)

	builder := site.NewBuilder(contentDir, outputDir, cfg)
	builder.Recorder = recorder

	return &Server{
		cfg:        cfg,
		contentDir: contentDir,
		outputDir:  outputDir,
		port:       port,
		hub:        NewHub(recorder),
		registry:   registry,
		recorder:   recorder,
		rebuild: func() error {
			_, err := builder.Build()
			return err
		},
	}
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	// Initial build. A failure here is logged, not fatal: the server keeps
	// running and the next change gets another chance.
	if err := s.rebuild(); err != nil {
		slog.Error("initial build failed", "error", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = watcher.Close() }()
	if err := addDirsRecursive(watcher, s.contentDir); err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.handler(),
	}
	go func() {
		slog.Info("dev server listening", "url", fmt.Sprintf("http://localhost:%d", s.port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
		}
	}()

	// One request slot: rebuilds are serialized and never overlap a previous
	// pass's writes; a flood of events coalesces into the latest path.
	rebuildReq := make(chan string, 1)
	go s.rebuildLoop(ctx, rebuildReq)

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				slog.Warn("http shutdown", "error", err)
			}
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			s.handleEvent(watcher, ev, rebuildReq)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "error", err)
		}
	}
}

// handleEvent filters one filesystem event. Newly created directories are
// added to the watch; creations never trigger a rebuild. Modifications and
// removals of content files do.
func (s *Server) handleEvent(watcher *fsnotify.Watcher, ev fsnotify.Event, rebuildReq chan<- string) {
	if ev.Op&fsnotify.Create != 0 {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(watcher, ev.Name)
		}
		return
	}
	if !site.IsContentPath(ev.Name) {
		return
	}
	if ev.Op&(fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	slog.Debug("content change detected", "path", ev.Name, "op", ev.Op.String())
	select {
	case rebuildReq <- ev.Name:
	default:
	}
}

// rebuildLoop is the single consumer of rebuild requests. The rebuild fully
// completes, files on disk, before the signal goes out, so a reloading
// client always sees the new output.
func (s *Server) rebuildLoop(ctx context.Context, rebuildReq <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case path, ok := <-rebuildReq:
			if !ok {
				return
			}
			s.runRebuild(path)
		}
	}
}

func (s *Server) runRebuild(path string) {
	slog.Info("change detected; rebuilding site", "path", path)
	if err := s.rebuild(); err != nil {
		slog.Warn("rebuild failed", "error", err)
		return
	}
	s.recorder.IncRebuild()
	s.hub.Broadcast(path)
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if werr := w.Add(path); werr != nil {
				slog.Warn("watch add failed", "dir", path, "error", werr)
			}
		}
		return nil
	})
}
