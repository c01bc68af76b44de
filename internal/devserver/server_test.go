package devserver

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"

	"github.com/pageturtle/pageturtle/internal/config"
	"github.com/pageturtle/pageturtle/internal/metrics"
)

func newTestServer(t *testing.T, rebuild func() error) *Server {
	t.Helper()
	if rebuild == nil {
		rebuild = func() error { return nil }
	}
	return &Server{
		cfg:       &config.Config{BlogTitle: "T", Author: "a", IsDevServer: true},
		outputDir: t.TempDir(),
		hub:       NewHub(nil),
		registry:  prom.NewRegistry(),
		recorder:  metrics.NoopRecorder{},
		rebuild:   rebuild,
	}
}

func newWatcher(t *testing.T) *fsnotify.Watcher {
	t.Helper()
	w, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func TestHandleEvent_NonContentFileIgnored(t *testing.T) {
	s := newTestServer(t, nil)
	req := make(chan string, 1)

	s.handleEvent(newWatcher(t), fsnotify.Event{Name: "photo.png", Op: fsnotify.Write}, req)

	require.Empty(t, req)
}

func TestHandleEvent_CreateIgnored(t *testing.T) {
	s := newTestServer(t, nil)
	req := make(chan string, 1)

	s.handleEvent(newWatcher(t), fsnotify.Event{Name: "new.md", Op: fsnotify.Create}, req)

	require.Empty(t, req)
}

func TestHandleEvent_ChmodIgnored(t *testing.T) {
	s := newTestServer(t, nil)
	req := make(chan string, 1)

	s.handleEvent(newWatcher(t), fsnotify.Event{Name: "post.md", Op: fsnotify.Chmod}, req)

	require.Empty(t, req)
}

func TestHandleEvent_ContentWriteQueuesRebuild(t *testing.T) {
	s := newTestServer(t, nil)
	req := make(chan string, 1)

	s.handleEvent(newWatcher(t), fsnotify.Event{Name: "posts/hello.md", Op: fsnotify.Write}, req)

	require.Equal(t, "posts/hello.md", <-req)
}

func TestHandleEvent_RemoveQueuesRebuild(t *testing.T) {
	s := newTestServer(t, nil)
	req := make(chan string, 1)

	s.handleEvent(newWatcher(t), fsnotify.Event{Name: "posts/old.md", Op: fsnotify.Remove}, req)

	require.Equal(t, "posts/old.md", <-req)
}

func TestRunRebuild_OneRebuildThenOneSignalToEverySession(t *testing.T) {
	rebuilds := 0
	s := newTestServer(t, func() error {
		rebuilds++
		return nil
	})

	_, a := s.hub.Subscribe()
	_, b := s.hub.Subscribe()

	s.runRebuild("posts/hello.md")

	require.Equal(t, 1, rebuilds)
	// The signal is only broadcast after the rebuild returned, and every
	// connected session observes it.
	require.Equal(t, "posts/hello.md", <-a)
	require.Equal(t, "posts/hello.md", <-b)
	require.Empty(t, a)
	require.Empty(t, b)
}

func TestRunRebuild_FailedRebuildEmitsNoSignal(t *testing.T) {
	s := newTestServer(t, func() error { return errors.New("boom") })
	_, ch := s.hub.Subscribe()

	s.runRebuild("posts/hello.md")

	require.Empty(t, ch)
}

func TestServeStatic_RootRedirectsToIndex(t *testing.T) {
	s := newTestServer(t, nil)
	ts := httptest.NewServer(s.handler())
	defer ts.Close()

	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err := client.Get(ts.URL + "/")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/index.html", resp.Header.Get("Location"))
}

func TestServeStatic_ServesOutputFiles(t *testing.T) {
	s := newTestServer(t, nil)
	require.NoError(t, os.WriteFile(filepath.Join(s.outputDir, "index.html"), []byte("<html>hi</html>"), 0o644))

	ts := httptest.NewServer(s.handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/index.html")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServeStatic_UnknownPathNotFound(t *testing.T) {
	s := newTestServer(t, nil)
	ts := httptest.NewServer(s.handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/nope.html")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, nil)
	ts := httptest.NewServer(s.handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLiveReload_SessionReceivesBroadcast(t *testing.T) {
	s := newTestServer(t, nil)
	ts := httptest.NewServer(s.handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/livereload"
	conn, err := websocket.Dial(wsURL, "", ts.URL)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	require.Eventually(t, func() bool {
		return s.hub.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	s.hub.Broadcast("posts/hello.md")

	var msg string
	require.NoError(t, websocket.Message.Receive(conn, &msg))
	require.Equal(t, "posts/hello.md", msg)
}

func TestNew_ForcesDevServerFlag(t *testing.T) {
	cfg := &config.Config{BlogTitle: "T", Author: "a", IsDevServer: false}
	s := New(cfg, t.TempDir(), t.TempDir(), 0)
	require.True(t, cfg.IsDevServer)
	require.NotNil(t, s.rebuild)
}
