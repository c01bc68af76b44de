package devserver

import (
	"log/slog"
	"sync"

	"github.com/pageturtle/pageturtle/internal/metrics"
)

// Hub fans change signals out to live-reload sessions.
//
// Delivery is broadcast, not work-stealing: every session owns an
// independent buffered queue and receives every signal. A single shared
// consumer queue would hand each signal to only one of the sessions, which
// is exactly the bug this type exists to prevent.
type Hub struct {
	mu       sync.Mutex
	nextID   int
	clients  map[int]chan string
	recorder metrics.Recorder
}

const clientQueueSize = 8

func NewHub(rec metrics.Recorder) *Hub {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &Hub{clients: map[int]chan string{}, recorder: rec}
}

// Subscribe registers a new session queue. The returned channel is closed
// when the session is dropped.
func (h *Hub) Subscribe() (int, <-chan string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	ch := make(chan string, clientQueueSize)
	h.clients[id] = ch
	h.recorder.SetLiveReloadClients(len(h.clients))
	return id, ch
}

// Unsubscribe removes a session queue. Safe to call more than once.
func (h *Hub) Unsubscribe(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.clients[id]; ok {
		delete(h.clients, id)
		close(ch)
		h.recorder.SetLiveReloadClients(len(h.clients))
	}
}

// Broadcast delivers signal to every current session. Sessions whose queue
// is full are considered gone and dropped.
//
// Sends happen under the hub lock: Unsubscribe closes session queues, and a
// send may never race a close. Sends are non-blocking, so the lock is held
// only for the enqueue itself.
func (h *Hub) Broadcast(signal string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for id, ch := range h.clients {
		select {
		case ch <- signal:
			delivered++
		default:
			slog.Debug("dropping slow live-reload session", "id", id)
			delete(h.clients, id)
			close(ch)
			h.recorder.IncLiveReloadDropped()
		}
	}
	h.recorder.SetLiveReloadClients(len(h.clients))
	if delivered > 0 {
		h.recorder.IncLiveReloadBroadcast()
	}
}

// ClientCount returns the number of live sessions.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
