package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Feed broadcasts window stats to websocket clients.
// The simulation only calls Publish; delivery happens on the Run goroutine.
type Feed struct {
	upgrader websocket.Upgrader
	stats    chan WindowStats

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	last    *WindowStats
	dropped int
}

// NewFeed creates a feed holding up to buffer undelivered windows.
func NewFeed(buffer int) *Feed {
	if buffer < 1 {
		buffer = 1
	}
	return &Feed{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		stats:   make(chan WindowStats, buffer),
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Publish queues stats for broadcast. It never blocks; a full buffer drops
// the window.
func (f *Feed) Publish(stats WindowStats) {
	select {
	case f.stats <- stats:
	default:
		f.mu.Lock()
		f.dropped++
		f.mu.Unlock()
	}
}

// Dropped returns how many windows were discarded because the buffer was full.
func (f *Feed) Dropped() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dropped
}

// Clients returns the number of connected clients.
func (f *Feed) Clients() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}

// Run broadcasts queued stats until ctx is cancelled, then closes all clients.
func (f *Feed) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			f.closeAll()
			return
		case s := <-f.stats:
			f.broadcast(s)
		}
	}
}

func (f *Feed) broadcast(s WindowStats) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.last = &s
	for conn := range f.clients {
		if err := f.write(conn, s); err != nil {
			slog.Debug("feed_client_dropped", "remote", conn.RemoteAddr().String(), "error", err)
			delete(f.clients, conn)
			conn.Close()
		}
	}
}

func (f *Feed) write(conn *websocket.Conn, s WindowStats) error {
	conn.SetWriteDeadline(time.Now().Add(time.Second))
	return conn.WriteJSON(s)
}

func (f *Feed) closeAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for conn := range f.clients {
		msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "simulation stopped")
		conn.WriteMessage(websocket.CloseMessage, msg)
		conn.Close()
		delete(f.clients, conn)
	}
}

// ServeHTTP upgrades the request and keeps the client until it disconnects.
// A new client immediately receives the most recent window, if any.
func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("feed_upgrade_failed", "error", err)
		return
	}

	f.mu.Lock()
	if f.last != nil {
		if err := f.write(conn, *f.last); err != nil {
			f.mu.Unlock()
			conn.Close()
			return
		}
	}
	f.clients[conn] = struct{}{}
	f.mu.Unlock()

	// Clients only listen; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	f.mu.Lock()
	if _, ok := f.clients[conn]; ok {
		delete(f.clients, conn)
		conn.Close()
	}
	f.mu.Unlock()
}

// ListenAndServe serves the feed at addr until ctx is cancelled.
func (f *Feed) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/feed", f)
	srv := &http.Server{Addr: addr, Handler: mux}

	go f.Run(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("feed_listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
