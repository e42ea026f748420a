package telemetry

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialFeed(t *testing.T, f *Feed) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		t.Fatalf("failed to open websocket connection: %v", err)
	}
	t.Cleanup(func() {
		conn.Close()
		if resp != nil {
			resp.Body.Close()
		}
	})
	return conn
}

func TestFeedDeliversStats(t *testing.T) {
	f := NewFeed(4)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go f.Run(ctx)

	conn := dialFeed(t, f)
	f.Publish(WindowStats{WindowEndTick: 600, Minions: 12, Extinctions: 1})

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var got WindowStats
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if got.WindowEndTick != 600 || got.Minions != 12 || got.Extinctions != 1 {
		t.Errorf("got %+v, want window 600 with 12 minions and 1 extinction", got)
	}
}

func TestFeedPublishNeverBlocks(t *testing.T) {
	f := NewFeed(2)
	for i := 0; i < 5; i++ {
		f.Publish(WindowStats{WindowEndTick: int32(i)})
	}
	if got := f.Dropped(); got != 3 {
		t.Errorf("Dropped = %d, want 3", got)
	}
}
