package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"freeflix/models"
	"freeflix/utils"
)

type recordingSearch struct {
	mu      sync.Mutex
	queries []string
}

func (s *recordingSearch) Search(_ context.Context, query string) ([]models.ContentSummary, error) {
	s.mu.Lock()
	s.queries = append(s.queries, query)
	s.mu.Unlock()
	return []models.ContentSummary{{ID: 1, DisplayName: strings.TrimSpace(query)}}, nil
}

func (s *recordingSearch) calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

func dialLiveSearch(t *testing.T, svc searchService, delay time.Duration) (*websocket.Conn, context.Context) {
	t.Helper()
	srv := httptest.NewServer(NewLiveSearchHandler(svc, delay))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	c, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { c.Close(websocket.StatusNormalClosure, "") })
	return c, ctx
}

func TestLiveSearch_DebouncesKeystrokes(t *testing.T) {
	svc := &recordingSearch{}
	c, ctx := dialLiveSearch(t, svc, 150*time.Millisecond)

	for _, q := range []string{"d", "du", "dun", "dune", "dune "} {
		if err := wsjson.Write(ctx, c, liveSearchRequest{Query: q}); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	var resp liveSearchResponse
	if err := wsjson.Read(ctx, c, &resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Query != "dune " {
		t.Fatalf("expected final query, got %q", resp.Query)
	}
	if len(resp.Results) != 1 || resp.Results[0].DisplayName != "dune" {
		t.Fatalf("unexpected results: %+v", resp.Results)
	}

	time.Sleep(300 * time.Millisecond)
	if calls := svc.calls(); len(calls) != 1 || calls[0] != "dune " {
		t.Fatalf("expected exactly one fetch with the final query, got %v", calls)
	}
}

func TestLiveSearch_SeparateBursts(t *testing.T) {
	svc := &recordingSearch{}
	c, ctx := dialLiveSearch(t, svc, 20*time.Millisecond)

	for _, q := range []string{"alien", "heat"} {
		if err := wsjson.Write(ctx, c, liveSearchRequest{Query: q}); err != nil {
			t.Fatalf("write: %v", err)
		}
		var resp liveSearchResponse
		if err := wsjson.Read(ctx, c, &resp); err != nil {
			t.Fatalf("read: %v", err)
		}
		if resp.Query != q {
			t.Fatalf("expected response for %q, got %q", q, resp.Query)
		}
	}
	if calls := svc.calls(); len(calls) != 2 {
		t.Fatalf("expected two fetches, got %v", calls)
	}
}

func TestLiveSearch_OriginPolicy(t *testing.T) {
	h := NewLiveSearchHandler(&recordingSearch{}, 20*time.Millisecond)
	h.Origins = utils.NewOriginPolicy([]string{"https://freeflix.example.com"})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")

	tests := []struct {
		origin string
		ok     bool
	}{
		{"", true},
		{"http://192.168.1.20:5173", true},
		{"http://media-box.local:3000", true},
		{"https://freeflix.example.com", true},
		{srv.URL, true},
		{"https://evil.example.com", false},
	}
	for _, tt := range tests {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		header := http.Header{}
		if tt.origin != "" {
			header.Set("Origin", tt.origin)
		}
		c, resp, err := websocket.Dial(ctx, wsURL, &websocket.DialOptions{HTTPHeader: header})
		if tt.ok {
			if err != nil {
				t.Errorf("origin %q rejected: %v", tt.origin, err)
			} else {
				c.Close(websocket.StatusNormalClosure, "")
			}
		} else {
			if err == nil {
				c.Close(websocket.StatusNormalClosure, "")
				t.Errorf("origin %q accepted", tt.origin)
			} else if resp != nil && resp.StatusCode != http.StatusForbidden {
				t.Errorf("origin %q: status %d, want 403", tt.origin, resp.StatusCode)
			}
		}
		cancel()
	}
}
