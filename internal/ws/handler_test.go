package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/HerbHall/schooldesk/internal/auth"
	"github.com/HerbHall/schooldesk/internal/event"
	"github.com/HerbHall/schooldesk/internal/theme"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

type staticSnapshot map[string]string

func (s staticSnapshot) Variables() map[string]string { return s }

func newStreamServer(t *testing.T) (*httptest.Server, *event.Bus, *auth.TokenService) {
	t.Helper()
	tokens := auth.NewTokenService([]byte("test-secret-key-32bytes-long!!"), time.Minute)
	bus := event.NewBus(testLogger())
	h := NewHandler(tokens, bus, staticSnapshot{"--primary-color": "#1e3a8a"}, testLogger())
	t.Cleanup(h.Close)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, bus, tokens
}

func wsURL(srv *httptest.Server, query string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/ws/theme" + query
}

func TestThemeStream_SnapshotThenApplied(t *testing.T) {
	srv, bus, _ := newStreamServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, wsURL(srv, ""), nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	var snap Message
	if err := wsjson.Read(ctx, conn, &snap); err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if snap.Type != MessageThemeSnapshot || snap.Data.Variables["--primary-color"] != "#1e3a8a" {
		t.Fatalf("snapshot = %+v", snap)
	}

	bus.Publish(ctx, event.Event{
		Topic: theme.TopicApplied,
		Payload: theme.AppliedEvent{
			Source:    theme.SourceSave,
			Variables: map[string]string{"--primary-color": "#0f766e"},
		},
	})

	var applied Message
	if err := wsjson.Read(ctx, conn, &applied); err != nil {
		t.Fatalf("read applied: %v", err)
	}
	if applied.Type != MessageThemeApplied {
		t.Errorf("Type = %s, want %s", applied.Type, MessageThemeApplied)
	}
	if applied.Data.Source != theme.SourceSave || applied.Data.Variables["--primary-color"] != "#0f766e" {
		t.Errorf("applied = %+v", applied.Data)
	}
}

func TestThemeStream_Token(t *testing.T) {
	srv, _, tokens := newStreamServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, resp, err := websocket.Dial(ctx, wsURL(srv, "?token=garbage"), nil)
	if err == nil {
		t.Fatal("expected dial with bad token to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("response = %v, want 401", resp)
	}

	token, err := tokens.IssueAccessToken("user-1", "alice", "teacher")
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	conn, _, err := websocket.Dial(ctx, wsURL(srv, "?token="+token), nil)
	if err != nil {
		t.Fatalf("Dial with valid token: %v", err)
	}
	conn.Close(websocket.StatusNormalClosure, "")
}
