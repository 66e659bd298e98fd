package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/HerbHall/schooldesk/internal/auth"
	"github.com/HerbHall/schooldesk/internal/event"
	"github.com/HerbHall/schooldesk/internal/theme"
	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Subscriber is the subset of event.Bus the handler needs.
type Subscriber interface {
	Subscribe(topic string, fn event.Handler) (unsubscribe func())
}

// Snapshotter returns the CSS variables currently in effect.
type Snapshotter interface {
	Variables() map[string]string
}

// Handler streams applied themes to browsers.
type Handler struct {
	hub         *Hub
	tokens      *auth.TokenService
	snapshot    Snapshotter
	unsubscribe func()
	logger      *zap.Logger
}

// Compile-time check that Handler implements the server interface.
var _ interface {
	RegisterRoutes(mux *http.ServeMux)
} = (*Handler)(nil)

// NewHandler creates a WebSocket handler and subscribes to theme events.
func NewHandler(tokens *auth.TokenService, bus Subscriber, snapshot Snapshotter, logger *zap.Logger) *Handler {
	h := &Handler{
		hub:      NewHub(logger),
		tokens:   tokens,
		snapshot: snapshot,
		logger:   logger,
	}
	if bus != nil {
		h.unsubscribe = bus.Subscribe(theme.TopicApplied, h.onApplied)
	}
	return h
}

// RegisterRoutes registers WebSocket routes on the server mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/ws/theme", h.handleThemeStream)
}

// Close stops forwarding theme events.
func (h *Handler) Close() {
	if h.unsubscribe != nil {
		h.unsubscribe()
	}
}

// handleThemeStream upgrades the connection and streams applied themes.
// The theme is public, so the token query parameter is optional; a token
// that is present must be valid.
func (h *Handler) handleThemeStream(w http.ResponseWriter, r *http.Request) {
	var subject string
	if token := r.URL.Query().Get("token"); token != "" {
		claims, err := h.tokens.ValidateAccessToken(token)
		if err != nil {
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}
		subject = claims.Subject
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.logger.Error("websocket accept failed", zap.Error(err))
		return
	}

	client := &Client{
		conn:    conn,
		id:      uuid.NewString(),
		subject: subject,
		send:    make(chan Message, sendBuffer),
		logger:  h.logger,
	}

	h.hub.Register(client)
	if h.snapshot != nil {
		client.send <- Message{
			Type:      MessageThemeSnapshot,
			Timestamp: time.Now(),
			Data:      ThemeData{Variables: h.snapshot.Variables()},
		}
	}

	ctx := r.Context()
	done := make(chan struct{})
	go func() {
		client.writePump(ctx)
		close(done)
	}()

	client.readPump(ctx)

	h.hub.Unregister(client)
	conn.Close(websocket.StatusNormalClosure, "")
	<-done
}

func (h *Handler) onApplied(_ context.Context, e event.Event) {
	applied, ok := e.Payload.(theme.AppliedEvent)
	if !ok {
		return
	}
	h.hub.Broadcast(Message{
		Type:      MessageThemeApplied,
		Timestamp: e.Timestamp,
		Data: ThemeData{
			Source:    applied.Source,
			Variables: applied.Variables,
		},
	})
}
