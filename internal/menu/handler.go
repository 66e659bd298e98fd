package menu

import (
	"encoding/json"
	"net/http"

	"github.com/HerbHall/schooldesk/internal/auth"
	"go.uber.org/zap"
)

// Response is the body of GET /api/v1/menu.
// @Description Navigation entries visible to the caller's role.
type Response struct {
	Role    string  `json:"role" example:"teacher"`
	Entries []Entry `json:"entries"`
}

// Handler serves the role-filtered menu.
type Handler struct {
	entries []Entry
	logger  *zap.Logger
}

// NewHandler creates a menu Handler over entries.
func NewHandler(entries []Entry, logger *zap.Logger) *Handler {
	return &Handler{entries: entries, logger: logger}
}

// RegisterRoutes registers the menu route on the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/menu", h.handleMenu)
}

// handleMenu returns the menu for the authenticated caller.
//
//	@Summary		Get menu
//	@Description	Navigation entries visible to the caller's role.
//	@Tags			menu
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	Response	"Filtered menu"
//	@Failure		401	{object}	map[string]any	"Not authenticated"
//	@Router			/menu [get]
func (h *Handler) handleMenu(w http.ResponseWriter, r *http.Request) {
	claims := auth.UserFromContext(r.Context())
	if claims == nil {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"type":   "https://schooldesk.dev/problems/menu-error",
			"title":  http.StatusText(http.StatusUnauthorized),
			"status": http.StatusUnauthorized,
			"detail": "authentication required",
		})
		return
	}

	visible := Filter(h.entries, claims.Role)
	h.logger.Debug("menu served", zap.String("role", claims.Role.String()), zap.Int("entries", len(visible)))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(Response{Role: claims.Role.String(), Entries: visible})
}
