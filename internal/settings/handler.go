// Package settings provides HTTP handlers for the theme settings endpoints.
package settings

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/HerbHall/schooldesk/internal/auth"
	"github.com/HerbHall/schooldesk/internal/theme"
	"github.com/HerbHall/schooldesk/pkg/roles"
	"go.uber.org/zap"
)

// maxBodyBytes bounds theme update bodies; a full mapping is well under 4 KiB.
const maxBodyBytes = 64 << 10

// ColorsRequest is the body of POST /api/v1/theme/colors. Colors is either
// an object of token to color, or the string "reset".
// @Description Theme update: a full color mapping or the "reset" sentinel.
type ColorsRequest struct {
	Colors json.RawMessage `json:"colors" swaggertype:"object"`
}

// TokenInfo describes one customizable color slot.
// @Description A customizable color token with its CSS variable and default.
type TokenInfo struct {
	Token    string `json:"token" example:"primaryColor"`
	Group    string `json:"group" example:"app"`
	Variable string `json:"variable" example:"--primary-color"`
	Default  string `json:"default" example:"#1e3a8a"`
}

// SettingsProblemDetail represents an RFC 7807 error response for settings endpoints.
// @Description RFC 7807 Problem Details error response.
type SettingsProblemDetail struct {
	Type          string   `json:"type" example:"https://schooldesk.dev/problems/settings-error"`
	Title         string   `json:"title" example:"Bad Request"`
	Status        int      `json:"status" example:"400"`
	Detail        string   `json:"detail" example:"theme is incomplete or has malformed colors"`
	InvalidTokens []string `json:"invalid_tokens,omitempty"`
}

// ThemeService is the subset of theme.Controller the handler needs.
type ThemeService interface {
	Current(ctx context.Context) theme.Mapping
	Commit(ctx context.Context, d theme.Draft) (theme.Mapping, error)
}

// Stylesheet renders the live CSS variables.
type Stylesheet interface {
	CSS() string
}

// Compile-time interface guards.
var (
	_ ThemeService = (*theme.Controller)(nil)
	_ Stylesheet   = (*theme.Stylesheet)(nil)
)

// Handler provides HTTP handlers for theme settings endpoints.
type Handler struct {
	themes ThemeService
	sheet  Stylesheet
	logger *zap.Logger
}

// NewHandler creates a settings Handler.
func NewHandler(themes ThemeService, sheet Stylesheet, logger *zap.Logger) *Handler {
	return &Handler{
		themes: themes,
		sheet:  sheet,
		logger: logger,
	}
}

// RegisterRoutes registers theme routes on the mux. Reads are public so the
// login screen can style itself; writes require the admin role.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/theme/colors", h.handleGetColors)
	mux.HandleFunc("POST /api/v1/theme/colors", auth.RequireRole(h.handleSetColors, roles.Admin))
	mux.HandleFunc("GET /api/v1/theme/tokens", h.handleListTokens)
	mux.HandleFunc("GET /theme.css", h.handleStylesheet)
}

// handleGetColors returns the active color mapping.
//
//	@Summary		Get theme colors
//	@Description	Get the active theme as a map of token to color value.
//	@Tags			theme
//	@Produce		json
//	@Success		200	{object}	map[string]string	"Active theme"
//	@Router			/theme/colors [get]
func (h *Handler) handleGetColors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.themes.Current(r.Context()))
}

// handleSetColors saves a new theme or restores the default.
//
//	@Summary		Set theme colors
//	@Description	Save a complete color mapping, or send "reset" to restore the default theme.
//	@Tags			theme
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		ColorsRequest			true	"Colors or reset sentinel"
//	@Success		200		{object}	map[string]string		"Theme now in effect"
//	@Failure		400		{object}	SettingsProblemDetail	"Invalid request or theme"
//	@Failure		401		{object}	SettingsProblemDetail	"Not authenticated"
//	@Failure		403		{object}	SettingsProblemDetail	"Not an administrator"
//	@Failure		500		{object}	SettingsProblemDetail	"Internal server error"
//	@Router			/theme/colors [post]
func (h *Handler) handleSetColors(w http.ResponseWriter, r *http.Request) {
	var req ColorsRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeSettingsError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	draft, err := theme.ParseDraft(req.Colors)
	if err != nil {
		writeSettingsError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !draft.Reset && !theme.IsValid(draft.Colors) {
		problems := theme.Problems(draft.Colors)
		invalid := make([]string, len(problems))
		for i, p := range problems {
			invalid[i] = string(p)
		}
		writeProblem(w, SettingsProblemDetail{
			Type:          problemType,
			Title:         http.StatusText(http.StatusBadRequest),
			Status:        http.StatusBadRequest,
			Detail:        "theme is incomplete or has malformed colors: " + strings.Join(invalid, ", "),
			InvalidTokens: invalid,
		})
		return
	}

	applied, err := h.themes.Commit(r.Context(), draft)
	if err != nil {
		h.logger.Error("failed to commit theme", zap.Bool("reset", draft.Reset), zap.Error(err))
		writeSettingsError(w, http.StatusInternalServerError, "failed to save theme")
		return
	}

	if claims := auth.UserFromContext(r.Context()); claims != nil {
		h.logger.Info("theme updated",
			zap.String("by", claims.Subject),
			zap.Bool("reset", draft.Reset),
		)
	}
	writeJSON(w, http.StatusOK, applied)
}

// handleListTokens describes every customizable token.
//
//	@Summary		List theme tokens
//	@Description	Customizable color tokens with their CSS variable and default value.
//	@Tags			theme
//	@Produce		json
//	@Success		200	{array}	TokenInfo	"Tokens in display order"
//	@Router			/theme/tokens [get]
func (h *Handler) handleListTokens(w http.ResponseWriter, _ *http.Request) {
	defaults := theme.Default()
	out := make([]TokenInfo, 0, len(theme.Tokens()))
	for _, g := range []theme.Group{theme.GroupLogin, theme.GroupApp} {
		for _, tok := range theme.TokensIn(g) {
			name, _ := theme.Variable(tok)
			out = append(out, TokenInfo{
				Token:    string(tok),
				Group:    string(g),
				Variable: name,
				Default:  defaults[string(tok)],
			})
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// handleStylesheet serves the applied theme as CSS custom properties.
func (h *Handler) handleStylesheet(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(h.sheet.CSS()))
}

const problemType = "https://schooldesk.dev/problems/settings-error"

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeSettingsError writes an RFC 7807 problem response.
func writeSettingsError(w http.ResponseWriter, status int, detail string) {
	writeProblem(w, SettingsProblemDetail{
		Type:   problemType,
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	})
}

func writeProblem(w http.ResponseWriter, p SettingsProblemDetail) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}
