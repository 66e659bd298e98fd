package settings_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/HerbHall/schooldesk/internal/auth"
	"github.com/HerbHall/schooldesk/internal/services"
	"github.com/HerbHall/schooldesk/internal/settings"
	"github.com/HerbHall/schooldesk/internal/testutil"
	"github.com/HerbHall/schooldesk/internal/theme"
	"github.com/HerbHall/schooldesk/pkg/roles"
	"go.uber.org/zap"
)

type handlerEnv struct {
	mux   *http.ServeMux
	ctrl  *theme.Controller
	sheet *theme.Stylesheet
}

func setupHandlerEnv(t *testing.T) *handlerEnv {
	t.Helper()

	store := testutil.NewStore(t)
	repo, err := services.NewSQLiteSettingsRepository(context.Background(), store)
	if err != nil {
		t.Fatalf("NewSQLiteSettingsRepository: %v", err)
	}

	logger := zap.NewNop()
	sheet := theme.NewStylesheet()
	ctrl := theme.NewController(
		theme.NewLocalStore(repo, "", logger),
		theme.NewApplier(sheet, logger),
		logger,
	)
	ctrl.Load(context.Background())

	mux := http.NewServeMux()
	settings.NewHandler(ctrl, sheet, logger).RegisterRoutes(mux)
	return &handlerEnv{mux: mux, ctrl: ctrl, sheet: sheet}
}

func doRequest(mux *http.ServeMux, method, path string, body any, role roles.Role) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req = req.WithContext(auth.WithUser(req.Context(), &auth.Claims{Role: role}))
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decodeMapping(t *testing.T, w *httptest.ResponseRecorder) theme.Mapping {
	t.Helper()
	var m theme.Mapping
	if err := json.NewDecoder(w.Body).Decode(&m); err != nil {
		t.Fatalf("Decode response: %v", err)
	}
	return m
}

func TestHandleGetColors_Default(t *testing.T) {
	env := setupHandlerEnv(t)

	w := doRequest(env.mux, "GET", "/api/v1/theme/colors", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := decodeMapping(t, w); !got.Equal(theme.Default()) {
		t.Errorf("colors = %v, want default", got)
	}
}

func TestHandleSetColors_Save(t *testing.T) {
	env := setupHandlerEnv(t)

	m := theme.Default()
	m[string(theme.PrimaryColor)] = "#0f766e"
	w := doRequest(env.mux, "POST", "/api/v1/theme/colors", theme.ColorsEnvelope{Colors: m}, roles.Admin)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	if got := decodeMapping(t, w); !got.Equal(m) {
		t.Errorf("response = %v, want %v", got, m)
	}

	w = doRequest(env.mux, "GET", "/api/v1/theme/colors", nil, "")
	if got := decodeMapping(t, w); !got.Equal(m) {
		t.Errorf("GET after POST = %v, want %v", got, m)
	}
	if v := env.sheet.Variables()["--primary-color"]; v != "#0f766e" {
		t.Errorf("--primary-color = %q, want #0f766e", v)
	}
}

func TestHandleSetColors_Reset(t *testing.T) {
	env := setupHandlerEnv(t)

	m := theme.Default()
	m[string(theme.AccentColor)] = "#facc15"
	if err := env.ctrl.Save(context.Background(), m); err != nil {
		t.Fatalf("Save: %v", err)
	}

	w := doRequest(env.mux, "POST", "/api/v1/theme/colors", `{"colors":"reset"}`, roles.Admin)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	if got := decodeMapping(t, w); !got.Equal(theme.Default()) {
		t.Errorf("response = %v, want default", got)
	}
}

func TestHandleSetColors_Rejects(t *testing.T) {
	env := setupHandlerEnv(t)

	broken := theme.Default()
	broken[string(theme.HeaderText)] = "white"
	delete(broken, string(theme.LoginErrorColor))

	tests := []struct {
		name       string
		body       any
		role       roles.Role
		wantStatus int
		wantTokens []string
	}{
		{name: "anonymous", body: theme.ColorsEnvelope{Colors: theme.Default()}, wantStatus: http.StatusUnauthorized},
		{name: "teacher", body: theme.ColorsEnvelope{Colors: theme.Default()}, role: roles.Teacher, wantStatus: http.StatusForbidden},
		{name: "malformed json", body: `{"colors":`, role: roles.Admin, wantStatus: http.StatusBadRequest},
		{name: "missing colors", body: `{}`, role: roles.Admin, wantStatus: http.StatusBadRequest},
		{name: "unknown sentinel", body: `{"colors":"defaults"}`, role: roles.Admin, wantStatus: http.StatusBadRequest},
		{
			name:       "invalid mapping",
			body:       theme.ColorsEnvelope{Colors: broken},
			role:       roles.Admin,
			wantStatus: http.StatusBadRequest,
			wantTokens: []string{"loginErrorColor", "headerText"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(env.mux, "POST", "/api/v1/theme/colors", tt.body, tt.role)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/problem+json" {
				t.Errorf("Content-Type = %q, want application/problem+json", ct)
			}
			if tt.wantTokens == nil {
				return
			}

			var p settings.SettingsProblemDetail
			if err := json.NewDecoder(w.Body).Decode(&p); err != nil {
				t.Fatalf("Decode problem: %v", err)
			}
			if len(p.InvalidTokens) != len(tt.wantTokens) {
				t.Fatalf("invalid_tokens = %v, want %v", p.InvalidTokens, tt.wantTokens)
			}
			for i := range tt.wantTokens {
				if p.InvalidTokens[i] != tt.wantTokens[i] {
					t.Errorf("invalid_tokens[%d] = %s, want %s", i, p.InvalidTokens[i], tt.wantTokens[i])
				}
			}
		})
	}

	w := doRequest(env.mux, "GET", "/api/v1/theme/colors", nil, "")
	if got := decodeMapping(t, w); !got.Equal(theme.Default()) {
		t.Errorf("rejected requests changed the theme: %v", got)
	}
}

func TestHandleListTokens(t *testing.T) {
	env := setupHandlerEnv(t)

	w := doRequest(env.mux, "GET", "/api/v1/theme/tokens", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var tokens []settings.TokenInfo
	if err := json.NewDecoder(w.Body).Decode(&tokens); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(tokens) != len(theme.Tokens()) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(theme.Tokens()))
	}
	first := tokens[0]
	if first.Token != "loginBackground" || first.Group != "login" || first.Variable != "--login-background" {
		t.Errorf("first token = %+v", first)
	}
}

func TestHandleStylesheet(t *testing.T) {
	env := setupHandlerEnv(t)

	w := doRequest(env.mux, "GET", "/theme.css", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/css") {
		t.Errorf("Content-Type = %q, want text/css", ct)
	}
	body := w.Body.String()
	if !strings.HasPrefix(body, ":root {") {
		t.Errorf("stylesheet does not open with :root: %q", body)
	}
	if !strings.Contains(body, "--primary-color: "+theme.Default()[string(theme.PrimaryColor)]+";") {
		t.Errorf("stylesheet missing primary color:\n%s", body)
	}
}
