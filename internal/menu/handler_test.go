package menu_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/HerbHall/schooldesk/internal/auth"
	"github.com/HerbHall/schooldesk/internal/menu"
	"github.com/HerbHall/schooldesk/pkg/roles"
	"go.uber.org/zap"
)

func setupMux() *http.ServeMux {
	mux := http.NewServeMux()
	menu.NewHandler(menu.Default(), zap.NewNop()).RegisterRoutes(mux)
	return mux
}

func TestHandleMenu_FiltersByRole(t *testing.T) {
	mux := setupMux()

	req := httptest.NewRequest("GET", "/api/v1/menu", nil)
	req = req.WithContext(auth.WithUser(req.Context(), &auth.Claims{Role: roles.Parent}))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp menu.Response
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if resp.Role != "parent" {
		t.Errorf("Role = %q, want parent", resp.Role)
	}
	want := menu.Filter(menu.Default(), roles.Parent)
	if len(resp.Entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(resp.Entries), len(want))
	}
	for i := range want {
		if resp.Entries[i].Route != want[i].Route {
			t.Errorf("entry %d = %s, want %s", i, resp.Entries[i].Route, want[i].Route)
		}
	}
}

func TestHandleMenu_Anonymous(t *testing.T) {
	mux := setupMux()

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/menu", nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
