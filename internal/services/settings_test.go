package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/HerbHall/schooldesk/internal/services"
	"github.com/HerbHall/schooldesk/internal/testutil"
)

func newRepo(t *testing.T) *services.SQLiteSettingsRepository {
	t.Helper()
	repo, err := services.NewSQLiteSettingsRepository(context.Background(), testutil.NewStore(t))
	if err != nil {
		t.Fatalf("NewSQLiteSettingsRepository: %v", err)
	}
	return repo
}

func TestSettings_GetMissing(t *testing.T) {
	repo := newRepo(t)

	_, err := repo.Get(context.Background(), "nope")
	if !errors.Is(err, services.ErrNotFound) {
		t.Errorf("Get missing err = %v, want ErrNotFound", err)
	}
}

func TestSettings_SetOverwrites(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	if err := repo.Set(ctx, "theme:colors", "first"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := repo.Set(ctx, "theme:colors", "second"); err != nil {
		t.Fatalf("Set again: %v", err)
	}

	got, err := repo.Get(ctx, "theme:colors")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Value != "second" {
		t.Errorf("Value = %q, want %q", got.Value, "second")
	}
}

func TestSettings_GetAllAndDelete(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	for _, k := range []string{"b", "a", "c"} {
		if err := repo.Set(ctx, k, k+"-value"); err != nil {
			t.Fatalf("Set(%s): %v", k, err)
		}
	}
	if err := repo.Delete(ctx, "b"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, "never-existed"); err != nil {
		t.Errorf("Delete missing key: %v", err)
	}

	all, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 2 || all[0].Key != "a" || all[1].Key != "c" {
		t.Errorf("GetAll keys = %v, want [a c]", all)
	}
}
