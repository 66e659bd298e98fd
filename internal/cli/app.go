package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/HerbHall/schooldesk/internal/event"
	"github.com/HerbHall/schooldesk/internal/services"
	"github.com/HerbHall/schooldesk/internal/store"
	"github.com/HerbHall/schooldesk/internal/theme"
	"github.com/HerbHall/schooldesk/internal/version"
	"go.uber.org/zap"
)

// themeStack is the theme pipeline wired against the local database.
type themeStack struct {
	db         *store.SQLiteStore
	bus        *event.Bus
	sheet      *theme.Stylesheet
	controller *theme.Controller
	cfg        theme.Config
}

func (s *themeStack) Close() error {
	return s.db.Close()
}

// openThemeStack opens the database and builds the theme controller from
// the "theme" configuration section. Remote sync is attached only when
// theme.remote.url is set.
func openThemeStack(ctx context.Context, log *zap.Logger) (*themeStack, error) {
	var cfg theme.Config
	if err := appConfig.Sub("theme").Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid theme configuration: %w", err)
	}

	dbPath := appConfig.GetString("database.path")
	if dbPath == "" {
		dbPath = "schooldesk.db"
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	db, err := store.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.CheckVersion(ctx, version.Short()); err != nil {
		db.Close()
		return nil, err
	}

	repo, err := services.NewSQLiteSettingsRepository(ctx, db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize settings repository: %w", err)
	}

	bus := event.NewBus(log.Named("event"))
	sheet := theme.NewStylesheet()
	opts := []theme.Option{theme.WithPublisher(bus)}
	if cfg.Remote.Enabled() {
		opts = append(opts, theme.WithRemote(theme.NewClient(
			cfg.Remote.URL, cfg.Remote.Token, cfg.Remote.Timeout, log.Named("theme-remote"),
		)))
		log.Info("theme remote sync enabled", zap.String("url", cfg.Remote.URL))
	}

	ctrl := theme.NewController(
		theme.NewLocalStore(repo, cfg.StorageKey, log.Named("theme-store")),
		theme.NewApplier(sheet, log.Named("theme-applier")),
		log.Named("theme"),
		opts...,
	)

	return &themeStack{db: db, bus: bus, sheet: sheet, controller: ctrl, cfg: cfg}, nil
}
