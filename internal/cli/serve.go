package cli

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/HerbHall/schooldesk/api/swagger"
	"github.com/HerbHall/schooldesk/internal/auth"
	"github.com/HerbHall/schooldesk/internal/menu"
	"github.com/HerbHall/schooldesk/internal/server"
	"github.com/HerbHall/schooldesk/internal/settings"
	"github.com/HerbHall/schooldesk/internal/version"
	"github.com/HerbHall/schooldesk/internal/ws"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API: theme colors, live stylesheet, role-filtered menu,
and the websocket stream of applied themes.

The theme is loaded once at startup (local cache, then the configured remote,
then the built-in default) and applied to the stylesheet served at /theme.css.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	logger.Info("SchoolDesk server starting", zap.String("version", version.Short()))
	if f := appConfig.Viper().ConfigFileUsed(); f != "" {
		logger.Info("configuration loaded", zap.String("component", "config"), zap.String("source", f))
	} else {
		logger.Warn("no configuration file found, using defaults", zap.String("component", "config"))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stack, err := openThemeStack(ctx, logger)
	if err != nil {
		return err
	}
	defer stack.Close()

	active := stack.controller.Load(ctx)
	logger.Info("theme applied",
		zap.String("component", "theme"),
		zap.Int("tokens", len(active)),
		zap.Strings("extra_keys", active.Extras()),
	)

	tokens, err := newTokenService()
	if err != nil {
		return err
	}

	var srvCfg server.Config
	if err := appConfig.Sub("server").Unmarshal(&srvCfg); err != nil {
		return fmt.Errorf("invalid server configuration: %w", err)
	}
	var rl server.RateLimitConfig
	if err := appConfig.Sub("ratelimit").Unmarshal(&rl); err != nil {
		return fmt.Errorf("invalid ratelimit configuration: %w", err)
	}

	settingsHandler := settings.NewHandler(stack.controller, stack.sheet, logger.Named("settings"))
	menuHandler := menu.NewHandler(menu.Default(), logger.Named("menu"))
	wsHandler := ws.NewHandler(tokens, stack.bus, stack.sheet, logger.Named("ws"))
	defer wsHandler.Close()

	srv := server.New(server.Options{
		Addr:      srvCfg.Addr(),
		DevMode:   srvCfg.DevMode,
		RateLimit: rl,
		Auth:      auth.AuthMiddleware(tokens),
		Ready: func(ctx context.Context) error {
			return stack.db.DB().PingContext(ctx)
		},
	}, logger, settingsHandler, menuHandler, wsHandler)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	logger.Info("SchoolDesk server ready", zap.String("addr", srv.Addr()))
	fmt.Fprintf(os.Stderr, "\n  SchoolDesk %s is ready on http://localhost:%d\n\n", version.Short(), srvCfg.Port)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("SchoolDesk server stopped")
	return nil
}

// newTokenService builds the JWT service from the "auth" section. Without a
// configured secret a random one is generated, so tokens do not survive a
// restart.
func newTokenService() (*auth.TokenService, error) {
	secret := appConfig.GetString("auth.jwt_secret")
	if secret == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return nil, fmt.Errorf("generate JWT secret: %w", err)
		}
		secret = hex.EncodeToString(b)
		logger.Warn("using auto-generated JWT secret; set auth.jwt_secret to keep tokens valid across restarts",
			zap.String("component", "auth"))
	}

	ttl := appConfig.GetDuration("auth.access_token_ttl")
	if ttl == 0 {
		ttl = 12 * time.Hour
	}
	return auth.NewTokenService([]byte(secret), ttl), nil
}
