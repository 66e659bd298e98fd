// Package cli implements the schooldesk command tree.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/HerbHall/schooldesk/internal/config"
	"github.com/HerbHall/schooldesk/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string

	appConfig *config.ViperConfig
	logger    *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "schooldesk",
	Short: "SchoolDesk navigation shell and theme service",
	Long: `SchoolDesk serves the navigation shell of the school-management web app:
the role-filtered menu and the color theme applied through CSS custom properties.

Run "schooldesk serve" to start the HTTP API, or use the theme subcommands to
inspect and edit the stored theme directly.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return initConfig(cmd.Root())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to configuration file (default: schooldesk.yaml in ., ./configs, /etc/schooldesk)")
	rootCmd.PersistentFlags().String("log-level", "", "override logging.level")
	rootCmd.PersistentFlags().String("db", "", "override database.path")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func initConfig(root *cobra.Command) error {
	v, err := server.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := v.BindPFlag("logging.level", root.PersistentFlags().Lookup("log-level")); err != nil {
		return err
	}
	if err := v.BindPFlag("database.path", root.PersistentFlags().Lookup("db")); err != nil {
		return err
	}
	appConfig = config.New(v)

	logger, err = config.NewLogger(appConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// out is where commands write their results; tests swap it.
var out io.Writer = os.Stdout
