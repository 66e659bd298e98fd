package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/HerbHall/schooldesk/internal/theme"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	themeJSON         bool
	themeExportFormat string
	themeExportOutput string
	themeImportFormat string
)

func init() {
	rootCmd.AddCommand(themeCmd)
	themeCmd.AddCommand(themeShowCmd, themeGetCmd, themeSetCmd, themeResetCmd,
		themeExportCmd, themeImportCmd, themeCSSCmd, themeTokensCmd)

	themeShowCmd.Flags().BoolVar(&themeJSON, "json", false, "print the mapping as JSON")
	themeExportCmd.Flags().StringVarP(&themeExportFormat, "format", "f", "", "json or yaml (default: from --output extension, else json)")
	themeExportCmd.Flags().StringVarP(&themeExportOutput, "output", "o", "", "write to file instead of stdout")
	themeImportCmd.Flags().StringVarP(&themeImportFormat, "format", "f", "", "json or yaml (default: from file extension)")
}

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Inspect and edit the color theme",
	Long: `Inspect and edit the color theme stored in the local database.

Edits follow the same path as the HTTP API: the theme is written locally,
applied, then offered to the configured remote.`,
}

var themeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active theme as color swatches",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTheme(func(ctx context.Context, s *themeStack) error {
			m := s.controller.Load(ctx)
			if themeJSON {
				return writeJSON(m)
			}
			fmt.Fprint(out, renderSwatches(m))
			return nil
		})
	},
}

var themeGetCmd = &cobra.Command{
	Use:   "get <token>",
	Short: "Print one token's color",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTheme(func(ctx context.Context, s *themeStack) error {
			m := s.controller.Load(ctx)
			v, ok := m[args[0]]
			if !ok {
				return fmt.Errorf("no value for %q", args[0])
			}
			fmt.Fprintln(out, v)
			return nil
		})
	},
}

var themeSetCmd = &cobra.Command{
	Use:   "set <token>=<color>...",
	Short: "Change one or more token colors",
	Example: `  schooldesk theme set primaryColor=#0f766e
  schooldesk theme set "sidebarBackground=rgba(15, 42, 74, 0.95)" headerText=#ffffff`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		changes, err := parseAssignments(args)
		if err != nil {
			return err
		}
		return withTheme(func(ctx context.Context, s *themeStack) error {
			m := s.controller.Load(ctx).Clone()
			for k, v := range changes {
				m[k] = v
			}
			if err := s.controller.Save(ctx, m); err != nil {
				return err
			}
			fmt.Fprintf(out, "updated %d token(s)\n", len(changes))
			return nil
		})
	},
}

var themeResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default theme",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTheme(func(ctx context.Context, s *themeStack) error {
			if _, err := s.controller.Reset(ctx); err != nil {
				return err
			}
			fmt.Fprintln(out, "theme reset to defaults")
			return nil
		})
	},
}

var themeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the active theme as JSON or YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := themeExportFormat
		if format == "" {
			format = formatFromPath(themeExportOutput)
		}
		return withTheme(func(ctx context.Context, s *themeStack) error {
			data, err := encodeTheme(s.controller.Load(ctx), format)
			if err != nil {
				return err
			}
			if themeExportOutput == "" {
				_, err = out.Write(data)
				return err
			}
			return os.WriteFile(themeExportOutput, data, 0o644)
		})
	},
}

var themeImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the theme with one read from a JSON or YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		format := themeImportFormat
		if format == "" {
			format = formatFromPath(args[0])
		}
		m, err := decodeTheme(data, format)
		if err != nil {
			return err
		}
		if bad := theme.Problems(m); len(bad) > 0 {
			return problemsError(bad)
		}
		return withTheme(func(ctx context.Context, s *themeStack) error {
			if err := s.controller.Save(ctx, m); err != nil {
				return err
			}
			fmt.Fprintf(out, "imported theme from %s\n", args[0])
			return nil
		})
	},
}

var themeCSSCmd = &cobra.Command{
	Use:   "css",
	Short: "Print the active theme as CSS custom properties",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTheme(func(ctx context.Context, s *themeStack) error {
			s.controller.Load(ctx)
			fmt.Fprint(out, s.sheet.CSS())
			return nil
		})
	},
}

var themeTokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "List customizable tokens and their CSS variables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults := theme.Default()
		rows := make([][]string, 0, len(theme.Tokens()))
		for _, g := range []theme.Group{theme.GroupLogin, theme.GroupApp} {
			for _, tok := range theme.TokensIn(g) {
				name, _ := theme.Variable(tok)
				rows = append(rows, []string{string(tok), string(g), name, defaults[string(tok)]})
			}
		}
		return writeTable(out, []string{"TOKEN", "GROUP", "VARIABLE", "DEFAULT"}, rows)
	},
}

// withTheme opens the theme stack for the duration of fn.
func withTheme(fn func(ctx context.Context, s *themeStack) error) error {
	ctx := context.Background()
	s, err := openThemeStack(ctx, logger)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(ctx, s)
}

// parseAssignments turns token=color arguments into a change set. Only known
// tokens with well-formed colors are accepted.
func parseAssignments(args []string) (map[string]string, error) {
	changes := make(map[string]string, len(args))
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if !ok || k == "" {
			return nil, fmt.Errorf("expected token=color, got %q", a)
		}
		if !theme.Known(k) {
			return nil, fmt.Errorf("unknown token %q (see \"schooldesk theme tokens\")", k)
		}
		if !theme.IsColor(v) {
			return nil, fmt.Errorf("%s: %q is not #rrggbb or rgba(r, g, b, a)", k, v)
		}
		changes[k] = v
	}
	return changes, nil
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

func encodeTheme(m theme.Mapping, format string) ([]byte, error) {
	switch format {
	case "json", "":
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "yaml":
		return yaml.Marshal(map[string]string(m))
	default:
		return nil, fmt.Errorf("unsupported format %q: must be json or yaml", format)
	}
}

func decodeTheme(data []byte, format string) (theme.Mapping, error) {
	var m theme.Mapping
	var err error
	switch format {
	case "json", "":
		err = json.Unmarshal(data, &m)
	case "yaml":
		err = yaml.Unmarshal(data, &m)
	default:
		return nil, fmt.Errorf("unsupported format %q: must be json or yaml", format)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s theme: %w", format, err)
	}
	if m == nil {
		return nil, errors.New("theme file is empty")
	}
	return m, nil
}

func problemsError(bad []theme.Token) error {
	names := make([]string, len(bad))
	for i, t := range bad {
		names[i] = string(t)
	}
	sort.Strings(names)
	return fmt.Errorf("theme is incomplete or has malformed colors: %s", strings.Join(names, ", "))
}

func writeJSON(v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
