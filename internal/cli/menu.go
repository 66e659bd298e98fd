package cli

import (
	"github.com/HerbHall/schooldesk/internal/menu"
	"github.com/HerbHall/schooldesk/pkg/roles"
	"github.com/spf13/cobra"
)

var menuRole string

func init() {
	rootCmd.AddCommand(menuCmd)
	menuCmd.Flags().StringVarP(&menuRole, "role", "r", "", "role to filter for (admin, teacher, student, parent); empty lists every entry")
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "List navigation entries visible to a role",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries := menu.Default()
		if menuRole != "" {
			r, err := roles.Parse(menuRole)
			if err != nil {
				return err
			}
			entries = menu.Filter(entries, r)
		}
		return writeTable(out, []string{"ROUTE", "LABEL", "ROLES"}, menuRows(entries))
	},
}

func menuRows(entries []menu.Entry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		who := "everyone"
		if len(e.Roles) > 0 {
			who = joinRoles(e.Roles.Slice())
		}
		rows = append(rows, []string{e.Route, e.Label, who})
	}
	return rows
}

func joinRoles(rs []roles.Role) string {
	s := ""
	for i, r := range rs {
		if i > 0 {
			s += ","
		}
		s += r.String()
	}
	return s
}
