// Package menu holds the navigation entries of the application shell and
// filters them by the caller's role.
package menu

import "github.com/HerbHall/schooldesk/pkg/roles"

// Entry is one navigation item. An empty Roles set makes the entry visible
// to every role.
type Entry struct {
	Route string    `json:"route"`
	Label string    `json:"label"`
	Icon  string    `json:"icon,omitempty"`
	Roles roles.Set `json:"-"`
}

// VisibleTo reports whether r may see e.
func (e Entry) VisibleTo(r roles.Role) bool {
	if len(e.Roles) == 0 {
		return true
	}
	return e.Roles.Has(r)
}

var defaultEntries = []Entry{
	{Route: "/dashboard", Label: "Dashboard", Icon: "home"},
	{Route: "/students", Label: "Students", Icon: "users", Roles: roles.NewSet(roles.Admin, roles.Teacher)},
	{Route: "/teachers", Label: "Teachers", Icon: "briefcase", Roles: roles.NewSet(roles.Admin)},
	{Route: "/classes", Label: "Classes", Icon: "layers", Roles: roles.NewSet(roles.Admin, roles.Teacher, roles.Student)},
	{Route: "/attendance", Label: "Attendance", Icon: "check-square", Roles: roles.NewSet(roles.Admin, roles.Teacher)},
	{Route: "/grades", Label: "Grades", Icon: "award", Roles: roles.NewSet(roles.Teacher, roles.Student, roles.Parent)},
	{Route: "/timetable", Label: "Timetable", Icon: "calendar"},
	{Route: "/children", Label: "My Children", Icon: "heart", Roles: roles.NewSet(roles.Parent)},
	{Route: "/messages", Label: "Messages", Icon: "mail"},
	{Route: "/fees", Label: "Fees", Icon: "credit-card", Roles: roles.NewSet(roles.Admin, roles.Parent)},
	{Route: "/settings/theme", Label: "Theme", Icon: "droplet", Roles: roles.NewSet(roles.Admin)},
}

// Default returns the application menu. The slice is a fresh copy.
func Default() []Entry {
	out := make([]Entry, len(defaultEntries))
	copy(out, defaultEntries)
	return out
}

// Filter returns the entries visible to r, in their original order. The
// input slice is not modified.
func Filter(entries []Entry, r roles.Role) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.VisibleTo(r) {
			out = append(out, e)
		}
	}
	return out
}
