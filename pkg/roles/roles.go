// Package roles defines the closed set of user roles known to SchoolDesk.
// Tokens, menu entries, and handler guards all speak in terms of Role so a
// misspelled role string is rejected at the boundary instead of silently
// matching nothing.
package roles

import (
	"fmt"
	"strings"
)

// Role is a user's authorization level within a school.
type Role string

// Role constants match the strings carried in access tokens.
const (
	Admin   Role = "admin"
	Teacher Role = "teacher"
	Student Role = "student"
	Parent  Role = "parent"
)

// All lists every valid role in display order.
func All() []Role {
	return []Role{Admin, Teacher, Student, Parent}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case Admin, Teacher, Student, Parent:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// Parse converts a role name to a Role. Matching is case-insensitive and
// ignores surrounding whitespace.
func Parse(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}
