package roles

// Set is an unordered collection of roles.
type Set map[Role]struct{}

// NewSet builds a Set from the given roles.
func NewSet(rs ...Role) Set {
	s := make(Set, len(rs))
	for _, r := range rs {
		s[r] = struct{}{}
	}
	return s
}

// Has reports whether r is a member of the set.
func (s Set) Has(r Role) bool {
	_, ok := s[r]
	return ok
}

// Slice returns the members in the order of All.
func (s Set) Slice() []Role {
	out := make([]Role, 0, len(s))
	for _, r := range All() {
		if s.Has(r) {
			out = append(out, r)
		}
	}
	return out
}
