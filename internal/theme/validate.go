package theme

import "regexp"

var (
	hexColorRE  = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	rgbaColorRE = regexp.MustCompile(`^rgba\(\s*\d{1,3}\s*,\s*\d{1,3}\s*,\s*\d{1,3}\s*,\s*(\d+|\d*\.\d+)\s*\)$`)
)

// IsColor reports whether v is a 6-digit hex color or an rgba() color.
func IsColor(v string) bool {
	return hexColorRE.MatchString(v) || rgbaColorRE.MatchString(v)
}

// IsValid reports whether candidate carries every token with a well-formed
// color. candidate may be a Mapping, a map[string]string, or a
// map[string]any as decoded from JSON; anything else is invalid.
func IsValid(candidate any) bool {
	switch m := candidate.(type) {
	case Mapping:
		return m != nil && len(Problems(m)) == 0
	case map[string]string:
		return m != nil && len(Problems(Mapping(m))) == 0
	case map[string]any:
		if m == nil {
			return false
		}
		for _, t := range tokenTable {
			s, ok := m[string(t.token)].(string)
			if !ok || !IsColor(s) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Problems lists the tokens that are missing from m or hold a malformed
// color, in table order.
func Problems(m Mapping) []Token {
	var bad []Token
	for _, t := range tokenTable {
		v, ok := m[string(t.token)]
		if !ok || !IsColor(v) {
			bad = append(bad, t.token)
		}
	}
	return bad
}
