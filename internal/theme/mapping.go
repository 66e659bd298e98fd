package theme

// Mapping assigns a color value to each token. Keys that are not tokens are
// allowed and survive persistence untouched.
type Mapping map[string]string

// Get returns the value for t.
func (m Mapping) Get(t Token) (string, bool) {
	v, ok := m[string(t)]
	return v, ok
}

// Clone returns an independent copy. Clone of nil is nil.
func (m Mapping) Clone() Mapping {
	if m == nil {
		return nil
	}
	out := make(Mapping, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Equal reports whether m and o hold the same keys and values.
func (m Mapping) Equal(o Mapping) bool {
	if len(m) != len(o) {
		return false
	}
	for k, v := range m {
		if ov, ok := o[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Extras returns the keys that are not known tokens.
func (m Mapping) Extras() []string {
	var out []string
	for k := range m {
		if !Known(k) {
			out = append(out, k)
		}
	}
	return out
}

var defaultTheme = Mapping{
	string(LoginBackground):       "#0f2a4a",
	string(LoginCardBackground):   "#ffffff",
	string(LoginTitleColor):       "#0f2a4a",
	string(LoginTextColor):        "#334155",
	string(LoginInputBackground):  "#f8fafc",
	string(LoginInputBorder):      "#cbd5e1",
	string(LoginInputText):        "#0f172a",
	string(LoginButtonBackground): "#1d4ed8",
	string(LoginButtonText):       "#ffffff",
	string(LoginButtonHover):      "#1e40af",
	string(LoginLinkColor):        "#2563eb",
	string(LoginErrorColor):       "#dc2626",

	string(PrimaryColor):            "#1d4ed8",
	string(SecondaryColor):          "#0ea5e9",
	string(AccentColor):             "#f59e0b",
	string(BackgroundColor):         "#f1f5f9",
	string(SurfaceColor):            "#ffffff",
	string(TextColor):               "#0f172a",
	string(MutedTextColor):          "#64748b",
	string(BorderColor):             "#e2e8f0",
	string(HeaderBackground):        "#ffffff",
	string(HeaderText):              "#0f172a",
	string(SidebarBackground):       "#0f2a4a",
	string(SidebarText):             "rgba(255, 255, 255, 0.85)",
	string(SidebarActiveBackground): "rgba(255, 255, 255, 0.12)",
	string(SidebarActiveText):       "#ffffff",
}

// Default returns a fresh copy of the built-in theme.
func Default() Mapping {
	return defaultTheme.Clone()
}
