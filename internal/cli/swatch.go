package cli

import (
	"fmt"
	"strings"

	"github.com/HerbHall/schooldesk/internal/theme"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)
	tokenStyle   = lipgloss.NewStyle().Width(26)
	valueStyle   = lipgloss.NewStyle().Faint(true)
	badStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626")).Bold(true)
)

// backdropFor returns the color translucent values of g are composited
// over: the login page background or the app background.
func backdropFor(m theme.Mapping, g theme.Group) colorful.Color {
	key := theme.BackgroundColor
	if g == theme.GroupLogin {
		key = theme.LoginBackground
	}
	if v, ok := m.Get(key); ok {
		if c, a, err := theme.ParseColor(v); err == nil && a == 1 {
			return c
		}
	}
	return colorful.Color{R: 1, G: 1, B: 1}
}

// renderSwatches draws every token as a colored chip with its value, grouped
// by palette. Invalid or missing values are flagged instead of drawn.
func renderSwatches(m theme.Mapping) string {
	var b strings.Builder
	groups := []struct {
		group theme.Group
		title string
	}{
		{theme.GroupLogin, "Login palette"},
		{theme.GroupApp, "Application palette"},
	}

	for _, g := range groups {
		b.WriteString(headingStyle.Render(g.title))
		b.WriteString("\n")
		backdrop := backdropFor(m, g.group)
		for _, tok := range theme.TokensIn(g.group) {
			b.WriteString(swatchLine(tok, m[string(tok)], backdrop))
			b.WriteString("\n")
		}
	}

	if extras := m.Extras(); len(extras) > 0 {
		b.WriteString(headingStyle.Render("Other keys (kept, not applied)"))
		b.WriteString("\n")
		for _, k := range extras {
			fmt.Fprintf(&b, "%s %s\n", tokenStyle.Render(k), valueStyle.Render(m[k]))
		}
	}
	return b.String()
}

func swatchLine(tok theme.Token, value string, backdrop colorful.Color) string {
	name := tokenStyle.Render(string(tok))
	if value == "" {
		return name + " " + badStyle.Render("missing")
	}
	if !theme.IsColor(value) {
		return name + " " + badStyle.Render("invalid") + " " + valueStyle.Render(value)
	}

	hex, err := theme.Flatten(value, backdrop)
	if err != nil {
		return name + " " + badStyle.Render("invalid") + " " + valueStyle.Render(value)
	}
	bg, _ := colorful.Hex(hex)
	chip := lipgloss.NewStyle().
		Background(lipgloss.Color(hex)).
		Foreground(lipgloss.Color(theme.ContrastText(bg))).
		Padding(0, 1).
		Render("Aa")
	return name + " " + chip + " " + valueStyle.Render(value)
}
