package theme

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestParseColor(t *testing.T) {
	c, a, err := ParseColor("#FF0000")
	if err != nil {
		t.Fatalf("ParseColor hex: %v", err)
	}
	if a != 1 || c.Hex() != "#ff0000" {
		t.Errorf("hex = %s alpha %v, want #ff0000 alpha 1", c.Hex(), a)
	}

	c, a, err = ParseColor("rgba(0, 0, 255, 0.5)")
	if err != nil {
		t.Fatalf("ParseColor rgba: %v", err)
	}
	if a != 0.5 || c.Hex() != "#0000ff" {
		t.Errorf("rgba = %s alpha %v, want #0000ff alpha 0.5", c.Hex(), a)
	}

	c, _, err = ParseColor("rgba(300,0,0,2)")
	if err != nil {
		t.Fatalf("ParseColor out of range: %v", err)
	}
	if c.Hex() != "#ff0000" {
		t.Errorf("clamped = %s, want #ff0000", c.Hex())
	}

	if _, _, err := ParseColor("red"); err == nil {
		t.Error("expected error for named color")
	}
}

func TestFlatten(t *testing.T) {
	white := colorful.Color{R: 1, G: 1, B: 1}

	got, err := Flatten("rgba(0,0,0,0)", white)
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if got != "#ffffff" {
		t.Errorf("transparent over white = %s, want #ffffff", got)
	}

	got, err = Flatten("#123456", white)
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if got != "#123456" {
		t.Errorf("opaque = %s, want #123456", got)
	}
}

func TestContrastText(t *testing.T) {
	if got := ContrastText(colorful.Color{R: 1, G: 1, B: 1}); got != "#000000" {
		t.Errorf("on white = %s, want black", got)
	}
	if got := ContrastText(colorful.Color{}); got != "#ffffff" {
		t.Errorf("on black = %s, want white", got)
	}
}

func TestParseColor_Channels(t *testing.T) {
	tests := []struct {
		in      string
		wantHex string
	}{
		{"rgba(0,0,0,1)", "#000000"},
		{"rgba(255, 128, 1, 1)", "#ff8001"},
		{"rgba(999, 007, 16, .5)", "#ff0710"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			c, _, err := ParseColor(tc.in)
			if err != nil {
				t.Fatalf("ParseColor(%q): %v", tc.in, err)
			}
			if got := c.Hex(); got != tc.wantHex {
				t.Errorf("ParseColor(%q) = %s, want %s", tc.in, got, tc.wantHex)
			}
		})
	}
}
