package theme

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

var rgbaPartsRE = regexp.MustCompile(`^rgba\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d+|\d*\.\d+)\s*\)$`)

// ParseColor converts a theme color value into an opaque color plus its
// alpha. Channels above 255 are clamped since the format check only bounds
// digit count.
func ParseColor(v string) (colorful.Color, float64, error) {
	if hexColorRE.MatchString(v) {
		c, err := colorful.Hex(v)
		if err != nil {
			return colorful.Color{}, 0, fmt.Errorf("parse hex %q: %w", v, err)
		}
		return c, 1, nil
	}

	parts := rgbaPartsRE.FindStringSubmatch(v)
	if parts == nil {
		return colorful.Color{}, 0, fmt.Errorf("unsupported color %q", v)
	}

	var ch [3]float64
	for i := range ch {
		n, err := strconv.Atoi(parts[i+1])
		if err != nil {
			return colorful.Color{}, 0, fmt.Errorf("parse channel %q: %w", parts[i+1], err)
		}
		ch[i] = float64(min(n, 255)) / 255
	}
	alpha, err := strconv.ParseFloat(parts[4], 64)
	if err != nil {
		return colorful.Color{}, 0, fmt.Errorf("parse alpha %q: %w", parts[4], err)
	}
	return colorful.Color{R: ch[0], G: ch[1], B: ch[2]}, min(alpha, 1), nil
}

// Flatten composites v over background and returns an opaque hex color,
// suitable for terminals and other surfaces without alpha support.
func Flatten(v string, background colorful.Color) (string, error) {
	c, a, err := ParseColor(v)
	if err != nil {
		return "", err
	}
	if a < 1 {
		c = background.BlendRgb(c, a)
	}
	return c.Clamped().Hex(), nil
}

// ContrastText picks black or white text for a background color.
func ContrastText(bg colorful.Color) string {
	l, _, _ := bg.Lab()
	if l > 0.6 {
		return "#000000"
	}
	return "#ffffff"
}
