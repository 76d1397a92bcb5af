package frontend

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// themeColors are resolved to the theme's RGB custom properties.
var themeColors = map[string]bool{
	"red":         true,
	"pink":        true,
	"purple":      true,
	"deep-purple": true,
	"indigo":      true,
	"blue":        true,
	"light-blue":  true,
	"cyan":        true,
	"teal":        true,
	"green":       true,
	"light-green": true,
	"lime":        true,
	"yellow":      true,
	"amber":       true,
	"orange":      true,
	"deep-orange": true,
	"brown":       true,
	"light-grey":  true,
	"grey":        true,
	"dark-grey":   true,
	"blue-grey":   true,
	"black":       true,
	"white":       true,
	"disabled":    true,
}

// RGBColor resolves a configured color to an "r,g,b" triplet usable inside
// rgb() and rgba(). Theme color names resolve to their custom property, hex
// colors are converted, anything else is passed through unchanged. An
// unparsable hex color resolves to "".
func (f *Frontend) RGBColor(color string) string {
	switch {
	case color == "primary" || color == "accent":
		return fmt.Sprintf("var(--rgb-%s-color)", color)
	case themeColors[color]:
		return fmt.Sprintf("var(--rgb-%s)", color)
	case strings.HasPrefix(color, "#"):
		c, err := colorful.Hex(color)
		if err != nil {
			return ""
		}
		r, g, b := c.RGB255()
		return fmt.Sprintf("%d,%d,%d", r, g, b)
	}
	return color
}
