package annotation

import "github.com/lucasb-eyer/go-colorful"

// DefaultColor is used when a record carries no color or an unparsable one.
const DefaultColor = "#e85d3a"

// ResolveColor normalizes an annotation's color to lowercase #rrggbb hex.
func ResolveColor(s string) string {
	if s == "" {
		return DefaultColor
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return DefaultColor
	}
	return c.Hex()
}

// BlendToward mixes a stroke color toward another in HCL space. Used for the
// de-emphasized rendering of fallback marks.
func BlendToward(hex, target string, t float64) string {
	c1, err := colorful.Hex(hex)
	if err != nil {
		c1, _ = colorful.Hex(DefaultColor)
	}
	c2, err := colorful.Hex(target)
	if err != nil {
		return c1.Hex()
	}
	return c1.BlendHcl(c2, t).Clamped().Hex()
}
