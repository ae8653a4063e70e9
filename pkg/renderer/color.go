package renderer

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

// Color is a parsed paint color.
type Color struct {
	colorful.Color
	// Alpha is the opacity in [0, 1].
	Alpha float64
}

// Hex returns the opaque #rrggbb form of c.
func (c Color) Hex() string {
	return c.Color.Clamped().Hex()
}

// Transparent reports whether c paints nothing.
func (c Color) Transparent() bool {
	return c.Alpha == 0
}

// ParseColor parses any CSS color: hex, the named colors, "transparent"
// and the rgb(), hsl() and hwb() functions.
func ParseColor(s string) (Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	// the parser also takes bare hex digits, which CSS does not
	if v == "" || isHexDigits(v) {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	c, err := csscolorparser.Parse(v)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return Color{
		Color: colorful.Color{R: c.R, G: c.G, B: c.B},
		Alpha: math.Max(0, math.Min(1, c.A)),
	}, nil
}

func isHexDigits(v string) bool {
	for _, r := range v {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return false
		}
	}
	return true
}
