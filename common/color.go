package common

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
)

// Color is an RGB color with components in [0, 1], expressed in sRGB space.
// Colors authored as hex strings or CSS names are sRGB; use Linear before handing them to a shader.
type Color struct {
	R, G, B float32
}

var namedColors = map[string]uint32{
	"black":     0x000000,
	"white":     0xffffff,
	"red":       0xff0000,
	"green":     0x008000,
	"blue":      0x0000ff,
	"skyblue":   0x87ceeb,
	"lightblue": 0xadd8e6,
	"steelblue": 0x4682b4,
	"gray":      0x808080,
	"grey":      0x808080,
	"orange":    0xffa500,
	"purple":    0x800080,
}

// ColorFromHex builds a Color from a packed 0xRRGGBB value.
//
// Parameters:
//   - hex: the packed color
//
// Returns:
//   - Color: the unpacked sRGB color
func ColorFromHex(hex uint32) Color {
	return Color{
		R: float32((hex>>16)&0xff) / 255,
		G: float32((hex>>8)&0xff) / 255,
		B: float32(hex&0xff) / 255,
	}
}

// ParseColor parses a color written as "#RRGGBB", "#RGB", "0xRRGGBB" or a CSS color name such as "skyblue".
//
// Parameters:
//   - s: the color string
//
// Returns:
//   - Color: the parsed sRGB color
//   - error: error if the string is not a recognised color
func ParseColor(s string) (Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if hex, ok := namedColors[v]; ok {
		return ColorFromHex(hex), nil
	}

	switch {
	case strings.HasPrefix(v, "#"):
		v = v[1:]
	case strings.HasPrefix(v, "0x"):
		v = v[2:]
	default:
		return Color{}, fmt.Errorf("unknown color %q", s)
	}

	if len(v) == 3 {
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]})
	}
	if len(v) != 6 {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	hex, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return ColorFromHex(uint32(hex)), nil
}

// MustParseColor is ParseColor that panics on error. Intended for package-level color literals.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Linear converts the sRGB color to linear space.
//
// Returns:
//   - Color: the color with the sRGB transfer function removed
func (c Color) Linear() Color {
	return Color{R: srgbToLinear(c.R), G: srgbToLinear(c.G), B: srgbToLinear(c.B)}
}

// Vec4 returns the color as an RGBA array with the given alpha.
func (c Color) Vec4(alpha float32) [4]float32 {
	return [4]float32{c.R, c.G, c.B, alpha}
}

// String formats the color as "#rrggbb".
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", to8(c.R), to8(c.G), to8(c.B))
}

// UnmarshalText allows colors to be decoded directly from TOML and YAML strings.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalText encodes the color as "#rrggbb".
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func srgbToLinear(v float32) float32 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math32.Pow((v+0.055)/1.055, 2.4)
}

func to8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math32.Round(v * 255))
}
