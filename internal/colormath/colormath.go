// Package colormath implements the sRGB primitives the palette generator is
// built on: hex parsing and formatting, WCAG relative luminance and contrast.
package colormath

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// ErrInvalidFormat is returned when a string is not a 6-digit hex color.
var ErrInvalidFormat = errors.New("invalid hex color")

// hexPattern matches #RRGGBB with an optional leading '#'
var hexPattern = regexp.MustCompile(`^#?([0-9a-fA-F]{2})([0-9a-fA-F]{2})([0-9a-fA-F]{2})$`)

// RGB is an sRGB color. Channels are nominally in [0, 255] but may hold
// fractional or out-of-range values while blending.
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)

// HexToRGB parses a "#RRGGBB" or "RRGGBB" string, case-insensitive.
func HexToRGB(hex string) (RGB, error) {
	m := hexPattern.FindStringSubmatch(hex)
	if m == nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidFormat, hex)
	}

	var ch [3]float64
	for i := range ch {
		v, err := strconv.ParseUint(m[i+1], 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q", ErrInvalidFormat, hex)
		}
		ch[i] = float64(v)
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// RGBToHex clamps each channel to [0, 255], rounds it and formats the
// result as "#rrggbb". It never fails.
func RGBToHex(r, g, b float64) string {
	return fmt.Sprintf("#%02x%02x%02x", toByte(r), toByte(g), toByte(b))
}

// Normalize returns the canonical "#rrggbb" form of a hex color.
func Normalize(hex string) (string, error) {
	c, err := HexToRGB(hex)
	if err != nil {
		return "", err
	}
	return c.Hex(), nil
}

// Luminance returns the WCAG relative luminance in [0, 1].
func Luminance(r, g, b float64) float64 {
	return 0.2126*linearize(r) + 0.7152*linearize(g) + 0.0722*linearize(b)
}

// ContrastRatio returns the WCAG 2.x contrast ratio between two luminances.
// The result is in [1, 21] and does not depend on argument order.
func ContrastRatio(l1, l2 float64) float64 {
	lighter := math.Max(l1, l2)
	darker := math.Min(l1, l2)
	return (lighter + 0.05) / (darker + 0.05)
}

// HexContrast parses two hex colors and returns their contrast ratio.
func HexContrast(a, b string) (float64, error) {
	ca, err := HexToRGB(a)
	if err != nil {
		return 0, err
	}
	cb, err := HexToRGB(b)
	if err != nil {
		return 0, err
	}
	return Contrast(ca, cb), nil
}

// Contrast returns the contrast ratio between two colors.
func Contrast(a, b RGB) float64 {
	return ContrastRatio(a.Luminance(), b.Luminance())
}

// Lighten blends every channel of c toward white by factor f in [0, 1].
// f = 1 always yields pure white.
func Lighten(c RGB, f float64) RGB {
	return RGB{
		R: c.R + (255-c.R)*f,
		G: c.G + (255-c.G)*f,
		B: c.B + (255-c.B)*f,
	}.Clamp()
}

// Darken scales every channel of c toward black by factor f in [0, 1].
// f = 1 always yields pure black.
func Darken(c RGB, f float64) RGB {
	return RGB{R: c.R * (1 - f), G: c.G * (1 - f), B: c.B * (1 - f)}.Clamp()
}

// Hex formats c as "#rrggbb".
func (c RGB) Hex() string {
	return RGBToHex(c.R, c.G, c.B)
}

// Luminance returns the relative luminance of c.
func (c RGB) Luminance() float64 {
	return Luminance(c.R, c.G, c.B)
}

// Clamp limits every channel to [0, 255] without rounding.
func (c RGB) Clamp() RGB {
	return RGB{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B)}
}

// Round clamps c and rounds every channel to the nearest integer, giving
// exactly the color its hex form describes.
func (c RGB) Round() RGB {
	return RGB{R: float64(toByte(c.R)), G: float64(toByte(c.G)), B: float64(toByte(c.B))}
}

// Step adds delta to every channel, clamped.
func (c RGB) Step(delta float64) RGB {
	return RGB{R: c.R + delta, G: c.G + delta, B: c.B + delta}.Clamp()
}

func (c RGB) String() string {
	return c.Hex()
}

// linearize applies the sRGB transfer function to a 0-255 channel
func linearize(v float64) float64 {
	c := clamp(v) / 255
	if c <= 0.03928 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(255, math.Max(0, v))
}

func toByte(v float64) uint8 {
	return uint8(math.Round(clamp(v)))
}
