// Package starweave draws animated star patterns woven from zigzag lines.
//
// A zigzag is a polyline that alternates between two fixed offsets taken
// from an equilateral triangle. Six rotated copies of a zigzag and its mirror
// image form a motif, and motifs are repeated on concentric hexagonal rings.
// A single wrapping animation fraction controls how much of every zigzag is
// visible, so the pattern grows, travels and shrinks over one period.
package starweave

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"golang.org/x/image/colornames"
)

// Side is the side length S of the triangle every zigzag is built from.
const Side = 20

var (
	// CellHeight is the height H = 2S of one zigzag cell.
	CellHeight = 2.0 * Side
	// CellWidth is the width W = S·√3 of one zigzag cell.
	CellWidth = math.Sqrt(3) * Side
)

// ErrInvalidColor is returned for colors that are neither hex codes nor
// known color names.
var ErrInvalidColor = errors.New("starweave: invalid color")

// Color represents an RGB color value.
type Color struct {
	R, G, B uint8
}

// Hex returns the color as a CSS hex string.
func (c Color) Hex() string {
	return "#" + hexByte(c.R) + hexByte(c.G) + hexByte(c.B)
}

// RGBA implements color.Color. The color is always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	return r, g, b, 0xffff
}

// MarshalText encodes the color as "#rrggbb".
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText accepts anything ParseColor accepts.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseColor reads a "#rrggbb" or "#rgb" hex string or an SVG color name
// such as "tomato".
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(s, "#") {
		named, ok := colornames.Map[s]
		if !ok {
			return Color{}, fmt.Errorf("%w: unknown name %q", ErrInvalidColor, s)
		}
		return Color{R: named.R, G: named.G, B: named.B}, nil
	}

	digits := s[1:]
	if len(digits) == 3 {
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	}
	if len(digits) != 6 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	var rgb [3]uint8
	for i := range rgb {
		hi, ok1 := unhex(digits[2*i])
		lo, ok2 := unhex(digits[2*i+1])
		if !ok1 || !ok2 {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		rgb[i] = hi<<4 | lo
	}
	return Color{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
}

// MustParseColor is like ParseColor but panics on error.
// It is meant for package-level presets.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func hexByte(b uint8) string {
	const hex = "0123456789abcdef"
	return string([]byte{hex[b>>4], hex[b&0x0f]})
}

func unhex(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}

// Direction selects a zigzag or its point-mirrored twin.
// Only Forward (+1) and Mirrored (-1) are meaningful.
type Direction int

const (
	Forward  Direction = 1
	Mirrored Direction = -1
)

// Sign returns the direction as +1 or -1. Zero and positive values map to
// +1, negative values to -1.
func (d Direction) Sign() float64 {
	if d < 0 {
		return -1
	}
	return 1
}

func (d Direction) String() string {
	if d < 0 {
		return "mirrored"
	}
	return "forward"
}
