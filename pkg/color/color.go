// Package color provides hex color parsing and WCAG contrast math.
//
// All functions are pure and safe for concurrent use.
//
// # Luminance
//
// [RelativeLuminance] linearizes each sRGB channel with the WCAG 2.x
// piecewise transfer function (threshold 0.03928) and weights the result
// with the Rec. 709 coefficients 0.2126, 0.7152 and 0.0722. The formula is
// reproduced literally so that contrast ratios match published calculators.
//
// # Contrast
//
// [ContrastRatio] returns (Lmax + 0.05) / (Lmin + 0.05), a value in [1, 21].
// It is symmetric in its arguments.
//
// # Perceptual distance
//
// [Distance] measures how far apart two colors look using CIEDE2000, which
// the approved-palette compliance rule uses to tolerate rounding in brand
// colors.
package color

import (
	"math"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/creativeforge/pkg/errors"
)

// hexRegex matches exactly six hex digits with an optional leading '#'.
var hexRegex = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// RGB is an 8-bit sRGB color.
type RGB struct {
	R, G, B uint8
}

// Common colors.
var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)

// ParseHex parses "#RRGGBB" or "RRGGBB" (case-insensitive).
// Shorthand "#RGB", named colors and surrounding whitespace are rejected
// with an INVALID_COLOR error.
func ParseHex(s string) (RGB, error) {
	if !hexRegex.MatchString(s) {
		return RGB{}, errors.New(errors.ErrCodeInvalidColor, "invalid hex color %q (want #RRGGBB)", s)
	}
	c, err := colorful.Hex("#" + strings.TrimPrefix(s, "#"))
	if err != nil {
		return RGB{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid hex color %q", s)
	}
	r, g, b := c.RGB255()
	return RGB{r, g, b}, nil
}

// MustParseHex is like ParseHex but panics on error.
// It is intended for package-level constants and tests.
func MustParseHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ValidHex reports whether s is a well-formed #RRGGBB color.
func ValidHex(s string) bool {
	return hexRegex.MatchString(s)
}

// Hex renders the color as lowercase "#rrggbb".
func (c RGB) Hex() string {
	return c.colorful().Hex()
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// RelativeLuminance returns the WCAG relative luminance of c in [0, 1].
func RelativeLuminance(c RGB) float64 {
	return 0.2126*linearize(c.R) + 0.7152*linearize(c.G) + 0.0722*linearize(c.B)
}

func linearize(channel uint8) float64 {
	v := float64(channel) / 255
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio returns the WCAG contrast ratio between a and b.
func ContrastRatio(a, b RGB) float64 {
	la, lb := RelativeLuminance(a), RelativeLuminance(b)
	lmax, lmin := math.Max(la, lb), math.Min(la, lb)
	return (lmax + 0.05) / (lmin + 0.05)
}

// ContrastRatioHex parses both colors and returns their contrast ratio.
func ContrastRatioHex(a, b string) (float64, error) {
	ca, err := ParseHex(a)
	if err != nil {
		return 0, err
	}
	cb, err := ParseHex(b)
	if err != nil {
		return 0, err
	}
	return ContrastRatio(ca, cb), nil
}

// Distance returns the CIEDE2000 color difference between a and b on the
// conventional 0-100 scale (a difference below ~2.3 is barely noticeable).
func Distance(a, b RGB) float64 {
	return a.colorful().DistanceCIEDE2000(b.colorful()) * 100
}

// Nearest returns the palette entry closest to c and its distance.
// It returns ok=false for an empty palette.
func Nearest(c RGB, palette []RGB) (nearest RGB, dist float64, ok bool) {
	dist = math.Inf(1)
	for _, p := range palette {
		if d := Distance(c, p); d < dist {
			nearest, dist, ok = p, d, true
		}
	}
	return nearest, dist, ok
}
