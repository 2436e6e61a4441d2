// Package geometry provides the canvas-space arithmetic used by the format
// adapter and the safe-zone compliance rule.
//
// Coordinates follow the canvas convention: the origin is the top-left
// corner, X grows to the right and Y grows downwards.
package geometry

import "math"

// RatioTolerance is the absolute aspect-ratio difference under which two
// ratios are treated as the same.
const RatioTolerance = 0.01

// Size is a width/height pair in pixels.
type Size struct {
	W, H float64
}

// Ratio returns W/H, or 0 when H is not positive.
func (s Size) Ratio() float64 {
	return Ratio(s.W, s.H)
}

// Area returns W×H.
func (s Size) Area() float64 {
	return s.W * s.H
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Area returns the rectangle's area.
func (r Rect) Area() float64 {
	return r.W * r.H
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Contains reports whether o lies entirely within r (edges inclusive).
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// Inset shrinks r by margin on every side. The result never has negative
// dimensions.
func (r Rect) Inset(margin float64) Rect {
	out := Rect{X: r.X + margin, Y: r.Y + margin, W: r.W - 2*margin, H: r.H - 2*margin}
	if out.W < 0 {
		out.W = 0
	}
	if out.H < 0 {
		out.H = 0
	}
	return out
}

// Ratio returns w/h, or 0 when h is not positive.
func Ratio(w, h float64) float64 {
	if h <= 0 {
		return 0
	}
	return w / h
}

// NearlyEqualRatio reports whether |a-b| <= tol.
func NearlyEqualRatio(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// FitRatio derives a canvas with the target ratio from src without ever
// growing either dimension. A wider target keeps the width and shortens
// the height; a taller (or equal) target keeps the height and narrows the
// width. The derived dimension is floored to whole pixels.
func FitRatio(src Size, ratio float64) Size {
	if ratio > src.Ratio() {
		return Size{W: src.W, H: math.Floor(src.W / ratio)}
	}
	return Size{W: math.Floor(src.H * ratio), H: src.H}
}

// CenterIn returns the top-left position that centers inner in outer.
// Offsets are negative when inner is larger than outer.
func CenterIn(inner, outer Size) (x, y float64) {
	return (outer.W - inner.W) / 2, (outer.H - inner.H) / 2
}
