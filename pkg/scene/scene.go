package scene

import (
	"math"
	"slices"

	"github.com/matzehuels/creativeforge/pkg/color"
	"github.com/matzehuels/creativeforge/pkg/errors"
	"github.com/matzehuels/creativeforge/pkg/geometry"
)

// DefaultBackground is used by New when no background is given.
const DefaultBackground = "#ffffff"

// Scene is the full creative: a canvas plus its elements in insertion order.
type Scene struct {
	Width      float64   `json:"width" yaml:"width"`
	Height     float64   `json:"height" yaml:"height"`
	Background string    `json:"backgroundColor" yaml:"backgroundColor"`
	Elements   []Element `json:"elements" yaml:"elements"`
}

// New creates an empty scene with the given canvas size and a white background.
func New(width, height float64) Scene {
	return Scene{Width: width, Height: height, Background: DefaultBackground}
}

// With returns a copy of s with elems appended. s is left untouched.
func (s Scene) With(elems ...Element) Scene {
	out := s.Clone()
	for _, e := range elems {
		out.Elements = append(out.Elements, e.Clone())
	}
	return out
}

// Clone returns a deep copy of s. The copy shares no memory with s.
func (s Scene) Clone() Scene {
	out := s
	if s.Elements != nil {
		out.Elements = make([]Element, len(s.Elements))
		for i, e := range s.Elements {
			out.Elements[i] = e.Clone()
		}
	}
	return out
}

// Size returns the canvas size.
func (s Scene) Size() geometry.Size {
	return geometry.Size{W: s.Width, H: s.Height}
}

// Bounds returns the canvas rectangle anchored at the origin.
func (s Scene) Bounds() geometry.Rect {
	return geometry.Rect{W: s.Width, H: s.Height}
}

// Area returns Width×Height.
func (s Scene) Area() float64 {
	return s.Width * s.Height
}

// Ratio returns the canvas aspect ratio.
func (s Scene) Ratio() float64 {
	return geometry.Ratio(s.Width, s.Height)
}

// Find returns the element with the given id.
func (s Scene) Find(id string) (Element, bool) {
	for _, e := range s.Elements {
		if e.ID == id {
			return e.Clone(), true
		}
	}
	return Element{}, false
}

// ElementsOfKind returns copies of the elements of kind k in insertion order.
func (s Scene) ElementsOfKind(k Kind) []Element {
	var out []Element
	for _, e := range s.Elements {
		if e.Kind == k {
			out = append(out, e.Clone())
		}
	}
	return out
}

// ElementsWithRole returns copies of the elements tagged r in insertion order.
func (s Scene) ElementsWithRole(r Role) []Element {
	var out []Element
	for _, e := range s.Elements {
		if e.Role == r {
			out = append(out, e.Clone())
		}
	}
	return out
}

// PaintOrder returns copies of the elements sorted by ZIndex, ties broken by
// insertion order.
func (s Scene) PaintOrder() []Element {
	out := s.Clone().Elements
	slices.SortStableFunc(out, func(a, b Element) int {
		return a.ZIndex - b.ZIndex
	})
	return out
}

// Validate checks the structural invariants of the scene.
//
// It returns an INVALID_SCENE error describing the first problem found:
//   - canvas width or height not finite or not positive
//   - malformed background color
//   - empty, malformed or duplicate element IDs
//   - unknown kind, or a payload that does not match the kind
//   - NaN or infinite element geometry, opacity or font size
//   - negative element size, opacity outside [0, 1]
//   - malformed text color or shape fill
//
// Color problems wrap an INVALID_COLOR cause.
func (s Scene) Validate() error {
	if !finite(s.Width, s.Height) || s.Width <= 0 || s.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidScene, "canvas dimensions must be positive, got %vx%v", s.Width, s.Height)
	}
	if _, err := color.ParseHex(s.Background); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidScene, err, "background color")
	}

	seen := make(map[string]struct{}, len(s.Elements))
	for i, e := range s.Elements {
		if err := errors.ValidateElementID(e.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScene, err, "element #%d", i)
		}
		if _, dup := seen[e.ID]; dup {
			return errors.New(errors.ErrCodeInvalidScene, "duplicate element id %q", e.ID)
		}
		seen[e.ID] = struct{}{}

		if err := e.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (e Element) validate() error {
	if !finite(e.X, e.Y, e.Width, e.Height, e.Rotation, e.Opacity) {
		return errors.New(errors.ErrCodeInvalidScene, "element %s: geometry and opacity must be finite numbers", e.ID)
	}
	if e.Width < 0 || e.Height < 0 {
		return errors.New(errors.ErrCodeInvalidScene, "element %s: negative size %vx%v", e.ID, e.Width, e.Height)
	}
	if e.Opacity < 0 || e.Opacity > 1 {
		return errors.New(errors.ErrCodeInvalidScene, "element %s: opacity %v outside [0,1]", e.ID, e.Opacity)
	}

	switch e.Kind {
	case KindImage:
		if e.Image == nil || e.Text != nil || e.Shape != nil {
			return errors.New(errors.ErrCodeInvalidScene, "element %s: image element needs exactly an image payload", e.ID)
		}
	case KindText:
		if e.Text == nil || e.Image != nil || e.Shape != nil {
			return errors.New(errors.ErrCodeInvalidScene, "element %s: text element needs exactly a text payload", e.ID)
		}
		if _, err := color.ParseHex(e.Text.Color); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScene, err, "element %s: text color", e.ID)
		}
		if !finite(e.Text.FontSize) || e.Text.FontSize < 0 {
			return errors.New(errors.ErrCodeInvalidScene, "element %s: invalid font size %v", e.ID, e.Text.FontSize)
		}
	case KindShape:
		if e.Shape == nil || e.Image != nil || e.Text != nil {
			return errors.New(errors.ErrCodeInvalidScene, "element %s: shape element needs exactly a shape payload", e.ID)
		}
		if e.Shape.Fill != "" {
			if _, err := color.ParseHex(e.Shape.Fill); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidScene, err, "element %s: shape fill", e.ID)
			}
		}
	default:
		return errors.New(errors.ErrCodeInvalidScene, "element %s: unknown kind %q", e.ID, e.Kind)
	}
	return nil
}

// finite reports whether no value is NaN or infinite.
func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
