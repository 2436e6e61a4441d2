package scene

import (
	"math"

	"github.com/google/uuid"

	"github.com/matzehuels/creativeforge/pkg/geometry"
)

// Kind discriminates the element payload.
type Kind string

// Element kinds.
const (
	KindImage Kind = "image"
	KindText  Kind = "text"
	KindShape Kind = "shape"
)

// Kinds lists every element kind in declaration order.
var Kinds = []Kind{KindImage, KindText, KindShape}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindImage, KindText, KindShape:
		return true
	}
	return false
}

// Role is a semantic tag that is independent of Kind.
type Role string

// Well-known roles. Any other non-empty string is accepted as a custom role.
const (
	RoleNone       Role = ""
	RoleProduct    Role = "product"
	RoleLogo       Role = "logo"
	RoleHeadline   Role = "headline"
	RoleBackground Role = "background"
)

// Defaults applied by the constructors.
const (
	DefaultFontSize   = 24.0
	DefaultFontFamily = "Arial"
	DefaultTextColor  = "#000000"
)

// ImagePayload is the image variant. SourceRef is an opaque handle produced
// by asset ingestion; nothing in this module dereferences it.
type ImagePayload struct {
	SourceRef string `json:"sourceRef" yaml:"sourceRef"`
}

// TextPayload is the text variant.
type TextPayload struct {
	Text       string  `json:"text" yaml:"text"`
	FontSize   float64 `json:"fontSize" yaml:"fontSize"`
	FontFamily string  `json:"fontFamily" yaml:"fontFamily"`
	Color      string  `json:"color" yaml:"color"`
}

// ShapePayload is the shape variant. Fill is optional.
type ShapePayload struct {
	Shape string `json:"shape,omitempty" yaml:"shape,omitempty"`
	Fill  string `json:"fill,omitempty" yaml:"fill,omitempty"`
}

// Element is one item placed on the canvas.
type Element struct {
	ID       string  `json:"id" yaml:"id"`
	Kind     Kind    `json:"kind" yaml:"kind"`
	X        float64 `json:"x" yaml:"x"`
	Y        float64 `json:"y" yaml:"y"`
	Width    float64 `json:"width" yaml:"width"`
	Height   float64 `json:"height" yaml:"height"`
	Rotation float64 `json:"rotation,omitempty" yaml:"rotation,omitempty"`
	Opacity  float64 `json:"opacity" yaml:"opacity"`
	ZIndex   int     `json:"zIndex,omitempty" yaml:"zIndex,omitempty"`
	Role     Role    `json:"role,omitempty" yaml:"role,omitempty"`

	Image *ImagePayload `json:"image,omitempty" yaml:"image,omitempty"`
	Text  *TextPayload  `json:"text,omitempty" yaml:"text,omitempty"`
	Shape *ShapePayload `json:"shape,omitempty" yaml:"shape,omitempty"`
}

// NewElementID returns a fresh element identifier.
func NewElementID() string {
	return "element-" + uuid.NewString()
}

// NewImage builds an opaque, unrotated image element.
func NewImage(id, sourceRef string, role Role, x, y, w, h float64) Element {
	return Element{
		ID: id, Kind: KindImage, Role: role,
		X: x, Y: y, Width: w, Height: h, Opacity: 1,
		Image: &ImagePayload{SourceRef: sourceRef},
	}
}

// NewText builds a text element with the default font.
func NewText(id, text, colorHex string, x, y, w, h float64) Element {
	return Element{
		ID: id, Kind: KindText,
		X: x, Y: y, Width: w, Height: h, Opacity: 1,
		Text: &TextPayload{
			Text:       text,
			FontSize:   DefaultFontSize,
			FontFamily: DefaultFontFamily,
			Color:      colorHex,
		},
	}
}

// NewShape builds a shape element.
func NewShape(id, shape, fill string, x, y, w, h float64) Element {
	return Element{
		ID: id, Kind: KindShape,
		X: x, Y: y, Width: w, Height: h, Opacity: 1,
		Shape: &ShapePayload{Shape: shape, Fill: fill},
	}
}

// Area returns Width×Height.
func (e Element) Area() float64 {
	return e.Width * e.Height
}

// Bounds returns the unrotated bounding rectangle.
func (e Element) Bounds() geometry.Rect {
	return geometry.Rect{X: e.X, Y: e.Y, W: e.Width, H: e.Height}
}

// Size returns the element's width and height.
func (e Element) Size() geometry.Size {
	return geometry.Size{W: e.Width, H: e.Height}
}

// NormalizedRotation returns the rotation mapped into [0, 360).
func (e Element) NormalizedRotation() float64 {
	r := math.Mod(e.Rotation, 360)
	if r < 0 {
		r += 360
	}
	return r
}

// Clone returns a deep copy of e.
func (e Element) Clone() Element {
	out := e
	if e.Image != nil {
		img := *e.Image
		out.Image = &img
	}
	if e.Text != nil {
		txt := *e.Text
		out.Text = &txt
	}
	if e.Shape != nil {
		shp := *e.Shape
		out.Shape = &shp
	}
	return out
}
