// Package format adapts scenes to target aspect ratios and holds the
// registry of named export formats.
//
// # Adaptation
//
// [Adapt] derives a canvas with the target's aspect ratio from the source
// canvas without ever enlarging it: a wider target keeps the width, a
// taller one keeps the height, and the derived side is floored to whole
// pixels. Product images are then recentred on the new canvas; every other
// element keeps its coordinates and should be re-checked with the
// compliance engine.
//
// When the two ratios are within [geometry.RatioTolerance] of each other
// the canvas is set to the target's exact pixel size and no element moves,
// even if the pixel size differs from the source.
//
// # Registry
//
// A [Registry] maps format keys to [Format] values. [DefaultRegistry]
// returns the built-in social formats; more can be added from
// configuration:
//
//	reg := format.DefaultRegistry()
//	f, err := reg.Get("instagram_story")
//	if err != nil {
//	    return err
//	}
//	variant, err := format.Adapt(s, f)
package format

import (
	"fmt"

	"github.com/matzehuels/creativeforge/pkg/errors"
	"github.com/matzehuels/creativeforge/pkg/geometry"
)

// Platform tags the network a format is meant for.
type Platform string

// Known platforms.
const (
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformCustom    Platform = "custom"
)

// Format is a named target canvas.
type Format struct {
	Key      string   `json:"key" toml:"key"`
	Name     string   `json:"name" toml:"name"`
	Width    int      `json:"width" toml:"width"`
	Height   int      `json:"height" toml:"height"`
	Platform Platform `json:"platform" toml:"platform"`
}

// Ratio returns Width/Height, or 0 for a non-positive height.
func (f Format) Ratio() float64 {
	return geometry.Ratio(float64(f.Width), float64(f.Height))
}

// Size returns the format's pixel size.
func (f Format) Size() geometry.Size {
	return geometry.Size{W: float64(f.Width), H: float64(f.Height)}
}

// String returns "key (WxH)".
func (f Format) String() string {
	return fmt.Sprintf("%s (%dx%d)", f.label(), f.Width, f.Height)
}

// Validate checks the dimensions and, when set, the key.
func (f Format) Validate() error {
	if f.Width <= 0 || f.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "format %s: dimensions must be positive, got %dx%d", f.label(), f.Width, f.Height)
	}
	if f.Key != "" {
		if err := errors.ValidateFormatKey(f.Key); err != nil {
			return err
		}
	}
	return nil
}

func (f Format) label() string {
	if f.Key == "" {
		return "custom"
	}
	return f.Key
}
