package format

import (
	"github.com/matzehuels/creativeforge/pkg/errors"
	"github.com/matzehuels/creativeforge/pkg/geometry"
	"github.com/matzehuels/creativeforge/pkg/scene"
)

// Variant is a scene adapted to one format.
type Variant struct {
	Format Format      `json:"format"`
	Scene  scene.Scene `json:"scene"`
}

// Adapt returns a copy of s re-flowed to the aspect ratio of f.
//
// It fails with INVALID_FORMAT when f has non-positive dimensions and with
// INVALID_SCENE when s does not validate. The input scene is never modified
// and the result shares no memory with it.
func Adapt(s scene.Scene, f Format) (scene.Scene, error) {
	if f.Width <= 0 || f.Height <= 0 {
		return scene.Scene{}, errors.New(errors.ErrCodeInvalidFormat, "format %s: target dimensions must be positive, got %dx%d", f.label(), f.Width, f.Height)
	}
	if err := s.Validate(); err != nil {
		return scene.Scene{}, err
	}

	out := s.Clone()
	target := f.Ratio()
	if geometry.NearlyEqualRatio(target, s.Ratio(), geometry.RatioTolerance) {
		// Canvas only: elements keep their pixel coordinates even when the
		// target is a different pixel size.
		out.Width, out.Height = float64(f.Width), float64(f.Height)
		return out, nil
	}

	canvas := geometry.FitRatio(s.Size(), target)
	out.Width, out.Height = canvas.W, canvas.H
	for i := range out.Elements {
		reposition(&out.Elements[i], canvas)
	}
	return out, nil
}

// reposition applies the placement policy of one element on a re-flowed
// canvas.
func reposition(e *scene.Element, canvas geometry.Size) {
	switch e.Kind {
	case scene.KindImage:
		if e.Role == scene.RoleProduct {
			e.X, e.Y = geometry.CenterIn(e.Size(), canvas)
		}
	case scene.KindText, scene.KindShape:
	}
}

// AdaptAll adapts s to each format in order and stops at the first error.
func AdaptAll(s scene.Scene, formats []Format) ([]Variant, error) {
	out := make([]Variant, 0, len(formats))
	for _, f := range formats {
		adapted, err := Adapt(s, f)
		if err != nil {
			return nil, err
		}
		out = append(out, Variant{Format: f, Scene: adapted})
	}
	return out, nil
}
