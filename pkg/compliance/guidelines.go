package compliance

import (
	"github.com/matzehuels/creativeforge/pkg/color"
	"github.com/matzehuels/creativeforge/pkg/errors"
)

// Default guideline values.
const (
	DefaultMaxTextCoveragePercent = 20.0
	DefaultMinLogoAreaPx2         = 100.0
	DefaultMinContrastRatio       = 4.5
	DefaultColorTolerance         = 2.0
)

// Guidelines parameterizes the compliance rules.
//
// Zero numeric thresholds of the core rules mean "use the default". Optional
// rules stay disabled while their field is zero.
type Guidelines struct {
	MaxTextCoveragePercent float64 `json:"maxTextCoveragePercent,omitempty" toml:"max_text_coverage_percent"`
	MinLogoAreaPx2         float64 `json:"minLogoAreaPx2,omitempty" toml:"min_logo_area_px2"`
	MinContrastRatio       float64 `json:"minContrastRatio,omitempty" toml:"min_contrast_ratio"`

	// ApprovedColors is an optional allow-list of #RRGGBB brand colors.
	ApprovedColors []string `json:"approvedColors,omitempty" toml:"approved_colors"`
	// ColorTolerance is the CIEDE2000 distance still accepted as a match.
	ColorTolerance float64 `json:"colorTolerance,omitempty" toml:"color_tolerance"`

	SafeZoneMargin      float64 `json:"safeZoneMargin,omitempty" toml:"safe_zone_margin"`
	RequireProductImage bool    `json:"requireProductImage,omitempty" toml:"require_product_image"`
	RequireHeadline     bool    `json:"requireHeadline,omitempty" toml:"require_headline"`
	MaxTextBlocks       int     `json:"maxTextBlocks,omitempty" toml:"max_text_blocks"`
}

// DefaultGuidelines returns the guideline defaults.
func DefaultGuidelines() Guidelines {
	return Guidelines{}.WithDefaults()
}

// WithDefaults returns a copy of g with zero thresholds replaced by defaults.
func (g Guidelines) WithDefaults() Guidelines {
	if g.MaxTextCoveragePercent == 0 {
		g.MaxTextCoveragePercent = DefaultMaxTextCoveragePercent
	}
	if g.MinLogoAreaPx2 == 0 {
		g.MinLogoAreaPx2 = DefaultMinLogoAreaPx2
	}
	if g.MinContrastRatio == 0 {
		g.MinContrastRatio = DefaultMinContrastRatio
	}
	if g.ColorTolerance == 0 {
		g.ColorTolerance = DefaultColorTolerance
	}
	if g.ApprovedColors != nil {
		g.ApprovedColors = append([]string(nil), g.ApprovedColors...)
	}
	return g
}

// Validate checks that every threshold is non-negative and every approved
// color parses.
func (g Guidelines) Validate() error {
	_, err := g.palette()
	return err
}

// palette validates g and returns the parsed approved colors.
func (g Guidelines) palette() ([]color.RGB, error) {
	checks := []struct {
		name  string
		value float64
	}{
		{"maxTextCoveragePercent", g.MaxTextCoveragePercent},
		{"minLogoAreaPx2", g.MinLogoAreaPx2},
		{"minContrastRatio", g.MinContrastRatio},
		{"colorTolerance", g.ColorTolerance},
		{"safeZoneMargin", g.SafeZoneMargin},
		{"maxTextBlocks", float64(g.MaxTextBlocks)},
	}
	for _, c := range checks {
		if c.value < 0 {
			return nil, errors.New(errors.ErrCodeInvalidGuidelines, "%s must not be negative, got %v", c.name, c.value)
		}
	}

	var out []color.RGB
	for _, hex := range g.ApprovedColors {
		c, err := color.ParseHex(hex)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGuidelines, err, "approved color")
		}
		out = append(out, c)
	}
	return out, nil
}
