package compliance

import (
	"fmt"
	"math"

	"github.com/matzehuels/creativeforge/pkg/color"
	"github.com/matzehuels/creativeforge/pkg/scene"
)

// evaluation carries the state shared by the rules of one Evaluate call.
type evaluation struct {
	scene      scene.Scene
	guidelines Guidelines
	background color.RGB
	palette    []color.RGB
	report     Report
}

// rule inspects the scene and files findings on the report.
type rule func(ev *evaluation)

// rules run in this order, which fixes the order of findings in a report.
var rules = []rule{
	checkTextCoverage,
	checkLogoSize,
	checkContrast,
	checkSafeZone,
	checkPalette,
	checkProductImage,
	checkHeadline,
	checkTextBlocks,
}

// Evaluate scores s against g.
//
// It returns the INVALID_SCENE error of [scene.Scene.Validate] for a
// malformed scene and INVALID_GUIDELINES for malformed guidelines; in both
// cases the Report is zero and must not be shown as a score.
func Evaluate(s scene.Scene, g Guidelines) (Report, error) {
	if err := s.Validate(); err != nil {
		return Report{}, err
	}
	g = g.WithDefaults()
	palette, err := g.palette()
	if err != nil {
		return Report{}, err
	}

	ev := &evaluation{
		scene:      s.Clone(),
		guidelines: g,
		background: color.MustParseHex(s.Background),
		palette:    palette,
	}
	for _, r := range rules {
		r(ev)
	}
	ev.report.finalize()
	return ev.report, nil
}

// TextCoveragePercent returns 100 × (summed text element area) / canvas area,
// or 0 for a zero-area canvas.
func TextCoveragePercent(s scene.Scene) float64 {
	canvas := s.Area()
	if canvas == 0 {
		return 0
	}
	var text float64
	for _, e := range s.Elements {
		switch e.Kind {
		case scene.KindText:
			text += e.Area()
		case scene.KindImage, scene.KindShape:
		}
	}
	return 100 * text / canvas
}

func checkTextCoverage(ev *evaluation) {
	coverage := TextCoveragePercent(ev.scene)
	ev.report.Metrics.TextCoveragePercent = coverage
	ev.report.Metrics.TextElements = len(ev.scene.ElementsOfKind(scene.KindText))

	limit := ev.guidelines.MaxTextCoveragePercent
	if coverage <= limit {
		return
	}
	ev.report.add(Finding{
		ID:          "text-coverage",
		Category:    CategoryHard,
		Name:        "Text Coverage Exceeded",
		Description: fmt.Sprintf("Text covers %.1f%% of canvas (max %g%%)", coverage, limit),
		Message:     fmt.Sprintf("Reduce text to %g%% of the canvas or decrease text size", limit),
		Severity:    SeverityError,
	})
}

// checkLogoSize only inspects the first logo in insertion order.
// TODO: decide with brand owners whether every logo should meet the minimum.
func checkLogoSize(ev *evaluation) {
	logos := ev.scene.ElementsWithRole(scene.RoleLogo)
	if len(logos) == 0 {
		return
	}
	logo := logos[0]
	area := logo.Area()
	ev.report.Metrics.LogoArea = area

	minArea := ev.guidelines.MinLogoAreaPx2
	if area >= minArea {
		return
	}
	ev.report.add(Finding{
		ID:          "logo-size",
		Category:    CategorySoft,
		Name:        "Logo Size Warning",
		Description: fmt.Sprintf("Logo is %gpx² (minimum: %gpx²)", area, minArea),
		Message:     "Increase logo size for visibility",
		Severity:    SeverityWarning,
		ElementID:   logo.ID,
	})
}

func checkContrast(ev *evaluation) {
	lowest := math.Inf(1)
	for _, e := range ev.scene.Elements {
		var fg string
		switch e.Kind {
		case scene.KindText:
			fg = e.Text.Color
		case scene.KindImage, scene.KindShape:
			continue
		}
		// Validate has already rejected malformed colors.
		ratio := color.ContrastRatio(color.MustParseHex(fg), ev.background)
		lowest = math.Min(lowest, ratio)
		if ratio >= ev.guidelines.MinContrastRatio {
			continue
		}
		ev.report.add(Finding{
			ID:          "contrast-" + e.ID,
			Category:    CategoryRecommendation,
			Name:        "Low Contrast",
			Description: fmt.Sprintf("Contrast ratio: %.1f:1", ratio),
			Message:     fmt.Sprintf("Increase to %g:1 for accessibility", ev.guidelines.MinContrastRatio),
			Severity:    SeverityInfo,
			ElementID:   e.ID,
		})
	}
	if !math.IsInf(lowest, 1) {
		ev.report.Metrics.MinContrastRatio = lowest
	}
}

func checkSafeZone(ev *evaluation) {
	margin := ev.guidelines.SafeZoneMargin
	if margin == 0 {
		return
	}
	safe := ev.scene.Bounds().Inset(margin)
	for _, e := range ev.scene.Elements {
		if safe.Contains(e.Bounds()) {
			continue
		}
		ev.report.add(Finding{
			ID:          "safe-zone-" + e.ID,
			Category:    CategoryHard,
			Name:        "Safe Zone Violation",
			Description: fmt.Sprintf("Element %s at (%g, %g) size %gx%g leaves the %gpx safe zone", e.ID, e.X, e.Y, e.Width, e.Height, margin),
			Message:     fmt.Sprintf("Keep %gpx margin from edges", margin),
			Severity:    SeverityError,
			ElementID:   e.ID,
		})
	}
}

func checkPalette(ev *evaluation) {
	if len(ev.palette) == 0 {
		return
	}
	for _, e := range ev.scene.Elements {
		var hex string
		switch e.Kind {
		case scene.KindText:
			hex = e.Text.Color
		case scene.KindShape:
			hex = e.Shape.Fill
		case scene.KindImage:
		}
		if hex == "" {
			continue
		}
		c := color.MustParseHex(hex)
		nearest, dist, _ := color.Nearest(c, ev.palette)
		if dist <= ev.guidelines.ColorTolerance {
			continue
		}
		ev.report.add(Finding{
			ID:          "palette-" + e.ID,
			Category:    CategorySoft,
			Name:        "Off-Brand Color",
			Description: fmt.Sprintf("Color %s is not in the approved palette (ΔE %.1f from %s)", c.Hex(), dist, nearest.Hex()),
			Message:     fmt.Sprintf("Use an approved brand color such as %s", nearest.Hex()),
			Severity:    SeverityWarning,
			ElementID:   e.ID,
		})
	}
}

func checkProductImage(ev *evaluation) {
	if !ev.guidelines.RequireProductImage || len(ev.scene.ElementsOfKind(scene.KindImage)) > 0 {
		return
	}
	ev.report.add(Finding{
		ID:          "no-product-image",
		Category:    CategoryHard,
		Name:        "Missing Product Image",
		Description: "No product image found",
		Message:     "Add at least one product image to the creative",
		Severity:    SeverityError,
	})
}

func checkHeadline(ev *evaluation) {
	if !ev.guidelines.RequireHeadline || ev.report.Metrics.TextElements > 0 {
		return
	}
	ev.report.add(Finding{
		ID:          "no-headline",
		Category:    CategorySoft,
		Name:        "Missing Headline",
		Description: "No headline text found",
		Message:     "Add a clear headline to improve communication",
		Severity:    SeverityWarning,
	})
}

func checkTextBlocks(ev *evaluation) {
	limit := ev.guidelines.MaxTextBlocks
	n := ev.report.Metrics.TextElements
	if limit == 0 || n <= limit {
		return
	}
	ev.report.add(Finding{
		ID:          "too-much-text",
		Category:    CategorySoft,
		Name:        "Too Many Text Blocks",
		Description: fmt.Sprintf("%d text blocks (max %d) may feel cluttered", n, limit),
		Message:     "Reduce the number of text elements",
		Severity:    SeverityWarning,
	})
}
