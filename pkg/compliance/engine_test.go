package compliance

import (
	"math"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/matzehuels/creativeforge/pkg/errors"
	"github.com/matzehuels/creativeforge/pkg/scene"
)

func square() scene.Scene {
	return scene.New(1080, 1080)
}

func mustEvaluate(t *testing.T, s scene.Scene, g Guidelines) Report {
	t.Helper()
	r, err := Evaluate(s, g)
	if err != nil {
		t.Fatalf("Evaluate() error: %v", err)
	}
	return r
}

func TestEvaluateEmptyScene(t *testing.T) {
	r := mustEvaluate(t, square(), DefaultGuidelines())

	if r.Score != 100 {
		t.Errorf("Score = %d, want 100", r.Score)
	}
	if !r.IsCompliant {
		t.Error("IsCompliant = false, want true")
	}
	if r.Metrics.TextCoveragePercent != 0 {
		t.Errorf("TextCoveragePercent = %v, want 0", r.Metrics.TextCoveragePercent)
	}
	if n := len(r.Findings()); n != 0 {
		t.Errorf("got %d findings, want 0", n)
	}
}

func TestEvaluateSmallHeadline(t *testing.T) {
	s := square().With(scene.NewText("headline", "Fresh deals", "#000000", 240, 900, 600, 80))
	r := mustEvaluate(t, s, Guidelines{MaxTextCoveragePercent: 20})

	if math.Abs(r.Metrics.TextCoveragePercent-4.115) > 0.01 {
		t.Errorf("TextCoveragePercent = %v, want ~4.12", r.Metrics.TextCoveragePercent)
	}
	if math.Abs(r.Metrics.MinContrastRatio-21) > 0.05 {
		t.Errorf("MinContrastRatio = %v, want ~21", r.Metrics.MinContrastRatio)
	}
	if len(r.Violations) != 0 || len(r.Recommendations) != 0 {
		t.Errorf("unexpected findings: %+v", r.Findings())
	}
	if r.Score != 100 || !r.IsCompliant {
		t.Errorf("Score = %d, IsCompliant = %v, want 100, true", r.Score, r.IsCompliant)
	}
}

func TestEvaluateTextCoverageViolation(t *testing.T) {
	s := square().With(scene.NewText("body", "Lots of words", "#000000", 40, 300, 1000, 400))
	r := mustEvaluate(t, s, Guidelines{MaxTextCoveragePercent: 20})

	if len(r.Violations) != 1 {
		t.Fatalf("got %d violations, want 1", len(r.Violations))
	}
	v := r.Violations[0]
	if v.ID != "text-coverage" || v.Category != CategoryHard || v.Severity != SeverityError {
		t.Errorf("unexpected violation: %+v", v)
	}
	if !strings.Contains(v.Description, "34.3%") {
		t.Errorf("Description %q should state the measured coverage", v.Description)
	}
	if r.Score != 85 {
		t.Errorf("Score = %d, want 85", r.Score)
	}
	if r.IsCompliant {
		t.Error("IsCompliant = true, want false")
	}
}

func TestEvaluateCoverageAtLimitPasses(t *testing.T) {
	// 20% of 100x100 exactly.
	s := scene.New(100, 100).With(scene.NewText("t", "x", "#000000", 0, 0, 50, 40))
	r := mustEvaluate(t, s, DefaultGuidelines())
	if len(r.Violations) != 0 {
		t.Errorf("coverage equal to the limit should pass, got %+v", r.Violations)
	}
}

func TestEvaluateScoreDropsByViolationPenalty(t *testing.T) {
	base := square().With(scene.NewText("headline", "Hi", "#000000", 240, 900, 600, 80))
	before := mustEvaluate(t, base, DefaultGuidelines())

	after := mustEvaluate(t, base.With(scene.NewText("wall", "Wall of text", "#000000", 0, 0, 1080, 400)), DefaultGuidelines())

	if before.Score-after.Score != ViolationPenalty {
		t.Errorf("score dropped from %d to %d, want a drop of %d", before.Score, after.Score, ViolationPenalty)
	}
}

func TestEvaluateScoreFloorsAtZero(t *testing.T) {
	// Every element breaches a 10px safe zone: 8 hard violations.
	s := scene.New(100, 100)
	for i := range 8 {
		s = s.With(scene.NewShape(string(rune('a'+i)), "rect", "", 0, 0, 5, 5))
	}
	r := mustEvaluate(t, s, Guidelines{SafeZoneMargin: 10})

	if len(r.Violations) != 8 {
		t.Fatalf("got %d violations, want 8", len(r.Violations))
	}
	if r.Score != 0 {
		t.Errorf("Score = %d, want 0", r.Score)
	}
}

func TestEvaluateLogoSize(t *testing.T) {
	small := scene.NewImage("logo-small", "asset://logo", scene.RoleLogo, 10, 10, 8, 8)
	large := scene.NewImage("logo-large", "asset://logo", scene.RoleLogo, 10, 10, 100, 100)

	tests := []struct {
		name     string
		elems    []scene.Element
		wantWarn bool
		wantArea float64
	}{
		{"no logo", nil, false, 0},
		{"large logo", []scene.Element{large}, false, 10000},
		{"small logo", []scene.Element{small}, true, 64},
		{"first logo large", []scene.Element{large, small}, false, 10000},
		{"first logo small", []scene.Element{small, large}, true, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustEvaluate(t, square().With(tt.elems...), DefaultGuidelines())
			if got := len(r.Warnings) == 1; got != tt.wantWarn {
				t.Fatalf("warning present = %v, want %v (%+v)", got, tt.wantWarn, r.Warnings)
			}
			if r.Metrics.LogoArea != tt.wantArea {
				t.Errorf("LogoArea = %v, want %v", r.Metrics.LogoArea, tt.wantArea)
			}
			if tt.wantWarn {
				w := r.Warnings[0]
				if w.ID != "logo-size" || w.Category != CategorySoft || w.ElementID != "logo-small" {
					t.Errorf("unexpected warning: %+v", w)
				}
				if r.Score != 95 {
					t.Errorf("Score = %d, want 95", r.Score)
				}
			}
		})
	}
}

func TestEvaluateLogoRoleIndependentOfKind(t *testing.T) {
	logo := scene.NewShape("mark", "circle", "#000000", 0, 0, 5, 5)
	logo.Role = scene.RoleLogo
	r := mustEvaluate(t, square().With(logo), DefaultGuidelines())
	if len(r.Warnings) != 1 {
		t.Errorf("a shape tagged logo should be checked, got %+v", r.Warnings)
	}
}

func TestEvaluateContrast(t *testing.T) {
	s := square().With(
		scene.NewText("dark", "ok", "#000000", 0, 0, 10, 10),
		scene.NewText("gray", "faint", "#999999", 0, 20, 10, 10),
		scene.NewText("blue", "borderline", "#1A73E8", 0, 40, 10, 10),
	)
	r := mustEvaluate(t, s, DefaultGuidelines())

	if len(r.Recommendations) != 1 {
		t.Fatalf("got %d recommendations, want 1: %+v", len(r.Recommendations), r.Recommendations)
	}
	rec := r.Recommendations[0]
	if rec.ID != "contrast-gray" || rec.Severity != SeverityInfo || rec.Category != CategoryRecommendation {
		t.Errorf("unexpected recommendation: %+v", rec)
	}
	if rec.Description != "Contrast ratio: 2.8:1" {
		t.Errorf("Description = %q, want %q", rec.Description, "Contrast ratio: 2.8:1")
	}
	if r.Score != 100 || !r.IsCompliant {
		t.Errorf("recommendations must not affect score: %d %v", r.Score, r.IsCompliant)
	}
	if math.Abs(r.Metrics.MinContrastRatio-2.849) > 0.01 {
		t.Errorf("MinContrastRatio = %v, want ~2.85", r.Metrics.MinContrastRatio)
	}
}

func TestEvaluateContrastIgnoresNonText(t *testing.T) {
	s := square().With(scene.NewShape("pale", "rect", "#fefefe", 0, 0, 10, 10))
	r := mustEvaluate(t, s, DefaultGuidelines())
	if len(r.Recommendations) != 0 {
		t.Errorf("shapes should not be contrast-checked: %+v", r.Recommendations)
	}
}

func TestEvaluateInvalidScene(t *testing.T) {
	tests := []struct {
		name string
		s    scene.Scene
	}{
		{"bad text color", square().With(scene.NewText("t", "x", "black", 0, 0, 1, 1))},
		{"bad background", scene.Scene{Width: 10, Height: 10, Background: "#fff"}},
		{"zero canvas", scene.Scene{Width: 0, Height: 10, Background: "#ffffff"}},
		{"nan canvas", scene.New(math.NaN(), 1080)},
		{"nan text width", square().With(scene.NewText("t", "x", "#000000", 0, 0, math.NaN(), 10))},
		{"duplicate ids", square().With(
			scene.NewText("x", "a", "#000000", 0, 0, 1, 1),
			scene.NewText("x", "b", "#000000", 0, 0, 1, 1),
		)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Evaluate(tt.s, DefaultGuidelines())
			if !errors.Is(err, errors.ErrCodeInvalidScene) {
				t.Fatalf("Evaluate() err = %v, want INVALID_SCENE", err)
			}
			if !reflect.DeepEqual(r, Report{}) {
				t.Errorf("Evaluate() returned a report alongside the error: %+v", r)
			}
		})
	}
}

func TestEvaluateInvalidGuidelines(t *testing.T) {
	for _, g := range []Guidelines{
		{MaxTextCoveragePercent: -1},
		{SafeZoneMargin: -5},
		{ApprovedColors: []string{"#000000", "blue"}},
	} {
		if _, err := Evaluate(square(), g); !errors.Is(err, errors.ErrCodeInvalidGuidelines) {
			t.Errorf("Evaluate(%+v) err = %v, want INVALID_GUIDELINES", g, err)
		}
	}
}

func TestTextCoveragePercentZeroCanvas(t *testing.T) {
	s := scene.Scene{Elements: []scene.Element{scene.NewText("t", "x", "#000000", 0, 0, 10, 10)}}
	if got := TextCoveragePercent(s); got != 0 {
		t.Errorf("TextCoveragePercent(zero canvas) = %v, want 0", got)
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	s := square().With(
		scene.NewText("body", "x", "#999999", 40, 300, 1000, 400),
		scene.NewImage("logo", "asset://l", scene.RoleLogo, 0, 0, 5, 5),
	)
	g := DefaultGuidelines()
	first := mustEvaluate(t, s, g)
	second := mustEvaluate(t, s, g)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Evaluate not idempotent:\n%+v\n%+v", first, second)
	}
}

func TestEvaluateConcurrent(t *testing.T) {
	s := square().With(scene.NewText("body", "x", "#999999", 40, 300, 1000, 400))
	want := mustEvaluate(t, s, DefaultGuidelines())

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := Evaluate(s, DefaultGuidelines())
			if err != nil || !reflect.DeepEqual(got, want) {
				t.Errorf("concurrent Evaluate diverged: %v", err)
			}
		}()
	}
	wg.Wait()
}

func TestEvaluateDoesNotRetainScene(t *testing.T) {
	s := square().With(scene.NewText("body", "x", "#999999", 40, 300, 1000, 400))
	r := mustEvaluate(t, s, DefaultGuidelines())
	snapshot := mustEvaluate(t, s, DefaultGuidelines())

	s.Elements[0].Text.Color = "#000000"
	s.Elements[0].Width = 1

	if !reflect.DeepEqual(r, snapshot) {
		t.Error("mutating the caller's scene changed an earlier report")
	}
}

func TestEvaluateFindingOrder(t *testing.T) {
	s := square().With(
		scene.NewText("b", "x", "#999999", 0, 0, 1080, 400),
		scene.NewText("a", "y", "#aaaaaa", 0, 500, 10, 10),
	)
	r := mustEvaluate(t, s, DefaultGuidelines())
	var ids []string
	for _, f := range r.Recommendations {
		ids = append(ids, f.ID)
	}
	want := []string{"contrast-b", "contrast-a"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("recommendation order = %v, want insertion order %v", ids, want)
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		v, w, want int
	}{
		{0, 0, 100},
		{1, 0, 85},
		{0, 1, 95},
		{2, 3, 55},
		{7, 0, 0},
		{6, 3, 0},
	}
	for _, tt := range tests {
		if got := Score(tt.v, tt.w); got != tt.want {
			t.Errorf("Score(%d, %d) = %d, want %d", tt.v, tt.w, got, tt.want)
		}
	}
}
