package geometry

import "testing"

func TestRatio(t *testing.T) {
	tests := []struct {
		w, h float64
		want float64
	}{
		{1080, 1080, 1},
		{1200, 600, 2},
		{100, 0, 0},
		{100, -5, 0},
	}
	for _, tt := range tests {
		if got := Ratio(tt.w, tt.h); got != tt.want {
			t.Errorf("Ratio(%v, %v) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestNearlyEqualRatio(t *testing.T) {
	if !NearlyEqualRatio(1.905, 1.91, RatioTolerance) {
		t.Error("ratios 0.005 apart should be equal")
	}
	if NearlyEqualRatio(1.0, 1.02, RatioTolerance) {
		t.Error("ratios 0.02 apart should differ")
	}
}

func TestFitRatio(t *testing.T) {
	tests := []struct {
		name  string
		src   Size
		ratio float64
		want  Size
	}{
		{"wider target keeps width", Size{1080, 1080}, 1200.0 / 630.0, Size{1080, 567}},
		{"taller target keeps height", Size{1080, 1080}, 1080.0 / 1920.0, Size{607, 1080}},
		{"landscape to square", Size{1200, 630}, 1, Size{630, 630}},
		{"same ratio keeps height", Size{800, 400}, 2, Size{800, 400}},
		{"extreme ratio floors to zero", Size{1, 1}, 1000, Size{1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FitRatio(tt.src, tt.ratio)
			if got != tt.want {
				t.Errorf("FitRatio(%v, %v) = %v, want %v", tt.src, tt.ratio, got, tt.want)
			}
			if got.W > tt.src.W || got.H > tt.src.H {
				t.Errorf("FitRatio grew the canvas: %v -> %v", tt.src, got)
			}
		})
	}
}

func TestCenterIn(t *testing.T) {
	x, y := CenterIn(Size{300, 300}, Size{1200, 567})
	if x != 450 || y != 133.5 {
		t.Errorf("CenterIn = (%v, %v), want (450, 133.5)", x, y)
	}

	x, y = CenterIn(Size{200, 200}, Size{100, 100})
	if x != -50 || y != -50 {
		t.Errorf("CenterIn oversized = (%v, %v), want (-50, -50)", x, y)
	}
}

func TestRectContainsAndInset(t *testing.T) {
	canvas := Rect{W: 100, H: 100}
	safe := canvas.Inset(10)
	if safe != (Rect{X: 10, Y: 10, W: 80, H: 80}) {
		t.Fatalf("Inset(10) = %v", safe)
	}

	if !safe.Contains(Rect{X: 10, Y: 10, W: 80, H: 80}) {
		t.Error("edges should be inclusive")
	}
	if safe.Contains(Rect{X: 5, Y: 20, W: 10, H: 10}) {
		t.Error("rect crossing the left margin should not be contained")
	}
	if safe.Contains(Rect{X: 50, Y: 50, W: 45, H: 10}) {
		t.Error("rect crossing the right margin should not be contained")
	}

	if got := canvas.Inset(80); got.W != 0 || got.H != 0 {
		t.Errorf("over-inset should clamp to zero size, got %v", got)
	}
}
