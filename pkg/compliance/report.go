package compliance

// Category classifies a finding and decides which report list it lands in.
type Category string

// Finding categories.
const (
	CategoryHard           Category = "hard"
	CategorySoft           Category = "soft"
	CategoryRecommendation Category = "recommendation"
)

// Severity is the presentation level of a finding.
type Severity string

// Finding severities.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Score penalties.
const (
	ViolationPenalty = 15
	WarningPenalty   = 5
)

// Finding is one flagged issue.
type Finding struct {
	ID          string   `json:"id"`
	Category    Category `json:"category"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Message     string   `json:"message"`
	Severity    Severity `json:"severity"`
	// ElementID names the offending element, empty for scene-wide findings.
	ElementID string `json:"elementId,omitempty"`
}

// Metrics are the measured values behind a report.
type Metrics struct {
	TextCoveragePercent float64 `json:"textCoveragePercent"`
	TextElements        int     `json:"textElements"`
	// LogoArea is the area of the first logo, 0 when the scene has none.
	LogoArea float64 `json:"logoArea"`
	// MinContrastRatio is the lowest text/background ratio, 0 without text.
	MinContrastRatio float64 `json:"minContrastRatio"`
}

// Report is the output of Evaluate.
type Report struct {
	Score           int       `json:"score"`
	Violations      []Finding `json:"violations"`
	Warnings        []Finding `json:"warnings"`
	Recommendations []Finding `json:"recommendations"`
	IsCompliant     bool      `json:"isCompliant"`
	Metrics         Metrics   `json:"metrics"`
}

// Findings returns violations, warnings and recommendations in that order.
func (r Report) Findings() []Finding {
	out := make([]Finding, 0, len(r.Violations)+len(r.Warnings)+len(r.Recommendations))
	out = append(out, r.Violations...)
	out = append(out, r.Warnings...)
	return append(out, r.Recommendations...)
}

// add files f under the list matching its category.
func (r *Report) add(f Finding) {
	switch f.Category {
	case CategoryHard:
		r.Violations = append(r.Violations, f)
	case CategorySoft:
		r.Warnings = append(r.Warnings, f)
	case CategoryRecommendation:
		r.Recommendations = append(r.Recommendations, f)
	}
}

// finalize computes the score and compliance flag.
func (r *Report) finalize() {
	r.Score = Score(len(r.Violations), len(r.Warnings))
	r.IsCompliant = len(r.Violations) == 0
	if r.Violations == nil {
		r.Violations = []Finding{}
	}
	if r.Warnings == nil {
		r.Warnings = []Finding{}
	}
	if r.Recommendations == nil {
		r.Recommendations = []Finding{}
	}
}

// Score returns clamp(100 - 15*violations - 5*warnings, 0, 100).
func Score(violations, warnings int) int {
	s := 100 - ViolationPenalty*violations - WarningPenalty*warnings
	return max(0, min(100, s))
}
