package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/creativeforge/pkg/compliance"
	"github.com/matzehuels/creativeforge/pkg/format"
	"github.com/matzehuels/creativeforge/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleTableHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleTableBorder = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(14)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// printStats prints dim facts on a single line, followed by the cache status.
func printStats(w io.Writer, parts []string, cached bool) {
	status, statusStyle := iconFresh, styleComputed
	if cached {
		status, statusStyle = iconCached, styleCached
	}

	var b strings.Builder
	b.WriteString("  ")
	for i, part := range parts {
		if i > 0 {
			b.WriteString(StyleDim.Render(" · "))
		}
		b.WriteString(StyleDim.Render(part))
	}
	if len(parts) > 0 {
		b.WriteString(StyleDim.Render(" · "))
	}
	b.WriteString(statusStyle.Render(status))
	fmt.Fprintln(w, b.String())
}

// =============================================================================
// Reports
// =============================================================================

// scoreStyle colors a score: green from 80, amber from 50, red below.
func scoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 80:
		return lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	case score >= 50:
		return lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	default:
		return lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	}
}

func severityStyle(s compliance.Severity) lipgloss.Style {
	switch s {
	case compliance.SeverityError:
		return lipgloss.NewStyle().Foreground(colorRed)
	case compliance.SeverityWarning:
		return lipgloss.NewStyle().Foreground(colorYellow)
	default:
		return lipgloss.NewStyle().Foreground(colorGray)
	}
}

// printReport prints a compliance report with its findings table.
func printReport(w io.Writer, name string, res pipeline.Result, elements int) {
	r := res.Report
	fmt.Fprintln(w, StyleTitle.Render("Compliance report")+" "+StyleDim.Render(name))
	printStats(w, []string{
		fmt.Sprintf("%d elements", elements),
		fmt.Sprintf("%.1f%% text", r.Metrics.TextCoveragePercent),
	}, res.CacheHit)
	fmt.Fprintln(w)

	printKeyValue(w, "Score", scoreStyle(r.Score).Render(fmt.Sprintf("%d/100", r.Score)))
	if r.IsCompliant {
		printKeyValue(w, "Status", styleIconSuccess.Render("compliant"))
	} else {
		printKeyValue(w, "Status", styleIconError.Render("not compliant"))
	}
	if r.Metrics.MinContrastRatio > 0 {
		printKeyValue(w, "Min contrast", fmt.Sprintf("%.1f:1", r.Metrics.MinContrastRatio))
	}
	if r.Metrics.LogoArea > 0 {
		printKeyValue(w, "Logo area", fmt.Sprintf("%.0f px²", r.Metrics.LogoArea))
	}
	fmt.Fprintln(w)

	findings := r.Findings()
	if len(findings) == 0 {
		printSuccess(w, "No issues found")
		return
	}
	fmt.Fprintln(w, findingsTable(findings))
}

func findingsTable(findings []compliance.Finding) string {
	rows := make([][]string, len(findings))
	for i, f := range findings {
		elem := f.ElementID
		if elem == "" {
			elem = "—"
		}
		rows[i] = []string{string(f.Severity), f.Name, elem, f.Message}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers("Severity", "Finding", "Element", "Message").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleTableHeader
			}
			if col == 0 && row >= 0 && row < len(findings) {
				return severityStyle(findings[row].Severity)
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}

// printVariants prints one row per exported variant with its output file.
func printVariants(w io.Writer, variants []pipeline.Variant, paths []string) {
	rows := make([][]string, len(variants))
	for i, v := range variants {
		status := iconSuccess
		if !v.Report.IsCompliant {
			status = iconError
		}
		rows[i] = []string{
			v.Format.Key,
			fmt.Sprintf("%vx%v", v.Scene.Width, v.Scene.Height),
			fmt.Sprintf("%d", v.Report.Score),
			status,
			paths[i],
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers("Format", "Canvas", "Score", "OK", "File").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleTableHeader
			}
			if row < 0 || row >= len(variants) {
				return lipgloss.NewStyle()
			}
			switch col {
			case 2:
				return scoreStyle(variants[row].Report.Score)
			case 4:
				return StyleDim
			}
			return lipgloss.NewStyle()
		})
	fmt.Fprintln(w, t.Render())
}

// printFormats prints the format registry.
func printFormats(w io.Writer, formats []format.Format) {
	rows := make([][]string, len(formats))
	for i, f := range formats {
		rows[i] = []string{
			f.Key,
			f.Name,
			fmt.Sprintf("%dx%d", f.Width, f.Height),
			fmt.Sprintf("%.3f", f.Ratio()),
			string(f.Platform),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers("Key", "Name", "Size", "Ratio", "Platform").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleTableHeader
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle()
		})
	fmt.Fprintln(w, t.Render())
}
