package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/agentshield/agentshield-cli/internal/uir"
)

var (
	sevCritical = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	sevHigh     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	sevMedium   = lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4"))
	sevLow      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	sevInfo     = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	passBanner  = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	failBanner  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
)

func severityStyle(sev uir.Severity) lipgloss.Style {
	switch sev {
	case uir.SeverityCritical:
		return sevCritical
	case uir.SeverityHigh:
		return sevHigh
	case uir.SeverityMedium:
		return sevMedium
	case uir.SeverityLow:
		return sevLow
	default:
		return sevInfo
	}
}

// RenderConsole writes a human-readable findings table plus a PASS/FAIL
// banner, in the teacher's lipgloss-styled-report idiom (internal/ui's
// styles.go color palette, generalized from BOM completeness scoring to
// finding severity).
func RenderConsole(r Report, w io.Writer) error {
	if len(r.Findings) == 0 {
		fmt.Fprintln(w, passBanner.Render("✓ No findings"))
	}
	for _, f := range r.Findings {
		style := severityStyle(f.Severity)
		loc := ""
		if len(f.Evidence) > 0 {
			loc = fmt.Sprintf("%s:%d", f.Evidence[0].Location.File, f.Evidence[0].Location.Line)
		}
		fmt.Fprintf(w, "%s  %s  %s\n",
			style.Render(fmt.Sprintf("[%s]", f.Severity)),
			style.Render(f.RuleID),
			f.Title,
		)
		if loc != "" {
			fmt.Fprintf(w, "  %s %s\n", dimStyle.Render("→"), dimStyle.Render(loc))
		}
		fmt.Fprintf(w, "  %s\n\n", dimStyle.Render(f.Description))
	}

	fmt.Fprintf(w, "%d finding(s), highest severity: %s\n", r.Verdict.Count, r.Verdict.HighestSeverity)
	if r.Verdict.Pass {
		fmt.Fprintln(w, passBanner.Render("PASS"))
	} else {
		fmt.Fprintln(w, failBanner.Render(fmt.Sprintf("FAIL (fail_on=%s)", r.Verdict.FailThreshold)))
	}
	return nil
}
