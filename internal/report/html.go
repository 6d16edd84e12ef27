package report

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/agentshield/agentshield-cli/internal/uir"
)

func severityClass(sev uir.Severity) string {
	switch sev {
	case uir.SeverityCritical:
		return "crit"
	case uir.SeverityHigh:
		return "high"
	case uir.SeverityMedium:
		return "med"
	case uir.SeverityLow:
		return "low"
	default:
		return "info"
	}
}

// RenderHTML writes a self-contained HTML document (inline CSS, no external
// assets, suitable for CI artifact upload) summarizing a Report: a verdict
// banner, per-severity summary cards, and a findings table.
func RenderHTML(r Report, w io.Writer) error {
	var counts = map[uir.Severity]int{}
	for _, f := range r.Findings {
		counts[f.Severity]++
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>AgentShield Report</title><style>")
	sb.WriteString(`
body { font-family: -apple-system, Segoe UI, sans-serif; margin: 2rem; background: #0b0e14; color: #e6e6e6; }
h1 { font-size: 1.4rem; }
.banner { padding: 0.75rem 1rem; border-radius: 6px; font-weight: 600; margin-bottom: 1rem; }
.pass { background: #0f3d2e; color: #34d399; }
.fail { background: #3d0f16; color: #f87171; }
.cards { display: flex; gap: 0.75rem; margin-bottom: 1.5rem; }
.card { flex: 1; padding: 0.75rem; border-radius: 6px; background: #161b26; text-align: center; }
.card .n { font-size: 1.5rem; font-weight: 700; }
table { width: 100%; border-collapse: collapse; }
th, td { text-align: left; padding: 0.5rem 0.75rem; border-bottom: 1px solid #262c3a; font-size: 0.9rem; }
th { color: #9ca3af; font-weight: 600; }
.sev { padding: 0.1rem 0.5rem; border-radius: 4px; font-weight: 600; font-size: 0.8rem; }
.sev.crit { background: #3d0f16; color: #f87171; }
.sev.high { background: #3d2a0f; color: #fbbf24; }
.sev.med { background: #0f2e3d; color: #22d3ee; }
.sev.low, .sev.info { background: #1f2430; color: #9ca3af; }
.loc { color: #6b7280; font-family: monospace; font-size: 0.85rem; }
`)
	sb.WriteString("</style></head><body>")
	sb.WriteString("<h1>AgentShield Report</h1>")

	if r.Verdict.Pass {
		sb.WriteString(`<div class="banner pass">PASS</div>`)
	} else {
		fmt.Fprintf(&sb, `<div class="banner fail">FAIL (fail_on=%s)</div>`, html.EscapeString(string(r.Verdict.FailThreshold)))
	}

	sb.WriteString(`<div class="cards">`)
	for _, sev := range []uir.Severity{uir.SeverityCritical, uir.SeverityHigh, uir.SeverityMedium, uir.SeverityLow, uir.SeverityInfo} {
		fmt.Fprintf(&sb, `<div class="card"><div class="n">%d</div><div>%s</div></div>`, counts[sev], html.EscapeString(string(sev)))
	}
	sb.WriteString(`</div>`)

	sb.WriteString("<table><thead><tr><th>Rule</th><th>Severity</th><th>Title</th><th>Location</th></tr></thead><tbody>")
	for _, f := range r.Findings {
		loc := ""
		if len(f.Evidence) > 0 {
			loc = fmt.Sprintf("%s:%d", f.Evidence[0].Location.File, f.Evidence[0].Location.Line)
		}
		fmt.Fprintf(&sb, "<tr><td>%s</td><td><span class=\"sev %s\">%s</span></td><td>%s</td><td class=\"loc\">%s</td></tr>",
			html.EscapeString(f.RuleID),
			severityClass(f.Severity),
			html.EscapeString(string(f.Severity)),
			html.EscapeString(f.Title),
			html.EscapeString(loc),
		)
	}
	sb.WriteString("</tbody></table>")
	sb.WriteString("</body></html>")

	_, err := io.WriteString(w, sb.String())
	return err
}
