package detector

import (
	"strings"

	"github.com/agentshield/agentshield-cli/internal/uir"
)

// CommandInjectionDetector (SHIELD-001) fires when a CommandInvocation's
// Command argument is tainted (any ArgumentSource variant but Literal), or
// when a Literal command still contains a shell metacharacter that would
// let an embedded value escape its intended argument boundary — the
// classic "untrusted input reaches a shell" pattern.
//
// Grounded on the pack's own security-scanner references: the dataflow
// source→sink classification in
// other_examples/…AI-Agentic-Shield…dataflow.go and the taint-path
// evaluation in other_examples/…gh-aw…taint_analysis.go, both of which
// treat "tainted argument reaches an exec-family sink" as their canonical
// finding shape.
type CommandInjectionDetector struct{}

func (CommandInjectionDetector) Metadata() RuleMetadata {
	return RuleMetadata{
		RuleID:      "SHIELD-001",
		Title:       "Command Injection",
		Severity:    uir.SeverityCritical,
		Category:    uir.CategoryCommandInjection,
		CWE:         "CWE-78",
		Description: "A subprocess/shell invocation receives a command built from untrusted input.",
	}
}

func (d CommandInjectionDetector) Run(target *uir.ScanTarget) []uir.Finding {
	var findings []uir.Finding
	meta := d.Metadata()
	for _, ci := range target.Execution.CommandInvocations {
		var confidence uir.Confidence
		switch ci.Command.Kind {
		case uir.ArgParameter, uir.ArgInterpolated:
			confidence = uir.ConfidenceHigh
		case uir.ArgUnknown, uir.ArgEnvVar:
			confidence = uir.ConfidenceMedium
		case uir.ArgLiteral:
			if strings.ContainsAny(ci.Command.Raw, ";|&`") {
				confidence = uir.ConfidenceMedium
			} else {
				continue
			}
		default:
			continue
		}
		findings = append(findings, uir.Finding{
			RuleID:      meta.RuleID,
			Title:       meta.Title,
			Severity:    meta.Severity,
			Confidence:  confidence,
			Category:    meta.Category,
			CWE:         meta.CWE,
			Description: meta.Description,
			Evidence:    []uir.Evidence{evidenceAt(target, ci.Location)},
		})
	}
	return findings
}
