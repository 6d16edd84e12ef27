package detector

import "github.com/agentshield/agentshield-cli/internal/uir"

// ArbitraryFileAccessDetector (SHIELD-004) fires when a FileOperation's
// path is tainted — an agent tool that lets untrusted input choose which
// file to read/write/delete is a path-traversal / arbitrary-file-access
// vector, regardless of whether the call site itself sanitizes "..".
// Confidence is High for a Parameter-origin path and Medium for every
// other tainted kind (Interpolated, EnvVar, Unknown).
type ArbitraryFileAccessDetector struct{}

func (ArbitraryFileAccessDetector) Metadata() RuleMetadata {
	return RuleMetadata{
		RuleID:      "SHIELD-004",
		Title:       "Arbitrary File Access",
		Severity:    uir.SeverityHigh,
		Category:    uir.CategoryArbitraryFileAccess,
		CWE:         "CWE-22",
		Description: "A file operation's path is built from untrusted input.",
	}
}

func (d ArbitraryFileAccessDetector) Run(target *uir.ScanTarget) []uir.Finding {
	var findings []uir.Finding
	meta := d.Metadata()
	for _, op := range target.Execution.FileOperations {
		if !op.Path.IsTainted() {
			continue
		}
		confidence := uir.ConfidenceMedium
		if op.Path.Kind == uir.ArgParameter {
			confidence = uir.ConfidenceHigh
		}
		findings = append(findings, uir.Finding{
			RuleID:      meta.RuleID,
			Title:       meta.Title,
			Severity:    meta.Severity,
			Confidence:  confidence,
			Category:    meta.Category,
			CWE:         meta.CWE,
			Description: meta.Description,
			Evidence:    []uir.Evidence{evidenceAt(target, op.Location)},
		})
	}
	return findings
}
