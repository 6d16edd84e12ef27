package detector

import "github.com/agentshield/agentshield-cli/internal/uir"

// DependencyHygieneDetector (SHIELD-007) is a supplement beyond spec.md's
// six rules (see SPEC_FULL.md §C.4): it is the only detector that reads
// DependencySurface, which otherwise would be assembled by
// internal/dependency and never consumed. One finding per DependencyIssue.
type DependencyHygieneDetector struct{}

func (DependencyHygieneDetector) Metadata() RuleMetadata {
	return RuleMetadata{
		RuleID:      "SHIELD-007",
		Title:       "Dependency Hygiene",
		Severity:    uir.SeverityMedium,
		Category:    uir.CategoryDependencyHygiene,
		CWE:         "CWE-1104",
		Description: "A declared dependency has a manifest hygiene problem (unpinned, unhashed, no lockfile, or a likely typosquat).",
	}
}

func (d DependencyHygieneDetector) Run(target *uir.ScanTarget) []uir.Finding {
	var findings []uir.Finding
	meta := d.Metadata()
	for _, issue := range target.Deps.Issues {
		sev := uir.SeverityLow
		switch issue.Kind {
		case uir.IssueNoHash:
			sev = uir.SeverityMedium
		case uir.IssuePossibleTyposquat:
			sev = uir.SeverityHigh
		case uir.IssueUnpinned, uir.IssueNoLockfile:
			sev = uir.SeverityLow
		}
		findings = append(findings, uir.Finding{
			RuleID:      meta.RuleID,
			Title:       meta.Title,
			Severity:    sev,
			Confidence:  uir.ConfidenceMedium,
			Category:    meta.Category,
			CWE:         meta.CWE,
			Description: issue.Detail,
			TargetName:  target.Name,
		})
	}
	return findings
}
