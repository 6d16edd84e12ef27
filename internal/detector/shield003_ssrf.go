package detector

import "github.com/agentshield/agentshield-cli/internal/uir"

// SSRFDetector (SHIELD-003) fires when a NetworkRequest's URL is a
// Parameter, Interpolated, or Unknown origin — never Literal or EnvVar —
// at High confidence for Parameter and Medium for Interpolated/Unknown.
// An agent tool that lets untrusted input steer an outbound request's
// destination is a server-side request forgery vector.
type SSRFDetector struct{}

func (SSRFDetector) Metadata() RuleMetadata {
	return RuleMetadata{
		RuleID:      "SHIELD-003",
		Title:       "Server-Side Request Forgery",
		Severity:    uir.SeverityHigh,
		Category:    uir.CategorySSRF,
		CWE:         "CWE-918",
		Description: "An outbound network request's destination is built from untrusted input.",
	}
}

func (d SSRFDetector) Run(target *uir.ScanTarget) []uir.Finding {
	var findings []uir.Finding
	meta := d.Metadata()
	for _, req := range target.Execution.NetworkRequests {
		if req.URL.Kind == uir.ArgLiteral || req.URL.Kind == uir.ArgEnvVar {
			continue
		}
		confidence := uir.ConfidenceHigh
		if req.URL.Kind == uir.ArgInterpolated || req.URL.Kind == uir.ArgUnknown {
			confidence = uir.ConfidenceMedium
		}
		findings = append(findings, uir.Finding{
			RuleID:      meta.RuleID,
			Title:       meta.Title,
			Severity:    meta.Severity,
			Confidence:  confidence,
			Category:    meta.Category,
			CWE:         meta.CWE,
			Description: meta.Description,
			Evidence:    []uir.Evidence{evidenceAt(target, req.Location)},
		})
	}
	return findings
}
