package detector

import "github.com/agentshield/agentshield-cli/internal/uir"

// credentialProximityLines is the same-file line-distance threshold within
// which a sensitive EnvAccess is considered close enough to a network call
// to raise confidence to High rather than Medium. Chosen per spec §9's
// design note: close enough to plausibly be the same code path reading a
// secret and sending it out, without requiring full dataflow.
const credentialProximityLines = 30

// CredentialExfiltrationDetector (SHIELD-002) fires on every NetworkRequest
// that sends data (SendsData) and shares a file with at least one sensitive
// EnvAccess (S_f): one finding per network op, not one per (credential,
// request) pair, with evidence covering every sensitive access in the file
// plus the request itself. Confidence is High when the nearest sensitive
// access is within credentialProximityLines of the request, Medium
// otherwise. Cross-file correlation is explicitly out of scope (spec
// §9) — without interprocedural dataflow, correlating across files
// produces too many false positives from unrelated network calls
// elsewhere in a large server.
//
// Grounded on other_examples/…AI-Agentic-Shield…dataflow.go's
// checkRedirectFlows/checkSubstitutionExfil pattern of pairing a sensitive
// read with a nearby network-shaped sink.
type CredentialExfiltrationDetector struct{}

func (CredentialExfiltrationDetector) Metadata() RuleMetadata {
	return RuleMetadata{
		RuleID:      "SHIELD-002",
		Title:       "Credential Exfiltration",
		Severity:    uir.SeverityCritical,
		Category:    uir.CategoryCredentialExfiltration,
		CWE:         "CWE-522",
		Description: "A sensitive environment variable read and an outbound network call that sends data appear in the same file.",
	}
}

func (d CredentialExfiltrationDetector) Run(target *uir.ScanTarget) []uir.Finding {
	var findings []uir.Finding
	meta := d.Metadata()

	for _, req := range target.Execution.NetworkRequests {
		if !req.SendsData {
			continue
		}

		var sensitive []uir.EnvAccess
		for _, acc := range target.Execution.EnvAccesses {
			if acc.IsSensitive && acc.Location.File == req.Location.File {
				sensitive = append(sensitive, acc)
			}
		}
		if len(sensitive) == 0 {
			continue
		}

		minDist := -1
		evidence := make([]uir.Evidence, 0, len(sensitive)+1)
		for _, acc := range sensitive {
			dist := acc.Location.Line - req.Location.Line
			if dist < 0 {
				dist = -dist
			}
			if minDist == -1 || dist < minDist {
				minDist = dist
			}
			evidence = append(evidence, evidenceAt(target, acc.Location))
		}
		evidence = append(evidence, evidenceAt(target, req.Location))

		confidence := uir.ConfidenceMedium
		if minDist <= credentialProximityLines {
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
			Evidence:    evidence,
		})
	}
	return findings
}
