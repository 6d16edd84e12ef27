package detector

import (
	"strings"

	"github.com/agentshield/agentshield-cli/internal/uir"
)

// selfReferenceMarkers are expression fragments that plausibly resolve to
// the running script's own path. Confidence scales with how directly the
// marker names "my own file" versus "some file in my directory".
var selfReferenceMarkers = []struct {
	fragment   string
	confidence uir.Confidence
}{
	{"__file__", uir.ConfidenceHigh},
	{"sys.argv[0]", uir.ConfidenceHigh},
	{"process.argv[1]", uir.ConfidenceHigh},
	{"require.main.filename", uir.ConfidenceHigh},
	{"os.path.dirname(__file__)", uir.ConfidenceMedium},
	{"__dirname", uir.ConfidenceMedium},
}

// SelfModificationDetector (SHIELD-006) fires when a write or delete
// FileOperation's path expression references the running script's own
// location — an agent extension that rewrites or deletes its own source is
// a persistence/tamper vector regardless of whether the write target is
// provably the exact same file (static analysis cannot resolve
// os.path.dirname(__file__) + "/config.json" to an absolute path, hence the
// graduated confidence rather than a binary match).
type SelfModificationDetector struct{}

func (SelfModificationDetector) Metadata() RuleMetadata {
	return RuleMetadata{
		RuleID:      "SHIELD-006",
		Title:       "Self-Modification",
		Severity:    uir.SeverityHigh,
		Category:    uir.CategorySelfModification,
		CWE:         "CWE-506",
		Description: "A write or delete operation targets a path derived from the running script's own location.",
	}
}

func (d SelfModificationDetector) Run(target *uir.ScanTarget) []uir.Finding {
	var findings []uir.Finding
	meta := d.Metadata()
	for _, op := range target.Execution.FileOperations {
		if op.Mode != "write" && op.Mode != "delete" {
			continue
		}
		confidence, matched := matchesSelfReference(op.Path.Raw)
		if !matched {
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
			Evidence:    []uir.Evidence{evidenceAt(target, op.Location)},
		})
	}
	return findings
}

// matchesSelfReference reports the confidence of the most specific (longest)
// marker found in raw, so os.path.dirname(__file__) stays Medium even though
// it also contains __file__.
func matchesSelfReference(raw string) (uir.Confidence, bool) {
	best := uir.Confidence("")
	bestLen := 0
	for _, m := range selfReferenceMarkers {
		if strings.Contains(raw, m.fragment) && len(m.fragment) > bestLen {
			best = m.confidence
			bestLen = len(m.fragment)
		}
	}
	return best, bestLen > 0
}
