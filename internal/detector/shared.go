package detector

import (
	"strings"

	"github.com/agentshield/agentshield-cli/internal/uir"
)

// snippetFor returns the source line text at loc, used as Finding evidence.
// Returns "" when the file or line isn't found rather than erroring — a
// missing snippet never blocks a finding from being reported.
func snippetFor(target *uir.ScanTarget, loc uir.SourceLocation) string {
	for _, f := range target.Files {
		if f.Path != loc.File {
			continue
		}
		lines := strings.Split(f.Content, "\n")
		if loc.Line >= 1 && loc.Line <= len(lines) {
			return strings.TrimSpace(lines[loc.Line-1])
		}
	}
	return ""
}

func evidenceAt(target *uir.ScanTarget, loc uir.SourceLocation) uir.Evidence {
	return uir.Evidence{Location: loc, Snippet: snippetFor(target, loc)}
}
