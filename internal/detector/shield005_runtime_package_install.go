package detector

import (
	"regexp"
	"strings"

	"github.com/agentshield/agentshield-cli/internal/uir"
)

// installPatternRe matches the command text of a runtime package manager
// invocation (spec §4.2's Shell-extractor install row).
var installPatternRe = regexp.MustCompile(`\b(pip3?|uv\s+pip|npm|yarn|pnpm)\s+(?:install|i|add)\b`)

// RuntimePackageInstallDetector (SHIELD-005) fires on every
// CommandInvocation whose Callee is "package_install" or whose command text
// (Command.Raw, whatever its Kind) matches a package-manager install
// pattern (High confidence: an agent extension that installs
// packages at runtime, rather than declaring them in its manifest,
// bypasses whatever review process gates the manifest), and on every
// DynamicExec whose Function or code argument references pip's
// programmatic install entry points (Medium confidence: pip.main/importlib
// calls are a less direct but still plausible runtime-install vector).
type RuntimePackageInstallDetector struct{}

func (RuntimePackageInstallDetector) Metadata() RuleMetadata {
	return RuleMetadata{
		RuleID:      "SHIELD-005",
		Title:       "Runtime Package Install",
		Severity:    uir.SeverityHigh,
		Category:    uir.CategoryRuntimePackageInstall,
		CWE:         "CWE-829",
		Description: "The extension installs a package at runtime instead of declaring it in a manifest.",
	}
}

func (d RuntimePackageInstallDetector) Run(target *uir.ScanTarget) []uir.Finding {
	var findings []uir.Finding
	meta := d.Metadata()

	for _, ci := range target.Execution.CommandInvocations {
		text := ci.Command.Raw
		if ci.Callee == "package_install" || installPatternRe.MatchString(text) {
			findings = append(findings, uir.Finding{
				RuleID:      meta.RuleID,
				Title:       meta.Title,
				Severity:    meta.Severity,
				Confidence:  uir.ConfidenceHigh,
				Category:    meta.Category,
				CWE:         meta.CWE,
				Description: meta.Description,
				Evidence:    []uir.Evidence{evidenceAt(target, ci.Location)},
			})
		}
	}

	for _, dyn := range target.Execution.DynamicExec {
		if strings.Contains(dyn.Function, "pip.main") || strings.Contains(dyn.Function, "importlib") ||
			strings.Contains(dyn.CodeArg.Raw, "pip.main") || strings.Contains(dyn.CodeArg.Raw, "importlib") {
			findings = append(findings, uir.Finding{
				RuleID:      meta.RuleID,
				Title:       meta.Title,
				Severity:    meta.Severity,
				Confidence:  uir.ConfidenceMedium,
				Category:    meta.Category,
				CWE:         meta.CWE,
				Description: "a dynamic-exec call references pip's or importlib's programmatic install entry points",
				Evidence:    []uir.Evidence{evidenceAt(target, dyn.Location)},
			})
		}
	}

	return findings
}
