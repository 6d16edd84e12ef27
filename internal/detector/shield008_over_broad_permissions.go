package detector

import "github.com/agentshield/agentshield-cli/internal/uir"

// OverBroadPermissionsDetector (SHIELD-008) is a supplement beyond
// spec.md's six rules (see SPEC_FULL.md §C.4): it is the only detector
// correlating ToolSurface.Permissions against ExecutionSurface, which
// otherwise would be two disconnected UIR facts. It pools the permissions
// declared by every tool of the target and compares them with the
// target-wide execution facts: any command invocation with no tool
// declaring "process_exec", any network request with no tool declaring
// "network", and any write/delete file operation with no tool declaring
// "filesystem_write" each raise one finding, located at the first such
// fact. Tools are not matched to individual source files. This is a
// transparency smell (undercounted capability disclosure), not a
// vulnerability in itself, hence Low severity and Low confidence.
type OverBroadPermissionsDetector struct{}

func (OverBroadPermissionsDetector) Metadata() RuleMetadata {
	return RuleMetadata{
		RuleID:      "SHIELD-008",
		Title:       "Over-Broad Declared Permissions",
		Severity:    uir.SeverityLow,
		Category:    uir.CategoryOverBroadPermissions,
		CWE:         "CWE-272",
		Description: "A tool performs an operation its manifest does not declare a matching permission for.",
	}
}

func (d OverBroadPermissionsDetector) Run(target *uir.ScanTarget) []uir.Finding {
	if len(target.Tools) == 0 {
		return nil
	}
	declared := map[uir.Permission]bool{}
	for _, t := range target.Tools {
		for _, p := range t.Permissions {
			declared[p] = true
		}
	}

	meta := d.Metadata()
	var findings []uir.Finding

	if len(target.Execution.CommandInvocations) > 0 && !declared["process_exec"] {
		loc := target.Execution.CommandInvocations[0].Location
		findings = append(findings, uir.Finding{
			RuleID:      meta.RuleID,
			Title:       meta.Title,
			Severity:    meta.Severity,
			Confidence:  uir.ConfidenceLow,
			Category:    meta.Category,
			CWE:         meta.CWE,
			Description: "subprocess execution observed but no tool declares \"process_exec\"",
			Evidence:    []uir.Evidence{evidenceAt(target, loc)},
		})
	}
	if len(target.Execution.NetworkRequests) > 0 && !declared["network"] {
		loc := target.Execution.NetworkRequests[0].Location
		findings = append(findings, uir.Finding{
			RuleID:      meta.RuleID,
			Title:       meta.Title,
			Severity:    meta.Severity,
			Confidence:  uir.ConfidenceLow,
			Category:    meta.Category,
			CWE:         meta.CWE,
			Description: "outbound network call observed but no tool declares \"network\"",
			Evidence:    []uir.Evidence{evidenceAt(target, loc)},
		})
	}

	hasWrite := false
	var writeLoc uir.SourceLocation
	for _, op := range target.Execution.FileOperations {
		if op.Mode == "write" || op.Mode == "delete" {
			hasWrite = true
			writeLoc = op.Location
			break
		}
	}
	if hasWrite && !declared["filesystem_write"] {
		findings = append(findings, uir.Finding{
			RuleID:      meta.RuleID,
			Title:       meta.Title,
			Severity:    meta.Severity,
			Confidence:  uir.ConfidenceLow,
			Category:    meta.Category,
			CWE:         meta.CWE,
			Description: "filesystem write/delete observed but no tool declares \"filesystem_write\"",
			Evidence:    []uir.Evidence{evidenceAt(target, writeLoc)},
		})
	}

	return findings
}
