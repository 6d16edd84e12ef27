package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/agentshield/agentshield-cli/internal/policy"
	"github.com/agentshield/agentshield-cli/internal/uir"
)

func sampleReport() Report {
	return Report{
		ScanID:  "scan-1",
		Root:    "/tmp/skill",
		Targets: []string{"skill"},
		Findings: []uir.Finding{
			{
				RuleID:      "SHIELD-001",
				Title:       "Command Injection",
				Severity:    uir.SeverityCritical,
				Confidence:  uir.ConfidenceHigh,
				Category:    uir.CategoryCommandInjection,
				CWE:         "CWE-78",
				Description: "tainted argument reaches a shell",
				TargetName:  "skill",
				Evidence: []uir.Evidence{
					{Location: uir.SourceLocation{File: "server.py", Line: 5, Column: 1}, Snippet: "subprocess.run(cmd, shell=True)"},
				},
			},
		},
		Verdict: policy.Verdict{Pass: false, Count: 1, HighestSeverity: uir.SeverityCritical, FailThreshold: uir.SeverityHigh},
	}
}

func TestRenderJSON_ShapeAndVerdictPatch(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderJSON(sampleReport(), &buf); err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	verdict, ok := decoded["verdict"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected a verdict object, got %+v", decoded["verdict"])
	}
	if verdict["pass"] != false {
		t.Fatalf("expected pass=false, got %v", verdict["pass"])
	}
	findings, ok := decoded["findings"].([]interface{})
	if !ok || len(findings) != 1 {
		t.Fatalf("expected one finding, got %+v", decoded["findings"])
	}
}

func TestRenderSARIF_DedupsRuleDescriptors(t *testing.T) {
	r := sampleReport()
	r.Findings = append(r.Findings, r.Findings[0])

	var buf bytes.Buffer
	if err := RenderSARIF(r, &buf); err != nil {
		t.Fatalf("RenderSARIF: %v", err)
	}
	var doc sarifLog
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid SARIF JSON: %v", err)
	}
	if len(doc.Runs) != 1 {
		t.Fatalf("expected exactly one run")
	}
	if len(doc.Runs[0].Tool.Driver.Rules) != 1 {
		t.Fatalf("expected rule descriptors deduped to 1, got %d", len(doc.Runs[0].Tool.Driver.Rules))
	}
	if len(doc.Runs[0].Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(doc.Runs[0].Results))
	}
	if doc.Runs[0].Results[0].Locations[0].PhysicalLocation.Region.StartLine != 5 {
		t.Fatalf("expected 1-indexed line carried through, got %d",
			doc.Runs[0].Results[0].Locations[0].PhysicalLocation.Region.StartLine)
	}
}

func TestRenderHTML_ContainsBannerAndRule(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHTML(sampleReport(), &buf); err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "FAIL") {
		t.Fatalf("expected a FAIL banner in HTML output")
	}
	if !strings.Contains(out, "SHIELD-001") {
		t.Fatalf("expected the rule id in HTML output")
	}
}

func TestRenderConsole_PassBanner(t *testing.T) {
	r := Report{Verdict: policy.Verdict{Pass: true, FailThreshold: uir.SeverityHigh}}
	var buf bytes.Buffer
	if err := RenderConsole(r, &buf); err != nil {
		t.Fatalf("RenderConsole: %v", err)
	}
	if !strings.Contains(buf.String(), "PASS") {
		t.Fatalf("expected a PASS banner, got %q", buf.String())
	}
}

func TestForFormat_UnknownReturnsNil(t *testing.T) {
	if ForFormat("yaml") != nil {
		t.Fatalf("expected nil renderer for an unregistered format")
	}
}
