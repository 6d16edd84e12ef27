package report

import (
	"encoding/json"
	"io"

	"github.com/tidwall/sjson"

	"github.com/agentshield/agentshield-cli/internal/apperr"
)

type jsonFinding struct {
	RuleID      string         `json:"rule_id"`
	Title       string         `json:"title"`
	Severity    string         `json:"severity"`
	Confidence  string         `json:"confidence"`
	Category    string         `json:"category"`
	CWE         string         `json:"cwe"`
	Description string         `json:"description"`
	Target      string         `json:"target"`
	Evidence    []jsonEvidence `json:"evidence"`
}

type jsonEvidence struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Snippet string `json:"snippet"`
}

type jsonVerdict struct {
	Pass            bool   `json:"pass"`
	Count           int    `json:"count"`
	HighestSeverity string `json:"highest_severity"`
	FailThreshold   string `json:"fail_threshold"`
}

type jsonReport struct {
	ScanID   string        `json:"scan_id"`
	Root     string        `json:"root"`
	Targets  []string      `json:"targets"`
	Findings []jsonFinding `json:"findings"`
	Verdict  jsonVerdict   `json:"verdict"`
}

// RenderJSON writes r per spec §6's JSON report shape. The verdict block
// is patched onto the marshaled document with sjson rather than being part
// of the initial struct marshal, mirroring how Nox-HQ-nox's handlers patch
// individual result fields onto an already-serialized payload instead of
// re-building the whole struct tree — useful here because a future
// renderer stage (e.g. redacting findings) can inject verdict without
// re-encoding every finding.
func RenderJSON(r Report, w io.Writer) error {
	doc := jsonReport{
		ScanID:  r.ScanID,
		Root:    r.Root,
		Targets: r.Targets,
	}
	for _, f := range r.Findings {
		jf := jsonFinding{
			RuleID:      f.RuleID,
			Title:       f.Title,
			Severity:    string(f.Severity),
			Confidence:  string(f.Confidence),
			Category:    string(f.Category),
			CWE:         f.CWE,
			Description: f.Description,
			Target:      f.TargetName,
		}
		for _, e := range f.Evidence {
			jf.Evidence = append(jf.Evidence, jsonEvidence{
				File: e.Location.File, Line: e.Location.Line, Column: e.Location.Column, Snippet: e.Snippet,
			})
		}
		doc.Findings = append(doc.Findings, jf)
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return &apperr.OutputError{Format: "json", Message: err.Error()}
	}

	body, err = sjson.SetBytes(body, "verdict", jsonVerdict{
		Pass:            r.Verdict.Pass,
		Count:           r.Verdict.Count,
		HighestSeverity: string(r.Verdict.HighestSeverity),
		FailThreshold:   string(r.Verdict.FailThreshold),
	})
	if err != nil {
		return &apperr.OutputError{Format: "json", Message: err.Error()}
	}

	var pretty interface{}
	if err := json.Unmarshal(body, &pretty); err != nil {
		return &apperr.OutputError{Format: "json", Message: err.Error()}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(pretty); err != nil {
		return &apperr.OutputError{Format: "json", Message: err.Error()}
	}
	return nil
}
