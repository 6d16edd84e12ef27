package report

import (
	"encoding/json"
	"io"

	"github.com/agentshield/agentshield-cli/internal/apperr"
	"github.com/agentshield/agentshield-cli/internal/uir"
)

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool               sarifTool           `json:"tool"`
	AutomationDetails  *sarifAutomationID  `json:"automationDetails,omitempty"`
	Results            []sarifResult       `json:"results"`
}

type sarifAutomationID struct {
	ID string `json:"id"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	InformationURI string      `json:"informationUri"`
	Version        string      `json:"version"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string                  `json:"id"`
	Name             string                  `json:"name"`
	ShortDescription sarifText               `json:"shortDescription"`
	FullDescription  sarifText               `json:"fullDescription"`
	Properties       sarifRuleProps          `json:"properties"`
	DefaultConfig    sarifRuleConfiguration  `json:"defaultConfiguration"`
}

type sarifRuleConfiguration struct {
	Level string `json:"level"`
}

type sarifRuleProps struct {
	Tags             []string `json:"tags"`
	SecuritySeverity string   `json:"security-severity,omitempty"`
}

type sarifText struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string            `json:"ruleId"`
	Level     string            `json:"level"`
	Message   sarifText         `json:"message"`
	Locations []sarifLocation   `json:"locations"`
	Properties sarifResultProps `json:"properties"`
}

type sarifResultProps struct {
	Confidence string `json:"confidence"`
	Category   string `json:"category"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion            `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn,omitempty"`
	Snippet     *sarifText `json:"snippet,omitempty"`
}

func sarifLevel(sev uir.Severity) string {
	switch sev {
	case uir.SeverityCritical, uir.SeverityHigh:
		return "error"
	case uir.SeverityMedium:
		return "warning"
	default:
		return "note"
	}
}

// RenderSARIF writes r as a SARIF 2.1.0 log, deduplicating rule descriptors
// by rule_id (a run's tool.driver.rules must list each rule exactly once,
// while results may reference a ruleId any number of times) and converting
// every finding location to SARIF's 1-indexed region convention.
func RenderSARIF(r Report, w io.Writer) error {
	rules := make([]sarifRule, 0)
	seen := make(map[string]bool)
	results := make([]sarifResult, 0, len(r.Findings))

	for _, f := range r.Findings {
		if !seen[f.RuleID] {
			seen[f.RuleID] = true
			rules = append(rules, sarifRule{
				ID:               f.RuleID,
				Name:             f.RuleID,
				ShortDescription: sarifText{Text: f.Title},
				FullDescription:  sarifText{Text: f.Description},
				Properties: sarifRuleProps{
					Tags: []string{string(f.Category), f.CWE},
				},
				DefaultConfig: sarifRuleConfiguration{Level: sarifLevel(f.Severity)},
			})
		}

		var locs []sarifLocation
		for _, e := range f.Evidence {
			line := e.Location.Line
			if line < 1 {
				line = 1
			}
			col := e.Location.Column
			var snippet *sarifText
			if e.Snippet != "" {
				snippet = &sarifText{Text: e.Snippet}
			}
			locs = append(locs, sarifLocation{
				PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactLocation{URI: e.Location.File},
					Region: sarifRegion{
						StartLine:   line,
						StartColumn: col,
						Snippet:     snippet,
					},
				},
			})
		}

		results = append(results, sarifResult{
			RuleID:    f.RuleID,
			Level:     sarifLevel(f.Severity),
			Message:   sarifText{Text: f.Description},
			Locations: locs,
			Properties: sarifResultProps{
				Confidence: string(f.Confidence),
				Category:   string(f.Category),
			},
		})
	}

	var automation *sarifAutomationID
	if r.ScanID != "" {
		automation = &sarifAutomationID{ID: r.ScanID}
	}

	doc := sarifLog{
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		Version: "2.1.0",
		Runs: []sarifRun{
			{
				Tool: sarifTool{Driver: sarifDriver{
					Name:           "agentshield",
					InformationURI: "https://github.com/agentshield/agentshield-cli",
					Version:        "0.1.0",
					Rules:          rules,
				}},
				AutomationDetails: automation,
				Results:           results,
			},
		},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return &apperr.OutputError{Format: "sarif", Message: err.Error()}
	}
	return nil
}
