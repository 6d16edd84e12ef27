// Package report defines the Report that the scan command assembles from an
// engine.Result and renders it through one of several pluggable Renderers
// (spec §6). Renderers are
// "pluggable edges" per spec's scoping — deep-tested for shape
// correctness, not for every detector's exact wording.
package report

import (
	"io"

	"github.com/agentshield/agentshield-cli/internal/policy"
	"github.com/agentshield/agentshield-cli/internal/uir"
)

// Report is the renderer-agnostic shape every format derives from.
type Report struct {
	ScanID   string
	Root     string
	Targets  []string // ScanTarget names, for the summary header
	Findings []uir.Finding
	Verdict  policy.Verdict
}

// Renderer writes a Report to w in one output format.
type Renderer func(Report, io.Writer) error

// Registry maps a --format flag value to its Renderer.
var Registry = map[string]Renderer{
	"console": RenderConsole,
	"json":    RenderJSON,
	"sarif":   RenderSARIF,
	"html":    RenderHTML,
}

// ForFormat returns the named renderer, or nil if unknown.
func ForFormat(name string) Renderer {
	return Registry[name]
}
