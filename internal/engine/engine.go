// Package engine sequences Adapter → Detector registry → Policy over a
// scanned root and assembles the targets, the resulting uir.Finding set and
// the policy verdict into a Result. Every stage is a pure function of its inputs (spec §5);
// Run is the only place that performs file I/O, via internal/adapter.
//
// Grounded on internal/generator.BuildPerDiscoveryWithProgress's
// orchestration shape: a sequential pipeline that emits ProgressEvents an
// internal/ui.Workflow consumes to drive a live terminal display.
package engine

import (
	"sort"

	"github.com/agentshield/agentshield-cli/internal/adapter"
	"github.com/agentshield/agentshield-cli/internal/detector"
	"github.com/agentshield/agentshield-cli/internal/logging"
	"github.com/agentshield/agentshield-cli/internal/policy"
	"github.com/agentshield/agentshield-cli/internal/uir"
)

// EventType is the closed set of progress events Run emits.
type EventType string

const (
	EventScanStart   EventType = "scan_start"
	EventScanDone    EventType = "scan_done"
	EventDetectStart EventType = "detect_start"
	EventDetectDone  EventType = "detect_done"
	EventPolicyDone  EventType = "policy_done"
)

// ProgressEvent is sent to the optional OnProgress callback as Run advances
// through the pipeline.
type ProgressEvent struct {
	Type    EventType
	Message string
}

// Result is everything a completed Run produces.
type Result struct {
	Targets  []uir.ScanTarget
	Findings []uir.Finding
	Verdict  policy.Verdict
}

// Options configures a Run.
type Options struct {
	Policy     policy.Policy
	Logger     *logging.Logger
	OnProgress func(ProgressEvent)
}

func (o Options) emit(evt EventType, msg string) {
	if o.OnProgress != nil {
		o.OnProgress(ProgressEvent{Type: evt, Message: msg})
	}
}

// Run scans root, runs every built-in detector against every discovered
// ScanTarget, applies opts.Policy, and returns the assembled Result.
func Run(root string, opts Options) (Result, error) {
	log := opts.Logger
	if log == nil {
		log = &logging.Logger{}
	}

	opts.emit(EventScanStart, root)
	targets, err := adapter.AutoDetectAndLoad(root, log)
	if err != nil {
		return Result{}, err
	}
	opts.emit(EventScanDone, "")

	registry := detector.Builtin()
	var all []uir.Finding

	opts.emit(EventDetectStart, "")
	for i := range targets {
		all = append(all, registry.Run(&targets[i])...)
	}
	opts.emit(EventDetectDone, "")

	p := opts.Policy
	if p.FailOn == "" {
		p.FailOn = policy.Default().FailOn
	}
	applied := p.Apply(all)
	sortFindings(applied)
	verdict := p.Evaluate(applied)
	opts.emit(EventPolicyDone, "")

	return Result{Targets: targets, Findings: applied, Verdict: verdict}, nil
}

// sortFindings orders findings per spec §6's renderer contract: severity
// descending, then rule_id ascending, then file, then line.
func sortFindings(findings []uir.Finding) {
	rank := map[uir.Severity]int{
		uir.SeverityCritical: 0,
		uir.SeverityHigh:     1,
		uir.SeverityMedium:   2,
		uir.SeverityLow:      3,
		uir.SeverityInfo:     4,
	}
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if rank[a.Severity] != rank[b.Severity] {
			return rank[a.Severity] < rank[b.Severity]
		}
		if a.RuleID != b.RuleID {
			return a.RuleID < b.RuleID
		}
		af, bf := locOf(a), locOf(b)
		if af.File != bf.File {
			return af.File < bf.File
		}
		return af.Line < bf.Line
	})
}

func locOf(f uir.Finding) uir.SourceLocation {
	if len(f.Evidence) == 0 {
		return uir.SourceLocation{}
	}
	return f.Evidence[0].Location
}
