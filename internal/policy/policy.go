// Package policy implements spec §4.6: filtering findings through
// ignore_rules and severity overrides, then gating pass/fail on a
// configured severity threshold.
package policy

import "github.com/agentshield/agentshield-cli/internal/uir"

// Policy configures how raw detector findings are filtered and evaluated.
// The zero value is the default policy: fail_on=high, no ignores, no
// overrides.
type Policy struct {
	// FailOn is the minimum severity (after Apply) that causes Evaluate to
	// report a failing verdict. Defaults to SeverityHigh when empty.
	FailOn uir.Severity
	// IgnoreRules lists rule IDs whose findings Apply drops entirely.
	IgnoreRules []string
	// Overrides remaps a rule ID's severity before evaluation.
	Overrides map[string]uir.Severity
}

// Default returns the policy used when no .agentshield.toml is present:
// fail_on=high, no ignores, no overrides.
func Default() Policy {
	return Policy{FailOn: uir.SeverityHigh}
}

func (p Policy) effectiveFailOn() uir.Severity {
	if p.FailOn == "" {
		return uir.SeverityHigh
	}
	return p.FailOn
}

func (p Policy) isIgnored(ruleID string) bool {
	for _, id := range p.IgnoreRules {
		if id == ruleID {
			return true
		}
	}
	return false
}

// Apply filters out ignored rules and rewrites severities per Overrides.
// It returns a new slice; the input is never mutated.
func (p Policy) Apply(findings []uir.Finding) []uir.Finding {
	out := make([]uir.Finding, 0, len(findings))
	for _, f := range findings {
		if p.isIgnored(f.RuleID) {
			continue
		}
		if sev, ok := p.Overrides[f.RuleID]; ok {
			f.Severity = sev
		}
		out = append(out, f)
	}
	return out
}

// Verdict summarizes a policy evaluation over an (already Apply'd) finding
// set.
type Verdict struct {
	Pass            bool
	Count           int
	HighestSeverity uir.Severity
	FailThreshold   uir.Severity
}

// Evaluate computes the pass/fail verdict for a set of findings that have
// already been passed through Apply. Pass is true iff every finding's
// severity ranks strictly below FailOn (pass = ∀ f, sev(f) < fail_on).
func (p Policy) Evaluate(findings []uir.Finding) Verdict {
	threshold := p.effectiveFailOn()
	v := Verdict{
		Pass:          true,
		Count:         len(findings),
		FailThreshold: threshold,
	}
	if len(findings) == 0 {
		return v
	}
	highest := uir.SeverityInfo
	for _, f := range findings {
		if highest.Less(f.Severity) {
			highest = f.Severity
		}
		if f.Severity.AtLeast(threshold) {
			v.Pass = false
		}
	}
	v.HighestSeverity = highest
	return v
}
