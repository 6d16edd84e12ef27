package policy

import (
	"testing"

	"github.com/agentshield/agentshield-cli/internal/uir"
)

func finding(rule string, sev uir.Severity) uir.Finding {
	return uir.Finding{RuleID: rule, Severity: sev}
}

func TestDefault_FailsOnHighOrAbove(t *testing.T) {
	p := Default()
	findings := []uir.Finding{finding("SHIELD-001", uir.SeverityCritical)}
	v := p.Evaluate(p.Apply(findings))
	if v.Pass {
		t.Fatalf("expected fail, got pass")
	}
	if v.HighestSeverity != uir.SeverityCritical {
		t.Fatalf("highest severity = %q", v.HighestSeverity)
	}
}

func TestFailOnCritical_PassesOnHighFindings(t *testing.T) {
	p := Policy{FailOn: uir.SeverityCritical}
	findings := []uir.Finding{finding("SHIELD-003", uir.SeverityHigh)}
	v := p.Evaluate(p.Apply(findings))
	if !v.Pass {
		t.Fatalf("expected pass when only High findings exist and fail_on=critical")
	}
}

func TestIgnoreRules_DropsMatchingFindings(t *testing.T) {
	p := Policy{FailOn: uir.SeverityHigh, IgnoreRules: []string{"SHIELD-003"}}
	findings := []uir.Finding{finding("SHIELD-003", uir.SeverityHigh)}
	applied := p.Apply(findings)
	if len(applied) != 0 {
		t.Fatalf("expected ignored rule to be dropped, got %d findings", len(applied))
	}
	v := p.Evaluate(applied)
	if !v.Pass || v.Count != 0 {
		t.Fatalf("expected empty passing verdict, got %+v", v)
	}
}

func TestOverrides_RewritesSeverityBeforeEvaluation(t *testing.T) {
	p := Policy{
		FailOn:    uir.SeverityCritical,
		Overrides: map[string]uir.Severity{"SHIELD-004": uir.SeverityCritical},
	}
	findings := []uir.Finding{finding("SHIELD-004", uir.SeverityHigh)}
	applied := p.Apply(findings)
	if applied[0].Severity != uir.SeverityCritical {
		t.Fatalf("expected override to critical, got %q", applied[0].Severity)
	}
	v := p.Evaluate(applied)
	if v.Pass {
		t.Fatalf("expected fail after override bumps severity to critical")
	}
}

func TestEvaluate_EmptyFindings_Passes(t *testing.T) {
	p := Default()
	v := p.Evaluate(nil)
	if !v.Pass || v.Count != 0 {
		t.Fatalf("expected passing empty verdict, got %+v", v)
	}
}
