package config

import (
	"testing"

	"github.com/spf13/viper"

	"github.com/agentshield/agentshield-cli/internal/uir"
)

func TestPolicy_DefaultsWhenUnset(t *testing.T) {
	viper.Reset()
	p := Policy()
	if p.FailOn != uir.SeverityHigh {
		t.Fatalf("expected default fail_on=high, got %q", p.FailOn)
	}
	if len(p.IgnoreRules) != 0 || len(p.Overrides) != 0 {
		t.Fatalf("expected no ignores/overrides by default")
	}
}

func TestPolicy_ReadsViperKeys(t *testing.T) {
	viper.Reset()
	viper.Set("scan.fail-on", "critical")
	viper.Set("scan.ignore-rules", []string{"SHIELD-007"})
	viper.Set("scan.overrides", map[string]interface{}{"SHIELD-008": "low"})

	p := Policy()
	if p.FailOn != uir.SeverityCritical {
		t.Fatalf("expected fail_on=critical, got %q", p.FailOn)
	}
	if len(p.IgnoreRules) != 1 || p.IgnoreRules[0] != "SHIELD-007" {
		t.Fatalf("expected ignore_rules=[SHIELD-007], got %+v", p.IgnoreRules)
	}
	if p.Overrides["SHIELD-008"] != uir.SeverityLow {
		t.Fatalf("expected override SHIELD-008=low, got %+v", p.Overrides)
	}
}

func TestInit_MissingConfigFileIsNotAnError(t *testing.T) {
	viper.Reset()
	if err := Init(""); err != nil {
		t.Fatalf("Init with no config file present should not error, got %v", err)
	}
}
