// Package config wires github.com/spf13/viper into AgentShield's CLI the
// way the teacher's cmd/aibomgen-cli/root.go wires it for AIBoMGen: a
// cobra.OnInitialize hook that loads an optional TOML file and layers
// environment variables on top, with flags bound directly onto viper keys
// from each subcommand's init().
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/agentshield/agentshield-cli/internal/policy"
	"github.com/agentshield/agentshield-cli/internal/uir"
)

// FileName is the config file viper looks for, without extension.
const FileName = ".agentshield"

// Init loads cfgFile (if set), otherwise searches the current directory and
// $HOME for a .agentshield.toml, and enables AGENTSHIELD_-prefixed
// environment variable overrides (scan.fail-on -> AGENTSHIELD_SCAN_FAIL_ON).
// A missing config file is not an error: AgentShield runs fully off defaults
// and flags.
func Init(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigType("toml")
		viper.SetConfigName(FileName)
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("AGENTSHIELD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	notFound := &viper.ConfigFileNotFoundError{}
	switch {
	case err == nil:
		return nil
	case errors.As(err, notFound):
		return nil
	default:
		return fmt.Errorf("reading config: %w", err)
	}
}

// ConfigFileUsed reports which file, if any, Init loaded.
func ConfigFileUsed() string {
	return viper.ConfigFileUsed()
}

// Policy builds a policy.Policy from viper's scan.* keys (fail-on,
// ignore-rules, overrides), using the config file's [policy] table keys
// (fail_on, ignore_rules, [policy.overrides]) for any scan.* key left
// unset, and policy.Default() fields for whatever neither sets.
func Policy() policy.Policy {
	p := policy.Default()

	failOn := viper.GetString("scan.fail-on")
	if strings.TrimSpace(failOn) == "" {
		failOn = viper.GetString("policy.fail_on")
	}
	if failOn = strings.ToLower(strings.TrimSpace(failOn)); failOn != "" {
		p.FailOn = uir.Severity(failOn)
	}

	ignored := viper.GetStringSlice("scan.ignore-rules")
	if len(ignored) == 0 {
		ignored = viper.GetStringSlice("policy.ignore_rules")
	}
	if len(ignored) > 0 {
		p.IgnoreRules = ignored
	}

	overrides := viper.GetStringMapString("scan.overrides")
	if len(overrides) == 0 {
		overrides = viper.GetStringMapString("policy.overrides")
	}
	if len(overrides) > 0 {
		p.Overrides = make(map[string]uir.Severity, len(overrides))
		for ruleID, sev := range overrides {
			p.Overrides[ruleID] = uir.Severity(strings.ToLower(strings.TrimSpace(sev)))
		}
	}

	return p
}
