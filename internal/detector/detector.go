// Package detector implements spec §4.4–§4.5: the Detector contract and
// the built-in SHIELD-001..008 rules. Each detector is an independent,
// idempotent, deterministic pure function of a single ScanTarget.
//
// Grounded on internal/completeness.Check's iterate-a-registry-and-
// accumulate shape (internal/metadata.Registry()'s declarative FieldSpec
// list), generalized from "field presence scoring" to "vulnerability
// presence scoring".
package detector

import "github.com/agentshield/agentshield-cli/internal/uir"

// RuleMetadata describes a detector for list-rules and for report rule
// descriptors (SARIF's reportingDescriptor).
type RuleMetadata struct {
	RuleID      string
	Title       string
	Severity    uir.Severity
	Category    uir.AttackCategory
	CWE         string
	Description string
}

// Detector is implemented once per built-in rule. Run must not mutate
// target, must not perform I/O, and must return the same findings given
// the same target on every call.
type Detector interface {
	Metadata() RuleMetadata
	Run(target *uir.ScanTarget) []uir.Finding
}

// Registry holds every registered Detector. The engine runs Run across
// every entry and concatenates results — order does not affect the result
// set, only the order findings are appended before Policy sorts them.
type Registry struct {
	detectors []Detector
}

// NewRegistry builds a Registry from the given detectors, in the order
// given.
func NewRegistry(detectors ...Detector) *Registry {
	return &Registry{detectors: detectors}
}

// Builtin returns a Registry with every SHIELD-001..008 detector
// registered.
func Builtin() *Registry {
	return NewRegistry(
		CommandInjectionDetector{},
		CredentialExfiltrationDetector{},
		SSRFDetector{},
		ArbitraryFileAccessDetector{},
		RuntimePackageInstallDetector{},
		SelfModificationDetector{},
		DependencyHygieneDetector{},
		OverBroadPermissionsDetector{},
	)
}

// Run executes every registered detector against target and concatenates
// their findings. A detector that panics is recovered and its findings
// are dropped for that run — one buggy rule must never abort a scan.
func (r *Registry) Run(target *uir.ScanTarget) []uir.Finding {
	var all []uir.Finding
	for _, d := range r.detectors {
		all = append(all, runIsolated(d, target)...)
	}
	for i := range all {
		if all[i].TargetName == "" {
			all[i].TargetName = target.Name
		}
	}
	return all
}

func runIsolated(d Detector, target *uir.ScanTarget) (findings []uir.Finding) {
	defer func() {
		if r := recover(); r != nil {
			findings = nil
		}
	}()
	return d.Run(target)
}

// List returns every registered detector's metadata, in registration
// order — the shape list-rules renders.
func (r *Registry) List() []RuleMetadata {
	out := make([]RuleMetadata, 0, len(r.detectors))
	for _, d := range r.detectors {
		out = append(out, d.Metadata())
	}
	return out
}
