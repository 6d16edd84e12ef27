package uir

// Severity is a closed, ordered scale: info < low < medium < high < critical.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var severityRank = map[Severity]int{
	SeverityInfo:     0,
	SeverityLow:      1,
	SeverityMedium:   2,
	SeverityHigh:     3,
	SeverityCritical: 4,
}

// Less reports whether s ranks strictly below other on the severity scale.
func (s Severity) Less(other Severity) bool {
	return severityRank[s] < severityRank[other]
}

// AtLeast reports whether s ranks at or above other.
func (s Severity) AtLeast(other Severity) bool {
	return severityRank[s] >= severityRank[other]
}

// Confidence is a closed, ordered scale: low < medium < high.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

var confidenceRank = map[Confidence]int{
	ConfidenceLow:    0,
	ConfidenceMedium: 1,
	ConfidenceHigh:   2,
}

// Less reports whether c ranks strictly below other.
func (c Confidence) Less(other Confidence) bool {
	return confidenceRank[c] < confidenceRank[other]
}

// AttackCategory tags a Finding with the broad class of weakness it
// represents, independent of the specific rule that raised it.
type AttackCategory string

const (
	CategoryCommandInjection       AttackCategory = "command_injection"
	CategoryCredentialExfiltration AttackCategory = "credential_exfiltration"
	CategorySSRF                   AttackCategory = "ssrf"
	CategoryArbitraryFileAccess    AttackCategory = "arbitrary_file_access"
	CategoryRuntimePackageInstall  AttackCategory = "runtime_package_install"
	CategorySelfModification       AttackCategory = "self_modification"
	CategoryDependencyHygiene      AttackCategory = "dependency_hygiene"
	CategoryOverBroadPermissions   AttackCategory = "over_broad_permissions"
)

// Evidence is the source snippet and location backing a Finding.
type Evidence struct {
	Location SourceLocation
	Snippet  string
}

// Finding is a single detector result: one rule firing against one piece of
// evidence in one ScanTarget.
type Finding struct {
	RuleID      string
	Title       string
	Severity    Severity
	Confidence  Confidence
	Category    AttackCategory
	CWE         string
	Description string
	Evidence    []Evidence
	TargetName  string
}
