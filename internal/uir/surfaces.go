package uir

// ToolSurface describes one tool/function an MCP server or OpenClaw skill
// exposes to an agent, as declared in its manifest (tool schema, SKILL.md
// frontmatter).
type ToolSurface struct {
	Name        string
	Description string
	Permissions []Permission
	Location    SourceLocation
}

// Permission is a single declared capability (e.g. "process_exec",
// "network", "filesystem_write") found in a manifest's permission list.
type Permission string

// DataSurface carries taint-path facts for a future interprocedural
// dataflow pass (spec §9). No built-in detector populates or reads it in
// v1 — it exists so the schema does not need to change when that pass
// lands.
type DataSurface struct {
	Sources []DataTaintSource
	Sinks   []DataTaintSink
	Paths   []DataTaintPath
}

type DataTaintSource struct {
	Location SourceLocation
	Kind     string
}

type DataTaintSink struct {
	Location SourceLocation
	Kind     string
}

type DataTaintPath struct {
	Source SourceLocation
	Sink   SourceLocation
}

// DependencySurface is the result of parsing a ScanTarget's manifest and
// lockfiles: the flat dependency list plus whatever lockfile hygiene issues
// SHIELD-007 should raise.
type DependencySurface struct {
	Dependencies []Dependency
	Lockfile     LockfileInfo
	Issues       []DependencyIssue
}

// Dependency is one declared third-party package.
type Dependency struct {
	Name    string
	Version string // empty when unpinned
	Pinned  bool
	Hashed  bool
	Source  string // manifest file path this entry came from
}

// LockfileInfo summarizes whether a lockfile was found alongside the
// manifest and whether it fully pins/hashes every dependency.
type LockfileInfo struct {
	Present    bool
	Format     string // "poetry.lock", "uv.lock", "Pipfile.lock", "package-lock.json"
	AllPinned  bool
	AllHashed  bool
}

// DependencyIssueKind is the closed set of hygiene problems SHIELD-007
// reports.
type DependencyIssueKind string

const (
	IssueUnpinned        DependencyIssueKind = "unpinned"
	IssueNoHash          DependencyIssueKind = "no_hash"
	IssuePossibleTyposquat DependencyIssueKind = "possible_typosquat"
	IssueNoLockfile      DependencyIssueKind = "no_lockfile"
)

// DependencyIssue flags one problem found while parsing a ScanTarget's
// dependency manifests.
type DependencyIssue struct {
	Kind       DependencyIssueKind
	Dependency string // package name, empty for target-wide issues (no_lockfile)
	Detail     string
}

// ProvenanceSurface carries package/author metadata found in a ScanTarget's
// manifest, when present. No signature or checksum verification is
// performed in v1 — Signed/ChecksumVerified are always zero-value.
type ProvenanceSurface struct {
	PackageName     string
	Version         string
	Author          string
	Repository      string
	Signed          bool
	ChecksumVerified bool
}
