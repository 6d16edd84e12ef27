// Package uir defines the Unified Intermediate Representation that decouples
// framework-specific ingestion (internal/adapter) from language-specific
// parsing (internal/extractor) from vulnerability detection
// (internal/detector). No package outside adapter/extractor may construct a
// ScanTarget's facts directly; everything downstream consumes this shape.
package uir

// Framework identifies the agent-extension packaging convention a ScanTarget
// was discovered under.
type Framework string

const (
	FrameworkMCP      Framework = "mcp"
	FrameworkOpenClaw Framework = "openclaw"
)

// Language tags a SourceFile (and, transitively, the facts extracted from
// it) with the grammar its extractor used.
type Language string

const (
	LangPython     Language = "python"
	LangShell      Language = "shell"
	LangTypeScript Language = "typescript"
	LangJavaScript Language = "javascript"
	LangUnknown    Language = "unknown"
)

// SourceLocation pins a fact or Finding to a 1-indexed file position.
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

// SourceFile is a single file collected by an adapter, capped at 1 MiB
// (larger files are skipped and logged, never truncated).
type SourceFile struct {
	Path     string
	Language Language
	Content  string
	// Size is len(Content) in bytes.
	Size int64
	// ContentHash is the lowercase-hex SHA-256 digest of Content, stable
	// across runs on identical bytes.
	ContentHash string
}

// ScanTarget is the unit of work handed from adapters to the detector
// registry: one logically-coherent agent extension (one MCP server, one
// OpenClaw skill) plus every surface extracted from its source files.
type ScanTarget struct {
	Name      string
	RootPath  string
	Framework Framework
	Files     []SourceFile

	Execution  ExecutionSurface
	Tools      []ToolSurface
	Data       DataSurface
	Deps       DependencySurface
	Provenance ProvenanceSurface
}

// ArgumentSourceKind is the closed set of taint-origin tags. Exactly one
// variant applies to any given call argument.
type ArgumentSourceKind string

const (
	ArgLiteral     ArgumentSourceKind = "literal"
	ArgParameter   ArgumentSourceKind = "parameter"
	ArgEnvVar      ArgumentSourceKind = "env_var"
	ArgInterpolated ArgumentSourceKind = "interpolated"
	ArgUnknown     ArgumentSourceKind = "unknown"
)

// ArgumentSource is the taint-origin lattice (spec §3.3). IsTainted is the
// sole taint predicate: every variant except Literal is tainted, including
// Unknown — an argument whose provenance could not be determined is treated
// as untrusted, never as safe-by-default.
type ArgumentSource struct {
	Kind ArgumentSourceKind
	// Name carries the parameter/env-var name for Parameter/EnvVar kinds,
	// empty otherwise.
	Name string
	// Raw carries the literal text for Literal kind, and the original
	// unparsed expression text for Interpolated/Unknown kinds (used in
	// Finding evidence snippets).
	Raw string
}

// IsTainted implements the taint predicate: !(variant is Literal).
func (a ArgumentSource) IsTainted() bool {
	return a.Kind != ArgLiteral
}

// NewLiteralArg builds a Literal-origin argument.
func NewLiteralArg(raw string) ArgumentSource {
	return ArgumentSource{Kind: ArgLiteral, Raw: raw}
}

// NewParameterArg builds a Parameter-origin argument (a function/tool
// parameter referenced by name).
func NewParameterArg(name string) ArgumentSource {
	return ArgumentSource{Kind: ArgParameter, Name: name}
}

// NewEnvVarArg builds an EnvVar-origin argument.
func NewEnvVarArg(name string) ArgumentSource {
	return ArgumentSource{Kind: ArgEnvVar, Name: name}
}

// NewInterpolatedArg builds an Interpolated-origin argument (string
// concatenation / f-string / template literal mixing several sub-sources).
func NewInterpolatedArg(raw string) ArgumentSource {
	return ArgumentSource{Kind: ArgInterpolated, Raw: raw}
}

// NewUnknownArg builds an Unknown-origin argument — the extractor could not
// classify the expression. Treated as tainted.
func NewUnknownArg(raw string) ArgumentSource {
	return ArgumentSource{Kind: ArgUnknown, Raw: raw}
}
