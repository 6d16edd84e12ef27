// Package extractor turns one SourceFile's text into UIR execution facts.
// Every extractor runs a two-phase contract:
//
//  1. Parameter collection: scan the file for declared function/tool
//     parameter names (def/function signatures, argv bindings) so later
//     call-site scanning can recognize a bare identifier as Parameter-origin
//     rather than Unknown.
//  2. Fact extraction: scan call sites (subprocess/exec/network/file/
//     package-install calls) and classify each argument's ArgumentSource
//     per the priority rules in Classify.
//
// Extractors are pure functions of (path, content) — no I/O, no shared
// mutable state — so the engine may run them concurrently across files.
package extractor

import "github.com/agentshield/agentshield-cli/internal/uir"

// ParsedFile is everything one extractor run contributes to a ScanTarget's
// ExecutionSurface.
type ParsedFile struct {
	CommandInvocations []uir.CommandInvocation
	FileOperations     []uir.FileOperation
	NetworkRequests    []uir.NetworkRequest
	EnvAccesses        []uir.EnvAccess
	DynamicExec        []uir.DynamicExec
}

// Merge appends other's facts onto p.
func (p *ParsedFile) Merge(other ParsedFile) {
	p.CommandInvocations = append(p.CommandInvocations, other.CommandInvocations...)
	p.FileOperations = append(p.FileOperations, other.FileOperations...)
	p.NetworkRequests = append(p.NetworkRequests, other.NetworkRequests...)
	p.EnvAccesses = append(p.EnvAccesses, other.EnvAccesses...)
	p.DynamicExec = append(p.DynamicExec, other.DynamicExec...)
}

// Extractor is implemented once per supported language.
type Extractor interface {
	Language() uir.Language
	// ParseFile runs both contract phases over one file's content and
	// returns the facts it found. A parse failure on a malformed file is
	// reported as an error but never panics; the adapter logs it and
	// skips that file's facts, then continues with the remaining files.
	ParseFile(path, content string) (ParsedFile, error)
}

// ForLanguage returns the built-in extractor for lang, or nil if none is
// registered (the file is skipped with no facts).
func ForLanguage(lang uir.Language) Extractor {
	switch lang {
	case uir.LangPython:
		return pythonExtractor{}
	case uir.LangShell:
		return shellExtractor{}
	case uir.LangTypeScript, uir.LangJavaScript:
		return tsjsExtractor{}
	default:
		return nil
	}
}

// DetectLanguage maps a file extension to the Language tag an adapter
// should attach to a SourceFile.
func DetectLanguage(path string) uir.Language {
	switch ext(path) {
	case ".py":
		return uir.LangPython
	case ".sh", ".bash":
		return uir.LangShell
	case ".ts", ".tsx":
		return uir.LangTypeScript
	case ".js", ".jsx", ".mjs", ".cjs":
		return uir.LangJavaScript
	default:
		return uir.LangUnknown
	}
}

func ext(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			return path[i:]
		}
		if path[i] == '/' || path[i] == '\\' {
			break
		}
	}
	return ""
}
