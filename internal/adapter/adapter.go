// Package adapter implements spec §4.1: per-framework detection and
// loading of ScanTargets from a directory tree. Adapters are the only
// package that touches the filesystem on the ingestion side — everything
// downstream (extractor, detector, policy) operates purely on the UIR.
//
// Grounded on internal/scanner.Scan's filepath.Walk + dedupe-by-key shape,
// generalized from "find Hugging Face model IDs" to "detect a packaging
// convention, then walk and load its source files".
package adapter

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentshield/agentshield-cli/internal/apperr"
	"github.com/agentshield/agentshield-cli/internal/dependency"
	"github.com/agentshield/agentshield-cli/internal/extractor"
	"github.com/agentshield/agentshield-cli/internal/logging"
	"github.com/agentshield/agentshield-cli/internal/uir"
)

// maxFileSize is the 1 MiB cap on any single source file an adapter will
// read; larger files are skipped and logged, never truncated.
const maxFileSize = 1 << 20

// Adapter recognizes one agent-extension packaging convention.
type Adapter interface {
	// Detect reports whether root looks like this framework's package
	// layout (e.g. a manifest file with the right shape).
	Detect(root string) bool
	// Load walks root and returns every ScanTarget this adapter
	// recognizes under it. A target-local failure (one unreadable file)
	// is logged and skipped, not fatal to Load as a whole.
	Load(root string, log *logging.Logger) ([]uir.ScanTarget, error)
}

// Builtin returns every adapter AgentShield ships.
func Builtin() []Adapter {
	return []Adapter{MCPAdapter{}, OpenClawAdapter{}}
}

// AutoDetectAndLoad runs every adapter's Detect against root, Loads every
// adapter that matched, and unions their ScanTargets. It returns
// apperr.NoAdapterError only when the unioned result is empty — a partial
// failure in one adapter or one file never aborts the scan as long as some
// target was produced.
func AutoDetectAndLoad(root string, log *logging.Logger) ([]uir.ScanTarget, error) {
	var targets []uir.ScanTarget
	for _, a := range Builtin() {
		if !a.Detect(root) {
			continue
		}
		loaded, err := a.Load(root, log)
		if err != nil {
			log.Logf(root, "adapter error: %v", err)
			continue
		}
		targets = append(targets, loaded...)
	}
	if len(targets) == 0 {
		return nil, &apperr.NoAdapterError{Root: root}
	}
	return targets, nil
}

// readCappedFile reads path's content, returning ok=false (and logging) if
// it exceeds maxFileSize or cannot be read.
func readCappedFile(path string, log *logging.Logger) (string, bool) {
	info, err := os.Stat(path)
	if err != nil {
		log.Logf(path, "stat failed: %v", err)
		return "", false
	}
	if info.Size() > maxFileSize {
		log.Logf(path, "skipped: exceeds 1 MiB cap (%d bytes)", info.Size())
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Logf(path, "read failed: %v", err)
		return "", false
	}
	return string(data), true
}

// newSourceFile builds a uir.SourceFile with Language, Size, and
// ContentHash all populated, so every adapter constructs a SourceFile the
// same way instead of each hand-rolling the struct literal (spec §3.1/§3.2).
func newSourceFile(path, content string) uir.SourceFile {
	sum := sha256.Sum256([]byte(content))
	return uir.SourceFile{
		Path:        path,
		Language:    extractor.DetectLanguage(path),
		Content:     content,
		Size:        int64(len(content)),
		ContentHash: hex.EncodeToString(sum[:]),
	}
}

// loadGitignore reads root/.gitignore (if present) into a simple prefix/
// glob matcher sufficient for honoring the common "directory or file name"
// entries agent-extension repos use (node_modules/, .venv/, dist/, *.log).
// Nested .gitignore files and negation patterns are out of scope.
func loadGitignore(root string) []string {
	data, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	var patterns []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, strings.TrimSuffix(line, "/"))
	}
	return patterns
}

func isIgnored(relPath string, patterns []string) bool {
	base := filepath.Base(relPath)
	for _, p := range patterns {
		if base == p || strings.HasPrefix(relPath, p+string(filepath.Separator)) {
			return true
		}
		if matched, _ := filepath.Match(p, base); matched {
			return true
		}
	}
	return false
}

// parseFile runs the appropriate extractor for path's language (by
// extension) and merges its facts into surface. Parse failures are logged
// and skipped, never fatal.
func parseFile(path, content string, surface *uir.ExecutionSurface, log *logging.Logger) {
	lang := extractor.DetectLanguage(path)
	ext := extractor.ForLanguage(lang)
	if ext == nil {
		return
	}
	parsed, err := ext.ParseFile(path, content)
	if err != nil {
		log.Logf(path, "parse error: %v", err)
		return
	}
	surface.CommandInvocations = append(surface.CommandInvocations, parsed.CommandInvocations...)
	surface.FileOperations = append(surface.FileOperations, parsed.FileOperations...)
	surface.NetworkRequests = append(surface.NetworkRequests, parsed.NetworkRequests...)
	surface.EnvAccesses = append(surface.EnvAccesses, parsed.EnvAccesses...)
	surface.DynamicExec = append(surface.DynamicExec, parsed.DynamicExec...)
}

// manifestFiles are the dependency-manifest and lockfile names Load
// collects verbatim (never fed to a language extractor) so
// internal/dependency can parse them.
var manifestFiles = map[string]bool{
	"requirements.txt":  true,
	"package.json":       true,
	"package-lock.json":  true,
	"poetry.lock":        true,
	"uv.lock":            true,
	"Pipfile.lock":       true,
}

func collectDependencySurface(manifests map[string]string) uir.DependencySurface {
	return dependency.Parse(manifests)
}
