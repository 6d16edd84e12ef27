// Package dependency parses the manifest and lockfiles an adapter finds
// alongside a ScanTarget into a uir.DependencySurface, and raises the
// DependencyIssues SHIELD-007 reports on.
//
// Grounded on internal/builder's AddDependencies (walking a BOM's
// dependency graph) and internal/metadata's declarative per-format field
// extraction, generalized from CycloneDX components to raw manifest text.
package dependency

import (
	"bufio"
	"strings"

	"github.com/agentshield/agentshield-cli/internal/uir"
	"github.com/tidwall/gjson"
)

// popularPackages seeds the typosquat heuristic: names one edit away from
// one of these are flagged IssuePossibleTyposquat. Intentionally small and
// local — this is a coarse heuristic, not an advisory-database lookup
// (spec's Non-goal on CVE/advisory lookups does not apply to it).
var popularPackages = []string{
	"requests", "numpy", "pandas", "flask", "django", "urllib3", "boto3",
	"pyyaml", "click", "pytest",
	"express", "lodash", "react", "axios", "chalk", "commander", "debug",
	"moment", "webpack", "typescript",
}

// Parse inspects files for known manifest/lockfile names and builds a
// uir.DependencySurface. files maps the path of each manifest/lockfile an
// adapter collected to that file's content; source files are not passed in.
func Parse(files map[string]string) uir.DependencySurface {
	var surface uir.DependencySurface

	for path, content := range files {
		name := baseName(path)
		switch name {
		case "requirements.txt":
			surface.Dependencies = append(surface.Dependencies, parseRequirementsTxt(content, path)...)
		case "package.json":
			surface.Dependencies = append(surface.Dependencies, parsePackageJSON(content, path)...)
		case "poetry.lock", "uv.lock", "Pipfile.lock", "package-lock.json":
			surface.Lockfile.Present = true
			surface.Lockfile.Format = name
		}
	}

	if !surface.Lockfile.Present && len(surface.Dependencies) > 0 {
		surface.Issues = append(surface.Issues, uir.DependencyIssue{
			Kind:   uir.IssueNoLockfile,
			Detail: "no lockfile found alongside a dependency manifest",
		})
	}

	allPinned, allHashed := true, true
	for _, d := range surface.Dependencies {
		if !d.Pinned {
			allPinned = false
			surface.Issues = append(surface.Issues, uir.DependencyIssue{
				Kind:       uir.IssueUnpinned,
				Dependency: d.Name,
				Detail:     "no exact version pin in " + d.Source,
			})
		}
		if !d.Hashed {
			allHashed = false
			surface.Issues = append(surface.Issues, uir.DependencyIssue{
				Kind:       uir.IssueNoHash,
				Dependency: d.Name,
				Detail:     "no integrity hash recorded for " + d.Name,
			})
		}
		if squat, of := possibleTyposquat(d.Name); squat {
			surface.Issues = append(surface.Issues, uir.DependencyIssue{
				Kind:       uir.IssuePossibleTyposquat,
				Dependency: d.Name,
				Detail:     "one edit distance from popular package " + of,
			})
		}
	}
	surface.Lockfile.AllPinned = allPinned
	surface.Lockfile.AllHashed = allHashed

	return surface
}

func baseName(path string) string {
	if i := strings.LastIndexAny(path, "/\\"); i >= 0 {
		return path[i+1:]
	}
	return path
}

func parseRequirementsTxt(content, source string) []uir.Dependency {
	var deps []uir.Dependency
	sc := bufio.NewScanner(strings.NewReader(content))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		name, version, pinned := splitRequirement(line)
		if name == "" {
			continue
		}
		deps = append(deps, uir.Dependency{
			Name:    name,
			Version: version,
			Pinned:  pinned,
			// requirements.txt never carries an inline hash unless
			// --hash is present; treat bare hashes as the only signal.
			Hashed: strings.Contains(line, "--hash="),
			Source: source,
		})
	}
	return deps
}

func splitRequirement(line string) (name, version string, pinned bool) {
	// Strip environment markers and inline comments.
	if i := strings.IndexAny(line, ";#"); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	for _, op := range []string{"==", ">=", "<=", "~=", "!=", ">", "<"} {
		if idx := strings.Index(line, op); idx >= 0 {
			name = strings.TrimSpace(line[:idx])
			version = strings.TrimSpace(line[idx+len(op):])
			pinned = op == "=="
			return
		}
	}
	return strings.TrimSpace(line), "", false
}

// parsePackageJSON reads the "dependencies"/"devDependencies" objects out
// of a package.json document with gjson rather than a hand-rolled brace
// scan — both blocks are a flat string map, which ForEach walks directly
// without us tracking nesting depth ourselves.
func parsePackageJSON(content, source string) []uir.Dependency {
	var deps []uir.Dependency
	for _, block := range []string{"dependencies", "devDependencies"} {
		gjson.Get(content, block).ForEach(func(name, version gjson.Result) bool {
			n := name.String()
			v := version.String()
			if n == "" {
				return true
			}
			pinned := v != "" && !strings.ContainsAny(v, "^~*x")
			deps = append(deps, uir.Dependency{
				Name: n, Version: v, Pinned: pinned, Source: source,
			})
			return true
		})
	}
	return deps
}

// possibleTyposquat reports whether name is exactly one Levenshtein edit
// away from a popular package name (and isn't itself that package).
func possibleTyposquat(name string) (bool, string) {
	for _, popular := range popularPackages {
		if name == popular {
			return false, ""
		}
		if levenshtein1(name, popular) {
			return true, popular
		}
	}
	return false, ""
}

// levenshtein1 reports whether a and b are within edit distance 1, without
// computing the full distance matrix.
func levenshtein1(a, b string) bool {
	la, lb := len(a), len(b)
	if la == lb {
		diff := 0
		for i := 0; i < la; i++ {
			if a[i] != b[i] {
				diff++
				if diff > 1 {
					return false
				}
			}
		}
		return diff == 1
	}
	if abs(la-lb) != 1 {
		return false
	}
	longer, shorter := a, b
	if lb > la {
		longer, shorter = b, a
	}
	i, j, skipped := 0, 0, false
	for i < len(longer) && j < len(shorter) {
		if longer[i] == shorter[j] {
			i++
			j++
			continue
		}
		if skipped {
			return false
		}
		skipped = true
		i++
	}
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
