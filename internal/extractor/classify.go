package extractor

import (
	"regexp"
	"strings"

	"github.com/agentshield/agentshield-cli/internal/uir"
)

var (
	quotedStringRe = regexp.MustCompile(`^(?:'(?:[^'\\]|\\.)*'|"(?:[^"\\]|\\.)*")$`)
	envAccessRe    = regexp.MustCompile(`(?:os\.environ(?:\.get)?|os\.getenv|process\.env)\s*(?:\[|\()\s*['"]?([A-Za-z_][A-Za-z0-9_]*)['"]?`)
	memberAccessRe = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)(?:\.[A-Za-z_][A-Za-z0-9_]*|\[[^\]]*\])*$`)
	interpRe       = regexp.MustCompile(`\+|%\s*\(|\{[A-Za-z_][A-Za-z0-9_.]*\}|\$\{|f['"]|%s|%d`)
)

// Classify applies the seven-step argument-source priority order (spec
// §4.3) to a raw expression string pulled from a call site:
//
//  1. An empty expression → Unknown.
//  2. A pure quoted string or number literal → Literal.
//  3. An expression containing concatenation, f-string, template-literal,
//     %-format, or `${…}` interpolation markers → Interpolated.
//  4. A backtick string with no interpolation markers → Literal.
//  5. An os.environ/os.getenv/process.env access → EnvVar, named after the
//     variable being read.
//  6. A bare identifier, optionally followed by member/subscript access
//     (foo.bar, foo[0]) stripped down to its head, matching a name in
//     params (a declared function or tool parameter) → Parameter.
//  7. Anything else (function calls, unparsed expressions, local
//     variables without dataflow) → Unknown, carrying the raw text for
//     evidence snippets — treated as tainted per the IsTainted contract.
func Classify(raw string, params map[string]bool) uir.ArgumentSource {
	expr := strings.TrimSpace(raw)

	if expr == "" {
		return uir.NewUnknownArg(expr)
	}

	if quotedStringRe.MatchString(expr) {
		return uir.NewLiteralArg(strings.Trim(expr, `'"`))
	}
	if isNumericLiteral(expr) {
		return uir.NewLiteralArg(expr)
	}

	isBacktick := len(expr) >= 2 && expr[0] == '`' && expr[len(expr)-1] == '`'

	if interpRe.MatchString(expr) || (isBacktick && strings.Contains(expr, "${")) {
		return uir.NewInterpolatedArg(expr)
	}
	if isBacktick {
		return uir.NewLiteralArg(strings.Trim(expr, "`"))
	}

	if m := envAccessRe.FindStringSubmatch(expr); m != nil {
		return uir.NewEnvVarArg(m[1])
	}

	if m := memberAccessRe.FindStringSubmatch(expr); m != nil && params[m[1]] {
		return uir.NewParameterArg(m[1])
	}

	return uir.NewUnknownArg(expr)
}

func isNumericLiteral(s string) bool {
	if s == "" {
		return false
	}
	seenDot := false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.' && !seenDot:
			seenDot = true
		case r == '-' && i == 0:
		default:
			return false
		}
	}
	return true
}

// CollectPythonParams finds every `def name(params...)` signature in
// content and returns the union of parameter names declared across all of
// them, including tool-decorated functions (MCP tools are ordinary Python
// functions annotated with a decorator).
func CollectPythonParams(content string) map[string]bool {
	params := map[string]bool{}
	defRe := regexp.MustCompile(`(?m)^\s*(?:async\s+)?def\s+\w+\s*\(([^)]*)\)`)
	for _, m := range defRe.FindAllStringSubmatch(content, -1) {
		for _, p := range strings.Split(m[1], ",") {
			p = strings.TrimSpace(p)
			if p == "" || p == "self" || p == "cls" {
				continue
			}
			if i := strings.IndexAny(p, ":="); i >= 0 {
				p = strings.TrimSpace(p[:i])
			}
			p = strings.TrimPrefix(p, "*")
			p = strings.TrimPrefix(p, "*")
			if p != "" {
				params[p] = true
			}
		}
	}
	return params
}

// CollectJSParams finds every `function name(params...)` and
// `(params...) => {` arrow signature and returns the union of parameter
// names.
func CollectJSParams(content string) map[string]bool {
	params := map[string]bool{}
	fnRe := regexp.MustCompile(`function\s*\w*\s*\(([^)]*)\)`)
	arrowRe := regexp.MustCompile(`\(([^)]*)\)\s*=>`)
	for _, re := range []*regexp.Regexp{fnRe, arrowRe} {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			for _, p := range strings.Split(m[1], ",") {
				p = strings.TrimSpace(p)
				if i := strings.IndexAny(p, ":="); i >= 0 {
					p = strings.TrimSpace(p[:i])
				}
				if p != "" {
					params[p] = true
				}
			}
		}
	}
	return params
}

// CollectShellParams returns the set of positional/named parameters a shell
// script declares: $1.."$9", and names bound via `name=$1`-style assignment
// is out of scope for a pure lexical pass, so only positional params are
// tracked; everything else is classified by Classify's other rules.
func CollectShellParams(content string) map[string]bool {
	params := map[string]bool{}
	for i := 1; i <= 9; i++ {
		params[string(rune('0'+i))] = true
	}
	return params
}
