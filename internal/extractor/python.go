package extractor

import (
	"bufio"
	"regexp"
	"strings"

	"github.com/agentshield/agentshield-cli/internal/uir"
)

type pythonExtractor struct{}

func (pythonExtractor) Language() uir.Language { return uir.LangPython }

var (
	pyCommandRe = regexp.MustCompile(`\b(subprocess\.(?:run|call|check_call|check_output|Popen)|os\.system|os\.popen)\s*\(\s*(.+?)\s*\)\s*$`)
	pyNetworkRe = regexp.MustCompile(`\b(requests\.(?:get|post|put|delete|head|patch)|urllib\.request\.urlopen|httpx\.(?:get|post|put|delete))\s*\(\s*(.+?)\s*[,)]`)
	pyFileRe    = regexp.MustCompile(`\bopen\s*\(\s*([^,)]+)(?:,\s*["']?([rwaxb+]+)["']?)?`)
	pyInstallRe = regexp.MustCompile(`\b(pip\s+install|pip3\s+install|python -m pip install)\s+([^\s"')]+)`)
	pyDynRe     = regexp.MustCompile(`\b(eval|exec|compile|__import__)\s*\(\s*(.+?)\s*\)\s*$`)
	pyCredRe    = regexp.MustCompile(`(?:os\.environ(?:\.get)?|os\.getenv)\s*(?:\[|\()\s*['"]([A-Za-z_][A-Za-z0-9_]*)['"]`)
	pySensKey   = regexp.MustCompile(`(?i)(api[_-]?key|secret|token|password|credential)`)
)

func (pythonExtractor) ParseFile(path, content string) (ParsedFile, error) {
	var out ParsedFile
	params := CollectPythonParams(content)

	sc := bufio.NewScanner(strings.NewReader(content))
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		loc := uir.SourceLocation{File: path, Line: line, Column: 1}

		if m := pyCommandRe.FindStringSubmatch(text); m != nil {
			argExpr := firstArg(m[2])
			out.CommandInvocations = append(out.CommandInvocations, uir.CommandInvocation{
				Location: loc,
				Callee:   m[1],
				Command:  Classify(argExpr, params),
			})
		}

		if m := pyNetworkRe.FindStringSubmatch(text); m != nil {
			method := methodForCallee(m[1])
			out.NetworkRequests = append(out.NetworkRequests, uir.NetworkRequest{
				Location:  loc,
				Callee:    m[1],
				Method:    method,
				URL:       Classify(m[2], params),
				SendsData: sendsDataHeuristic(method, text),
			})
		}

		if m := pyFileRe.FindStringSubmatch(text); m != nil {
			mode := "read"
			if strings.ContainsAny(m[2], "wax") {
				mode = "write"
			}
			out.FileOperations = append(out.FileOperations, uir.FileOperation{
				Location: loc,
				Callee:   "open",
				Path:     Classify(m[1], params),
				Mode:     mode,
			})
		}

		if m := pyInstallRe.FindStringSubmatch(text); m != nil {
			out.CommandInvocations = append(out.CommandInvocations, uir.CommandInvocation{
				Location: loc,
				Callee:   "package_install",
				Command:  Classify(m[2], params),
			})
		}

		if m := pyDynRe.FindStringSubmatch(text); m != nil {
			out.DynamicExec = append(out.DynamicExec, uir.DynamicExec{
				Location: loc,
				Function: m[1],
				CodeArg:  Classify(firstArg(m[2]), params),
			})
		}

		if m := pyCredRe.FindStringSubmatch(text); m != nil {
			out.EnvAccesses = append(out.EnvAccesses, uir.EnvAccess{
				Location:    loc,
				VarName:     m[1],
				IsSensitive: pySensKey.MatchString(m[1]),
			})
		}
	}
	return out, nil
}

// firstArg returns the first top-level comma-separated argument of a call's
// argument-list text, respecting nested parens/brackets/quotes.
func firstArg(argList string) string {
	depth := 0
	var quote byte
	for i := 0; i < len(argList); i++ {
		c := argList[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				return strings.TrimSpace(argList[:i])
			}
		}
	}
	return strings.TrimSpace(argList)
}
