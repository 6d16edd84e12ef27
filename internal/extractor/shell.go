package extractor

import (
	"bufio"
	"regexp"
	"strings"

	"github.com/agentshield/agentshield-cli/internal/uir"
)

type shellExtractor struct{}

func (shellExtractor) Language() uir.Language { return uir.LangShell }

var (
	shCurlWgetRe = regexp.MustCompile(`\b(curl|wget)\s+(?:[-\w]+\s+)*(\S+)`)
	shPipeShRe   = regexp.MustCompile(`\b(curl|wget)\b.*\|\s*(sh|bash|zsh)\b`)
	shPipInstall = regexp.MustCompile(`\b(pip|pip3|npm|yarn)\s+install\s+([^\s&|;]+)`)
	shRmRe       = regexp.MustCompile(`\brm\s+(?:-\w+\s+)*(\S+)`)
	shEvalRe     = regexp.MustCompile(`\beval\s+(.+)$`)
	shSubstRe    = regexp.MustCompile(`\$\(([^)]+)\)|` + "`" + `([^` + "`" + `]+)` + "`")
	shEnvRe      = regexp.MustCompile(`\$\{?([A-Za-z_][A-Za-z0-9_]*)\}?`)
	shSensKey    = regexp.MustCompile(`(?i)(api[_-]?key|secret|token|password|credential)`)
)

func (shellExtractor) ParseFile(path, content string) (ParsedFile, error) {
	var out ParsedFile
	params := CollectShellParams(content)

	sc := bufio.NewScanner(strings.NewReader(content))
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		trimmed := strings.TrimSpace(text)
		if strings.HasPrefix(trimmed, "#") {
			continue
		}
		loc := uir.SourceLocation{File: path, Line: line, Column: 1}

		if m := shCurlWgetRe.FindStringSubmatch(text); m != nil {
			method := ""
			if strings.Contains(strings.ToLower(text), "post") {
				method = "POST"
			}
			out.NetworkRequests = append(out.NetworkRequests, uir.NetworkRequest{
				Location:  loc,
				Callee:    m[1],
				Method:    method,
				URL:       Classify(m[2], params),
				SendsData: sendsDataHeuristic(method, text),
			})
		}

		if m := shPipeShRe.FindStringSubmatch(text); m != nil {
			out.CommandInvocations = append(out.CommandInvocations, uir.CommandInvocation{
				Location: loc,
				Callee:   m[1] + " | " + m[2],
				Command:  Classify(text, params),
			})
		}

		if m := shPipInstall.FindStringSubmatch(text); m != nil {
			out.CommandInvocations = append(out.CommandInvocations, uir.CommandInvocation{
				Location: loc,
				Callee:   "package_install",
				Command:  Classify(m[2], params),
			})
		}

		if m := shRmRe.FindStringSubmatch(text); m != nil {
			out.FileOperations = append(out.FileOperations, uir.FileOperation{
				Location: loc,
				Callee:   "rm",
				Path:     Classify(m[1], params),
				Mode:     "delete",
			})
		}

		if m := shEvalRe.FindStringSubmatch(text); m != nil {
			out.DynamicExec = append(out.DynamicExec, uir.DynamicExec{
				Location: loc,
				Function: "eval",
				CodeArg:  Classify(m[1], params),
			})
		} else if shSubstRe.MatchString(text) && !strings.HasPrefix(trimmed, "echo") {
			for _, m := range shSubstRe.FindAllStringSubmatch(text, -1) {
				expr := m[1]
				if expr == "" {
					expr = m[2]
				}
				out.CommandInvocations = append(out.CommandInvocations, uir.CommandInvocation{
					Location: loc,
					Callee:   "command_substitution",
					Command:  Classify(expr, params),
				})
			}
		}

		for _, m := range shEnvRe.FindAllStringSubmatch(text, -1) {
			name := m[1]
			if params[name] {
				continue // positional parameter ($1.."$9"), not an env access
			}
			out.EnvAccesses = append(out.EnvAccesses, uir.EnvAccess{
				Location:    loc,
				VarName:     name,
				IsSensitive: shSensKey.MatchString(name),
			})
		}
	}
	return out, nil
}
