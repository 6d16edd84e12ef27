package extractor

import (
	"bufio"
	"regexp"
	"strings"

	"github.com/agentshield/agentshield-cli/internal/uir"
)

// tsjsExtractor handles both TypeScript and JavaScript with a single
// pattern table: the call-site shapes this tool cares about (child_process,
// fetch, fs) are identical across the two grammars, and AgentShield has no
// type-checker to exploit a TS-specific signal. Lacking a real ECMAScript
// parser in the dependency set, call sites are found with scanCallSites, a
// lightweight recursive-descent scan that walks raw bytes tracking
// paren/quote depth rather than matching one regex per source line — it
// follows a call's argument list across line breaks and through nested
// callback calls, and since it never assumes a line boundary means
// anything, JSX/TSX markup around a call site is simply more text it
// walks past rather than a shape it has to parse. Environment-variable
// access and install-string detection stay line-oriented regexes; those
// patterns don't nest and rarely span lines.
type tsjsExtractor struct{}

func (tsjsExtractor) Language() uir.Language { return uir.LangJavaScript }

var (
	jsInstallRe = regexp.MustCompile(`\b(npm|yarn|pnpm)\s+(?:add|install)\s+(\S+)`)
	jsEnvRe     = regexp.MustCompile(`process\.env(?:\.([A-Za-z_][A-Za-z0-9_]*)|\[['"]([A-Za-z_][A-Za-z0-9_]*)['"]\])`)
	jsSensKey   = regexp.MustCompile(`(?i)(api[_-]?key|secret|token|password|credential)`)

	jsExecNames = map[string]bool{
		"child_process.exec": true, "child_process.execSync": true,
		"child_process.spawn": true, "child_process.spawnSync": true,
		"exec": true, "execSync": true,
	}
	jsFetchNames = map[string]bool{
		"fetch": true, "axios.get": true, "axios.post": true,
		"axios.put": true, "axios.delete": true,
	}
	jsFileNames = map[string]bool{
		"fs.readFile": true, "fs.writeFile": true, "fs.readFileSync": true,
		"fs.writeFileSync": true, "fs.unlink": true, "fs.unlinkSync": true,
		"fs.appendFile": true,
	}
	jsDynNames = map[string]bool{
		"eval": true, "Function": true, "vm.runInContext": true,
		"vm.runInNewContext": true, "vm.runInThisContext": true,
	}
)

func (tsjsExtractor) ParseFile(path, content string) (ParsedFile, error) {
	var out ParsedFile
	params := CollectJSParams(content)

	for _, site := range scanCallSites(path, content, jsExecNames, jsFetchNames, jsFileNames, jsDynNames) {
		arg := firstArg(site.Args)
		switch {
		case jsExecNames[site.Callee]:
			out.CommandInvocations = append(out.CommandInvocations, uir.CommandInvocation{
				Location: site.Loc,
				Callee:   site.Callee,
				Command:  Classify(arg, params),
			})
		case jsFetchNames[site.Callee]:
			method := methodForCallee(site.Callee)
			out.NetworkRequests = append(out.NetworkRequests, uir.NetworkRequest{
				Location:  site.Loc,
				Callee:    site.Callee,
				Method:    method,
				URL:       Classify(arg, params),
				SendsData: sendsDataHeuristic(method, site.Args),
			})
		case jsFileNames[site.Callee]:
			mode := "read"
			lc := strings.ToLower(site.Callee)
			switch {
			case strings.Contains(lc, "write") || strings.Contains(lc, "append"):
				mode = "write"
			case strings.Contains(lc, "unlink"):
				mode = "delete"
			}
			out.FileOperations = append(out.FileOperations, uir.FileOperation{
				Location: site.Loc,
				Callee:   site.Callee,
				Path:     Classify(arg, params),
				Mode:     mode,
			})
		case jsDynNames[site.Callee]:
			out.DynamicExec = append(out.DynamicExec, uir.DynamicExec{
				Location: site.Loc,
				Function: site.Callee,
				CodeArg:  Classify(arg, params),
			})
		}
	}

	sc := bufio.NewScanner(strings.NewReader(content))
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		loc := uir.SourceLocation{File: path, Line: line, Column: 1}

		if m := jsInstallRe.FindStringSubmatch(text); m != nil {
			out.CommandInvocations = append(out.CommandInvocations, uir.CommandInvocation{
				Location: loc,
				Callee:   "package_install",
				Command:  Classify(m[2], params),
			})
		}

		if m := jsEnvRe.FindStringSubmatch(text); m != nil {
			name := m[1]
			if name == "" {
				name = m[2]
			}
			out.EnvAccesses = append(out.EnvAccesses, uir.EnvAccess{
				Location:    loc,
				VarName:     name,
				IsSensitive: jsSensKey.MatchString(name),
			})
		}
	}
	return out, nil
}

// callSite is one textual call-expression occurrence located by
// scanCallSites: a recognized callee name immediately followed by a
// balanced parenthesized argument list, which may span multiple lines and
// nest further call expressions.
type callSite struct {
	Callee string
	Args   string
	Loc    uir.SourceLocation
}

// scanCallSites walks content once, tracking line/column and paren/quote
// depth, and reports every occurrence of a name from any of nameSets
// immediately followed by "(". The matching close paren is found by depth
// counting so a call's argument list can itself contain further nested
// calls or span several lines without breaking extraction.
func scanCallSites(path, content string, nameSets ...map[string]bool) []callSite {
	wanted := map[string]bool{}
	for _, set := range nameSets {
		for name := range set {
			wanted[name] = true
		}
	}

	var sites []callSite
	line, col := 1, 1
	advance := func(c byte) {
		if c == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}

	n := len(content)
	i := 0
	for i < n {
		identStart := i
		for i < n && isJSIdentByte(content[i]) {
			advance(content[i])
			i++
		}
		if i == identStart {
			if i < n {
				advance(content[i])
				i++
			}
			continue
		}
		name := content[identStart:i]
		if !wanted[name] || i >= n || content[i] != '(' {
			continue
		}

		calleeLine, calleeCol := line, col-len(name)
		advance(content[i])
		i++
		argsStart := i
		depth := 1
		var quote byte
		for i < n && depth > 0 {
			c := content[i]
			if quote != 0 {
				if c == quote && content[i-1] != '\\' {
					quote = 0
				}
				advance(c)
				i++
				continue
			}
			switch c {
			case '\'', '"', '`':
				quote = c
			case '(':
				depth++
			case ')':
				depth--
			}
			advance(c)
			i++
		}
		argsEnd := i - 1
		if argsEnd < argsStart {
			argsEnd = argsStart
		}
		sites = append(sites, callSite{
			Callee: name,
			Args:   content[argsStart:argsEnd],
			Loc:    uir.SourceLocation{File: path, Line: calleeLine, Column: calleeCol},
		})
	}
	return sites
}

func isJSIdentByte(c byte) bool {
	return c == '.' || c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
