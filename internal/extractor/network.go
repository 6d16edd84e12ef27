package extractor

import "strings"

// methodForCallee maps a networking call's callee name to an HTTP method,
// per the verb the function name itself encodes. Returns "" when the
// callee doesn't encode a method (a bare urlopen/fetch with no verb
// suffix).
func methodForCallee(callee string) string {
	lc := strings.ToLower(callee)
	switch {
	case strings.HasSuffix(lc, "post"):
		return "POST"
	case strings.HasSuffix(lc, "put"):
		return "PUT"
	case strings.HasSuffix(lc, "patch"):
		return "PATCH"
	case strings.HasSuffix(lc, "delete"):
		return "DELETE"
	case strings.HasSuffix(lc, "head"):
		return "HEAD"
	case strings.HasSuffix(lc, "get"):
		return "GET"
	default:
		return ""
	}
}

// sendsDataHeuristic reports whether a network call site ships a request
// body: either its method customarily carries one, or the call site
// spells out a data/json/body keyword argument or a curl/wget data flag.
func sendsDataHeuristic(method, text string) bool {
	switch method {
	case "POST", "PUT", "PATCH":
		return true
	}
	lc := strings.ToLower(text)
	for _, marker := range []string{
		"data=", "json=", "body=", "data:", "json:", "body:",
		"-d ", "-d=", "--data", "--post-data", "-x post", "-xpost",
	} {
		if strings.Contains(lc, marker) {
			return true
		}
	}
	return false
}
