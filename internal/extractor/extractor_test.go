package extractor

import (
	"testing"

	"github.com/agentshield/agentshield-cli/internal/uir"
)

func TestPythonExtractor_CommandInjection_TaintedArgument(t *testing.T) {
	src := `
import subprocess

def run_tool(user_input):
    subprocess.run(user_input, shell=True)
`
	out, err := pythonExtractor{}.ParseFile("tool.py", src)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(out.CommandInvocations) != 1 {
		t.Fatalf("expected 1 command invocation, got %d", len(out.CommandInvocations))
	}
	ci := out.CommandInvocations[0]
	if ci.Command.Kind != uir.ArgParameter || ci.Command.Name != "user_input" {
		t.Fatalf("expected Parameter-origin arg named user_input, got %+v", ci.Command)
	}
	if !ci.Command.IsTainted() {
		t.Fatalf("parameter-origin command should be tainted")
	}
}

func TestPythonExtractor_LiteralCommand_NotTainted(t *testing.T) {
	src := `subprocess.run("ls -la", shell=True)`
	out, _ := pythonExtractor{}.ParseFile("tool.py", src)
	if len(out.CommandInvocations) != 1 {
		t.Fatalf("expected 1 command invocation, got %d", len(out.CommandInvocations))
	}
	if out.CommandInvocations[0].Command.IsTainted() {
		t.Fatalf("literal command should not be tainted")
	}
}

func TestPythonExtractor_EnvAccess(t *testing.T) {
	src := `token = os.environ.get("API_KEY")`
	out, _ := pythonExtractor{}.ParseFile("tool.py", src)
	if len(out.EnvAccesses) != 1 {
		t.Fatalf("expected 1 env access, got %d", len(out.EnvAccesses))
	}
	if out.EnvAccesses[0].VarName != "API_KEY" {
		t.Fatalf("expected API_KEY, got %q", out.EnvAccesses[0].VarName)
	}
	if !out.EnvAccesses[0].IsSensitive {
		t.Fatalf("expected API_KEY to be flagged sensitive")
	}
}

func TestPythonExtractor_EnvAccess_NonSensitiveStillRecorded(t *testing.T) {
	src := `region = os.environ.get("AWS_REGION")`
	out, _ := pythonExtractor{}.ParseFile("tool.py", src)
	if len(out.EnvAccesses) != 1 {
		t.Fatalf("expected 1 env access, got %d", len(out.EnvAccesses))
	}
	if out.EnvAccesses[0].IsSensitive {
		t.Fatalf("AWS_REGION should not be flagged sensitive")
	}
}

func TestPythonExtractor_DynamicExec(t *testing.T) {
	src := `eval(user_payload)`
	out, _ := pythonExtractor{}.ParseFile("tool.py", src)
	if len(out.DynamicExec) != 1 {
		t.Fatalf("expected 1 dynamic exec, got %d", len(out.DynamicExec))
	}
	if out.DynamicExec[0].Function != "eval" {
		t.Fatalf("expected eval, got %q", out.DynamicExec[0].Function)
	}
}

func TestShellExtractor_CurlPipeToShell(t *testing.T) {
	src := `curl -sSL https://example.com/install.sh | bash`
	out, _ := shellExtractor{}.ParseFile("install.sh", src)
	if len(out.NetworkRequests) != 1 {
		t.Fatalf("expected 1 network request, got %d", len(out.NetworkRequests))
	}
	if len(out.CommandInvocations) != 1 {
		t.Fatalf("expected 1 command invocation for the pipe-to-shell, got %d", len(out.CommandInvocations))
	}
}

func TestJSExtractor_ExecWithEnvInterpolation(t *testing.T) {
	src := "child_process.exec(`rm -rf ${process.env.TARGET_DIR}`)"
	out, _ := tsjsExtractor{}.ParseFile("tool.js", src)
	if len(out.CommandInvocations) != 1 {
		t.Fatalf("expected 1 command invocation, got %d", len(out.CommandInvocations))
	}
	if !out.CommandInvocations[0].Command.IsTainted() {
		t.Fatalf("interpolated command should be tainted")
	}
}

func TestJSExtractor_MultiLineCallWithNestedCallback(t *testing.T) {
	src := `function send(endpointUrl) {
  fetch(
    endpointUrl,
    { method: "POST", body: JSON.stringify({ ok: true }) }
  )
}`
	out, _ := tsjsExtractor{}.ParseFile("tool.ts", src)
	if len(out.NetworkRequests) != 1 {
		t.Fatalf("expected 1 network request spanning multiple lines, got %d", len(out.NetworkRequests))
	}
	req := out.NetworkRequests[0]
	if !req.SendsData {
		t.Fatalf("expected a POST-method fetch to be flagged SendsData")
	}
	if req.URL.Kind != uir.ArgParameter {
		t.Fatalf("expected Parameter-origin URL, got %+v", req.URL)
	}
}

func TestJSExtractor_DynamicExec(t *testing.T) {
	src := `eval(userScript)`
	out, _ := tsjsExtractor{}.ParseFile("tool.js", src)
	if len(out.DynamicExec) != 1 {
		t.Fatalf("expected 1 dynamic exec, got %d", len(out.DynamicExec))
	}
}

func TestDetectLanguage(t *testing.T) {
	cases := map[string]uir.Language{
		"a/b.py": uir.LangPython, "run.sh": uir.LangShell,
		"index.ts": uir.LangTypeScript, "index.js": uir.LangJavaScript,
		"README.md": uir.LangUnknown,
	}
	for path, want := range cases {
		if got := DetectLanguage(path); got != want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", path, got, want)
		}
	}
}
