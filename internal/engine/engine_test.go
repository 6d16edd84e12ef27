package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agentshield/agentshield-cli/internal/policy"
	"github.com/agentshield/agentshield-cli/internal/uir"
)

func writeFixture(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestRun_SafeCalculator_NoFindings(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, map[string]string{
		"pyproject.toml": "[project]\ndependencies = [\"mcp\"]\n",
		"server.py": `
def add(a, b):
    return a + b
`,
	})

	res, err := Run(dir, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Findings) != 0 {
		t.Fatalf("expected no findings for a safe calculator, got %d: %+v", len(res.Findings), res.Findings)
	}
	if !res.Verdict.Pass {
		t.Fatalf("expected passing verdict")
	}
}

func TestRun_VulnCommandInjection_CriticalFinding(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, map[string]string{
		"pyproject.toml": "[project]\ndependencies = [\"mcp\"]\n",
		"server.py": `
import subprocess

def run_shell(user_command):
    subprocess.run(user_command, shell=True)
`,
	})

	res, err := Run(dir, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	found := false
	for _, f := range res.Findings {
		if f.RuleID == "SHIELD-001" && f.Severity == uir.SeverityCritical {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a SHIELD-001 critical finding, got %+v", res.Findings)
	}
	if res.Verdict.Pass {
		t.Fatalf("expected failing verdict with default fail_on=high policy")
	}
}

func TestRun_PolicyFailOnCritical_PassesWithOnlyHighFindings(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, map[string]string{
		"pyproject.toml": "[project]\ndependencies = [\"mcp\"]\n",
		"server.py": `
def fetch(target_url):
    import requests
    requests.get(target_url)
`,
	})

	res, err := Run(dir, Options{Policy: policy.Policy{FailOn: uir.SeverityCritical}})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Verdict.Pass {
		t.Fatalf("expected pass when fail_on=critical and only High findings exist: %+v", res.Findings)
	}
}

func TestRun_IgnoreRules_EmptiesFindings(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, map[string]string{
		"pyproject.toml": "[project]\ndependencies = [\"mcp\"]\n",
		"server.py": `
def fetch(target_url):
    import requests
    requests.get(target_url)
`,
	})

	res, err := Run(dir, Options{Policy: policy.Policy{FailOn: uir.SeverityHigh, IgnoreRules: []string{"SHIELD-003"}}})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Findings) != 0 {
		t.Fatalf("expected SHIELD-003 to be ignored, got %+v", res.Findings)
	}
	if !res.Verdict.Pass {
		t.Fatalf("expected pass after ignoring the only finding")
	}
}

func TestRun_NoAdapterMatches_ReturnsError(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, map[string]string{"README.md": "nothing here"})

	if _, err := Run(dir, Options{}); err == nil {
		t.Fatalf("expected error when no adapter recognizes the directory")
	}
}

func TestRun_CrossFileCredentialAndNetwork_NoFinding(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, map[string]string{
		"pyproject.toml": "[project]\ndependencies = [\"mcp\"]\n",
		"secrets.py":     `token = os.environ.get("API_KEY")`,
		"client.py": `
import requests
requests.post("https://example.com/collect", data=payload)
`,
	})

	res, err := Run(dir, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, f := range res.Findings {
		if f.RuleID == "SHIELD-002" {
			t.Fatalf("expected no cross-file SHIELD-002 correlation, got %+v", f)
		}
	}
}

func TestRun_InstallAtRuntime_HighFinding(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, map[string]string{
		"pyproject.toml": "[project]\ndependencies = [\"mcp\"]\n",
		"setup.sh":       "pip install some-extra-package\n",
	})

	res, err := Run(dir, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	found := false
	for _, f := range res.Findings {
		if f.RuleID == "SHIELD-005" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a SHIELD-005 finding, got %+v", res.Findings)
	}
}
