package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agentshield/agentshield-cli/internal/logging"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestMCPAdapter_DetectsViaPackageJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "package.json"), `{"name":"my-server","dependencies":{"@modelcontextprotocol/sdk":"^1.0.0"}}`)

	a := MCPAdapter{}
	if !a.Detect(dir) {
		t.Fatalf("expected MCP detection via package.json dependency")
	}
}

func TestMCPAdapter_Load_ParsesPythonToolFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "pyproject.toml"), `[project]
dependencies = ["mcp"]
`)
	writeFile(t, filepath.Join(dir, "server.py"), `
import subprocess

def run(cmd):
    subprocess.run(cmd, shell=True)
`)

	a := MCPAdapter{}
	if !a.Detect(dir) {
		t.Fatalf("expected detection")
	}
	targets, err := a.Load(dir, &logging.Logger{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(targets) != 1 {
		t.Fatalf("expected 1 target, got %d", len(targets))
	}
	if len(targets[0].Execution.CommandInvocations) != 1 {
		t.Fatalf("expected 1 command invocation, got %d", len(targets[0].Execution.CommandInvocations))
	}
}

func TestOpenClawAdapter_DetectsViaSkillMD(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "SKILL.md"), `---
name: my-skill
description: does things
permissions:
  - network
---
# My Skill
`)
	a := OpenClawAdapter{}
	if !a.Detect(dir) {
		t.Fatalf("expected SKILL.md detection")
	}
	targets, err := a.Load(dir, &logging.Logger{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(targets) != 1 {
		t.Fatalf("expected 1 target, got %d", len(targets))
	}
	if len(targets[0].Tools) != 1 || targets[0].Tools[0].Name != "my-skill" {
		t.Fatalf("expected parsed skill tool, got %+v", targets[0].Tools)
	}
}

func TestAutoDetectAndLoad_NoAdapterMatches(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "README.md"), "nothing to see here")

	_, err := AutoDetectAndLoad(dir, &logging.Logger{})
	if err == nil {
		t.Fatalf("expected NoAdapterError")
	}
}

func TestIsIgnored(t *testing.T) {
	patterns := []string{"node_modules", "*.log"}
	if !isIgnored(filepath.Join("node_modules", "x.js"), patterns) {
		t.Fatalf("expected node_modules/x.js to be ignored")
	}
	if !isIgnored("debug.log", patterns) {
		t.Fatalf("expected *.log match")
	}
	if isIgnored("server.py", patterns) {
		t.Fatalf("did not expect server.py to be ignored")
	}
}
