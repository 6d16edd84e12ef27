package detector

import (
	"testing"

	"github.com/agentshield/agentshield-cli/internal/uir"
)

func TestCommandInjectionDetector_FiresOnTaintedCommand(t *testing.T) {
	target := &uir.ScanTarget{
		Name: "t",
		Execution: uir.ExecutionSurface{
			CommandInvocations: []uir.CommandInvocation{
				{Command: uir.NewParameterArg("user_cmd")},
			},
		},
	}
	findings := CommandInjectionDetector{}.Run(target)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	if findings[0].Severity != uir.SeverityCritical || findings[0].Confidence != uir.ConfidenceHigh {
		t.Fatalf("unexpected severity/confidence: %+v", findings[0])
	}
}

func TestCommandInjectionDetector_LiteralWithShellMetacharacter_FlagsMedium(t *testing.T) {
	target := &uir.ScanTarget{
		Execution: uir.ExecutionSurface{
			CommandInvocations: []uir.CommandInvocation{
				{Command: uir.NewLiteralArg("rm -rf $HOME; echo done")},
			},
		},
	}
	findings := CommandInjectionDetector{}.Run(target)
	if len(findings) != 1 || findings[0].Confidence != uir.ConfidenceMedium {
		t.Fatalf("expected 1 Medium-confidence finding, got %+v", findings)
	}
}

func TestCommandInjectionDetector_SafeOnLiteralCommand(t *testing.T) {
	target := &uir.ScanTarget{
		Execution: uir.ExecutionSurface{
			CommandInvocations: []uir.CommandInvocation{{Command: uir.NewLiteralArg("ls -la")}},
		},
	}
	if findings := (CommandInjectionDetector{}).Run(target); len(findings) != 0 {
		t.Fatalf("expected no findings for literal command, got %d", len(findings))
	}
}

func TestCredentialExfiltrationDetector_SameFileProximity(t *testing.T) {
	target := &uir.ScanTarget{
		Execution: uir.ExecutionSurface{
			EnvAccesses: []uir.EnvAccess{
				{Location: uir.SourceLocation{File: "a.py", Line: 10}, VarName: "API_KEY", IsSensitive: true},
			},
			NetworkRequests: []uir.NetworkRequest{
				{Location: uir.SourceLocation{File: "a.py", Line: 15}, URL: uir.NewLiteralArg("https://evil.example/collect"), SendsData: true},
			},
		},
	}
	findings := CredentialExfiltrationDetector{}.Run(target)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	if findings[0].Confidence != uir.ConfidenceHigh {
		t.Fatalf("expected High confidence within the proximity window, got %+v", findings[0])
	}
}

func TestCredentialExfiltrationDetector_RequiresSendsData(t *testing.T) {
	target := &uir.ScanTarget{
		Execution: uir.ExecutionSurface{
			EnvAccesses: []uir.EnvAccess{
				{Location: uir.SourceLocation{File: "a.py", Line: 10}, VarName: "API_KEY", IsSensitive: true},
			},
			NetworkRequests: []uir.NetworkRequest{
				{Location: uir.SourceLocation{File: "a.py", Line: 15}, URL: uir.NewLiteralArg("https://example.com/health")},
			},
		},
	}
	if findings := (CredentialExfiltrationDetector{}).Run(target); len(findings) != 0 {
		t.Fatalf("expected no finding when the network call never sends data, got %d", len(findings))
	}
}

func TestCredentialExfiltrationDetector_DoesNotCorrelateAcrossFiles(t *testing.T) {
	target := &uir.ScanTarget{
		Execution: uir.ExecutionSurface{
			EnvAccesses: []uir.EnvAccess{
				{Location: uir.SourceLocation{File: "a.py", Line: 10}, VarName: "API_KEY", IsSensitive: true},
			},
			NetworkRequests: []uir.NetworkRequest{
				{Location: uir.SourceLocation{File: "b.py", Line: 11}, URL: uir.NewLiteralArg("https://example.com"), SendsData: true},
			},
		},
	}
	if findings := (CredentialExfiltrationDetector{}).Run(target); len(findings) != 0 {
		t.Fatalf("expected no cross-file correlation, got %d findings", len(findings))
	}
}

func TestCredentialExfiltrationDetector_OutsideProximityWindow_StillFiresMedium(t *testing.T) {
	target := &uir.ScanTarget{
		Execution: uir.ExecutionSurface{
			EnvAccesses: []uir.EnvAccess{
				{Location: uir.SourceLocation{File: "a.py", Line: 1}, VarName: "API_KEY", IsSensitive: true},
			},
			NetworkRequests: []uir.NetworkRequest{
				{Location: uir.SourceLocation{File: "a.py", Line: 100}, URL: uir.NewLiteralArg("https://example.com"), SendsData: true},
			},
		},
	}
	findings := (CredentialExfiltrationDetector{}).Run(target)
	if len(findings) != 1 || findings[0].Confidence != uir.ConfidenceMedium {
		t.Fatalf("expected 1 Medium-confidence finding beyond the proximity window, got %+v", findings)
	}
}

func TestSSRFDetector_FiresOnTaintedURL(t *testing.T) {
	target := &uir.ScanTarget{
		Execution: uir.ExecutionSurface{
			NetworkRequests: []uir.NetworkRequest{{URL: uir.NewParameterArg("target_url")}},
		},
	}
	if findings := (SSRFDetector{}).Run(target); len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
}

func TestArbitraryFileAccessDetector_FiresOnTaintedPath(t *testing.T) {
	target := &uir.ScanTarget{
		Execution: uir.ExecutionSurface{
			FileOperations: []uir.FileOperation{{Path: uir.NewParameterArg("filename"), Mode: "write"}},
		},
	}
	if findings := (ArbitraryFileAccessDetector{}).Run(target); len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
}

func TestRuntimePackageInstallDetector_FiresOnPackageInstallCommand(t *testing.T) {
	target := &uir.ScanTarget{
		Execution: uir.ExecutionSurface{
			CommandInvocations: []uir.CommandInvocation{
				{Callee: "package_install", Command: uir.NewLiteralArg("requests")},
			},
		},
	}
	findings := (RuntimePackageInstallDetector{}).Run(target)
	if len(findings) != 1 || findings[0].Confidence != uir.ConfidenceHigh {
		t.Fatalf("expected 1 High-confidence finding, got %+v", findings)
	}
}

func TestRuntimePackageInstallDetector_FiresOnDynamicPipInstall(t *testing.T) {
	target := &uir.ScanTarget{
		Execution: uir.ExecutionSurface{
			DynamicExec: []uir.DynamicExec{
				{Function: "exec", CodeArg: uir.NewLiteralArg("pip.main(['install', 'requests'])")},
			},
		},
	}
	findings := (RuntimePackageInstallDetector{}).Run(target)
	if len(findings) != 1 || findings[0].Confidence != uir.ConfidenceMedium {
		t.Fatalf("expected 1 Medium-confidence finding, got %+v", findings)
	}
}

func TestSelfModificationDetector_FiresOnFileDunderWrite(t *testing.T) {
	target := &uir.ScanTarget{
		Execution: uir.ExecutionSurface{
			FileOperations: []uir.FileOperation{{Path: uir.NewUnknownArg("__file__"), Mode: "write"}},
		},
	}
	findings := SelfModificationDetector{}.Run(target)
	if len(findings) != 1 || findings[0].Confidence != uir.ConfidenceHigh {
		t.Fatalf("expected 1 high-confidence finding, got %+v", findings)
	}
}

func TestSelfModificationDetector_IgnoresReads(t *testing.T) {
	target := &uir.ScanTarget{
		Execution: uir.ExecutionSurface{
			FileOperations: []uir.FileOperation{{Path: uir.NewUnknownArg("__file__"), Mode: "read"}},
		},
	}
	if findings := (SelfModificationDetector{}).Run(target); len(findings) != 0 {
		t.Fatalf("expected no findings for a read, got %d", len(findings))
	}
}

func TestDependencyHygieneDetector_SeverityByIssueKind(t *testing.T) {
	target := &uir.ScanTarget{
		Deps: uir.DependencySurface{
			Issues: []uir.DependencyIssue{
				{Kind: uir.IssuePossibleTyposquat, Dependency: "reqeusts"},
				{Kind: uir.IssueUnpinned, Dependency: "flask"},
			},
		},
	}
	findings := DependencyHygieneDetector{}.Run(target)
	if len(findings) != 2 {
		t.Fatalf("expected 2 findings, got %d", len(findings))
	}
	if findings[0].Severity != uir.SeverityHigh {
		t.Fatalf("expected typosquat to be High severity, got %q", findings[0].Severity)
	}
	if findings[1].Severity != uir.SeverityLow {
		t.Fatalf("expected unpinned to be Low severity, got %q", findings[1].Severity)
	}
}

func TestOverBroadPermissionsDetector_FlagsMissingProcessExec(t *testing.T) {
	target := &uir.ScanTarget{
		Tools: []uir.ToolSurface{{Name: "t1", Permissions: []uir.Permission{"network"}}},
		Execution: uir.ExecutionSurface{
			CommandInvocations: []uir.CommandInvocation{{Command: uir.NewLiteralArg("ls")}},
		},
	}
	findings := OverBroadPermissionsDetector{}.Run(target)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
}

func TestOverBroadPermissionsDetector_NoToolsNoFindings(t *testing.T) {
	target := &uir.ScanTarget{
		Execution: uir.ExecutionSurface{
			CommandInvocations: []uir.CommandInvocation{{Command: uir.NewLiteralArg("ls")}},
		},
	}
	if findings := (OverBroadPermissionsDetector{}).Run(target); len(findings) != 0 {
		t.Fatalf("expected no findings when no tools are declared, got %d", len(findings))
	}
}

func TestRegistry_RunConcatenatesAcrossDetectors(t *testing.T) {
	target := &uir.ScanTarget{
		Name: "multi",
		Execution: uir.ExecutionSurface{
			CommandInvocations: []uir.CommandInvocation{{Command: uir.NewParameterArg("cmd")}},
			NetworkRequests:    []uir.NetworkRequest{{URL: uir.NewParameterArg("url")}},
		},
	}
	reg := Builtin()
	findings := reg.Run(target)
	if len(findings) < 2 {
		t.Fatalf("expected findings from multiple detectors, got %d", len(findings))
	}
	for _, f := range findings {
		if f.TargetName != "multi" {
			t.Fatalf("expected TargetName to be backfilled, got %q", f.TargetName)
		}
	}
}

func TestRegistry_List_ReturnsAllEightRules(t *testing.T) {
	reg := Builtin()
	list := reg.List()
	if len(list) != 8 {
		t.Fatalf("expected 8 registered rules, got %d", len(list))
	}
}
