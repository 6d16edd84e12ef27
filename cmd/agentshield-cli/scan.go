package cmd

import (
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentshield/agentshield-cli/internal/apperr"
	"github.com/agentshield/agentshield-cli/internal/config"
	"github.com/agentshield/agentshield-cli/internal/engine"
	"github.com/agentshield/agentshield-cli/internal/logging"
	"github.com/agentshield/agentshield-cli/internal/report"
	"github.com/agentshield/agentshield-cli/internal/ui"
)

var (
	scanFormat   string
	scanOutput   string
	scanFailOn   string
	scanIgnore   []string
	scanLogLevel string
	scanQuiet    bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Scan a directory for agent extension security risks",
	Long:  "Scan a directory containing an MCP server or OpenClaw skill for command injection, credential exfiltration, SSRF, arbitrary file access, runtime package installs, and self-modification.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanFormat, "format", "f", "console", "Output format: console|json|sarif|html")
	scanCmd.Flags().StringVarP(&scanOutput, "output", "o", "", "Write the report to this file instead of stdout")
	scanCmd.Flags().StringVar(&scanFailOn, "fail-on", "", "Minimum severity that fails the scan: critical|high|medium|low|info")
	scanCmd.Flags().StringSliceVar(&scanIgnore, "ignore-rules", nil, "Rule IDs to drop from the report (repeatable, comma-separated)")
	scanCmd.Flags().StringVar(&scanLogLevel, "log-level", "standard", "Log level: quiet|standard|debug")
	scanCmd.Flags().BoolVarP(&scanQuiet, "quiet", "q", false, "Suppress the progress workflow; print only the report")

	viper.BindPFlag("scan.format", scanCmd.Flags().Lookup("format"))
	viper.BindPFlag("scan.output", scanCmd.Flags().Lookup("output"))
	viper.BindPFlag("scan.fail-on", scanCmd.Flags().Lookup("fail-on"))
	viper.BindPFlag("scan.ignore-rules", scanCmd.Flags().Lookup("ignore-rules"))
	viper.BindPFlag("scan.log-level", scanCmd.Flags().Lookup("log-level"))
}

func runScan(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	level := strings.ToLower(strings.TrimSpace(viper.GetString("scan.log-level")))
	switch level {
	case "", "standard":
		level = "standard"
	case "quiet", "debug":
	default:
		return apperr.Userf("invalid --log-level %q (expected quiet|standard|debug)", level)
	}
	log := &logging.Logger{}
	if level == "debug" {
		log.Writer = cmd.ErrOrStderr()
		log.PrefixText = "scan:"
		log.PrefixColor = ui.FgCyan
	}

	format := strings.ToLower(strings.TrimSpace(viper.GetString("scan.format")))
	if format == "" {
		format = "console"
	}
	renderer := report.ForFormat(format)
	if renderer == nil {
		return apperr.Userf("unknown --format %q (expected console|json|sarif|html)", format)
	}

	pol := config.Policy()

	quiet := scanQuiet || level == "quiet"
	var wf *ui.Workflow
	var scanTask, detectTask, policyTask int
	if !quiet {
		wf = ui.NewWorkflow(cmd.ErrOrStderr(), "")
		scanTask = wf.AddTask("Discovering agent extension")
		detectTask = wf.AddTask("Running detectors")
		policyTask = wf.AddTask("Applying policy")
		wf.Start()
		wf.StartTask(scanTask, ui.Dim.Render(root))
	}

	onProgress := func(evt engine.ProgressEvent) {
		if wf == nil {
			return
		}
		switch evt.Type {
		case engine.EventScanDone:
			wf.CompleteTask(scanTask, "")
			wf.StartTask(detectTask, "")
		case engine.EventDetectDone:
			wf.CompleteTask(detectTask, "")
			wf.StartTask(policyTask, "")
		case engine.EventPolicyDone:
			wf.CompleteTask(policyTask, "")
		}
	}

	res, err := engine.Run(root, engine.Options{Policy: pol, Logger: log, OnProgress: onProgress})
	if wf != nil {
		wf.Stop()
	}
	if err != nil {
		return err
	}

	targetNames := make([]string, 0, len(res.Targets))
	for _, t := range res.Targets {
		targetNames = append(targetNames, t.Name)
	}

	r := report.Report{
		ScanID:   uuid.NewString(),
		Root:     root,
		Targets:  targetNames,
		Findings: res.Findings,
		Verdict:  res.Verdict,
	}

	out := cmd.OutOrStdout()
	var closeFile func()
	if scanOutput != "" {
		f, err := os.Create(scanOutput)
		if err != nil {
			return &apperr.OutputError{Format: format, Message: err.Error()}
		}
		out = f
		closeFile = func() { f.Close() }
	}

	if err := renderer(r, out); err != nil {
		if closeFile != nil {
			closeFile()
		}
		return err
	}
	if closeFile != nil {
		closeFile()
	}

	if !res.Verdict.Pass {
		return apperr.ErrPolicyFailed
	}
	return nil
}
