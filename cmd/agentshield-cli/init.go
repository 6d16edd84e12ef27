package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/agentshield/agentshield-cli/internal/apperr"
	"github.com/agentshield/agentshield-cli/internal/detector"
	"github.com/agentshield/agentshield-cli/internal/ui"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter .agentshield.toml",
	Long:  "Write a starter .agentshield.toml in the current directory. Prompts interactively when run from a terminal; otherwise writes the default policy.",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing .agentshield.toml")
}

// agentshieldConfig mirrors the subset of .agentshield.toml's shape that
// init writes; internal/config.Policy reads the same scan.* keys back via
// viper regardless of which writer produced the file.
type agentshieldConfig struct {
	Scan struct {
		FailOn      string   `toml:"fail-on"`
		IgnoreRules []string `toml:"ignore-rules"`
	} `toml:"scan"`
}

func runInit(cmd *cobra.Command, args []string) error {
	const path = ".agentshield.toml"

	if _, err := os.Stat(path); err == nil && !initForce {
		return apperr.Userf("%s already exists (use --force to overwrite)", path)
	}

	cfg := agentshieldConfig{}
	cfg.Scan.FailOn = "high"

	if isatty.IsTerminal(os.Stdout.Fd()) {
		var ignored []string
		options := make([]huh.Option[string], 0, len(detector.Builtin().List()))
		for _, r := range detector.Builtin().List() {
			options = append(options, huh.NewOption(fmt.Sprintf("%s — %s", r.RuleID, r.Title), r.RuleID))
		}

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Fail the scan at or above which severity?").
					Options(
						huh.NewOption("critical", "critical"),
						huh.NewOption("high", "high"),
						huh.NewOption("medium", "medium"),
						huh.NewOption("low", "low"),
					).
					Value(&cfg.Scan.FailOn),
				huh.NewMultiSelect[string]().
					Title("Ignore these rules (optional)").
					Options(options...).
					Value(&ignored),
			),
		)
		if err := form.Run(); err != nil {
			return apperr.ErrCancelled
		}
		cfg.Scan.IgnoreRules = ignored
	}

	body, err := toml.Marshal(cfg)
	if err != nil {
		return &apperr.ConfigError{Path: path, Message: err.Error()}
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return &apperr.ConfigError{Path: path, Message: err.Error()}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.GetCheckMark(), ui.Dim.Render("wrote "+path))
	return nil
}
