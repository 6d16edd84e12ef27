// Package cmd implements AgentShield's command-line surface: an offline
// static scanner for MCP servers and OpenClaw skills, built on cobra/fang
// the way the teacher's cmd/aibomgen-cli built its BOM generator CLI.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/agentshield/agentshield-cli/internal/config"
	"github.com/agentshield/agentshield-cli/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "agentshield",
	Short: "Offline static security scanner for AI agent extensions",
	Long:  longDescription,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initUIAndBanner(cmd)
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		initUIAndBanner(cmd)
		return cmd.Help()
	},
}

var cfgFile string
var noColor bool
var version string

// SetVersion sets the version reported by --version.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// GetRootCmd returns the root command, for main to hand to fang.Execute.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(func() {
		ui.Init(noColor)
		if err := config.Init(cfgFile); err != nil {
			cobra.CheckErr(err)
		}
	})

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.agentshield.toml or $HOME/.agentshield.toml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		initUIAndBanner(cmd)
		defaultHelp(cmd, args)
	})

	rootCmd.AddCommand(scanCmd, listRulesCmd, initCmd)
}

const longDescription = "AgentShield scans MCP servers and OpenClaw skills for the behaviors that turn an AI agent extension into a supply-chain risk: shell injection, credential exfiltration, SSRF, arbitrary file access, runtime package installs, and self-modification. It runs entirely offline against source on disk."

func initUIAndBanner(cmd *cobra.Command) {
	if cmd == nil {
		return
	}
	cmd.Root().Long = ui.Title.Render("AgentShield") + " " + ui.Dim.Render("— static analysis for agent extensions") + "\n" + longDescription
}
