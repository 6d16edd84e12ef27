package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentshield/agentshield-cli/internal/apperr"
	"github.com/agentshield/agentshield-cli/internal/detector"
	"github.com/agentshield/agentshield-cli/internal/ui"
)

var listRulesFormat string

var listRulesCmd = &cobra.Command{
	Use:   "list-rules",
	Short: "List every built-in detection rule",
	RunE:  runListRules,
}

func init() {
	listRulesCmd.Flags().StringVar(&listRulesFormat, "format", "table", "Output format: table|json")
}

type ruleJSON struct {
	RuleID      string `json:"rule_id"`
	Title       string `json:"title"`
	Severity    string `json:"severity"`
	Category    string `json:"category"`
	CWE         string `json:"cwe"`
	Description string `json:"description"`
}

func runListRules(cmd *cobra.Command, args []string) error {
	rules := detector.Builtin().List()
	out := cmd.OutOrStdout()

	switch listRulesFormat {
	case "", "table":
		for _, r := range rules {
			fmt.Fprintf(out, "%s  %s  %s\n", ui.Highlight.Render(r.RuleID), string(r.Severity), r.Title)
			fmt.Fprintf(out, "  %s\n", ui.Dim.Render(r.Description))
			if r.CWE != "" {
				fmt.Fprintf(out, "  %s\n", ui.Muted.Render(r.CWE))
			}
		}
		return nil
	case "json":
		docs := make([]ruleJSON, 0, len(rules))
		for _, r := range rules {
			docs = append(docs, ruleJSON{
				RuleID:      r.RuleID,
				Title:       r.Title,
				Severity:    string(r.Severity),
				Category:    string(r.Category),
				CWE:         r.CWE,
				Description: r.Description,
			})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(docs)
	default:
		return apperr.Userf("unknown --format %q (expected table|json)", listRulesFormat)
	}
}
