// Package logging provides a tiny opt-in logger shared by the pipeline
// stages that take one (the adapter and the engine). Logging is disabled
// entirely when a stage is constructed without a Logger, so production scans
// pay nothing for it.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/agentshield/agentshield-cli/internal/ui"
)

// Logger writes one line per call:
//
//	<ColoredPrefix> target=<scanTargetName> <formattedMessage>\n
//
// When Writer is nil, logging is disabled — every method becomes a no-op.
type Logger struct {
	Writer io.Writer

	PrefixText  string
	PrefixColor string

	// OmitTarget controls whether the target-name field is written. When
	// false (default), output includes "target=<name>".
	OmitTarget bool
}

func (l *Logger) SetWriter(w io.Writer) { l.Writer = w }

func (l *Logger) Enabled() bool { return l != nil && l.Writer != nil }

// Logf writes one log line scoped to targetName (a ScanTarget.Name, a
// detector RuleID, or any other stage-specific scope string).
func (l *Logger) Logf(targetName string, format string, args ...any) {
	if l == nil || l.Writer == nil {
		return
	}
	prefix := l.PrefixText
	if prefix == "" {
		prefix = "Log:"
	}
	if l.PrefixColor != "" {
		prefix = ui.Color(prefix, l.PrefixColor)
	}
	msg := fmt.Sprintf(format, args...)
	if l.OmitTarget {
		fmt.Fprintf(l.Writer, "%s %s\n", prefix, msg)
		return
	}

	t := strings.TrimSpace(targetName)
	if t == "" {
		t = "(unknown)"
	}
	fmt.Fprintf(l.Writer, "%s target=%s %s\n", prefix, t, msg)
}
