package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/fang"

	cmd "github.com/agentshield/agentshield-cli/cmd/agentshield-cli"
	"github.com/agentshield/agentshield-cli/internal/apperr"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	cmd.SetVersion(Version)
	if err := fang.Execute(context.Background(), cmd.GetRootCmd()); err != nil {
		// The user deliberately cancelled an interactive flow (init's huh
		// form) - not a failure.
		if errors.Is(err, apperr.ErrCancelled) {
			os.Exit(0)
		}
		os.Exit(1)
	}
}
