// Command pagelift publishes static site directories to content-addressed
// hosting services.
package main

import (
	"fmt"
	"os"

	"github.com/pagelift/pagelift-cli/internal/adapters/driven/config/file"
	"github.com/pagelift/pagelift-cli/internal/adapters/driven/storage/memory"
	"github.com/pagelift/pagelift-cli/internal/adapters/driven/storage/sqlite"
	"github.com/pagelift/pagelift-cli/internal/adapters/driving/cli"
	"github.com/pagelift/pagelift-cli/internal/adapters/driving/tui"
	"github.com/pagelift/pagelift-cli/internal/core/ports/driven"
	"github.com/pagelift/pagelift-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	credentials, err := file.NewCredentialsStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "pagelift: opening credentials store: %v\n", err)
		os.Exit(1)
	}

	var history driven.HistoryStore
	store, err := sqlite.NewStore("")
	if err != nil {
		logger.Warn("History unavailable, falling back to in-memory store: %v", err)
		history = memory.NewHistoryStore()
	} else {
		defer store.Close()
		history = store
	}

	cli.SetVersion(version)
	cli.Configure(cli.Services{
		Credentials:  credentials,
		History:      history,
		TeamResolver: tui.NewTeamPicker(nil),
	})

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
