// Package cli provides the cobra-based command line interface.
//
// Commands are wired to core services through package-level variables set
// by Configure at startup. Every command guards against missing services so
// the CLI degrades with a clear error instead of a panic when a store is
// unavailable.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/pagelift/pagelift-cli/internal/core/ports/driven"
	"github.com/pagelift/pagelift-cli/internal/logger"
)

// version is the build version, overridden at link time.
var version = "dev"

// Services injected at startup.
var (
	credentialsStore driven.CredentialsStore
	historyStore     driven.HistoryStore
	teamResolver     driven.TeamResolver
)

// Services bundles the driven adapters the CLI needs.
type Services struct {
	// Credentials persists bearer tokens per hosting service.
	Credentials driven.CredentialsStore

	// History records past publish attempts. May be nil.
	History driven.HistoryStore

	// TeamResolver handles interactive team selection. May be nil,
	// in which case team-scoped destinations require --team.
	TeamResolver driven.TeamResolver
}

// Configure injects the services used by CLI commands.
func Configure(s Services) {
	credentialsStore = s.Credentials
	historyStore = s.History
	teamResolver = s.TeamResolver
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "pagelift",
	Short: "Publish static sites to content-addressed hosting",
	Long: `Pagelift publishes a directory of static files to a hosting service
speaking the web publication protocol. Content is addressed by hash, so
repeat publishes only upload what changed.

A project is described by a pagelift.toml file in its directory, naming
the directory to publish and one or more destination sites.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
