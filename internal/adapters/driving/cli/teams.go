package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/pagelift/pagelift-cli/internal/adapters/driven/config/file"
	"github.com/pagelift/pagelift-cli/internal/adapters/driven/wire"
	"github.com/pagelift/pagelift-cli/internal/core/domain"
	"github.com/pagelift/pagelift-cli/internal/core/ports/driven"
)

var teamsCmd = &cobra.Command{
	Use:   "teams [dir]",
	Short: "List the teams available on a site's hosting service",
	Long: `Lists the team scopes the stored credential can publish under, as
reported by the hosting service of one of the project's sites.

Examples:
  pagelift teams
  pagelift teams ./my-site --site production`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTeams,
}

var teamsSiteName string

func init() {
	teamsCmd.Flags().StringVar(
		&teamsSiteName, "site", "", "Site whose hosting service to query (default: first site)")

	rootCmd.AddCommand(teamsCmd)
}

func runTeams(cmd *cobra.Command, args []string) error {
	if credentialsStore == nil {
		return errors.New("credentials store not configured")
	}

	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving project directory: %w", err)
	}

	project, err := file.LoadProject(dir)
	if err != nil {
		return err
	}
	if len(project.Sites) == 0 {
		return fmt.Errorf("project %s has no sites configured", project.Name)
	}

	site := &project.Sites[0]
	if teamsSiteName != "" {
		s, ok := project.SiteByName(teamsSiteName)
		if !ok {
			return fmt.Errorf("site %q not defined in %s", teamsSiteName, file.ProjectFileName)
		}
		site = s
	}

	ctx := context.Background()
	creds, err := credentialsStore.Get(ctx, site.Service)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no credentials stored for %s; run: pagelift login %s", site.Service, site.Service)
		}
		return fmt.Errorf("loading credentials for %s: %w", site.Service, err)
	}

	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: creds.Token},
	))
	httpClient.Timeout = wire.DefaultTimeout

	endpoint, err := wire.NewDiscoverer(httpClient).Discover(ctx, site.Domain)
	if err != nil {
		return fmt.Errorf("discovering endpoint for %s: %w", site.Domain, err)
	}

	api := wire.NewFactory(httpClient).New(endpoint)
	list, err := api.Teams(ctx, driven.RequestScope{
		Credential: creds.Token,
		Domain:     site.Domain,
	})
	if err != nil {
		return fmt.Errorf("fetching teams: %w", err)
	}

	if len(list.Teams) == 0 {
		cmd.Println("No teams available for this credential.")
	} else {
		cmd.Printf("Teams on %s:\n", site.Service)
		for _, team := range list.Teams {
			cmd.Printf("  %-24s %s\n", team.Name, team.ID)
		}
	}
	if list.ManageURL != "" {
		cmd.Printf("\nManage teams: %s\n", list.ManageURL)
	}
	return nil
}
