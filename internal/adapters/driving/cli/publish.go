package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/pagelift/pagelift-cli/internal/adapters/driven/config/file"
	"github.com/pagelift/pagelift-cli/internal/adapters/driven/task"
	"github.com/pagelift/pagelift-cli/internal/adapters/driven/wire"
	"github.com/pagelift/pagelift-cli/internal/adapters/driving/tui/styles"
	"github.com/pagelift/pagelift-cli/internal/core/domain"
	"github.com/pagelift/pagelift-cli/internal/core/ports/driving"
	"github.com/pagelift/pagelift-cli/internal/core/services"
	"github.com/pagelift/pagelift-cli/internal/logger"
)

var publishCmd = &cobra.Command{
	Use:   "publish [dir]",
	Short: "Publish a project directory",
	Long: `Publishes the project in the given directory (default: current directory)
to its configured destination sites.

The project's pagelift.toml names the directory to publish, an optional
build task, and one or more sites. Only content the destination does not
already hold is uploaded.

Examples:
  pagelift publish
  pagelift publish ./my-site --site production
  pagelift publish --team team-abc123
  pagelift publish --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPublish,
}

// Flags for publish.
var (
	publishSiteName string
	publishTeamID   string
	publishWatch    bool
)

func init() {
	publishCmd.Flags().StringVar(
		&publishSiteName, "site", "", "Publish only the named site")
	publishCmd.Flags().StringVar(
		&publishTeamID, "team", "", "Team scope to publish under (overrides the site's configured team)")
	publishCmd.Flags().BoolVar(
		&publishWatch, "watch", false, "Stay running and republish when project files change")

	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := publishProject(ctx, cmd, dir); err != nil {
		return err
	}

	if publishWatch {
		return watchAndPublish(ctx, cmd, dir)
	}
	return nil
}

// publishProject loads the project config and publishes the selected sites.
func publishProject(ctx context.Context, cmd *cobra.Command, dir string) error {
	project, err := file.LoadProject(dir)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no %s in %s", file.ProjectFileName, dir)
		}
		return err
	}

	sites := project.Sites
	if publishSiteName != "" {
		site, ok := project.SiteByName(publishSiteName)
		if !ok {
			return fmt.Errorf("site %q not defined in %s", publishSiteName, file.ProjectFileName)
		}
		sites = []domain.Site{*site}
	}
	if len(sites) == 0 {
		return fmt.Errorf("project %s has no sites configured", project.Name)
	}

	for i := range sites {
		if err := publishSite(ctx, cmd, project, sites[i]); err != nil {
			return err
		}
	}
	return nil
}

// publishSite runs one launch for one site, rendering progress as it goes.
func publishSite(ctx context.Context, cmd *cobra.Command, project *domain.Project, site domain.Site) error {
	if publishTeamID != "" {
		site.TeamID = publishTeamID
	}

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

	launcher := services.NewLauncher(
		wire.NewDiscoverer(httpClient),
		wire.NewFactory(httpClient),
		task.NewRunner(project.BuildTool),
		teamResolver,
		historyStore,
	)

	st := styles.DefaultStyles()
	cmd.Printf("%s %s -> %s\n",
		st.Title.Render("Publishing"), st.Normal.Render(site.Name), st.Subtitle.Render(site.Domain))

	events := make(chan domain.LaunchStep, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		renderEvents(cmd, st, events)
	}()

	result := launcher.Launch(ctx, driving.LaunchRequest{
		Project:    project,
		Site:       site,
		Credential: creds.Token,
		Events:     events,
	})
	<-done

	switch result.Kind {
	case domain.ResultSucceeded:
		cmd.Printf("%s %s\n", st.Success.Render("Published"), result.Message)
		return nil
	case domain.ResultCancelled:
		cmd.Println(st.Warning.Render("Cancelled"))
		return nil
	default:
		cmd.Printf("%s %s\n", st.Error.Render("Failed:"), result.Message)
		return fmt.Errorf("publishing %s: %w", site.Name, result.Err)
	}
}

// renderEvents prints step transitions from the launch event stream. Each
// event is a full snapshot of one step; a line is printed when a step's
// status changes, and log lines are streamed in verbose mode.
func renderEvents(cmd *cobra.Command, st *styles.Styles, events <-chan domain.LaunchStep) {
	statuses := make(map[string]domain.StepStatus)
	logged := make(map[string]int)

	for step := range events {
		if statuses[step.Title] != step.Status {
			statuses[step.Title] = step.Status
			cmd.Printf("  %s %s%s\n", stepGlyph(st, step.Status), step.Title, stepSuffix(step))
		}
		if logger.IsVerbose() {
			for _, line := range step.Log[logged[step.Title]:] {
				cmd.Printf("      %s\n", st.Muted.Render(line))
			}
			logged[step.Title] = len(step.Log)
		}
	}
}

func stepGlyph(st *styles.Styles, status domain.StepStatus) string {
	switch status {
	case domain.StepRunning:
		return st.Subtitle.Render("~")
	case domain.StepPaused:
		return st.Warning.Render("?")
	case domain.StepCompleted:
		return st.Success.Render("+")
	case domain.StepFailed:
		return st.Error.Render("x")
	default:
		return st.Muted.Render(".")
	}
}

func stepSuffix(step domain.LaunchStep) string {
	if step.Message == "" {
		return ""
	}
	return " - " + step.Message
}
