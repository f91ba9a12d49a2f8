package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pagelift/pagelift-cli/internal/adapters/driving/tui/styles"
	"github.com/pagelift/pagelift-cli/internal/core/domain"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past publish attempts",
	RunE:  runHistory,
}

var historyLimit int

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of records to show")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyStore == nil {
		return errors.New("history store not configured")
	}

	records, err := historyStore.List(context.Background(), historyLimit)
	if err != nil {
		return fmt.Errorf("listing history: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("No publish attempts recorded.")
		return nil
	}

	st := styles.DefaultStyles()
	for i := range records {
		rec := &records[i]
		cmd.Printf("%s  %s  %s/%s -> %s\n",
			rec.StartedAt.Local().Format(time.DateTime),
			renderResult(st, rec.Result),
			rec.Project, rec.Site, rec.Domain)
		if rec.Message != "" {
			cmd.Printf("                     %s\n", st.Muted.Render(rec.Message))
		}
	}
	return nil
}

func renderResult(st *styles.Styles, kind domain.ResultKind) string {
	switch kind {
	case domain.ResultSucceeded:
		return st.Success.Render("ok       ")
	case domain.ResultCancelled:
		return st.Warning.Render("cancelled")
	default:
		return st.Error.Render("failed   ")
	}
}
