package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ppiankov/wordcloud/internal/history"
	"github.com/spf13/cobra"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent runs",
	Long:  `Show the most recent render runs recorded in the history database, newest first.`,
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "number of runs to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		return fmt.Errorf("history is disabled in the configuration")
	}

	out := cmd.OutOrStdout()
	if _, err := os.Stat(cfg.History.Path); errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	store, err := history.Open(cmd.Context(), cfg.History.Path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	fmt.Fprintln(out, historyTable(runs))
	return nil
}

func historyTable(runs []history.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			string(run.Status),
			truncate(run.Source, 40),
			truncate(run.Output, 40),
			strconv.Itoa(run.DistinctTerms),
			strconv.Itoa(run.TotalTokens),
			run.Duration.Round(time.Millisecond).String(),
			truncate(run.Error, 50),
		})
	}
	return renderTable(
		[]string{"When", "Status", "Source", "Output", "Terms", "Tokens", "Duration", "Error"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
	)
}
