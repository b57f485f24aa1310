package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ppiankov/wordcloud/internal/model"
	"github.com/ppiankov/wordcloud/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	countInput string
	countTop   int
	countJSON  bool
)

// countCmd represents the count command
var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Print term frequencies without rendering",
	Long: `Count tokenizes a source and prints the most frequent terms.

Terms are exact and case-sensitive; nothing is filtered. Ties are listed in
term order.

Example:
  wordcloud count -i speech.txt
  wordcloud count -i speech.txt --top 50
  wordcloud count -i - --json < notes.txt`,
	Args: cobra.NoArgs,
	RunE: runCount,
}

func init() {
	rootCmd.AddCommand(countCmd)

	countCmd.Flags().StringVarP(&countInput, "input-file-path", "i", "", "text source: file path, URL or - for stdin")
	countCmd.Flags().IntVar(&countTop, "top", 20, "number of terms to print (0 = all)")
	countCmd.Flags().BoolVar(&countJSON, "json", false, "print a JSON report instead of a table")
	countCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the frequency cache")
	_ = countCmd.MarkFlagRequired("input-file-path")
}

func runCount(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// Counting never renders, so there is nothing to record
	cfg.History.Enabled = false
	if noCache {
		cfg.Cache.Enabled = false
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	analysis, err := p.Analyze(ctx, pipeline.Request{Source: countInput})
	if err != nil {
		return err
	}

	report := model.NewReport(analysis.Source, "", analysis.Frequencies, countTop)
	out := cmd.OutOrStdout()

	if countJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprintln(out, frequencyTable(report.Terms))
	fmt.Fprintf(out, "%d distinct terms, %d tokens\n", report.DistinctTerms, report.TotalTokens)
	return nil
}

func frequencyTable(terms []model.WeightedTerm) string {
	rows := make([][]string, 0, len(terms))
	for i, term := range terms {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			string(term.Term),
			strconv.FormatFloat(term.Weight, 'f', -1, 64),
		})
	}
	return renderTable([]string{"#", "Term", "Count"}, rows, []columnAlignment{alignRight, alignLeft, alignRight})
}
