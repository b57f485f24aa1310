package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/wordcloud/internal/pipeline"
	"github.com/ppiankov/wordcloud/internal/render"
	"github.com/ppiankov/wordcloud/internal/worker"
	"github.com/spf13/cobra"
)

var (
	batchFromFile    string
	batchOutputDir   string
	batchFormat      string
	batchConcurrency int
	batchTimeout     time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch [sources...]",
	Short: "Render word clouds for many sources in parallel",
	Long: `Batch renders one word cloud per source:
- Sources come from arguments and/or a file (one per line, # comments)
- Sources are rendered in parallel with a bounded worker pool
- URL sources are rate limited per host
- Output names derive from the source and are unique within the batch

Results are listed in input order. The command fails if any source failed.

Example:
  wordcloud batch a.txt b.txt --output-dir ./clouds
  wordcloud batch --from-file sources.txt --format jpg --concurrency 8`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchFromFile, "from-file", "", "file listing sources, one per line")
	batchCmd.Flags().StringVar(&batchOutputDir, "output-dir", "./wordclouds", "output directory for images")
	batchCmd.Flags().StringVar(&batchFormat, "format", "png", "image format (png, jpg, gif)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "number of concurrent workers (default from config)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for the batch (0 = none)")

	addRunFlags(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	sources := append([]string(nil), args...)
	if batchFromFile != "" {
		fileSources, err := worker.ReadSourcesFromFile(batchFromFile)
		if err != nil {
			return fmt.Errorf("read sources: %w", err)
		}
		sources = append(sources, fileSources...)
	}
	sources = worker.DedupeSources(sources)
	if len(sources) == 0 {
		return fmt.Errorf("no sources given: pass sources as arguments or use --from-file")
	}

	format, err := render.FormatFromPath("out." + batchFormat)
	if err != nil {
		return fmt.Errorf("invalid --format: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyRunFlags(cmd, cfg)
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency.Workers = batchConcurrency
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if batchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, batchTimeout)
		defer cancel()
	}

	if err := os.MkdirAll(batchOutputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.NewPipeline(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Sources:      %d\n", len(sources))
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", batchOutputDir)
	fmt.Fprintf(os.Stderr, "\n")

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers, cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)
	requests := worker.PlanRequests(sources, batchOutputDir, format.Extension())
	outcomes := processor.Process(ctx, requests)

	failures := 0
	for _, outcome := range outcomes {
		if outcome.Error != nil {
			failures++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", outcome.Request.Source, outcome.Error)
			continue
		}
		fmt.Fprintf(os.Stderr, "✓ %s → %s (%d terms)\n", outcome.Request.Source, outcome.Result.Output, outcome.Result.DistinctTerms)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d\n", len(outcomes))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", len(outcomes)-failures)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failures)
	fmt.Fprintf(os.Stderr, "\n")

	if failures > 0 {
		return fmt.Errorf("%d of %d sources failed", failures, len(outcomes))
	}
	return nil
}
