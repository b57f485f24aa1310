package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/wordcloud/internal/model"
	"github.com/ppiankov/wordcloud/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	inputPath  string
	outputPath string
	reportPath string

	// Shared by render and batch
	noCache     bool
	noHistory   bool
	width       int
	height      int
	maxWords    int
	fontFile    string
	background  string
	userAgent   string
	httpProxy   string
	httpsProxy  string
	ignoreRobot bool
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a word cloud image from a text source",
	Long: `Render reads a source, counts every word-like term and writes a
word-cloud image to the output path.

The source may be a text file, an .html file, an http(s) URL or "-" for stdin.
The image format follows the output extension: .png, .jpg/.jpeg or .gif
(no extension writes PNG).

Example:
  wordcloud render -i speech.txt -o speech.png
  wordcloud render -i https://example.com/article -o article.jpg
  cat notes.txt | wordcloud render -i - -o notes.png --report notes.json`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&inputPath, "input-file-path", "i", "", "text source: file path, URL or - for stdin")
	renderCmd.Flags().StringVarP(&outputPath, "output-path", "o", "", "image destination (.png, .jpg, .gif)")
	renderCmd.Flags().StringVar(&reportPath, "report", "", "also write a JSON report of the term counts to this path")
	_ = renderCmd.MarkFlagRequired("input-file-path")
	_ = renderCmd.MarkFlagRequired("output-path")

	addRunFlags(renderCmd)
}

// addRunFlags registers the flags that tune a pipeline run
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the frequency cache")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record the run in history")
	cmd.Flags().IntVar(&width, "width", 0, "image width in pixels (default from config)")
	cmd.Flags().IntVar(&height, "height", 0, "image height in pixels (default from config)")
	cmd.Flags().IntVar(&maxWords, "max-words", 0, "maximum number of terms drawn (default from config)")
	cmd.Flags().StringVar(&fontFile, "font", "", "TrueType font file (default: embedded Go Regular)")
	cmd.Flags().StringVar(&background, "background", "", "background color as #rrggbb")
	cmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent for URL sources")
	cmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	cmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
	cmd.Flags().BoolVar(&ignoreRobot, "ignore-robots", false, "fetch URLs even if robots.txt disallows them")
}

// applyRunFlags overrides cfg with the flags the user actually set
func applyRunFlags(cmd *cobra.Command, cfg *model.Config) {
	flags := cmd.Flags()

	if flags.Changed("width") {
		cfg.Render.Width = width
	}
	if flags.Changed("height") {
		cfg.Render.Height = height
	}
	if flags.Changed("max-words") {
		cfg.Render.MaxWords = maxWords
	}
	if flags.Changed("font") {
		cfg.Render.FontFile = fontFile
	}
	if flags.Changed("background") {
		cfg.Render.Background = background
	}
	if flags.Changed("ua") {
		cfg.Input.UserAgent = userAgent
	}
	if flags.Changed("http-proxy") {
		cfg.Input.HTTPProxy = httpProxy
	}
	if flags.Changed("https-proxy") {
		cfg.Input.HTTPSProxy = httpsProxy
	}
	if ignoreRobot {
		cfg.Input.RespectRobots = false
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if noHistory {
		cfg.History.Enabled = false
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyRunFlags(cmd, cfg)

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	result, err := p.Run(ctx, pipeline.Request{Source: inputPath, Output: outputPath})
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "✓ Rendered %d terms (%d tokens) from %s to %s in %v\n",
		result.DistinctTerms, result.TotalTokens, result.Source, result.Output, result.Elapsed.Round(time.Millisecond))

	if reportPath != "" {
		if err := writeReport(result.Report(0), reportPath); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "✓ Report written to %s\n", reportPath)
	}

	return nil
}

// writeReport writes report as indented JSON
func writeReport(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
