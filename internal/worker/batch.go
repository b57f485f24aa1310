package worker

import (
	"bufio"
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/wordcloud/internal/pipeline"
)

// Runner executes a single render request
type Runner interface {
	Run(ctx context.Context, req pipeline.Request) (*pipeline.Result, error)
}

// RenderJob renders one source as part of a batch
type RenderJob struct {
	Index   int
	Request pipeline.Request
	Runner  Runner
	Limiter *Limiter // optional
}

// Execute waits for the host rate limit, then runs the request
func (j *RenderJob) Execute(ctx context.Context) Result {
	outcome := &Outcome{Index: j.Index, Request: j.Request}

	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, j.Request.Source); err != nil {
			outcome.Error = fmt.Errorf("rate limit: %w", err)
			return outcome
		}
	}

	outcome.Result, outcome.Error = j.Runner.Run(ctx, j.Request)
	return outcome
}

// Outcome is the result of one RenderJob
type Outcome struct {
	Index   int
	Request pipeline.Request
	Result  *pipeline.Result
	Error   error
}

func (o *Outcome) Err() error {
	return o.Error
}

// BatchProcessor renders many sources concurrently
type BatchProcessor struct {
	runner      Runner
	concurrency int
	limiter     *Limiter
}

// NewBatchProcessor creates a processor. requestsPerSecond and burst
// configure per-host throttling of URL sources; requestsPerSecond <= 0
// disables it.
func NewBatchProcessor(runner Runner, concurrency int, requestsPerSecond float64, burst int) *BatchProcessor {
	var limiter *Limiter
	if requestsPerSecond > 0 {
		limiter = NewLimiter(requestsPerSecond, burst)
	}
	return &BatchProcessor{
		runner:      runner,
		concurrency: concurrency,
		limiter:     limiter,
	}
}

// Process runs every request and returns outcomes in request order.
// Each request succeeds or fails independently.
func (b *BatchProcessor) Process(ctx context.Context, requests []pipeline.Request) []*Outcome {
	if len(requests) == 0 {
		return []*Outcome{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	outcomes := make([]*Outcome, len(requests))
	for i, req := range requests {
		job := &RenderJob{Index: i, Request: req, Runner: b.runner, Limiter: b.limiter}
		if !pool.Submit(job) {
			outcomes[i] = &Outcome{Index: i, Request: req, Error: fmt.Errorf("batch cancelled: %w", ctx.Err())}
		}
	}

	for _, result := range pool.Wait() {
		outcome := result.(*Outcome)
		outcomes[outcome.Index] = outcome
	}

	// Jobs dropped by cancellation never produced a result
	for i, outcome := range outcomes {
		if outcome == nil {
			outcomes[i] = &Outcome{Index: i, Request: requests[i], Error: fmt.Errorf("batch cancelled: %w", ctx.Err())}
		}
	}

	return outcomes
}

// PlanRequests pairs each source with an output path in outputDir.
// Names derive from the source and are made unique within the batch.
func PlanRequests(sources []string, outputDir, ext string) []pipeline.Request {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	taken := make(map[string]bool)
	requests := make([]pipeline.Request, 0, len(sources))
	for _, source := range sources {
		base := OutputName(source)
		name := base
		for n := 2; taken[name]; n++ {
			name = fmt.Sprintf("%s-%d", base, n)
		}
		taken[name] = true

		requests = append(requests, pipeline.Request{
			Source: source,
			Output: filepath.Join(outputDir, name+ext),
		})
	}
	return requests
}

// fileNameReplacer replaces characters that are unsafe in file names
var fileNameReplacer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
	" ", "-",
)

// OutputName derives a file-system safe base name (without extension)
// from a source: the file stem for paths, host plus path for URLs.
func OutputName(source string) string {
	var name string
	switch {
	case source == pipeline.StdinSource:
		name = "stdin"
	case pipeline.IsURL(source):
		if parsed, err := url.Parse(source); err == nil {
			name = parsed.Host
			if path := strings.Trim(parsed.Path, "/"); path != "" {
				name += "-" + strings.TrimSuffix(path, filepath.Ext(path))
			}
		}
	default:
		base := filepath.Base(source)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	name = fileNameReplacer.Replace(name)
	name = strings.Trim(name, ".-_")
	if len(name) > 100 {
		name = name[:100]
	}
	if name == "" {
		name = "wordcloud"
	}
	return name
}

// ReadSourcesFromFile reads sources from a file, one per line.
// Blank lines and lines starting with # are skipped; duplicates are dropped.
func ReadSourcesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var sources []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			sources = append(sources, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return sources, nil
}

// DedupeSources removes repeated sources, keeping first occurrences
func DedupeSources(sources []string) []string {
	seen := make(map[string]bool, len(sources))
	out := make([]string, 0, len(sources))
	for _, s := range sources {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
