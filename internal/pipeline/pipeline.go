package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ppiankov/wordcloud/internal/cache"
	"github.com/ppiankov/wordcloud/internal/history"
	"github.com/ppiankov/wordcloud/internal/logging"
	"github.com/ppiankov/wordcloud/internal/model"
	"github.com/ppiankov/wordcloud/internal/render"
	"github.com/ppiankov/wordcloud/internal/tokenize"
)

// Recorder stores a summary of each run
type Recorder interface {
	Record(ctx context.Context, run history.Run) (history.Run, error)
}

// Pipeline runs load -> tokenize -> render for one source at a time.
// A Pipeline may be shared by concurrent callers; all per-run state is local.
type Pipeline struct {
	loader   *Loader
	renderer render.Renderer
	cache    cache.Cache // nil disables caching
	recorder Recorder    // nil disables history
	logger   *slog.Logger
	closers  []func() error
}

// Option customizes a Pipeline
type Option func(*Pipeline)

// WithLoader replaces the default loader
func WithLoader(l *Loader) Option {
	return func(p *Pipeline) { p.loader = l }
}

// WithCache enables the frequency cache
func WithCache(c cache.Cache) Option {
	return func(p *Pipeline) { p.cache = c }
}

// WithRecorder enables run history
func WithRecorder(r Recorder) Option {
	return func(p *Pipeline) { p.recorder = r }
}

// WithLogger sets the structured logger
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// New creates a pipeline around renderer
func New(renderer render.Renderer, opts ...Option) *Pipeline {
	p := &Pipeline{
		renderer: renderer,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logging.NewNop()
	}
	if p.loader == nil {
		p.loader = NewLoader(model.DefaultConfig().Input)
	}
	return p
}

// NewPipeline wires a pipeline from configuration: the cloud renderer,
// the layered cache and the history database as enabled in cfg.
func NewPipeline(ctx context.Context, cfg *model.Config, logger *slog.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	renderer, err := render.NewCloudRenderer(render.OptionsFromConfig(cfg.Render))
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	opts := []Option{
		WithLoader(NewLoader(cfg.Input)),
		WithLogger(logger),
	}
	if c := cache.New(cfg.Cache); c != nil {
		opts = append(opts, WithCache(c))
	}

	var store *history.Store
	if cfg.History.Enabled {
		store, err = history.Open(ctx, cfg.History.Path)
		if err != nil {
			// Rendering continues without history
			logger.Warn("run history disabled", "path", cfg.History.Path, "error", err)
		} else {
			opts = append(opts, WithRecorder(store))
		}
	}

	p := New(renderer, opts...)
	if store != nil {
		p.closers = append(p.closers, store.Close)
	}
	return p, nil
}

// Close releases resources held by the pipeline
func (p *Pipeline) Close() error {
	var errs []error
	for _, closeFn := range p.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	p.closers = nil
	return errors.Join(errs...)
}

// Request describes one run. When Source is empty, Text is tokenized directly.
type Request struct {
	Source string
	Text   string
	Output string
}

func (r Request) label() string {
	if r.Source == "" {
		return string(SourceText)
	}
	return r.Source
}

// Analysis is the tokenization outcome for one source
type Analysis struct {
	Source      string
	Kind        SourceKind
	Frequencies model.Frequencies
	CacheHit    bool
}

// Result is the outcome of a successful run
type Result struct {
	Source        string
	Output        string
	Frequencies   model.Frequencies
	Terms         []model.WeightedTerm
	DistinctTerms int
	TotalTokens   int
	CacheHit      bool
	Elapsed       time.Duration
}

// Report converts the result into a serializable report
func (r *Result) Report(top int) *model.Report {
	report := model.NewReport(r.Source, r.Output, r.Frequencies, top)
	report.Elapsed = r.Elapsed.String()
	return report
}

// Analyze loads the request's text and builds its frequency mapping.
// Load failures are *model.InputError; tokenization itself cannot fail.
func (p *Pipeline) Analyze(ctx context.Context, req Request) (*Analysis, error) {
	text := req.Text
	kind := SourceText
	if req.Source != "" {
		doc, err := p.loader.Load(ctx, req.Source)
		if err != nil {
			return nil, err
		}
		text, kind = doc.Text, doc.Kind
	}

	analysis := &Analysis{Source: req.label(), Kind: kind}

	var key string
	if p.cache != nil {
		key = cache.Key(text)
		if freq, ok := p.cache.Get(key); ok {
			analysis.Frequencies = freq
			analysis.CacheHit = true
			p.logger.Debug("frequency cache hit", "source", analysis.Source, "terms", len(freq))
			return analysis, nil
		}
	}

	analysis.Frequencies = tokenize.Count(text)

	if p.cache != nil {
		if err := p.cache.Set(key, analysis.Frequencies, 0); err != nil {
			p.logger.Warn("frequency cache write failed", "source", analysis.Source, "error", err)
		}
	}
	return analysis, nil
}

// Run executes the whole pipeline for req. Failures are not retried.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	result, err := p.run(ctx, req)
	elapsed := time.Since(start)

	p.record(ctx, req, result, elapsed, err)

	if err != nil {
		p.logger.Debug("run failed", "source", req.label(), "output", req.Output, "error", err)
		return nil, err
	}

	result.Elapsed = elapsed
	p.logger.Info("rendered word cloud",
		"source", result.Source,
		"output", result.Output,
		"terms", result.DistinctTerms,
		"tokens", result.TotalTokens,
		"cache_hit", result.CacheHit,
		"elapsed", elapsed,
	)
	return result, nil
}

func (p *Pipeline) run(ctx context.Context, req Request) (*Result, error) {
	if req.Output == "" {
		return nil, &model.RenderError{Output: req.Output, Err: errors.New("output path is required")}
	}

	analysis, err := p.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}

	terms := analysis.Frequencies.Weighted()
	if err := p.renderer.Render(terms, req.Output); err != nil {
		return nil, &model.RenderError{Output: req.Output, Err: err}
	}

	return &Result{
		Source:        analysis.Source,
		Output:        req.Output,
		Frequencies:   analysis.Frequencies,
		Terms:         terms,
		DistinctTerms: len(analysis.Frequencies),
		TotalTokens:   analysis.Frequencies.Total(),
		CacheHit:      analysis.CacheHit,
	}, nil
}

func (p *Pipeline) record(ctx context.Context, req Request, result *Result, elapsed time.Duration, runErr error) {
	if p.recorder == nil {
		return
	}

	run := history.Run{
		Source:   req.label(),
		Output:   req.Output,
		Status:   history.StatusOK,
		Duration: elapsed,
	}
	if result != nil {
		run.DistinctTerms = result.DistinctTerms
		run.TotalTokens = result.TotalTokens
	}
	if runErr != nil {
		run.Error = runErr.Error()
		var inputErr *model.InputError
		if errors.As(runErr, &inputErr) {
			run.Status = history.StatusInputError
		} else {
			run.Status = history.StatusRenderError
		}
	}

	if _, err := p.recorder.Record(ctx, run); err != nil {
		p.logger.Warn("failed to record run history", "source", run.Source, "error", err)
	}
}
