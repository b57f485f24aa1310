package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ppiankov/wordcloud/internal/model"
	"github.com/ppiankov/wordcloud/internal/util"
)

// ErrDisallowed is returned when robots.txt forbids fetching a URL
var ErrDisallowed = errors.New("disallowed by robots.txt")

// Fetcher downloads text sources over HTTP
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker // nil when robots.txt is ignored
}

// NewFetcher creates a Fetcher from the input configuration
func NewFetcher(cfg model.InputConfig) *Fetcher {
	client := util.NewHTTPClient(cfg.Timeout, cfg.HTTPProxy, cfg.HTTPSProxy)

	f := &Fetcher{
		httpClient: client,
		userAgent:  cfg.UserAgent,
		maxBytes:   cfg.MaxBytes,
	}
	if cfg.RespectRobots {
		f.robots = util.NewRobotsChecker(client, cfg.UserAgent)
	}
	return f
}

// FetchResult contains a fetched body and its metadata
type FetchResult struct {
	Body        []byte
	ContentType string
	StatusCode  int
	FinalURL    string
	Truncated   bool
}

// Fetch retrieves rawURL. Non-2xx responses are errors; the body is read
// up to the configured byte limit.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	if f.robots != nil {
		allowed, err := f.robots.Allowed(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("robots check: %w", err)
		}
		if !allowed {
			return nil, ErrDisallowed
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/plain,text/html;q=0.9,application/xhtml+xml;q=0.9,*/*;q=0.5")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	// Read one byte past the limit to detect truncation
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	truncated := int64(len(body)) > f.maxBytes
	if truncated {
		body = body[:f.maxBytes]
	}

	return &FetchResult{
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
		FinalURL:    resp.Request.URL.String(),
		Truncated:   truncated,
	}, nil
}
