package worker

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter throttles URL sources per host. Sources that are not http(s)
// URLs (files, stdin) are never delayed.
type Limiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.Mutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a per-host limiter. requestsPerSecond <= 0 disables
// throttling.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 1
	}
	limit := rate.Limit(requestsPerSecond)
	if requestsPerSecond <= 0 {
		limit = rate.Inf
	}

	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  limit,
		defaultBurst: burst,
	}
}

// Wait blocks until source may be fetched or ctx is done
func (l *Limiter) Wait(ctx context.Context, source string) error {
	host, ok := hostOf(source)
	if !ok {
		return nil
	}
	return l.limiterFor(host).Wait(ctx)
}

// Allow reports whether source may be fetched now, consuming a token if so
func (l *Limiter) Allow(source string) bool {
	host, ok := hostOf(source)
	if !ok {
		return true
	}
	return l.limiterFor(host).Allow()
}

// SetHostRate overrides the rate for one host
func (l *Limiter) SetHostRate(host string, requestsPerSecond float64, burst int) {
	if burst <= 0 {
		burst = l.defaultBurst
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.limiters[strings.ToLower(host)] = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}

func (l *Limiter) limiterFor(host string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.limiters[host]
	if !exists {
		limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
		l.limiters[host] = limiter
	}
	return limiter
}

// hostOf returns the lowercased host of an http(s) source
func hostOf(source string) (string, bool) {
	parsed, err := url.Parse(source)
	if err != nil {
		return "", false
	}
	scheme := strings.ToLower(parsed.Scheme)
	if (scheme != "http" && scheme != "https") || parsed.Host == "" {
		return "", false
	}
	return strings.ToLower(parsed.Host), true
}
