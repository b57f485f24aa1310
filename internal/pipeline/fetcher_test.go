package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppiankov/wordcloud/internal/model"
)

func testInputConfig() model.InputConfig {
	return model.InputConfig{
		MaxBytes:      1 << 20,
		Timeout:       5 * time.Second,
		UserAgent:     "wordcloud-test/1.0",
		RespectRobots: true,
	}
}

func TestFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		if ua := r.Header.Get("User-Agent"); ua != "wordcloud-test/1.0" {
			t.Errorf("unexpected user agent %q", ua)
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = fmt.Fprint(w, "cat cat dog")
	}))
	defer server.Close()

	result, err := NewFetcher(testInputConfig()).Fetch(context.Background(), server.URL+"/words.txt")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(result.Body) != "cat cat dog" {
		t.Errorf("unexpected body %q", result.Body)
	}
	if result.StatusCode != http.StatusOK || result.Truncated {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestFetcher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewFetcher(testInputConfig()).Fetch(context.Background(), server.URL+"/missing")
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if got := err.Error(); got != "unexpected status: 404 404 Not Found" {
		t.Errorf("unexpected error: %s", got)
	}
}

func TestFetcher_RobotsDisallowed(t *testing.T) {
	var pageHits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = fmt.Fprint(w, "User-agent: *\nDisallow: /\n")
			return
		}
		pageHits.Add(1)
	}))
	defer server.Close()

	_, err := NewFetcher(testInputConfig()).Fetch(context.Background(), server.URL+"/page")
	if !errors.Is(err, ErrDisallowed) {
		t.Fatalf("expected ErrDisallowed, got %v", err)
	}
	if pageHits.Load() != 0 {
		t.Errorf("page should not be requested when disallowed, got %d hits", pageHits.Load())
	}

	cfg := testInputConfig()
	cfg.RespectRobots = false
	if _, err := NewFetcher(cfg).Fetch(context.Background(), server.URL+"/page"); err != nil {
		t.Errorf("expected fetch to succeed when robots are ignored: %v", err)
	}
}

func TestFetcher_Truncation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, strings.Repeat("a", 64))
	}))
	defer server.Close()

	cfg := testInputConfig()
	cfg.MaxBytes = 16
	cfg.RespectRobots = false

	result, err := NewFetcher(cfg).Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !result.Truncated || len(result.Body) != 16 {
		t.Errorf("expected truncated 16-byte body, got %d bytes truncated=%v", len(result.Body), result.Truncated)
	}
}
