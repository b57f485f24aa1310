package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/wordcloud/internal/model"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoader_File(t *testing.T) {
	path := writeFile(t, t.TempDir(), "words.txt", "cat cat cat dog")

	doc, err := NewLoader(testInputConfig()).Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Kind != SourceFile || doc.Text != "cat cat cat dog" || doc.HTML {
		t.Errorf("unexpected document %+v", doc)
	}
}

func TestLoader_HTMLFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "page.html",
		"<html><head><script>var x = 1;</script></head><body><p>hello <i>world</i></p></body></html>")

	doc, err := NewLoader(testInputConfig()).Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !doc.HTML || doc.Text != "hello world" {
		t.Errorf("expected visible text, got %+v", doc)
	}
}

func TestLoader_Errors(t *testing.T) {
	dir := t.TempDir()
	invalid := filepath.Join(dir, "latin1.txt")
	if err := os.WriteFile(invalid, []byte{'c', 'a', 'f', 0xe9}, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	tests := map[string]string{
		"missing file": filepath.Join(dir, "missing.txt"),
		"invalid utf8": invalid,
		"directory":    dir,
		"empty source": "",
	}

	loader := NewLoader(testInputConfig())
	for name, source := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := loader.Load(context.Background(), source)
			var inputErr *model.InputError
			if !errors.As(err, &inputErr) {
				t.Fatalf("expected *model.InputError, got %v", err)
			}
			if inputErr.Source != source {
				t.Errorf("expected source %q, got %q", source, inputErr.Source)
			}
		})
	}
}

func TestLoader_MissingFileUnwrapsToNotExist(t *testing.T) {
	_, err := NewLoader(testInputConfig()).Load(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist in chain, got %v", err)
	}
}

func TestLoader_Stdin(t *testing.T) {
	loader := NewLoader(testInputConfig())
	loader.stdin = strings.NewReader("from stdin")

	doc, err := loader.Load(context.Background(), StdinSource)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Kind != SourceStdin || doc.Text != "from stdin" {
		t.Errorf("unexpected document %+v", doc)
	}

	cfg := testInputConfig()
	cfg.MaxBytes = 4
	small := NewLoader(cfg)
	small.stdin = strings.NewReader("too long for the limit")
	if _, err := small.Load(context.Background(), StdinSource); err == nil {
		t.Error("expected error when stdin exceeds the limit")
	}
}

func TestLoader_URL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt":
			http.NotFound(w, r)
		case "/page":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = fmt.Fprint(w, "<html><body><h1>Laksa</h1><style>p{}</style><p>laksa soup</p></body></html>")
		case "/plain":
			w.Header().Set("Content-Type", "text/plain")
			_, _ = fmt.Fprint(w, "<b>not html</b>")
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	loader := NewLoader(testInputConfig())
	ctx := context.Background()

	doc, err := loader.Load(ctx, server.URL+"/page")
	if err != nil {
		t.Fatalf("Load page: %v", err)
	}
	if doc.Kind != SourceURL || !doc.HTML || doc.Text != "Laksa laksa soup" {
		t.Errorf("unexpected html document %+v", doc)
	}

	doc, err = loader.Load(ctx, server.URL+"/plain")
	if err != nil {
		t.Fatalf("Load plain: %v", err)
	}
	if doc.HTML || doc.Text != "<b>not html</b>" {
		t.Errorf("plain text should be kept verbatim, got %+v", doc)
	}

	_, err = loader.Load(ctx, server.URL+"/missing")
	var inputErr *model.InputError
	if !errors.As(err, &inputErr) {
		t.Errorf("expected input error for 404, got %v", err)
	}
}

func TestIsURL(t *testing.T) {
	tests := map[string]bool{
		"https://example.com": true,
		"HTTP://example.com":  true,
		"notes.txt":           false,
		"-":                   false,
		"ftp://example.com":   false,
	}
	for in, want := range tests {
		if got := IsURL(in); got != want {
			t.Errorf("IsURL(%q) = %v, want %v", in, got, want)
		}
	}
}
