package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/wordcloud/internal/extract"
	"github.com/ppiankov/wordcloud/internal/model"
)

// StdinSource is the source name that reads from standard input
const StdinSource = "-"

// SourceKind identifies where a document came from
type SourceKind string

const (
	SourceFile  SourceKind = "file"
	SourceStdin SourceKind = "stdin"
	SourceURL   SourceKind = "url"
	SourceText  SourceKind = "text"
)

// Document is loaded source text ready for tokenization
type Document struct {
	Source string
	Kind   SourceKind
	Text   string
	HTML   bool // text was extracted from HTML
}

// Loader resolves a source name into text
type Loader struct {
	fetcher  *Fetcher
	stdin    io.Reader
	maxBytes int64
}

// NewLoader creates a loader from the input configuration
func NewLoader(cfg model.InputConfig) *Loader {
	return &Loader{
		fetcher:  NewFetcher(cfg),
		stdin:    os.Stdin,
		maxBytes: cfg.MaxBytes,
	}
}

// IsURL reports whether source should be fetched over HTTP
func IsURL(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Load reads source in full. "-" reads stdin, http(s) URLs are fetched and
// anything else is a file path. All failures are *model.InputError.
func (l *Loader) Load(ctx context.Context, source string) (*Document, error) {
	doc, err := l.load(ctx, source)
	if err != nil {
		return nil, &model.InputError{Source: source, Err: err}
	}
	if !utf8.ValidString(doc.Text) {
		return nil, &model.InputError{Source: source, Err: errors.New("invalid UTF-8")}
	}
	return doc, nil
}

func (l *Loader) load(ctx context.Context, source string) (*Document, error) {
	switch {
	case source == "":
		return nil, errors.New("no input source given")
	case source == StdinSource:
		return l.loadStdin()
	case IsURL(source):
		return l.loadURL(ctx, source)
	default:
		return l.loadFile(source)
	}
}

func (l *Loader) loadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc := &Document{Source: path, Kind: SourceFile, Text: string(data)}
	if extract.IsHTMLPath(path) {
		if err := doc.stripHTML(); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func (l *Loader) loadStdin() (*Document, error) {
	data, err := io.ReadAll(io.LimitReader(l.stdin, l.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	if int64(len(data)) > l.maxBytes {
		return nil, fmt.Errorf("stdin exceeds %d bytes", l.maxBytes)
	}
	return &Document{Source: StdinSource, Kind: SourceStdin, Text: string(data)}, nil
}

func (l *Loader) loadURL(ctx context.Context, rawURL string) (*Document, error) {
	result, err := l.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if result.Truncated {
		return nil, fmt.Errorf("response exceeds %d bytes", l.maxBytes)
	}

	doc := &Document{Source: rawURL, Kind: SourceURL, Text: string(result.Body)}
	if extract.IsHTMLContentType(result.ContentType) {
		if err := doc.stripHTML(); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func (d *Document) stripHTML() error {
	if !utf8.ValidString(d.Text) {
		return errors.New("invalid UTF-8")
	}
	text, err := extract.VisibleText(d.Text)
	if err != nil {
		return err
	}
	d.Text = text
	d.HTML = true
	return nil
}
