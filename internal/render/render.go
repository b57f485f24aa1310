// Package render draws weighted terms as a word-cloud image.
//
// Renderer is the narrow interface the pipeline depends on; CloudRenderer
// is the bundled layout engine. Output files are written to a temporary
// file in the destination directory and renamed into place, so a failed
// render never leaves a partial image behind.
package render

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/wordcloud/internal/model"
)

// Renderer lays out weighted terms and persists the image at output
type Renderer interface {
	Render(terms []model.WeightedTerm, output string) error
}

// Format is an image encoding chosen from the output path
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatGIF  Format = "gif"
)

// FormatFromPath picks the encoding from the file extension.
// Paths without an extension default to PNG.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case "", ".png":
		return FormatPNG, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".gif":
		return FormatGIF, nil
	default:
		return "", fmt.Errorf("unsupported image format %q", ext)
	}
}

// Extension returns the canonical file extension for the format
func (f Format) Extension() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatGIF:
		return ".gif"
	default:
		return ".png"
	}
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
	case FormatGIF:
		return gif.Encode(w, img, nil)
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
}

// WriteImage encodes img and atomically moves it to path
func WriteImage(img image.Image, path string, format Format) (err error) {
	if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
		return fmt.Errorf("output %s is a directory", path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".wordcloud-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if err := Encode(tmp, img, format); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("encode %s: %w", format, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("move image into place: %w", err)
	}
	return nil
}
