// Package wordcloud renders word-cloud images from text.
//
// Text is split into maximal runs of word characters (Unicode letters,
// marks, digits and connector punctuation); each run is a term, counted
// exactly as written. The weighted terms are laid out and written as an
// image whose format follows the output extension (.png, .jpg, .gif).
package wordcloud

import (
	"context"

	"github.com/ppiankov/wordcloud/internal/model"
	"github.com/ppiankov/wordcloud/internal/pipeline"
)

// InputError reports a source that could not be read as text.
type InputError = model.InputError

// RenderError reports an image that could not be produced or written.
type RenderError = model.RenderError

// SaveFromFile renders the text of inputFilePath to outputPath.
// Failures are *InputError or *RenderError; use errors.As to tell them apart.
func SaveFromFile(ctx context.Context, inputFilePath, outputPath string) error {
	p, err := newPipeline(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	_, err = p.Run(ctx, pipeline.Request{Source: inputFilePath, Output: outputPath})
	return err
}

// Save renders text to outputPath.
func Save(ctx context.Context, text, outputPath string) error {
	p, err := newPipeline(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	_, err = p.Run(ctx, pipeline.Request{Text: text, Output: outputPath})
	return err
}

// newPipeline uses the default render settings with no cache or history,
// so library calls leave nothing behind but the image.
func newPipeline(ctx context.Context) (*pipeline.Pipeline, error) {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	cfg.History.Enabled = false
	return pipeline.NewPipeline(ctx, cfg, nil)
}
