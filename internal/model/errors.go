package model

import "fmt"

// InputError reports that the source text could not be obtained:
// a missing or unreadable file, invalid UTF-8, or a refused fetch.
type InputError struct {
	Source string
	Err    error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input %s: %v", e.Source, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// RenderError reports that the renderer could not produce or persist the image
type RenderError struct {
	Output string
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Output, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
