package wordcloud

import (
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveFromFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.txt")
	output := filepath.Join(dir, "cloud.png")

	if err := os.WriteFile(input, []byte("cat cat cat dog café café"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := SaveFromFile(context.Background(), input, output); err != nil {
		t.Fatalf("SaveFromFile failed: %v", err)
	}

	f, err := os.Open(output)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	defer func() { _ = f.Close() }()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 1024 || b.Dy() != 768 {
		t.Errorf("expected 1024x768, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestSave(t *testing.T) {
	output := filepath.Join(t.TempDir(), "cloud.jpg")

	if err := Save(context.Background(), "Word word", output); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestSave_EmptyText(t *testing.T) {
	output := filepath.Join(t.TempDir(), "blank.png")

	if err := Save(context.Background(), "", output); err != nil {
		t.Fatalf("Save of empty text failed: %v", err)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("blank image not written: %v", err)
	}
}

func TestSaveFromFile_MissingInput(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "cloud.png")

	err := SaveFromFile(context.Background(), filepath.Join(dir, "missing.txt"), output)

	var inputErr *InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected *InputError, got %T: %v", err, err)
	}
	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Error("no output should be written when the input is missing")
	}
}

func TestSave_UnwritableOutput(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "missing-dir", "cloud.png")

	err := Save(context.Background(), "cat cat dog", output)

	var renderErr *RenderError
	if !errors.As(err, &renderErr) {
		t.Fatalf("expected *RenderError, got %T: %v", err, err)
	}
	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if len(entries) != 0 {
		t.Errorf("expected no files left behind, found %d", len(entries))
	}
}
