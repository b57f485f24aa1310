package model

import (
	"errors"
	"io/fs"
	"testing"
)

func TestFrequencies_AddAndTotal(t *testing.T) {
	freq := make(Frequencies)
	for _, term := range []Term{"cat", "cat", "cat", "dog"} {
		freq.Add(term)
	}

	if freq["cat"] != 3 || freq["dog"] != 1 {
		t.Errorf("unexpected counts %v", freq)
	}
	if freq.Total() != 4 {
		t.Errorf("expected total 4, got %d", freq.Total())
	}
}

func TestFrequencies_Clone(t *testing.T) {
	freq := Frequencies{"a": 1}
	clone := freq.Clone()
	clone["a"] = 5
	clone["b"] = 1

	if freq["a"] != 1 || len(freq) != 1 {
		t.Errorf("clone shares state with original: %v", freq)
	}
}

func TestFrequencies_Weighted(t *testing.T) {
	freq := Frequencies{"Word": 1, "word": 2}
	terms := freq.Weighted()

	if len(terms) != 2 {
		t.Fatalf("expected 2 terms, got %d", len(terms))
	}
	for _, wt := range terms {
		if wt.Weight != float64(freq[wt.Term]) {
			t.Errorf("%s: weight %v does not match count %d", wt.Term, wt.Weight, freq[wt.Term])
		}
	}

	if got := (Frequencies{}).Weighted(); len(got) != 0 {
		t.Errorf("expected empty list, got %v", got)
	}
}

func TestFrequencies_Top(t *testing.T) {
	freq := Frequencies{"b": 2, "a": 2, "c": 5, "d": 1}

	top := freq.Top(3)
	want := []Term{"c", "a", "b"}
	if len(top) != len(want) {
		t.Fatalf("expected %d terms, got %d", len(want), len(top))
	}
	for i := range want {
		if top[i].Term != want[i] {
			t.Errorf("position %d: got %s, want %s", i, top[i].Term, want[i])
		}
	}

	if all := freq.Top(0); len(all) != 4 {
		t.Errorf("Top(0) should return all terms, got %d", len(all))
	}
	if all := freq.Top(10); len(all) != 4 {
		t.Errorf("Top(10) should return all terms, got %d", len(all))
	}
}

func TestNewReport(t *testing.T) {
	report := NewReport("input.txt", "out.png", Frequencies{"cat": 3, "dog": 1}, 1)

	if report.DistinctTerms != 2 || report.TotalTokens != 4 {
		t.Errorf("expected 2 terms / 4 tokens, got %d / %d", report.DistinctTerms, report.TotalTokens)
	}
	if len(report.Terms) != 1 || report.Terms[0].Term != "cat" {
		t.Errorf("expected only cat, got %v", report.Terms)
	}
	if report.GeneratedAt.IsZero() {
		t.Error("expected GeneratedAt to be set")
	}
}

func TestErrors_Unwrap(t *testing.T) {
	inputErr := &InputError{Source: "a.txt", Err: fs.ErrNotExist}
	if !errors.Is(inputErr, fs.ErrNotExist) {
		t.Error("InputError should unwrap to its cause")
	}
	if inputErr.Error() != "input a.txt: file does not exist" {
		t.Errorf("unexpected message %q", inputErr.Error())
	}

	renderErr := &RenderError{Output: "a.png", Err: fs.ErrPermission}
	if !errors.Is(renderErr, fs.ErrPermission) {
		t.Error("RenderError should unwrap to its cause")
	}

	var target *RenderError
	if errors.As(inputErr, &target) {
		t.Error("InputError must not match RenderError")
	}
}
