package model

import "time"

// Report summarizes a single tokenize/render run.
// It is written by `render --report` and printed by `count --json`.
type Report struct {
	Source        string         `json:"source"`            // File path, URL, "-" or "text"
	Output        string         `json:"output,omitempty"`  // Image path (empty for count)
	GeneratedAt   time.Time      `json:"generated_at"`      // When the run finished
	DistinctTerms int            `json:"distinct_terms"`    // Number of keys in the mapping
	TotalTokens   int            `json:"total_tokens"`      // Sum of all counts
	Terms         []WeightedTerm `json:"terms"`             // Weighted terms, heaviest first
	Elapsed       string         `json:"elapsed,omitempty"` // Wall time of the run
}

// NewReport builds a report from a frequency mapping. top limits the number
// of terms included (<= 0 keeps all of them).
func NewReport(source, output string, freq Frequencies, top int) *Report {
	return &Report{
		Source:        source,
		Output:        output,
		GeneratedAt:   time.Now().UTC(),
		DistinctTerms: len(freq),
		TotalTokens:   freq.Total(),
		Terms:         freq.Top(top),
	}
}
