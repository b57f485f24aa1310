package model

import "sort"

// Term is one distinct word-like unit extracted from text.
// Terms compare by exact string equality; no case folding is applied.
type Term string

// Frequencies maps each term to the number of times it occurs.
// Every count is at least 1 and absent terms have no entry.
type Frequencies map[Term]int

// WeightedTerm is a term paired with its layout weight
type WeightedTerm struct {
	Term   Term    `json:"term"`
	Weight float64 `json:"weight"`
}

// Add records one more occurrence of term
func (f Frequencies) Add(term Term) {
	f[term]++
}

// Total returns the sum of all counts, i.e. the number of tokens seen
func (f Frequencies) Total() int {
	total := 0
	for _, count := range f {
		total += count
	}
	return total
}

// Clone returns an independent copy of the mapping
func (f Frequencies) Clone() Frequencies {
	out := make(Frequencies, len(f))
	for term, count := range f {
		out[term] = count
	}
	return out
}

// Weighted converts the mapping into a weighted term list.
// Each weight is the integer count widened to float64. Order is unspecified.
func (f Frequencies) Weighted() []WeightedTerm {
	terms := make([]WeightedTerm, 0, len(f))
	for term, count := range f {
		terms = append(terms, WeightedTerm{Term: term, Weight: float64(count)})
	}
	return terms
}

// Top returns the n heaviest terms, ordered by weight descending and then
// by term. n <= 0 returns every term.
func (f Frequencies) Top(n int) []WeightedTerm {
	terms := f.Weighted()
	SortByWeight(terms)

	if n > 0 && n < len(terms) {
		terms = terms[:n]
	}
	return terms
}

// SortByWeight orders terms by weight descending, breaking ties by term
func SortByWeight(terms []WeightedTerm) {
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Weight != terms[j].Weight {
			return terms[i].Weight > terms[j].Weight
		}
		return terms[i].Term < terms[j].Term
	})
}
