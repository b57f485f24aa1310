// Package tokenize turns raw text into a term frequency mapping.
//
// A term is a maximal run of word characters. Word characters are Unicode
// letters, letter numbers, combining marks, decimal digits, connector
// punctuation (which includes the underscore), the zero-width joiners and
// the alphabetic symbols (circled, squared and negative squared Latin
// letters).
// Everything else separates terms. Terms are taken verbatim: no case
// folding, stemming or stop-word removal.
package tokenize

import (
	"regexp"

	"github.com/ppiankov/wordcloud/internal/model"
)

// wordPattern is compiled once and shared; regexp.Regexp is safe for
// concurrent use.
var wordPattern = regexp.MustCompile(`[\p{L}\p{Nl}\p{M}\p{Nd}\p{Pc}\x{200C}\x{200D}` +
	`\x{24B6}-\x{24E9}\x{1F130}-\x{1F149}\x{1F150}-\x{1F169}\x{1F170}-\x{1F189}]+`)

// Terms returns every word-character run in text, in order of appearance
func Terms(text string) []model.Term {
	matches := wordPattern.FindAllString(text, -1)
	terms := make([]model.Term, len(matches))
	for i, m := range matches {
		terms[i] = model.Term(m)
	}
	return terms
}

// Count builds the frequency mapping for text.
// Empty text, or text without word characters, yields an empty mapping.
func Count(text string) model.Frequencies {
	freq := make(model.Frequencies)
	for _, idx := range wordPattern.FindAllStringIndex(text, -1) {
		freq.Add(model.Term(text[idx[0]:idx[1]]))
	}
	return freq
}
