// Package metrics computes lexical statistics for a document.
package metrics

import (
	"math"
	"strings"
	"unicode"

	"github.com/synapse-edit/synapse/internal/model"
)

const rareWordLength = 7

// Compute derives metrics from raw text in a single pass over a frequency map.
// The second return value is false when the text holds no tokens, in which case
// the metrics are considered absent rather than zero.
func Compute(text string) (model.TextMetrics, bool) {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return model.TextMetrics{}, false
	}

	freq := make(map[string]int, len(tokens))
	totalLen := 0
	rare := 0
	for _, tok := range tokens {
		freq[tok]++
		length := len([]rune(tok))
		totalLen += length
		if length > rareWordLength {
			rare++
		}
	}

	repeated := 0
	for _, n := range freq {
		if n > 1 {
			repeated++
		}
	}

	m := model.TextMetrics{
		WordCount:   len(tokens),
		UniqueWords: len(freq),
	}
	m.AvgWordLength = math.Round(float64(totalLen)/float64(len(tokens))*10) / 10
	if m.UniqueWords > 0 {
		m.RepetitionScore = int(math.Round(float64(repeated) / float64(m.UniqueWords) * 100))
	}
	if m.WordCount > 0 {
		m.RareWordsDensity = int(math.Round(float64(rare) / float64(m.WordCount) * 100))
	}
	return m, true
}

// Tokenize extracts maximal runs of word characters, case-folded to lowercase.
func Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder
	for _, r := range text {
		if isWordChar(r) {
			current.WriteRune(r)
			continue
		}
		if current.Len() > 0 {
			tokens = append(tokens, strings.ToLower(current.String()))
			current.Reset()
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, strings.ToLower(current.String()))
	}
	return tokens
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
