// Package replace performs whole-word synonym substitution and produces
// audit records for each substitution.
package replace

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/synapse-edit/synapse/internal/model"
)

// Engine substitutes words in a document.
type Engine struct {
	now func() time.Time
}

// New returns an Engine using the wall clock for audit timestamps.
func New() *Engine {
	return &Engine{now: time.Now}
}

// NewWithClock returns an Engine with a custom clock.
func NewWithClock(now func() time.Time) *Engine {
	return &Engine{now: now}
}

// Replace substitutes the first case-insensitive whole-word occurrence of key
// in document with candidate. Only the first occurrence changes even when the
// word repeats. An audit record is produced even when the word is absent from
// the document; the caller decides whether to keep it. An empty key or
// candidate is a no-op and returns false.
func (e *Engine) Replace(document, key, candidate string) (string, model.Replacement, bool) {
	if strings.TrimSpace(key) == "" || candidate == "" {
		return document, model.Replacement{}, false
	}

	record := model.Replacement{
		ID:          uuid.NewString(),
		Original:    strings.ToLower(key),
		Replacement: candidate,
		Timestamp:   e.now(),
	}

	if loc, found := findWholeWord(document, key); found {
		document = document[:loc[0]] + candidate + document[loc[1]:]
	}
	return document, record, true
}

// findWholeWord locates the first case-insensitive occurrence of key bounded
// by non-word characters or string edges on both sides.
func findWholeWord(document, key string) ([]int, bool) {
	pattern, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(key))
	if err != nil {
		return nil, false
	}
	offset := 0
	for {
		loc := pattern.FindStringIndex(document[offset:])
		if loc == nil {
			return nil, false
		}
		start := offset + loc[0]
		end := offset + loc[1]
		if boundedWord(document, start, end) {
			return []int{start, end}, true
		}
		offset = start + 1
	}
}

func boundedWord(document string, start, end int) bool {
	before := rune(0)
	if start > 0 {
		runes := []rune(document[:start])
		before = runes[len(runes)-1]
	}
	after := rune(0)
	if end < len(document) {
		runes := []rune(document[end:])
		after = runes[0]
	}
	return !isWordChar(before) && !isWordChar(after)
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
