// Package selection validates text selections and anchors the synonym popup.
package selection

import (
	"regexp"
	"strings"

	"github.com/synapse-edit/synapse/internal/model"
)

// Selections must be a single run of Latin or Cyrillic letters.
var wordPattern = regexp.MustCompile(`^[a-zA-Zа-яёА-ЯЁ]+$`)

// The popup sits one row above the selection, clamped to the screen edge.
const anchorLift = 1

// Capture accepts a raw selection and its bounding box. It returns the
// normalized selection state, or false for anything that is not a single
// letter-only word (collapsed, punctuation, digits, multi-token spans).
func Capture(raw string, rect model.Rect) (model.SelectionState, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || !wordPattern.MatchString(trimmed) {
		return model.SelectionState{}, false
	}
	anchor := model.Point{
		X: rect.X + rect.Width/2,
		Y: rect.Y - anchorLift,
	}
	if anchor.Y < 0 {
		anchor.Y = 0
	}
	return model.SelectionState{
		Word:   strings.ToLower(trimmed),
		Anchor: anchor,
	}, true
}

// WordAt returns the letter run covering the rune offset in text, with its
// start and end rune positions. The offset may sit just past the word's end,
// matching a cursor resting after the last typed letter.
func WordAt(text string, offset int) (word string, start, end int, ok bool) {
	runes := []rune(text)
	if offset < 0 || offset > len(runes) {
		return "", 0, 0, false
	}
	pos := offset
	if pos == len(runes) || !isSelectable(runes[pos]) {
		if pos == 0 || !isSelectable(runes[pos-1]) {
			return "", 0, 0, false
		}
		pos--
	}
	start = pos
	for start > 0 && isSelectable(runes[start-1]) {
		start--
	}
	end = pos + 1
	for end < len(runes) && isSelectable(runes[end]) {
		end++
	}
	return string(runes[start:end]), start, end, true
}

func isSelectable(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r >= 'а' && r <= 'я') || (r >= 'А' && r <= 'Я') || r == 'ё' || r == 'Ё'
}
