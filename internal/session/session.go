// Package session owns all mutable editor state for one editing session.
// Handlers go through the session instead of scattering globals; lookups are
// sequenced so only the latest issued request may publish results.
package session

import (
	"github.com/synapse-edit/synapse/internal/metrics"
	"github.com/synapse-edit/synapse/internal/model"
	"github.com/synapse-edit/synapse/internal/replace"
)

// Session holds the document, metrics, selection, synonym list, and the
// newest-first replacement history for one editing session.
type Session struct {
	engine *replace.Engine

	text       string
	metrics    model.TextMetrics
	hasMetrics bool

	selection    model.SelectionState
	hasSelection bool

	synonyms  []model.Synonym
	loading   bool
	lookupSeq int

	history []model.Replacement
}

// New returns an empty session.
func New() *Session {
	return &Session{engine: replace.New()}
}

// NewWithEngine returns a session using the given replacement engine.
func NewWithEngine(engine *replace.Engine) *Session {
	return &Session{engine: engine}
}

// SetText replaces the document and recomputes metrics.
func (s *Session) SetText(text string) {
	s.text = text
	s.metrics, s.hasMetrics = metrics.Compute(text)
}

// Text returns the current document.
func (s *Session) Text() string {
	return s.text
}

// Metrics returns the current metrics; false when the document has no tokens.
func (s *Session) Metrics() (model.TextMetrics, bool) {
	return s.metrics, s.hasMetrics
}

// Select stores the active selection.
func (s *Session) Select(state model.SelectionState) {
	s.selection = state
	s.hasSelection = true
}

// Selection returns the active selection, if any.
func (s *Session) Selection() (model.SelectionState, bool) {
	return s.selection, s.hasSelection
}

// ClearSelection drops the selection and any synonyms shown for it.
func (s *Session) ClearSelection() {
	s.selection = model.SelectionState{}
	s.hasSelection = false
	s.synonyms = nil
	s.loading = false
}

// BeginLookup marks a lookup in flight and returns its sequence token.
// Results carrying an older token must be discarded.
func (s *Session) BeginLookup() int {
	s.lookupSeq++
	s.loading = true
	s.synonyms = nil
	return s.lookupSeq
}

// CompleteLookup publishes results for the given token. Stale tokens return
// false and leave state untouched.
func (s *Session) CompleteLookup(seq int, synonyms []model.Synonym) bool {
	if seq != s.lookupSeq {
		return false
	}
	s.loading = false
	s.synonyms = synonyms
	return true
}

// FailLookup clears the loading flag and resets the synonym list after a
// failed lookup. Document and history are untouched. Stale tokens return false.
func (s *Session) FailLookup(seq int) bool {
	if seq != s.lookupSeq {
		return false
	}
	s.loading = false
	s.synonyms = nil
	return true
}

// Loading reports whether a lookup is outstanding.
func (s *Session) Loading() bool {
	return s.loading
}

// Synonyms returns the current candidate list in display order.
func (s *Session) Synonyms() []model.Synonym {
	return s.synonyms
}

// ApplyReplacement substitutes the candidate for the selected word, prepends
// the audit record, clears the selection, and recomputes metrics. It returns
// false when no selection is active.
func (s *Session) ApplyReplacement(candidate string) (model.Replacement, bool) {
	if !s.hasSelection {
		return model.Replacement{}, false
	}
	newText, record, ok := s.engine.Replace(s.text, s.selection.Word, candidate)
	if !ok {
		return model.Replacement{}, false
	}
	s.SetText(newText)
	s.history = append([]model.Replacement{record}, s.history...)
	s.ClearSelection()
	return record, true
}

// History returns the replacement log, newest first.
func (s *Session) History() []model.Replacement {
	return s.history
}
