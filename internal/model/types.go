// Package model defines shared data structures.
package model

import "time"

// Config defines editor settings.
type Config struct {
	Lang           string
	SynonymsURL    string
	ExportURL      string
	DictionaryPath string
	TimeoutSeconds int
	CacheTTLHours  int
}

// TextMetrics summarizes lexical statistics for a document.
type TextMetrics struct {
	WordCount        int
	UniqueWords      int
	AvgWordLength    float64
	RepetitionScore  int
	RareWordsDensity int
}

// Synonym is a single lookup candidate, in display order.
type Synonym struct {
	Word    string `json:"word"`
	Context string `json:"context"`
	Source  string `json:"source,omitempty"`
}

// Replacement records one substitution. Records are never mutated.
type Replacement struct {
	ID          string
	Original    string
	Replacement string
	Timestamp   time.Time
}

// Point is a screen position in cells.
type Point struct {
	X int
	Y int
}

// Rect is the bounding box of a selection on screen.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// SelectionState holds the active selection, if any.
type SelectionState struct {
	Word   string
	Anchor Point
}

// LookupRequest asks a synonym source for candidates.
type LookupRequest struct {
	Word    string
	Context string
	Lang    string
}

// ExportRequest asks the export gateway for a rendered document.
type ExportRequest struct {
	Text         string
	Replacements []Replacement
	Format       string
}

// ExportFile is a decoded export payload ready to save.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
