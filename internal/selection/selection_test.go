package selection

import (
	"testing"

	"github.com/synapse-edit/synapse/internal/model"
)

func TestCaptureNormalizesWord(t *testing.T) {
	state, ok := Capture("  Hello ", model.Rect{X: 10, Y: 5, Width: 6, Height: 1})
	if !ok {
		t.Fatalf("expected selection to be accepted")
	}
	if state.Word != "hello" {
		t.Fatalf("expected lowercase key, got %q", state.Word)
	}
	if state.Anchor.X != 13 || state.Anchor.Y != 4 {
		t.Fatalf("unexpected anchor: %+v", state.Anchor)
	}
}

func TestCaptureCyrillic(t *testing.T) {
	state, ok := Capture("Слово", model.Rect{X: 0, Y: 0, Width: 5, Height: 1})
	if !ok {
		t.Fatalf("expected cyrillic selection to be accepted")
	}
	if state.Word != "слово" {
		t.Fatalf("expected lowercase key, got %q", state.Word)
	}
	if state.Anchor.Y != 0 {
		t.Fatalf("expected anchor clamped to 0, got %d", state.Anchor.Y)
	}
}

func TestCaptureRejectsInvalidShapes(t *testing.T) {
	invalid := []string{"", "   ", "123", "hello world", "it's", "co-op", "a1"}
	for _, raw := range invalid {
		if _, ok := Capture(raw, model.Rect{}); ok {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}

func TestWordAt(t *testing.T) {
	text := "the quick, fox"
	word, start, end, ok := WordAt(text, 5)
	if !ok || word != "quick" {
		t.Fatalf("expected quick, got %q (ok=%v)", word, ok)
	}
	if start != 4 || end != 9 {
		t.Fatalf("unexpected span: [%d, %d)", start, end)
	}
}

func TestWordAtCursorPastEnd(t *testing.T) {
	// Cursor immediately after the last letter still selects the word.
	word, _, _, ok := WordAt("fox", 3)
	if !ok || word != "fox" {
		t.Fatalf("expected fox, got %q (ok=%v)", word, ok)
	}
}

func TestWordAtGap(t *testing.T) {
	if _, _, _, ok := WordAt("a  b", 2); ok {
		t.Fatalf("expected no word in the gap")
	}
	if _, _, _, ok := WordAt("12 34", 1); ok {
		t.Fatalf("expected digits not to be selectable")
	}
	if _, _, _, ok := WordAt("", 0); ok {
		t.Fatalf("expected no word in empty text")
	}
}
