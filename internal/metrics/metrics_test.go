package metrics

import "testing"

func TestComputeEmptyIsAbsent(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t  \n"} {
		if _, ok := Compute(text); ok {
			t.Fatalf("expected absent metrics for %q", text)
		}
	}
}

func TestComputeRepeatedWord(t *testing.T) {
	m, ok := Compute("the the the")
	if !ok {
		t.Fatalf("expected metrics to be present")
	}
	if m.WordCount != 3 {
		t.Fatalf("expected word count 3, got %d", m.WordCount)
	}
	if m.UniqueWords != 1 {
		t.Fatalf("expected 1 unique word, got %d", m.UniqueWords)
	}
	if m.RepetitionScore != 100 {
		t.Fatalf("expected repetition 100, got %d", m.RepetitionScore)
	}
	if m.AvgWordLength != 3.0 {
		t.Fatalf("expected avg length 3.0, got %v", m.AvgWordLength)
	}
	if m.RareWordsDensity != 0 {
		t.Fatalf("expected rare density 0, got %d", m.RareWordsDensity)
	}
}

func TestComputeRareWords(t *testing.T) {
	m, ok := Compute("hello wonderful extraordinary")
	if !ok {
		t.Fatalf("expected metrics to be present")
	}
	if m.WordCount != 3 || m.UniqueWords != 3 {
		t.Fatalf("unexpected counts: %+v", m)
	}
	if m.RepetitionScore != 0 {
		t.Fatalf("expected repetition 0, got %d", m.RepetitionScore)
	}
	if m.RareWordsDensity != 67 {
		t.Fatalf("expected rare density 67, got %d", m.RareWordsDensity)
	}
}

func TestComputeUniqueNeverExceedsTotal(t *testing.T) {
	texts := []string{
		"one",
		"a b c a b a",
		"Привет, мир! Привет.",
		"snake_case words and 42 numbers 42",
		"punctuation... only; connects, words",
	}
	for _, text := range texts {
		m, ok := Compute(text)
		if !ok {
			t.Fatalf("expected metrics for %q", text)
		}
		if m.UniqueWords > m.WordCount {
			t.Fatalf("unique %d exceeds total %d for %q", m.UniqueWords, m.WordCount, text)
		}
	}
}

func TestTokenizeCaseFoldAndBoundaries(t *testing.T) {
	tokens := Tokenize("Hello, WORLD! don't stop_now 2nd")
	expected := []string{"hello", "world", "don", "t", "stop_now", "2nd"}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %v", len(expected), tokens)
	}
	for i, tok := range expected {
		if tokens[i] != tok {
			t.Fatalf("expected %q at index %d, got %q", tok, i, tokens[i])
		}
	}
}

func TestComputeAvgLengthRounding(t *testing.T) {
	// 4 + 5 + 2 = 11 chars over 3 tokens = 3.666... -> 3.7
	m, ok := Compute("word fives at")
	if !ok {
		t.Fatalf("expected metrics to be present")
	}
	if m.AvgWordLength != 3.7 {
		t.Fatalf("expected avg length 3.7, got %v", m.AvgWordLength)
	}
}
