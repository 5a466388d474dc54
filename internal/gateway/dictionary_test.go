package gateway

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/synapse-edit/synapse/internal/model"
)

const testDictionary = `[[words.fast]]
word = "quick"
context = "general synonym"

[[words.fast]]
word = "rapid"
context = "moving with speed"

[[words.Happy]]
word = "glad"
context = "feeling pleasure"
`

func writeTestDictionary(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dictionary.toml")
	if err := os.WriteFile(path, []byte(testDictionary), 0o644); err != nil {
		t.Fatalf("failed to write dictionary: %v", err)
	}
	return path
}

func TestDictionaryLookup(t *testing.T) {
	dict, err := LoadDictionary(writeTestDictionary(t))
	if err != nil {
		t.Fatalf("LoadDictionary failed: %v", err)
	}

	synonyms, err := dict.Lookup(context.Background(), model.LookupRequest{Word: "FAST"})
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if len(synonyms) != 2 {
		t.Fatalf("expected 2 synonyms, got %+v", synonyms)
	}
	if synonyms[0].Word != "quick" || synonyms[0].Source != "dictionary" {
		t.Fatalf("unexpected first synonym: %+v", synonyms[0])
	}
}

func TestDictionaryKeysAreCaseFolded(t *testing.T) {
	dict, err := LoadDictionary(writeTestDictionary(t))
	if err != nil {
		t.Fatalf("LoadDictionary failed: %v", err)
	}
	synonyms, err := dict.Lookup(context.Background(), model.LookupRequest{Word: "happy"})
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if len(synonyms) != 1 || synonyms[0].Word != "glad" {
		t.Fatalf("unexpected synonyms: %+v", synonyms)
	}
}

func TestDictionaryUnknownWord(t *testing.T) {
	dict, err := LoadDictionary(writeTestDictionary(t))
	if err != nil {
		t.Fatalf("LoadDictionary failed: %v", err)
	}
	synonyms, err := dict.Lookup(context.Background(), model.LookupRequest{Word: "qwzx"})
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if len(synonyms) != 0 {
		t.Fatalf("expected no synonyms, got %+v", synonyms)
	}
}

func TestLoadDictionaryMissingFile(t *testing.T) {
	dict, err := LoadDictionary(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("expected a missing file to load empty, got %v", err)
	}
	synonyms, err := dict.Lookup(context.Background(), model.LookupRequest{Word: "fast"})
	if err != nil || len(synonyms) != 0 {
		t.Fatalf("expected an empty dictionary, got %+v (err=%v)", synonyms, err)
	}
}
