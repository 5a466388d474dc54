package gateway

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/synapse-edit/synapse/internal/model"
)

// Dictionary is the offline deployment mode: a static lookup table keyed by
// lowercase word, loaded from a TOML file. Its responses have the same shape
// as the remote gateway's, only the data source differs.
type Dictionary struct {
	entries map[string][]model.Synonym
}

type dictionaryFile struct {
	Words map[string][]dictionaryEntry `toml:"words"`
}

type dictionaryEntry struct {
	Word    string `toml:"word"`
	Context string `toml:"context"`
}

// LoadDictionary reads the dictionary file. A missing file yields an empty
// dictionary, not an error, so the editor still runs without one configured.
func LoadDictionary(path string) (*Dictionary, error) {
	dict := &Dictionary{entries: map[string][]model.Synonym{}}
	if path == "" {
		return dict, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return dict, nil
		}
		return nil, fmt.Errorf("failed to stat dictionary: %w", err)
	}
	var file dictionaryFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("failed to decode dictionary: %w", err)
	}
	for word, entries := range file.Words {
		key := strings.ToLower(strings.TrimSpace(word))
		if key == "" {
			continue
		}
		synonyms := make([]model.Synonym, 0, len(entries))
		for _, entry := range entries {
			if entry.Word == "" {
				continue
			}
			synonyms = append(synonyms, model.Synonym{
				Word:    entry.Word,
				Context: entry.Context,
				Source:  "dictionary",
			})
		}
		dict.entries[key] = synonyms
	}
	return dict, nil
}

// Lookup returns the fixed candidate list for the word, or an empty list for
// unknown words. It never fails.
func (d *Dictionary) Lookup(_ context.Context, req model.LookupRequest) ([]model.Synonym, error) {
	word := strings.ToLower(strings.TrimSpace(req.Word))
	if word == "" {
		return nil, fmt.Errorf("word is required")
	}
	return d.entries[word], nil
}
