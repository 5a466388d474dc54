package gateway

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/synapse-edit/synapse/internal/model"
	"github.com/synapse-edit/synapse/internal/store"
)

type countingSource struct {
	calls    int
	synonyms []model.Synonym
}

func (s *countingSource) Lookup(_ context.Context, _ model.LookupRequest) ([]model.Synonym, error) {
	s.calls++
	return s.synonyms, nil
}

func TestCachedSourceServesSecondLookupLocally(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "synapse.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			t.Errorf("failed to close store: %v", cerr)
		}
	}()

	src := &countingSource{synonyms: []model.Synonym{{Word: "quick"}}}
	cached := NewCachedSource(src, st, time.Hour)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		synonyms, err := cached.Lookup(ctx, model.LookupRequest{Word: "Fast"})
		if err != nil {
			t.Fatalf("Lookup failed: %v", err)
		}
		if len(synonyms) != 1 || synonyms[0].Word != "quick" {
			t.Fatalf("unexpected synonyms: %+v", synonyms)
		}
	}
	if src.calls != 1 {
		t.Fatalf("expected 1 upstream call, got %d", src.calls)
	}
}

func TestCachedSourceDisabledTTL(t *testing.T) {
	src := &countingSource{}
	cached := NewCachedSource(src, nil, 0)
	if _, err := cached.Lookup(context.Background(), model.LookupRequest{Word: "fast"}); err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if src.calls != 1 {
		t.Fatalf("expected a direct upstream call, got %d", src.calls)
	}
}
