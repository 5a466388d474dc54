package gateway

import (
	"context"
	"strings"
	"time"

	"github.com/synapse-edit/synapse/internal/lang"
	"github.com/synapse-edit/synapse/internal/model"
	"github.com/synapse-edit/synapse/internal/store"
)

// CachedSource wraps a SynonymSource with the SQLite cache. Cache errors
// degrade to a direct lookup; they never surface to the user.
type CachedSource struct {
	src   SynonymSource
	store *store.Store
	ttl   time.Duration
}

// NewCachedSource returns a caching wrapper around src.
func NewCachedSource(src SynonymSource, st *store.Store, ttl time.Duration) *CachedSource {
	return &CachedSource{src: src, store: st, ttl: ttl}
}

// Lookup serves from the cache when possible and stores fresh results.
func (c *CachedSource) Lookup(ctx context.Context, req model.LookupRequest) ([]model.Synonym, error) {
	if c.store == nil || c.ttl <= 0 {
		return c.src.Lookup(ctx, req)
	}
	word := strings.ToLower(strings.TrimSpace(req.Word))
	hint := req.Lang
	if hint == "" {
		hint = lang.Detect(word)
	}

	if cached, hit, err := c.store.Get(ctx, word, hint, c.ttl); err == nil && hit {
		return cached, nil
	}

	synonyms, err := c.src.Lookup(ctx, req)
	if err != nil {
		return nil, err
	}
	// Cache write failures are invisible; the next lookup goes remote again.
	_ = c.store.Put(ctx, word, hint, synonyms)
	return synonyms, nil
}
