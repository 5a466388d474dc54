// Package gateway holds the external collaborators: the synonym lookup and
// document export services, the offline dictionary, and the cache wrapper.
// The core treats all of them as black boxes behind small interfaces.
package gateway

import (
	"context"

	"github.com/synapse-edit/synapse/internal/model"
)

// SynonymSource returns candidate words for a lookup request, in display
// order. An empty list is a valid answer; an error means the source failed
// and the caller should surface a non-fatal notification.
type SynonymSource interface {
	Lookup(ctx context.Context, req model.LookupRequest) ([]model.Synonym, error)
}
