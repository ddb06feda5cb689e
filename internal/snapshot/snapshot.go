// Package snapshot persists the whole working set as a single serialized
// blob. The store writes through on every mutation and loads once at
// startup; there is no versioning or migration logic.
package snapshot

import (
	"context"

	"github.com/darcyvale/vitrine/internal/catalog"
	"github.com/darcyvale/vitrine/internal/client"
	"github.com/darcyvale/vitrine/internal/sale"
)

// Snapshot is the serialized application state.
type Snapshot struct {
	Sales      []*sale.Sale        `json:"sales"`
	Clients    []*client.Client    `json:"clients"`
	Categories []*catalog.Category `json:"categories"`
	Models     []*catalog.Model    `json:"models"`
}

// Empty reports whether the snapshot holds no state at all, which makes
// the store seed its category set.
func (s *Snapshot) Empty() bool {
	return len(s.Sales) == 0 && len(s.Clients) == 0 && len(s.Categories) == 0 && len(s.Models) == 0
}

// Store is a single key-value slot holding the snapshot blob.
type Store interface {
	// Load returns the persisted snapshot, or an empty one when nothing
	// has been saved yet.
	Load(ctx context.Context) (*Snapshot, error)

	// Save overwrites the slot with the given snapshot.
	Save(ctx context.Context, snap *Snapshot) error
}
