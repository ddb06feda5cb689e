package snapshot_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darcyvale/vitrine/internal/catalog"
	"github.com/darcyvale/vitrine/internal/client"
	"github.com/darcyvale/vitrine/internal/pricing"
	"github.com/darcyvale/vitrine/internal/sale"
	"github.com/darcyvale/vitrine/internal/snapshot"
)

func TestFileStore_LoadMissingFile(t *testing.T) {
	fs := snapshot.NewFileStore(filepath.Join(t.TempDir(), "missing.json"))

	snap, err := fs.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, snap.Empty())
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "vitrine.json")
	fs := snapshot.NewFileStore(path)

	clientID := uuid.New()
	snap := &snapshot.Snapshot{
		Sales: []*sale.Sale{{
			ID:       uuid.New(),
			Ref:      "ROL-001",
			Model:    "Rolex Submariner",
			Net:      25_000_000,
			Tax:      4_750_000,
			Total:    29_750_000,
			Debt:     29_750_000,
			Status:   pricing.StatusUnpaid,
			ClientID: clientID,
		}},
		Clients:    []*client.Client{{ID: clientID, Name: "Juan Pérez"}},
		Categories: catalog.SeedCategories(),
	}

	require.NoError(t, fs.Save(context.Background(), snap))

	got, err := fs.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, got.Sales, 1)
	assert.Equal(t, snap.Sales[0].ID, got.Sales[0].ID)
	assert.Equal(t, int64(29_750_000), got.Sales[0].Total)
	require.Len(t, got.Clients, 1)
	assert.Equal(t, "Juan Pérez", got.Clients[0].Name)
	assert.Len(t, got.Categories, 3)
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vitrine.json")
	fs := snapshot.NewFileStore(path)

	ctx := context.Background()
	require.NoError(t, fs.Save(ctx, &snapshot.Snapshot{Clients: []*client.Client{{ID: uuid.New(), Name: "A"}}}))
	require.NoError(t, fs.Save(ctx, &snapshot.Snapshot{Clients: []*client.Client{{ID: uuid.New(), Name: "B"}}}))

	got, err := fs.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Clients, 1)
	assert.Equal(t, "B", got.Clients[0].Name)

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
