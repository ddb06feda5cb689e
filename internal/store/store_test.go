package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darcyvale/vitrine/internal/catalog"
	"github.com/darcyvale/vitrine/internal/client"
	"github.com/darcyvale/vitrine/internal/pricing"
	"github.com/darcyvale/vitrine/internal/sale"
	"github.com/darcyvale/vitrine/internal/snapshot"
	"github.com/darcyvale/vitrine/internal/store"
)

func newStore(t *testing.T) (*store.Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "vitrine.json")

	s, err := store.New(context.Background(), snapshot.NewFileStore(path))
	require.NoError(t, err)

	return s, path
}

func TestNew_SeedsCategoriesOnEmptySnapshot(t *testing.T) {
	s, _ := newStore(t)

	cats, err := s.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 3)

	watches, err := s.GetCategory(context.Background(), "watches")
	require.NoError(t, err)
	assert.Equal(t, "Watches", watches.Name)

	_, err = s.GetCategory(context.Background(), "vehicles")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestCreateSale_RecomputesDerivedFields(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	// Caller-supplied derived values must not be trusted.
	sl := &sale.Sale{
		Ref:          "ROL-001",
		Model:        "Rolex Submariner",
		Net:          25_000_000,
		Installment1: 10_000_000,
		Installment2: 10_000_000,
		Tax:          1,
		Total:        2,
		Debt:         3,
		SaleAmount:   4,
		Profit:       5,
		Status:       pricing.StatusPaid,
		ClientID:     uuid.New(),
		CategoryID:   "watches",
		Date:         time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.CreateSale(ctx, sl))
	require.NotEqual(t, uuid.Nil, sl.ID)

	got, err := s.GetSale(ctx, sl.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(4_750_000), got.Tax)
	assert.Equal(t, int64(29_750_000), got.Total)
	assert.Equal(t, int64(9_750_000), got.Debt)
	assert.Equal(t, int64(29_750_000), got.SaleAmount)
	assert.Equal(t, int64(4_750_000), got.Profit)
	assert.Equal(t, pricing.StatusPartial, got.Status)
}

func TestUpdateSale_RecomputesOnNetChange(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	sl := &sale.Sale{Ref: "CAR-004", Net: 18_000_000, ClientID: uuid.New(), CategoryID: "watches"}
	require.NoError(t, s.CreateSale(ctx, sl))
	assert.Equal(t, pricing.StatusUnpaid, sl.Status)

	sl.Net = 8_500_000
	sl.Installment1 = 10_115_000
	require.NoError(t, s.UpdateSale(ctx, sl))

	got, err := s.GetSale(ctx, sl.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(1_615_000), got.Tax)
	assert.Equal(t, int64(10_115_000), got.Total)
	assert.Equal(t, int64(0), got.Debt)
	assert.Equal(t, pricing.StatusPaid, got.Status)
	require.NotNil(t, got.UpdatedAt)
}

func TestUpdateSale_KeepsSaleAmountOverride(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	override := int64(13_000_000)
	sl := &sale.Sale{Ref: "ZEN-009", Net: 10_000_000, SaleAmountOverride: &override, ClientID: uuid.New(), CategoryID: "watches"}
	require.NoError(t, s.CreateSale(ctx, sl))
	assert.Equal(t, override, sl.SaleAmount)

	sl.Net = 11_000_000
	require.NoError(t, s.UpdateSale(ctx, sl))

	got, err := s.GetSale(ctx, sl.ID)
	require.NoError(t, err)

	// Total follows the new net, the explicit sale amount does not.
	assert.Equal(t, int64(13_090_000), got.Total)
	assert.Equal(t, override, got.SaleAmount)
}

func TestUpdateSale_NotFound(t *testing.T) {
	s, _ := newStore(t)

	err := s.UpdateSale(context.Background(), &sale.Sale{ID: uuid.New()})
	assert.ErrorIs(t, err, sale.ErrNotFound)
}

func TestDeleteSale_MissingIDIsNoOp(t *testing.T) {
	s, _ := newStore(t)

	assert.NoError(t, s.DeleteSale(context.Background(), uuid.New()))
}

func TestListSales_Filtering(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	clientA := uuid.New()

	paid := &sale.Sale{Ref: "TAG-002", Net: 8_500_000, Installment1: 10_115_000, ClientID: clientA, CategoryID: "watches", Date: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)}
	unpaid := &sale.Sale{Ref: "CAR-004", Net: 18_000_000, ClientID: uuid.New(), CategoryID: "jewelry", Date: time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, s.CreateSale(ctx, paid))
	require.NoError(t, s.CreateSale(ctx, unpaid))

	status := pricing.StatusPaid
	got, err := s.ListSales(ctx, sale.ListFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "TAG-002", got[0].Ref)

	got, err = s.ListSales(ctx, sale.ListFilter{ClientID: &clientA})
	require.NoError(t, err)
	require.Len(t, got, 1)

	cat := "jewelry"
	got, err = s.ListSales(ctx, sale.ListFilter{CategoryID: &cat})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "CAR-004", got[0].Ref)

	all, err := s.ListSales(ctx, sale.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.True(t, all[0].Date.Before(all[1].Date))
}

func TestDeleteClient_Guard(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	c := &client.Client{Name: "Ana López"}
	require.NoError(t, s.CreateClient(ctx, c))

	sl := &sale.Sale{Ref: "IWC-008", Net: 12_000_000, ClientID: c.ID, CategoryID: "watches"}
	require.NoError(t, s.CreateSale(ctx, sl))

	assert.ErrorIs(t, s.DeleteClient(ctx, c.ID), client.ErrHasSales)

	// Once the sale is gone the client can be deleted.
	require.NoError(t, s.DeleteSale(ctx, sl.ID))
	require.NoError(t, s.DeleteClient(ctx, c.ID))

	_, err := s.GetClient(ctx, c.ID)
	assert.ErrorIs(t, err, client.ErrNotFound)

	// And deleting it again is a no-op.
	assert.NoError(t, s.DeleteClient(ctx, c.ID))
}

func TestModels_PersistAndSort(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	m1 := &catalog.Model{Ref: "TIS-PRX", Name: "Tissot PRX", BaseCost: 1_800_000, SuggestedPrice: 2_200_000, CategoryID: "watches"}
	m2 := &catalog.Model{Ref: "ROL-SUB", Name: "Rolex Submariner", BaseCost: 20_000_000, SuggestedPrice: 25_000_000, CategoryID: "watches"}
	require.NoError(t, s.CreateModel(ctx, m1))
	require.NoError(t, s.CreateModel(ctx, m2))

	models, err := s.ListModels(ctx)
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, "ROL-SUB", models[0].Ref)

	require.NoError(t, s.DeleteModel(ctx, m1.ID))

	_, err = s.GetModel(ctx, m1.ID)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestStateSurvivesReload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "vitrine.json")

	s, err := store.New(ctx, snapshot.NewFileStore(path))
	require.NoError(t, err)

	c := &client.Client{Name: "Diana Torres", Phone: "3114445555"}
	require.NoError(t, s.CreateClient(ctx, c))

	sl := &sale.Sale{Ref: "PAT-005", Net: 45_000_000, Installment1: 20_000_000, ClientID: c.ID, CategoryID: "watches"}
	require.NoError(t, s.CreateSale(ctx, sl))

	reloaded, err := store.New(ctx, snapshot.NewFileStore(path))
	require.NoError(t, err)

	got, err := reloaded.GetSale(ctx, sl.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(53_550_000), got.Total)
	assert.Equal(t, pricing.StatusPartial, got.Status)

	gotClient, err := reloaded.GetClient(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Diana Torres", gotClient.Name)

	// Reload must not re-seed on top of existing state.
	cats, err := reloaded.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 3)
}

func TestSubscribe_NotifiesOnMutation(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	ch := s.Subscribe()

	require.NoError(t, s.CreateClient(ctx, &client.Client{Name: "Jorge Vargas"}))

	select {
	case <-ch:
	default:
		t.Fatal("expected a change notification")
	}

	// Reads do not notify.
	_, err := s.ListClients(ctx)
	require.NoError(t, err)

	select {
	case <-ch:
		t.Fatal("unexpected notification after read")
	default:
	}
}
