package sale_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/darcyvale/vitrine/internal/pricing"
	"github.com/darcyvale/vitrine/internal/sale"
)

func int64Ptr(v int64) *int64 { return &v }

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    sale.CreateParams
		setupMock func(m *sale.MockRepository)
		wantErr   bool
	}

	clientID := uuid.New()

	tests := []testCase{
		{
			name: "Success",
			params: sale.CreateParams{
				Ref:          "ROL-001",
				Model:        "Rolex Submariner",
				Net:          25_000_000,
				Installment1: 10_000_000,
				Installment2: 10_000_000,
				ClientID:     clientID,
				CategoryID:   "watches",
				Date:         time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			},
			setupMock: func(m *sale.MockRepository) {
				m.EXPECT().
					CreateSale(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, s *sale.Sale) error {
						s.ID = uuid.New()
						s.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name:   "RepoError",
			params: sale.CreateParams{Ref: "ROL-002", Net: 500},
			setupMock: func(m *sale.MockRepository) {
				m.EXPECT().
					CreateSale(gomock.Any(), gomock.Any()).
					Return(errors.New("snapshot write failed"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := sale.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := sale.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			require.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, tt.params.Ref, got.Ref)
			assert.Equal(t, tt.params.ClientID, got.ClientID)
		})
	}
}

func TestService_Update(t *testing.T) {
	id := uuid.New()

	existing := func() *sale.Sale {
		return &sale.Sale{
			ID:           id,
			Ref:          "ROL-001",
			Model:        "Rolex Submariner",
			Net:          25_000_000,
			Installment1: 10_000_000,
			CategoryID:   "watches",
			Notes:        "preferred client",
		}
	}

	t.Run("MergesOnlyProvidedFields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := sale.NewMockRepository(ctrl)
		repo.EXPECT().GetSale(gomock.Any(), id).Return(existing(), nil)
		repo.EXPECT().
			UpdateSale(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, s *sale.Sale) error {
				assert.Equal(t, int64(30_000_000), s.Net)
				assert.Equal(t, int64(10_000_000), s.Installment1)
				assert.Equal(t, "Rolex Submariner", s.Model)
				assert.Equal(t, "preferred client", s.Notes)
				return nil
			})

		svc := sale.NewService(repo)
		got, err := svc.Update(context.Background(), id, sale.UpdateParams{Net: int64Ptr(30_000_000)})
		require.NoError(t, err)
		assert.Equal(t, int64(30_000_000), got.Net)
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := sale.NewMockRepository(ctrl)
		repo.EXPECT().GetSale(gomock.Any(), id).Return(nil, sale.ErrNotFound)

		svc := sale.NewService(repo)
		_, err := svc.Update(context.Background(), id, sale.UpdateParams{})
		assert.ErrorIs(t, err, sale.ErrNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := sale.NewMockRepository(ctrl)
	repo.EXPECT().DeleteSale(gomock.Any(), id).Return(nil)

	svc := sale.NewService(repo)
	assert.NoError(t, svc.Delete(context.Background(), id))
}

func TestService_Summarize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clientA := uuid.New()
	clientB := uuid.New()

	repo := sale.NewMockRepository(ctrl)
	repo.EXPECT().
		ListSales(gomock.Any(), sale.ListFilter{}).
		Return([]*sale.Sale{
			{ClientID: clientA, SaleAmount: 29_750_000, Profit: 4_750_000, Debt: 9_750_000, Status: pricing.StatusPartial},
			{ClientID: clientB, SaleAmount: 21_420_000, Profit: 3_420_000, Debt: 21_420_000, Status: pricing.StatusUnpaid},
			{ClientID: clientA, SaleAmount: 10_115_000, Profit: 1_615_000, Debt: 0, Status: pricing.StatusPaid},
		}, nil)

	svc := sale.NewService(repo)
	got, err := svc.Summarize(context.Background(), sale.ListFilter{})
	require.NoError(t, err)

	assert.Equal(t, 3, got.Count)
	assert.Equal(t, int64(61_285_000), got.TotalSold)
	assert.Equal(t, int64(9_785_000), got.TotalProfit)
	assert.Equal(t, int64(31_170_000), got.TotalDebt)
	assert.Equal(t, 1, got.CountByStatus[pricing.StatusPaid])
	assert.Equal(t, 1, got.CountByStatus[pricing.StatusPartial])
	assert.Equal(t, 1, got.CountByStatus[pricing.StatusUnpaid])

	require.Len(t, got.TopClients, 2)
	assert.Equal(t, clientA, got.TopClients[0].ClientID)
	assert.Equal(t, int64(39_865_000), got.TopClients[0].Total)
}
