package catalog_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/darcyvale/vitrine/internal/catalog"
)

func TestService_CreateModel(t *testing.T) {
	type testCase struct {
		name      string
		params    catalog.ModelParams
		setupMock func(m *catalog.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			params: catalog.ModelParams{
				Ref:            "ROL-SUB",
				Name:           "Rolex Submariner",
				BaseCost:       20_000_000,
				SuggestedPrice: 25_000_000,
				CategoryID:     "watches",
			},
			setupMock: func(m *catalog.MockRepository) {
				m.EXPECT().
					CreateModel(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, mdl *catalog.Model) error {
						mdl.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name: "PriceEqualToCostRefused",
			params: catalog.ModelParams{
				Ref:            "ROL-SUB",
				Name:           "Rolex Submariner",
				BaseCost:       20_000_000,
				SuggestedPrice: 20_000_000,
				CategoryID:     "watches",
			},
			setupMock: func(m *catalog.MockRepository) {},
			wantErr:   catalog.ErrPriceBelowCost,
		},
		{
			name: "PriceBelowCostRefused",
			params: catalog.ModelParams{
				Ref:            "TIS-PRX",
				Name:           "Tissot PRX",
				BaseCost:       2_500_000,
				SuggestedPrice: 2_200_000,
				CategoryID:     "watches",
			},
			setupMock: func(m *catalog.MockRepository) {},
			wantErr:   catalog.ErrPriceBelowCost,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := catalog.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := catalog.NewService(repo)
			got, err := svc.CreateModel(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			require.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
		})
	}
}

func TestSeedCategories(t *testing.T) {
	cats := catalog.SeedCategories()
	require.Len(t, cats, 3)

	ids := make([]string, 0, len(cats))
	for _, c := range cats {
		ids = append(ids, c.ID)
		assert.NotEmpty(t, c.Name)
		assert.NotEmpty(t, c.Color)
	}

	assert.ElementsMatch(t, []string{"watches", "jewelry", "other"}, ids)
}
