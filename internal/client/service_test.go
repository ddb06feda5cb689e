package client_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/darcyvale/vitrine/internal/client"
)

func strPtr(s string) *string { return &s }

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    client.CreateParams
		setupMock func(m *client.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name:   "Success",
			params: client.CreateParams{Name: "Juan Pérez", Phone: "3001234567"},
			setupMock: func(m *client.MockRepository) {
				m.EXPECT().
					CreateClient(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *client.Client) error {
						c.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:   "RepoError",
			params: client.CreateParams{Name: "María González"},
			setupMock: func(m *client.MockRepository) {
				m.EXPECT().
					CreateClient(gomock.Any(), gomock.Any()).
					Return(errors.New("snapshot write failed"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := client.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := client.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			require.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, tt.params.Name, got.Name)
		})
	}
}

func TestService_Update(t *testing.T) {
	id := uuid.New()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := client.NewMockRepository(ctrl)
	repo.EXPECT().
		GetClient(gomock.Any(), id).
		Return(&client.Client{ID: id, Name: "Juan Pérez", Phone: "3001234567"}, nil)
	repo.EXPECT().
		UpdateClient(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *client.Client) error {
			assert.Equal(t, "Juan P. Restrepo", c.Name)
			assert.Equal(t, "3001234567", c.Phone)
			return nil
		})

	svc := client.NewService(repo)
	got, err := svc.Update(context.Background(), id, client.UpdateParams{Name: strPtr("Juan P. Restrepo")})
	require.NoError(t, err)
	assert.Equal(t, "Juan P. Restrepo", got.Name)
}

func TestService_Delete(t *testing.T) {
	id := uuid.New()

	t.Run("RefusedWhileReferenced", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := client.NewMockRepository(ctrl)
		repo.EXPECT().DeleteClient(gomock.Any(), id).Return(client.ErrHasSales)

		svc := client.NewService(repo)
		assert.ErrorIs(t, svc.Delete(context.Background(), id), client.ErrHasSales)
	})

	t.Run("Unreferenced", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := client.NewMockRepository(ctrl)
		repo.EXPECT().DeleteClient(gomock.Any(), id).Return(nil)

		svc := client.NewService(repo)
		assert.NoError(t, svc.Delete(context.Background(), id))
	})
}
