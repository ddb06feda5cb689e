package catalog

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=catalog
type Repository interface {
	ListCategories(ctx context.Context) ([]*Category, error)
	GetCategory(ctx context.Context, id string) (*Category, error)

	CreateModel(ctx context.Context, m *Model) error
	GetModel(ctx context.Context, id uuid.UUID) (*Model, error)
	ListModels(ctx context.Context) ([]*Model, error)
	UpdateModel(ctx context.Context, m *Model) error
	DeleteModel(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Categories(ctx context.Context) ([]*Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) Category(ctx context.Context, id string) (*Category, error) {
	return s.repo.GetCategory(ctx, id)
}

type ModelParams struct {
	Ref            string
	Name           string
	BaseCost       int64
	SuggestedPrice int64
	CategoryID     string
	Image          []byte
}

func (s *Service) CreateModel(ctx context.Context, params ModelParams) (*Model, error) {
	if params.SuggestedPrice <= params.BaseCost {
		return nil, ErrPriceBelowCost
	}

	m := &Model{
		Ref:            params.Ref,
		Name:           params.Name,
		BaseCost:       params.BaseCost,
		SuggestedPrice: params.SuggestedPrice,
		CategoryID:     params.CategoryID,
		Image:          params.Image,
	}
	if err := s.repo.CreateModel(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Service) Model(ctx context.Context, id uuid.UUID) (*Model, error) {
	return s.repo.GetModel(ctx, id)
}

func (s *Service) Models(ctx context.Context) ([]*Model, error) {
	return s.repo.ListModels(ctx)
}

func (s *Service) UpdateModel(ctx context.Context, id uuid.UUID, params ModelParams) (*Model, error) {
	if params.SuggestedPrice <= params.BaseCost {
		return nil, ErrPriceBelowCost
	}

	m, err := s.repo.GetModel(ctx, id)
	if err != nil {
		return nil, err
	}

	m.Ref = params.Ref
	m.Name = params.Name
	m.BaseCost = params.BaseCost
	m.SuggestedPrice = params.SuggestedPrice
	m.CategoryID = params.CategoryID

	if params.Image != nil {
		m.Image = params.Image
	}

	if err := s.repo.UpdateModel(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Service) DeleteModel(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteModel(ctx, id)
}
