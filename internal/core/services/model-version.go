package services

import (
	"context"

	"github.com/google/uuid"

	"news-classifier-registry/internal/core/domain"
	ports "news-classifier-registry/internal/core/ports/output"
)

type ModelVersionService struct {
	repo      ports.ModelVersionRepository
	modelRepo ports.RegisteredModelRepository
}

func NewModelVersionService(repo ports.ModelVersionRepository, modelRepo ports.RegisteredModelRepository) *ModelVersionService {
	return &ModelVersionService{repo: repo, modelRepo: modelRepo}
}

func (s *ModelVersionService) Get(ctx context.Context, id uuid.UUID) (*domain.ModelVersion, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ModelVersionService) GetByNumber(ctx context.Context, modelID uuid.UUID, number int) (*domain.ModelVersion, error) {
	if _, err := s.modelRepo.GetByID(ctx, modelID); err != nil {
		return nil, err
	}
	return s.repo.GetByNumber(ctx, modelID, number)
}

func (s *ModelVersionService) GetByAlias(ctx context.Context, modelID uuid.UUID, alias string) (*domain.ModelVersion, error) {
	a, err := domain.ParseAlias(alias)
	if err != nil {
		return nil, err
	}
	if _, err := s.modelRepo.GetByID(ctx, modelID); err != nil {
		return nil, err
	}
	return s.repo.GetByAlias(ctx, modelID, a)
}

func (s *ModelVersionService) List(ctx context.Context, modelID uuid.UUID, filter ports.VersionListFilter) ([]*domain.ModelVersion, int, error) {
	if _, err := s.modelRepo.GetByID(ctx, modelID); err != nil {
		return nil, 0, err
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	filter.RegisteredModelID = modelID

	return s.repo.List(ctx, filter)
}

func (s *ModelVersionService) UpdateDescription(ctx context.Context, id uuid.UUID, description string) (*domain.ModelVersion, error) {
	version, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	version.Description = description
	if err := s.repo.Update(ctx, version); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}
