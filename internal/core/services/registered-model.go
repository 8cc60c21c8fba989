package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"news-classifier-registry/internal/core/domain"
	ports "news-classifier-registry/internal/core/ports/output"
)

type RegisteredModelService struct {
	repo        ports.RegisteredModelRepository
	versionRepo ports.ModelVersionRepository
}

func NewRegisteredModelService(repo ports.RegisteredModelRepository, versionRepo ports.ModelVersionRepository) *RegisteredModelService {
	return &RegisteredModelService{repo: repo, versionRepo: versionRepo}
}

func (s *RegisteredModelService) Create(ctx context.Context, catalog, schema, name, description string) (*domain.RegisteredModel, error) {
	if name == "" {
		return nil, domain.ErrInvalidModelName
	}

	now := time.Now()
	model := &domain.RegisteredModel{
		ID:          uuid.New(),
		CreatedAt:   now,
		UpdatedAt:   now,
		Catalog:     catalog,
		Schema:      schema,
		Name:        name,
		Description: description,
		State:       domain.ModelStateLive,
	}

	if err := s.repo.Create(ctx, model); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, model.ID)
}

func (s *RegisteredModelService) Get(ctx context.Context, id uuid.UUID) (*domain.RegisteredModel, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *RegisteredModelService) GetByName(ctx context.Context, catalog, schema, name string) (*domain.RegisteredModel, error) {
	if name == "" {
		return nil, domain.ErrInvalidModelName
	}
	return s.repo.GetByName(ctx, catalog, schema, name)
}

func (s *RegisteredModelService) List(ctx context.Context, filter ports.ListFilter) ([]*domain.RegisteredModel, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	return s.repo.List(ctx, filter)
}

func (s *RegisteredModelService) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*domain.RegisteredModel, error) {
	model, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if v, ok := updates["description"]; ok && v != nil {
		model.Description = v.(string)
	}
	if v, ok := updates["state"]; ok && v != nil {
		model.State = domain.ModelState(v.(string))
	}

	if err := s.repo.Update(ctx, model); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

// Delete removes an archived model and all of its versions. Live models
// must be archived first.
func (s *RegisteredModelService) Delete(ctx context.Context, id uuid.UUID) error {
	model, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if model.State != domain.ModelStateArchived {
		return domain.ErrCannotDeleteModel
	}

	if _, err := s.versionRepo.DeleteByModel(ctx, id); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

// PurgeVersions deletes every version and alias of a model, returning the
// number of versions removed. The model itself stays registered.
func (s *RegisteredModelService) PurgeVersions(ctx context.Context, id uuid.UUID) (int, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return 0, err
	}
	return s.versionRepo.DeleteByModel(ctx, id)
}
