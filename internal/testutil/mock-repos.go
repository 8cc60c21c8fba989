package testutil

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"news-classifier-registry/internal/core/domain"
	ports "news-classifier-registry/internal/core/ports/output"
)

// MockRegisteredModelRepo is a mock of RegisteredModelRepository.
type MockRegisteredModelRepo struct {
	mock.Mock
}

func (m *MockRegisteredModelRepo) Create(ctx context.Context, model *domain.RegisteredModel) error {
	args := m.Called(ctx, model)
	return args.Error(0)
}

func (m *MockRegisteredModelRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.RegisteredModel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RegisteredModel), args.Error(1)
}

func (m *MockRegisteredModelRepo) GetByName(ctx context.Context, catalog, schema, name string) (*domain.RegisteredModel, error) {
	args := m.Called(ctx, catalog, schema, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RegisteredModel), args.Error(1)
}

func (m *MockRegisteredModelRepo) Update(ctx context.Context, model *domain.RegisteredModel) error {
	args := m.Called(ctx, model)
	return args.Error(0)
}

func (m *MockRegisteredModelRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRegisteredModelRepo) List(ctx context.Context, filter ports.ListFilter) ([]*domain.RegisteredModel, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.RegisteredModel), args.Int(1), args.Error(2)
}

// MockModelVersionRepo is a mock of ModelVersionRepository.
type MockModelVersionRepo struct {
	mock.Mock
}

func (m *MockModelVersionRepo) Create(ctx context.Context, version *domain.ModelVersion) error {
	args := m.Called(ctx, version)
	return args.Error(0)
}

func (m *MockModelVersionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ModelVersion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ModelVersion), args.Error(1)
}

func (m *MockModelVersionRepo) GetByNumber(ctx context.Context, modelID uuid.UUID, number int) (*domain.ModelVersion, error) {
	args := m.Called(ctx, modelID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ModelVersion), args.Error(1)
}

func (m *MockModelVersionRepo) GetByAlias(ctx context.Context, modelID uuid.UUID, alias domain.Alias) (*domain.ModelVersion, error) {
	args := m.Called(ctx, modelID, alias)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ModelVersion), args.Error(1)
}

func (m *MockModelVersionRepo) Update(ctx context.Context, version *domain.ModelVersion) error {
	args := m.Called(ctx, version)
	return args.Error(0)
}

func (m *MockModelVersionRepo) List(ctx context.Context, filter ports.VersionListFilter) ([]*domain.ModelVersion, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.ModelVersion), args.Int(1), args.Error(2)
}

func (m *MockModelVersionRepo) FindByAccuracyTag(ctx context.Context, modelID uuid.UUID, accuracyTag string) (*domain.ModelVersion, error) {
	args := m.Called(ctx, modelID, accuracyTag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ModelVersion), args.Error(1)
}

func (m *MockModelVersionRepo) SetAlias(ctx context.Context, modelID uuid.UUID, alias domain.Alias, number int) error {
	args := m.Called(ctx, modelID, alias, number)
	return args.Error(0)
}

func (m *MockModelVersionRepo) DeleteAlias(ctx context.Context, modelID uuid.UUID, alias domain.Alias) error {
	args := m.Called(ctx, modelID, alias)
	return args.Error(0)
}

func (m *MockModelVersionRepo) DeleteByModel(ctx context.Context, modelID uuid.UUID) (int, error) {
	args := m.Called(ctx, modelID)
	return args.Int(0), args.Error(1)
}
