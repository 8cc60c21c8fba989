package ports

import (
	"context"

	"github.com/google/uuid"

	"news-classifier-registry/internal/core/domain"
)

type ListFilter struct {
	Catalog string
	Schema  string
	State   string
	Search  string
	SortBy  string
	Order   string
	Limit   int
	Offset  int
}

type VersionListFilter struct {
	RegisteredModelID uuid.UUID
	Status            string
	Alias             string
	Limit             int
	Offset            int
}

type RegisteredModelRepository interface {
	Create(ctx context.Context, model *domain.RegisteredModel) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.RegisteredModel, error)
	GetByName(ctx context.Context, catalog, schema, name string) (*domain.RegisteredModel, error)
	Update(ctx context.Context, model *domain.RegisteredModel) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ListFilter) ([]*domain.RegisteredModel, int, error)
}

type ModelVersionRepository interface {
	// Create inserts the version and assigns the next monotonic version
	// number for the model, filling version.Version.
	Create(ctx context.Context, version *domain.ModelVersion) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ModelVersion, error)
	GetByNumber(ctx context.Context, modelID uuid.UUID, number int) (*domain.ModelVersion, error)
	GetByAlias(ctx context.Context, modelID uuid.UUID, alias domain.Alias) (*domain.ModelVersion, error)
	Update(ctx context.Context, version *domain.ModelVersion) error
	List(ctx context.Context, filter VersionListFilter) ([]*domain.ModelVersion, int, error)

	// FindByAccuracyTag locates a version whose category_accuracy tag
	// matches exactly (duplicate-performance detection).
	FindByAccuracyTag(ctx context.Context, modelID uuid.UUID, accuracyTag string) (*domain.ModelVersion, error)

	// SetAlias points the alias at a version number, replacing any
	// previous holder. DeleteAlias removes the alias entirely.
	SetAlias(ctx context.Context, modelID uuid.UUID, alias domain.Alias, number int) error
	DeleteAlias(ctx context.Context, modelID uuid.UUID, alias domain.Alias) error

	// DeleteByModel purges every version and alias of a model.
	DeleteByModel(ctx context.Context, modelID uuid.UUID) (int, error)
}
