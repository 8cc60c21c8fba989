package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"news-classifier-registry/internal/core/domain"
	"news-classifier-registry/internal/core/gating"
	"news-classifier-registry/internal/testutil"
)

func passingMetrics() map[string]float64 {
	return map[string]float64{
		domain.MetricCategoryAccuracy:  0.95,
		domain.MetricCategoryF1:        0.94,
		domain.MetricCategoryPrecision: 0.93,
		domain.MetricCategoryRecall:    0.92,
		domain.MetricSentimentAccuracy: 0.88,
	}
}

func newRegistrationService() (*RegistrationService, *testutil.MockModelVersionRepo, *testutil.MockRegisteredModelRepo) {
	versionRepo := new(testutil.MockModelVersionRepo)
	modelRepo := new(testutil.MockRegisteredModelRepo)
	svc := NewRegistrationService(versionRepo, modelRepo, gating.NewStore(gating.Default()))
	return svc, versionRepo, modelRepo
}

func TestRegistrationService_MissingRunID(t *testing.T) {
	svc, _, _ := newRegistrationService()

	_, err := svc.Register(context.Background(), uuid.New(), RunSubmission{Metrics: passingMetrics()})
	assert.ErrorIs(t, err, domain.ErrMissingRunID)
}

func TestRegistrationService_MissingMetrics(t *testing.T) {
	svc, _, _ := newRegistrationService()

	_, err := svc.Register(context.Background(), uuid.New(), RunSubmission{RunID: "run-1"})
	assert.ErrorIs(t, err, domain.ErrMissingMetrics)
}

func TestRegistrationService_RejectsBelowThresholds(t *testing.T) {
	svc, versionRepo, modelRepo := newRegistrationService()

	modelID := uuid.New()
	modelRepo.On("GetByID", mock.Anything, modelID).
		Return(&domain.RegisteredModel{ID: modelID, Name: "classifier"}, nil)

	metrics := passingMetrics()
	metrics[domain.MetricCategoryAccuracy] = 0.80

	result, err := svc.Register(context.Background(), modelID, RunSubmission{
		RunID: "run-1", Provider: "openai", Model: "gpt-4o-mini", Metrics: metrics,
	})
	assert.NoError(t, err)
	assert.False(t, result.Registered)
	assert.Contains(t, result.Reason, "accuracy")

	// Nothing registered.
	versionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegistrationService_RejectsDuplicatePerformance(t *testing.T) {
	svc, versionRepo, modelRepo := newRegistrationService()

	modelID := uuid.New()
	modelRepo.On("GetByID", mock.Anything, modelID).
		Return(&domain.RegisteredModel{ID: modelID, Name: "classifier"}, nil)

	existing := &domain.ModelVersion{
		ID: uuid.New(), RegisteredModelID: modelID, Version: 3,
		Provider: "openai", Model: "gpt-4o-mini",
	}
	versionRepo.On("FindByAccuracyTag", mock.Anything, modelID, "0.95").Return(existing, nil)

	result, err := svc.Register(context.Background(), modelID, RunSubmission{
		RunID: "run-2", Provider: "anthropic", Model: "claude", Metrics: passingMetrics(),
	})
	assert.NoError(t, err)
	assert.False(t, result.Registered)
	assert.Contains(t, result.Reason, "identical accuracy")
	assert.Equal(t, existing, result.Duplicate)

	versionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegistrationService_FirstRunBecomesChampion(t *testing.T) {
	svc, versionRepo, modelRepo := newRegistrationService()

	modelID := uuid.New()
	modelRepo.On("GetByID", mock.Anything, modelID).
		Return(&domain.RegisteredModel{ID: modelID, Name: "classifier"}, nil)
	versionRepo.On("FindByAccuracyTag", mock.Anything, modelID, "0.95").
		Return(nil, domain.ErrVersionNotFound)
	versionRepo.On("GetByAlias", mock.Anything, modelID, domain.AliasChampion).
		Return(nil, domain.ErrAliasNotFound)

	var created *domain.ModelVersion
	versionRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.ModelVersion")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*domain.ModelVersion)
			created.Version = 1
		}).Return(nil)
	versionRepo.On("SetAlias", mock.Anything, modelID, domain.AliasChampion, 1).Return(nil)
	versionRepo.On("GetByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).
		Return(&domain.ModelVersion{Version: 1, Aliases: []domain.Alias{domain.AliasChampion}}, nil)

	result, err := svc.Register(context.Background(), modelID, RunSubmission{
		RunID: "run-1", Provider: "openai", Model: "gpt-4o-mini", Metrics: passingMetrics(),
	})
	assert.NoError(t, err)
	assert.True(t, result.Registered)
	assert.Equal(t, domain.AliasChampion, result.Alias)
	assert.Equal(t, "first registered model becomes champion", result.Reason)

	assert.Equal(t, domain.VersionStatusReady, created.Status)
	assert.Equal(t, "openai", created.Tags[domain.TagProvider])
	assert.Equal(t, "true", created.Tags[domain.TagProductionReady])
}

func TestRegistrationService_BeatsChampionBecomesChallenger(t *testing.T) {
	svc, versionRepo, modelRepo := newRegistrationService()

	modelID := uuid.New()
	modelRepo.On("GetByID", mock.Anything, modelID).
		Return(&domain.RegisteredModel{ID: modelID, Name: "classifier"}, nil)
	versionRepo.On("FindByAccuracyTag", mock.Anything, modelID, "0.95").
		Return(nil, domain.ErrVersionNotFound)
	versionRepo.On("GetByAlias", mock.Anything, modelID, domain.AliasChampion).
		Return(&domain.ModelVersion{
			Version: 1,
			Metrics: map[string]float64{domain.MetricCategoryAccuracy: 0.91},
		}, nil)
	versionRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.ModelVersion")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.ModelVersion).Version = 2
		}).Return(nil)
	versionRepo.On("SetAlias", mock.Anything, modelID, domain.AliasChallenger, 2).Return(nil)
	versionRepo.On("GetByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).
		Return(&domain.ModelVersion{Version: 2, Aliases: []domain.Alias{domain.AliasChallenger}}, nil)

	result, err := svc.Register(context.Background(), modelID, RunSubmission{
		RunID: "run-2", Provider: "openai", Model: "gpt-4o", Metrics: passingMetrics(),
	})
	assert.NoError(t, err)
	assert.True(t, result.Registered)
	assert.Equal(t, domain.AliasChallenger, result.Alias)
	assert.Contains(t, result.Reason, "beats champion")
}

func TestRegistrationService_NotBeatingChampionBecomesCandidate(t *testing.T) {
	svc, versionRepo, modelRepo := newRegistrationService()

	modelID := uuid.New()
	modelRepo.On("GetByID", mock.Anything, modelID).
		Return(&domain.RegisteredModel{ID: modelID, Name: "classifier"}, nil)
	versionRepo.On("FindByAccuracyTag", mock.Anything, modelID, "0.95").
		Return(nil, domain.ErrVersionNotFound)
	versionRepo.On("GetByAlias", mock.Anything, modelID, domain.AliasChampion).
		Return(&domain.ModelVersion{
			Version: 1,
			Metrics: map[string]float64{domain.MetricCategoryAccuracy: 0.945},
		}, nil)
	versionRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.ModelVersion")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.ModelVersion).Version = 2
		}).Return(nil)
	versionRepo.On("SetAlias", mock.Anything, modelID, domain.AliasCandidate, 2).Return(nil)
	versionRepo.On("GetByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).
		Return(&domain.ModelVersion{Version: 2, Aliases: []domain.Alias{domain.AliasCandidate}}, nil)

	result, err := svc.Register(context.Background(), modelID, RunSubmission{
		RunID: "run-3", Provider: "openai", Model: "gpt-4o", Metrics: passingMetrics(),
	})
	assert.NoError(t, err)
	assert.True(t, result.Registered)
	assert.Equal(t, domain.AliasCandidate, result.Alias)
}

func TestRegistrationService_ModelNotFound(t *testing.T) {
	svc, _, modelRepo := newRegistrationService()

	modelID := uuid.New()
	modelRepo.On("GetByID", mock.Anything, modelID).Return(nil, domain.ErrModelNotFound)

	_, err := svc.Register(context.Background(), modelID, RunSubmission{
		RunID: "run-1", Metrics: passingMetrics(),
	})
	assert.ErrorIs(t, err, domain.ErrModelNotFound)
}
