package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"news-classifier-registry/internal/core/domain"
	ports "news-classifier-registry/internal/core/ports/output"
	"news-classifier-registry/internal/testutil"
)

func TestPromotionService_Status_NoChallenger(t *testing.T) {
	versionRepo := new(testutil.MockModelVersionRepo)
	modelRepo := new(testutil.MockRegisteredModelRepo)
	svc := NewPromotionService(versionRepo, modelRepo, nil, "model-serving", "news-classifier")

	modelID := uuid.New()
	modelRepo.On("GetByID", mock.Anything, modelID).
		Return(&domain.RegisteredModel{ID: modelID, Name: "classifier"}, nil)
	versionRepo.On("GetByAlias", mock.Anything, modelID, domain.AliasChallenger).
		Return(nil, domain.ErrAliasNotFound)

	_, err := svc.Status(context.Background(), modelID)
	assert.ErrorIs(t, err, domain.ErrNoChallenger)
}

func TestPromotionService_Status_WithChampion(t *testing.T) {
	versionRepo := new(testutil.MockModelVersionRepo)
	modelRepo := new(testutil.MockRegisteredModelRepo)
	svc := NewPromotionService(versionRepo, modelRepo, nil, "model-serving", "news-classifier")

	modelID := uuid.New()
	modelRepo.On("GetByID", mock.Anything, modelID).
		Return(&domain.RegisteredModel{ID: modelID, Name: "classifier"}, nil)
	versionRepo.On("GetByAlias", mock.Anything, modelID, domain.AliasChallenger).
		Return(&domain.ModelVersion{Version: 2, Metrics: map[string]float64{domain.MetricCategoryAccuracy: 0.95}}, nil)
	versionRepo.On("GetByAlias", mock.Anything, modelID, domain.AliasChampion).
		Return(&domain.ModelVersion{Version: 1, Metrics: map[string]float64{domain.MetricCategoryAccuracy: 0.91}}, nil)

	status, err := svc.Status(context.Background(), modelID)
	assert.NoError(t, err)
	assert.Equal(t, 2, status.Challenger.Version)
	assert.Equal(t, 1, status.Champion.Version)
	assert.InDelta(t, 0.04, status.Improvement, 1e-9)
}

func TestPromotionService_Status_ReportsEndpointReadiness(t *testing.T) {
	versionRepo := new(testutil.MockModelVersionRepo)
	modelRepo := new(testutil.MockRegisteredModelRepo)
	serving := new(testutil.MockServingClient)
	svc := NewPromotionService(versionRepo, modelRepo, serving, "model-serving", "news-classifier")

	modelID := uuid.New()
	modelRepo.On("GetByID", mock.Anything, modelID).
		Return(&domain.RegisteredModel{ID: modelID, Name: "classifier"}, nil)
	versionRepo.On("GetByAlias", mock.Anything, modelID, domain.AliasChallenger).
		Return(&domain.ModelVersion{Version: 2, Metrics: map[string]float64{domain.MetricCategoryAccuracy: 0.95}}, nil)
	versionRepo.On("GetByAlias", mock.Anything, modelID, domain.AliasChampion).
		Return(&domain.ModelVersion{Version: 1, Metrics: map[string]float64{domain.MetricCategoryAccuracy: 0.91}}, nil)

	serving.On("IsAvailable").Return(true)
	serving.On("GetStatus", mock.Anything, "model-serving", "news-classifier").
		Return(&ports.EndpointStatus{Ready: true, URL: "http://news-classifier.model-serving"}, nil)

	status, err := svc.Status(context.Background(), modelID)
	assert.NoError(t, err)
	assert.NotNil(t, status.Serving)
	assert.True(t, status.Serving.Ready)
	assert.Equal(t, "http://news-classifier.model-serving", status.Serving.URL)
}

func TestPromotionService_Status_EndpointCheckFailureTolerated(t *testing.T) {
	versionRepo := new(testutil.MockModelVersionRepo)
	modelRepo := new(testutil.MockRegisteredModelRepo)
	serving := new(testutil.MockServingClient)
	svc := NewPromotionService(versionRepo, modelRepo, serving, "model-serving", "news-classifier")

	modelID := uuid.New()
	modelRepo.On("GetByID", mock.Anything, modelID).
		Return(&domain.RegisteredModel{ID: modelID, Name: "classifier"}, nil)
	versionRepo.On("GetByAlias", mock.Anything, modelID, domain.AliasChallenger).
		Return(&domain.ModelVersion{Version: 2, Metrics: map[string]float64{domain.MetricCategoryAccuracy: 0.95}}, nil)
	versionRepo.On("GetByAlias", mock.Anything, modelID, domain.AliasChampion).
		Return(&domain.ModelVersion{Version: 1, Metrics: map[string]float64{domain.MetricCategoryAccuracy: 0.91}}, nil)

	serving.On("IsAvailable").Return(true)
	serving.On("GetStatus", mock.Anything, "model-serving", "news-classifier").
		Return(nil, errors.New("cluster unreachable"))

	status, err := svc.Status(context.Background(), modelID)
	assert.NoError(t, err)
	assert.Nil(t, status.Serving)
}

func TestPromotionService_Promote_NotApproved(t *testing.T) {
	versionRepo := new(testutil.MockModelVersionRepo)
	modelRepo := new(testutil.MockRegisteredModelRepo)
	svc := NewPromotionService(versionRepo, modelRepo, nil, "model-serving", "news-classifier")

	_, err := svc.Promote(context.Background(), uuid.New(), false)
	assert.ErrorIs(t, err, domain.ErrPromotionNotApproved)
}

func TestPromotionService_Promote_ReplacesChampion(t *testing.T) {
	versionRepo := new(testutil.MockModelVersionRepo)
	modelRepo := new(testutil.MockRegisteredModelRepo)
	svc := NewPromotionService(versionRepo, modelRepo, nil, "model-serving", "news-classifier")

	modelID := uuid.New()
	challengerID := uuid.New()
	challenger := &domain.ModelVersion{
		ID: challengerID, Version: 2,
		Metrics: map[string]float64{domain.MetricCategoryAccuracy: 0.95},
	}
	champion := &domain.ModelVersion{
		ID: uuid.New(), Version: 1,
		Metrics: map[string]float64{domain.MetricCategoryAccuracy: 0.91},
	}

	modelRepo.On("GetByID", mock.Anything, modelID).
		Return(&domain.RegisteredModel{ID: modelID, Name: "classifier"}, nil)
	versionRepo.On("GetByAlias", mock.Anything, modelID, domain.AliasChallenger).Return(challenger, nil)
	versionRepo.On("GetByAlias", mock.Anything, modelID, domain.AliasChampion).Return(champion, nil)
	versionRepo.On("SetAlias", mock.Anything, modelID, domain.AliasDefeated, 1).Return(nil)
	versionRepo.On("SetAlias", mock.Anything, modelID, domain.AliasChampion, 2).Return(nil)
	versionRepo.On("DeleteAlias", mock.Anything, modelID, domain.AliasChallenger).Return(nil)
	versionRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.ModelVersion")).Return(nil)
	versionRepo.On("GetByID", mock.Anything, challengerID).
		Return(&domain.ModelVersion{ID: challengerID, Version: 2, Aliases: []domain.Alias{domain.AliasChampion}}, nil)

	result, err := svc.Promote(context.Background(), modelID, true)
	assert.NoError(t, err)
	assert.Equal(t, 2, result.Champion.Version)
	assert.Equal(t, 1, result.Defeated.Version)
	assert.Equal(t, "Champion - promoted from challenger (replaced v1)", challenger.Description)
	assert.Equal(t, "Defeated - replaced by v2", champion.Description)

	versionRepo.AssertCalled(t, "SetAlias", mock.Anything, modelID, domain.AliasDefeated, 1)
	versionRepo.AssertCalled(t, "DeleteAlias", mock.Anything, modelID, domain.AliasChallenger)
}

func TestPromotionService_Promote_FirstChampion(t *testing.T) {
	versionRepo := new(testutil.MockModelVersionRepo)
	modelRepo := new(testutil.MockRegisteredModelRepo)
	svc := NewPromotionService(versionRepo, modelRepo, nil, "model-serving", "news-classifier")

	modelID := uuid.New()
	challengerID := uuid.New()
	challenger := &domain.ModelVersion{
		ID: challengerID, Version: 1,
		Metrics: map[string]float64{domain.MetricCategoryAccuracy: 0.95},
	}

	modelRepo.On("GetByID", mock.Anything, modelID).
		Return(&domain.RegisteredModel{ID: modelID, Name: "classifier"}, nil)
	versionRepo.On("GetByAlias", mock.Anything, modelID, domain.AliasChallenger).Return(challenger, nil)
	versionRepo.On("GetByAlias", mock.Anything, modelID, domain.AliasChampion).
		Return(nil, domain.ErrAliasNotFound)
	versionRepo.On("SetAlias", mock.Anything, modelID, domain.AliasChampion, 1).Return(nil)
	versionRepo.On("DeleteAlias", mock.Anything, modelID, domain.AliasChallenger).Return(nil)
	versionRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.ModelVersion")).Return(nil)
	versionRepo.On("GetByID", mock.Anything, challengerID).
		Return(&domain.ModelVersion{ID: challengerID, Version: 1, Aliases: []domain.Alias{domain.AliasChampion}}, nil)

	result, err := svc.Promote(context.Background(), modelID, true)
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Champion.Version)
	assert.Nil(t, result.Defeated)
	assert.Equal(t, "Champion - promoted from challenger", challenger.Description)

	versionRepo.AssertNotCalled(t, "SetAlias", mock.Anything, modelID, domain.AliasDefeated, mock.Anything)
}

func TestPromotionService_Promote_ServingFailureTolerated(t *testing.T) {
	versionRepo := new(testutil.MockModelVersionRepo)
	modelRepo := new(testutil.MockRegisteredModelRepo)
	serving := new(testutil.MockServingClient)
	svc := NewPromotionService(versionRepo, modelRepo, serving, "model-serving", "news-classifier")

	modelID := uuid.New()
	challengerID := uuid.New()
	challenger := &domain.ModelVersion{
		ID: challengerID, Version: 1,
		Metrics: map[string]float64{domain.MetricCategoryAccuracy: 0.95},
	}

	modelRepo.On("GetByID", mock.Anything, modelID).
		Return(&domain.RegisteredModel{ID: modelID, Catalog: "main", Schema: "news_classifier", Name: "classifier"}, nil)
	versionRepo.On("GetByAlias", mock.Anything, modelID, domain.AliasChallenger).Return(challenger, nil)
	versionRepo.On("GetByAlias", mock.Anything, modelID, domain.AliasChampion).
		Return(nil, domain.ErrAliasNotFound)
	versionRepo.On("SetAlias", mock.Anything, modelID, domain.AliasChampion, 1).Return(nil)
	versionRepo.On("DeleteAlias", mock.Anything, modelID, domain.AliasChallenger).Return(nil)
	versionRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.ModelVersion")).Return(nil)
	versionRepo.On("GetByID", mock.Anything, challengerID).
		Return(&domain.ModelVersion{ID: challengerID, Version: 1}, nil)

	serving.On("IsAvailable").Return(true)
	serving.On("SyncChampion", mock.Anything, mock.AnythingOfType("*ports.ChampionEndpoint")).
		Return(errors.New("cluster unreachable"))

	// The promotion still succeeds.
	result, err := svc.Promote(context.Background(), modelID, true)
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Champion.Version)
	serving.AssertCalled(t, "SyncChampion", mock.Anything, mock.AnythingOfType("*ports.ChampionEndpoint"))
}
