package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"news-classifier-registry/internal/core/domain"
	"news-classifier-registry/internal/core/gating"
	"news-classifier-registry/internal/core/services"
	"news-classifier-registry/internal/testutil"
)

func setupRouter() (*testutil.MockRegisteredModelRepo, *testutil.MockModelVersionRepo, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	modelRepo := new(testutil.MockRegisteredModelRepo)
	versionRepo := new(testutil.MockModelVersionRepo)

	modelSvc := services.NewRegisteredModelService(modelRepo, versionRepo)
	versionSvc := services.NewModelVersionService(versionRepo, modelRepo)
	registrationSvc := services.NewRegistrationService(versionRepo, modelRepo, gating.NewStore(gating.Default()))
	promotionSvc := services.NewPromotionService(versionRepo, modelRepo, nil, "model-serving", "news-classifier")
	inferenceSvc := services.NewInferenceService(versionRepo, modelRepo, nil, nil)

	h := New(modelSvc, versionSvc, registrationSvc, promotionSvc, inferenceSvc)
	r := gin.New()
	api := r.Group("/api/v1/registry")
	h.RegisterRoutes(api)

	return modelRepo, versionRepo, r
}

func liveModel(id uuid.UUID) *domain.RegisteredModel {
	return &domain.RegisteredModel{
		ID: id, Catalog: "main", Schema: "news_classifier", Name: "classifier",
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
		State: domain.ModelStateLive,
	}
}

func TestListModels(t *testing.T) {
	modelRepo, _, r := setupRouter()

	models := []*domain.RegisteredModel{liveModel(uuid.New())}
	modelRepo.On("List", mock.Anything, mock.AnythingOfType("ports.ListFilter")).Return(models, 1, nil)

	req, _ := http.NewRequest("GET", "/api/v1/registry/models?limit=10&offset=0", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, float64(1), resp["total"])
}

func TestGetModel(t *testing.T) {
	modelRepo, _, r := setupRouter()

	id := uuid.New()
	modelRepo.On("GetByID", mock.Anything, id).Return(liveModel(id), nil)

	req, _ := http.NewRequest("GET", "/api/v1/registry/models/"+id.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "main.news_classifier.classifier", resp["full_name"])
}

func TestGetModel_NotFound(t *testing.T) {
	modelRepo, _, r := setupRouter()

	id := uuid.New()
	modelRepo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrModelNotFound)

	req, _ := http.NewRequest("GET", "/api/v1/registry/models/"+id.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetModel_InvalidID(t *testing.T) {
	_, _, r := setupRouter()

	req, _ := http.NewRequest("GET", "/api/v1/registry/models/not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetModelByName(t *testing.T) {
	modelRepo, _, r := setupRouter()

	id := uuid.New()
	modelRepo.On("GetByName", mock.Anything, "main", "news_classifier", "classifier").
		Return(liveModel(id), nil)

	req, _ := http.NewRequest("GET", "/api/v1/registry/model?catalog=main&schema=news_classifier&name=classifier", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateModel(t *testing.T) {
	modelRepo, _, r := setupRouter()

	modelRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.RegisteredModel")).Return(nil)
	modelRepo.On("GetByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).
		Return(liveModel(uuid.New()), nil)

	body, _ := json.Marshal(map[string]string{
		"catalog": "main", "schema": "news_classifier", "name": "classifier",
	})
	req, _ := http.NewRequest("POST", "/api/v1/registry/models", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateModel_MissingName(t *testing.T) {
	_, _, r := setupRouter()

	body, _ := json.Marshal(map[string]string{"catalog": "main"})
	req, _ := http.NewRequest("POST", "/api/v1/registry/models", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateModel_NameConflict(t *testing.T) {
	modelRepo, _, r := setupRouter()

	modelRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.RegisteredModel")).
		Return(domain.ErrModelNameConflict)

	body, _ := json.Marshal(map[string]string{
		"catalog": "main", "schema": "news_classifier", "name": "classifier",
	})
	req, _ := http.NewRequest("POST", "/api/v1/registry/models", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteModel_LiveModelRejected(t *testing.T) {
	modelRepo, _, r := setupRouter()

	id := uuid.New()
	modelRepo.On("GetByID", mock.Anything, id).Return(liveModel(id), nil)

	req, _ := http.NewRequest("DELETE", "/api/v1/registry/models/"+id.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPurgeVersions(t *testing.T) {
	modelRepo, versionRepo, r := setupRouter()

	id := uuid.New()
	modelRepo.On("GetByID", mock.Anything, id).Return(liveModel(id), nil)
	versionRepo.On("DeleteByModel", mock.Anything, id).Return(4, nil)

	req, _ := http.NewRequest("DELETE", "/api/v1/registry/models/"+id.String()+"/versions", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, float64(4), resp["deleted_versions"])
}
