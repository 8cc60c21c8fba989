package handlers

import (
	"news-classifier-registry/internal/core/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	modelSvc        *services.RegisteredModelService
	versionSvc      *services.ModelVersionService
	registrationSvc *services.RegistrationService
	promotionSvc    *services.PromotionService
	inferenceSvc    *services.InferenceService
}

func New(
	modelSvc *services.RegisteredModelService,
	versionSvc *services.ModelVersionService,
	registrationSvc *services.RegistrationService,
	promotionSvc *services.PromotionService,
	inferenceSvc *services.InferenceService,
) *Handler {
	return &Handler{
		modelSvc:        modelSvc,
		versionSvc:      versionSvc,
		registrationSvc: registrationSvc,
		promotionSvc:    promotionSvc,
		inferenceSvc:    inferenceSvc,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Registered Models
	r.GET("/models", h.ListModels)
	r.GET("/models/:id", h.GetModel)
	r.GET("/model", h.GetModelByName)
	r.POST("/models", h.CreateModel)
	r.PATCH("/models/:id", h.UpdateModel)
	r.DELETE("/models/:id", h.DeleteModel)

	// Model Versions (nested under model)
	r.GET("/models/:id/versions", h.ListModelVersions)
	r.GET("/models/:id/versions/:ver", h.GetModelVersion)
	r.GET("/models/:id/aliases/:alias", h.GetVersionByAlias)
	r.DELETE("/models/:id/versions", h.PurgeVersions)

	// Model Versions (direct access)
	r.PATCH("/model_versions/:id", h.UpdateModelVersion)

	// Gated registration
	r.POST("/models/:id/runs", h.SubmitRun)

	// Promotion workflow
	r.GET("/models/:id/promotion", h.GetPromotionStatus)
	r.POST("/models/:id/promotion", h.Promote)

	// Champion inference
	r.POST("/models/:id/classify", h.Classify)
}
