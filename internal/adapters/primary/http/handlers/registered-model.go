package handlers

import (
	"net/http"
	"strconv"

	"news-classifier-registry/internal/adapters/primary/http/dto"
	ports "news-classifier-registry/internal/core/ports/output"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) ListModels(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	filter := ports.ListFilter{
		Catalog: c.Query("catalog"),
		Schema:  c.Query("schema"),
		State:   c.Query("state"),
		Search:  c.Query("search"),
		SortBy:  c.Query("sort_by"),
		Order:   c.Query("order"),
		Limit:   limit,
		Offset:  offset,
	}

	models, total, err := h.modelSvc.List(c.Request.Context(), filter)
	if err != nil {
		log.WithError(err).Error("list models failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.RegisteredModelResponse, 0, len(models))
	for _, m := range models {
		items = append(items, dto.ToRegisteredModelResponse(m))
	}

	c.JSON(http.StatusOK, dto.ListRegisteredModelsResponse{
		Items:      items,
		Total:      total,
		PageSize:   limit,
		NextOffset: offset + len(items),
	})
}

func (h *Handler) GetModel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model id"})
		return
	}

	model, err := h.modelSvc.Get(c.Request.Context(), id)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRegisteredModelResponse(model))
}

func (h *Handler) GetModelByName(c *gin.Context) {
	model, err := h.modelSvc.GetByName(
		c.Request.Context(),
		c.Query("catalog"), c.Query("schema"), c.Query("name"),
	)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRegisteredModelResponse(model))
}

func (h *Handler) CreateModel(c *gin.Context) {
	var req dto.CreateRegisteredModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model, err := h.modelSvc.Create(
		c.Request.Context(),
		req.Catalog, req.Schema, req.Name, req.Description,
	)
	if err != nil {
		log.WithError(err).Error("create model failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToRegisteredModelResponse(model))
}

func (h *Handler) UpdateModel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model id"})
		return
	}

	var req dto.UpdateRegisteredModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := make(map[string]interface{})
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.State != nil {
		updates["state"] = *req.State
	}

	model, err := h.modelSvc.Update(c.Request.Context(), id, updates)
	if err != nil {
		log.WithError(err).Error("update model failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRegisteredModelResponse(model))
}

func (h *Handler) DeleteModel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model id"})
		return
	}

	if err := h.modelSvc.Delete(c.Request.Context(), id); err != nil {
		log.WithError(err).Error("delete model failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) PurgeVersions(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model id"})
		return
	}

	deleted, err := h.modelSvc.PurgeVersions(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Error("purge versions failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted_versions": deleted})
}
