package handlers

import (
	"net/http"

	"news-classifier-registry/internal/adapters/primary/http/dto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) GetPromotionStatus(c *gin.Context) {
	modelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model id"})
		return
	}

	status, err := h.promotionSvc.Status(c.Request.Context(), modelID)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPromotionStatusResponse(status))
}

func (h *Handler) Promote(c *gin.Context) {
	modelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model id"})
		return
	}

	var req dto.PromoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.promotionSvc.Promote(c.Request.Context(), modelID, req.Approved)
	if err != nil {
		log.WithError(err).Error("promotion failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPromotionResultResponse(result))
}
