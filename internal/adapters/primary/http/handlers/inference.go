package handlers

import (
	"errors"
	"io"
	"net/http"

	"news-classifier-registry/internal/adapters/primary/http/dto"
	"news-classifier-registry/internal/core/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Classify runs batch classification through the version an alias points
// at (champion by default). With no posted articles the configured feed
// supplies them.
func (h *Handler) Classify(c *gin.Context) {
	modelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model id"})
		return
	}

	// An empty body means "classify the feed with the champion": every
	// field is optional, so EOF is not a client error.
	var req dto.ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.inferenceSvc.Classify(
		c.Request.Context(), modelID,
		domain.Alias(req.Alias), req.ToArticles(), req.Limit,
	)
	if err != nil {
		log.WithError(err).Error("batch classification failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInferenceReportResponse(report))
}
