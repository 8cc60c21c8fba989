package handlers

import (
	"net/http"

	"news-classifier-registry/internal/adapters/primary/http/dto"
	"news-classifier-registry/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// SubmitRun offers an experiment run to the gate. A rejected run is a
// 200 with registered=false: rejection is a decision, not an error.
func (h *Handler) SubmitRun(c *gin.Context) {
	modelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model id"})
		return
	}

	var req dto.SubmitRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.registrationSvc.Register(c.Request.Context(), modelID, services.RunSubmission{
		RunID:    req.RunID,
		Provider: req.Provider,
		Model:    req.Model,
		Metrics:  req.Metrics,
	})
	if err != nil {
		log.WithError(err).Error("run registration failed")
		mapDomainError(c, err)
		return
	}

	status := http.StatusOK
	if result.Registered {
		status = http.StatusCreated
	}
	c.JSON(status, dto.ToRegistrationResultResponse(result))
}
