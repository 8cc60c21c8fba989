package handlers

import (
	"errors"
	"net/http"

	"news-classifier-registry/internal/core/domain"

	"github.com/gin-gonic/gin"
)

func mapDomainError(c *gin.Context, err error) {
	switch {
	// Not found errors
	case errors.Is(err, domain.ErrModelNotFound),
		errors.Is(err, domain.ErrVersionNotFound),
		errors.Is(err, domain.ErrAliasNotFound),
		errors.Is(err, domain.ErrNoChallenger):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	// Conflict errors
	case errors.Is(err, domain.ErrModelNameConflict),
		errors.Is(err, domain.ErrVersionConflict),
		errors.Is(err, domain.ErrDuplicateVersion):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	// Bad request / validation errors
	case errors.Is(err, domain.ErrInvalidModelName),
		errors.Is(err, domain.ErrInvalidAlias),
		errors.Is(err, domain.ErrCannotDeleteModel),
		errors.Is(err, domain.ErrMissingRunID),
		errors.Is(err, domain.ErrMissingMetrics),
		errors.Is(err, domain.ErrNoArticles):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	// Forbidden
	case errors.Is(err, domain.ErrPromotionNotApproved):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})

	// Service unavailable errors
	case errors.Is(err, domain.ErrClassifierNotAvailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
