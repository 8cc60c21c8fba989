package dto

import (
	"time"

	"github.com/google/uuid"

	"news-classifier-registry/internal/core/domain"
)

type ModelVersionResponse struct {
	ID                uuid.UUID          `json:"id"`
	CreatedAt         string             `json:"created_at"`
	UpdatedAt         string             `json:"updated_at"`
	RegisteredModelID uuid.UUID          `json:"registered_model_id"`
	Version           int                `json:"version"`
	RunID             string             `json:"run_id"`
	Provider          string             `json:"provider"`
	Model             string             `json:"model"`
	Description       string             `json:"description"`
	Status            string             `json:"status"`
	Metrics           map[string]float64 `json:"metrics"`
	Tags              map[string]string  `json:"tags"`
	Aliases           []string           `json:"aliases"`
}

type ListModelVersionsResponse struct {
	Items      []ModelVersionResponse `json:"items"`
	Total      int                    `json:"total"`
	PageSize   int                    `json:"page_size"`
	NextOffset int                    `json:"next_offset"`
}

type UpdateModelVersionRequest struct {
	Description string `json:"description" binding:"required"`
}

func ToModelVersionResponse(v *domain.ModelVersion) ModelVersionResponse {
	aliases := make([]string, 0, len(v.Aliases))
	for _, a := range v.Aliases {
		aliases = append(aliases, string(a))
	}

	return ModelVersionResponse{
		ID:                v.ID,
		CreatedAt:         v.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         v.UpdatedAt.Format(time.RFC3339),
		RegisteredModelID: v.RegisteredModelID,
		Version:           v.Version,
		RunID:             v.RunID,
		Provider:          v.Provider,
		Model:             v.Model,
		Description:       v.Description,
		Status:            string(v.Status),
		Metrics:           v.Metrics,
		Tags:              v.Tags,
		Aliases:           aliases,
	}
}
