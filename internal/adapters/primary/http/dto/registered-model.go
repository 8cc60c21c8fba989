package dto

import (
	"time"

	"github.com/google/uuid"

	"news-classifier-registry/internal/core/domain"
)

type CreateRegisteredModelRequest struct {
	Catalog     string `json:"catalog"`
	Schema      string `json:"schema"`
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

type UpdateRegisteredModelRequest struct {
	Description *string `json:"description"`
	State       *string `json:"state"`
}

type RegisteredModelResponse struct {
	ID           uuid.UUID      `json:"id"`
	CreatedAt    string         `json:"created_at"`
	UpdatedAt    string         `json:"updated_at"`
	Catalog      string         `json:"catalog"`
	Schema       string         `json:"schema"`
	Name         string         `json:"name"`
	FullName     string         `json:"full_name"`
	Description  string         `json:"description"`
	State        string         `json:"state"`
	VersionCount int            `json:"version_count"`
	Aliases      map[string]int `json:"aliases,omitempty"`
}

type ListRegisteredModelsResponse struct {
	Items      []RegisteredModelResponse `json:"items"`
	Total      int                       `json:"total"`
	PageSize   int                       `json:"page_size"`
	NextOffset int                       `json:"next_offset"`
}

func ToRegisteredModelResponse(m *domain.RegisteredModel) RegisteredModelResponse {
	resp := RegisteredModelResponse{
		ID:           m.ID,
		CreatedAt:    m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    m.UpdatedAt.Format(time.RFC3339),
		Catalog:      m.Catalog,
		Schema:       m.Schema,
		Name:         m.Name,
		FullName:     m.FullName(),
		Description:  m.Description,
		State:        string(m.State),
		VersionCount: m.VersionCount,
	}

	if len(m.Aliases) > 0 {
		resp.Aliases = make(map[string]int, len(m.Aliases))
		for alias, version := range m.Aliases {
			resp.Aliases[string(alias)] = version
		}
	}

	return resp
}
