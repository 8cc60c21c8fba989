package dto

import (
	"news-classifier-registry/internal/core/services"
)

type SubmitRunRequest struct {
	RunID    string             `json:"run_id" binding:"required"`
	Provider string             `json:"provider"`
	Model    string             `json:"model"`
	Metrics  map[string]float64 `json:"metrics" binding:"required"`
}

type RegistrationResultResponse struct {
	Registered  bool                  `json:"registered"`
	Reason      string                `json:"reason"`
	Alias       string                `json:"alias,omitempty"`
	Version     *ModelVersionResponse `json:"version,omitempty"`
	DuplicateOf *ModelVersionResponse `json:"duplicate_of,omitempty"`
}

func ToRegistrationResultResponse(result *services.RegistrationResult) RegistrationResultResponse {
	resp := RegistrationResultResponse{
		Registered: result.Registered,
		Reason:     result.Reason,
		Alias:      string(result.Alias),
	}
	if result.Version != nil {
		v := ToModelVersionResponse(result.Version)
		resp.Version = &v
	}
	if result.Duplicate != nil {
		d := ToModelVersionResponse(result.Duplicate)
		resp.DuplicateOf = &d
	}
	return resp
}
