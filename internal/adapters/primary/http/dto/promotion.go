package dto

import (
	"news-classifier-registry/internal/core/services"
)

type PromoteRequest struct {
	Approved bool `json:"approved"`
}

type PromotionStatusResponse struct {
	Model               RegisteredModelResponse `json:"model"`
	Challenger          ModelVersionResponse    `json:"challenger"`
	Champion            *ModelVersionResponse   `json:"champion,omitempty"`
	AccuracyImprovement float64                 `json:"accuracy_improvement"`
	Serving             *ServingStatusResponse  `json:"serving,omitempty"`
}

// ServingStatusResponse is the champion endpoint readiness reported
// alongside a promotion comparison.
type ServingStatusResponse struct {
	Ready bool   `json:"ready"`
	URL   string `json:"url,omitempty"`
	Error string `json:"error,omitempty"`
}

type PromotionResultResponse struct {
	Champion ModelVersionResponse  `json:"champion"`
	Defeated *ModelVersionResponse `json:"defeated,omitempty"`
}

func ToPromotionStatusResponse(status *services.PromotionStatus) PromotionStatusResponse {
	resp := PromotionStatusResponse{
		Model:               ToRegisteredModelResponse(status.Model),
		Challenger:          ToModelVersionResponse(status.Challenger),
		AccuracyImprovement: status.Improvement,
	}
	if status.Champion != nil {
		c := ToModelVersionResponse(status.Champion)
		resp.Champion = &c
	}
	if status.Serving != nil {
		resp.Serving = &ServingStatusResponse{
			Ready: status.Serving.Ready,
			URL:   status.Serving.URL,
			Error: status.Serving.Error,
		}
	}
	return resp
}

func ToPromotionResultResponse(result *services.PromotionResult) PromotionResultResponse {
	resp := PromotionResultResponse{
		Champion: ToModelVersionResponse(result.Champion),
	}
	if result.Defeated != nil {
		d := ToModelVersionResponse(result.Defeated)
		resp.Defeated = &d
	}
	return resp
}
