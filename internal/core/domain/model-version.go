package domain

import (
	"time"

	"github.com/google/uuid"
)

type VersionStatus string

// Registration only persists gated runs, so every stored version is READY.
const (
	VersionStatusReady VersionStatus = "READY"
)

// Metric keys logged by experiment runs. Category metrics gate
// registration; sentiment metrics are informational.
const (
	MetricCategoryAccuracy  = "category_accuracy"
	MetricCategoryF1        = "category_f1_weighted"
	MetricCategoryPrecision = "category_precision_weighted"
	MetricCategoryRecall    = "category_recall_weighted"
	MetricSentimentAccuracy = "sentiment_accuracy"
	MetricSentimentF1       = "sentiment_f1_weighted"
)

// Tag keys stamped on a version at registration time.
const (
	TagProvider          = "provider"
	TagModel             = "model"
	TagCategoryAccuracy  = "category_accuracy"
	TagCategoryF1        = "category_f1"
	TagSentimentAccuracy = "sentiment_accuracy"
	TagProductionReady   = "production_ready"
	TagValidationReason  = "validation_reason"
)

// ModelVersion is an immutable numbered registration of an experiment run.
// Version numbers are monotonic per registered model.
type ModelVersion struct {
	ID                uuid.UUID          `json:"id"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
	RegisteredModelID uuid.UUID          `json:"registered_model_id"`
	Version           int                `json:"version"`
	RunID             string             `json:"run_id"`
	Provider          string             `json:"provider"`
	Model             string             `json:"model"`
	Description       string             `json:"description"`
	Status            VersionStatus      `json:"status"`
	Metrics           map[string]float64 `json:"metrics"`
	Tags              map[string]string  `json:"tags"`

	// Computed field (populated by repository)
	Aliases []Alias `json:"aliases"`
}

// HasAlias reports whether the version currently holds the alias.
func (v *ModelVersion) HasAlias(a Alias) bool {
	for _, held := range v.Aliases {
		if held == a {
			return true
		}
	}
	return false
}

// Accuracy returns the gating metric, category accuracy, or zero when the
// run never logged it.
func (v *ModelVersion) Accuracy() float64 {
	return v.Metrics[MetricCategoryAccuracy]
}
