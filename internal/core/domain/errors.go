package domain

import "errors"

// ============================================================================
// Registry Errors
// ============================================================================

var (
	ErrModelNotFound     = errors.New("registered model not found")
	ErrVersionNotFound   = errors.New("model version not found")
	ErrAliasNotFound     = errors.New("no version holds this alias")
	ErrModelNameConflict = errors.New("model with this name already exists in the catalog schema")
	ErrInvalidModelName  = errors.New("model name is required")
	ErrInvalidAlias      = errors.New("alias must be one of champion, challenger, candidate, defeated")
	ErrCannotDeleteModel = errors.New("cannot delete model: must be archived first")
)

// ============================================================================
// Registration Gate Errors
// ============================================================================

var (
	ErrMissingRunID     = errors.New("run ID is required")
	ErrMissingMetrics   = errors.New("run metrics are required")
	ErrVersionConflict  = errors.New("version number already registered for this model")
	ErrDuplicateVersion = errors.New("a version with identical performance is already registered")
)

// ============================================================================
// Promotion Errors
// ============================================================================

var (
	ErrNoChallenger         = errors.New("no challenger is waiting for promotion")
	ErrPromotionNotApproved = errors.New("promotion requires explicit approval")
)

// ============================================================================
// Inference Errors
// ============================================================================

var (
	ErrNoArticles             = errors.New("no articles to classify")
	ErrClassifierNotAvailable = errors.New("classifier endpoint is not configured")
)
