package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"news-classifier-registry/internal/core/domain"
	"news-classifier-registry/internal/core/gating"
	ports "news-classifier-registry/internal/core/ports/output"
)

// RunSubmission is an experiment run offered for registration.
type RunSubmission struct {
	RunID    string
	Provider string
	Model    string
	Metrics  map[string]float64
}

// RegistrationResult records the gate's decision. A rejected run carries
// the reason and, for duplicates, the version it collided with.
type RegistrationResult struct {
	Registered bool                 `json:"registered"`
	Reason     string               `json:"reason"`
	Alias      domain.Alias         `json:"alias,omitempty"`
	Version    *domain.ModelVersion `json:"version,omitempty"`
	Duplicate  *domain.ModelVersion `json:"duplicate_of,omitempty"`
}

// RegistrationService runs the automated gate: performance thresholds,
// duplicate-performance detection, champion comparison, alias assignment.
type RegistrationService struct {
	versionRepo ports.ModelVersionRepository
	modelRepo   ports.RegisteredModelRepository
	criteria    *gating.Store
}

func NewRegistrationService(versionRepo ports.ModelVersionRepository, modelRepo ports.RegisteredModelRepository, criteria *gating.Store) *RegistrationService {
	return &RegistrationService{versionRepo: versionRepo, modelRepo: modelRepo, criteria: criteria}
}

func (s *RegistrationService) Register(ctx context.Context, modelID uuid.UUID, run RunSubmission) (*RegistrationResult, error) {
	if run.RunID == "" {
		return nil, domain.ErrMissingRunID
	}
	if len(run.Metrics) == 0 {
		return nil, domain.ErrMissingMetrics
	}

	model, err := s.modelRepo.GetByID(ctx, modelID)
	if err != nil {
		return nil, err
	}

	criteria := s.criteria.Get()

	// Gate 1: performance floors.
	passes, reason := gating.EvaluatePerformance(run.Metrics, criteria)
	if !passes {
		log.WithFields(log.Fields{
			"model":  model.FullName(),
			"run_id": run.RunID,
			"reason": reason,
		}).Info("run rejected by production criteria")
		return &RegistrationResult{Registered: false, Reason: reason}, nil
	}

	// Gate 2: identical performance already registered.
	accuracyTag := gating.RegistrationTags(run.Metrics, run.Provider, run.Model, true, "")[domain.TagCategoryAccuracy]
	duplicate, err := s.versionRepo.FindByAccuracyTag(ctx, modelID, accuracyTag)
	if err != nil && !errors.Is(err, domain.ErrVersionNotFound) {
		return nil, err
	}
	if duplicate != nil {
		return &RegistrationResult{
			Registered: false,
			Reason: fmt.Sprintf("version %d (%s/%s) already registered with identical accuracy",
				duplicate.Version, duplicate.Provider, duplicate.Model),
			Duplicate: duplicate,
		}, nil
	}

	// Gate 3: champion comparison decides the alias.
	var championAccuracy *float64
	champion, err := s.versionRepo.GetByAlias(ctx, modelID, domain.AliasChampion)
	if err != nil && !errors.Is(err, domain.ErrAliasNotFound) {
		return nil, err
	}
	if champion != nil {
		acc := champion.Accuracy()
		championAccuracy = &acc
	}

	alias, decision := gating.Decide(run.Metrics, championAccuracy, criteria)

	now := time.Now()
	version := &domain.ModelVersion{
		ID:                uuid.New(),
		CreatedAt:         now,
		UpdatedAt:         now,
		RegisteredModelID: modelID,
		RunID:             run.RunID,
		Provider:          run.Provider,
		Model:             run.Model,
		Description:       decision,
		Status:            domain.VersionStatusReady,
		Metrics:           run.Metrics,
		Tags:              gating.RegistrationTags(run.Metrics, run.Provider, run.Model, true, decision),
	}

	if err := s.versionRepo.Create(ctx, version); err != nil {
		return nil, err
	}

	if err := s.versionRepo.SetAlias(ctx, modelID, alias, version.Version); err != nil {
		return nil, err
	}

	registered, err := s.versionRepo.GetByID(ctx, version.ID)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"model":   model.FullName(),
		"version": registered.Version,
		"alias":   alias,
		"run_id":  run.RunID,
	}).Info("run registered")

	return &RegistrationResult{
		Registered: true,
		Reason:     decision,
		Alias:      alias,
		Version:    registered,
	}, nil
}
