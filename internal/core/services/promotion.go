package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"news-classifier-registry/internal/core/domain"
	ports "news-classifier-registry/internal/core/ports/output"
)

// PromotionStatus is the challenger/champion comparison shown before an
// approval decision.
type PromotionStatus struct {
	Model       *domain.RegisteredModel `json:"model"`
	Challenger  *domain.ModelVersion    `json:"challenger"`
	Champion    *domain.ModelVersion    `json:"champion,omitempty"`
	Improvement float64                 `json:"accuracy_improvement"`
	Serving     *ports.EndpointStatus   `json:"serving,omitempty"`
}

// PromotionResult summarizes an executed promotion.
type PromotionResult struct {
	Champion *domain.ModelVersion `json:"champion"`
	Defeated *domain.ModelVersion `json:"defeated,omitempty"`
}

// PromotionService executes the approval-gated challenger-to-champion
// transition.
type PromotionService struct {
	versionRepo ports.ModelVersionRepository
	modelRepo   ports.RegisteredModelRepository
	serving     ports.ServingClient
	namespace   string
	endpoint    string
}

func NewPromotionService(versionRepo ports.ModelVersionRepository, modelRepo ports.RegisteredModelRepository, serving ports.ServingClient, namespace, endpoint string) *PromotionService {
	return &PromotionService{
		versionRepo: versionRepo,
		modelRepo:   modelRepo,
		serving:     serving,
		namespace:   namespace,
		endpoint:    endpoint,
	}
}

// Status returns the pending comparison, or ErrNoChallenger when no
// version is waiting for review.
func (s *PromotionService) Status(ctx context.Context, modelID uuid.UUID) (*PromotionStatus, error) {
	model, err := s.modelRepo.GetByID(ctx, modelID)
	if err != nil {
		return nil, err
	}

	challenger, err := s.versionRepo.GetByAlias(ctx, modelID, domain.AliasChallenger)
	if err != nil {
		if errors.Is(err, domain.ErrAliasNotFound) {
			return nil, domain.ErrNoChallenger
		}
		return nil, err
	}

	status := &PromotionStatus{Model: model, Challenger: challenger}

	champion, err := s.versionRepo.GetByAlias(ctx, modelID, domain.AliasChampion)
	if err != nil && !errors.Is(err, domain.ErrAliasNotFound) {
		return nil, err
	}
	if champion != nil {
		status.Champion = champion
		status.Improvement = challenger.Accuracy() - champion.Accuracy()
		status.Serving = s.servingStatus(ctx)
	} else {
		status.Improvement = challenger.Accuracy()
	}

	return status, nil
}

// servingStatus reports the champion endpoint's readiness. A status-check
// failure is logged and reported as no status: the endpoint may lag the
// registry, the comparison is still valid.
func (s *PromotionService) servingStatus(ctx context.Context) *ports.EndpointStatus {
	if s.serving == nil || !s.serving.IsAvailable() {
		return nil
	}

	endpointStatus, err := s.serving.GetStatus(ctx, s.namespace, s.endpoint)
	if err != nil {
		log.WithError(err).Warn("champion endpoint status check failed")
		return nil
	}
	return endpointStatus
}

// Promote executes the transition: champion -> defeated, challenger ->
// champion, challenger alias removed, descriptions rewritten. Refuses
// without explicit approval. The serving endpoint is repointed best-effort
// after the registry state is committed.
func (s *PromotionService) Promote(ctx context.Context, modelID uuid.UUID, approved bool) (*PromotionResult, error) {
	if !approved {
		return nil, domain.ErrPromotionNotApproved
	}

	status, err := s.Status(ctx, modelID)
	if err != nil {
		return nil, err
	}

	challenger := status.Challenger

	if status.Champion != nil {
		if err := s.versionRepo.SetAlias(ctx, modelID, domain.AliasDefeated, status.Champion.Version); err != nil {
			return nil, err
		}
	}

	if err := s.versionRepo.SetAlias(ctx, modelID, domain.AliasChampion, challenger.Version); err != nil {
		return nil, err
	}

	if err := s.versionRepo.DeleteAlias(ctx, modelID, domain.AliasChallenger); err != nil {
		return nil, err
	}

	challenger.Description = "Champion - promoted from challenger"
	if status.Champion != nil {
		challenger.Description = fmt.Sprintf("Champion - promoted from challenger (replaced v%d)", status.Champion.Version)
	}
	if err := s.versionRepo.Update(ctx, challenger); err != nil {
		return nil, err
	}

	var defeated *domain.ModelVersion
	if status.Champion != nil {
		defeated = status.Champion
		defeated.Description = fmt.Sprintf("Defeated - replaced by v%d", challenger.Version)
		if err := s.versionRepo.Update(ctx, defeated); err != nil {
			return nil, err
		}
	}

	newChampion, err := s.versionRepo.GetByID(ctx, challenger.ID)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"model":    status.Model.FullName(),
		"champion": newChampion.Version,
	}).Info("challenger promoted to champion")

	s.syncServing(ctx, status.Model, newChampion)

	return &PromotionResult{Champion: newChampion, Defeated: defeated}, nil
}

// syncServing repoints the champion endpoint. Failures are logged, not
// returned: the registry is the source of truth and the endpoint converges
// on the next promotion or a manual sync.
func (s *PromotionService) syncServing(ctx context.Context, model *domain.RegisteredModel, champion *domain.ModelVersion) {
	if s.serving == nil || !s.serving.IsAvailable() {
		return
	}

	endpoint := &ports.ChampionEndpoint{
		Name:       s.endpoint,
		Namespace:  s.namespace,
		ModelName:  model.FullName(),
		StorageURI: fmt.Sprintf("models:/%s@%s", model.FullName(), domain.AliasChampion),
		Version:    champion.Version,
	}

	if err := s.serving.SyncChampion(ctx, endpoint); err != nil {
		log.WithError(err).Warn("champion endpoint sync failed")
	}
}
