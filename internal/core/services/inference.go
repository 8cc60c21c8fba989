package services

import (
	"context"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"news-classifier-registry/internal/core/domain"
	ports "news-classifier-registry/internal/core/ports/output"
)

const defaultParallelism = 4

// InferenceReport is the result of a batch classification run against an
// aliased version. Metrics are present only when articles carried expected
// labels.
type InferenceReport struct {
	Model            *domain.RegisteredModel `json:"model"`
	Version          *domain.ModelVersion    `json:"version"`
	Predictions      []domain.Prediction     `json:"predictions"`
	CategoryMetrics  map[string]float64      `json:"category_metrics,omitempty"`
	SentimentMetrics map[string]float64      `json:"sentiment_metrics,omitempty"`
}

// InferenceService serves batch classification through the version a given
// alias points at, defaulting to the champion.
type InferenceService struct {
	versionRepo ports.ModelVersionRepository
	modelRepo   ports.RegisteredModelRepository
	classifier  ports.ClassifierClient
	source      ports.ArticleSource
}

func NewInferenceService(versionRepo ports.ModelVersionRepository, modelRepo ports.RegisteredModelRepository, classifier ports.ClassifierClient, source ports.ArticleSource) *InferenceService {
	return &InferenceService{
		versionRepo: versionRepo,
		modelRepo:   modelRepo,
		classifier:  classifier,
		source:      source,
	}
}

// Classify runs the batch. When articles is empty the configured article
// source supplies up to limit articles. Classification calls run
// concurrently with bounded parallelism; one failed article fails the run.
func (s *InferenceService) Classify(ctx context.Context, modelID uuid.UUID, alias domain.Alias, articles []domain.NewsArticle, limit int) (*InferenceReport, error) {
	if s.classifier == nil || !s.classifier.IsAvailable() {
		return nil, domain.ErrClassifierNotAvailable
	}
	if alias == "" {
		alias = domain.AliasChampion
	}
	if !alias.Valid() {
		return nil, domain.ErrInvalidAlias
	}

	model, err := s.modelRepo.GetByID(ctx, modelID)
	if err != nil {
		return nil, err
	}

	version, err := s.versionRepo.GetByAlias(ctx, modelID, alias)
	if err != nil {
		return nil, err
	}

	if len(articles) == 0 {
		if s.source == nil {
			return nil, domain.ErrNoArticles
		}
		articles, err = s.source.Fetch(ctx, limit)
		if err != nil {
			return nil, err
		}
		if len(articles) == 0 {
			return nil, domain.ErrNoArticles
		}
	}

	predictions := make([]domain.Prediction, len(articles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(defaultParallelism)

	for i, article := range articles {
		g.Go(func() error {
			result, err := s.classifier.Classify(gctx, article)
			if err != nil {
				return err
			}
			predictions[i] = domain.Prediction{
				Title:             article.Title,
				Category:          result.Category,
				Sentiment:         result.Sentiment,
				ExpectedCategory:  article.ExpectedCategory,
				ExpectedSentiment: article.ExpectedSentiment,
				Raw:               result.Raw,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &InferenceReport{
		Model:       model,
		Version:     version,
		Predictions: predictions,
	}
	report.CategoryMetrics, report.SentimentMetrics = scorePredictions(predictions)

	log.WithFields(log.Fields{
		"model":    model.FullName(),
		"alias":    alias,
		"version":  version.Version,
		"articles": len(articles),
	}).Info("batch classification completed")

	return report, nil
}

// scorePredictions evaluates predictions against expected labels. Articles
// without an expectation are skipped per axis.
func scorePredictions(predictions []domain.Prediction) (category, sentiment map[string]float64) {
	var catTrue, catPred, sentTrue, sentPred []string

	for _, p := range predictions {
		if p.ExpectedCategory != "" {
			catTrue = append(catTrue, p.ExpectedCategory)
			catPred = append(catPred, p.Category)
		}
		if p.ExpectedSentiment != "" {
			sentTrue = append(sentTrue, p.ExpectedSentiment)
			sentPred = append(sentPred, p.Sentiment)
		}
	}

	category = scoreLabels(catTrue, catPred, domain.NewsCategories, "category")
	sentiment = scoreLabels(sentTrue, sentPred, domain.SentimentCategories, "sentiment")
	return category, sentiment
}
