package ports

import (
	"context"

	"news-classifier-registry/internal/core/domain"
)

// Classification is a single classifier response.
type Classification struct {
	Category  string
	Sentiment string
	Raw       string
}

// ClassifierClient talks to a foundation-model serving endpoint for
// zero-shot article classification.
type ClassifierClient interface {
	IsAvailable() bool
	Classify(ctx context.Context, article domain.NewsArticle) (*Classification, error)
}

// ArticleSource supplies articles when a classification request does not
// carry its own.
type ArticleSource interface {
	Fetch(ctx context.Context, limit int) ([]domain.NewsArticle, error)
}
