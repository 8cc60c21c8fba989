package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"news-classifier-registry/internal/core/domain"
	ports "news-classifier-registry/internal/core/ports/output"
)

// MockClassifierClient is a mock of ClassifierClient.
type MockClassifierClient struct {
	mock.Mock
}

func (m *MockClassifierClient) IsAvailable() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockClassifierClient) Classify(ctx context.Context, article domain.NewsArticle) (*ports.Classification, error) {
	args := m.Called(ctx, article)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.Classification), args.Error(1)
}

// MockArticleSource is a mock of ArticleSource.
type MockArticleSource struct {
	mock.Mock
}

func (m *MockArticleSource) Fetch(ctx context.Context, limit int) ([]domain.NewsArticle, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NewsArticle), args.Error(1)
}

// MockServingClient is a mock of ServingClient.
type MockServingClient struct {
	mock.Mock
}

func (m *MockServingClient) IsAvailable() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockServingClient) SyncChampion(ctx context.Context, endpoint *ports.ChampionEndpoint) error {
	args := m.Called(ctx, endpoint)
	return args.Error(0)
}

func (m *MockServingClient) GetStatus(ctx context.Context, namespace, name string) (*ports.EndpointStatus, error) {
	args := m.Called(ctx, namespace, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.EndpointStatus), args.Error(1)
}
