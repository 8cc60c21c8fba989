package dto

import (
	"news-classifier-registry/internal/core/domain"
	"news-classifier-registry/internal/core/services"
)

type ArticleRequest struct {
	Title             string `json:"title" binding:"required"`
	Content           string `json:"content"`
	URL               string `json:"url"`
	ExpectedCategory  string `json:"expected_category"`
	ExpectedSentiment string `json:"expected_sentiment"`
}

type ClassifyRequest struct {
	Alias    string           `json:"alias"`
	Limit    int              `json:"limit"`
	Articles []ArticleRequest `json:"articles"`
}

type PredictionResponse struct {
	Title             string `json:"title"`
	Category          string `json:"category"`
	Sentiment         string `json:"sentiment"`
	ExpectedCategory  string `json:"expected_category,omitempty"`
	ExpectedSentiment string `json:"expected_sentiment,omitempty"`
}

type InferenceReportResponse struct {
	Model            RegisteredModelResponse `json:"model"`
	Version          ModelVersionResponse    `json:"version"`
	Predictions      []PredictionResponse    `json:"predictions"`
	CategoryMetrics  map[string]float64      `json:"category_metrics,omitempty"`
	SentimentMetrics map[string]float64      `json:"sentiment_metrics,omitempty"`
}

func (r *ClassifyRequest) ToArticles() []domain.NewsArticle {
	articles := make([]domain.NewsArticle, 0, len(r.Articles))
	for _, a := range r.Articles {
		articles = append(articles, domain.NewsArticle{
			Title:             a.Title,
			Content:           a.Content,
			URL:               a.URL,
			ExpectedCategory:  a.ExpectedCategory,
			ExpectedSentiment: a.ExpectedSentiment,
		})
	}
	return articles
}

func ToInferenceReportResponse(report *services.InferenceReport) InferenceReportResponse {
	predictions := make([]PredictionResponse, 0, len(report.Predictions))
	for _, p := range report.Predictions {
		predictions = append(predictions, PredictionResponse{
			Title:             p.Title,
			Category:          p.Category,
			Sentiment:         p.Sentiment,
			ExpectedCategory:  p.ExpectedCategory,
			ExpectedSentiment: p.ExpectedSentiment,
		})
	}

	return InferenceReportResponse{
		Model:            ToRegisteredModelResponse(report.Model),
		Version:          ToModelVersionResponse(report.Version),
		Predictions:      predictions,
		CategoryMetrics:  report.CategoryMetrics,
		SentimentMetrics: report.SentimentMetrics,
	}
}
