package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"news-classifier-registry/internal/core/domain"
)

func TestScoreLabels_PerfectPredictions(t *testing.T) {
	expected := []string{"Technology", "Business", "Sports"}

	metrics := scoreLabels(expected, expected, domain.NewsCategories, "category")

	assert.Equal(t, 1.0, metrics["category_accuracy"])
	assert.Equal(t, 1.0, metrics["category_precision_weighted"])
	assert.Equal(t, 1.0, metrics["category_recall_weighted"])
	assert.Equal(t, 1.0, metrics["category_f1_weighted"])
}

func TestScoreLabels_PartialAccuracy(t *testing.T) {
	expected := []string{"Technology", "Technology", "Business", "Sports"}
	predicted := []string{"Technology", "Business", "Business", "Sports"}

	metrics := scoreLabels(expected, predicted, domain.NewsCategories, "category")

	assert.Equal(t, 0.75, metrics["category_accuracy"])
	assert.Greater(t, metrics["category_f1_weighted"], 0.0)
	assert.Less(t, metrics["category_f1_weighted"], 1.0)
}

func TestScoreLabels_UnknownLabelCountsAgainstAccuracy(t *testing.T) {
	expected := []string{"Technology", "Technology"}
	predicted := []string{"Unknown", "Technology"}

	metrics := scoreLabels(expected, predicted, domain.NewsCategories, "category")

	assert.Equal(t, 0.5, metrics["category_accuracy"])
}

func TestScoreLabels_Empty(t *testing.T) {
	metrics := scoreLabels(nil, nil, domain.NewsCategories, "category")
	assert.Empty(t, metrics)
}

func TestScoreLabels_SentimentPrefix(t *testing.T) {
	expected := []string{"Positive", "Negative", "Neutral"}
	predicted := []string{"Positive", "Negative", "Positive"}

	metrics := scoreLabels(expected, predicted, domain.SentimentCategories, "sentiment")

	assert.InDelta(t, 2.0/3.0, metrics["sentiment_accuracy"], 1e-9)
	assert.Contains(t, metrics, "sentiment_precision_weighted")
	assert.Contains(t, metrics, "sentiment_recall_weighted")
}
