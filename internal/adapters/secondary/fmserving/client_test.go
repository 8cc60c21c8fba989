package fmserving

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-classifier-registry/internal/config"
	"news-classifier-registry/internal/core/domain"
)

func chatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		assert.Contains(t, req.Messages[0].Content, "Category:")

		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func testConfig(url string) *config.FMServingConfig {
	return &config.FMServingConfig{
		Enabled:   true,
		URL:       url,
		Model:     "databricks-meta-llama-3-3-70b-instruct",
		Timeout:   5 * time.Second,
		MaxTokens: 64,
	}
}

func TestClient_Classify(t *testing.T) {
	srv := chatServer(t, "Category: Technology\nSentiment: Positive")
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	require.True(t, c.IsAvailable())

	result, err := c.Classify(context.Background(), domain.NewsArticle{
		Title:   "Chip startup raises round",
		Content: "A semiconductor startup announced new funding.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Technology", result.Category)
	assert.Equal(t, "Positive", result.Sentiment)
	assert.Contains(t, result.Raw, "Category: Technology")
}

func TestClient_Classify_CaseInsensitiveLabels(t *testing.T) {
	srv := chatServer(t, "Category: technology\nSentiment: POSITIVE")
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))

	result, err := c.Classify(context.Background(), domain.NewsArticle{Title: "t"})
	require.NoError(t, err)
	assert.Equal(t, "Technology", result.Category)
	assert.Equal(t, "Positive", result.Sentiment)
}

func TestClient_Classify_UnparseableResponse(t *testing.T) {
	srv := chatServer(t, "I believe this is about sports.")
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))

	result, err := c.Classify(context.Background(), domain.NewsArticle{Title: "t"})
	require.NoError(t, err)
	assert.Equal(t, "Unknown", result.Category)
	assert.Equal(t, "Unknown", result.Sentiment)
}

func TestClient_Classify_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))

	_, err := c.Classify(context.Background(), domain.NewsArticle{Title: "t"})
	assert.Error(t, err)
}

func TestClient_Disabled(t *testing.T) {
	c := NewClient(&config.FMServingConfig{Enabled: false})
	assert.False(t, c.IsAvailable())

	_, err := c.Classify(context.Background(), domain.NewsArticle{Title: "t"})
	assert.ErrorIs(t, err, domain.ErrClassifierNotAvailable)
}

func TestParseResponse_ExtraLines(t *testing.T) {
	category, sentiment := parseResponse("Here is my analysis:\n  Category: Business\n  Sentiment: Negative\nThanks!")
	assert.Equal(t, "Business", category)
	assert.Equal(t, "Negative", sentiment)
}
