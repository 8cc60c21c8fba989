package fmserving

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"news-classifier-registry/internal/config"
	"news-classifier-registry/internal/core/domain"
	ports "news-classifier-registry/internal/core/ports/output"
)

// Zero-shot prompt asking for both labels in a fixed two-line format.
const combinedPromptTemplate = `You are a news analysis expert. Analyze the following news article and provide both category and sentiment.

Categories: %s
Sentiments: %s

News Article:
Title: %s
Content: %s

Instructions:
1. Classify the article into the most appropriate category
2. Determine the overall sentiment
3. Respond in this exact format:
   Category: <category_name>
   Sentiment: <sentiment_name>

Response:`

type client struct {
	baseURL   string
	model     string
	maxTokens int
	enabled   bool
	http      *http.Client
}

// NewClient builds a classifier adapter against an OpenAI-compatible chat
// completions endpoint (Databricks foundation-model serving speaks this
// protocol).
func NewClient(cfg *config.FMServingConfig) ports.ClassifierClient {
	if !cfg.Enabled {
		return &client{enabled: false}
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 64
	}

	return &client{
		baseURL:   strings.TrimRight(cfg.URL, "/"),
		model:     cfg.Model,
		maxTokens: maxTokens,
		enabled:   true,
		http:      &http.Client{Timeout: timeout},
	}
}

func (c *client) IsAvailable() bool {
	return c.enabled
}

type chatRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	Messages  []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *client) Classify(ctx context.Context, article domain.NewsArticle) (*ports.Classification, error) {
	if !c.enabled {
		return nil, domain.ErrClassifierNotAvailable
	}

	prompt := fmt.Sprintf(combinedPromptTemplate,
		strings.Join(domain.NewsCategories, ", "),
		strings.Join(domain.SentimentCategories, ", "),
		article.Title, article.Content,
	)

	body, err := json.Marshal(chatRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call serving endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serving endpoint returned %s", resp.Status)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("decode chat response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("serving endpoint returned no choices")
	}

	raw := chatResp.Choices[0].Message.Content
	category, sentiment := parseResponse(raw)

	return &ports.Classification{
		Category:  category,
		Sentiment: sentiment,
		Raw:       raw,
	}, nil
}

// parseResponse pulls "Category:" and "Sentiment:" lines out of the model
// output. Values outside the known label sets pass through as "Unknown" so
// scoring counts them as wrong without losing the raw text.
func parseResponse(raw string) (category, sentiment string) {
	category, sentiment = "Unknown", "Unknown"

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if v, ok := strings.CutPrefix(line, "Category:"); ok {
			category = matchLabel(strings.TrimSpace(v), domain.NewsCategories)
		}
		if v, ok := strings.CutPrefix(line, "Sentiment:"); ok {
			sentiment = matchLabel(strings.TrimSpace(v), domain.SentimentCategories)
		}
	}
	return category, sentiment
}

func matchLabel(value string, labels []string) string {
	for _, l := range labels {
		if strings.EqualFold(value, l) {
			return l
		}
	}
	return "Unknown"
}

var _ ports.ClassifierClient = (*client)(nil)
