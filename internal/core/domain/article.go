package domain

// Classification label sets for the news classifier. Predictions outside
// these sets are scored as wrong but kept verbatim for inspection.
var (
	NewsCategories = []string{
		"Politics",
		"Technology",
		"Business",
		"Sports",
		"Entertainment",
		"Health",
		"Science",
		"World News",
	}

	SentimentCategories = []string{
		"Positive",
		"Neutral",
		"Negative",
	}
)

// NewsArticle is an inference input. Expected labels are optional; when
// present the inference report scores predictions against them.
type NewsArticle struct {
	Title             string `json:"title"`
	Content           string `json:"content"`
	URL               string `json:"url,omitempty"`
	ExpectedCategory  string `json:"expected_category,omitempty"`
	ExpectedSentiment string `json:"expected_sentiment,omitempty"`
}

// Prediction is the classifier output for a single article.
type Prediction struct {
	Title             string `json:"title"`
	Category          string `json:"predicted_category"`
	Sentiment         string `json:"predicted_sentiment"`
	ExpectedCategory  string `json:"expected_category,omitempty"`
	ExpectedSentiment string `json:"expected_sentiment,omitempty"`
	Raw               string `json:"raw_response,omitempty"`
}
