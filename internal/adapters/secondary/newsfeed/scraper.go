package newsfeed

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"news-classifier-registry/internal/core/domain"
	ports "news-classifier-registry/internal/core/ports/output"
)

const defaultLimit = 20

// Scraper pulls articles from a news listing page. It expects <article>
// elements with a heading and paragraph text, which covers most wire-style
// listing markup.
type Scraper struct {
	feedURL string
	client  *http.Client
}

func NewScraper(feedURL string, client *http.Client) *Scraper {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &Scraper{feedURL: feedURL, client: client}
}

func (s *Scraper) Fetch(ctx context.Context, limit int) ([]domain.NewsArticle, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	doc, err := s.fetchDocument(ctx)
	if err != nil {
		return nil, err
	}

	articles := make([]domain.NewsArticle, 0, limit)
	seen := map[string]struct{}{}

	doc.Find("article").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		title := strings.TrimSpace(sel.Find("h1, h2, h3").First().Text())
		if title == "" {
			return true
		}
		if _, ok := seen[title]; ok {
			return true
		}
		seen[title] = struct{}{}

		content := strings.TrimSpace(sel.Find("p").Text())
		href, _ := sel.Find("a").First().Attr("href")

		articles = append(articles, domain.NewsArticle{
			Title:   title,
			Content: content,
			URL:     href,
		})
		return len(articles) < limit
	})

	return articles, nil
}

func (s *Scraper) fetchDocument(ctx context.Context) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "news-classifier-registry/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return doc, nil
}

var _ ports.ArticleSource = (*Scraper)(nil)
