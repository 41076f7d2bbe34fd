package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/callsheet/mentions-bot/internal/models"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// Trade outlets worth scanning. NewsAPI filters server-side by domain, so
// one request covers all of them.
var tradeOutlets = []string{
	"variety.com",
	"hollywoodreporter.com",
	"deadline.com",
	"indiewire.com",
}

// NewsAPISource fetches trade-press articles through newsapi.org.
type NewsAPISource struct {
	apiKey  string
	outlets []string
	client  *resty.Client
}

var _ ArticleSource = (*NewsAPISource)(nil)

type newsAPIResponse struct {
	Status       string           `json:"status"`
	Message      string           `json:"message"`
	TotalResults int              `json:"totalResults"`
	Articles     []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
}

// NewNewsAPISource creates a trade-press source backed by NewsAPI.
func NewNewsAPISource(apiKey string) *NewsAPISource {
	return &NewsAPISource{
		apiKey:  apiKey,
		outlets: tradeOutlets,
		client:  resty.New().SetTimeout(30 * time.Second),
	}
}

func (n *NewsAPISource) GetName() string {
	return "newsapi"
}

func (n *NewsAPISource) IsEnabled() bool {
	return n.apiKey != ""
}

// FetchArticles pulls every article the trade outlets published within the
// window.
func (n *NewsAPISource) FetchArticles(ctx context.Context, window time.Duration) ([]models.Article, error) {
	if !n.IsEnabled() {
		logrus.Debug("NewsAPI source disabled - missing API key")
		return nil, nil
	}

	from := time.Now().Add(-window).UTC().Format(time.RFC3339)

	resp, err := n.client.R().
		SetContext(ctx).
		SetHeader("X-Api-Key", n.apiKey).
		SetQueryParams(map[string]string{
			"domains":  strings.Join(n.outlets, ","),
			"from":     from,
			"language": "en",
			"sortBy":   "publishedAt",
			"pageSize": "100",
		}).
		Get("https://newsapi.org/v2/everything")

	if err != nil {
		return nil, fmt.Errorf("newsapi request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("newsapi returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var searchResp newsAPIResponse
	if err := json.Unmarshal(resp.Body(), &searchResp); err != nil {
		return nil, fmt.Errorf("newsapi response parse failed: %w", err)
	}
	if searchResp.Status != "ok" {
		return nil, fmt.Errorf("newsapi error: %s", searchResp.Message)
	}

	var articles []models.Article
	for _, item := range searchResp.Articles {
		if item.URL == "" || item.Title == "" {
			continue
		}
		publishedAt, _ := time.Parse(time.RFC3339, item.PublishedAt)
		articles = append(articles, models.Article{
			Source:      n.GetName(),
			Outlet:      item.Source.Name,
			Title:       item.Title,
			Author:      item.Author,
			URL:         item.URL,
			Excerpt:     item.Description,
			Content:     item.Content,
			PublishedAt: publishedAt,
		})
	}

	return dedupeArticles(articles), nil
}

// dedupeArticles drops repeated document keys, keeping the first seen.
func dedupeArticles(articles []models.Article) []models.Article {
	seen := make(map[string]bool)
	var unique []models.Article

	for _, article := range articles {
		if !seen[article.Key()] {
			seen[article.Key()] = true
			unique = append(unique, article)
		}
	}
	return unique
}
