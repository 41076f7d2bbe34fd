package sources

import (
	"context"
	"time"

	"github.com/callsheet/mentions-bot/internal/models"
)

// ArticleSource fetches trade-press articles published within the window.
type ArticleSource interface {
	GetName() string
	IsEnabled() bool
	FetchArticles(ctx context.Context, window time.Duration) ([]models.Article, error)
}

// CreditSource fetches cast/crew credits for releases premiering within the
// window.
type CreditSource interface {
	GetName() string
	IsEnabled() bool
	FetchCredits(ctx context.Context, window time.Duration) ([]models.Credit, error)
}
