package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/callsheet/mentions-bot/internal/models"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

const tmdbBaseURL = "https://api.themoviedb.org/3"

// Crew departments worth alerting on. Grips and caterers change between
// cuts; these do not.
var trackedDepartments = map[string]bool{
	"Directing":  true,
	"Writing":    true,
	"Production": true,
}

// TMDBSource fetches upcoming movie and TV releases with their cast/crew
// from The Movie Database.
type TMDBSource struct {
	apiKey string
	client *resty.Client
}

var _ CreditSource = (*TMDBSource)(nil)

type tmdbDiscoverResponse struct {
	Results []tmdbProduction `json:"results"`
}

type tmdbProduction struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`          // movies
	Name         string `json:"name"`           // tv
	ReleaseDate  string `json:"release_date"`   // movies
	FirstAirDate string `json:"first_air_date"` // tv
}

type tmdbCreditsResponse struct {
	Cast []struct {
		Name      string `json:"name"`
		Character string `json:"character"`
	} `json:"cast"`
	Crew []struct {
		Name       string `json:"name"`
		Job        string `json:"job"`
		Department string `json:"department"`
	} `json:"crew"`
}

// NewTMDBSource creates a credit source backed by TMDB.
func NewTMDBSource(apiKey string) *TMDBSource {
	return &TMDBSource{
		apiKey: apiKey,
		client: resty.New().SetTimeout(30 * time.Second),
	}
}

func (t *TMDBSource) GetName() string {
	return "tmdb"
}

func (t *TMDBSource) IsEnabled() bool {
	return t.apiKey != ""
}

// FetchCredits returns every cast/crew credit on movies releasing and TV
// premiering within the window, one Credit per (production, person).
func (t *TMDBSource) FetchCredits(ctx context.Context, window time.Duration) ([]models.Credit, error) {
	if !t.IsEnabled() {
		logrus.Debug("TMDB source disabled - missing API key")
		return nil, nil
	}

	var allCredits []models.Credit

	movieCredits, err := t.fetchMovieCredits(ctx, window)
	if err != nil {
		logrus.Errorf("Failed to fetch TMDB movie credits: %v", err)
	} else {
		allCredits = append(allCredits, movieCredits...)
	}

	tvCredits, err := t.fetchTVCredits(ctx, window)
	if err != nil {
		logrus.Errorf("Failed to fetch TMDB TV credits: %v", err)
	} else {
		allCredits = append(allCredits, tvCredits...)
	}

	if len(allCredits) == 0 && err != nil {
		return nil, err
	}
	return allCredits, nil
}

func (t *TMDBSource) fetchMovieCredits(ctx context.Context, window time.Duration) ([]models.Credit, error) {
	now := time.Now().UTC()
	productions, err := t.discover(ctx, "/discover/movie", map[string]string{
		"primary_release_date.gte": now.Format("2006-01-02"),
		"primary_release_date.lte": now.Add(window).Format("2006-01-02"),
		"sort_by":                  "popularity.desc",
	})
	if err != nil {
		return nil, err
	}

	var credits []models.Credit
	for _, p := range productions {
		releaseDate, _ := time.Parse("2006-01-02", p.ReleaseDate)
		productionCredits, err := t.fetchProductionCredits(ctx, "movie", p.ID, p.Title, releaseDate)
		if err != nil {
			logrus.Errorf("Failed to fetch credits for movie %d (%s): %v", p.ID, p.Title, err)
			continue
		}
		credits = append(credits, productionCredits...)
	}
	return credits, nil
}

func (t *TMDBSource) fetchTVCredits(ctx context.Context, window time.Duration) ([]models.Credit, error) {
	now := time.Now().UTC()
	productions, err := t.discover(ctx, "/discover/tv", map[string]string{
		"first_air_date.gte": now.Format("2006-01-02"),
		"first_air_date.lte": now.Add(window).Format("2006-01-02"),
		"sort_by":            "popularity.desc",
	})
	if err != nil {
		return nil, err
	}

	var credits []models.Credit
	for _, p := range productions {
		airDate, _ := time.Parse("2006-01-02", p.FirstAirDate)
		productionCredits, err := t.fetchProductionCredits(ctx, "tv", p.ID, p.Name, airDate)
		if err != nil {
			logrus.Errorf("Failed to fetch credits for tv %d (%s): %v", p.ID, p.Name, err)
			continue
		}
		credits = append(credits, productionCredits...)
	}
	return credits, nil
}

func (t *TMDBSource) discover(ctx context.Context, path string, params map[string]string) ([]tmdbProduction, error) {
	params["api_key"] = t.apiKey

	resp, err := t.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(tmdbBaseURL + path)

	if err != nil {
		return nil, fmt.Errorf("tmdb discover failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("tmdb returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var discoverResp tmdbDiscoverResponse
	if err := json.Unmarshal(resp.Body(), &discoverResp); err != nil {
		return nil, fmt.Errorf("tmdb response parse failed: %w", err)
	}
	return discoverResp.Results, nil
}

func (t *TMDBSource) fetchProductionCredits(ctx context.Context, kind string, id int64, title string, releaseDate time.Time) ([]models.Credit, error) {
	path := fmt.Sprintf("/%s/%d/credits", kind, id)
	if kind == "tv" {
		path = fmt.Sprintf("/tv/%d/aggregate_credits", id)
	}

	resp, err := t.client.R().
		SetContext(ctx).
		SetQueryParam("api_key", t.apiKey).
		Get(tmdbBaseURL + path)

	if err != nil {
		return nil, fmt.Errorf("tmdb credits failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("tmdb credits returned status %d", resp.StatusCode())
	}

	var creditsResp tmdbCreditsResponse
	if err := json.Unmarshal(resp.Body(), &creditsResp); err != nil {
		return nil, fmt.Errorf("tmdb credits parse failed: %w", err)
	}

	url := fmt.Sprintf("https://www.themoviedb.org/%s/%d", kind, id)

	var credits []models.Credit
	for _, member := range creditsResp.Cast {
		credits = append(credits, models.Credit{
			Source:      t.GetName(),
			Type:        kind,
			ID:          id,
			Title:       title,
			PersonName:  member.Name,
			Role:        member.Character,
			Department:  "cast",
			ReleaseDate: releaseDate,
			URL:         url,
		})
	}
	for _, member := range creditsResp.Crew {
		if !trackedDepartments[member.Department] {
			continue
		}
		credits = append(credits, models.Credit{
			Source:      t.GetName(),
			Type:        kind,
			ID:          id,
			Title:       title,
			PersonName:  member.Name,
			Role:        member.Job,
			Department:  member.Department,
			ReleaseDate: releaseDate,
			URL:         url,
		})
	}
	return credits, nil
}
