package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/callsheet/mentions-bot/internal/config"
	"github.com/callsheet/mentions-bot/internal/models"
	"github.com/callsheet/mentions-bot/internal/notifications"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Renders a sample report to the terminal and, when notification channels
// are configured, sends it through them so formatting can be checked
// end to end without waiting for a real scan.
func main() {
	fmt.Println("📊 Callsheet Mentions Bot - Report Preview")
	fmt.Println("==========================================")

	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	report := sampleReport()
	printReport(report)

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("\n⚠️  Skipping delivery, configuration incomplete: %v\n", err)
		return
	}

	fmt.Println("\n📨 Sending sample report through configured channels...")
	service := notifications.NewService(cfg)
	if err := service.SendReport(report); err != nil {
		fmt.Printf("❌ Delivery failed: %v\n", err)
		return
	}
	fmt.Println("✅ Sample report delivered")
}

func sampleReport() *models.Report {
	matches := []models.Match{
		{
			ID:            uuid.NewString(),
			DocumentKey:   "https://variety.com/sample-article",
			ContactID:     uuid.NewString(),
			ContactName:   "Robert Downey",
			Category:      models.CategoryActor,
			DocumentTitle: "Bob Downey Jr. signs new deal",
			Source:        "newsapi",
			URL:           "https://variety.com/sample-article",
			Location:      models.LocationTitle,
			Excerpt:       "Bob Downey Jr. signs new deal with the studio",
			MatchType:     "nickname",
			Score:         95,
			FoundAt:       time.Now(),
		},
		{
			ID:            uuid.NewString(),
			DocumentKey:   "movie:603",
			ContactID:     uuid.NewString(),
			ContactName:   "Greta Gerwig",
			Category:      models.CategoryDirector,
			DocumentTitle: "Untitled Heist Picture",
			Source:        "tmdb",
			URL:           "https://www.themoviedb.org/movie/603",
			Location:      models.LocationCredit,
			Excerpt:       "Greta Gerwig as Director (Directing)",
			MatchType:     "exact",
			Score:         100,
			FoundAt:       time.Now(),
		},
	}

	return &models.Report{
		GeneratedAt:  time.Now(),
		Period:       "daily",
		TotalMatches: len(matches),
		Matches:      matches,
		Summary: map[string]interface{}{
			"match_types": map[string]int{"nickname": 1, "exact": 1},
			"categories":  map[string]int{"ACTOR": 1, "DIRECTOR": 1},
		},
	}
}

func printReport(report *models.Report) {
	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Println("📊 CONTACT MENTIONS REPORT")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("📅 Period: %s\n", report.Period)
	fmt.Printf("🕒 Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Printf("📈 Total Mentions: %d\n", report.TotalMatches)

	fmt.Println("\n📝 Mentions:")
	for i, match := range report.Matches {
		fmt.Printf("\n   %d. %s (%s)\n", i+1, match.ContactName, match.Category)
		fmt.Printf("      📰 %s\n", match.DocumentTitle)
		fmt.Printf("      🔗 %s\n", match.URL)
		fmt.Printf("      🎯 %s match, score %d, found in %s\n", match.MatchType, match.Score, match.Location)
	}
	fmt.Println("\n" + strings.Repeat("=", 70))
}
