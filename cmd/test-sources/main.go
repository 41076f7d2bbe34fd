package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/callsheet/mentions-bot/internal/config"
	"github.com/callsheet/mentions-bot/internal/sources"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("🔍 Callsheet Mentions Bot - Source Connectivity Test")
	fmt.Println("====================================================")

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	fmt.Println("\n📡 Testing sources...")
	fmt.Println(strings.Repeat("-", 40))

	testArticleSource(ctx, "NewsAPI", sources.NewNewsAPISource(cfg.NewsAPIKey))
	testCreditSource(ctx, "TMDB", sources.NewTMDBSource(cfg.TMDBAPIKey))

	fmt.Println("\n✅ Source connectivity test completed!")
	fmt.Println("\n💡 Next steps:")
	fmt.Println("   • Configure missing API keys in .env file")
	fmt.Println("   • Import contacts, then run the bot")
}

func testArticleSource(ctx context.Context, name string, source sources.ArticleSource) {
	fmt.Printf("🔸 Testing %s... ", name)

	if !source.IsEnabled() {
		fmt.Printf("⚠️  DISABLED (missing API key)\n")
		return
	}

	articles, err := source.FetchArticles(ctx, 24*time.Hour)
	if err != nil {
		fmt.Printf("❌ ERROR: %v\n", err)
		return
	}

	fmt.Printf("✅ SUCCESS (%d articles found)\n", len(articles))
	if len(articles) > 0 {
		fmt.Printf("   📝 Sample: \"%s\" (%s)\n", articles[0].Title, articles[0].Outlet)
	}
}

func testCreditSource(ctx context.Context, name string, source sources.CreditSource) {
	fmt.Printf("🔸 Testing %s... ", name)

	if !source.IsEnabled() {
		fmt.Printf("⚠️  DISABLED (missing API key)\n")
		return
	}

	credits, err := source.FetchCredits(ctx, 30*24*time.Hour)
	if err != nil {
		fmt.Printf("❌ ERROR: %v\n", err)
		return
	}

	fmt.Printf("✅ SUCCESS (%d credits found)\n", len(credits))
	if len(credits) > 0 {
		fmt.Printf("   📝 Sample: %s on \"%s\"\n", credits[0].PersonName, credits[0].Title)
	}
}
