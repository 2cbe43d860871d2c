package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go-jobscout/internal/config"
	"go-jobscout/internal/database"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadFile(config.DefaultPath)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set. Please check your .env file.")
	}

	fmt.Println("Attempting to connect to PostgreSQL...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := database.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to the database: %v", err)
	}
	defer repo.Close()

	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("❌ %v", err)
	}

	matches, err := repo.ListRecentMatches(ctx, 5)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	fmt.Println("✅ Connected and schema is ready")
	fmt.Printf("📦 Recent matches: %d\n", len(matches))
	for _, m := range matches {
		fmt.Printf("  [%d] %s @ %s\n", m.Match.Score, m.Match.Title, m.Match.Company)
	}
}
