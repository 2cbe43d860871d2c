package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go-jobscout/internal/ai"
	"go-jobscout/internal/config"
	"go-jobscout/internal/profile"

	"github.com/joho/godotenv"
)

const sampleJob = `Senior Backend Engineer - Go & Python

Company: TechCorp Inc.
Location: Remote (India)

We are looking for an experienced backend engineer with strong skills in:
- Go (Golang) and Python
- Microservices architecture
- Docker and Kubernetes
- AWS cloud services
- 3+ years of experience

This is a full-time remote position.

Apply at: https://techcorp.com/careers/apply/backend-123`

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadFile(config.DefaultPath)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := ai.New(ctx, cfg.AI)
	if err != nil {
		log.Fatalf("❌ Failed to init AI client: %v", err)
	}

	prof, err := profile.Load(cfg.CVPath)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	fmt.Printf("🧪 Testing AI analyzer (%s)...\n\n", client.Name())

	result := ai.NewScorer(client).Score(ctx, sampleJob, prof.Text)

	link := "null"
	if result.ApplyLink != nil {
		link = *result.ApplyLink
	}
	fmt.Printf("✅ Match Score: %d/100\n", result.MatchScore)
	fmt.Printf("📝 Reason: %s\n", result.Reason)
	fmt.Printf("🔗 Apply Link: %s\n", link)
}
