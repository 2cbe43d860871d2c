package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go-jobscout/internal/bootstrap"
	"go-jobscout/internal/config"

	"github.com/joho/godotenv"
)

var defaultURLs = []string{
	"https://careers.google.com/jobs/results/",
	"https://www.microsoft.com/en-us/careers",
	"https://amazon.jobs/en/",
	"https://careers.flipkart.com/",
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadFile(config.DefaultPath)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	urls := os.Args[1:]
	if len(urls) == 0 {
		urls = defaultURLs
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	gate := bootstrap.NewGate(cfg)
	fmt.Printf("🧪 Checking robots.txt as %q\n\n", cfg.Robots.UserAgent)

	blocked := 0
	for _, u := range urls {
		d := gate.Evaluate(ctx, u)
		status := "✅ ALLOWED"
		if !d.Allowed {
			status = "❌ BLOCKED"
			blocked++
		}
		fmt.Printf("%s: %s\n", status, u)
		fmt.Printf("   Reason: %s\n", d.Reason)
		if d.CrawlDelay > 0 {
			fmt.Printf("   Crawl-delay: %s\n", d.CrawlDelay)
		}
		fmt.Println()
	}

	fmt.Printf("%d/%d allowed\n", len(urls)-blocked, len(urls))
}
