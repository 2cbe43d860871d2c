package reporter

import (
	"context"
	"fmt"
	"log"
	"time"

	"go-jobscout/internal/models"
	"go-jobscout/internal/pipeline"
)

// MatchSender is implemented by telegram.Bot
type MatchSender interface {
	SendMatch(m models.Match) error
	SendStatus(message string) error
}

// TelegramReporter sends one message per match, then a summary
type TelegramReporter struct {
	bot MatchSender
	// pause between messages, Telegram answers 429 otherwise
	interval time.Duration
}

func NewTelegramReporter(bot MatchSender) *TelegramReporter {
	return &TelegramReporter{bot: bot, interval: time.Second}
}

func (t *TelegramReporter) Name() string { return "telegram" }

func (t *TelegramReporter) Report(ctx context.Context, report *pipeline.Report) error {
	sent := 0
	for i, m := range report.Matches {
		if i > 0 && t.interval > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(t.interval):
			}
		}
		log.Printf("  [%d/100] %s @ %s", m.Score, m.Title, m.Company)
		if err := t.bot.SendMatch(m); err != nil {
			log.Printf("⚠️ Failed to send job to Telegram: %v", err)
			continue
		}
		sent++
	}

	status := fmt.Sprintf("✅ Analyzed %d jobs, %d matched (min score %d), sent %d.",
		report.Analyzed, len(report.Matches), report.Params.MinScore, sent)
	if len(report.Matches) == 0 {
		status = fmt.Sprintf("😕 No jobs matched your criteria (min score: %d). Analyzed %d jobs.",
			report.Params.MinScore, report.Analyzed)
	}
	if err := t.bot.SendStatus(status); err != nil {
		return fmt.Errorf("failed to send status to Telegram: %w", err)
	}
	if sent < len(report.Matches) {
		return fmt.Errorf("sent %d of %d matches", sent, len(report.Matches))
	}
	return nil
}
