package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go-jobscout/internal/models"
)

// MaxJobTextRunes bounds the job text sent to the model
const MaxJobTextRunes = 10000

var ErrInvalidResponse = errors.New("invalid AI response")

// PrepareJobText drops invalid UTF-8 and keeps the first MaxJobTextRunes runes
func PrepareJobText(text string) string {
	text = strings.ToValidUTF8(text, "")
	runes := []rune(text)
	if len(runes) > MaxJobTextRunes {
		return string(runes[:MaxJobTextRunes])
	}
	return text
}

type rawAnalysis struct {
	MatchScore *float64 `json:"match_score"`
	Reason     *string  `json:"reason"`
	ApplyLink  *string  `json:"apply_link"`
}

// parseAnalysis decodes the model reply. match_score and reason are
// required; the score is clamped to 0..100.
func parseAnalysis(content string) (*models.Analysis, error) {
	cleaned := cleanMarkdownJSON(content)

	var raw rawAnalysis
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v (raw length: %d)", ErrInvalidResponse, err, len(cleaned))
	}
	if raw.MatchScore == nil || raw.Reason == nil {
		return nil, fmt.Errorf("%w: missing match_score or reason", ErrInvalidResponse)
	}

	score := int(*raw.MatchScore + 0.5)
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	analysis := &models.Analysis{MatchScore: score, Reason: strings.TrimSpace(*raw.Reason)}
	if raw.ApplyLink != nil {
		if link := strings.TrimSpace(*raw.ApplyLink); link != "" && link != "null" {
			analysis.ApplyLink = &link
		}
	}
	return analysis, nil
}

// cleanMarkdownJSON removes backticks and "json" prefix if the AI model tries to be helpful
func cleanMarkdownJSON(content string) string {
	content = strings.TrimSpace(content)
	content = strings.ReplaceAll(content, "```json", "")
	content = strings.ReplaceAll(content, "```", "")
	return strings.TrimSpace(content)
}
