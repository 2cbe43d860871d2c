package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"unicode/utf8"

	"go-jobscout/internal/models"
)

const (
	reasonFormatError = "AI response format error - could not parse analysis"
	reasonErrorPrefix = "Error during analysis: "
)

// Scorer wraps a Client so a run never stops on a bad model reply: every
// failure becomes a score of 0 with the cause in the reason.
type Scorer struct {
	client Client
}

func NewScorer(client Client) *Scorer {
	return &Scorer{client: client}
}

func (s *Scorer) Score(ctx context.Context, jobText, profile string) models.Analysis {
	log.Printf("   🤖 Scoring %d chars with %s", utf8.RuneCountInString(jobText), s.client.Name())

	analysis, err := s.client.AnalyzeJob(ctx, jobText, profile)
	if err != nil {
		log.Printf("   ❌ AI analysis failed: %v", err)
		if errors.Is(err, ErrInvalidResponse) {
			return models.Analysis{Reason: reasonFormatError}
		}
		return models.Analysis{Reason: fmt.Sprintf("%s%v", reasonErrorPrefix, err)}
	}

	log.Printf("   ✅ Match score: %d/100", analysis.MatchScore)
	return *analysis
}
