package ai

import (
	"context"
	"fmt"

	"go-jobscout/internal/config"
	"go-jobscout/internal/models"
)

// Client is the interface for AI providers
type Client interface {
	// AnalyzeJob scores how well the job text fits the candidate profile.
	// A reply that is not the expected JSON yields ErrInvalidResponse.
	AnalyzeJob(ctx context.Context, jobText, profile string) (*models.Analysis, error)
	Name() string
}

// New builds the client for cfg.Provider
func New(ctx context.Context, cfg config.AIConfig) (Client, error) {
	switch cfg.Provider {
	case "groq":
		return NewGroqClient(cfg.GroqAPIKey, cfg.Model), nil
	case "gemini":
		return NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}

// buildSystemPrompt creates the system instruction for the AI model
func buildSystemPrompt() string {
	return `You are an expert career advisor and recruiter. Your job is to analyze whether a job posting matches a candidate's profile.

INSTRUCTIONS:
1. Analyze how well this job matches the candidate's skills, experience, and preferences.
2. Assign a match score from 0-100:
   - 90-100: Excellent match, highly recommended
   - 70-89: Good match, worth applying
   - 50-69: Moderate match, could apply if interested
   - 0-49: Poor match, not recommended
3. Extract the direct application URL from the text if present (look for "Apply at:", "Click here:", job portal links, etc.)
4. Provide a concise 1-2 sentence explanation for the score.

IMPORTANT: Return ONLY valid JSON with no additional text, markdown formatting, or code blocks.

Required JSON format:
{
    "match_score": 85,
    "reason": "Strong match for backend skills with Go and Python. Remote position aligns with preferences.",
    "apply_link": "https://company.com/careers/apply/12345"
}

If no apply link is found in the text, set apply_link to null.`
}

// buildUserPrompt creates the user message combining the profile and the job text
func buildUserPrompt(profile, jobText string) string {
	return fmt.Sprintf("CANDIDATE PROFILE:\n%s\n\nJOB DESCRIPTION TEXT:\n%s", profile, PrepareJobText(jobText))
}
