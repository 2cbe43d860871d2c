package ai

import (
	"context"
	"fmt"

	"go-jobscout/internal/models"

	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.5-flash"

type geminiClient struct {
	model string
	// generate is the single model call, swapped out in tests
	generate func(ctx context.Context, prompt string) (string, error)
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (Client, error) {
	if model == "" {
		model = DefaultGeminiModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	temperature := float32(0.3)
	genConfig := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		ResponseMIMEType: "application/json",
	}

	return &geminiClient{
		model: model,
		generate: func(ctx context.Context, prompt string) (string, error) {
			result, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), genConfig)
			if err != nil {
				return "", err
			}
			return result.Text(), nil
		},
	}, nil
}

func (c *geminiClient) Name() string {
	return "gemini/" + c.model
}

func (c *geminiClient) AnalyzeJob(ctx context.Context, jobText, profile string) (*models.Analysis, error) {
	prompt := buildSystemPrompt() + "\n\n" + buildUserPrompt(profile, jobText)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}
	return parseAnalysis(text)
}
