package utils

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiAdvisorClient implements AdvisorClientInterface using Google's
// Gemini models.
type GeminiAdvisorClient struct {
	client *genai.Client
	model  string
}

func NewGeminiAdvisorClient(apiKey, model string) (AdvisorClientInterface, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiAdvisorClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiAdvisorClient) GeneratePlanActions(ctx context.Context, target SavingsTargetPrompt, spending []MerchantSpend) (string, error) {
	return c.generateJSON(ctx, buildPlanActionsPrompt(target, spending))
}

func (c *GeminiAdvisorClient) SuggestCategories(ctx context.Context, merchants []string, categories []string) (string, error) {
	if len(merchants) == 0 {
		return "", fmt.Errorf("no merchants")
	}
	return c.generateJSON(ctx, buildCategorizePrompt(merchants, categories))
}

func (c *GeminiAdvisorClient) generateJSON(ctx context.Context, prompt string) (string, error) {
	m := c.client.GenerativeModel(c.model)
	// Force JSON-only output so no brace-matching cleanup is needed.
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.1)
	m.SetTopP(0.5)
	m.SetTopK(20)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content")
	}

	content := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	if !json.Valid([]byte(content)) {
		return "", fmt.Errorf("not valid json")
	}
	return content, nil
}
