package utils

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIAdvisorClient implements AdvisorClientInterface on the OpenAI chat
// completions API with JSON-mode output.
type OpenAIAdvisorClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIAdvisorClient(apiKey, model string) AdvisorClientInterface {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIAdvisorClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *OpenAIAdvisorClient) GeneratePlanActions(ctx context.Context, target SavingsTargetPrompt, spending []MerchantSpend) (string, error) {
	return c.completeJSON(ctx, buildPlanActionsPrompt(target, spending))
}

func (c *OpenAIAdvisorClient) SuggestCategories(ctx context.Context, merchants []string, categories []string) (string, error) {
	if len(merchants) == 0 {
		return "", fmt.Errorf("no merchants")
	}
	return c.completeJSON(ctx, buildCategorizePrompt(merchants, categories))
}

func (c *OpenAIAdvisorClient) completeJSON(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.1,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You respond with strict JSON only.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no content")
	}

	content := resp.Choices[0].Message.Content
	if !json.Valid([]byte(content)) {
		return "", fmt.Errorf("not valid json")
	}
	return content, nil
}
