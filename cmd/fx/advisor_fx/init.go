// cmd/fx/advisor_fx/module.go
package advisor_fx

import (
	"fmt"
	"log"
	"os"
	"strings"

	"finsight/pkg/utils"

	"go.uber.org/fx"
)

var Module = fx.Provide(
	ProvideAdvisorClient)

// AdvisorConfig holds configuration for advisor clients
type AdvisorConfig struct {
	Provider string
	APIKey   string
	Model    string
}

// ProvideAdvisorClient creates an advisor client based on environment variables
func ProvideAdvisorClient() (utils.AdvisorClientInterface, error) {
	config := getAdvisorConfig()

	log.Printf("Initializing %s advisor client with model: %s", config.Provider, config.Model)

	switch strings.ToLower(config.Provider) {
	case "openai":
		return utils.NewOpenAIAdvisorClient(config.APIKey, config.Model), nil
	case "gemini":
		client, err := utils.NewGeminiAdvisorClient(config.APIKey, config.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported advisor provider: %s. Use 'openai' or 'gemini'", config.Provider)
	}
}

func getAdvisorConfig() AdvisorConfig {
	provider := getEnvWithDefault("ADVISOR_PROVIDER", "gemini")

	var apiKey, model string

	switch strings.ToLower(provider) {
	case "openai":
		apiKey = os.Getenv("OPENAI_API_KEY")
		model = getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini")
		if apiKey == "" {
			log.Fatal("OPENAI_API_KEY is required when using OpenAI provider")
		}
	case "gemini":
		apiKey = os.Getenv("GEMINI_API_KEY")
		model = getEnvWithDefault("GEMINI_MODEL", "gemini-1.5-flash")
		if apiKey == "" {
			log.Fatal("GEMINI_API_KEY is required when using Gemini provider")
		}
	}

	return AdvisorConfig{
		Provider: provider,
		APIKey:   apiKey,
		Model:    model,
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
