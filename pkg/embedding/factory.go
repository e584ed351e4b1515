package embedding

import "fmt"

// NewProvider builds the embedding backend named by providerType.
// Supported values are "ollama" and "gemini".
func NewProvider(providerType, baseURL, model, geminiKey string) (EmbeddingProvider, error) {
	switch providerType {
	case "ollama":
		return NewOllamaProvider(baseURL, model), nil
	case "gemini":
		if geminiKey == "" {
			return nil, fmt.Errorf("gemini embedding provider requires an api key")
		}
		return NewGeminiProvider(geminiKey), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", providerType)
	}
}
