package embeddings

import (
	"context"
	"fmt"

	"github.com/folio-dev/folio/internal/config"
)

// Embedder turns post text into vectors for the semantic index.
type Embedder interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions is the length of every returned vector.
	Dimensions() int

	// Name identifies the model. It is stored with the index so a
	// different model never reads vectors it did not produce.
	Name() string
}

// New builds the embedder selected by cfg. apiKey is only consulted for
// providers that need one.
func New(cfg config.SearchConfig, apiKey string) (Embedder, error) {
	model := cfg.EmbeddingModel
	if model == "" {
		model = config.DefaultEmbeddingModel(cfg.EmbeddingProvider)
	}

	switch cfg.EmbeddingProvider {
	case config.EmbeddingLocal, "":
		return NewHashEmbedder(DefaultHashDimensions), nil
	case config.EmbeddingOpenAI:
		if apiKey == "" {
			return nil, fmt.Errorf("openai embeddings need an API key (set %s)", config.APIKeyEnvVar(config.EmbeddingOpenAI))
		}
		return NewOpenAIEmbedder(apiKey, OpenAIModel(model)), nil
	case config.EmbeddingOllama:
		return NewOllamaEmbedder(model, 768, ""), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.EmbeddingProvider)
	}
}
