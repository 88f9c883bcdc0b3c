package config

// DefaultPatterns are the glob patterns that identify post files.
var DefaultPatterns = []string{"*.md", "*.mdx"}

// defaultEmbeddingModels maps each embedding provider to its default model.
var defaultEmbeddingModels = map[EmbeddingProvider]string{
	EmbeddingLocal:  "hash-256",
	EmbeddingOpenAI: "text-embedding-3-small",
	EmbeddingOllama: "nomic-embed-text",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			Title:       "Portfolio",
			Description: "Personal portfolio and blog",
			BaseURL:     "http://localhost:3000",
			Author:      "Your Name",
		},
		Content: ContentConfig{
			Dir:      "content/posts",
			Patterns: DefaultPatterns,
		},
		ProfilePath: "data/profile.json",
		OutputDir:   "public",
		Server: ServerConfig{
			Port: 3000,
		},
		Blog: BlogConfig{
			PageSize:     10,
			RelatedLimit: 3,
			HotLimit:     3,
		},
		Effects: EffectsConfig{
			Enabled:   true,
			FPS:       30,
			Intensity: IntensityMedium,
		},
		Search: SearchConfig{
			EmbeddingProvider: EmbeddingLocal,
			EmbeddingModel:    defaultEmbeddingModels[EmbeddingLocal],
			IndexDir:          ".folio/index",
		},
	}
}

// DefaultEmbeddingModel returns the default model name for a provider,
// or "" when the provider is unknown.
func DefaultEmbeddingModel(p EmbeddingProvider) string {
	return defaultEmbeddingModels[p]
}
