package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment variable overrides.
// Nested keys use a double underscore: FOLIO_SERVER__PORT -> server.port.
const EnvPrefix = "FOLIO_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (FOLIO_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// envKey maps FOLIO_BLOG__PAGE_SIZE to blog.page_size.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validIntensities = map[Intensity]bool{
	IntensityLow:    true,
	IntensityMedium: true,
	IntensityHigh:   true,
}

var validEmbeddingProviders = map[EmbeddingProvider]bool{
	EmbeddingLocal:  true,
	EmbeddingOpenAI: true,
	EmbeddingOllama: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Content.Dir == "" {
		return fmt.Errorf("content.dir is required")
	}
	if len(c.Content.Patterns) == 0 {
		return fmt.Errorf("content.patterns must list at least one glob")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Blog.PageSize <= 0 {
		return fmt.Errorf("blog.page_size must be positive")
	}
	if c.Blog.RelatedLimit < 0 {
		return fmt.Errorf("blog.related_limit must be non-negative")
	}
	if c.Blog.HotLimit < 0 {
		return fmt.Errorf("blog.hot_limit must be non-negative")
	}
	if c.Effects.FPS <= 0 || c.Effects.FPS > 60 {
		return fmt.Errorf("effects.fps must be between 1 and 60")
	}
	if !validIntensities[c.Effects.Intensity] {
		return fmt.Errorf("invalid effects.intensity %q: must be one of low, medium, high", c.Effects.Intensity)
	}
	if !validEmbeddingProviders[c.Search.EmbeddingProvider] {
		return fmt.Errorf("invalid search.embedding_provider %q: must be one of local, openai, ollama", c.Search.EmbeddingProvider)
	}
	return nil
}

// APIKeyEnvVar returns the conventional environment variable name for
// the API key of the given embedding provider.
func APIKeyEnvVar(provider EmbeddingProvider) string {
	switch provider {
	case EmbeddingOpenAI:
		return "OPENAI_API_KEY"
	default:
		return ""
	}
}
