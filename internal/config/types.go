package config

// Intensity controls how busy the decorative background animations are.
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// EmbeddingProvider identifies the backend used to embed posts for semantic search.
type EmbeddingProvider string

const (
	EmbeddingLocal  EmbeddingProvider = "local"
	EmbeddingOpenAI EmbeddingProvider = "openai"
	EmbeddingOllama EmbeddingProvider = "ollama"
)

// Config is the top-level folio configuration, corresponding to folio.yml.
type Config struct {
	Site        SiteConfig    `yaml:"site" koanf:"site"`
	Content     ContentConfig `yaml:"content" koanf:"content"`
	ProfilePath string        `yaml:"profile_path" koanf:"profile_path"`
	OutputDir   string        `yaml:"output_dir" koanf:"output_dir"`
	Server      ServerConfig  `yaml:"server" koanf:"server"`
	Blog        BlogConfig    `yaml:"blog" koanf:"blog"`
	Chat        ChatConfig    `yaml:"chat" koanf:"chat"`
	Effects     EffectsConfig `yaml:"effects" koanf:"effects"`
	Search      SearchConfig  `yaml:"search" koanf:"search"`
}

// SiteConfig holds site-wide presentation settings.
type SiteConfig struct {
	Title       string `yaml:"title" koanf:"title"`
	Description string `yaml:"description" koanf:"description"`
	BaseURL     string `yaml:"base_url" koanf:"base_url"`
	Author      string `yaml:"author" koanf:"author"`
}

// ContentConfig locates the blog post files.
type ContentConfig struct {
	Dir      string   `yaml:"dir" koanf:"dir"`
	Patterns []string `yaml:"patterns" koanf:"patterns"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// BlogConfig controls listing sizes.
type BlogConfig struct {
	PageSize     int `yaml:"page_size" koanf:"page_size"`
	RelatedLimit int `yaml:"related_limit" koanf:"related_limit"`
	HotLimit     int `yaml:"hot_limit" koanf:"hot_limit"`
}

// ChatConfig holds chatbot settings. An empty TranscriptDB disables
// transcript storage.
type ChatConfig struct {
	TranscriptDB string `yaml:"transcript_db" koanf:"transcript_db"`
}

// EffectsConfig controls the streamed background animations.
type EffectsConfig struct {
	Enabled   bool      `yaml:"enabled" koanf:"enabled"`
	FPS       int       `yaml:"fps" koanf:"fps"`
	Intensity Intensity `yaml:"intensity" koanf:"intensity"`
}

// SearchConfig controls the optional semantic index.
type SearchConfig struct {
	EmbeddingProvider EmbeddingProvider `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string            `yaml:"embedding_model" koanf:"embedding_model"`
	IndexDir          string            `yaml:"index_dir" koanf:"index_dir"`
}
