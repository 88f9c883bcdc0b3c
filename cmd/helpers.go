package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/folio-dev/folio/internal/chatbot"
	"github.com/folio-dev/folio/internal/config"
	"github.com/folio-dev/folio/internal/content"
	"github.com/folio-dev/folio/internal/db"
	"github.com/folio-dev/folio/internal/embeddings"
	"github.com/folio-dev/folio/internal/indexer"
	"github.com/folio-dev/folio/internal/profile"
	"github.com/folio-dev/folio/internal/vectordb"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `folio init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

func newRepository(cfg *config.Config) *content.Repository {
	return content.NewRepository(cfg.Content.Dir, cfg.Content.Patterns)
}

// loadProfile returns nil without error when the profile file does not
// exist; the site then renders without the portfolio sections.
func loadProfile(cfg *config.Config) (*profile.Profile, error) {
	if cfg.ProfilePath == "" {
		return nil, nil
	}
	if _, err := os.Stat(cfg.ProfilePath); errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: profile %s not found, serving the blog only\n", cfg.ProfilePath)
		return nil, nil
	}
	return profile.Load(cfg.ProfilePath)
}

// createEmbedderFromConfig creates the embedder for the configured provider.
// Shared by index, query, serve and mcp.
func createEmbedderFromConfig(cfg *config.Config) (embeddings.Embedder, error) {
	apiKey := ""
	if env := config.APIKeyEnvVar(cfg.Search.EmbeddingProvider); env != "" {
		apiKey = os.Getenv(env)
	}
	return embeddings.New(cfg.Search, apiKey)
}

// openSemanticIndex opens the index built by `folio index`. It returns nil
// when the index is missing or unusable, after printing why, so callers
// can fall back to keyword search.
func openSemanticIndex(ctx context.Context, cfg *config.Config) vectordb.VectorStore {
	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Semantic search unavailable: %v\n", err)
		return nil
	}
	store, err := indexer.Open(ctx, embedder, cfg.Search.IndexDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Semantic search unavailable: %v\n", err)
		return nil
	}
	fmt.Fprintf(os.Stderr, "Semantic search enabled (%d posts indexed)\n", store.Count())
	return store
}

// newChatBot builds the canned-reply bot from the profile's chatbot
// section. A nil profile gives a bot that only knows the fallback reply.
func newChatBot(prof *profile.Profile) *chatbot.Bot {
	if prof == nil {
		return chatbot.New(nil, "", nil)
	}
	return chatbot.New(prof.Chatbot.Responses, prof.Chatbot.Welcome, nil)
}

// newChatService wires the bot to the transcript store when
// chat.transcript_db is set. Without a profile there is no chat and the
// service is nil. The returned close func is never nil.
func newChatService(cfg *config.Config, prof *profile.Profile) (*chatbot.Service, func() error, error) {
	if prof == nil {
		return nil, func() error { return nil }, nil
	}
	bot := newChatBot(prof)
	if cfg.Chat.TranscriptDB == "" {
		return chatbot.NewService(bot, nil), func() error { return nil }, nil
	}
	database, err := db.Open(cfg.Chat.TranscriptDB)
	if err != nil {
		return nil, nil, fmt.Errorf("opening transcript database: %w", err)
	}
	return chatbot.NewService(bot, chatbot.NewStore(database)), database.Close, nil
}
