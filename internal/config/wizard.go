package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard, saves the result
// to path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to folio! Let's configure your site.")
	fmt.Println()

	cfg := DefaultConfig()

	titlePrompt := promptui.Prompt{
		Label:   "Site title",
		Default: cfg.Site.Title,
	}
	title, err := titlePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site title: %w", err)
	}
	cfg.Site.Title = strings.TrimSpace(title)

	authorPrompt := promptui.Prompt{
		Label:   "Default post author",
		Default: cfg.Site.Author,
	}
	author, err := authorPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("author: %w", err)
	}
	cfg.Site.Author = strings.TrimSpace(author)

	contentPrompt := promptui.Prompt{
		Label:   "Posts directory",
		Default: cfg.Content.Dir,
	}
	contentDir, err := contentPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("posts directory: %w", err)
	}
	cfg.Content.Dir = contentDir

	patternsPrompt := promptui.Prompt{
		Label:   "Post file patterns (comma-separated globs)",
		Default: strings.Join(DefaultPatterns, ","),
	}
	patterns, err := patternsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("post patterns: %w", err)
	}
	if p := splitAndTrim(patterns); len(p) > 0 {
		cfg.Content.Patterns = p
	}

	profilePrompt := promptui.Prompt{
		Label:   "Profile data file",
		Default: cfg.ProfilePath,
	}
	profilePath, err := profilePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("profile path: %w", err)
	}
	cfg.ProfilePath = profilePath

	portPrompt := promptui.Prompt{
		Label:   "Server port",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("server port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	intensityPrompt := promptui.Select{
		Label: "Background animation intensity",
		Items: []string{
			"low    - 10 neural nodes",
			"medium - 15 neural nodes",
			"high   - 20 neural nodes",
		},
		CursorPos: 1,
	}
	intensityIdx, _, err := intensityPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("intensity selection: %w", err)
	}
	cfg.Effects.Intensity = []Intensity{IntensityLow, IntensityMedium, IntensityHigh}[intensityIdx]

	embedPrompt := promptui.Select{
		Label: "Embedding provider for semantic search",
		Items: []string{string(EmbeddingLocal), string(EmbeddingOpenAI), string(EmbeddingOllama)},
	}
	_, embedStr, err := embedPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("embedding provider: %w", err)
	}
	cfg.Search.EmbeddingProvider = EmbeddingProvider(embedStr)
	cfg.Search.EmbeddingModel = DefaultEmbeddingModel(cfg.Search.EmbeddingProvider)

	if envVar := APIKeyEnvVar(cfg.Search.EmbeddingProvider); envVar != "" && os.Getenv(envVar) == "" {
		fmt.Printf("\nNote: Set %s in your environment before running folio index.\n", envVar)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and drops empty entries.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
