package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/folio-dev/folio/internal/content"
)

var newInteractive bool

var newCmd = &cobra.Command{
	Use:   "new [title]",
	Short: "Scaffold a new blog post",
	Long: `Creates <slug>.mdx in the posts directory with starter frontmatter and body.
Without a title, or with --interactive, every frontmatter field is prompted for.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNew,
}

func init() {
	newCmd.Flags().BoolVarP(&newInteractive, "interactive", "i", false, "prompt for every frontmatter field")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	title := ""
	if len(args) == 1 {
		title = strings.TrimSpace(args[0])
	}

	fm := content.NewTemplate(title, time.Now())
	if cfg.Site.Author != "" {
		fm.Author = cfg.Site.Author
	}
	if newInteractive || title == "" {
		if fm, err = promptFrontmatter(fm); err != nil {
			return err
		}
	}

	path, err := content.Create(cfg.Content.Dir, fm)
	if err != nil {
		if errors.Is(err, content.ErrPostExists) {
			return fmt.Errorf("%w; pick a different title", err)
		}
		return err
	}
	fmt.Printf("Created %s\n", path)
	fmt.Printf("Preview it at /blog/%s after running folio serve\n", content.Slug(fm.Title))
	return nil
}

// promptFrontmatter asks for each field, offering fm's values as defaults.
func promptFrontmatter(fm content.Frontmatter) (content.Frontmatter, error) {
	ask := func(label, def string, validate promptui.ValidateFunc) (string, error) {
		p := promptui.Prompt{Label: label, Default: def, Validate: validate}
		v, err := p.Run()
		if err != nil {
			return "", fmt.Errorf("%s: %w", strings.ToLower(label), err)
		}
		return strings.TrimSpace(v), nil
	}

	var err error
	origTitle := fm.Title
	if fm.Title, err = ask("Post title", fm.Title, func(s string) error {
		if content.Slug(s) == "" {
			return errors.New("title is required")
		}
		return nil
	}); err != nil {
		return fm, err
	}

	if fm.Title != origTitle {
		fm.Summary = content.NewTemplate(fm.Title, time.Now()).Summary
	}
	if fm.Summary, err = ask("Summary", fm.Summary, nil); err != nil {
		return fm, err
	}

	tags, err := ask("Tags (comma-separated)", strings.Join(fm.Tags, ", "), nil)
	if err != nil {
		return fm, err
	}
	fm.Tags = splitTags(tags)

	if fm.Author, err = ask("Author", fm.Author, nil); err != nil {
		return fm, err
	}
	if fm.Cover, err = ask("Cover image URL (optional)", fm.Cover, nil); err != nil {
		return fm, err
	}

	hot := promptui.Select{
		Label: "Feature as hot news?",
		Items: []string{"No", "Yes"},
	}
	idx, _, err := hot.Run()
	if err != nil {
		return fm, fmt.Errorf("hot flag: %w", err)
	}
	fm.IsHot = idx == 1
	if fm.IsHot {
		if fm.PortfolioLink, err = ask("Portfolio link (optional, visitors are redirected there)", fm.PortfolioLink, nil); err != nil {
			return fm, err
		}
	}
	return fm, nil
}

// splitTags splits a comma-separated list, dropping blanks and duplicates.
// An empty list becomes the "general" tag.
func splitTags(s string) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, part := range strings.Split(s, ",") {
		tag := strings.TrimSpace(part)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	if len(tags) == 0 {
		return []string{"general"}
	}
	return tags
}
