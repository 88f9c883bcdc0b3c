package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/folio-dev/folio/internal/content"
	"github.com/folio-dev/folio/internal/indexer"
	"github.com/folio-dev/folio/internal/progress"
	"github.com/folio-dev/folio/internal/vectordb"
)

var indexForce bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the semantic search index over published posts",
	Long: `Embeds every published post with the configured embedding provider and
stores the vectors under search.index_dir. Only posts whose content changed
since the last run are re-embedded; deleted posts are dropped. Changing the
embedding model rebuilds the whole index.`,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVar(&indexForce, "force", false, "re-embed every post")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}
	store, err := vectordb.NewChromemStore(embedder)
	if err != nil {
		return fmt.Errorf("creating vector store: %w", err)
	}

	posts, err := newRepository(cfg).List(content.ListOptions{})
	if err != nil {
		return err
	}

	pipeline := indexer.NewPipeline(embedder, store, cfg.Search.IndexDir)
	pipeline.SetReporter(progress.NewReporter("Indexing"))

	fmt.Fprintf(os.Stderr, "Indexing %d posts with %s\n", len(posts), embedder.Name())
	res, err := pipeline.Run(ctx, posts, indexForce)
	if err != nil {
		return fmt.Errorf("indexing: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Indexed %d, unchanged %d, removed %d in %s\n",
		res.Indexed, res.Skipped, res.Removed, res.Duration.Round(time.Millisecond))
	for _, e := range res.Errors {
		fmt.Fprintf(os.Stderr, "  %v\n", e)
	}
	if len(res.Errors) > 0 {
		return fmt.Errorf("%d post(s) failed to index; rerun to retry them", len(res.Errors))
	}
	return nil
}
