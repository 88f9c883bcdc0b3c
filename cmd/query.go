package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/folio-dev/folio/internal/indexer"
	"github.com/folio-dev/folio/internal/vectordb"
)

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Semantically search the blog from the command line",
	Long:  `Searches the index built by "folio index" with a natural language query and prints the closest posts.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().Int("limit", 5, "maximum number of results")
	queryCmd.Flags().String("tag", "", "only search posts with this tag")
	queryCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	limit, _ := cmd.Flags().GetInt("limit")
	tag, _ := cmd.Flags().GetString("tag")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}
	store, err := indexer.Open(ctx, embedder, cfg.Search.IndexDir)
	if err != nil {
		return err
	}

	var filter *vectordb.SearchFilter
	if tag != "" {
		filter = &vectordb.SearchFilter{Tag: &tag}
	}
	results, err := store.Search(ctx, args[0], limit, filter)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if jsonOutput {
		return printQueryResultsJSON(results)
	}
	fmt.Print(vectordb.FormatResults(results))
	return nil
}

type queryResultJSON struct {
	Rank       int      `json:"rank"`
	Similarity float64  `json:"similarity"`
	Slug       string   `json:"slug"`
	Title      string   `json:"title"`
	Date       string   `json:"date,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Summary    string   `json:"summary"`
}

func printQueryResultsJSON(results []vectordb.SearchResult) error {
	out := make([]queryResultJSON, 0, len(results))
	for i, r := range results {
		md := r.Document.Metadata
		item := queryResultJSON{
			Rank:       i + 1,
			Similarity: float64(r.Similarity),
			Slug:       r.Document.ID,
			Title:      md.Title,
			Tags:       md.Tags,
			Summary:    md.Summary,
		}
		if !md.Date.IsZero() {
			item.Date = md.Date.Format(time.DateOnly)
		}
		out = append(out, item)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
