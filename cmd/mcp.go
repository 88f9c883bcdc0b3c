package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/folio-dev/folio/internal/chatbot"
	mcpserver "github.com/folio-dev/folio/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long: `Starts a Model Context Protocol server on stdio exposing the blog and profile:
list_posts, get_post, search_posts, list_tags and ask_about_me.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		prof, err := loadProfile(cfg)
		if err != nil {
			return err
		}
		var bot *chatbot.Bot
		if prof != nil {
			bot = newChatBot(prof)
		}

		store := openSemanticIndex(context.Background(), cfg)
		repo := newRepository(cfg)

		mcpserver.Version = Version
		fmt.Fprintf(os.Stderr, "folio MCP server started on stdio (posts=%s)\n", repo.Dir())

		return mcpserver.NewServer(repo, store, bot).Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
