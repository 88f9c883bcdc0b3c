package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/folio-dev/folio/internal/effects"
	"github.com/folio-dev/folio/internal/server"
	"github.com/folio-dev/folio/internal/site"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site with chat, search and live effects",
	Long: `Starts the HTTP server: portfolio and blog pages, /api/search (semantic when
an index built by "folio index" is present), the chatbot over /api/chat and
/ws/chat, and the background effects stream on /ws/effects.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}

	prof, err := loadProfile(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pages, err := site.New(newRepository(cfg), prof, site.Options{
		Site:    cfg.Site,
		Blog:    cfg.Blog,
		Live:    true,
		Effects: cfg.Effects.Enabled,
	})
	if err != nil {
		return fmt.Errorf("preparing site: %w", err)
	}
	if store := openSemanticIndex(ctx, cfg); store != nil {
		pages.SetSemanticIndex(store)
	}

	chat, closeChat, err := newChatService(cfg, prof)
	if err != nil {
		return err
	}
	defer closeChat()

	var effectsHandler http.Handler
	if cfg.Effects.Enabled {
		effectsHandler = effects.NewStreamer(cfg.Effects)
	}

	srv := server.New(server.Config{
		Port:     cfg.Server.Port,
		AllowAll: cfg.Server.AllowAllOrigins,
	}, pages, chat, effectsHandler)

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	fmt.Fprintf(os.Stderr, "folio %s serving on http://localhost:%d\n", Version, cfg.Server.Port)
	if verbose {
		fmt.Fprintf(os.Stderr, "  Posts: %s\n", cfg.Content.Dir)
		fmt.Fprintf(os.Stderr, "  Profile: %s\n", cfg.ProfilePath)
		if cfg.Chat.TranscriptDB != "" {
			fmt.Fprintf(os.Stderr, "  Transcripts: %s\n", cfg.Chat.TranscriptDB)
		}
		if cfg.Effects.Enabled {
			fmt.Fprintf(os.Stderr, "  Effects: %s at %d fps\n", cfg.Effects.Intensity, cfg.Effects.FPS)
		}
	}

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
