package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/folio-dev/folio/internal/config"
	"github.com/folio-dev/folio/internal/progress"
	"github.com/folio-dev/folio/internal/site"
)

const rebuildDebounce = 300 * time.Millisecond

var (
	buildOutput string
	buildWatch  bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export the site as static files",
	Long: `Renders every page into the output directory (output_dir, "public" by default)
so the site can be hosted without folio. Chat and live effects are left out;
the blog search filters posts in the browser. With --watch, the site is
rebuilt whenever a post or the profile changes.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "output directory (overrides output_dir)")
	buildCmd.Flags().BoolVarP(&buildWatch, "watch", "w", false, "rebuild when content changes")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if buildOutput != "" {
		cfg.OutputDir = buildOutput
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := buildSite(ctx, cfg); err != nil {
		if !buildWatch {
			return err
		}
		log.Printf("build failed: %v", err)
	}
	if !buildWatch {
		return nil
	}

	watched := []string{cfg.Content.Dir}
	if cfg.ProfilePath != "" {
		watched = append(watched, filepath.Dir(cfg.ProfilePath))
	}
	fmt.Fprintf(os.Stderr, "Watching %s for changes. Press Ctrl+C to stop.\n", strings.Join(watched, ", "))
	return watchAndRebuild(ctx, watched, cfg.OutputDir, func(ctx context.Context) error {
		return buildSite(ctx, cfg)
	})
}

// buildSite reloads the profile and exports the whole site.
func buildSite(ctx context.Context, cfg *config.Config) error {
	prof, err := loadProfile(cfg)
	if err != nil {
		return err
	}
	s, err := site.New(newRepository(cfg), prof, site.Options{Site: cfg.Site, Blog: cfg.Blog})
	if err != nil {
		return fmt.Errorf("preparing site: %w", err)
	}
	res, err := s.Export(ctx, cfg.OutputDir, progress.NewReporter("Building"))
	if err != nil {
		return fmt.Errorf("building site: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Built %d files (%d redirects) into %s in %s\n",
		res.Pages, res.Redirects, cfg.OutputDir, res.Duration.Round(time.Millisecond))
	return nil
}

// watchAndRebuild calls rebuild after changes under roots settle. Events
// inside outDir are ignored so a build never triggers itself.
func watchAndRebuild(ctx context.Context, roots []string, outDir string, rebuild func(context.Context) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	for _, root := range roots {
		if err := addRecursive(watcher, root); err != nil {
			log.Printf("not watching %s: %v", root, err)
		}
	}

	absOut, _ := filepath.Abs(outDir)
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if isWithin(event.Name, absOut) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addRecursive(watcher, event.Name); err != nil {
						log.Printf("not watching %s: %v", event.Name, err)
					}
				}
			}
			if verbose {
				log.Printf("change detected: %s (%s)", event.Name, event.Op)
			}
			if timer == nil {
				timer = time.NewTimer(rebuildDebounce)
			} else {
				timer.Reset(rebuildDebounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			log.Println("Rebuilding site...")
			if err := rebuild(ctx); err != nil {
				log.Printf("rebuild failed: %v", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("watcher error: %v", err)
		}
	}
}

// addRecursive watches root and every directory below it. fsnotify
// watches are not recursive.
func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
}

func isWithin(path, dir string) bool {
	abs, err := filepath.Abs(path)
	if err != nil || dir == "" {
		return false
	}
	rel, err := filepath.Rel(dir, abs)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
