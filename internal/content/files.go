package content

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// skipDirs are never descended into when looking for posts.
var skipDirs = []string{"node_modules"}

// sourceFile is a post file found on disk.
type sourceFile struct {
	Path    string // absolute or dir-joined path
	RelPath string // slash-separated, relative to the content directory
	Slug    string
}

// discover walks dir in lexical order and returns every file whose
// relative path matches one of patterns. A missing directory yields no
// files and no error.
func discover(dir string, patterns []string) ([]sourceFile, error) {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	var files []sourceFile
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == dir {
				return walkErr
			}
			// Unreadable entries are skipped instead of aborting the listing.
			return nil
		}
		if d.IsDir() {
			if path != dir && shouldSkipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if !matchesAny(rel, patterns) {
			return nil
		}
		files = append(files, sourceFile{
			Path:    path,
			RelPath: rel,
			Slug:    Slug(d.Name()),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func shouldSkipDir(name string) bool {
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
		return true
	}
	for _, s := range skipDirs {
		if strings.EqualFold(name, s) {
			return true
		}
	}
	return false
}

// matchesAny reports whether relPath matches any of the glob patterns.
// "**" crosses directories; "*.md" only matches top-level files.
func matchesAny(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(filepath.ToSlash(pattern), relPath); err == nil && matched {
			return true
		}
	}
	return false
}
