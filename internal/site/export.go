package site

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/folio-dev/folio/internal/content"
	"github.com/folio-dev/folio/internal/progress"
)

// ExportResult summarizes a static build.
type ExportResult struct {
	Pages     int
	Redirects int
	Duration  time.Duration
}

// exportJob renders one output file.
type exportJob struct {
	path   string
	render func(*bytes.Buffer) error
}

var redirectPage = template.Must(template.New("redirect").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta http-equiv="refresh" content="0; url={{.}}">
<link rel="canonical" href="{{.}}">
<title>Redirecting</title>
</head>
<body><p>Redirecting to <a href="{{.}}">{{.}}</a>.</p></body>
</html>
`))

// Export writes the whole site into outDir as static files: one
// index.html per route, the assets and a search-index.json. Hot posts
// with a portfolio link become meta-refresh pages. The site should be
// created with Options.Live false.
func (s *Site) Export(ctx context.Context, outDir string, reporter progress.Reporter) (*ExportResult, error) {
	start := time.Now()
	if reporter == nil {
		reporter = progress.Nop{}
	}

	jobs, redirects, err := s.exportJobs()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	reporter.Start(len(jobs))
	defer reporter.Finish()

	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := job.render(&buf); err != nil {
			return nil, fmt.Errorf("rendering %s: %w", job.path, err)
		}
		if err := writeOutput(outDir, job.path, buf.Bytes()); err != nil {
			return nil, err
		}
		reporter.Update(i+1, job.path)
	}

	return &ExportResult{
		Pages:     len(jobs),
		Redirects: redirects,
		Duration:  time.Since(start),
	}, nil
}

func (s *Site) exportJobs() ([]exportJob, int, error) {
	var jobs []exportJob
	page := func(path, name string, data func() (layoutData, error)) {
		jobs = append(jobs, exportJob{path: path, render: func(buf *bytes.Buffer) error {
			d, err := data()
			if err != nil {
				return err
			}
			return s.render(buf, name, d)
		}})
	}

	page("index.html", "home", func() (layoutData, error) {
		data, err := s.homeData()
		return s.layout("", "home", data), err
	})

	listing := func(q listingQuery, dir string) error {
		first, err := s.listingData(q)
		if err != nil {
			return err
		}
		for n := 1; n <= max(first.Page.TotalPages, 1); n++ {
			path := dir + "/index.html"
			if n > 1 {
				path = dir + "/page/" + strconv.Itoa(n) + "/index.html"
			}
			pq := q
			pq.Page = n
			page(path, "blog", func() (layoutData, error) {
				data, err := s.listingData(pq)
				return s.layout(listingTitle(pq), "blog", data), err
			})
		}
		return nil
	}

	if err := listing(listingQuery{}, "blog"); err != nil {
		return nil, 0, err
	}
	tags, err := s.repo.Tags()
	if err != nil {
		return nil, 0, err
	}
	for _, tag := range tags {
		seg, ok := tagSegment(tag)
		if !ok {
			log.Printf("site: skipping tag %q: not usable as a path segment", tag)
			continue
		}
		if err := listing(listingQuery{Tag: tag, TagRoute: true}, "blog/tags/"+seg); err != nil {
			return nil, 0, err
		}
	}

	posts, err := s.repo.List(content.ListOptions{})
	if err != nil {
		return nil, 0, err
	}
	redirects := 0
	for i := range posts {
		p := &posts[i]
		path := "blog/" + p.Slug + "/index.html"
		if target := redirectTarget(p); target != "" {
			redirects++
			jobs = append(jobs, exportJob{path: path, render: func(buf *bytes.Buffer) error {
				return redirectPage.Execute(buf, target)
			}})
			continue
		}
		page(path, "post", func() (layoutData, error) {
			data, err := s.postData(p)
			return s.layout(p.Frontmatter.Title, "blog", data), err
		})
	}

	page("resume/index.html", "resume", func() (layoutData, error) {
		return s.layout("Resume", "resume", s.profile), nil
	})
	page("404.html", "error", func() (layoutData, error) {
		return s.layout("Not Found", "", errorData{
			Status:  404,
			Message: "The page you are looking for does not exist.",
		}), nil
	})

	for name, f := range staticFiles {
		body := f.body
		jobs = append(jobs, exportJob{path: "static/" + name, render: func(buf *bytes.Buffer) error {
			_, err := buf.WriteString(body)
			return err
		}})
	}

	jobs = append(jobs, exportJob{path: "search-index.json", render: func(buf *bytes.Buffer) error {
		enc := json.NewEncoder(buf)
		enc.SetIndent("", "  ")
		return enc.Encode(keywordItems(posts))
	}})

	return jobs, redirects, nil
}

// tagSegment is the directory name of a tag listing. It matches the
// escaping TagURL uses for links.
func tagSegment(tag string) (string, bool) {
	seg := url.PathEscape(tag)
	switch seg {
	case "", ".", "..":
		return "", false
	}
	return seg, true
}

func writeOutput(outDir, rel string, data []byte) error {
	path := filepath.Join(outDir, filepath.FromSlash(rel))
	if r, err := filepath.Rel(outDir, path); err != nil || !filepath.IsLocal(r) {
		return fmt.Errorf("refusing to write %s outside %s", rel, outDir)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
