package content

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"sort"
	"strings"
)

// ErrNotFound is returned when no valid post has the requested slug.
var ErrNotFound = errors.New("post not found")

// DefaultPageSize is used by Paginate when the caller passes size <= 0.
const DefaultPageSize = 10

// DefaultRelatedLimit is used by Related when the caller passes n < 0.
const DefaultRelatedLimit = 3

// DefaultPatterns match post files directly inside the content directory.
var DefaultPatterns = []string{"*.md", "*.mdx"}

// ListOptions filters and orders the result of List.
type ListOptions struct {
	// IncludeDrafts also returns posts with published: false.
	IncludeDrafts bool
	// Unsorted keeps file order instead of sorting newest first.
	Unsorted bool
	// Limit caps the result when > 0.
	Limit int
	// Tag keeps only posts carrying this exact tag.
	Tag string
}

// Repository reads posts from a directory. It holds no cached state.
type Repository struct {
	dir      string
	patterns []string
}

// NewRepository creates a Repository over dir. Empty patterns fall back
// to DefaultPatterns.
func NewRepository(dir string, patterns []string) *Repository {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	return &Repository{dir: dir, patterns: patterns}
}

// Dir returns the content directory.
func (r *Repository) Dir() string {
	return r.dir
}

// ListSlugs returns the slug of every post file, valid or not, in file order.
func (r *Repository) ListSlugs() ([]string, error) {
	files, err := discover(r.dir, r.patterns)
	if err != nil {
		return nil, fmt.Errorf("listing posts in %s: %w", r.dir, err)
	}
	slugs := make([]string, 0, len(files))
	for _, f := range files {
		slugs = append(slugs, f.Slug)
	}
	return slugs, nil
}

// GetBySlug returns the post whose filename produces slug. Files that
// fail to parse or validate are logged and reported as ErrNotFound.
func (r *Repository) GetBySlug(slug string) (*Post, error) {
	p, err := r.GetBySlugStrict(slug)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("content: error loading post %s: %v", slug, err)
		}
		return nil, ErrNotFound
	}
	return p, nil
}

// GetBySlugStrict is GetBySlug without error masking, for tooling that
// wants to report why a post is broken.
func (r *Repository) GetBySlugStrict(slug string) (*Post, error) {
	files, err := discover(r.dir, r.patterns)
	if err != nil {
		return nil, fmt.Errorf("listing posts in %s: %w", r.dir, err)
	}
	for _, f := range files {
		if f.Slug == slug {
			return loadPost(f)
		}
	}
	return nil, ErrNotFound
}

// List returns valid posts filtered and ordered by opts. Invalid files
// are logged and skipped.
func (r *Repository) List(opts ListOptions) ([]Post, error) {
	files, err := discover(r.dir, r.patterns)
	if err != nil {
		return nil, fmt.Errorf("listing posts in %s: %w", r.dir, err)
	}

	seen := make(map[string]bool, len(files))
	var posts []Post
	for _, f := range files {
		// Mirrors GetBySlug: the first file with a given slug wins.
		if seen[f.Slug] {
			log.Printf("content: skipping %s, slug %q already used", f.RelPath, f.Slug)
			continue
		}
		seen[f.Slug] = true

		p, err := loadPost(f)
		if err != nil {
			log.Printf("content: error processing post %s: %v", f.RelPath, err)
			continue
		}
		if !opts.IncludeDrafts && !p.Frontmatter.IsPublished() {
			continue
		}
		if opts.Tag != "" && !p.Frontmatter.HasTag(opts.Tag) {
			continue
		}
		posts = append(posts, *p)
	}

	if !opts.Unsorted {
		SortByDate(posts)
	}
	if opts.Limit > 0 && len(posts) > opts.Limit {
		posts = posts[:opts.Limit]
	}
	return posts, nil
}

// Tags returns the sorted, de-duplicated tags of all published posts.
func (r *Repository) Tags() ([]string, error) {
	posts, err := r.List(ListOptions{})
	if err != nil {
		return nil, err
	}
	return CollectTags(posts), nil
}

// Related returns up to n published posts sharing at least one tag with
// post, most shared tags first. Ties keep file order. post itself is
// never included. n == 0 returns nothing; n < 0 uses DefaultRelatedLimit.
func (r *Repository) Related(post *Post, n int) ([]Post, error) {
	if n == 0 {
		return nil, nil
	}
	if n < 0 {
		n = DefaultRelatedLimit
	}
	posts, err := r.List(ListOptions{Unsorted: true})
	if err != nil {
		return nil, err
	}

	type scored struct {
		post   Post
		shared int
	}
	var candidates []scored
	for _, p := range posts {
		if p.Slug == post.Slug {
			continue
		}
		if shared := sharedTags(post.Frontmatter.Tags, p.Frontmatter.Tags); shared > 0 {
			candidates = append(candidates, scored{post: p, shared: shared})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].shared > candidates[j].shared
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	related := make([]Post, len(candidates))
	for i, c := range candidates {
		related[i] = c.post
	}
	return related, nil
}

// Search returns published posts whose title, summary, body or tags
// contain query, case-insensitively. An empty query matches everything.
func (r *Repository) Search(query string) ([]Post, error) {
	posts, err := r.List(ListOptions{})
	if err != nil {
		return nil, err
	}
	return Filter(posts, query, ""), nil
}

// Hot returns the published posts flagged isHot, newest first.
func (r *Repository) Hot() ([]Post, error) {
	posts, err := r.List(ListOptions{})
	if err != nil {
		return nil, err
	}
	var hot []Post
	for _, p := range posts {
		if p.Frontmatter.IsHot {
			hot = append(hot, p)
		}
	}
	return hot, nil
}

// Paginate returns one page of published posts, newest first.
func (r *Repository) Paginate(page, size int) (*Page, error) {
	posts, err := r.List(ListOptions{})
	if err != nil {
		return nil, err
	}
	return PaginatePosts(posts, page, size), nil
}

// PaginatePosts slices an already loaded list. size <= 0 uses
// DefaultPageSize and page < 1 is treated as 1.
func PaginatePosts(posts []Post, page, size int) *Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	total := len(posts)
	totalPages := int(math.Ceil(float64(total) / float64(size)))

	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &Page{
		Posts:       posts[start:end],
		TotalPosts:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

// Filter keeps the posts matching query (see Search) and, when tag is
// non-empty, carrying tag.
func Filter(posts []Post, query, tag string) []Post {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []Post
	for _, p := range posts {
		if tag != "" && !p.Frontmatter.HasTag(tag) {
			continue
		}
		if q != "" && !matches(p, q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matches(p Post, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(p.Frontmatter.Title), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Frontmatter.Summary), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Content), lowerQuery) ||
		strings.Contains(strings.ToLower(strings.Join(p.Frontmatter.Tags, " ")), lowerQuery)
}

// CollectTags returns the sorted set of tags used by posts.
func CollectTags(posts []Post) []string {
	set := make(map[string]struct{})
	for _, p := range posts {
		for _, t := range p.Frontmatter.Tags {
			set[t] = struct{}{}
		}
	}
	tags := make([]string, 0, len(set))
	for t := range set {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// SortByDate orders posts newest first in place. Equal dates keep their
// relative order.
func SortByDate(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})
}

// SortByTitle returns a copy of posts ordered alphabetically by title.
func SortByTitle(posts []Post) []Post {
	sorted := make([]Post, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := strings.ToLower(sorted[i].Frontmatter.Title), strings.ToLower(sorted[j].Frontmatter.Title)
		if a != b {
			return a < b
		}
		return sorted[i].Frontmatter.Title < sorted[j].Frontmatter.Title
	})
	return sorted
}

func sharedTags(a, b []string) int {
	n := 0
	for _, t := range b {
		for _, u := range a {
			if t == u {
				n++
				break
			}
		}
	}
	return n
}

func loadPost(f sourceFile) (*Post, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", f.RelPath, err)
	}
	defer file.Close()

	fm, body, err := ParseFrontmatter(file)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", f.RelPath, err)
	}
	date, err := ParseDate(fm.Date)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", f.RelPath, err)
	}

	rt := EstimateReadingTime(body)
	return &Post{
		Slug:        f.Slug,
		Frontmatter: fm,
		Content:     body,
		ReadingTime: rt,
		WordCount:   rt.Words,
		Date:        date,
		Path:        f.RelPath,
	}, nil
}
