// Package site renders the portfolio and blog as HTML, either live behind a
// chi router or exported to a directory of static files.
package site

import (
	"fmt"
	"html/template"
	"io"
	"log"
	"net/url"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/folio-dev/folio/internal/config"
	"github.com/folio-dev/folio/internal/content"
	"github.com/folio-dev/folio/internal/profile"
	"github.com/folio-dev/folio/internal/vectordb"
)

// MaxTagPills is how many tags the blog index offers as filters.
const MaxTagPills = 8

// Options controls what the rendered pages include.
type Options struct {
	Site config.SiteConfig
	Blog config.BlogConfig

	// Live pages talk to the server: chat widget (when a profile is
	// loaded), query-string search. Exported pages leave them out.
	Live bool
	// Effects adds the streamed background animations. Only used when Live.
	Effects bool
}

// Site renders pages from the content repository and the profile.
type Site struct {
	repo     *content.Repository
	profile  *profile.Profile
	md       goldmark.Markdown
	pages    map[string]*template.Template
	opts     Options
	semantic vectordb.VectorStore
}

// New parses the templates and returns a Site. prof may be nil, in which
// case the home and resume pages show only the blog.
func New(repo *content.Repository, prof *profile.Profile, opts Options) (*Site, error) {
	if opts.Blog.PageSize <= 0 {
		opts.Blog.PageSize = content.DefaultPageSize
	}
	if opts.Blog.RelatedLimit < 0 {
		opts.Blog.RelatedLimit = content.DefaultRelatedLimit
	}

	pages, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &Site{
		repo:    repo,
		profile: prof,
		md:      newMarkdown(),
		pages:   pages,
		opts:    opts,
	}, nil
}

// SetSemanticIndex enables semantic results on /api/search.
func (s *Site) SetSemanticIndex(store vectordb.VectorStore) {
	s.semantic = store
}

func parseTemplates() (map[string]*template.Template, error) {
	base, err := template.New("layout").Funcs(templateFuncs).Parse(layoutTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing layout template: %w", err)
	}
	if _, err := base.Parse(partialsTemplate); err != nil {
		return nil, fmt.Errorf("parsing partials: %w", err)
	}

	pages := make(map[string]*template.Template, len(pageTemplates))
	for name, src := range pageTemplates {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.Parse(src); err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

// layoutData is what every page template receives.
type layoutData struct {
	Site    config.SiteConfig
	Title   string
	Active  string
	Live    bool
	Chat    bool
	Effects bool
	Body    any
}

func (s *Site) layout(title, active string, body any) layoutData {
	full := s.opts.Site.Title
	if title != "" {
		full = title + " | " + s.opts.Site.Title
	}
	return layoutData{
		Site:    s.opts.Site,
		Title:   full,
		Active:  active,
		Live:    s.opts.Live,
		Chat:    s.opts.Live && s.profile != nil,
		Effects: s.opts.Live && s.opts.Effects,
		Body:    body,
	}
}

// render executes a page template into w. Callers pass a buffer when a
// half-written page must be avoided.
func (s *Site) render(w io.Writer, page string, data layoutData) error {
	t, ok := s.pages[page]
	if !ok {
		return fmt.Errorf("unknown page template %q", page)
	}
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		return fmt.Errorf("rendering %s: %w", page, err)
	}
	return nil
}

// homeData is the body of the home page.
type homeData struct {
	Profile *profile.Profile
	Latest  []content.Post
	Hot     []content.Post
}

func (s *Site) homeData() (homeData, error) {
	latest, err := s.repo.List(content.ListOptions{Limit: 3})
	if err != nil {
		return homeData{}, err
	}
	hot, err := s.hotPosts()
	if err != nil {
		return homeData{}, err
	}
	return homeData{Profile: s.profile, Latest: latest, Hot: hot}, nil
}

func (s *Site) hotPosts() ([]content.Post, error) {
	hot, err := s.repo.Hot()
	if err != nil {
		return nil, err
	}
	if s.opts.Blog.HotLimit > 0 && len(hot) > s.opts.Blog.HotLimit {
		hot = hot[:s.opts.Blog.HotLimit]
	}
	return hot, nil
}

// listingQuery is the state of the blog index controls.
type listingQuery struct {
	Query string
	Tag   string
	Sort  string // "date" or "title"
	Page  int

	// TagRoute marks /blog/tags/{tag}, which paginates under its own path.
	TagRoute bool
}

func (q listingQuery) filtered() bool {
	return q.Query != "" || (q.Tag != "" && !q.TagRoute) || q.Sort == "title"
}

// listingData is the body of the blog index and tag pages.
type listingData struct {
	listingQuery
	Heading   string
	Tags      []string
	Hot       []content.Post
	Page      *content.Page
	Semantic  bool
	Paginated bool
}

// PageURL links to page n of the current listing.
func (l listingData) PageURL(n int) string {
	if l.TagRoute {
		base := "/blog/tags/" + url.PathEscape(l.Tag)
		if n <= 1 {
			return base
		}
		return fmt.Sprintf("%s/page/%d", base, n)
	}
	if l.filtered() {
		v := url.Values{}
		if l.listingQuery.Query != "" {
			v.Set("q", l.listingQuery.Query)
		}
		if l.Tag != "" {
			v.Set("tag", l.Tag)
		}
		if l.Sort == "title" {
			v.Set("sort", "title")
		}
		if n > 1 {
			v.Set("page", fmt.Sprint(n))
		}
		return "/blog?" + v.Encode()
	}
	if n <= 1 {
		return "/blog"
	}
	return fmt.Sprintf("/blog/page/%d", n)
}

// TagURL links to the filter for tag, or clears the filter when tag is
// already selected.
func (l listingData) TagURL(tag string) string {
	if tag == "" || tag == l.Tag {
		return "/blog"
	}
	return "/blog/tags/" + url.PathEscape(tag)
}

func (s *Site) listingData(q listingQuery) (listingData, error) {
	posts, err := s.repo.List(content.ListOptions{})
	if err != nil {
		return listingData{}, err
	}

	allTags := content.CollectTags(posts)
	if len(allTags) > MaxTagPills {
		allTags = allTags[:MaxTagPills]
	}

	filtered := content.Filter(posts, q.Query, q.Tag)
	if q.Sort == "title" {
		filtered = content.SortByTitle(filtered)
	}

	data := listingData{
		listingQuery: q,
		Heading:      "All Posts",
		Tags:         allTags,
		Page:         content.PaginatePosts(filtered, q.Page, s.opts.Blog.PageSize),
	}
	data.Paginated = data.Page.TotalPages > 1
	if q.Tag != "" {
		data.Heading = fmt.Sprintf("Posts tagged %q", q.Tag)
	}
	if !q.filtered() && !q.TagRoute && data.Page.CurrentPage == 1 {
		if data.Hot, err = s.hotPosts(); err != nil {
			return listingData{}, err
		}
	}
	return data, nil
}

// postData is the body of a post page.
type postData struct {
	Post     *content.Post
	HTML     template.HTML
	Related  []content.Post
	ShareURL string
}

func (s *Site) postData(p *content.Post) (postData, error) {
	body, err := renderMarkdown(s.md, p.Content)
	if err != nil {
		return postData{}, err
	}
	related, err := s.repo.Related(p, s.opts.Blog.RelatedLimit)
	if err != nil {
		return postData{}, err
	}
	return postData{
		Post:     p,
		HTML:     body,
		Related:  related,
		ShareURL: strings.TrimRight(s.opts.Site.BaseURL, "/") + "/blog/" + p.Slug,
	}, nil
}

// redirectTarget returns where a post page should send visitors instead
// of rendering, or "" to render normally. Hot posts with a portfolio link
// point at the portfolio.
func redirectTarget(p *content.Post) string {
	if p.Frontmatter.IsHot && p.Frontmatter.PortfolioLink != "" {
		return p.Frontmatter.PortfolioLink
	}
	return ""
}

// errorData is the body of the 404 and 500 pages.
type errorData struct {
	Status  int
	Message string
}

func (s *Site) logError(context string, err error) {
	log.Printf("site: %s: %v", context, err)
}
