package site

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/folio-dev/folio/internal/content"
	"github.com/folio-dev/folio/internal/vectordb"
)

// RegisterRoutes mounts the pages, static assets and search API.
func (s *Site) RegisterRoutes(r chi.Router) {
	r.Get("/", s.handleHome)
	r.Get("/blog", s.handleBlog)
	r.Get("/blog/page/{n}", s.handleBlogPage)
	r.Get("/blog/tags/{tag}", s.handleTag)
	r.Get("/blog/tags/{tag}/page/{n}", s.handleTag)
	r.Get("/blog/{slug}", s.handlePost)
	r.Get("/resume", s.handleResume)
	r.Get("/static/{file}", handleStatic)
	r.Get("/api/search", s.handleSearch)
	r.NotFound(s.handleNotFound)
}

func (s *Site) handleHome(w http.ResponseWriter, r *http.Request) {
	data, err := s.homeData()
	if err != nil {
		s.serverError(w, "home", err)
		return
	}
	s.writePage(w, http.StatusOK, "home", s.layout("", "home", data))
}

func (s *Site) handleBlog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	s.serveListing(w, r, listingQuery{
		Query: strings.TrimSpace(q.Get("q")),
		Tag:   q.Get("tag"),
		Sort:  q.Get("sort"),
		Page:  page,
	})
}

func (s *Site) handleBlogPage(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil || page < 1 {
		s.handleNotFound(w, r)
		return
	}
	if page == 1 {
		http.Redirect(w, r, "/blog", http.StatusMovedPermanently)
		return
	}
	s.serveListing(w, r, listingQuery{Page: page})
}

func (s *Site) handleTag(w http.ResponseWriter, r *http.Request) {
	page := 1
	if n := chi.URLParam(r, "n"); n != "" {
		var err error
		if page, err = strconv.Atoi(n); err != nil || page < 1 {
			s.handleNotFound(w, r)
			return
		}
	}
	s.serveListing(w, r, listingQuery{Tag: chi.URLParam(r, "tag"), Page: page, TagRoute: true})
}

func (s *Site) serveListing(w http.ResponseWriter, r *http.Request, q listingQuery) {
	data, err := s.listingData(q)
	if err != nil {
		s.serverError(w, "blog index", err)
		return
	}
	// An empty listing still has page 1.
	if data.Page.CurrentPage > max(data.Page.TotalPages, 1) {
		s.handleNotFound(w, r)
		return
	}
	s.writePage(w, http.StatusOK, "blog", s.layout(listingTitle(q), "blog", data))
}

func listingTitle(q listingQuery) string {
	if q.Tag != "" {
		return "#" + q.Tag
	}
	return "Blog"
}

func (s *Site) handlePost(w http.ResponseWriter, r *http.Request) {
	post, err := s.repo.GetBySlug(chi.URLParam(r, "slug"))
	if err != nil || !post.Frontmatter.IsPublished() {
		s.handleNotFound(w, r)
		return
	}
	if target := redirectTarget(post); target != "" {
		http.Redirect(w, r, target, http.StatusFound)
		return
	}
	data, err := s.postData(post)
	if err != nil {
		s.serverError(w, "post "+post.Slug, err)
		return
	}
	s.writePage(w, http.StatusOK, "post", s.layout(post.Frontmatter.Title, "blog", data))
}

func (s *Site) handleResume(w http.ResponseWriter, r *http.Request) {
	s.writePage(w, http.StatusOK, "resume", s.layout("Resume", "resume", s.profile))
}

func (s *Site) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writePage(w, http.StatusNotFound, "error", s.layout("Not Found", "", errorData{
		Status:  http.StatusNotFound,
		Message: "The page you are looking for does not exist.",
	}))
}

func (s *Site) serverError(w http.ResponseWriter, context string, err error) {
	s.logError(context, err)
	s.writePage(w, http.StatusInternalServerError, "error", s.layout("Error", "", errorData{
		Status:  http.StatusInternalServerError,
		Message: "Something went wrong rendering this page.",
	}))
}

// writePage renders the page before touching w, so a failing template
// still produces a clean error response.
func (s *Site) writePage(w http.ResponseWriter, status int, page string, data layoutData) {
	var buf bytes.Buffer
	if err := s.render(&buf, page, data); err != nil {
		s.logError("template", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

var staticFiles = map[string]struct {
	contentType string
	body        string
}{
	"style.css": {"text/css; charset=utf-8", cssContent},
	"app.js":    {"application/javascript; charset=utf-8", jsContent},
}

func handleStatic(w http.ResponseWriter, r *http.Request) {
	f, ok := staticFiles[chi.URLParam(r, "file")]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", f.contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write([]byte(f.body))
}

// searchResponse is the JSON body of /api/search.
type searchResponse struct {
	Mode    string       `json:"mode"` // "keyword" or "semantic"
	Query   string       `json:"query"`
	Results []searchItem `json:"results"`
}

type searchItem struct {
	Slug    string   `json:"slug"`
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Date    string   `json:"date"`
	Tags    []string `json:"tags"`
	URL     string   `json:"url"`
	Score   float64  `json:"score,omitempty"`
}

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

func (s *Site) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := strings.TrimSpace(q.Get("q"))
	tag := q.Get("tag")
	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil || limit <= 0 {
		limit = defaultSearchLimit
	}
	limit = min(limit, maxSearchLimit)

	if s.semantic != nil && query != "" && q.Get("mode") != "keyword" {
		var filter *vectordb.SearchFilter
		if tag != "" {
			filter = &vectordb.SearchFilter{Tag: &tag}
		}
		results, err := s.semantic.Search(r.Context(), query, limit, filter)
		if err == nil {
			writeJSON(w, http.StatusOK, searchResponse{Mode: "semantic", Query: query, Results: semanticItems(results)})
			return
		}
		s.logError("semantic search", err)
	}

	posts, err := s.repo.List(content.ListOptions{Tag: tag})
	if err != nil {
		s.logError("keyword search", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "search failed"})
		return
	}
	posts = content.Filter(posts, query, "")
	if len(posts) > limit {
		posts = posts[:limit]
	}
	writeJSON(w, http.StatusOK, searchResponse{Mode: "keyword", Query: query, Results: keywordItems(posts)})
}

func keywordItems(posts []content.Post) []searchItem {
	items := make([]searchItem, 0, len(posts))
	for _, p := range posts {
		items = append(items, searchItem{
			Slug:    p.Slug,
			Title:   p.Frontmatter.Title,
			Summary: p.Frontmatter.Summary,
			Date:    p.Date.Format(time.DateOnly),
			Tags:    p.Frontmatter.Tags,
			URL:     postURL(p),
		})
	}
	return items
}

func semanticItems(results []vectordb.SearchResult) []searchItem {
	items := make([]searchItem, 0, len(results))
	for _, r := range results {
		md := r.Document.Metadata
		item := searchItem{
			Slug:    r.Document.ID,
			Title:   md.Title,
			Summary: md.Summary,
			Tags:    md.Tags,
			URL:     "/blog/" + r.Document.ID,
			Score:   float64(r.Similarity),
		}
		if !md.Date.IsZero() {
			item.Date = md.Date.Format(time.DateOnly)
		}
		items = append(items, item)
	}
	return items
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
