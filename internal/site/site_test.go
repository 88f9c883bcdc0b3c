package site

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/folio-dev/folio/internal/config"
	"github.com/folio-dev/folio/internal/content"
	"github.com/folio-dev/folio/internal/profile"
	"github.com/folio-dev/folio/internal/vectordb"
)

func writePost(t *testing.T, dir, name, frontmatter, body string) {
	t.Helper()
	data := "---\n" + frontmatter + "---\n\n" + body + "\n"
	if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func newTestSite(t *testing.T, prof *profile.Profile, live bool) *Site {
	t.Helper()
	dir := t.TempDir()
	writePost(t, dir, "go-concurrency.md",
		"title: \"Go Concurrency\"\ndate: \"2024-03-01\"\ntags: [\"go\", \"backend\"]\nsummary: \"Goroutines and channels\"\n",
		"# Channels\n\nPipelines everywhere.\n\n<ResumeCTA variant=\"prominent\" />")
	writePost(t, dir, "css-grid.md",
		"title: \"CSS Grid\"\ndate: \"2024-02-01\"\ntags: [\"css\"]\nsummary: \"Layouts\"\n",
		"Styling with grid.")
	writePost(t, dir, "launch.md",
		"title: \"Launch\"\ndate: \"2024-01-01\"\ntags: [\"go\"]\nsummary: \"We shipped\"\nisHot: true\nportfolioLink: \"https://example.com/launch\"\n",
		"Big news.")
	writePost(t, dir, "draft.md",
		"title: \"Draft\"\ndate: \"2024-04-01\"\ntags: [\"go\"]\nsummary: \"Not yet\"\npublished: false\n",
		"Secret.")

	s, err := New(content.NewRepository(dir, nil), prof, Options{
		Site: config.SiteConfig{Title: "Test Folio", BaseURL: "https://folio.test/"},
		Blog: config.BlogConfig{PageSize: 2, RelatedLimit: 3, HotLimit: 3},
		Live: live,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func newTestServer(t *testing.T, s *Site) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	s.RegisterRoutes(r)
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

func noRedirectClient() *http.Client {
	return &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
}

func get(t *testing.T, ts *httptest.Server, path string) (*http.Response, string) {
	t.Helper()
	resp, err := noRedirectClient().Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return resp, string(body)
}

func TestHomePage(t *testing.T) {
	prof := &profile.Profile{Personal: profile.Personal{Name: "Ada Lovelace", Title: "Engineer"}}
	ts := newTestServer(t, newTestSite(t, prof, true))

	resp, body := get(t, ts, "/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	for _, want := range []string{"Ada Lovelace", "Latest Posts", "Hot News", "Go Concurrency", `id="chat-toggle"`} {
		if !strings.Contains(body, want) {
			t.Errorf("home page missing %q", want)
		}
	}
	if strings.Contains(body, "Draft") {
		t.Error("home page should not list drafts")
	}
}

func TestHomePageWithoutProfile(t *testing.T) {
	ts := newTestServer(t, newTestSite(t, nil, false))
	_, body := get(t, ts, "/")
	if !strings.Contains(body, "Welcome") {
		t.Error("expected welcome fallback without a profile")
	}
	if strings.Contains(body, `id="chat-toggle"`) {
		t.Error("chat widget should be left out of non-live pages")
	}
}

func TestChatWidgetNeedsProfile(t *testing.T) {
	ts := newTestServer(t, newTestSite(t, nil, true))
	_, body := get(t, ts, "/")
	if strings.Contains(body, `id="chat-toggle"`) {
		t.Error("chat widget should be left out when no profile is loaded")
	}
}

func TestLiquidGlassBackground(t *testing.T) {
	for _, live := range []bool{true, false} {
		ts := newTestServer(t, newTestSite(t, nil, live))
		for _, path := range []string{"/", "/blog", "/resume"} {
			_, body := get(t, ts, path)
			for _, want := range []string{`class="liquid-glass"`, `<filter id="goo">`, `filter="url(#goo)"`, `class="blob blob-delay-4"`} {
				if !strings.Contains(body, want) {
					t.Errorf("live=%v %s: missing %s", live, path, want)
				}
			}
		}
	}
	if !strings.Contains(cssContent, "@keyframes blob") {
		t.Error("stylesheet should animate the blobs")
	}
}

func TestBlogIndex(t *testing.T) {
	ts := newTestServer(t, newTestSite(t, nil, true))

	_, body := get(t, ts, "/blog")
	if !strings.Contains(body, "3 posts") {
		t.Error("expected post count of 3")
	}
	if !strings.Contains(body, "Go Concurrency") || !strings.Contains(body, "CSS Grid") {
		t.Error("first page should list the two newest posts")
	}
	if !strings.Contains(body, `href="/blog/page/2"`) {
		t.Error("expected a link to page 2")
	}
	if !strings.Contains(body, hotHeading) {
		t.Error("unfiltered first page should show hot posts")
	}

	_, body = get(t, ts, "/blog/page/2")
	if !strings.Contains(body, "Launch") {
		t.Error("page 2 should list the oldest post")
	}
	if strings.Contains(body, hotHeading) {
		t.Error("hot section belongs on page 1 only")
	}
}

const hotHeading = "<h2>&#128293; Hot News</h2>"

func TestBlogPageOutOfRange(t *testing.T) {
	ts := newTestServer(t, newTestSite(t, nil, true))

	for _, path := range []string{
		"/blog/page/99",
		"/blog/tags/go/page/99",
		"/blog?page=99",
		"/blog?q=nothing-matches&page=2",
	} {
		resp, _ := get(t, ts, path)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("GET %s: status = %d, want 404", path, resp.StatusCode)
		}
	}

	resp, body := get(t, ts, "/blog?q=nothing-matches")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("empty result page: status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(body, "0 posts") {
		t.Error("empty result page should report 0 posts")
	}
}

func TestBlogPageOneRedirects(t *testing.T) {
	ts := newTestServer(t, newTestSite(t, nil, true))
	resp, _ := get(t, ts, "/blog/page/1")
	if resp.StatusCode != http.StatusMovedPermanently {
		t.Fatalf("status = %d, want 301", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/blog" {
		t.Errorf("Location = %q", loc)
	}

	resp, _ = get(t, ts, "/blog/page/abc")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("non-numeric page: status = %d, want 404", resp.StatusCode)
	}
}

func TestBlogFilters(t *testing.T) {
	ts := newTestServer(t, newTestSite(t, nil, true))

	_, body := get(t, ts, "/blog?q=grid")
	if !strings.Contains(body, "CSS Grid") || strings.Contains(body, "Go Concurrency") {
		t.Error("query should keep only matching posts")
	}
	if strings.Contains(body, "Hot News") {
		t.Error("filtered listing should not show hot posts")
	}

	_, body = get(t, ts, "/blog?q=nothing-matches")
	if !strings.Contains(body, "No posts found") {
		t.Error("expected empty state")
	}

	_, body = get(t, ts, "/blog/tags/css")
	if !strings.Contains(body, "Posts tagged &#34;css&#34;") {
		t.Error("expected tag heading")
	}
	if strings.Contains(body, "Go Concurrency") {
		t.Error("tag page should not list untagged posts")
	}
	if !strings.Contains(body, `class="tag-pill active" href="/blog"`) {
		t.Error("selected tag pill should clear the filter")
	}
}

func TestPostPage(t *testing.T) {
	ts := newTestServer(t, newTestSite(t, nil, true))

	resp, body := get(t, ts, "/blog/go-concurrency")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	for _, want := range []string{
		`<h1 id="channels">Channels</h1>`,
		`class="resume-cta resume-cta-prominent"`,
		`data-share-url="https://folio.test/blog/go-concurrency"`,
		"Related Posts",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("post page missing %q", want)
		}
	}
}

func TestHotPostRedirects(t *testing.T) {
	ts := newTestServer(t, newTestSite(t, nil, true))
	resp, _ := get(t, ts, "/blog/launch")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("status = %d, want 302", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "https://example.com/launch" {
		t.Errorf("Location = %q", loc)
	}
}

func TestNotFound(t *testing.T) {
	ts := newTestServer(t, newTestSite(t, nil, true))
	for _, path := range []string{"/blog/missing", "/blog/draft", "/nowhere"} {
		resp, body := get(t, ts, path)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", path, resp.StatusCode)
		}
		if !strings.Contains(body, "does not exist") {
			t.Errorf("%s: expected the 404 page", path)
		}
	}
}

func TestResumeEmptyState(t *testing.T) {
	ts := newTestServer(t, newTestSite(t, nil, true))
	_, body := get(t, ts, "/resume")
	if !strings.Contains(body, "No resume has been published yet.") {
		t.Error("expected resume empty state")
	}
}

func TestStaticAssets(t *testing.T) {
	ts := newTestServer(t, newTestSite(t, nil, true))
	resp, body := get(t, ts, "/static/style.css")
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/css") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(body, ".resume-cta-prominent") {
		t.Error("stylesheet missing CTA styles")
	}
	resp, _ = get(t, ts, "/static/nope.js")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown asset: status = %d", resp.StatusCode)
	}
}

type fakeStore struct {
	vectordb.VectorStore
	results []vectordb.SearchResult
	err     error
}

func (f *fakeStore) Search(ctx context.Context, query string, limit int, filter *vectordb.SearchFilter) ([]vectordb.SearchResult, error) {
	return f.results, f.err
}

func decodeSearch(t *testing.T, body string) searchResponse {
	t.Helper()
	var resp searchResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("decoding search response: %v", err)
	}
	return resp
}

func TestSearchKeyword(t *testing.T) {
	ts := newTestServer(t, newTestSite(t, nil, true))
	_, body := get(t, ts, "/api/search?q=grid")
	resp := decodeSearch(t, body)
	if resp.Mode != "keyword" {
		t.Errorf("mode = %q", resp.Mode)
	}
	if len(resp.Results) != 1 || resp.Results[0].Slug != "css-grid" {
		t.Fatalf("results = %+v", resp.Results)
	}
	if resp.Results[0].URL != "/blog/css-grid" {
		t.Errorf("url = %q", resp.Results[0].URL)
	}

	_, body = get(t, ts, "/api/search?tag=go&limit=1")
	if resp := decodeSearch(t, body); len(resp.Results) != 1 {
		t.Errorf("limit not applied: %d results", len(resp.Results))
	}
}

func TestSearchSemantic(t *testing.T) {
	s := newTestSite(t, nil, true)
	s.SetSemanticIndex(&fakeStore{results: []vectordb.SearchResult{{
		Document:   vectordb.Document{ID: "go-concurrency", Metadata: vectordb.DocumentMetadata{Title: "Go Concurrency"}},
		Similarity: 0.9,
	}}})
	ts := newTestServer(t, s)

	_, body := get(t, ts, "/api/search?q=parallel+work")
	resp := decodeSearch(t, body)
	if resp.Mode != "semantic" || len(resp.Results) != 1 || resp.Results[0].Score < 0.89 {
		t.Errorf("unexpected semantic response %+v", resp)
	}

	_, body = get(t, ts, "/api/search?q=grid&mode=keyword")
	if resp := decodeSearch(t, body); resp.Mode != "keyword" {
		t.Errorf("mode=keyword ignored, got %q", resp.Mode)
	}
}

func TestSearchSemanticFallsBack(t *testing.T) {
	s := newTestSite(t, nil, true)
	s.SetSemanticIndex(&fakeStore{err: errors.New("embedder offline")})
	ts := newTestServer(t, s)

	_, body := get(t, ts, "/api/search?q=grid")
	resp := decodeSearch(t, body)
	if resp.Mode != "keyword" || len(resp.Results) != 1 {
		t.Errorf("expected keyword fallback, got %+v", resp)
	}
}

func TestExpandResumeCTA(t *testing.T) {
	tests := []struct {
		in, class string
	}{
		{`<ResumeCTA />`, "resume-cta-default"},
		{`<ResumeCTA variant="minimal"/>`, "resume-cta-minimal"},
		{`<ResumeCTA variant="prominent"></ResumeCTA>`, "resume-cta-prominent"},
		{`<ResumeCTA variant="loud" />`, "resume-cta-default"},
	}
	for _, tt := range tests {
		got := expandResumeCTA(tt.in)
		if !strings.Contains(got, tt.class) || !strings.Contains(got, `href="/resume"`) {
			t.Errorf("expandResumeCTA(%q) = %q", tt.in, got)
		}
		if strings.Contains(got, "ResumeCTA") {
			t.Errorf("component tag left in output: %q", got)
		}
	}
}

func TestExport(t *testing.T) {
	s := newTestSite(t, &profile.Profile{Personal: profile.Personal{Name: "Ada"}}, false)
	out := t.TempDir()

	res, err := s.Export(t.Context(), out, nil)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if res.Redirects != 1 {
		t.Errorf("redirects = %d, want 1", res.Redirects)
	}

	for _, rel := range []string{
		"index.html",
		"blog/index.html",
		"blog/page/2/index.html",
		"blog/tags/go/index.html",
		"blog/tags/css/index.html",
		"blog/go-concurrency/index.html",
		"resume/index.html",
		"404.html",
		"static/style.css",
		"static/app.js",
		"search-index.json",
	} {
		if _, err := os.Stat(filepath.Join(out, rel)); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "blog/draft/index.html")); err == nil {
		t.Error("drafts should not be exported")
	}

	redirect, err := os.ReadFile(filepath.Join(out, "blog/launch/index.html"))
	if err != nil {
		t.Fatalf("reading redirect page: %v", err)
	}
	if !strings.Contains(string(redirect), `url=https://example.com/launch`) {
		t.Errorf("redirect page = %s", redirect)
	}

	data, err := os.ReadFile(filepath.Join(out, "search-index.json"))
	if err != nil {
		t.Fatalf("reading search index: %v", err)
	}
	var items []searchItem
	if err := json.Unmarshal(data, &items); err != nil {
		t.Fatalf("decoding search index: %v", err)
	}
	if len(items) != 3 {
		t.Errorf("search index has %d entries, want 3", len(items))
	}
}

func TestExportTagPathsStayInOutput(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "odd-tags.md",
		"title: \"Odd Tags\"\ndate: \"2024-05-01\"\ntags: [\"../../../escaped\", \"a/b\", \"..\", \"ok\"]\nsummary: \"Tags with slashes\"\n",
		"Body.")
	s, err := New(content.NewRepository(dir, nil), nil, Options{Blog: config.BlogConfig{PageSize: 10}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	root := t.TempDir()
	out := filepath.Join(root, "a", "public")
	if _, err := s.Export(t.Context(), out, nil); err != nil {
		t.Fatalf("Export: %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, "escaped")); err == nil {
		t.Fatal("export wrote outside the output directory")
	}
	if _, err := os.Stat(filepath.Join(root, "a", "escaped")); err == nil {
		t.Fatal("export wrote outside the output directory")
	}
	for _, tag := range []string{"../../../escaped", "a/b", "ok"} {
		rel := filepath.Join("blog", "tags", url.PathEscape(tag), "index.html")
		if _, err := os.Stat(filepath.Join(out, rel)); err != nil {
			t.Errorf("tag %q: missing %s: %v", tag, rel, err)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "blog", "index.html")); err != nil {
		t.Errorf("blog index missing: %v", err)
	}
}

func TestWriteOutputRejectsEscapes(t *testing.T) {
	out := filepath.Join(t.TempDir(), "public")
	for _, rel := range []string{"../x.html", "blog/../../x.html"} {
		if err := writeOutput(out, rel, []byte("x")); err == nil {
			t.Errorf("writeOutput(%q) should fail", rel)
		}
	}
	if err := writeOutput(out, "blog/ok/index.html", []byte("x")); err != nil {
		t.Errorf("writeOutput inside outDir: %v", err)
	}
}

func TestExportCancelled(t *testing.T) {
	s := newTestSite(t, nil, false)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	if _, err := s.Export(ctx, t.TempDir(), nil); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
