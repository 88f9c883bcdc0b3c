package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, data string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func post(title, date, tags, extra, body string) string {
	return "---\ntitle: \"" + title + "\"\ndate: \"" + date + "\"\ntags: " + tags +
		"\nsummary: \"About " + title + "\"\n" + extra + "---\n\n" + body + "\n"
}

func setupRepo(t *testing.T) *Repository {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "first-post.md", post("First Post", "2024-01-01", `["go", "web"]`, "", "hello world"))
	writeFile(t, dir, "Second Post!.mdx", post("Second Post", "2024-02-01", `["go"]`, "isHot: true\nportfolioLink: \"https://example.com\"\n", "neural networks are fun"))
	writeFile(t, dir, "third.md", post("Third", "2024-03-01", `["web", "css"]`, "", "styling"))
	writeFile(t, dir, "draft.md", post("Draft", "2024-04-01", `["go", "secret"]`, "published: false\n", "not yet"))
	writeFile(t, dir, "broken.md", "---\ntitle: \"No date\"\ntags: []\nsummary: \"x\"\n---\nbody\n")
	writeFile(t, dir, "notes.txt", "ignored")
	return NewRepository(dir, nil)
}

func slugsOf(posts []Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Slug
	}
	return out
}

func TestListSlugs(t *testing.T) {
	repo := setupRepo(t)
	slugs, err := repo.ListSlugs()
	if err != nil {
		t.Fatalf("ListSlugs: %v", err)
	}
	want := []string{"second-post", "broken", "draft", "first-post", "third"}
	if strings.Join(slugs, ",") != strings.Join(want, ",") {
		t.Errorf("ListSlugs = %v, want %v", slugs, want)
	}
}

func TestListSlugsMissingDir(t *testing.T) {
	repo := NewRepository(filepath.Join(t.TempDir(), "nope"), nil)
	slugs, err := repo.ListSlugs()
	if err != nil {
		t.Fatalf("ListSlugs on missing dir: %v", err)
	}
	if len(slugs) != 0 {
		t.Errorf("expected no slugs, got %v", slugs)
	}
}

func TestGetBySlug(t *testing.T) {
	repo := setupRepo(t)

	p, err := repo.GetBySlug(Slug("Second Post!.mdx"))
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if p.Slug != "second-post" {
		t.Errorf("Slug = %q", p.Slug)
	}
	if p.Frontmatter.Title != "Second Post" {
		t.Errorf("Title = %q", p.Frontmatter.Title)
	}
	if !p.Frontmatter.IsHot || p.Frontmatter.PortfolioLink != "https://example.com" {
		t.Errorf("hot fields not parsed: %+v", p.Frontmatter)
	}
	if p.WordCount != 4 || p.ReadingTime.Minutes != 1 {
		t.Errorf("WordCount = %d, Minutes = %d", p.WordCount, p.ReadingTime.Minutes)
	}
	if !strings.HasPrefix(p.Content, "neural networks") {
		t.Errorf("Content = %q", p.Content)
	}
}

func TestGetBySlugNotFound(t *testing.T) {
	repo := setupRepo(t)
	if _, err := repo.GetBySlug("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	// Invalid files are masked at the boundary...
	if _, err := repo.GetBySlug("broken"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for invalid post, got %v", err)
	}
	// ...but visible to tooling.
	_, err := repo.GetBySlugStrict("broken")
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "date" {
		t.Errorf("expected date ValidationError, got %v", err)
	}
}

func TestListSortedNewestFirst(t *testing.T) {
	repo := setupRepo(t)
	posts, err := repo.List(ListOptions{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	got := strings.Join(slugsOf(posts), ",")
	if got != "third,second-post,first-post" {
		t.Errorf("List order = %s", got)
	}
}

func TestListOptions(t *testing.T) {
	repo := setupRepo(t)

	all, err := repo.List(ListOptions{IncludeDrafts: true})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 4 || all[0].Slug != "draft" {
		t.Errorf("IncludeDrafts: got %v", slugsOf(all))
	}

	tagged, _ := repo.List(ListOptions{Tag: "go"})
	if got := strings.Join(slugsOf(tagged), ","); got != "second-post,first-post" {
		t.Errorf("Tag filter = %s", got)
	}

	limited, _ := repo.List(ListOptions{Limit: 1})
	if len(limited) != 1 || limited[0].Slug != "third" {
		t.Errorf("Limit = %v", slugsOf(limited))
	}

	unsorted, _ := repo.List(ListOptions{Unsorted: true})
	if got := strings.Join(slugsOf(unsorted), ","); got != "second-post,first-post,third" {
		t.Errorf("Unsorted = %s", got)
	}
}

func TestTags(t *testing.T) {
	repo := setupRepo(t)
	tags, err := repo.Tags()
	if err != nil {
		t.Fatalf("Tags: %v", err)
	}
	// "secret" only appears on the draft.
	if got := strings.Join(tags, ","); got != "css,go,web" {
		t.Errorf("Tags = %s", got)
	}
}

func TestRelated(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", post("A", "2024-01-01", `["x", "y", "z"]`, "", "a"))
	writeFile(t, dir, "b.md", post("B", "2024-01-02", `["x"]`, "", "b"))
	writeFile(t, dir, "c.md", post("C", "2024-01-03", `["x", "y"]`, "", "c"))
	writeFile(t, dir, "d.md", post("D", "2024-01-04", `["q"]`, "", "d"))
	writeFile(t, dir, "e.md", post("E", "2024-01-05", `["z"]`, "", "e"))
	writeFile(t, dir, "f.md", post("F", "2024-01-06", `["y"]`, "published: false\n", "f"))
	repo := NewRepository(dir, nil)

	current, err := repo.GetBySlug("a")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}

	related, err := repo.Related(current, 3)
	if err != nil {
		t.Fatalf("Related: %v", err)
	}
	// c shares two tags; b and e share one and keep file order.
	if got := strings.Join(slugsOf(related), ","); got != "c,b,e" {
		t.Errorf("Related = %s", got)
	}

	two, _ := repo.Related(current, 2)
	if len(two) != 2 {
		t.Errorf("Related(2) returned %d posts", len(two))
	}

	none, err := repo.Related(current, 0)
	if err != nil || len(none) != 0 {
		t.Errorf("Related(0) = %v, %v; want no posts", slugsOf(none), err)
	}
	def, _ := repo.Related(current, -1)
	if len(def) != DefaultRelatedLimit {
		t.Errorf("Related(-1) returned %d posts, want %d", len(def), DefaultRelatedLimit)
	}

	for _, p := range related {
		if p.Slug == current.Slug {
			t.Error("Related must not include the post itself")
		}
	}
}

func TestSearch(t *testing.T) {
	repo := setupRepo(t)

	tests := []struct {
		query string
		want  string
	}{
		{"NEURAL", "second-post"},
		{"css", "third"},
		{"about first", "first-post"},
		{"secret", ""},
		{"", "third,second-post,first-post"},
	}
	for _, tt := range tests {
		got, err := repo.Search(tt.query)
		if err != nil {
			t.Fatalf("Search(%q): %v", tt.query, err)
		}
		if s := strings.Join(slugsOf(got), ","); s != tt.want {
			t.Errorf("Search(%q) = %s, want %s", tt.query, s, tt.want)
		}
	}
}

func TestHot(t *testing.T) {
	repo := setupRepo(t)
	hot, err := repo.Hot()
	if err != nil {
		t.Fatalf("Hot: %v", err)
	}
	if len(hot) != 1 || hot[0].Slug != "second-post" {
		t.Errorf("Hot = %v", slugsOf(hot))
	}
}

func TestPaginate(t *testing.T) {
	repo := setupRepo(t)

	tests := []struct {
		page, size        int
		wantPosts         int
		wantPages         int
		wantNext, wantPrv bool
		wantCurrent       int
	}{
		{1, 2, 2, 2, true, false, 1},
		{2, 2, 1, 2, false, true, 2},
		{3, 2, 0, 2, false, true, 3},
		{0, 2, 2, 2, true, false, 1},
		{1, 0, 3, 1, false, false, 1},
	}
	for _, tt := range tests {
		pg, err := repo.Paginate(tt.page, tt.size)
		if err != nil {
			t.Fatalf("Paginate(%d,%d): %v", tt.page, tt.size, err)
		}
		if len(pg.Posts) != tt.wantPosts || pg.TotalPages != tt.wantPages ||
			pg.HasNextPage != tt.wantNext || pg.HasPrevPage != tt.wantPrv ||
			pg.CurrentPage != tt.wantCurrent || pg.TotalPosts != 3 {
			t.Errorf("Paginate(%d,%d) = %+v", tt.page, tt.size, pg)
		}
	}
}

func TestPaginateEmpty(t *testing.T) {
	pg := PaginatePosts(nil, 1, 10)
	if pg.TotalPages != 0 || pg.HasNextPage || pg.HasPrevPage {
		t.Errorf("empty page = %+v", pg)
	}
}

func TestSortByTitle(t *testing.T) {
	posts := []Post{
		{Slug: "b", Frontmatter: Frontmatter{Title: "beta"}},
		{Slug: "a", Frontmatter: Frontmatter{Title: "Alpha"}},
		{Slug: "c", Frontmatter: Frontmatter{Title: "Gamma"}},
	}
	sorted := SortByTitle(posts)
	if got := strings.Join(slugsOf(sorted), ","); got != "a,b,c" {
		t.Errorf("SortByTitle = %s", got)
	}
	if posts[0].Slug != "b" {
		t.Error("SortByTitle must not modify its input")
	}
}

func TestRecursivePatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "top.md", post("Top", "2024-01-01", `[]`, "", "x"))
	writeFile(t, dir, "2024/nested.md", post("Nested", "2024-01-02", `[]`, "", "y"))
	writeFile(t, dir, ".hidden/skip.md", post("Hidden", "2024-01-03", `[]`, "", "z"))

	flat, _ := NewRepository(dir, nil).ListSlugs()
	if strings.Join(flat, ",") != "top" {
		t.Errorf("default patterns = %v", flat)
	}

	deep, _ := NewRepository(dir, []string{"**/*.md"}).ListSlugs()
	if strings.Join(deep, ",") != "nested,top" {
		t.Errorf("recursive patterns = %v", deep)
	}
}
