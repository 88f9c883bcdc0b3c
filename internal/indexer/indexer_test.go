package indexer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/folio-dev/folio/internal/content"
	"github.com/folio-dev/folio/internal/embeddings"
	"github.com/folio-dev/folio/internal/vectordb"
)

// --- Mock Vector Store ---

type mockStore struct {
	docs      map[string]vectordb.Document
	persisted map[string]vectordb.Document
	failOn    string
	loads     int
}

func newMockStore() *mockStore {
	return &mockStore{docs: make(map[string]vectordb.Document)}
}

func (m *mockStore) AddDocuments(_ context.Context, docs []vectordb.Document) error {
	for _, d := range docs {
		if d.ID == m.failOn {
			return errors.New("embedding failed")
		}
		m.docs[d.ID] = d
	}
	return nil
}

func (m *mockStore) Search(_ context.Context, _ string, _ int, _ *vectordb.SearchFilter) ([]vectordb.SearchResult, error) {
	return nil, nil
}

func (m *mockStore) Get(_ context.Context, id string) (vectordb.Document, bool) {
	d, ok := m.docs[id]
	return d, ok
}

func (m *mockStore) Delete(_ context.Context, ids ...string) error {
	for _, id := range ids {
		delete(m.docs, id)
	}
	return nil
}

func (m *mockStore) Persist(_ context.Context, _ string) error {
	m.persisted = make(map[string]vectordb.Document, len(m.docs))
	for k, v := range m.docs {
		m.persisted[k] = v
	}
	return nil
}

func (m *mockStore) Load(_ context.Context, _ string) error {
	m.loads++
	for k, v := range m.persisted {
		m.docs[k] = v
	}
	return nil
}

func (m *mockStore) Count() int { return len(m.docs) }

// --- Mock Reporter ---

type mockReporter struct {
	total   int
	updates []string
	done    bool
}

func (r *mockReporter) Start(total int)          { r.total = total }
func (r *mockReporter) Update(_ int, msg string) { r.updates = append(r.updates, msg) }
func (r *mockReporter) Finish()                  { r.done = true }

func post(slug, body string) content.Post {
	return content.Post{
		Slug:        slug,
		Frontmatter: content.Frontmatter{Title: slug, Summary: "summary of " + slug, Tags: []string{"go"}},
		Content:     body,
		Path:        slug + ".md",
	}
}

func TestPipelineIncremental(t *testing.T) {
	dir := t.TempDir()
	store := newMockStore()
	p := NewPipeline(embeddings.NewHashEmbedder(32), store, dir)
	rep := &mockReporter{}
	p.SetReporter(rep)

	posts := []content.Post{post("a", "first"), post("b", "second")}
	res, err := p.Run(t.Context(), posts, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Indexed != 2 || res.Skipped != 0 {
		t.Errorf("first run: indexed %d skipped %d, want 2/0", res.Indexed, res.Skipped)
	}
	if rep.total != 2 || len(rep.updates) != 2 || !rep.done {
		t.Errorf("reporter: total %d updates %v done %v", rep.total, rep.updates, rep.done)
	}

	// Edit b, delete a, add c.
	posts = []content.Post{post("b", "second, edited"), post("c", "third")}
	res, err = p.Run(t.Context(), posts, false)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if res.Indexed != 2 || res.Removed != 1 || res.Skipped != 0 {
		t.Errorf("second run: %+v", res)
	}
	if store.loads != 1 {
		t.Errorf("previous index should be loaded once, got %d", store.loads)
	}
	if _, ok := store.Get(t.Context(), "a"); ok {
		t.Error("deleted post a still indexed")
	}

	res, err = p.Run(t.Context(), posts, false)
	if err != nil {
		t.Fatalf("third Run: %v", err)
	}
	if res.Indexed != 0 || res.Skipped != 2 {
		t.Errorf("unchanged run: %+v", res)
	}

	state, err := LoadState(dir)
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if state.Model != "hash-32" || len(state.PostHashes) != 2 {
		t.Errorf("state = %+v", state)
	}
}

func TestPipelineForceAndModelChange(t *testing.T) {
	dir := t.TempDir()
	posts := []content.Post{post("a", "first")}

	if _, err := NewPipeline(embeddings.NewHashEmbedder(32), newMockStore(), dir).Run(t.Context(), posts, false); err != nil {
		t.Fatalf("Run: %v", err)
	}

	res, err := NewPipeline(embeddings.NewHashEmbedder(32), newMockStore(), dir).Run(t.Context(), posts, true)
	if err != nil {
		t.Fatalf("forced Run: %v", err)
	}
	if res.Indexed != 1 {
		t.Errorf("force should re-embed, got %+v", res)
	}

	store := newMockStore()
	res, err = NewPipeline(embeddings.NewHashEmbedder(64), store, dir).Run(t.Context(), posts, false)
	if err != nil {
		t.Fatalf("Run with new model: %v", err)
	}
	if res.Indexed != 1 || store.loads != 0 {
		t.Errorf("model change should rebuild without loading: %+v loads=%d", res, store.loads)
	}
}

func TestPipelineEmbedError(t *testing.T) {
	store := newMockStore()
	store.failOn = "bad"
	p := NewPipeline(embeddings.NewHashEmbedder(16), store, t.TempDir())

	res, err := p.Run(t.Context(), []content.Post{post("good", "x"), post("bad", "y")}, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Indexed != 1 || len(res.Errors) != 1 {
		t.Errorf("want 1 indexed, 1 error; got %+v", res)
	}

	// The failed post is retried next time.
	store.failOn = ""
	res, err = p.Run(t.Context(), []content.Post{post("good", "x"), post("bad", "y")}, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Indexed != 1 || res.Skipped != 1 {
		t.Errorf("retry run: %+v", res)
	}
}

func TestPipelineWithChromem(t *testing.T) {
	dir := t.TempDir()
	embedder := embeddings.NewHashEmbedder(embeddings.DefaultHashDimensions)
	store, err := vectordb.NewChromemStore(embedder)
	if err != nil {
		t.Fatalf("NewChromemStore: %v", err)
	}

	posts := []content.Post{
		post("goroutines", "goroutines channels select worker pools"),
		post("gardening", "tomatoes soil compost watering"),
	}
	if _, err := NewPipeline(embedder, store, dir).Run(t.Context(), posts, false); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, stateFile)); err != nil {
		t.Fatalf("state file not written: %v", err)
	}

	loaded, err := Open(t.Context(), embedder, dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	results, err := loaded.Search(t.Context(), "worker pools and channels", 1, nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Document.ID != "goroutines" {
		t.Errorf("top hit = %+v, want goroutines", results)
	}
}

func TestOpenErrors(t *testing.T) {
	embedder := embeddings.NewHashEmbedder(16)
	dir := t.TempDir()

	if _, err := Open(t.Context(), embedder, dir); err == nil {
		t.Error("Open on an empty dir should fail")
	}

	state := &IndexState{Model: "openai/text-embedding-3-small", PostHashes: map[string]string{"a": "h"}}
	if err := state.SaveState(dir); err != nil {
		t.Fatalf("SaveState: %v", err)
	}
	if _, err := Open(t.Context(), embedder, dir); err == nil {
		t.Error("Open with a different model should fail")
	}
}

func TestStateIsChanged(t *testing.T) {
	s := &IndexState{PostHashes: map[string]string{"a": "h1"}}
	if s.IsChanged("a", "h1") {
		t.Error("same hash reported as changed")
	}
	if !s.IsChanged("a", "h2") {
		t.Error("different hash not reported")
	}
	if !s.IsChanged("b", "h1") {
		t.Error("unknown slug not reported")
	}
}
