package vectordb

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	chromem "github.com/philippgille/chromem-go"

	"github.com/folio-dev/folio/internal/embeddings"
)

const (
	collectionName = "posts"
	exportFile     = "posts.gob.gz"

	// Tags are stored as one metadata key per tag so chromem's exact-match
	// where clause can filter on them.
	tagKeyPrefix = "tag:"
)

// ChromemStore implements VectorStore with an in-memory chromem-go DB that
// is exported to a single compressed file.
type ChromemStore struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedFunc  chromem.EmbeddingFunc
}

// NewChromemStore creates an empty store embedding with embedder.
func NewChromemStore(embedder embeddings.Embedder) (*ChromemStore, error) {
	db := chromem.NewDB()
	ef := embeddings.ToChromemFunc(embedder)

	col, err := db.GetOrCreateCollection(collectionName, map[string]string{"model": embedder.Name()}, ef)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	return &ChromemStore{
		db:         db,
		collection: col,
		embedFunc:  ef,
	}, nil
}

func (s *ChromemStore) AddDocuments(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	chromDocs := make([]chromem.Document, len(docs))
	for i, doc := range docs {
		chromDocs[i] = chromem.Document{
			ID:       doc.ID,
			Content:  doc.Content,
			Metadata: metadataToMap(doc.Metadata),
		}
	}

	return s.collection.AddDocuments(ctx, chromDocs, 1)
}

func (s *ChromemStore) Search(ctx context.Context, query string, limit int, filter *SearchFilter) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}

	// chromem-go rejects nResults larger than the collection.
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	limit = min(limit, count)

	results, err := s.collection.Query(ctx, query, limit, buildWhereClause(filter), nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	out := make([]SearchResult, len(results))
	for i, r := range results {
		out[i] = SearchResult{
			Document: Document{
				ID:       r.ID,
				Content:  r.Content,
				Metadata: mapToMetadata(r.Metadata),
			},
			Similarity: r.Similarity,
		}
	}
	return out, nil
}

func (s *ChromemStore) Get(ctx context.Context, id string) (Document, bool) {
	doc, err := s.collection.GetByID(ctx, id)
	if err != nil {
		return Document{}, false
	}
	return Document{
		ID:       doc.ID,
		Content:  doc.Content,
		Metadata: mapToMetadata(doc.Metadata),
	}, true
}

func (s *ChromemStore) Delete(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	return s.collection.Delete(ctx, nil, nil, ids...)
}

func (s *ChromemStore) Persist(ctx context.Context, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}
	return s.db.ExportToFile(filepath.Join(dir, exportFile), true, "", collectionName)
}

func (s *ChromemStore) Load(ctx context.Context, dir string) error {
	if err := s.db.ImportFromFile(filepath.Join(dir, exportFile), "", collectionName); err != nil {
		return fmt.Errorf("import index: %w", err)
	}

	// Import replaces the collection; re-acquire it with our embedding func.
	col := s.db.GetCollection(collectionName, s.embedFunc)
	if col == nil {
		return fmt.Errorf("collection %q not found after import", collectionName)
	}
	s.collection = col
	return nil
}

func (s *ChromemStore) Count() int {
	return s.collection.Count()
}

func metadataToMap(m DocumentMetadata) map[string]string {
	md := map[string]string{
		"title":        m.Title,
		"summary":      m.Summary,
		"path":         m.Path,
		"content_hash": m.ContentHash,
	}
	if !m.Date.IsZero() {
		md["date"] = m.Date.Format(time.RFC3339)
	}
	if len(m.Tags) > 0 {
		// JSON keeps tags that contain commas intact.
		if b, err := json.Marshal(m.Tags); err == nil {
			md["tags"] = string(b)
		}
	}
	for _, t := range m.Tags {
		md[tagKeyPrefix+t] = "1"
	}
	return md
}

func mapToMetadata(m map[string]string) DocumentMetadata {
	date, _ := time.Parse(time.RFC3339, m["date"])

	var tags []string
	if raw := m["tags"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &tags); err != nil {
			tags = nil
		}
	}

	return DocumentMetadata{
		Title:       m["title"],
		Summary:     m["summary"],
		Path:        m["path"],
		Tags:        tags,
		Date:        date,
		ContentHash: m["content_hash"],
	}
}

func buildWhereClause(filter *SearchFilter) map[string]string {
	if filter == nil || filter.Tag == nil {
		return nil
	}
	return map[string]string{tagKeyPrefix + *filter.Tag: "1"}
}
