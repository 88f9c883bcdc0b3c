package vectordb

import "context"

// VectorStore stores post documents and searches them by embedding.
type VectorStore interface {
	// AddDocuments adds documents, replacing any with the same ID.
	AddDocuments(ctx context.Context, docs []Document) error

	// Search returns up to limit documents ordered by similarity to query.
	Search(ctx context.Context, query string, limit int, filter *SearchFilter) ([]SearchResult, error)

	// Get returns the document with the given ID, or false.
	Get(ctx context.Context, id string) (Document, bool)

	// Delete removes the documents with the given IDs.
	Delete(ctx context.Context, ids ...string) error

	// Persist saves the store under dir.
	Persist(ctx context.Context, dir string) error

	// Load replaces the store's contents with what Persist wrote under dir.
	Load(ctx context.Context, dir string) error

	// Count returns the number of stored documents.
	Count() int
}
