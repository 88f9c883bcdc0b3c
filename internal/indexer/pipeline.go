// Package indexer keeps the semantic post index in step with the content
// directory, re-embedding only posts whose text changed.
package indexer

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/folio-dev/folio/internal/content"
	"github.com/folio-dev/folio/internal/embeddings"
	"github.com/folio-dev/folio/internal/progress"
	"github.com/folio-dev/folio/internal/vectordb"
)

// Result summarizes one indexing run.
type Result struct {
	Indexed  int
	Skipped  int
	Removed  int
	Errors   []error
	Duration time.Duration
}

// Pipeline embeds posts into a vector store persisted under indexDir.
type Pipeline struct {
	embedder embeddings.Embedder
	store    vectordb.VectorStore
	indexDir string
	reporter progress.Reporter
}

// NewPipeline creates a Pipeline. store should be empty; Run loads any
// previous index into it.
func NewPipeline(embedder embeddings.Embedder, store vectordb.VectorStore, indexDir string) *Pipeline {
	return &Pipeline{
		embedder: embedder,
		store:    store,
		indexDir: indexDir,
		reporter: progress.Nop{},
	}
}

// SetReporter sets the progress reporter.
func (p *Pipeline) SetReporter(r progress.Reporter) {
	p.reporter = r
}

// Run indexes posts. With force set, or when the index was built by a
// different embedding model, every post is re-embedded. Posts that no
// longer exist are removed from the index.
func (p *Pipeline) Run(ctx context.Context, posts []content.Post, force bool) (*Result, error) {
	start := time.Now()
	result := &Result{}

	state, err := LoadState(p.indexDir)
	if err != nil {
		return nil, fmt.Errorf("load index state: %w", err)
	}

	if state.Model != "" && state.Model != p.embedder.Name() {
		log.Printf("indexer: model changed from %s to %s, rebuilding", state.Model, p.embedder.Name())
		force = true
	}
	if !force && !state.Empty() {
		if err := p.store.Load(ctx, p.indexDir); err != nil {
			log.Printf("indexer: previous index unreadable, rebuilding: %v", err)
			force = true
		}
	}
	if force {
		state.PostHashes = make(map[string]string)
	}
	state.Model = p.embedder.Name()

	var changed []vectordb.Document
	present := make(map[string]bool, len(posts))
	for _, post := range posts {
		doc := vectordb.FromPost(post)
		present[doc.ID] = true
		if state.IsChanged(doc.ID, doc.Metadata.ContentHash) {
			changed = append(changed, doc)
		} else {
			result.Skipped++
		}
	}

	var removed []string
	for slug := range state.PostHashes {
		if !present[slug] {
			removed = append(removed, slug)
		}
	}
	sort.Strings(removed)
	if len(removed) > 0 {
		if err := p.store.Delete(ctx, removed...); err != nil {
			return result, fmt.Errorf("remove deleted posts: %w", err)
		}
		for _, slug := range removed {
			delete(state.PostHashes, slug)
		}
		result.Removed = len(removed)
	}

	p.reporter.Start(len(changed))
	for i, doc := range changed {
		if err := ctx.Err(); err != nil {
			p.reporter.Finish()
			return result, err
		}
		if err := p.store.AddDocuments(ctx, []vectordb.Document{doc}); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("embed %s: %w", doc.ID, err))
		} else {
			state.PostHashes[doc.ID] = doc.Metadata.ContentHash
			result.Indexed++
		}
		p.reporter.Update(i+1, doc.ID)
	}
	p.reporter.Finish()

	if err := p.store.Persist(ctx, p.indexDir); err != nil {
		return result, fmt.Errorf("persist index: %w", err)
	}
	if err := state.SaveState(p.indexDir); err != nil {
		return result, fmt.Errorf("save index state: %w", err)
	}

	result.Duration = time.Since(start)
	return result, nil
}

// Open loads a previously built index for querying. It fails when no index
// exists or when it was built with a different embedding model.
func Open(ctx context.Context, embedder embeddings.Embedder, indexDir string) (*vectordb.ChromemStore, error) {
	state, err := LoadState(indexDir)
	if err != nil {
		return nil, fmt.Errorf("load index state: %w", err)
	}
	if state.Empty() {
		return nil, fmt.Errorf("no semantic index in %s (run folio index)", indexDir)
	}
	if state.Model != embedder.Name() {
		return nil, fmt.Errorf("index in %s was built with %s, not %s (run folio index --force)", indexDir, state.Model, embedder.Name())
	}

	store, err := vectordb.NewChromemStore(embedder)
	if err != nil {
		return nil, err
	}
	if err := store.Load(ctx, indexDir); err != nil {
		return nil, err
	}
	return store, nil
}
