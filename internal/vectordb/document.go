package vectordb

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/folio-dev/folio/internal/content"
)

// Document is one post as stored in the semantic index. ID is the post slug.
type Document struct {
	ID       string
	Content  string
	Metadata DocumentMetadata
}

// DocumentMetadata holds the post fields needed to render a search hit
// without going back to the content directory.
type DocumentMetadata struct {
	Title       string
	Summary     string
	Path        string
	Tags        []string
	Date        time.Time
	ContentHash string
}

// SearchResult pairs a document with its cosine similarity to the query.
type SearchResult struct {
	Document   Document
	Similarity float32
}

// SearchFilter narrows a search. A nil filter matches every post.
type SearchFilter struct {
	Tag *string
}

// FromPost builds the index document for a post. Title, summary and tags
// are repeated ahead of the body so short queries match on them.
func FromPost(p content.Post) Document {
	var sb strings.Builder
	sb.WriteString(p.Frontmatter.Title)
	sb.WriteString("\n")
	sb.WriteString(p.Frontmatter.Summary)
	if len(p.Frontmatter.Tags) > 0 {
		sb.WriteString("\nTags: ")
		sb.WriteString(strings.Join(p.Frontmatter.Tags, ", "))
	}
	sb.WriteString("\n\n")
	sb.WriteString(p.Content)
	text := sb.String()

	return Document{
		ID:      p.Slug,
		Content: text,
		Metadata: DocumentMetadata{
			Title:       p.Frontmatter.Title,
			Summary:     p.Frontmatter.Summary,
			Path:        p.Path,
			Tags:        p.Frontmatter.Tags,
			Date:        p.Date,
			ContentHash: ContentHash(text),
		},
	}
}

// ContentHash returns the hex SHA-256 of s.
func ContentHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
