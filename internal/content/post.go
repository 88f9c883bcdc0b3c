// Package content loads blog posts from a directory of markdown files and
// answers the listing, tag, related-post, search and pagination queries the
// site needs. Every query re-reads the directory so edits show up without a
// restart.
package content

import (
	"time"
)

// Frontmatter is the metadata block at the top of a post file.
type Frontmatter struct {
	Title         string   `json:"title" yaml:"title"`
	Date          string   `json:"date" yaml:"date"`
	Tags          []string `json:"tags" yaml:"tags"`
	Summary       string   `json:"summary" yaml:"summary"`
	Cover         string   `json:"cover,omitempty" yaml:"cover,omitempty"`
	IsHot         bool     `json:"isHot,omitempty" yaml:"isHot,omitempty"`
	PortfolioLink string   `json:"portfolioLink,omitempty" yaml:"portfolioLink,omitempty"`
	Author        string   `json:"author,omitempty" yaml:"author,omitempty"`
	Published     *bool    `json:"published,omitempty" yaml:"published,omitempty"`
}

// IsPublished reports whether the post should be listed. A missing
// published key counts as published.
func (f Frontmatter) IsPublished() bool {
	return f.Published == nil || *f.Published
}

// HasTag reports whether the post carries the exact tag.
func (f Frontmatter) HasTag(tag string) bool {
	for _, t := range f.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ReadingTime is the estimated time needed to read a post body.
type ReadingTime struct {
	Text    string `json:"text"`
	Minutes int    `json:"minutes"`
	Time    int    `json:"time"` // milliseconds
	Words   int    `json:"words"`
}

// Post is a parsed, validated blog post.
type Post struct {
	Slug        string      `json:"slug"`
	Frontmatter Frontmatter `json:"frontmatter"`
	Content     string      `json:"content"`
	ReadingTime ReadingTime `json:"readingTime"`
	WordCount   int         `json:"wordCount"`

	// Date is Frontmatter.Date parsed; used for ordering.
	Date time.Time `json:"-"`
	// Path is the source file, relative to the content directory.
	Path string `json:"path"`
}

// Page is one page of the published, date-sorted post list.
type Page struct {
	Posts       []Post `json:"posts"`
	TotalPosts  int    `json:"totalPosts"`
	TotalPages  int    `json:"totalPages"`
	CurrentPage int    `json:"currentPage"`
	HasNextPage bool   `json:"hasNextPage"`
	HasPrevPage bool   `json:"hasPrevPage"`
}
