package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrPostExists is returned by Create when the target file is already there.
var ErrPostExists = errors.New("post already exists")

// DefaultAuthor is written into new posts when no author is configured.
const DefaultAuthor = "Your Name"

// NewTemplate returns the frontmatter for a freshly scaffolded post.
func NewTemplate(title string, now time.Time) Frontmatter {
	published := true
	return Frontmatter{
		Title:     title,
		Date:      now.Format("2006-01-02"),
		Tags:      []string{"general"},
		Summary:   fmt.Sprintf("A new blog post about %s.", strings.ToLower(title)),
		Author:    DefaultAuthor,
		Published: &published,
	}
}

// RenderFrontmatter writes fm as a YAML block in the conventional key
// order. Optional keys are only written when set.
func RenderFrontmatter(fm Frontmatter) string {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %s\n", quote(fm.Title))
	fmt.Fprintf(&b, "date: %s\n", quote(fm.Date))

	tags := make([]string, len(fm.Tags))
	for i, t := range fm.Tags {
		tags[i] = quote(t)
	}
	fmt.Fprintf(&b, "tags: [%s]\n", strings.Join(tags, ", "))
	fmt.Fprintf(&b, "summary: %s\n", quote(fm.Summary))

	if fm.Cover != "" {
		fmt.Fprintf(&b, "cover: %s\n", quote(fm.Cover))
	}
	if fm.IsHot {
		b.WriteString("isHot: true\n")
	}
	if fm.PortfolioLink != "" {
		fmt.Fprintf(&b, "portfolioLink: %s\n", quote(fm.PortfolioLink))
	}
	if fm.Author != "" {
		fmt.Fprintf(&b, "author: %s\n", quote(fm.Author))
	}
	if fm.Published != nil {
		fmt.Fprintf(&b, "published: %t\n", *fm.Published)
	}
	b.WriteString("---\n")
	return b.String()
}

// RenderBody returns the starter markdown for a new post.
func RenderBody(title string) string {
	return "# " + title + `

Write your blog post content here.

## Introduction

Start with an engaging introduction that hooks your readers.

## Main Content

Add your main content here. You can include:

- Lists
- **Bold text**
- *Italic text*
- ` + "`Code snippets`" + `
- [Links](https://example.com)

## Code Examples

` + "```go" + `
// Example code block
func example() {
	fmt.Println("Hello, world!")
}
` + "```" + `

## Conclusion

Wrap up your post with a compelling conclusion.

<ResumeCTA variant="default" />

---

*Thanks for reading! Feel free to reach out if you have any questions.*
`
}

// Create writes a new post for fm into dir as <slug>.mdx and returns its
// path. The directory is created when missing.
func Create(dir string, fm Frontmatter) (string, error) {
	slug := Slug(fm.Title)
	if slug == "" {
		return "", &ValidationError{Field: "title", Reason: "produces an empty slug"}
	}
	path := filepath.Join(dir, slug+".mdx")

	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s: %w", path, ErrPostExists)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("checking %s: %w", path, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating posts directory: %w", err)
	}

	data := RenderFrontmatter(fm) + "\n" + RenderBody(fm.Title)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("%s: %w", path, ErrPostExists)
		}
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := f.WriteString(data); err != nil {
		f.Close()
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// quote renders s as a double-quoted YAML scalar.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`)
	return `"` + r.Replace(s) + `"`
}
