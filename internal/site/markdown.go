package site

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// newMarkdown returns the goldmark converter used for post bodies. Raw
// HTML is passed through so posts can embed components.
func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("monokai"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
}

// renderMarkdown converts a post body to HTML and expands components.
func renderMarkdown(md goldmark.Markdown, body string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return template.HTML(expandResumeCTA(buf.String())), nil
}

var resumeCTAPattern = regexp.MustCompile(`<ResumeCTA(?:\s+variant\s*=\s*"([a-z]*)")?\s*/?>(?:\s*</ResumeCTA>)?`)

var resumeCTAVariants = map[string]bool{
	"default":   true,
	"minimal":   true,
	"prominent": true,
}

const resumeCTAIcon = `<svg width="20" height="20" fill="none" stroke="currentColor" viewBox="0 0 24 24" aria-hidden="true"><path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="M9 12h6m-6 4h6m2 5H7a2 2 0 01-2-2V5a2 2 0 012-2h5.586a1 1 0 01.707.293l5.414 5.414a1 1 0 01.293.707V19a2 2 0 01-2 2z"/></svg>`

// expandResumeCTA replaces <ResumeCTA variant="..."/> tags with a link to
// the resume page. Tags inside code blocks are already escaped by goldmark
// and are left alone. Unknown variants render as default.
func expandResumeCTA(htmlContent string) string {
	return resumeCTAPattern.ReplaceAllStringFunc(htmlContent, func(tag string) string {
		variant := "default"
		if m := resumeCTAPattern.FindStringSubmatch(tag); m[1] != "" && resumeCTAVariants[m[1]] {
			variant = m[1]
		}
		return `<a href="/resume" class="resume-cta resume-cta-` + variant + `">` + resumeCTAIcon + `<span>View Resume</span></a>`
	})
}
