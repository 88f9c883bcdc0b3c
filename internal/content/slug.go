package content

import "strings"

// Slug derives the URL slug of a post from its filename (or, when
// scaffolding, from its title): the .md/.mdx extension is dropped, the
// rest lower-cased, anything outside [a-z0-9-] turned into a hyphen, runs
// of hyphens collapsed and leading/trailing hyphens trimmed.
func Slug(name string) string {
	switch {
	case strings.HasSuffix(name, ".mdx"):
		name = strings.TrimSuffix(name, ".mdx")
	case strings.HasSuffix(name, ".md"):
		name = strings.TrimSuffix(name, ".md")
	}

	var b strings.Builder
	b.Grow(len(name))
	lastHyphen := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}
