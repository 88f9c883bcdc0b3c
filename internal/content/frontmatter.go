package content

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrNoFrontmatter is returned when a file does not start with a
// delimited metadata block.
var ErrNoFrontmatter = errors.New("no frontmatter found")

// ValidationError reports a frontmatter field that is missing or malformed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("frontmatter field %q %s", e.Field, e.Reason)
}

// dateLayouts are the date formats accepted in the date field.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
}

var formats = []*frontmatter.Format{
	frontmatter.NewFormat("---", "---", yaml.Unmarshal),
	frontmatter.NewFormat("+++", "+++", toml.Unmarshal),
}

// rawFrontmatter mirrors Frontmatter with loosely typed fields so that
// shape errors surface as ValidationErrors instead of decode failures.
type rawFrontmatter struct {
	Title         string `yaml:"title" toml:"title"`
	Date          any    `yaml:"date" toml:"date"`
	Tags          any    `yaml:"tags" toml:"tags"`
	Summary       string `yaml:"summary" toml:"summary"`
	Cover         string `yaml:"cover" toml:"cover"`
	IsHot         bool   `yaml:"isHot" toml:"isHot"`
	PortfolioLink string `yaml:"portfolioLink" toml:"portfolioLink"`
	Author        string `yaml:"author" toml:"author"`
	Published     *bool  `yaml:"published" toml:"published"`
}

// ParseFrontmatter splits a post file into its validated metadata and body.
func ParseFrontmatter(r io.Reader) (Frontmatter, string, error) {
	var raw rawFrontmatter
	body, err := frontmatter.MustParse(r, &raw, formats...)
	if err != nil {
		if errors.Is(err, frontmatter.ErrNotFound) {
			return Frontmatter{}, "", ErrNoFrontmatter
		}
		return Frontmatter{}, "", fmt.Errorf("decoding frontmatter: %w", err)
	}

	fm := Frontmatter{
		Title:         raw.Title,
		Date:          normalizeDate(raw.Date),
		Summary:       raw.Summary,
		Cover:         raw.Cover,
		IsHot:         raw.IsHot,
		PortfolioLink: raw.PortfolioLink,
		Author:        raw.Author,
		Published:     raw.Published,
	}

	tags, ok := normalizeTags(raw.Tags)
	if !ok {
		return Frontmatter{}, "", &ValidationError{Field: "tags", Reason: "must be a list"}
	}
	fm.Tags = tags

	if err := Validate(fm); err != nil {
		return Frontmatter{}, "", err
	}
	return fm, string(bytes.TrimLeft(body, "\r\n")), nil
}

// Validate checks the required fields and the date format.
func Validate(fm Frontmatter) error {
	required := []struct {
		name  string
		value string
	}{
		{"title", fm.Title},
		{"date", fm.Date},
		{"summary", fm.Summary},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.name, Reason: "is required"}
		}
	}
	if _, err := ParseDate(fm.Date); err != nil {
		return &ValidationError{Field: "date", Reason: fmt.Sprintf("has invalid format %q", fm.Date)}
	}
	if fm.Tags == nil {
		return &ValidationError{Field: "tags", Reason: "must be a list"}
	}
	return nil
}

// ParseDate parses a frontmatter date in any of the accepted layouts.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// normalizeDate turns decoded date values into YYYY-MM-DD strings; plain
// strings are kept as written.
func normalizeDate(v any) string {
	switch d := v.(type) {
	case nil:
		return ""
	case string:
		return d
	case time.Time:
		return d.Format("2006-01-02")
	case toml.LocalDate:
		return d.String()
	case toml.LocalDateTime:
		return d.LocalDate.String()
	default:
		return fmt.Sprint(d)
	}
}

// normalizeTags accepts any decoded list and stringifies its items. A
// missing value or a scalar is rejected.
func normalizeTags(v any) ([]string, bool) {
	switch t := v.(type) {
	case []string:
		return t, true
	case []any:
		tags := make([]string, 0, len(t))
		for _, item := range t {
			if s := strings.TrimSpace(fmt.Sprint(item)); s != "" {
				tags = append(tags, s)
			}
		}
		return tags, true
	default:
		return nil, false
	}
}
