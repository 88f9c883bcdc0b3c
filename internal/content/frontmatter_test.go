package content

import (
	"errors"
	"strings"
	"testing"
)

func TestParseFrontmatterYAML(t *testing.T) {
	src := `---
title: "Building a Neural Network"
date: 2024-05-10
tags: ["ml", "go"]
summary: "From scratch."
cover: "/images/nn.png"
author: "Duc"
published: true
---

# Heading
`
	fm, body, err := ParseFrontmatter(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseFrontmatter: %v", err)
	}
	if fm.Title != "Building a Neural Network" {
		t.Errorf("Title = %q", fm.Title)
	}
	if fm.Date != "2024-05-10" {
		t.Errorf("Date = %q", fm.Date)
	}
	if len(fm.Tags) != 2 || fm.Tags[0] != "ml" {
		t.Errorf("Tags = %v", fm.Tags)
	}
	if fm.Cover != "/images/nn.png" || fm.Author != "Duc" {
		t.Errorf("optional fields = %+v", fm)
	}
	if fm.Published == nil || !*fm.Published {
		t.Errorf("Published = %v", fm.Published)
	}
	if !strings.HasPrefix(body, "# Heading") {
		t.Errorf("body = %q", body)
	}
}

func TestParseFrontmatterTOML(t *testing.T) {
	src := `+++
title = "Tom's Post"
date = 2023-11-02
tags = ["toml"]
summary = "Plus signs."
isHot = true
+++
Body text.
`
	fm, body, err := ParseFrontmatter(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseFrontmatter: %v", err)
	}
	if fm.Date != "2023-11-02" {
		t.Errorf("Date = %q", fm.Date)
	}
	if !fm.IsHot {
		t.Error("IsHot not parsed")
	}
	if !fm.IsPublished() {
		t.Error("missing published key should count as published")
	}
	if strings.TrimSpace(body) != "Body text." {
		t.Errorf("body = %q", body)
	}
}

func TestParseFrontmatterErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		field string
	}{
		{"missing title", "---\ndate: \"2024-01-01\"\ntags: []\nsummary: \"s\"\n---\n", "title"},
		{"blank summary", "---\ntitle: \"t\"\ndate: \"2024-01-01\"\ntags: []\nsummary: \"   \"\n---\n", "summary"},
		{"bad date", "---\ntitle: \"t\"\ndate: \"yesterday\"\ntags: []\nsummary: \"s\"\n---\n", "date"},
		{"scalar tags", "---\ntitle: \"t\"\ndate: \"2024-01-01\"\ntags: \"go\"\nsummary: \"s\"\n---\n", "tags"},
		{"missing tags", "---\ntitle: \"t\"\ndate: \"2024-01-01\"\nsummary: \"s\"\n---\n", "tags"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseFrontmatter(strings.NewReader(tt.src))
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tt.field {
				t.Errorf("Field = %q, want %q", ve.Field, tt.field)
			}
		})
	}
}

func TestParseFrontmatterMissing(t *testing.T) {
	_, _, err := ParseFrontmatter(strings.NewReader("# Just markdown\n"))
	if !errors.Is(err, ErrNoFrontmatter) {
		t.Errorf("expected ErrNoFrontmatter, got %v", err)
	}
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{
		"2024-01-15",
		"2024-01-15T10:30:00Z",
		"2024-01-15T10:30:00",
		"2024-01-15 10:30:00",
		"2024/01/15",
		"January 15, 2024",
		"Jan 15, 2024",
	} {
		d, err := ParseDate(s)
		if err != nil {
			t.Errorf("ParseDate(%q): %v", s, err)
			continue
		}
		if d.Year() != 2024 || d.Month() != 1 || d.Day() != 15 {
			t.Errorf("ParseDate(%q) = %v", s, d)
		}
	}
	if _, err := ParseDate("15.01.2024"); err == nil {
		t.Error("expected error for unsupported layout")
	}
}
