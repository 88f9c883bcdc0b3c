// Package profile holds the static biography, resume and chatbot data
// rendered by the site.
package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile is the whole profile document.
type Profile struct {
	Personal   Personal        `json:"personal" yaml:"personal"`
	Education  []Education     `json:"education" yaml:"education"`
	Experience []Experience    `json:"experience" yaml:"experience"`
	Projects   []Project       `json:"projects" yaml:"projects"`
	Skills     []SkillCategory `json:"skills" yaml:"skills"`
	Awards     []Award         `json:"awards" yaml:"awards"`
	Chatbot    Chatbot         `json:"chatbot" yaml:"chatbot"`
}

type Personal struct {
	Name         string `json:"name" yaml:"name"`
	Title        string `json:"title" yaml:"title"`
	Bio          string `json:"bio" yaml:"bio"`
	Email        string `json:"email" yaml:"email"`
	Github       string `json:"github" yaml:"github"`
	Linkedin     string `json:"linkedin" yaml:"linkedin"`
	Location     string `json:"location" yaml:"location"`
	ProfileImage string `json:"profileImage" yaml:"profileImage"`
}

type Education struct {
	ID           string   `json:"id" yaml:"id"`
	Degree       string   `json:"degree" yaml:"degree"`
	Institution  string   `json:"institution" yaml:"institution"`
	Duration     string   `json:"duration" yaml:"duration"`
	GPA          string   `json:"gpa,omitempty" yaml:"gpa,omitempty"`
	Description  string   `json:"description" yaml:"description"`
	Achievements []string `json:"achievements,omitempty" yaml:"achievements,omitempty"`
}

type Experience struct {
	ID           string   `json:"id" yaml:"id"`
	Position     string   `json:"position" yaml:"position"`
	Company      string   `json:"company" yaml:"company"`
	Duration     string   `json:"duration" yaml:"duration"`
	Location     string   `json:"location,omitempty" yaml:"location,omitempty"`
	Description  string   `json:"description" yaml:"description"`
	Achievements []string `json:"achievements,omitempty" yaml:"achievements,omitempty"`
	Technologies []string `json:"technologies,omitempty" yaml:"technologies,omitempty"`
}

type Project struct {
	ID           string   `json:"id" yaml:"id"`
	Title        string   `json:"title" yaml:"title"`
	Description  string   `json:"description" yaml:"description"`
	Image        string   `json:"image,omitempty" yaml:"image,omitempty"`
	Technologies []string `json:"technologies,omitempty" yaml:"technologies,omitempty"`
	GithubURL    string   `json:"githubUrl,omitempty" yaml:"githubUrl,omitempty"`
	LiveURL      string   `json:"liveUrl,omitempty" yaml:"liveUrl,omitempty"`
}

// Skill is a named skill with a proficiency percentage.
type Skill struct {
	Name  string `json:"name" yaml:"name"`
	Level int    `json:"level" yaml:"level"`
}

// SkillCategory groups skills under a heading. In the document the
// categories are either an object keyed by heading (order preserved) or a
// list of {"name", "skills"} entries.
type SkillCategory struct {
	Name   string  `json:"name" yaml:"name"`
	Skills []Skill `json:"skills" yaml:"skills"`
}

type Award struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Issuer      string `json:"issuer" yaml:"issuer"`
	Date        string `json:"date" yaml:"date"`
	Description string `json:"description" yaml:"description"`
}

// Chatbot holds the canned replies, keyed by category name.
type Chatbot struct {
	Welcome   string              `json:"welcome,omitempty" yaml:"welcome,omitempty"`
	Responses map[string][]string `json:"responses" yaml:"responses"`
}

// Load reads a profile from a .json, .yml or .yaml file.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}

	var p Profile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &p)
	case ".yml", ".yaml":
		err = yaml.Unmarshal(data, &p)
	default:
		return nil, fmt.Errorf("unsupported profile format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	return &p, nil
}

// SkillCount returns the number of skills across all categories.
func (p *Profile) SkillCount() int {
	n := 0
	for _, c := range p.Skills {
		n += len(c.Skills)
	}
	return n
}

type skillCategories []SkillCategory

// UnmarshalJSON implements json.Unmarshaler for the skills object or list.
func (s *skillCategories) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	switch tok {
	case nil:
		return nil
	case json.Delim('['):
		var list []SkillCategory
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("skills: %w", err)
		}
		*s = list
		return nil
	case json.Delim('{'):
	default:
		return fmt.Errorf("skills: expected object or list, got %v", tok)
	}
	var out []SkillCategory
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		var skills []Skill
		if err := dec.Decode(&skills); err != nil {
			return fmt.Errorf("skills %q: %w", key, err)
		}
		out = append(out, SkillCategory{Name: key, Skills: skills})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = out
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler for the skills mapping or list.
func (s *skillCategories) UnmarshalYAML(node *yaml.Node) error {
	switch {
	case node.Kind == yaml.ScalarNode && node.Tag == "!!null":
		return nil
	case node.Kind == yaml.SequenceNode:
		var list []SkillCategory
		if err := node.Decode(&list); err != nil {
			return fmt.Errorf("skills: %w", err)
		}
		*s = list
		return nil
	case node.Kind != yaml.MappingNode:
		return fmt.Errorf("skills: expected mapping or list at line %d", node.Line)
	}
	var out []SkillCategory
	for i := 0; i+1 < len(node.Content); i += 2 {
		var skills []Skill
		if err := node.Content[i+1].Decode(&skills); err != nil {
			return fmt.Errorf("skills %q: %w", node.Content[i].Value, err)
		}
		out = append(out, SkillCategory{Name: node.Content[i].Value, Skills: skills})
	}
	*s = out
	return nil
}

// profileDoc is Profile with the skills field routed through the
// order-preserving decoder.
type profileDoc struct {
	Personal   Personal        `json:"personal" yaml:"personal"`
	Education  []Education     `json:"education" yaml:"education"`
	Experience []Experience    `json:"experience" yaml:"experience"`
	Projects   []Project       `json:"projects" yaml:"projects"`
	Skills     skillCategories `json:"skills" yaml:"skills"`
	Awards     []Award         `json:"awards" yaml:"awards"`
	Chatbot    Chatbot         `json:"chatbot" yaml:"chatbot"`
}

func (d profileDoc) profile() Profile {
	return Profile{
		Personal:   d.Personal,
		Education:  d.Education,
		Experience: d.Experience,
		Projects:   d.Projects,
		Skills:     d.Skills,
		Awards:     d.Awards,
		Chatbot:    d.Chatbot,
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Profile) UnmarshalJSON(data []byte) error {
	var doc profileDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*p = doc.profile()
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Profile) UnmarshalYAML(node *yaml.Node) error {
	var doc profileDoc
	if err := node.Decode(&doc); err != nil {
		return err
	}
	*p = doc.profile()
	return nil
}
