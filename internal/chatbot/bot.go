// Package chatbot answers visitor questions with canned replies chosen by
// keyword matching.
package chatbot

import (
	"math/rand/v2"
	"strings"
	"sync"
	"time"
)

// Category names a group of canned replies.
type Category string

const (
	CategorySkills     Category = "skills"
	CategoryExperience Category = "experience"
	CategoryProjects   Category = "projects"
	CategoryEducation  Category = "education"
	CategoryContact    Category = "contact"
	CategoryGreeting   Category = "greeting"
	CategoryName       Category = "name"
	CategoryDefault    Category = "default"
)

// DefaultWelcome is shown when the chat opens and the profile sets none.
const DefaultWelcome = "Hi there! I'm here to tell you about my background and experience. What would you like to know?"

// FallbackReply is used when even the default category has no replies.
const FallbackReply = "I'm not sure about that one. Try asking about my skills, experience or projects!"

type rule struct {
	category Category
	keywords []string
}

// rules are checked in order; the first rule with a keyword contained in
// the lower-cased question wins.
var rules = []rule{
	{CategorySkills, []string{"skill", "technology", "tech"}},
	{CategoryExperience, []string{"experience", "work", "job"}},
	{CategoryProjects, []string{"project", "portfolio", "build"}},
	{CategoryEducation, []string{"education", "study", "university", "degree"}},
	{CategoryContact, []string{"contact", "reach", "email", "linkedin"}},
	{CategoryGreeting, []string{"hello", "hi", "hey"}},
	{CategoryName, []string{"name", "who are you", "who is"}},
}

// Classify returns the category whose keywords first match question, or
// CategoryDefault.
func Classify(question string) Category {
	q := strings.ToLower(question)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(q, kw) {
				return r.category
			}
		}
	}
	return CategoryDefault
}

// Bot picks replies from a fixed response table. It is safe for
// concurrent use.
type Bot struct {
	responses map[Category][]string
	welcome   string

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Bot over responses (category name to replies). A nil src
// seeds from the clock.
func New(responses map[string][]string, welcome string, src rand.Source) *Bot {
	if src == nil {
		now := uint64(time.Now().UnixNano())
		src = rand.NewPCG(now, now>>32|1)
	}
	if welcome == "" {
		welcome = DefaultWelcome
	}
	table := make(map[Category][]string, len(responses))
	for k, v := range responses {
		table[Category(strings.ToLower(k))] = v
	}
	return &Bot{responses: table, welcome: welcome, rng: rand.New(src)}
}

// Welcome returns the greeting shown when a conversation opens.
func (b *Bot) Welcome() string {
	return b.welcome
}

// Answer classifies question and returns the category that served the
// reply together with the reply. An empty matched category falls back to
// the default one.
func (b *Bot) Answer(question string) (Category, string) {
	cat := Classify(question)
	replies := b.responses[cat]
	if len(replies) == 0 {
		cat = CategoryDefault
		replies = b.responses[CategoryDefault]
	}
	if len(replies) == 0 {
		return CategoryDefault, FallbackReply
	}

	b.mu.Lock()
	i := b.rng.IntN(len(replies))
	b.mu.Unlock()
	return cat, replies[i]
}

// Reply returns a canned reply for question.
func (b *Bot) Reply(question string) string {
	_, reply := b.Answer(question)
	return reply
}

// Categories returns the categories that have at least one reply.
func (b *Bot) Categories() []Category {
	var out []Category
	for _, r := range rules {
		if len(b.responses[r.category]) > 0 {
			out = append(out, r.category)
		}
	}
	if len(b.responses[CategoryDefault]) > 0 {
		out = append(out, CategoryDefault)
	}
	return out
}
