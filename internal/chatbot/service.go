package chatbot

import (
	"context"
	"log"
	"strings"
)

// Exchange is one answered question.
type Exchange struct {
	SessionID string   `json:"session_id,omitempty"`
	Category  Category `json:"category"`
	Reply     string   `json:"reply"`
}

// Service answers questions and, when a Store is configured, keeps the
// transcript. Transcript failures are logged and never block a reply.
type Service struct {
	bot   *Bot
	store *Store
}

// NewService creates a Service. store may be nil.
func NewService(bot *Bot, store *Store) *Service {
	return &Service{bot: bot, store: store}
}

// Bot returns the underlying reply generator.
func (s *Service) Bot() *Bot {
	return s.bot
}

// Store returns the transcript store, or nil when transcripts are off.
func (s *Service) Store() *Store {
	return s.store
}

// Ask answers question within sessionID. With a store configured an
// empty or unknown sessionID starts a new session.
func (s *Service) Ask(ctx context.Context, sessionID string, transport Transport, question string) Exchange {
	cat, reply := s.bot.Answer(question)
	ex := Exchange{SessionID: sessionID, Category: cat, Reply: reply}
	if s.store == nil {
		return ex
	}

	sessionID = s.ensureSession(ctx, sessionID, transport)
	if sessionID == "" {
		return ex
	}
	ex.SessionID = sessionID

	if _, err := s.store.Record(ctx, sessionID, RoleVisitor, strings.TrimSpace(question), ""); err != nil {
		log.Printf("chatbot: recording question: %v", err)
		return ex
	}
	if _, err := s.store.Record(ctx, sessionID, RoleBot, reply, cat); err != nil {
		log.Printf("chatbot: recording reply: %v", err)
	}
	return ex
}

func (s *Service) ensureSession(ctx context.Context, sessionID string, transport Transport) string {
	if sessionID != "" {
		if _, err := s.store.GetSession(ctx, sessionID); err == nil {
			return sessionID
		}
	}
	sess, err := s.store.CreateSession(ctx, "", transport)
	if err != nil {
		log.Printf("chatbot: %v", err)
		return ""
	}
	return sess.ID
}
