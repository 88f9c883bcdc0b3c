package chatbot

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/folio-dev/folio/internal/db"
)

// Transport identifies how a conversation reached the bot.
type Transport string

const (
	TransportHTTP      Transport = "http"
	TransportWebSocket Transport = "websocket"
	TransportMCP       Transport = "mcp"
)

// Role is the author of a transcript message.
type Role string

const (
	RoleVisitor Role = "visitor"
	RoleBot     Role = "bot"
)

// Session is one conversation.
type Session struct {
	ID        string    `json:"id"`
	Visitor   string    `json:"visitor"`
	Transport Transport `json:"transport"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message is one line of a transcript.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Category  Category  `json:"category,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists chat transcripts.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// CreateSession starts a new conversation.
func (s *Store) CreateSession(ctx context.Context, visitor string, transport Transport) (*Session, error) {
	if visitor == "" {
		visitor = "anonymous"
	}
	sess := &Session{
		ID:        uuid.New().String(),
		Visitor:   visitor,
		Transport: transport,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_sessions (id, visitor, transport) VALUES (?, ?, ?)`,
		sess.ID, sess.Visitor, string(sess.Transport),
	)
	if err != nil {
		return nil, fmt.Errorf("creating chat session: %w", err)
	}
	return s.GetSession(ctx, sess.ID)
}

// GetSession retrieves a session by ID.
func (s *Store) GetSession(ctx context.Context, id string) (*Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, visitor, transport, created_at, updated_at FROM chat_sessions WHERE id = ?`, id)
	sess, err := scanSession(row)
	if err != nil {
		return nil, fmt.Errorf("getting chat session %s: %w", id, err)
	}
	return sess, nil
}

// RecentSessions returns the most recently active sessions.
func (s *Store) RecentSessions(ctx context.Context, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, visitor, transport, created_at, updated_at
		FROM chat_sessions ORDER BY updated_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying chat sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *sess)
	}
	return sessions, rows.Err()
}

// Record appends a message to a session and bumps its updated_at.
func (s *Store) Record(ctx context.Context, sessionID string, role Role, content string, category Category) (*Message, error) {
	msg := &Message{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		Category:  category,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO chat_messages (id, session_id, role, content, category) VALUES (?, ?, ?, ?, ?)`,
		msg.ID, msg.SessionID, string(msg.Role), msg.Content, string(msg.Category),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting chat message: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE chat_sessions SET updated_at = datetime('now') WHERE id = ?`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("touching chat session: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing chat message: %w", err)
	}
	return msg, nil
}

// Messages returns the transcript of a session, oldest first.
func (s *Store) Messages(ctx context.Context, sessionID string) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, role, content, category, created_at
		FROM chat_messages WHERE session_id = ?
		ORDER BY created_at ASC, rowid ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying chat messages: %w", err)
	}
	defer rows.Close()

	var msgs []Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, *m)
	}
	return msgs, rows.Err()
}

// CountSessions returns the number of stored conversations.
func (s *Store) CountSessions(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chat_sessions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting chat sessions: %w", err)
	}
	return n, nil
}

// CategoryCounts returns how often each category answered a visitor.
func (s *Store) CategoryCounts(ctx context.Context) (map[Category]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, COUNT(*) FROM chat_messages
		WHERE role = 'bot' AND category != ''
		GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("counting categories: %w", err)
	}
	defer rows.Close()

	counts := make(map[Category]int)
	for rows.Next() {
		var (
			cat string
			n   int
		)
		if err := rows.Scan(&cat, &n); err != nil {
			return nil, err
		}
		counts[Category(cat)] = n
	}
	return counts, rows.Err()
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSession(sc scanner) (*Session, error) {
	var (
		sess                 Session
		transport            string
		createdAt, updatedAt string
	)
	if err := sc.Scan(&sess.ID, &sess.Visitor, &transport, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	sess.Transport = Transport(transport)
	sess.CreatedAt = parseTime(createdAt)
	sess.UpdatedAt = parseTime(updatedAt)
	return &sess, nil
}

func scanMessage(sc scanner) (*Message, error) {
	var (
		m                         Message
		role, category, createdAt string
	)
	if err := sc.Scan(&m.ID, &m.SessionID, &role, &m.Content, &category, &createdAt); err != nil {
		return nil, err
	}
	m.Role = Role(role)
	m.Category = Category(category)
	m.CreatedAt = parseTime(createdAt)
	return &m, nil
}

func parseTime(s string) time.Time {
	if t, err := time.Parse(time.DateTime, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}
