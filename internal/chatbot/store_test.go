package chatbot

import (
	"context"
	"testing"

	"github.com/folio-dev/folio/internal/db"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestSessionLifecycle(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	sess, err := store.CreateSession(ctx, "", TransportHTTP)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if sess.ID == "" || sess.Visitor != "anonymous" || sess.Transport != TransportHTTP {
		t.Errorf("session = %+v", sess)
	}
	if sess.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	if _, err := store.Record(ctx, sess.ID, RoleVisitor, "hi", ""); err != nil {
		t.Fatalf("Record visitor: %v", err)
	}
	if _, err := store.Record(ctx, sess.ID, RoleBot, "Hello!", CategoryGreeting); err != nil {
		t.Fatalf("Record bot: %v", err)
	}

	msgs, err := store.Messages(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != RoleVisitor || msgs[1].Category != CategoryGreeting {
		t.Errorf("messages = %+v", msgs)
	}

	n, err := store.CountSessions(ctx)
	if err != nil || n != 1 {
		t.Errorf("CountSessions = %d, %v", n, err)
	}
}

func TestRecordUnknownSession(t *testing.T) {
	store := setupStore(t)
	if _, err := store.Record(context.Background(), "nope", RoleVisitor, "x", ""); err == nil {
		t.Error("expected foreign key error for unknown session")
	}
}

func TestCategoryCounts(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	sess, _ := store.CreateSession(ctx, "v", TransportWebSocket)

	store.Record(ctx, sess.ID, RoleBot, "a", CategorySkills)
	store.Record(ctx, sess.ID, RoleBot, "b", CategorySkills)
	store.Record(ctx, sess.ID, RoleBot, "c", CategoryDefault)
	store.Record(ctx, sess.ID, RoleVisitor, "q", "")

	counts, err := store.CategoryCounts(ctx)
	if err != nil {
		t.Fatalf("CategoryCounts: %v", err)
	}
	if counts[CategorySkills] != 2 || counts[CategoryDefault] != 1 || len(counts) != 2 {
		t.Errorf("counts = %v", counts)
	}
}

func TestRecentSessions(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := store.CreateSession(ctx, "", TransportMCP); err != nil {
			t.Fatalf("CreateSession: %v", err)
		}
	}
	sessions, err := store.RecentSessions(ctx, 2)
	if err != nil {
		t.Fatalf("RecentSessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Errorf("expected 2 sessions, got %d", len(sessions))
	}
}

func TestServiceRecordsTranscript(t *testing.T) {
	store := setupStore(t)
	svc := NewService(newTestBot(testResponses), store)
	ctx := context.Background()

	first := svc.Ask(ctx, "", TransportHTTP, "hello")
	if first.SessionID == "" {
		t.Fatal("expected a session to be created")
	}
	second := svc.Ask(ctx, first.SessionID, TransportHTTP, "what projects?")
	if second.SessionID != first.SessionID {
		t.Errorf("session changed: %q -> %q", first.SessionID, second.SessionID)
	}

	msgs, _ := store.Messages(ctx, first.SessionID)
	if len(msgs) != 4 {
		t.Errorf("expected 4 transcript lines, got %d", len(msgs))
	}

	// Unknown sessions are replaced rather than failing.
	third := svc.Ask(ctx, "missing", TransportHTTP, "hi")
	if third.SessionID == "" || third.SessionID == "missing" {
		t.Errorf("SessionID = %q", third.SessionID)
	}
}

func TestServiceWithoutStore(t *testing.T) {
	svc := NewService(newTestBot(testResponses), nil)
	ex := svc.Ask(context.Background(), "", TransportHTTP, "skills")
	if ex.SessionID != "" || ex.Category != CategorySkills {
		t.Errorf("Exchange = %+v", ex)
	}
}
