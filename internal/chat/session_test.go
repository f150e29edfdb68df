package chat

import (
	"testing"
	"time"
)

func TestSessionStoreCreatesAndReuses(t *testing.T) {
	store := NewSessionStore(0)

	first := store.Get("")
	if first.ID == "" {
		t.Fatal("expected a generated session id")
	}

	same := store.Get(first.ID)
	if same.ID != first.ID {
		t.Fatalf("expected the same session, got %s", same.ID)
	}

	other := store.Get("unknown-id")
	if other.ID == "unknown-id" || other.ID == first.ID {
		t.Fatalf("expected a fresh session for an unknown id, got %s", other.ID)
	}
	if store.Len() != 2 {
		t.Fatalf("expected 2 sessions, got %d", store.Len())
	}
}

func TestSessionStoreAppendAndHistory(t *testing.T) {
	store := NewSessionStore(0)
	session := store.Get("")

	store.Append(session.ID, RoleUser, "hello")
	store.Append(session.ID, RoleAssistant, "hi there")

	history := store.History(session.ID)
	if len(history) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(history))
	}
	if history[0].Role != RoleUser || history[0].Content != "hello" {
		t.Fatalf("unexpected first message: %+v", history[0])
	}
	if history[1].Role != RoleAssistant {
		t.Fatalf("unexpected second message: %+v", history[1])
	}

	// Appending to an unknown session is a no-op.
	store.Append("missing", RoleUser, "lost")
	if got := store.History("missing"); got != nil {
		t.Fatalf("expected no history, got %v", got)
	}
}

func TestSessionStoreEvictsExpired(t *testing.T) {
	store := NewSessionStore(10 * time.Minute)

	current := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	stale := store.Get("")
	current = current.Add(20 * time.Minute)
	fresh := store.Get("")

	if store.Len() != 1 {
		t.Fatalf("expected stale session to be evicted, have %d", store.Len())
	}

	replacement := store.Get(stale.ID)
	if replacement.ID == stale.ID {
		t.Fatal("expected the expired session to be gone")
	}
	if got := store.Get(fresh.ID); got.ID != fresh.ID {
		t.Fatal("expected the fresh session to survive")
	}
}

func TestSessionStoreClear(t *testing.T) {
	store := NewSessionStore(0)
	session := store.Get("")

	if !store.Clear(session.ID) {
		t.Fatal("expected clear to report an existing session")
	}
	if store.Clear(session.ID) {
		t.Fatal("expected clear to report a missing session")
	}
}
