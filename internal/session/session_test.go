package session

import (
	"testing"
	"time"

	"github.com/dgallion1/docqa/internal/answer"
	"github.com/dgallion1/docqa/internal/inference"
)

func TestSession_StatusTransitions(t *testing.T) {
	s := &Session{ID: "s-1", Status: StatusReady, UpdatedAt: time.Now()}

	for _, st := range []Status{StatusAnswering, StatusReady, StatusAnswering, StatusFailed} {
		before := s.UpdatedAt
		time.Sleep(time.Millisecond)
		s.SetStatus(st)
		if s.Status != st {
			t.Errorf("expected status %q, got %q", st, s.Status)
		}
		if !s.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", st)
		}
	}
}

func TestSession_RecordQuestionClearsError(t *testing.T) {
	s := &Session{ID: "s-2"}
	s.RecordError("transport down")
	if s.Snapshot().LastError != "transport down" {
		t.Fatal("expected last error to be recorded")
	}
	s.RecordQuestion()
	s.RecordQuestion()

	snap := s.Snapshot()
	if snap.Questions != 2 {
		t.Errorf("expected 2 questions, got %d", snap.Questions)
	}
	if snap.LastError != "" {
		t.Errorf("expected last error cleared, got %q", snap.LastError)
	}
}

func TestSession_SnapshotRendersSummary(t *testing.T) {
	s := &Session{ID: "s-3"}
	if s.Snapshot().Summary != "" {
		t.Error("expected no summary before one is set")
	}
	s.SetSummary(&answer.Part{Err: &inference.HTTPError{StatusCode: 503, Body: "loading"}})
	if got := s.Snapshot().Summary; got != "Error: 503, loading" {
		t.Errorf("expected rendered summary error, got %q", got)
	}
}

func TestStore_PutGetDelete(t *testing.T) {
	store := NewStore(time.Hour)
	store.Put(&Session{ID: "a", UpdatedAt: time.Now()})

	if got := store.Get("a"); got == nil || got.ID != "a" {
		t.Fatalf("expected to get session back, got %v", got)
	}
	if store.Get("missing") != nil {
		t.Error("expected nil for missing session")
	}
	if !store.Delete("a") {
		t.Error("expected delete to report existing session")
	}
	if store.Delete("a") {
		t.Error("expected second delete to report missing session")
	}
	if store.Len() != 0 {
		t.Errorf("expected empty store, got %d", store.Len())
	}
}

func TestStore_TTLCleanup(t *testing.T) {
	store := NewStore(50 * time.Millisecond)
	store.Put(&Session{ID: "old", UpdatedAt: time.Now()})

	time.Sleep(100 * time.Millisecond)
	store.Put(&Session{ID: "new", UpdatedAt: time.Now()})

	if n := store.Cleanup(); n != 1 {
		t.Errorf("expected 1 session dropped, got %d", n)
	}
	if store.Get("old") != nil {
		t.Error("expected expired session to be cleaned up")
	}
	if store.Get("new") == nil {
		t.Error("expected fresh session to survive cleanup")
	}
}

func TestStore_CleanupEmpty(t *testing.T) {
	store := NewStore(time.Hour)
	// Should not panic on empty store.
	store.Cleanup()
}
