package session

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewSessionID_Format(t *testing.T) {
	id := newSessionID()
	parsed, err := uuid.Parse(id)
	if err != nil {
		t.Fatalf("expected a valid UUID, got %q: %v", id, err)
	}
	if parsed.Version() != 7 {
		t.Errorf("expected version 7, got %d", parsed.Version())
	}
}

func TestNewSessionID_UniqueAndOrdered(t *testing.T) {
	seen := make(map[string]bool)
	prev := ""
	for i := 0; i < 1000; i++ {
		id := newSessionID()
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
		if prev != "" && id <= prev {
			t.Fatalf("expected increasing ids, got %q after %q", id, prev)
		}
		prev = id
	}
}
