package session

import (
	"sync"
	"time"

	"github.com/dgallion1/docqa/internal/answer"
	"github.com/dgallion1/docqa/internal/document"
)

// Status represents the state of a session.
type Status string

const (
	StatusReady     Status = "ready"
	StatusAnswering Status = "answering"
	StatusFailed    Status = "failed"
)

// Session holds one uploaded document and answers questions about it.
// Questions are not remembered between asks.
type Session struct {
	mu sync.Mutex
	// askMu serializes questions so one runs at a time per session.
	askMu sync.Mutex

	ID       string
	DocID    string
	Filename string
	Kind     document.Kind

	Status    Status
	Words     int
	Chunks    int
	Questions int
	LastError string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Internal: not serialized.
	text    string
	summary *answer.Part
}

// SetStatus updates status atomically.
func (s *Session) SetStatus(status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Status = status
	s.UpdatedAt = time.Now()
}

// RecordQuestion counts an answered question.
func (s *Session) RecordQuestion() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Questions++
	s.LastError = ""
	s.UpdatedAt = time.Now()
}

// RecordError keeps the last failure for status reporting.
func (s *Session) RecordError(err string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastError = err
	s.UpdatedAt = time.Now()
}

// Text returns the extracted document text.
func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// SetSummary stores the latest summary, from upload or from the last
// answered question.
func (s *Session) SetSummary(p *answer.Part) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = p
	s.UpdatedAt = time.Now()
}

// Snapshot is a read-only, JSON-safe copy of session state.
type Snapshot struct {
	ID        string        `json:"session_id"`
	DocID     string        `json:"doc_id"`
	Filename  string        `json:"filename"`
	Kind      document.Kind `json:"kind"`
	Status    Status        `json:"status"`
	Words     int           `json:"words"`
	Chunks    int           `json:"chunks"`
	Questions int           `json:"questions"`
	Summary   string        `json:"summary,omitempty"`
	LastError string        `json:"last_error,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		ID:        s.ID,
		DocID:     s.DocID,
		Filename:  s.Filename,
		Kind:      s.Kind,
		Status:    s.Status,
		Words:     s.Words,
		Chunks:    s.Chunks,
		Questions: s.Questions,
		LastError: s.LastError,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if s.summary != nil {
		snap.Summary = s.summary.Render()
	}
	return snap
}

// Store is a thread-safe in-memory session registry with TTL eviction.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

func (st *Store) Put(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
}

func (st *Store) Get(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.sessions[id]
}

// Delete removes a session and reports whether it existed.
func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	_, ok := st.sessions[id]
	delete(st.sessions, id)
	return ok
}

func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Cleanup removes expired sessions and returns how many were dropped.
func (st *Store) Cleanup() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	now := time.Now()
	dropped := 0
	for id, s := range st.sessions {
		s.mu.Lock()
		expired := now.Sub(s.UpdatedAt) > st.ttl
		s.mu.Unlock()
		if expired {
			delete(st.sessions, id)
			dropped++
		}
	}
	return dropped
}
