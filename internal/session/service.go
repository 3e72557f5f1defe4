package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dgallion1/docqa/internal/answer"
	"github.com/dgallion1/docqa/internal/chunker"
	"github.com/dgallion1/docqa/internal/document"
	"github.com/dgallion1/docqa/internal/parser"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrEmptyQuestion   = errors.New("question is required")
)

// TooLargeError is returned for uploads above the configured limit.
type TooLargeError struct {
	Size  int64
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("file exceeds max size (%d > %d bytes)", e.Size, e.Limit)
}

// Options configures a Service.
type Options struct {
	MaxUploadBytes  int64
	TTL             time.Duration
	CleanupInterval time.Duration
	MaxWords        int
	Parser          parser.Options
	// SummarizeOnOpen produces a display summary at upload in summarize
	// mode. Callers that ask immediately and never show it leave it off.
	SummarizeOnOpen bool
}

// Service manages document sessions: upload, extraction, and questions.
type Service struct {
	store    *Store
	strategy answer.Strategy
	log      *slog.Logger
	opts     Options

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewService(strategy answer.Strategy, log *slog.Logger, opts Options) *Service {
	if opts.TTL <= 0 {
		opts.TTL = time.Hour
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = 5 * time.Minute
	}
	if opts.MaxWords <= 0 {
		opts.MaxWords = chunker.DefaultMaxWords
	}
	return &Service{
		store:    NewStore(opts.TTL),
		strategy: strategy,
		log:      log,
		opts:     opts,
	}
}

// Start launches the expired-session cleanup loop.
func (s *Service) Start(ctx context.Context) {
	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.opts.CleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ticker.C:
				if n := s.store.Cleanup(); n > 0 {
					s.log.Info("expired sessions removed", "count", n)
				}
			}
		}
	}()
}

// Stop halts background work.
func (s *Service) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

// Mode reports the configured answering mode.
func (s *Service) Mode() answer.Mode {
	return s.strategy.Mode()
}

// Open extracts the text of an uploaded document and starts a session.
// In summarize mode with SummarizeOnOpen the document is also summarized
// for display.
func (s *Service) Open(ctx context.Context, filename string, data []byte) (*Session, error) {
	if s.opts.MaxUploadBytes > 0 && int64(len(data)) > s.opts.MaxUploadBytes {
		return nil, &TooLargeError{Size: int64(len(data)), Limit: s.opts.MaxUploadBytes}
	}

	doc, err := document.New(filename, data)
	if err != nil {
		return nil, err
	}

	log := s.log.With("filename", filename, "kind", doc.Kind)
	text, err := parser.Extract(doc, s.opts.Parser)
	if err != nil {
		log.Error("extraction failed", "error", err)
		return nil, err
	}

	words := chunker.WordCount(text)
	now := time.Now()
	sess := &Session{
		ID:        newSessionID(),
		DocID:     document.ContentHashHex(data)[:16],
		Filename:  filename,
		Kind:      doc.Kind,
		Status:    StatusReady,
		Words:     words,
		Chunks:    chunker.Count(words, s.opts.MaxWords),
		CreatedAt: now,
		UpdatedAt: now,
		text:      text,
	}
	log = log.With("session_id", sess.ID, "doc_id", sess.DocID)

	if s.opts.SummarizeOnOpen && s.strategy.Mode() == answer.ModeSummarize {
		summary, err := s.strategy.Summarize(ctx, text)
		if err != nil {
			log.Error("summarize failed", "error", err)
			return nil, fmt.Errorf("summarize: %w", err)
		}
		sess.SetSummary(&summary)
	}

	s.store.Put(sess)
	log.Info("document accepted", "words", sess.Words, "chunks", sess.Chunks)
	return sess, nil
}

// Get returns a session by ID.
func (s *Service) Get(id string) (*Session, error) {
	sess := s.store.Get(id)
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Ask answers one question against a session's document. Nothing is
// cached: every call re-issues all inference requests.
func (s *Service) Ask(ctx context.Context, id, question string) (*answer.Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyQuestion
	}
	sess, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	sess.askMu.Lock()
	defer sess.askMu.Unlock()

	log := s.log.With("session_id", sess.ID, "doc_id", sess.DocID)
	sess.SetStatus(StatusAnswering)
	start := time.Now()

	ans, err := s.strategy.Answer(ctx, sess.Text(), question)
	if err != nil {
		log.Error("answer failed", "error", err)
		sess.RecordError(err.Error())
		sess.SetStatus(StatusFailed)
		return nil, err
	}

	if ans.Summary != nil {
		sess.SetSummary(ans.Summary)
	}
	sess.RecordQuestion()
	sess.SetStatus(StatusReady)
	log.Info("question answered",
		"parts", len(ans.Parts),
		"failed_parts", ans.Failed(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return ans, nil
}

// Close ends a session.
func (s *Service) Close(id string) error {
	if !s.store.Delete(id) {
		return ErrSessionNotFound
	}
	return nil
}

// Sessions returns the number of live sessions.
func (s *Service) Sessions() int {
	return s.store.Len()
}
