package answer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/docqa/internal/chunker"
	"github.com/dgallion1/docqa/internal/inference"
)

// Mode selects how a question is answered against a document.
type Mode string

const (
	// ModeSummarize summarizes the whole document, then answers once
	// against the summary.
	ModeSummarize Mode = "summarize"
	// ModeChunked answers once per word-bounded chunk and joins the results.
	ModeChunked Mode = "chunked"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSummarize, ModeChunked:
		return Mode(s), nil
	case "":
		return ModeChunked, nil
	}
	return "", fmt.Errorf("unknown answer mode %q (want %q or %q)", s, ModeSummarize, ModeChunked)
}

// Inferencer is the inference capability the strategies share.
type Inferencer interface {
	Infer(ctx context.Context, task inference.Task, prompt string, params inference.GenerationParams) (string, error)
}

// Strategy answers a question against extracted document text.
type Strategy interface {
	Mode() Mode
	Answer(ctx context.Context, text, question string) (*Answer, error)
	Summarize(ctx context.Context, text string) (Part, error)
}

// Config controls answering.
type Config struct {
	Mode          Mode
	MaxWords      int
	Generation    inference.GenerationParams
	Summarization inference.GenerationParams
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Mode:          ModeChunked,
		MaxWords:      chunker.DefaultMaxWords,
		Generation:    inference.DefaultGenerationParams(),
		Summarization: inference.DefaultSummarizationParams(),
	}
}

// New returns the strategy selected by cfg.Mode.
func New(cfg Config, inf Inferencer, log *slog.Logger) (Strategy, error) {
	if err := cfg.Generation.Validate(); err != nil {
		return nil, fmt.Errorf("generation params: %w", err)
	}
	if err := cfg.Summarization.Validate(); err != nil {
		return nil, fmt.Errorf("summarization params: %w", err)
	}
	if cfg.MaxWords <= 0 {
		cfg.MaxWords = chunker.DefaultMaxWords
	}
	if log == nil {
		log = slog.Default()
	}

	b := base{inf: inf, cfg: cfg}
	switch cfg.Mode {
	case ModeSummarize:
		b.log = log.With("mode", ModeSummarize)
		return &summarizeThenAnswer{base: b}, nil
	case ModeChunked, "":
		b.log = log.With("mode", ModeChunked)
		return &chunkedDirect{base: b}, nil
	default:
		return nil, fmt.Errorf("unknown answer mode %q", cfg.Mode)
	}
}

// base holds what both strategies share.
type base struct {
	inf Inferencer
	cfg Config
	log *slog.Logger
}

// call runs one inference and folds HTTP-level failures into the part.
// Any other error aborts the question.
func (b *base) call(ctx context.Context, index int, task inference.Task, prompt string, params inference.GenerationParams) (Part, error) {
	start := time.Now()
	out, err := b.inf.Infer(ctx, task, prompt, params)
	log := b.log.With("task", task, "index", index, "duration_ms", time.Since(start).Milliseconds())

	var httpErr *inference.HTTPError
	switch {
	case err == nil:
		log.Debug("inference ok")
		return Part{Index: index, Text: out}, nil
	case errors.As(err, &httpErr):
		log.Warn("inference http error", "status", httpErr.StatusCode)
		return Part{Index: index, Err: httpErr}, nil
	default:
		log.Error("inference failed", "error", err)
		return Part{}, err
	}
}

func (b *base) ask(ctx context.Context, index int, passage, question string) (Part, error) {
	return b.call(ctx, index, inference.TaskGeneration, inference.BuildPrompt(passage, question), b.cfg.Generation)
}

// Summarize runs one summarization call over the full text.
func (b *base) Summarize(ctx context.Context, text string) (Part, error) {
	return b.call(ctx, 0, inference.TaskSummarization, text, b.cfg.Summarization)
}
