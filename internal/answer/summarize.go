package answer

import (
	"context"
	"fmt"
)

// summarizeThenAnswer summarizes the full text without chunking and
// answers against the summary. Both calls are re-issued per question.
type summarizeThenAnswer struct {
	base
}

func (s *summarizeThenAnswer) Mode() Mode { return ModeSummarize }

func (s *summarizeThenAnswer) Answer(ctx context.Context, text, question string) (*Answer, error) {
	summary, err := s.Summarize(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	// A failed summary is still used as context, rendered as text.
	part, err := s.ask(ctx, 0, summary.Render(), question)
	if err != nil {
		return nil, fmt.Errorf("answer: %w", err)
	}

	return &Answer{
		Mode:    ModeSummarize,
		Summary: &summary,
		Parts:   []Part{part},
	}, nil
}
