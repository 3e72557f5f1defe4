package answer

import (
	"context"
	"fmt"

	"github.com/dgallion1/docqa/internal/chunker"
)

// chunkedDirect asks the question once per chunk, strictly in order.
type chunkedDirect struct {
	base
}

func (c *chunkedDirect) Mode() Mode { return ModeChunked }

func (c *chunkedDirect) Answer(ctx context.Context, text, question string) (*Answer, error) {
	chunks := chunker.Chunk(text, c.cfg.MaxWords)
	c.log.Info("answering over chunks", "chunks", len(chunks), "est_tokens", chunker.EstimateTokens(text))

	ans := &Answer{
		Mode:  ModeChunked,
		Parts: make([]Part, 0, len(chunks)),
	}
	// An empty document has no chunks and issues no requests.
	for _, chunk := range chunks {
		part, err := c.ask(ctx, chunk.Index, chunk.Text, question)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", chunk.Index, err)
		}
		ans.Parts = append(ans.Parts, part)
	}
	return ans, nil
}
