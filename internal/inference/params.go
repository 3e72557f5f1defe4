package inference

import "fmt"

// Task selects the inference endpoint and the response key to read.
type Task string

const (
	TaskGeneration    Task = "text-generation"
	TaskSummarization Task = "summarization"
)

// Fallback answers used when a 200 response lacks the expected key.
const (
	FallbackAnswer  = "Sorry, I could not find an answer."
	FallbackSummary = "Sorry, I could not summarize the document."
)

func (t Task) responseKey() string {
	if t == TaskSummarization {
		return "summary_text"
	}
	return "generated_text"
}

func (t Task) fallback() string {
	if t == TaskSummarization {
		return FallbackSummary
	}
	return FallbackAnswer
}

// GenerationParams are the recognized generation options. MaxLength,
// MinLength and DoSample only apply to summarization.
type GenerationParams struct {
	MaxNewTokens int
	Temperature  float64
	MaxLength    int
	MinLength    int
	DoSample     bool
}

// DefaultGenerationParams mirrors the answer endpoint defaults.
func DefaultGenerationParams() GenerationParams {
	return GenerationParams{MaxNewTokens: 300, Temperature: 0.5}
}

// DefaultSummarizationParams mirrors the summary endpoint defaults.
func DefaultSummarizationParams() GenerationParams {
	return GenerationParams{MaxLength: 512, MinLength: 100, DoSample: false}
}

// Validate checks option ranges.
func (p GenerationParams) Validate() error {
	if p.Temperature < 0 || p.Temperature > 1 {
		return fmt.Errorf("temperature %v out of range [0,1]", p.Temperature)
	}
	if p.MaxNewTokens < 0 || p.MaxLength < 0 || p.MinLength < 0 {
		return fmt.Errorf("token lengths must not be negative")
	}
	if p.MaxLength > 0 && p.MinLength > p.MaxLength {
		return fmt.Errorf("min_length %d exceeds max_length %d", p.MinLength, p.MaxLength)
	}
	return nil
}

// wire returns the "parameters" object sent for a task.
func (p GenerationParams) wire(task Task) map[string]any {
	if task == TaskSummarization {
		return map[string]any{
			"max_length": p.MaxLength,
			"min_length": p.MinLength,
			"do_sample":  p.DoSample,
		}
	}
	return map[string]any{
		"max_new_tokens": p.MaxNewTokens,
		"temperature":    p.Temperature,
	}
}
