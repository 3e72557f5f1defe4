package inference

import "fmt"

// BuildPrompt combines a context passage and a question into the
// prompt sent to the generation endpoint.
func BuildPrompt(context, question string) string {
	return fmt.Sprintf("Context: %s\nQuestion: %s\nAnswer:", context, question)
}
