package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the hosted inference API root.
const DefaultBaseURL = "https://api-inference.huggingface.co"

// ClientConfig configures a Client. APIKey is sent as a bearer token and
// is never logged.
type ClientConfig struct {
	APIKey       string
	BaseURL      string
	AnswerModel  string
	SummaryModel string
	HTTPClient   *http.Client

	// RequestsPerSecond throttles outbound calls; zero disables throttling.
	RequestsPerSecond float64
	Burst             int
}

// Client calls a hosted text-generation / summarization inference API.
type Client struct {
	apiKey     string
	baseURL    string
	models     map[Task]string
	httpClient *http.Client
	limiter    *rate.Limiter

	Stats *LLMStats
}

func NewClient(cfg ClientConfig) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		models: map[Task]string{
			TaskGeneration:    cfg.AnswerModel,
			TaskSummarization: cfg.SummaryModel,
		},
		httpClient: httpClient,
		limiter:    limiter,
		Stats:      NewLLMStats(time.Hour),
	}
}

type inferenceRequest struct {
	Inputs     string         `json:"inputs"`
	Parameters map[string]any `json:"parameters"`
}

// Infer sends one prompt to the model bound to task and returns its
// completion. Non-200 responses yield *HTTPError and network failures
// yield *TransportError.
func (c *Client) Infer(ctx context.Context, task Task, prompt string, params GenerationParams) (string, error) {
	model := c.models[task]
	if model == "" {
		return "", fmt.Errorf("no model configured for task %q", task)
	}

	body, err := json.Marshal(inferenceRequest{
		Inputs:     prompt,
		Parameters: params.wire(task),
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/models/"+model, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", &TransportError{Err: fmt.Errorf("rate limit wait: %w", err)}
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.Stats.Record(task, time.Since(start).Milliseconds(), true)
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	c.Stats.Record(task, time.Since(start).Milliseconds(), err != nil || resp.StatusCode != http.StatusOK)
	if err != nil {
		return "", &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}
	return decodeCompletion(task, respBody)
}

// decodeCompletion reads the task's key from the first array element.
func decodeCompletion(task Task, body []byte) (string, error) {
	var items []map[string]any
	if err := json.Unmarshal(body, &items); err != nil {
		return "", fmt.Errorf("decode response: %w (raw: %s)", err, truncate(string(body), 200))
	}
	if len(items) == 0 {
		return "", fmt.Errorf("decode response: empty result array")
	}

	v, ok := items[0][task.responseKey()]
	if !ok || v == nil {
		return task.fallback(), nil
	}
	if s, ok := v.(string); ok {
		return s, nil
	}
	return fmt.Sprint(v), nil
}

// Model returns the model bound to a task.
func (c *Client) Model(task Task) string {
	return c.models[task]
}

// Close releases resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
