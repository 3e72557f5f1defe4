package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/dgallion1/docqa/internal/answer"
	"github.com/dgallion1/docqa/internal/chunker"
	"github.com/dgallion1/docqa/internal/inference"
	"github.com/dgallion1/docqa/internal/parser"
	"github.com/dgallion1/docqa/internal/session"
)

type Config struct {
	Port string

	// Inference endpoint
	HFAPIKey     string
	HFBaseURL    string
	AnswerModel  string
	SummaryModel string
	HFRateLimit  float64
	HFRateBurst  int

	// Auth
	DocqaAPIKey string

	// Answering
	AnswerMode       string
	MaxWords         int
	MaxNewTokens     int
	Temperature      float64
	SummaryMaxLength int
	SummaryMinLength int
	SummaryDoSample  bool

	// Upload limits
	MaxUploadBytes int64

	// Session state
	SessionTTL time.Duration

	// PDF
	PDFFallbackPdftotext bool
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first; variables already set win.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port: envOr("PORT", "8090"),

		HFAPIKey:     os.Getenv("HF_API_KEY"),
		HFBaseURL:    envOr("HF_BASE_URL", inference.DefaultBaseURL),
		AnswerModel:  envOr("ANSWER_MODEL", "bigscience/bloom"),
		SummaryModel: envOr("SUMMARY_MODEL", "facebook/bart-large-cnn"),
		HFRateLimit:  envFloat("HF_RATE_LIMIT", 0),
		HFRateBurst:  envInt("HF_RATE_BURST", 1),

		DocqaAPIKey: os.Getenv("DOCQA_API_KEY"),

		AnswerMode:       envOr("ANSWER_MODE", string(answer.ModeChunked)),
		MaxWords:         envInt("MAX_WORDS", chunker.DefaultMaxWords),
		MaxNewTokens:     envInt("MAX_NEW_TOKENS", 300),
		Temperature:      envFloat("TEMPERATURE", 0.5),
		SummaryMaxLength: envInt("SUMMARY_MAX_LENGTH", 512),
		SummaryMinLength: envInt("SUMMARY_MIN_LENGTH", 100),
		SummaryDoSample:  envBool("SUMMARY_DO_SAMPLE", false),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		SessionTTL: envDuration("SESSION_TTL", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", false),
	}

	if cfg.MaxWords <= 0 {
		cfg.MaxWords = chunker.DefaultMaxWords
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.HFAPIKey == "" {
		return fmt.Errorf("HF_API_KEY is required")
	}
	if c.HFRateLimit < 0 {
		return fmt.Errorf("HF_RATE_LIMIT must not be negative")
	}
	if _, err := answer.ParseMode(c.AnswerMode); err != nil {
		return fmt.Errorf("ANSWER_MODE: %w", err)
	}
	if err := c.generation().Validate(); err != nil {
		return err
	}
	if err := c.summarization().Validate(); err != nil {
		return err
	}
	return nil
}

// Answer returns the answering configuration. Call Validate first.
func (c Config) Answer() answer.Config {
	mode, _ := answer.ParseMode(c.AnswerMode)
	return answer.Config{
		Mode:          mode,
		MaxWords:      c.MaxWords,
		Generation:    c.generation(),
		Summarization: c.summarization(),
	}
}

// Inference returns the client configuration for the inference API.
func (c Config) Inference() inference.ClientConfig {
	return inference.ClientConfig{
		APIKey:       c.HFAPIKey,
		BaseURL:      c.HFBaseURL,
		AnswerModel:  c.AnswerModel,
		SummaryModel: c.SummaryModel,

		RequestsPerSecond: c.HFRateLimit,
		Burst:             c.HFRateBurst,
	}
}

// Session returns the session service options.
func (c Config) Session() session.Options {
	return session.Options{
		MaxUploadBytes: c.MaxUploadBytes,
		TTL:            c.SessionTTL,
		MaxWords:       c.MaxWords,
		Parser:         parser.Options{FallbackPdftotext: c.PDFFallbackPdftotext},

		SummarizeOnOpen: true,
	}
}

func (c Config) generation() inference.GenerationParams {
	return inference.GenerationParams{
		MaxNewTokens: c.MaxNewTokens,
		Temperature:  c.Temperature,
	}
}

func (c Config) summarization() inference.GenerationParams {
	return inference.GenerationParams{
		MaxLength: c.SummaryMaxLength,
		MinLength: c.SummaryMinLength,
		DoSample:  c.SummaryDoSample,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
