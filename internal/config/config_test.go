package config

import (
	"testing"
	"time"

	"github.com/dgallion1/docqa/internal/answer"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HF_API_KEY", "")
	t.Setenv("ANSWER_MODE", "")
	t.Setenv("MAX_WORDS", "")
	t.Setenv("SESSION_TTL", "")

	cfg := Load()
	if cfg.Port != "8090" {
		t.Errorf("expected port 8090, got %q", cfg.Port)
	}
	if cfg.AnswerModel != "bigscience/bloom" || cfg.SummaryModel != "facebook/bart-large-cnn" {
		t.Errorf("unexpected models: %q, %q", cfg.AnswerModel, cfg.SummaryModel)
	}
	if cfg.MaxWords != 512 {
		t.Errorf("expected 512 max words, got %d", cfg.MaxWords)
	}
	if cfg.SessionTTL != time.Hour {
		t.Errorf("expected 1h TTL, got %v", cfg.SessionTTL)
	}
	if cfg.PDFFallbackPdftotext {
		t.Error("expected pdftotext fallback off by default")
	}
	if cfg.Answer().Mode != answer.ModeChunked {
		t.Errorf("expected chunked mode by default, got %q", cfg.Answer().Mode)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HF_API_KEY", "hf_test")
	t.Setenv("ANSWER_MODE", "summarize")
	t.Setenv("MAX_WORDS", "128")
	t.Setenv("TEMPERATURE", "0.2")
	t.Setenv("SESSION_TTL", "15m")
	t.Setenv("PDF_FALLBACK_PDFTOTEXT", "true")
	t.Setenv("HF_RATE_LIMIT", "2.5")

	cfg := Load()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ac := cfg.Answer()
	if ac.Mode != answer.ModeSummarize || ac.MaxWords != 128 {
		t.Errorf("unexpected answer config: %+v", ac)
	}
	if ac.Generation.Temperature != 0.2 || ac.Generation.MaxNewTokens != 300 {
		t.Errorf("unexpected generation params: %+v", ac.Generation)
	}
	if ac.Summarization.MaxLength != 512 || ac.Summarization.MinLength != 100 {
		t.Errorf("unexpected summarization params: %+v", ac.Summarization)
	}
	so := cfg.Session()
	if so.TTL != 15*time.Minute || !so.Parser.FallbackPdftotext || so.MaxWords != 128 {
		t.Errorf("unexpected session options: %+v", so)
	}
	ic := cfg.Inference()
	if ic.APIKey != "hf_test" {
		t.Error("expected API key passed to client config")
	}
	if ic.RequestsPerSecond != 2.5 || ic.Burst != 1 {
		t.Errorf("unexpected rate limit: %v/%d", ic.RequestsPerSecond, ic.Burst)
	}
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("MAX_WORDS", "lots")
	t.Setenv("SESSION_TTL", "-5m")
	t.Setenv("MAX_UPLOAD_BYTES", "0")

	cfg := Load()
	if cfg.MaxWords != 512 {
		t.Errorf("expected fallback max words, got %d", cfg.MaxWords)
	}
	if cfg.SessionTTL != time.Hour {
		t.Errorf("expected fallback TTL, got %v", cfg.SessionTTL)
	}
	if cfg.MaxUploadBytes != 52428800 {
		t.Errorf("expected fallback upload limit, got %d", cfg.MaxUploadBytes)
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		HFAPIKey:         "k",
		AnswerMode:       "chunked",
		MaxNewTokens:     300,
		Temperature:      0.5,
		SummaryMaxLength: 512,
		SummaryMinLength: 100,
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"missing key", func(c *Config) { c.HFAPIKey = "" }, true},
		{"bad mode", func(c *Config) { c.AnswerMode = "vibes" }, true},
		{"temperature too high", func(c *Config) { c.Temperature = 1.5 }, true},
		{"negative length", func(c *Config) { c.SummaryMaxLength = -1 }, true},
		{"negative rate limit", func(c *Config) { c.HFRateLimit = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
