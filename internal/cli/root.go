// Package cli implements the docqa command-line interface.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docqa/internal/answer"
	"github.com/dgallion1/docqa/internal/config"
	"github.com/dgallion1/docqa/internal/inference"
	"github.com/dgallion1/docqa/internal/session"
)

var (
	flagMode     string
	flagMaxWords int
	flagVerbose  bool

	cfg    config.Config
	logger *slog.Logger

	// inferencer replaces the hosted inference client when set.
	inferencer answer.Inferencer
)

var rootCmd = &cobra.Command{
	Use:   "docqa",
	Short: "Ask questions about a PDF or DOCX document",
	Long: `docqa extracts the text of a PDF or DOCX document and answers
questions against it using a hosted text-generation model.

Answers are produced either by summarizing the whole document first
(--mode summarize) or by asking each word-bounded chunk (--mode chunked).`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagMode, "mode", "", "answer mode: summarize or chunked (default from ANSWER_MODE)")
	rootCmd.PersistentFlags().IntVar(&flagMaxWords, "max-words", 0, "words per chunk (default from MAX_WORDS)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log progress to stderr")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	cfg = config.Load()
	if cmd.Flags().Changed("mode") {
		cfg.AnswerMode = flagMode
	}
	if cmd.Flags().Changed("max-words") {
		if flagMaxWords <= 0 {
			return fmt.Errorf("--max-words must be positive, got %d", flagMaxWords)
		}
		cfg.MaxWords = flagMaxWords
	}
	if _, err := answer.ParseMode(cfg.AnswerMode); err != nil {
		return err
	}

	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelInfo
	}
	logger = slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

// newStrategy builds the answering strategy for the configured mode.
func newStrategy() (answer.Strategy, error) {
	inf := inferencer
	if inf == nil {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		inf = inference.NewClient(cfg.Inference())
	}
	return answer.New(cfg.Answer(), inf, logger.With("component", "answer"))
}

// openSession reads a document from disk and starts a session for it.
// showSummary requests the upload summary in summarize mode.
func openSession(cmd *cobra.Command, path string, showSummary bool) (*session.Service, *session.Session, error) {
	strategy, err := newStrategy()
	if err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read document: %w", err)
	}
	opts := cfg.Session()
	opts.SummarizeOnOpen = showSummary
	svc := session.NewService(strategy, logger.With("component", "session"), opts)
	sess, err := svc.Open(cmd.Context(), filepath.Base(path), data)
	if err != nil {
		return nil, nil, err
	}
	return svc, sess, nil
}

func printAnswer(w io.Writer, ans *answer.Answer) {
	fmt.Fprintln(w, ans.Text())
}
