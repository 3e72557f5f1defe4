package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docqa/internal/chunker"
	"github.com/dgallion1/docqa/internal/document"
	"github.com/dgallion1/docqa/internal/parser"
)

var extractCmd = &cobra.Command{
	Use:   "extract FILE",
	Short: "Print the extracted text of a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

var chunkCmd = &cobra.Command{
	Use:   "chunk FILE",
	Short: "Print the word-bounded chunks of a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runChunk,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(chunkCmd)
}

func extractFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	doc, err := document.New(path, data)
	if err != nil {
		return "", err
	}
	return parser.Extract(doc, cfg.Session().Parser)
}

func runExtract(cmd *cobra.Command, args []string) error {
	text, err := extractFile(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

func runChunk(cmd *cobra.Command, args []string) error {
	text, err := extractFile(args[0])
	if err != nil {
		return err
	}
	chunks := chunker.Chunk(text, cfg.MaxWords)
	if len(chunks) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No text found.")
		return nil
	}
	out := cmd.OutOrStdout()
	for _, c := range chunks {
		fmt.Fprintf(out, "[%d] %d words, ~%d tokens\n", c.Index, c.Words, chunker.EstimateTokens(c.Text))
		fmt.Fprintln(out, c.Text)
		fmt.Fprintln(out)
	}
	return nil
}
