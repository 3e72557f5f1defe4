package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize FILE",
	Short: "Summarize a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runSummarize,
}

var askCmd = &cobra.Command{
	Use:   "ask FILE QUESTION...",
	Short: "Answer one question about a document",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runAsk,
}

var chatCmd = &cobra.Command{
	Use:   "chat FILE",
	Short: "Answer questions read line by line from stdin",
	Long: `Opens a session for FILE and answers each non-empty line of stdin
as a separate question. Questions are independent; earlier answers are
not remembered. Type "exit" or "quit" to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(chatCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	text, err := extractFile(args[0])
	if err != nil {
		return err
	}
	strategy, err := newStrategy()
	if err != nil {
		return err
	}
	part, err := strategy.Summarize(cmd.Context(), text)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), part.Render())
	return nil
}

func runAsk(cmd *cobra.Command, args []string) error {
	// The question's own summary call is enough; no upload summary.
	svc, sess, err := openSession(cmd, args[0], false)
	if err != nil {
		return err
	}
	ans, err := svc.Ask(cmd.Context(), sess.ID, strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	printAnswer(cmd.OutOrStdout(), ans)
	return nil
}

func runChat(cmd *cobra.Command, args []string) error {
	svc, sess, err := openSession(cmd, args[0], true)
	if err != nil {
		return err
	}
	defer svc.Close(sess.ID)

	out := cmd.OutOrStdout()
	snap := sess.Snapshot()
	fmt.Fprintf(out, "%s: %d words, %d chunks\n", snap.Filename, snap.Words, snap.Chunks)
	if snap.Summary != "" {
		fmt.Fprintln(out, "Summary:", snap.Summary)
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			break
		}
		ans, err := svc.Ask(cmd.Context(), sess.ID, question)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
			continue
		}
		printAnswer(out, ans)
	}
	fmt.Fprintln(out)
	return scanner.Err()
}
