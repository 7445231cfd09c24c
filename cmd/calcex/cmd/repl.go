package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mathex.dev/calcex/evaluator"
	"mathex.dev/calcex/session"
)

var (
	saveOnExit  string
	loadOnStart string
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive read-eval-print loop",
	RunE:  runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().StringVar(&loadOnStart, "load", "", "load a session JSON file before starting")
	replCmd.Flags().StringVar(&saveOnExit, "save", "", "save the session to this JSON file on exit")
}

// runREPL is the cobra analogue of the teacher's (robpike.io/ivy)
// `for !run(parser, os.Stdout, true) {}` loop in ivy.go: read one line,
// evaluate it against one persistent session, print the result or
// error, repeat until EOF.
func runREPL(cmd *cobra.Command, args []string) error {
	e, err := newEvaluatorFromConfig()
	if err != nil {
		return err
	}

	if loadOnStart != "" {
		if err := loadSession(e, loadOnStart); err != nil {
			return fmt.Errorf("loading %s: %w", loadOnStart, err)
		}
	}

	if saveOnExit != "" {
		defer func() {
			if err := saveSession(e, saveOnExit); err != nil {
				fmt.Fprintf(os.Stderr, "warning: could not save session to %s: %v\n", saveOnExit, err)
			}
		}()
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	out := cmd.OutOrStdout()
	for {
		fmt.Fprint(out, cfg.Prompt)
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		result, err := e.EvaluateString(line)
		if err != nil {
			if verbose {
				fmt.Fprintf(os.Stderr, "%+v\n", err)
			} else {
				fmt.Fprintln(os.Stderr, err)
			}
			continue
		}
		fmt.Fprintln(out, result)
	}
	return nil
}

func loadSession(e *evaluator.Evaluator, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return session.Load(e.Context(), f)
}

func saveSession(e *evaluator.Evaluator, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return session.Save(e.Context(), f)
}
