package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"mathex.dev/calcex/evaluator"
)

var runCmd = &cobra.Command{
	Use:   "run <expression>",
	Short: "Evaluate a single expression and print its result",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpression,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runExpression(cmd *cobra.Command, args []string) error {
	e, err := newEvaluatorFromConfig()
	if err != nil {
		return err
	}
	out, err := e.EvaluateString(args[0])
	if err != nil {
		return reportEvalError(cmd, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func newEvaluatorFromConfig() (*evaluator.Evaluator, error) {
	reg, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	e := evaluator.NewEvaluatorWithRegistry(reg)
	e.SetAngleUnit(cfg.Angle())
	return e, nil
}

// reportEvalError prints the engine's kind+message on every error, and
// a full stack trace in verbose mode — the pkg/errors-backed analogue
// of go-dws's --verbose flag.
func reportEvalError(cmd *cobra.Command, err error) error {
	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "%+v\n", err)
		return errors.New("evaluation failed")
	}
	return err
}
