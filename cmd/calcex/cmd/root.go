package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"mathex.dev/calcex/config"
)

// Version is stamped by release tooling; it has no bearing on engine
// behavior, only on `calcex version`'s output.
var Version = "0.1.0-dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "calcex",
	Short: "A mathematical expression engine",
	Long: `calcex evaluates arithmetic, relational, logical, container, and
unit-conversion expressions over an exact-rational/double/percent/
vector/matrix value lattice.

Run a single expression with "calcex run", or start an interactive
session with "calcex repl".`,
	Version:           Version,
	PersistentPreRunE: loadConfig,
	SilenceErrors:     true,
	SilenceUsage:      true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print a stack trace alongside engine errors")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a calcex config YAML file (default ~/.calcexrc.yaml)")
}

func loadConfig(*cobra.Command, []string) error {
	path := configPath
	if path == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, ".calcexrc.yaml")
		}
	}
	if path == "" {
		cfg = config.Default()
		return nil
	}
	loaded, err := config.LoadOrDefault(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg = loaded
	cfg.ApplyRationalWindow()
	return nil
}
