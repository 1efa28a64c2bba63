// Package cli implements the scholar command-line interface. Every query
// command loads the configured dataset into a fresh in-memory store, runs
// one operation, and prints the result.
package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError carries the process exit code for an error returned by a
// command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// sysError marks err as an environment failure rather than a usage mistake.
func sysError(err error) error {
	return &exitError{code: exitSysError, err: err}
}

// exitCode maps a command error to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataset   string
	jsonMode  bool
	logLevel  string
}

// NewRootCmd creates the top-level "scholar" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:   "scholar",
		Short: "Query affiliation and publication datasets",
		Long: "Scholar loads a JSONL dataset of affiliations, publications and\n" +
			"references into an in-memory store and answers ordering, lookup\n" +
			"and reference-forest queries against it.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&flags.dataset, "dataset", "", "dataset file (default: platform data dir/dataset.jsonl)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(flags))
	root.AddCommand(newGenerateCmd(flags))
	root.AddCommand(newAffiliationsCmd(flags))
	root.AddCommand(newFindCmd(flags))
	root.AddCommand(newPublicationsCmd(flags))
	root.AddCommand(newChainCmd(flags))
	root.AddCommand(newCommonCmd(flags))
	root.AddCommand(newReferencesCmd(flags))
	root.AddCommand(newStatsCmd(flags))
	root.AddCommand(newExportCmd(flags))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}
