package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cvsmeta/wsync/pkg/logging"
	"github.com/cvsmeta/wsync/pkg/wsync"
)

// Warning prints a warning message to standard error.
func Warning(message string) {
	fmt.Fprintln(color.Error, color.YellowString("Warning:"), message)
}

// Error prints an error message to standard error.
func Error(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
}

// Fatal prints an error message to standard error and terminates the
// process with an error exit code.
func Fatal(err error) {
	Error(err)
	os.Exit(1)
}

// Mainify wraps a Cobra entry point that returns an error into one that
// calls Fatal, so entry points can rely on defer-based cleanup instead of
// calling os.Exit directly.
func Mainify(entry func(*cobra.Command, []string) error) func(*cobra.Command, []string) {
	return func(command *cobra.Command, arguments []string) {
		if err := entry(command, arguments); err != nil {
			Fatal(err)
		}
	}
}

// rootLogger is the process-wide logger. It is created at package
// initialization at LevelInfo; no flag changes its level.
var rootLogger = logging.NewLogger(logging.LevelInfo)

// openSynchronizer resolves root (defaulting to the current directory) and
// opens a Synchronizer on it.
func openSynchronizer(root string) (*wsync.Synchronizer, error) {
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("unable to determine working directory: %w", err)
		}
		root = cwd
	}
	return wsync.NewSynchronizer(root, rootLogger.Sublogger("wsync"))
}
