// Package main is the entry point for the platup application.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/devantler-tech/platup/internal/buildmeta"
	"github.com/devantler-tech/platup/pkg/cli/cmd"
	"github.com/devantler-tech/platup/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/platup/pkg/utils/notify"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	exitCode := runSafely(os.Args[1:], func(args []string) int {
		return runWithArgs(ctx, args)
	}, os.Stderr)

	stop()

	if exitCode != exitOK {
		os.Exit(exitCode)
	}
}

//nolint:nonamedreturns // Named return simplifies panic recovery logic.
func runSafely(args []string, runner func([]string) int, errWriter io.Writer) (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			notify.Errorf(errWriter, "panic recovered: %v\n%s", r, debug.Stack())

			exitCode = exitFailure
		}
	}()

	return runner(args)
}

// runWithArgs runs platup with args. Interrupting ctx cancels recipe fetches and
// build-tool processes.
func runWithArgs(ctx context.Context, args []string) int {
	rootCmd := cmd.NewRootCmd(buildmeta.Version, buildmeta.Commit, buildmeta.Date)
	rootCmd.SetArgs(args)
	rootCmd.SetContext(ctx)

	err := cmd.Execute(rootCmd)
	if err == nil {
		return exitOK
	}

	notify.Errorf(rootCmd.ErrOrStderr(), "%v", err)

	if errorhandler.IsUsageError(err) {
		return exitUsage
	}

	return exitFailure
}
