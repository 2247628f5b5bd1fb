package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/clawaudit/clawaudit/internal/cmd"
	"github.com/clawaudit/clawaudit/internal/errors"
	"github.com/clawaudit/clawaudit/internal/exitcode"
)

func main() {
	// Create a context that listens for interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		if stderrors.Is(ctx.Err(), context.Canceled) {
			fmt.Fprintln(os.Stderr, "\nAudit interrupted")
			exitcode.Exit(exitcode.Interrupted)
		}

		// The report already shows what failed
		if errors.HasCode(err, errors.ErrCodePostureFailed) {
			exitcode.ExitWithError(err)
		}

		code := exitcode.DetermineExitCode(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "exit %d: %s\n", code, exitcode.GetExitCodeDescription(code))
		exitcode.Exit(code)
	}
	exitcode.Exit(exitcode.Success)
}
