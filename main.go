// Package main is the entry point for the mkpasswd CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/eykd/mkpasswd-go/cmd"
)

func main() {
	// Stop long batches on SIGINT (Ctrl+C).
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)

	err := cmd.ExecuteContext(ctx)
	cancel()
	if err != nil {
		fmt.Fprint(os.Stderr, cmd.FormatError(err))
		os.Exit(cmd.ExitCodeFromError(err))
	}
}
