package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/xgflow/cmd/commands"
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := commands.Execute(ctx); err != nil {
		// The logger may not be initialized when flag parsing or config loading fails.
		os.Stderr.WriteString("xgflow: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}
