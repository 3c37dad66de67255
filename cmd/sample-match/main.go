package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/xgflow/internal/samplematch"
	"github.com/okian/xgflow/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumMatches  = 200
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	cfg := &samplematch.Config{}
	var logFile string

	cmd := &cobra.Command{
		Use:   "sample-match",
		Short: "Generate synthetic matches, submit them to xgflow and verify the timelines",
		Example: `  sample-match
  sample-match --matches 1000 --workers 16 --url http://localhost:8080
  sample-match --output ./matches --seed 42 --verbose`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.Init(logger.WithFile(logFile)); err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			if cfg.Verbose {
				_ = logger.SetLevelString("debug")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), defaultTestTimeout)
			defer cancel()
			_, err := samplematch.Run(ctx, cfg)
			return err
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&cfg.BaseURL, "url", "http://localhost:9080", "base URL of the service")
	flags.IntVar(&cfg.NumMatches, "matches", defaultNumMatches, "number of matches to generate and submit")
	flags.IntVar(&cfg.Workers, "workers", runtime.NumCPU()*defaultWorkers, "number of concurrent submissions")
	flags.DurationVar(&cfg.Timeout, "timeout", defaultTimeout, "HTTP request timeout")
	flags.StringVar(&cfg.OutputDir, "output", "", "directory to write generated match files into")
	flags.Uint64Var(&cfg.Seed, "seed", 0, "generator seed (default: from the clock)")
	flags.StringVar(&logFile, "log", "", "also write logs to this file")
	flags.BoolVar(&cfg.Verbose, "verbose", false, "log every verified match")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		os.Stderr.WriteString("sample-match: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}
