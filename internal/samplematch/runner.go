package samplematch

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/bytedance/sonic"
	"golang.org/x/sync/errgroup"

	"github.com/okian/xgflow/internal/adapters/matchfile"
	"github.com/okian/xgflow/pkg/logger"
)

const (
	directoryPermission  = 0o750
	filePermission       = 0o600
	percentageMultiplier = 100
)

// Run executes a complete sample run against cfg.BaseURL.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	log := logger.Named("samplematch")
	stats := &Stats{StartTime: time.Now()}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(stats.StartTime.UnixNano())
	}
	log.Info(ctx, "starting sample match run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("matches", cfg.NumMatches),
		logger.Int("workers", cfg.Workers),
		logger.String("timeout", cfg.Timeout.String()),
		logger.Any("seed", seed),
	)

	client := newHTTPClient(cfg.Timeout)
	if err := checkServiceHealth(ctx, client, cfg.BaseURL); err != nil {
		return stats, err
	}

	matches := NewGenerator(seed, nil).Generate(cfg.NumMatches)
	stats.MatchesGenerated = len(matches)
	log.Info(ctx, "generated matches", logger.Int("count", len(matches)))

	if cfg.OutputDir != "" {
		if err := saveMatches(cfg.OutputDir, matches); err != nil {
			log.Warn(ctx, "failed to save match files", logger.Error(err))
		} else {
			log.Info(ctx, "match files saved", logger.String("dir", cfg.OutputDir))
		}
	}

	if err := submitMatches(ctx, cfg, client, matches, stats); err != nil {
		return stats, err
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	if stats.Failed > 0 || stats.Rejected > 0 || stats.Violations > 0 {
		return stats, fmt.Errorf("%w: %d failed, %d rejected, %d with violations",
			ErrVerification, stats.Failed, stats.Rejected, stats.Violations)
	}
	log.Info(ctx, "sample run completed successfully")
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient, baseURL string) error {
	resp, err := client.Get(ctx, baseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	_, _ = readResponseBody(resp)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	return nil
}

// submitMatches posts matches with at most cfg.Workers in flight and verifies
// each returned document.
func submitMatches(ctx context.Context, cfg *Config, client *HTTPClient, matches []matchfile.File, stats *Stats) error {
	log := logger.Named("samplematch")
	url := cfg.BaseURL + "/api/v1/timelines"

	var submitted, successful, rejected, failed, verified, violations atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Workers, 1))
	for _, m := range matches {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			submitted.Add(1)

			resp, err := client.Post(gctx, url, m)
			if err != nil {
				failed.Add(1)
				log.Warn(gctx, "submit failed", logger.String("matchID", m.MatchID), logger.Error(err))
				return nil
			}
			body, err := readResponseBody(resp)
			if err != nil {
				failed.Add(1)
				return nil
			}
			if resp.StatusCode != http.StatusOK {
				rejected.Add(1)
				log.Warn(gctx, "match rejected",
					logger.String("matchID", m.MatchID),
					logger.Int("status", resp.StatusCode),
					logger.String("body", string(body)),
				)
				return nil
			}
			successful.Add(1)

			var out timelineResponse
			if err := sonic.Unmarshal(body, &out); err != nil {
				failed.Add(1)
				return nil
			}
			if err := Verify(m, out.Document); err != nil {
				violations.Add(1)
				log.Error(gctx, "timeline violates invariants",
					logger.String("matchID", m.MatchID),
					logger.String("requestID", out.RequestID),
					logger.Error(err),
				)
				return nil
			}
			verified.Add(1)
			if cfg.Verbose {
				log.Info(gctx, "match verified",
					logger.String("label", out.Label),
					logger.Float64("homeXG", out.Home.TotalXG),
					logger.Float64("awayXG", out.Away.TotalXG),
					logger.Int("events", len(out.Events)),
				)
			}
			return nil
		})
	}
	err := g.Wait()

	stats.Submitted = int(submitted.Load())
	stats.Successful = int(successful.Load())
	stats.Rejected = int(rejected.Load())
	stats.Failed = int(failed.Load())
	stats.Verified = int(verified.Load())
	stats.Violations = int(violations.Load())
	if err != nil {
		return fmt.Errorf("submission interrupted: %w", err)
	}
	return nil
}

// saveMatches writes one match file per match into dir.
func saveMatches(dir string, matches []matchfile.File) error {
	if err := os.MkdirAll(dir, directoryPermission); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	for _, m := range matches {
		path := filepath.Join(dir, m.MatchID+".json")
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
		if err != nil {
			return fmt.Errorf("failed to create file: %w", err)
		}
		if err := matchfile.Encode(f, m); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close file: %w", err)
		}
	}
	return nil
}

func displayFinalStats(ctx context.Context, stats *Stats) {
	var successRate, matchesPerSecond float64
	if stats.Submitted > 0 {
		successRate = float64(stats.Verified) / float64(stats.Submitted) * percentageMultiplier
	}
	if stats.Duration > 0 {
		matchesPerSecond = float64(stats.Submitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("matchesGenerated", stats.MatchesGenerated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("successful", stats.Successful),
		logger.Int("rejected", stats.Rejected),
		logger.Int("failed", stats.Failed),
		logger.Int("verified", stats.Verified),
		logger.Int("violations", stats.Violations),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("matchesPerSecond", matchesPerSecond),
	)
}
