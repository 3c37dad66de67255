// Package commands implements the xgflow command line.
package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/okian/xgflow/internal/adapters/repository"
	service "github.com/okian/xgflow/internal/app"
	"github.com/okian/xgflow/internal/config"
	"github.com/okian/xgflow/internal/domain/teams"
	"github.com/okian/xgflow/pkg/logger"
)

// Version is set at build time via ldflags.
var Version = "dev"

type rootOptions struct {
	configPath string
	logLevel   string

	cfg *config.Config
}

// NewRootCmd builds the xgflow command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "xgflow",
		Short: "Reconcile per-match xG flow timelines",
		Long: `xgflow turns scraped shot and event records of a football match into
per-team cumulative xG timelines with goals, own goals and red cards
annotated at their position on the curve.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file (overrides XGFLOW_CONFIG)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(newServeCmd(opts), newAssembleCmd(opts))
	return root
}

// Execute runs the command line against ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// setup loads configuration and initializes logging into logOut.
func (o *rootOptions) setup(ctx context.Context, logOut io.Writer) error {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFile(o.configPath)
	} else {
		cfg, err = config.Load(ctx)
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(logger.WithWriter(logOut), logger.WithFile(cfg.LogFile)); err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}

	level := cfg.LogLevel
	if o.logLevel != "" {
		level = o.logLevel
	}
	if err := logger.SetLevelString(level); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", level), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	o.cfg = cfg
	return nil
}

// newService builds the service over the configured timeline store. The
// returned func releases the store's connections.
func (o *rootOptions) newService(ctx context.Context) (*service.Service, func(), error) {
	store, closeStore, err := o.newStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	svc := service.New(
		service.WithLogger(logger.Named("service")),
		service.WithStore(store),
		service.WithPalette(teams.NewPalette(
			teams.WithColors(o.cfg.TeamColors),
			teams.WithFallback(o.cfg.FallbackColor),
		)),
	)
	return svc, closeStore, nil
}

func (o *rootOptions) newStore(ctx context.Context) (repository.Store, func(), error) {
	if o.cfg.Store != config.StoreRedis {
		return repository.NewMemoryStore(repository.WithCapacity(o.cfg.StoreCapacity)), func() {}, nil
	}

	redisOpts, err := redis.ParseURL(o.cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse redis_url: %w", err)
	}
	client := redis.NewClient(redisOpts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Get().Info(ctx, "connected to redis", logger.String("addr", redisOpts.Addr))

	store := repository.NewRedisStore(client,
		repository.WithRedisCapacity(o.cfg.StoreCapacity),
		repository.WithTTL(time.Duration(o.cfg.StoreTTLSeconds)*time.Second),
	)
	return store, func() { _ = client.Close() }, nil
}
