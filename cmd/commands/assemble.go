package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/okian/xgflow/internal/adapters/matchfile"
	"github.com/okian/xgflow/pkg/logger"
)

// ErrAssemble is returned when one or more match files could not be processed.
var ErrAssemble = errors.New("assemble failed")

func newAssembleCmd(opts *rootOptions) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "assemble FILE...",
		Short: "Assemble match files and print the timelines as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			// stdout carries the documents; logs go to stderr.
			if err := opts.setup(ctx, cmd.ErrOrStderr()); err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if workers <= 0 {
				workers = opts.cfg.AssembleWorkers
			}
			docs, err := assembleFiles(ctx, opts, args, workers)
			if len(docs) > 0 {
				if encErr := matchfile.Encode(cmd.OutOrStdout(), docs); encErr != nil {
					return errors.Join(err, encErr)
				}
			}
			return err
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent assemblies (default from config)")
	return cmd
}

// assembleFiles processes paths with at most workers in flight. Documents are
// returned in input order; files that fail are skipped and reported in err.
func assembleFiles(ctx context.Context, opts *rootOptions, paths []string, workers int) ([]matchfile.Document, error) {
	log := logger.Named("assemble")
	svc, closeStore, err := opts.newService(ctx)
	if err != nil {
		return nil, err
	}
	defer closeStore()

	docs := make([]*matchfile.Document, len(paths))
	errs := make([]error, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f, err := matchfile.Read(path)
			if err != nil {
				log.Error(gctx, "decode match file", logger.String("path", path), logger.Error(err))
				errs[i] = err
				return nil
			}
			doc, err := svc.Document(gctx, f)
			if err != nil {
				log.Error(gctx, "assemble match", logger.String("path", path), logger.Error(err))
				errs[i] = fmt.Errorf("%s: %w", path, err)
				return nil
			}
			docs[i] = &doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]matchfile.Document, 0, len(docs))
	for _, d := range docs {
		if d != nil {
			out = append(out, *d)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return out, fmt.Errorf("%w: %w", ErrAssemble, err)
	}
	return out, nil
}
