package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/watsonshih/nsysu-isi-ae/internal/app"
	"github.com/watsonshih/nsysu-isi-ae/internal/cache"
	"github.com/watsonshih/nsysu-isi-ae/internal/config"
	"github.com/watsonshih/nsysu-isi-ae/internal/ctxutil"
	"github.com/watsonshih/nsysu-isi-ae/internal/logging"
	"github.com/watsonshih/nsysu-isi-ae/internal/observability"
	"github.com/watsonshih/nsysu-isi-ae/internal/store"
)

const release = "ae@dev"

var rootCmd = &cobra.Command{
	Use:           "ae",
	Short:         "Activity-attendance administration for the department",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// runtime bundles everything a command needs once the store is connected.
type runtime struct {
	cfg *config.Config
	log *zap.Logger
	app *app.App
	fs  *store.Firestore

	closers []func()
}

func (r *runtime) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
}

func setup(ctx context.Context) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		return nil, err
	}
	flush, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, release)
	if err != nil {
		lg.Base.Warn("sentry init failed", zap.Error(err))
	}
	fs, err := store.Connect(ctx, cfg.ProjectID)
	if err != nil {
		flush()
		lg.Closer()
		return nil, err
	}

	r := &runtime{
		cfg: cfg,
		log: lg.Base,
		app: app.New(fs, cache.New(), lg.Base),
		fs:  fs,
	}
	r.closers = append(r.closers, lg.Closer, flush, func() { _ = fs.Close() })
	return r, nil
}

// withApp wraps a command body with setup, an initial mirror load and
// teardown. Every command gets ground truth before it validates anything.
func withApp(fn func(ctx context.Context, rt *runtime, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := ctxutil.WithOp(cmd.Context(), cmd.Name())
		rt, err := setup(ctx)
		if err != nil {
			return err
		}
		defer rt.Close()
		if err := rt.app.Reload(ctx); err != nil {
			return fmt.Errorf("load collections: %w", err)
		}
		return fn(ctx, rt, args)
	}
}

// report prints a bulk outcome the way the admin screens summarize it.
func report(cmd *cobra.Command, r app.BulkReport) {
	cmd.Printf("succeeded: %d", len(r.Succeeded))
	if len(r.Skipped) > 0 {
		cmd.Printf(", skipped: %v", r.Skipped)
	}
	cmd.Println()
	for _, f := range r.Failed {
		cmd.Printf("failed %s: %v\n", f.ID, f.Err)
	}
}
