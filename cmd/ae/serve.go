package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/watsonshih/nsysu-isi-ae/internal/app"
	"github.com/watsonshih/nsysu-isi-ae/internal/jobs"
)

// serve keeps the mirror warm: periodic full reloads, a live subscription
// on the activity collection, and /healthz + /metrics over HTTP.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the mirror daemon with health and metrics endpoints",
	RunE: withApp(func(ctx context.Context, rt *runtime, _ []string) error {
		app.StartHTTP(ctx, rt.cfg.HTTPAddr, rt.app)

		runner := jobs.New(ctx)
		runner.Every(rt.cfg.RefreshInterval, "cache_refresh", rt.app.Reload)

		snaps, err := rt.fs.WatchActivities(ctx)
		if err != nil {
			return err
		}
		rt.log.Info("serving", zap.String("addr", rt.cfg.HTTPAddr))
		for {
			select {
			case <-ctx.Done():
				return nil
			case list, ok := <-snaps:
				if !ok {
					rt.log.Warn("activity watch closed, relying on periodic refresh")
					snaps = nil
					continue
				}
				rt.app.Cache().ReplaceActivities(list)
				rt.log.Debug("activities snapshot applied", zap.Int("count", len(list)))
			}
		}
	}),
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
