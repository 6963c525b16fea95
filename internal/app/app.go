// Package app is the mutation coordinator: every user intent becomes one
// method that validates against the cache, writes to the remote store, and
// patches the cache only after the write was acknowledged. The cache is
// never touched before an acknowledgment, so a failed write leaves the
// mirror on the last known-good state.
package app

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/watsonshih/nsysu-isi-ae/internal/cache"
	"github.com/watsonshih/nsysu-isi-ae/internal/observability"
	"github.com/watsonshih/nsysu-isi-ae/internal/store"
)

type App struct {
	store store.Client
	cache *cache.Store
	log   *zap.Logger
	now   func() time.Time

	onChange func()
}

func New(cl store.Client, c *cache.Store, log *zap.Logger) *App {
	return &App{
		store: cl,
		cache: c,
		log:   log,
		now:   time.Now,
	}
}

func (a *App) Cache() *cache.Store { return a.cache }

// SetNow overrides the clock, for tests.
func (a *App) SetNow(fn func() time.Time) { a.now = fn }

// SetOnChange registers the re-render hook. It fires once per completed
// operation, after all patches for that operation are applied.
func (a *App) SetOnChange(fn func()) { a.onChange = fn }

func (a *App) notify() {
	if a.onChange != nil {
		a.onChange()
	}
}

// Reload refreshes the whole mirror: admission years first, then students
// and activities together. When the year load fails the dependent loads are
// skipped, matching the load order the views rely on.
func (a *App) Reload(ctx context.Context) error {
	if err := a.cache.LoadAdmissionYears(ctx, a.store); err != nil {
		a.log.Error("load admission years", zap.Error(err))
		observability.CaptureErrCtx(ctx, err)
		return err
	}

	errc := make(chan error, 2)
	go func() { errc <- a.cache.LoadStudents(ctx, a.store) }()
	go func() { errc <- a.cache.LoadActivities(ctx, a.store) }()
	err := errors.Join(<-errc, <-errc)
	if err != nil {
		a.log.Error("load collections", zap.Error(err))
		observability.CaptureErrCtx(ctx, err)
		return err
	}
	a.notify()
	return nil
}
