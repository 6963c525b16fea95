package observability

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/watsonshih/nsysu-isi-ae/internal/ctxutil"
)

// InitSentry is a no-op when no DSN is configured, so dev runs work without
// an account. The returned closer flushes buffered events.
func InitSentry(dsn, env, release string) (func(), error) {
	if dsn == "" {
		return func() {}, nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: env,
		Release:     release,
	}); err != nil {
		return func() {}, err
	}
	return func() { sentry.Flush(2 * time.Second) }, nil
}

// CaptureErr reports remote-store and cascade failures; validation errors
// never go to Sentry, they are user input.
func CaptureErr(err error) {
	if err != nil {
		sentry.CaptureException(err)
	}
}

// CaptureErrCtx additionally tags the event with the operation name and the
// acting identity when the context carries them.
func CaptureErrCtx(ctx context.Context, err error) {
	if err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		if op, ok := ctxutil.Op(ctx); ok {
			scope.SetTag("op", op)
		}
		if email, ok := ctxutil.Email(ctx); ok {
			scope.SetUser(sentry.User{Email: email})
		}
		sentry.CaptureException(err)
	})
}
