package ctxutil

import (
	"context"
	"time"
)

// private keys to avoid collisions
type key int

const (
	keyOpName key = iota
	keyEmail
)

// WithOp records the operation name, for logs and error reports.
func WithOp(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, keyOpName, name)
}

func Op(ctx context.Context) (string, bool) {
	v := ctx.Value(keyOpName)
	if v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// WithEmail records the acting identity, when one is signed in.
func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, keyEmail, email)
}

func Email(ctx context.Context) (string, bool) {
	v := ctx.Value(keyEmail)
	if v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// DefaultRemoteTimeout bounds a single round-trip to the document store.
var DefaultRemoteTimeout = 10 * time.Second

// WithRemoteTimeout caps the context at the standard remote timeout,
// keeping a shorter parent deadline when one exists.
func WithRemoteTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if dl, ok := parent.Deadline(); ok {
		if remain := time.Until(dl); remain < DefaultRemoteTimeout {
			return context.WithTimeout(parent, remain)
		}
	}
	return context.WithTimeout(parent, DefaultRemoteTimeout)
}
