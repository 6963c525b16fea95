package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/watsonshih/nsysu-isi-ae/internal/models"
	"github.com/watsonshih/nsysu-isi-ae/internal/store"
)

// RoleFor resolves a login email to its role. Unknown identities and read
// failures both come back as "new": a user we cannot place gets the binding
// screen, never an admin view.
func (a *App) RoleFor(ctx context.Context, email string) models.Role {
	key, err := store.EmailKey(email)
	if err != nil {
		a.log.Warn("role lookup for malformed email", zap.String("email", email))
		return models.RoleNew
	}
	rec, err := a.store.User(ctx, key)
	if err != nil {
		a.log.Error("role lookup", zap.String("email", email), zap.Error(err))
		return models.RoleNew
	}
	if rec == nil {
		return models.RoleNew
	}
	return rec.EffectiveRole()
}

// StudentFor returns the roster entry bound to the email, or nil when the
// identity is unbound or its studentId no longer resolves. The caller shows
// the binding screen in that case, not an error.
func (a *App) StudentFor(ctx context.Context, email string) (*models.Student, error) {
	key, err := store.EmailKey(email)
	if err != nil {
		return nil, validationf("account %q is not usable: %v", email, err)
	}
	rec, err := a.store.User(ctx, key)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.StudentID == "" {
		return nil, nil
	}
	st, ok := a.cache.Student(rec.StudentID)
	if !ok {
		a.log.Warn("binding points at missing student",
			zap.String("email", email), zap.String("studentId", rec.StudentID))
		return nil, nil
	}
	return &st, nil
}
