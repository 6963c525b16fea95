package app

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/watsonshih/nsysu-isi-ae/internal/auth"
	"github.com/watsonshih/nsysu-isi-ae/internal/models"
	"github.com/watsonshih/nsysu-isi-ae/internal/observability"
	"github.com/watsonshih/nsysu-isi-ae/internal/store"
)

// Bind is the self-service flow: a logged-in identity claims a student
// number. Binding to an already-bound student is only allowed when the bound
// account is the caller's own, in which case the student write is skipped
// but the binding record is still written. That repairs a half-completed
// earlier bind.
func (a *App) Bind(ctx context.Context, p auth.Profile, studentID string) error {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return validationf("student id is required")
	}
	key, err := store.EmailKey(p.Email)
	if err != nil {
		return validationf("account %q is not usable: %v", p.Email, err)
	}
	st, ok := a.cache.Student(studentID)
	if !ok {
		return validationf("student id %s not found, check the number or contact the office", studentID)
	}
	if st.Bound() && st.GoogleAccount != p.Email {
		return validationf("student %s is already bound to another account", studentID)
	}

	if !st.Bound() {
		if err := a.store.SetStudentAccount(ctx, studentID, p.Email); err != nil {
			observability.CaptureErrCtx(ctx, err)
			return err
		}
		a.cache.SetStudentAccount(studentID, p.Email)
	}

	rec := models.UserRecord{
		Email:       p.Email,
		DisplayName: p.DisplayName,
		PhotoURL:    p.PhotoURL,
		StudentID:   studentID,
		Role:        models.RoleStudent,
		CreatedAt:   a.now(),
	}
	if err := a.store.PutUser(ctx, key, rec); err != nil {
		observability.CaptureErrCtx(ctx, err)
		return err
	}
	a.notify()
	a.log.Info("student bound", zap.String("id", studentID), zap.String("email", p.Email))
	return nil
}

// Unbind clears the account field and deletes the binding record. Neither
// side is required to be consistent beforehand, so a drifted pair can be
// repaired by unbinding.
func (a *App) Unbind(ctx context.Context, studentID string) error {
	st, ok := a.cache.Student(studentID)
	if !ok {
		return validationf("student %s not found", studentID)
	}
	if !st.Bound() {
		return validationf("student %s has no bound account", studentID)
	}
	if err := a.unbindOne(ctx, st); err != nil {
		observability.CaptureErr(err)
		return err
	}
	a.notify()
	a.log.Info("student unbound", zap.String("id", studentID))
	return nil
}

// BulkUnbind unbinds every selected student that has a bound account.
// Unbound and unknown ids are reported as skipped; a selection with no
// bound student at all is a validation error.
func (a *App) BulkUnbind(ctx context.Context, ids []string) (BulkReport, error) {
	var report BulkReport
	var targets []models.Student
	for _, id := range ids {
		st, ok := a.cache.Student(id)
		if !ok || !st.Bound() {
			report.Skipped = append(report.Skipped, id)
			continue
		}
		targets = append(targets, st)
	}
	if len(targets) == 0 {
		return BulkReport{}, validationf("no bound account in the selection")
	}

	var tasks []writeTask
	for _, st := range targets {
		st := st
		tasks = append(tasks, writeTask{id: st.ID, run: func(ctx context.Context) error {
			return a.unbindOne(ctx, st)
		}})
	}
	report.Succeeded, report.Failed = runBatch(ctx, tasks)
	for _, f := range report.Failed {
		a.log.Error("bulk unbind", zap.String("id", f.ID), zap.Error(f.Err))
		observability.CaptureErr(f.Err)
	}
	a.notify()
	return report, nil
}

// unbindOne does the two writes for one student and patches the cache after
// each acknowledgment, so a failure between them leaves a state the next
// bind or unbind can repair.
func (a *App) unbindOne(ctx context.Context, st models.Student) error {
	if err := a.store.ClearStudentAccount(ctx, st.ID); err != nil {
		return err
	}
	a.cache.SetStudentAccount(st.ID, "")
	return a.deleteBinding(ctx, st.GoogleAccount)
}
