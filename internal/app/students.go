package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/watsonshih/nsysu-isi-ae/internal/models"
	"github.com/watsonshih/nsysu-isi-ae/internal/observability"
	"github.com/watsonshih/nsysu-isi-ae/internal/store"
)

func (a *App) CreateStudent(ctx context.Context, id, name, admissionYear string) error {
	id, name, admissionYear = strings.TrimSpace(id), strings.TrimSpace(name), strings.TrimSpace(admissionYear)
	if id == "" || name == "" || admissionYear == "" {
		return validationf("student id, name and admission year are required")
	}
	if _, ok := a.cache.Student(id); ok {
		return validationf("student id %s already exists", id)
	}
	st := models.Student{ID: id, Name: name, AdmissionYear: admissionYear, CreatedAt: a.now()}
	if err := a.store.PutStudent(ctx, st); err != nil {
		observability.CaptureErr(err)
		return err
	}
	a.cache.UpsertStudent(st)
	a.notify()
	a.log.Info("student created", zap.String("id", id))
	return nil
}

func (a *App) UpdateStudent(ctx context.Context, id, name, admissionYear string) error {
	name, admissionYear = strings.TrimSpace(name), strings.TrimSpace(admissionYear)
	if name == "" || admissionYear == "" {
		return validationf("name and admission year are required")
	}
	st, ok := a.cache.Student(id)
	if !ok {
		return validationf("student %s not found", id)
	}
	st.Name = name
	st.AdmissionYear = admissionYear
	st.UpdatedAt = a.now()
	if err := a.store.UpdateStudent(ctx, id, name, admissionYear, st.UpdatedAt); err != nil {
		observability.CaptureErr(err)
		return err
	}
	a.cache.UpsertStudent(st)
	a.notify()
	return nil
}

// DeleteStudent removes the roster entry, scrubs the id from every
// participant list, and drops the binding record when one exists. The
// primary delete must succeed before any cascade write is attempted;
// cascade failures are aggregated but do not roll back the acknowledged
// parts.
func (a *App) DeleteStudent(ctx context.Context, id string) error {
	st, ok := a.cache.Student(id)
	if !ok {
		return validationf("student %s not found", id)
	}
	if err := a.store.DeleteStudent(ctx, id); err != nil {
		observability.CaptureErr(err)
		return err
	}
	a.cache.RemoveStudent(id)

	var errs []error
	if err := a.scrubParticipants(ctx, map[string]struct{}{id: {}}); err != nil {
		errs = append(errs, err)
	}
	if st.Bound() {
		if err := a.deleteBinding(ctx, st.GoogleAccount); err != nil {
			errs = append(errs, err)
		}
	}
	a.notify()
	if len(errs) > 0 {
		err := fmt.Errorf("student %s deleted with incomplete cascade: %w", id, errors.Join(errs...))
		a.log.Error("delete student cascade", zap.String("id", id), zap.Error(err))
		observability.CaptureErr(err)
		return err
	}
	a.log.Info("student deleted", zap.String("id", id))
	return nil
}

// BulkDeleteStudents deletes the selection concurrently and then rewrites
// each affected participant list once, filtered against all the ids whose
// delete was acknowledged. Students whose delete failed keep their
// attendance; scrubbing them would break the roster they still belong to.
func (a *App) BulkDeleteStudents(ctx context.Context, ids []string) (BulkReport, error) {
	if len(ids) == 0 {
		return BulkReport{}, validationf("nothing selected")
	}
	var report BulkReport
	var tasks []writeTask
	bound := make(map[string]string) // id -> google account
	for _, id := range ids {
		st, ok := a.cache.Student(id)
		if !ok {
			report.Skipped = append(report.Skipped, id)
			continue
		}
		if st.Bound() {
			bound[id] = st.GoogleAccount
		}
		id := id
		tasks = append(tasks, writeTask{id: id, run: func(ctx context.Context) error {
			return a.store.DeleteStudent(ctx, id)
		}})
	}

	report.Succeeded, report.Failed = runBatch(ctx, tasks)
	deleted := make(map[string]struct{}, len(report.Succeeded))
	for _, id := range report.Succeeded {
		a.cache.RemoveStudent(id)
		deleted[id] = struct{}{}
	}

	if err := a.scrubParticipants(ctx, deleted); err != nil {
		report.Failed = append(report.Failed, ItemError{ID: "participants", Err: err})
	}
	for id, account := range bound {
		if _, ok := deleted[id]; !ok {
			continue
		}
		if err := a.deleteBinding(ctx, account); err != nil {
			report.Failed = append(report.Failed, ItemError{ID: id, Err: err})
		}
	}

	for _, f := range report.Failed {
		a.log.Error("bulk delete students", zap.String("item", f.ID), zap.Error(f.Err))
		observability.CaptureErr(f.Err)
	}
	a.notify()
	return report, nil
}

// scrubParticipants rewrites the participant list of every activity that
// references any of the given ids, one concurrent write per affected
// activity. Cache patches only follow acknowledged writes.
func (a *App) scrubParticipants(ctx context.Context, ids map[string]struct{}) error {
	if len(ids) == 0 {
		return nil
	}
	filtered := make(map[string][]string)
	var tasks []writeTask
	for _, act := range a.cache.Activities() {
		keep := act.Participants[:0]
		touched := false
		for _, pid := range act.Participants {
			if _, gone := ids[pid]; gone {
				touched = true
				continue
			}
			keep = append(keep, pid)
		}
		if !touched {
			continue
		}
		actID := act.ID
		filtered[actID] = append([]string{}, keep...)
		tasks = append(tasks, writeTask{id: actID, run: func(ctx context.Context) error {
			return a.store.SetParticipants(ctx, actID, filtered[actID])
		}})
	}

	succeeded, failed := runBatch(ctx, tasks)
	for _, actID := range succeeded {
		a.cache.SetParticipants(actID, filtered[actID])
	}
	if len(failed) > 0 {
		errs := make([]error, 0, len(failed))
		for _, f := range failed {
			errs = append(errs, fmt.Errorf("activity %s: %w", f.ID, f.Err))
		}
		return errors.Join(errs...)
	}
	return nil
}

func (a *App) deleteBinding(ctx context.Context, email string) error {
	key, err := store.EmailKey(email)
	if err != nil {
		// A malformed stored account should not block the delete; the
		// record it would point at cannot exist under a malformed key.
		a.log.Warn("skipping binding delete for malformed account", zap.String("email", email))
		return nil
	}
	return a.store.DeleteUser(ctx, key)
}
