package app

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/watsonshih/nsysu-isi-ae/internal/models"
	"github.com/watsonshih/nsysu-isi-ae/internal/observability"
)

type ActivityInput struct {
	Name     string
	Date     string
	Location string
	Teacher  string
	Notes    string
	Visible  bool
}

func (in *ActivityInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Date = strings.TrimSpace(in.Date)
	in.Location = strings.TrimSpace(in.Location)
	in.Teacher = strings.TrimSpace(in.Teacher)
	in.Notes = strings.TrimSpace(in.Notes)
	if in.Name == "" || in.Date == "" || in.Location == "" || in.Teacher == "" {
		return validationf("name, date, location and teacher are required")
	}
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return validationf("date %q is not a calendar date (want YYYY-MM-DD)", in.Date)
	}
	return nil
}

func (a *App) CreateActivity(ctx context.Context, in ActivityInput) (models.Activity, error) {
	if err := in.validate(); err != nil {
		return models.Activity{}, err
	}
	act := models.Activity{
		Name:         in.Name,
		Date:         in.Date,
		Location:     in.Location,
		Teacher:      in.Teacher,
		Notes:        in.Notes,
		Visible:      in.Visible,
		Participants: []string{},
		CreatedAt:    a.now(),
	}
	id, err := a.store.CreateActivity(ctx, act)
	if err != nil {
		observability.CaptureErr(err)
		return models.Activity{}, err
	}
	act.ID = id
	a.cache.UpsertActivity(act)
	a.notify()
	a.log.Info("activity created", zap.String("id", id), zap.String("name", act.Name))
	return act, nil
}

func (a *App) UpdateActivity(ctx context.Context, id string, in ActivityInput) error {
	if err := in.validate(); err != nil {
		return err
	}
	act, ok := a.cache.Activity(id)
	if !ok {
		return validationf("activity %s not found", id)
	}
	act.Name = in.Name
	act.Date = in.Date
	act.Location = in.Location
	act.Teacher = in.Teacher
	act.Notes = in.Notes
	act.Visible = in.Visible
	act.UpdatedAt = a.now()

	if err := a.store.UpdateActivity(ctx, id, act); err != nil {
		observability.CaptureErr(err)
		return err
	}
	a.cache.UpsertActivity(act)
	a.notify()
	return nil
}

func (a *App) DeleteActivity(ctx context.Context, id string) error {
	if _, ok := a.cache.Activity(id); !ok {
		return validationf("activity %s not found", id)
	}
	if err := a.store.DeleteActivity(ctx, id); err != nil {
		observability.CaptureErr(err)
		return err
	}
	a.cache.RemoveActivity(id)
	a.notify()
	a.log.Info("activity deleted", zap.String("id", id))
	return nil
}

// BulkDeleteActivities deletes the selection concurrently. Activities whose
// remote delete fails stay in the cache; the report says which.
func (a *App) BulkDeleteActivities(ctx context.Context, ids []string) (BulkReport, error) {
	if len(ids) == 0 {
		return BulkReport{}, validationf("nothing selected")
	}
	var report BulkReport
	var tasks []writeTask
	for _, id := range ids {
		if _, ok := a.cache.Activity(id); !ok {
			report.Skipped = append(report.Skipped, id)
			continue
		}
		id := id
		tasks = append(tasks, writeTask{id: id, run: func(ctx context.Context) error {
			return a.store.DeleteActivity(ctx, id)
		}})
	}

	report.Succeeded, report.Failed = runBatch(ctx, tasks)
	for _, id := range report.Succeeded {
		a.cache.RemoveActivity(id)
	}
	for _, f := range report.Failed {
		a.log.Error("bulk delete activity", zap.String("id", f.ID), zap.Error(f.Err))
		observability.CaptureErr(f.Err)
	}
	a.notify()
	return report, nil
}

// BulkToggleVisibility flips each selected activity relative to its state
// when the operation started, so re-running a half-failed toggle cannot
// double-flip the ones that already succeeded.
func (a *App) BulkToggleVisibility(ctx context.Context, ids []string) (BulkReport, error) {
	if len(ids) == 0 {
		return BulkReport{}, validationf("nothing selected")
	}
	var report BulkReport
	var tasks []writeTask
	target := make(map[string]bool, len(ids))
	for _, id := range ids {
		act, ok := a.cache.Activity(id)
		if !ok {
			report.Skipped = append(report.Skipped, id)
			continue
		}
		id := id
		target[id] = !act.Visible
		tasks = append(tasks, writeTask{id: id, run: func(ctx context.Context) error {
			return a.store.SetActivityVisible(ctx, id, target[id])
		}})
	}

	report.Succeeded, report.Failed = runBatch(ctx, tasks)
	for _, id := range report.Succeeded {
		a.cache.SetActivityVisible(id, target[id])
	}
	for _, f := range report.Failed {
		a.log.Error("bulk toggle visibility", zap.String("id", f.ID), zap.Error(f.Err))
		observability.CaptureErr(f.Err)
	}
	a.notify()
	return report, nil
}
