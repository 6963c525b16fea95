package app

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/watsonshih/nsysu-isi-ae/internal/importer"
	"github.com/watsonshih/nsysu-isi-ae/internal/observability"
)

// ImportReport pairs the number of records applied with the row-level
// errors. Row errors are not fatal; the import succeeds for whatever rows
// made it through.
type ImportReport struct {
	Accepted  int
	RowErrors []importer.RowError
}

// ImportStudents parses the workbook and writes one document per valid row,
// concurrently. A row whose remote write fails joins the row-error list; it
// does not undo rows that were already acknowledged.
func (a *App) ImportStudents(ctx context.Context, data []byte, admissionYear string) (ImportReport, error) {
	if admissionYear == "" {
		return ImportReport{}, validationf("select an admission year first")
	}
	if !a.cache.HasAdmissionYear(admissionYear) {
		return ImportReport{}, validationf("admission year %s does not exist", admissionYear)
	}
	parsed, err := importer.ParseStudents(data, admissionYear, a.now(), func(id string) bool {
		_, ok := a.cache.Student(id)
		return ok
	})
	if err != nil {
		return ImportReport{}, validationf("cannot read the file: %v", err)
	}
	report := ImportReport{RowErrors: parsed.Errors}

	rowOf := make(map[string]int, len(parsed.Records))
	var tasks []writeTask
	for _, rec := range parsed.Records {
		rec := rec
		rowOf[rec.Student.ID] = rec.Row
		tasks = append(tasks, writeTask{id: rec.Student.ID, run: func(ctx context.Context) error {
			return a.store.PutStudent(ctx, rec.Student)
		}})
	}
	succeeded, failed := runBatch(ctx, tasks)

	byID := make(map[string]importer.StudentRecord, len(parsed.Records))
	for _, rec := range parsed.Records {
		byID[rec.Student.ID] = rec
	}
	for _, id := range succeeded {
		a.cache.UpsertStudent(byID[id].Student)
		report.Accepted++
	}
	for _, f := range failed {
		report.RowErrors = append(report.RowErrors, importer.RowError{
			Row: rowOf[f.ID], Message: "write failed: " + f.Err.Error(),
		})
		a.log.Error("import student write", zap.String("id", f.ID), zap.Error(f.Err))
		observability.CaptureErr(f.Err)
	}
	sort.Slice(report.RowErrors, func(i, j int) bool { return report.RowErrors[i].Row < report.RowErrors[j].Row })
	a.notify()
	return report, nil
}

// ImportParticipants validates the uploaded ids against the roster and
// appends the new ones to the activity in a single list write. Re-running
// the same file is a no-op: ids already on the list are filtered out.
func (a *App) ImportParticipants(ctx context.Context, data []byte, activityID string) (ImportReport, error) {
	act, ok := a.cache.Activity(activityID)
	if !ok {
		return ImportReport{}, validationf("activity %s not found", activityID)
	}
	parsed, err := importer.ParseParticipants(data, func(id string) bool {
		_, ok := a.cache.Student(id)
		return ok
	})
	if err != nil {
		return ImportReport{}, validationf("cannot read the file: %v", err)
	}
	report := ImportReport{RowErrors: parsed.Errors}

	next := act.Participants
	for _, id := range parsed.IDs {
		if act.HasParticipant(id) {
			continue
		}
		next = append(next, id)
		report.Accepted++
	}
	if report.Accepted == 0 {
		return report, nil
	}
	if err := a.store.SetParticipants(ctx, activityID, next); err != nil {
		observability.CaptureErr(err)
		return ImportReport{RowErrors: parsed.Errors}, err
	}
	a.cache.SetParticipants(activityID, next)
	a.notify()
	a.log.Info("participants imported", zap.String("activity", activityID), zap.Int("added", report.Accepted))
	return report, nil
}
