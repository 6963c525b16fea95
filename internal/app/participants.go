package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/watsonshih/nsysu-isi-ae/internal/observability"
)

// AddParticipant appends one student to the activity's list. The whole list
// is replaced on the remote side; there is no append primitive for arrays.
func (a *App) AddParticipant(ctx context.Context, activityID, studentID string) error {
	act, ok := a.cache.Activity(activityID)
	if !ok {
		return validationf("activity %s not found", activityID)
	}
	if _, ok := a.cache.Student(studentID); !ok {
		return validationf("student id %s not found", studentID)
	}
	if act.HasParticipant(studentID) {
		return validationf("student %s is already on the list", studentID)
	}
	next := append(act.Participants, studentID)
	if err := a.store.SetParticipants(ctx, activityID, next); err != nil {
		observability.CaptureErr(err)
		return err
	}
	a.cache.SetParticipants(activityID, next)
	a.notify()
	return nil
}

func (a *App) RemoveParticipant(ctx context.Context, activityID, studentID string) error {
	act, ok := a.cache.Activity(activityID)
	if !ok {
		return validationf("activity %s not found", activityID)
	}
	if !act.HasParticipant(studentID) {
		return validationf("student %s is not on the list", studentID)
	}
	next := make([]string, 0, len(act.Participants)-1)
	for _, id := range act.Participants {
		if id != studentID {
			next = append(next, id)
		}
	}
	if err := a.store.SetParticipants(ctx, activityID, next); err != nil {
		observability.CaptureErr(err)
		return err
	}
	a.cache.SetParticipants(activityID, next)
	a.notify()
	a.log.Info("participant removed", zap.String("activity", activityID), zap.String("student", studentID))
	return nil
}
