package app_test

import (
	"context"
	"testing"

	"github.com/watsonshih/nsysu-isi-ae/internal/app"
	"github.com/watsonshih/nsysu-isi-ae/internal/models"
)

func TestAddParticipant(t *testing.T) {
	a, fs := newTestApp(t)
	fs.SeedStudent(models.Student{ID: "S1", Name: "Alice"})
	fs.SeedActivity(models.Activity{ID: "A1", Name: "One", Date: "2025-01-01"})
	reload(t, a)
	ctx := context.Background()

	if err := a.AddParticipant(ctx, "A1", "S1"); err != nil {
		t.Fatal(err)
	}
	if got := fs.ActivitiesM["A1"].Participants; len(got) != 1 || got[0] != "S1" {
		t.Fatalf("participants = %v", got)
	}

	if err := a.AddParticipant(ctx, "A1", "S1"); !app.IsValidation(err) {
		t.Fatalf("duplicate: got %v, want validation error", err)
	}
	if err := a.AddParticipant(ctx, "A1", "S9"); !app.IsValidation(err) {
		t.Fatalf("unknown student: got %v, want validation error", err)
	}
	if err := a.AddParticipant(ctx, "NOPE", "S1"); !app.IsValidation(err) {
		t.Fatalf("unknown activity: got %v, want validation error", err)
	}
}

func TestRemoveParticipant(t *testing.T) {
	a, fs := newTestApp(t)
	fs.SeedActivity(models.Activity{ID: "A1", Name: "One", Date: "2025-01-01", Participants: []string{"S1", "S2"}})
	reload(t, a)
	ctx := context.Background()

	if err := a.RemoveParticipant(ctx, "A1", "S1"); err != nil {
		t.Fatal(err)
	}
	if got := fs.ActivitiesM["A1"].Participants; len(got) != 1 || got[0] != "S2" {
		t.Fatalf("participants = %v", got)
	}
	if err := a.RemoveParticipant(ctx, "A1", "S1"); !app.IsValidation(err) {
		t.Fatalf("already removed: got %v, want validation error", err)
	}

	act, _ := a.Cache().Activity("A1")
	if len(act.Participants) != 1 {
		t.Fatalf("mirror participants = %v", act.Participants)
	}
}
