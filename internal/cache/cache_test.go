package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/watsonshih/nsysu-isi-ae/internal/cache"
	"github.com/watsonshih/nsysu-isi-ae/internal/models"
	"github.com/watsonshih/nsysu-isi-ae/internal/store"
	"github.com/watsonshih/nsysu-isi-ae/internal/testutil/fakestore"
)

func TestLoadReplacesCollection(t *testing.T) {
	ctx := context.Background()
	fs := fakestore.New()
	fs.SeedStudent(models.Student{ID: "S1", Name: "Alice", AdmissionYear: "113"})
	fs.SeedStudent(models.Student{ID: "S2", Name: "Bob", AdmissionYear: "113"})

	c := cache.New()
	if err := c.LoadStudents(ctx, fs); err != nil {
		t.Fatal(err)
	}
	if len(c.Students()) != 2 {
		t.Fatalf("students = %d, want 2", len(c.Students()))
	}

	// A second load does not accumulate; it replaces.
	delete(fs.StudentsM, "S2")
	if err := c.LoadStudents(ctx, fs); err != nil {
		t.Fatal(err)
	}
	if len(c.Students()) != 1 {
		t.Fatalf("students after reload = %d, want 1", len(c.Students()))
	}
}

func TestLoadFailureResetsToEmpty(t *testing.T) {
	ctx := context.Background()
	fs := fakestore.New()
	fs.SeedStudent(models.Student{ID: "S1", Name: "Alice"})

	c := cache.New()
	if err := c.LoadStudents(ctx, fs); err != nil {
		t.Fatal(err)
	}

	fs.FailReads[store.ColStudents] = errors.New("network down")
	if err := c.LoadStudents(ctx, fs); err == nil {
		t.Fatal("want error")
	}
	if got := c.Students(); len(got) != 0 {
		t.Fatalf("failed load kept stale data: %v", got)
	}
	if _, ok := c.Student("S1"); ok {
		t.Fatal("S1 still resolvable after failed load")
	}
}

func TestActivitiesSortedDateDesc(t *testing.T) {
	ctx := context.Background()
	fs := fakestore.New()
	fs.SeedActivity(models.Activity{ID: "A1", Name: "Old", Date: "2024-01-01", Visible: true})
	fs.SeedActivity(models.Activity{ID: "A2", Name: "New", Date: "2025-06-01", Visible: true})
	fs.SeedActivity(models.Activity{ID: "A3", Name: "Mid", Date: "2024-09-15", Visible: true})

	c := cache.New()
	if err := c.LoadActivities(ctx, fs); err != nil {
		t.Fatal(err)
	}
	got := c.Activities()
	want := []string{"A2", "A3", "A1"}
	for i, a := range got {
		if a.ID != want[i] {
			t.Fatalf("position %d: got %s, want %s", i, a.ID, want[i])
		}
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	c := cache.New()
	c.UpsertActivity(models.Activity{ID: "A1", Participants: []string{"S1"}})

	got, _ := c.Activity("A1")
	got.Participants[0] = "MUTATED"

	fresh, _ := c.Activity("A1")
	if fresh.Participants[0] != "S1" {
		t.Fatal("mutation through a returned copy reached the mirror")
	}
}

func TestParticipantCount(t *testing.T) {
	c := cache.New()
	c.UpsertActivity(models.Activity{ID: "A1", Participants: []string{"S1", "S2"}})
	c.UpsertActivity(models.Activity{ID: "A2", Participants: []string{"S1"}})
	c.UpsertActivity(models.Activity{ID: "A3"})

	if n := c.ParticipantCount("S1"); n != 2 {
		t.Fatalf("S1 count = %d, want 2", n)
	}
	if n := c.ParticipantCount("S2"); n != 1 {
		t.Fatalf("S2 count = %d, want 1", n)
	}
	if n := c.ParticipantCount("S9"); n != 0 {
		t.Fatalf("S9 count = %d, want 0", n)
	}
}

func TestActivitiesForSkipsHidden(t *testing.T) {
	c := cache.New()
	c.UpsertActivity(models.Activity{ID: "A1", Name: "Visible", Date: "2025-01-01", Visible: true, Participants: []string{"S1"}})
	c.UpsertActivity(models.Activity{ID: "A2", Name: "Hidden", Date: "2025-02-01", Visible: false, Participants: []string{"S1"}})
	c.UpsertActivity(models.Activity{ID: "A3", Name: "NotMine", Date: "2025-03-01", Visible: true, Participants: []string{"S2"}})
	c.UpsertActivity(models.Activity{ID: "A4", Name: "Later", Date: "2025-04-01", Visible: true, Participants: []string{"S1"}})

	got := c.ActivitiesFor("S1")
	if len(got) != 2 || got[0].ID != "A4" || got[1].ID != "A1" {
		t.Fatalf("got %+v", got)
	}
}

func TestAdmissionYearsNewestFirst(t *testing.T) {
	ctx := context.Background()
	fs := fakestore.New()
	fs.SeedYear("99")
	fs.SeedYear("113")
	fs.SeedYear("112")

	c := cache.New()
	if err := c.LoadAdmissionYears(ctx, fs); err != nil {
		t.Fatal(err)
	}
	years := c.AdmissionYears()
	want := []string{"113", "112", "99"}
	for i, y := range years {
		if y.Year != want[i] {
			t.Fatalf("position %d: got %s, want %s", i, y.Year, want[i])
		}
	}

	c.AddAdmissionYear(models.AdmissionYear{Year: "114", CreatedAt: time.Now()})
	if got := c.AdmissionYears()[0].Year; got != "114" {
		t.Fatalf("after add, first = %s, want 114", got)
	}
	if !c.HasAdmissionYear("99") || c.HasAdmissionYear("100") {
		t.Fatal("HasAdmissionYear mismatch")
	}
}

func TestActivityYears(t *testing.T) {
	c := cache.New()
	c.UpsertActivity(models.Activity{ID: "A1", Date: "2024-05-01"})
	c.UpsertActivity(models.Activity{ID: "A2", Date: "2025-01-01"})
	c.UpsertActivity(models.Activity{ID: "A3", Date: "2024-12-31"})
	c.UpsertActivity(models.Activity{ID: "A4", Date: "bad"})

	got := c.ActivityYears()
	if len(got) != 2 || got[0] != "2025" || got[1] != "2024" {
		t.Fatalf("got %v", got)
	}
}
