package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/watsonshih/nsysu-isi-ae/internal/app"
	"github.com/watsonshih/nsysu-isi-ae/internal/cache"
	"github.com/watsonshih/nsysu-isi-ae/internal/models"
	"github.com/watsonshih/nsysu-isi-ae/internal/store"
	"github.com/watsonshih/nsysu-isi-ae/internal/testutil/fakestore"
)

var testTime = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) (*app.App, *fakestore.Store) {
	t.Helper()
	fs := fakestore.New()
	a := app.New(fs, cache.New(), zap.NewNop())
	a.SetNow(func() time.Time { return testTime })
	return a, fs
}

// reload seeds the mirror from whatever the fake holds.
func reload(t *testing.T, a *app.App) {
	t.Helper()
	if err := a.Reload(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func TestReloadSkipsDependentsWhenYearsFail(t *testing.T) {
	a, fs := newTestApp(t)
	fs.SeedStudent(models.Student{ID: "S1", Name: "Alice"})
	fs.FailReads[store.ColAdmissionYears] = errors.New("boom")

	if err := a.Reload(context.Background()); err == nil {
		t.Fatal("want error")
	}
	// Students were never loaded; the mirror stays on its previous (empty) state.
	if got := a.Cache().Students(); len(got) != 0 {
		t.Fatalf("students loaded despite failed year load: %v", got)
	}
}

func TestReloadJoinsCollectionErrors(t *testing.T) {
	a, fs := newTestApp(t)
	fs.FailReads[store.ColStudents] = errors.New("students down")
	fs.FailReads[store.ColActivities] = errors.New("activities down")

	if err := a.Reload(context.Background()); err == nil {
		t.Fatal("want error")
	}
}

func TestOnChangeFiresOncePerOperation(t *testing.T) {
	a, fs := newTestApp(t)
	fs.SeedYear("113")
	reload(t, a)

	n := 0
	a.SetOnChange(func() { n++ })
	if err := a.CreateStudent(context.Background(), "S1", "Alice", "113"); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("onChange fired %d times, want 1", n)
	}
}

func TestCreateAdmissionYear(t *testing.T) {
	a, fs := newTestApp(t)
	reload(t, a)
	ctx := context.Background()

	if err := a.CreateAdmissionYear(ctx, "113"); err != nil {
		t.Fatal(err)
	}
	if err := a.CreateAdmissionYear(ctx, "113"); !app.IsValidation(err) {
		t.Fatalf("duplicate year: got %v, want validation error", err)
	}
	if err := a.CreateAdmissionYear(ctx, "abc"); !app.IsValidation(err) {
		t.Fatalf("non-numeric year: got %v, want validation error", err)
	}
	if _, ok := fs.YearsM["113"]; !ok {
		t.Fatal("year not written to the store")
	}
	if !a.Cache().HasAdmissionYear("113") {
		t.Fatal("year not patched into the mirror")
	}
}
