package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/watsonshih/nsysu-isi-ae/internal/app"
	"github.com/watsonshih/nsysu-isi-ae/internal/auth"
	"github.com/watsonshih/nsysu-isi-ae/internal/models"
)

var alice = auth.Profile{Email: "alice@example.com", DisplayName: "Alice", PhotoURL: "https://img/a"}

func TestBind(t *testing.T) {
	a, fs := newTestApp(t)
	fs.SeedStudent(models.Student{ID: "S1", Name: "Alice", AdmissionYear: "113"})
	reload(t, a)

	if err := a.Bind(context.Background(), alice, "S1"); err != nil {
		t.Fatal(err)
	}
	if fs.StudentsM["S1"].GoogleAccount != "alice@example.com" {
		t.Fatal("account not written to the student")
	}
	rec, ok := fs.UsersM["alice@example,com"]
	if !ok {
		t.Fatal("binding record missing")
	}
	if rec.StudentID != "S1" || rec.Role != models.RoleStudent || rec.DisplayName != "Alice" {
		t.Fatalf("record = %+v", rec)
	}
	st, _ := a.Cache().Student("S1")
	if st.GoogleAccount != "alice@example.com" {
		t.Fatal("mirror not patched")
	}
}

func TestBindRejectsForeignAccount(t *testing.T) {
	a, fs := newTestApp(t)
	fs.SeedStudent(models.Student{ID: "S1", Name: "Alice", GoogleAccount: "other@example.com"})
	reload(t, a)

	err := a.Bind(context.Background(), alice, "S1")
	if !app.IsValidation(err) {
		t.Fatalf("got %v, want validation error", err)
	}
	if len(fs.UsersM) != 0 {
		t.Fatal("rejection must perform zero writes")
	}
	if fs.StudentsM["S1"].GoogleAccount != "other@example.com" {
		t.Fatal("student record touched")
	}
}

func TestBindRepairsOwnHalfBind(t *testing.T) {
	// Earlier bind wrote the student field but died before the user record.
	a, fs := newTestApp(t)
	fs.SeedStudent(models.Student{ID: "S1", Name: "Alice", GoogleAccount: "alice@example.com"})
	reload(t, a)

	// Make the student write fail: a repair must not need it.
	fs.FailWrites["students/S1"] = errors.New("write denied")

	if err := a.Bind(context.Background(), alice, "S1"); err != nil {
		t.Fatal(err)
	}
	if _, ok := fs.UsersM["alice@example,com"]; !ok {
		t.Fatal("repair did not write the binding record")
	}
}

func TestBindUnknownStudent(t *testing.T) {
	a, _ := newTestApp(t)
	reload(t, a)
	if err := a.Bind(context.Background(), alice, "NOPE"); !app.IsValidation(err) {
		t.Fatalf("got %v, want validation error", err)
	}
}

func TestBindMalformedEmail(t *testing.T) {
	a, _ := newTestApp(t)
	reload(t, a)
	p := auth.Profile{Email: "not-an-email"}
	if err := a.Bind(context.Background(), p, "S1"); !app.IsValidation(err) {
		t.Fatalf("got %v, want validation error", err)
	}
}

func TestUnbind(t *testing.T) {
	a, fs := newTestApp(t)
	fs.SeedStudent(models.Student{ID: "S1", Name: "Alice", GoogleAccount: "alice@example.com"})
	fs.UsersM["alice@example,com"] = models.UserRecord{Email: "alice@example.com", StudentID: "S1"}
	reload(t, a)

	if err := a.Unbind(context.Background(), "S1"); err != nil {
		t.Fatal(err)
	}
	if fs.StudentsM["S1"].GoogleAccount != "" {
		t.Fatal("account not cleared")
	}
	if _, ok := fs.UsersM["alice@example,com"]; ok {
		t.Fatal("binding record not deleted")
	}

	if err := a.Unbind(context.Background(), "S1"); !app.IsValidation(err) {
		t.Fatalf("unbinding an unbound student: got %v, want validation error", err)
	}
}

func TestBulkUnbind(t *testing.T) {
	a, fs := newTestApp(t)
	fs.SeedStudent(models.Student{ID: "S1", Name: "Alice", GoogleAccount: "alice@example.com"})
	fs.SeedStudent(models.Student{ID: "S2", Name: "Bob"})
	fs.UsersM["alice@example,com"] = models.UserRecord{Email: "alice@example.com", StudentID: "S1"}
	reload(t, a)

	r, err := a.BulkUnbind(context.Background(), []string{"S1", "S2", "GONE"})
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Succeeded) != 1 || r.Succeeded[0] != "S1" {
		t.Fatalf("succeeded = %v", r.Succeeded)
	}
	if len(r.Skipped) != 2 {
		t.Fatalf("skipped = %v", r.Skipped)
	}

	if _, err := a.BulkUnbind(context.Background(), []string{"S2"}); !app.IsValidation(err) {
		t.Fatalf("no bound target: got %v, want validation error", err)
	}
}

func TestUnbindClearFailureKeepsBindingRecord(t *testing.T) {
	a, fs := newTestApp(t)
	fs.SeedStudent(models.Student{ID: "S1", Name: "Alice", GoogleAccount: "alice@example.com"})
	fs.UsersM["alice@example,com"] = models.UserRecord{Email: "alice@example.com", StudentID: "S1"}
	fs.FailWrites["students/S1"] = errors.New("write denied")
	reload(t, a)

	if err := a.Unbind(context.Background(), "S1"); err == nil {
		t.Fatal("want error")
	}
	// Nothing was cleared; a later unbind can still repair the pair.
	if _, ok := fs.UsersM["alice@example,com"]; !ok {
		t.Fatal("binding record deleted before the account clear succeeded")
	}
	st, _ := a.Cache().Student("S1")
	if st.GoogleAccount == "" {
		t.Fatal("mirror patched before acknowledgment")
	}
}
