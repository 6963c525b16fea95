package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/watsonshih/nsysu-isi-ae/internal/models"
	"github.com/watsonshih/nsysu-isi-ae/internal/store"
)

func TestRoleFor(t *testing.T) {
	a, fs := newTestApp(t)
	fs.UsersM["admin@example,com"] = models.UserRecord{Email: "admin@example.com", Role: models.RoleAdmin}
	fs.UsersM["alice@example,com"] = models.UserRecord{Email: "alice@example.com", StudentID: "S1", Role: models.RoleStudent}
	reload(t, a)
	ctx := context.Background()

	if got := a.RoleFor(ctx, "admin@example.com"); got != models.RoleAdmin {
		t.Fatalf("admin role = %v", got)
	}
	if got := a.RoleFor(ctx, "alice@example.com"); got != models.RoleStudent {
		t.Fatalf("student role = %v", got)
	}
	if got := a.RoleFor(ctx, "nobody@example.com"); got != models.RoleNew {
		t.Fatalf("unknown identity role = %v", got)
	}
	if got := a.RoleFor(ctx, "not-an-email"); got != models.RoleNew {
		t.Fatalf("malformed email role = %v", got)
	}

	fs.FailReads[store.ColUsers] = errors.New("read denied")
	if got := a.RoleFor(ctx, "admin@example.com"); got != models.RoleNew {
		t.Fatalf("read failure must degrade to new, got %v", got)
	}
}

func TestStudentFor(t *testing.T) {
	a, fs := newTestApp(t)
	fs.SeedStudent(models.Student{ID: "S1", Name: "Alice", AdmissionYear: "113"})
	fs.UsersM["alice@example,com"] = models.UserRecord{Email: "alice@example.com", StudentID: "S1", Role: models.RoleStudent}
	fs.UsersM["ghost@example,com"] = models.UserRecord{Email: "ghost@example.com", StudentID: "GONE", Role: models.RoleStudent}
	reload(t, a)
	ctx := context.Background()

	st, err := a.StudentFor(ctx, "alice@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if st == nil || st.ID != "S1" {
		t.Fatalf("student = %+v", st)
	}

	// Unknown identity and a binding pointing at a deleted student both
	// resolve to nil without an error.
	st, err = a.StudentFor(ctx, "nobody@example.com")
	if err != nil || st != nil {
		t.Fatalf("got %+v, %v", st, err)
	}
	st, err = a.StudentFor(ctx, "ghost@example.com")
	if err != nil || st != nil {
		t.Fatalf("got %+v, %v", st, err)
	}
}
