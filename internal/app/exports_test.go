package app_test

import (
	"testing"

	"github.com/watsonshih/nsysu-isi-ae/internal/app"
	"github.com/watsonshih/nsysu-isi-ae/internal/models"
)

func TestExportStudents(t *testing.T) {
	a, fs := newTestApp(t)
	fs.SeedStudent(models.Student{ID: "S1", Name: "Alice", AdmissionYear: "113"})
	fs.SeedActivity(models.Activity{ID: "A1", Name: "One", Date: "2025-01-01", Participants: []string{"S1"}})
	reload(t, a)

	f, name, err := a.ExportStudents("113")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()
	if name != "113 學年度學生總表_20250615.xlsx" {
		t.Fatalf("filename = %q", name)
	}
	v, err := f.GetCellValue("113 學年度學生總表", "A2")
	if err != nil {
		t.Fatal(err)
	}
	if v != "Alice" {
		t.Fatalf("A2 = %q", v)
	}
}

func TestExportStudentsValidation(t *testing.T) {
	a, fs := newTestApp(t)
	fs.SeedStudent(models.Student{ID: "S1", Name: "Alice", AdmissionYear: "113"})
	reload(t, a)

	if _, _, err := a.ExportStudents(""); !app.IsValidation(err) {
		t.Fatalf("empty year: got %v, want validation error", err)
	}
	if _, _, err := a.ExportStudents("999"); !app.IsValidation(err) {
		t.Fatalf("empty cohort: got %v, want validation error", err)
	}
}
