package export

import (
	"testing"
	"time"

	"github.com/watsonshih/nsysu-isi-ae/internal/models"
)

func TestStudentsSummary(t *testing.T) {
	students := []models.Student{
		{ID: "S1", Name: "Alice", AdmissionYear: "113", GoogleAccount: "alice@example.com"},
		{ID: "S2", Name: "Bob", AdmissionYear: "113"},
		{ID: "S3", Name: "Carol", AdmissionYear: "112"}, // other cohort, excluded
	}
	activities := []models.Activity{
		{ID: "A1", Name: "Workshop", Participants: []string{"S1", "S2"}},
		{ID: "A2", Name: "Seminar", Participants: []string{"S1"}},
	}
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	f, name, err := StudentsSummary(students, activities, "113", now)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	if name != "113 學年度學生總表_20250615.xlsx" {
		t.Fatalf("filename = %q", name)
	}

	sheet := "113 學年度學生總表"
	get := func(cell string) string {
		v, err := f.GetCellValue(sheet, cell)
		if err != nil {
			t.Fatalf("cell %s: %v", cell, err)
		}
		return v
	}

	if got := get("A1"); got != "姓名" {
		t.Fatalf("A1 = %q", got)
	}
	if got := get("E1"); got != "已參與活動" {
		t.Fatalf("E1 = %q", got)
	}

	// Row 2: Alice with two activities and a bound account.
	if got := get("A2"); got != "Alice" {
		t.Fatalf("A2 = %q", got)
	}
	if got := get("C2"); got != "113學年度" {
		t.Fatalf("C2 = %q", got)
	}
	if got := get("D2"); got != "2" {
		t.Fatalf("D2 = %q", got)
	}
	if got := get("E2"); got != "Workshop；Seminar" {
		t.Fatalf("E2 = %q", got)
	}
	if got := get("F2"); got != "alice@example.com" {
		t.Fatalf("F2 = %q", got)
	}
	if got := get("G2"); got != "已綁定" {
		t.Fatalf("G2 = %q", got)
	}

	// Row 3: Bob, one activity, unbound.
	if got := get("D3"); got != "1" {
		t.Fatalf("D3 = %q", got)
	}
	if got := get("F3"); got != "未綁定" {
		t.Fatalf("F3 = %q", got)
	}

	// Carol is in another cohort; row 4 stays empty.
	if got := get("A4"); got != "" {
		t.Fatalf("A4 = %q, want empty", got)
	}
}

func TestStudentsSummaryNoAttendance(t *testing.T) {
	students := []models.Student{{ID: "S1", Name: "Alice", AdmissionYear: "113"}}
	f, _, err := StudentsSummary(students, nil, "113", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	v, err := f.GetCellValue("113 學年度學生總表", "E2")
	if err != nil {
		t.Fatal(err)
	}
	if v != "無" {
		t.Fatalf("E2 = %q, want 無", v)
	}
}

func TestColName(t *testing.T) {
	cases := map[int]string{1: "A", 7: "G", 26: "Z", 27: "AA", 52: "AZ"}
	for n, want := range cases {
		if got := colName(n); got != want {
			t.Fatalf("colName(%d) = %q, want %q", n, got, want)
		}
	}
}
