// Package importer turns uploaded spreadsheets into validated records. A bad
// row goes into the error list and never aborts the parse; the first
// occurrence of an id wins and later duplicates are rejected row by row.
package importer

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/watsonshih/nsysu-isi-ae/internal/metrics"
	"github.com/watsonshih/nsysu-isi-ae/internal/models"
)

// Header synonyms for the logical columns. Matching is exact after trimming.
var (
	idHeaders   = []string{"學號", "學生學號", "ID", "StudentID", "Student ID"}
	nameHeaders = []string{"姓名", "學生姓名", "Name", "StudentName", "Student Name"}
)

type RowError struct {
	Row     int
	Message string
}

func (e RowError) String() string { return fmt.Sprintf("row %d: %s", e.Row, e.Message) }

// StudentRecord keeps the source row alongside the entity so a failed remote
// write can be reported against the right line.
type StudentRecord struct {
	Row     int
	Student models.Student
}

type StudentsResult struct {
	Records []StudentRecord
	Errors  []RowError
}

type ParticipantsResult struct {
	// IDs are the validated student numbers in file order, deduplicated.
	IDs    []string
	Rows   map[string]int
	Errors []RowError
}

// ParseStudents reads the first sheet and validates each row against the
// current roster (exists) and the rows accepted earlier in the same file.
// Data rows are numbered from 2; row 1 is the header.
func ParseStudents(data []byte, admissionYear string, createdAt time.Time, exists func(id string) bool) (StudentsResult, error) {
	var res StudentsResult

	rows, err := firstSheet(data)
	if err != nil {
		return res, err
	}
	if len(rows) == 0 {
		return res, nil
	}

	idCol := findColumn(rows[0], idHeaders)
	nameCol := findColumn(rows[0], nameHeaders)

	seen := make(map[string]struct{})
	for i, row := range rows[1:] {
		rowNum := i + 2
		if idCol < 0 || nameCol < 0 {
			res.reject(rowNum, "no student id or name column in header")
			continue
		}
		id := cell(row, idCol)
		name := cell(row, nameCol)
		if id == "" || name == "" {
			res.reject(rowNum, "empty student id or name")
			continue
		}
		if exists(id) {
			res.reject(rowNum, fmt.Sprintf("student id %s already exists", id))
			continue
		}
		if _, dup := seen[id]; dup {
			res.reject(rowNum, fmt.Sprintf("student id %s duplicated in file", id))
			continue
		}
		seen[id] = struct{}{}
		res.Records = append(res.Records, StudentRecord{
			Row: rowNum,
			Student: models.Student{
				ID:            id,
				Name:          name,
				AdmissionYear: admissionYear,
				CreatedAt:     createdAt,
			},
		})
		metrics.ImportRows.WithLabelValues("accepted").Inc()
	}
	return res, nil
}

// ParseParticipants validates student numbers for an attendance upload. Ids
// must already be on the roster; repeats within the file collapse silently.
func ParseParticipants(data []byte, onRoster func(id string) bool) (ParticipantsResult, error) {
	res := ParticipantsResult{Rows: make(map[string]int)}

	rows, err := firstSheet(data)
	if err != nil {
		return res, err
	}
	if len(rows) == 0 {
		return res, nil
	}

	idCol := findColumn(rows[0], idHeaders)

	for i, row := range rows[1:] {
		rowNum := i + 2
		if idCol < 0 {
			res.Errors = append(res.Errors, RowError{rowNum, "no student id column in header"})
			metrics.ImportRows.WithLabelValues("rejected").Inc()
			continue
		}
		id := cell(row, idCol)
		if id == "" {
			res.Errors = append(res.Errors, RowError{rowNum, "empty student id"})
			metrics.ImportRows.WithLabelValues("rejected").Inc()
			continue
		}
		if !onRoster(id) {
			res.Errors = append(res.Errors, RowError{rowNum, fmt.Sprintf("student id %s not on the roster", id)})
			metrics.ImportRows.WithLabelValues("rejected").Inc()
			continue
		}
		if _, dup := res.Rows[id]; dup {
			continue
		}
		res.Rows[id] = rowNum
		res.IDs = append(res.IDs, id)
		metrics.ImportRows.WithLabelValues("accepted").Inc()
	}
	return res, nil
}

func (r *StudentsResult) reject(row int, msg string) {
	r.Errors = append(r.Errors, RowError{Row: row, Message: msg})
	metrics.ImportRows.WithLabelValues("rejected").Inc()
}

func firstSheet(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func findColumn(header []string, names []string) int {
	for i, h := range header {
		h = strings.TrimSpace(h)
		for _, n := range names {
			if h == n {
				return i
			}
		}
	}
	return -1
}

func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
