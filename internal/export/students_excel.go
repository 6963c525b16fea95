// Package export builds the downloadable students summary workbook.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/watsonshih/nsysu-isi-ae/internal/models"
)

var summaryHeader = []string{"姓名", "學號", "入學年", "參與場次", "已參與活動", "Google帳號", "綁定狀態"}

// Column widths roughly matching the content: the activity-name column is
// wide because names are joined into one cell.
var summaryWidths = []float64{10, 12, 12, 10, 50, 25, 10}

// StudentsSummary renders one sheet for the given cohort: every student of
// that admission year with attendance counts, joined activity names and
// binding status. Returns the workbook and its download filename, which
// embeds the year and the current date.
func StudentsSummary(students []models.Student, activities []models.Activity, year string, now time.Time) (*excelize.File, string, error) {
	sheet := fmt.Sprintf("%s 學年度學生總表", year)

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, "", fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, "", fmt.Errorf("header style: %w", err)
	}
	for col, h := range summaryHeader {
		cell := fmt.Sprintf("%s1", colName(col+1))
		if err := f.SetCellStr(sheet, cell, h); err != nil {
			return nil, "", fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	end := colName(len(summaryHeader)) + "1"
	_ = f.SetCellStyle(sheet, "A1", end, bold)
	_ = f.AutoFilter(sheet, "A1:"+end, nil)

	r := 2
	for _, st := range students {
		if st.AdmissionYear != year {
			continue
		}
		count, names := attendance(st.ID, activities)
		account, bound := st.GoogleAccount, "已綁定"
		if !st.Bound() {
			account, bound = "未綁定", "未綁定"
		}
		row := []any{st.Name, st.ID, st.AdmissionYear + "學年度", count, names, account, bound}
		for c, val := range row {
			cell := fmt.Sprintf("%s%d", colName(c+1), r)
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return nil, "", fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
		r++
	}

	for c := 1; c <= len(summaryWidths); c++ {
		_ = f.SetColWidth(sheet, colName(c), colName(c), summaryWidths[c-1])
	}

	name := fmt.Sprintf("%s 學年度學生總表_%s.xlsx", year, now.Format("20060102"))
	return f, name, nil
}

// attendance scans every participant list once; there is no reverse index.
func attendance(studentID string, activities []models.Activity) (int, string) {
	var names []string
	for _, a := range activities {
		if a.HasParticipant(studentID) {
			names = append(names, a.Name)
		}
	}
	if len(names) == 0 {
		return 0, "無"
	}
	return len(names), strings.Join(names, "；")
}

func colName(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+(n%26))) + s
		n /= 26
	}
	return s
}
