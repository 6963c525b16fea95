package app

import (
	"github.com/xuri/excelize/v2"

	"github.com/watsonshih/nsysu-isi-ae/internal/export"
)

// ExportStudents builds the summary workbook for one cohort from the
// current mirror. Pure read: no I/O against the remote store.
func (a *App) ExportStudents(admissionYear string) (*excelize.File, string, error) {
	if admissionYear == "" {
		return nil, "", validationf("select an admission year first")
	}
	students := a.cache.Students()
	n := 0
	for _, st := range students {
		if st.AdmissionYear == admissionYear {
			n++
		}
	}
	if n == 0 {
		return nil, "", validationf("no students in admission year %s", admissionYear)
	}
	return export.StudentsSummary(students, a.cache.Activities(), admissionYear, a.now())
}
