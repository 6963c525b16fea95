// Package query projects filtered, sorted views over the cached collections.
// Everything here is pure: inputs are never mutated and re-running a
// projection on its own output with a no-op filter is the identity.
package query

import (
	"sort"
	"strconv"
	"strings"

	"github.com/watsonshih/nsysu-isi-ae/internal/models"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

type Sort struct {
	Field string
	Dir   Direction
}

type Visibility string

const (
	VisibilityAny     Visibility = ""
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

type Binding string

const (
	BindingAny     Binding = ""
	BindingBound   Binding = "bound"
	BindingUnbound Binding = "unbound"
)

// ActivityFilter: Text is a case-insensitive substring matched against name,
// location or teacher (any of them); Year matches the calendar year of the
// activity date. Zero values mean "no constraint".
type ActivityFilter struct {
	Text       string
	Visibility Visibility
	Year       string
}

type StudentFilter struct {
	Text          string
	AdmissionYear string
	Binding       Binding
}

// Activities returns the filtered subset in a new slice, sorted stably so
// that entries comparing equal under the sort field keep their input order.
func Activities(list []models.Activity, f ActivityFilter, s Sort) []models.Activity {
	text := strings.ToLower(strings.TrimSpace(f.Text))
	out := make([]models.Activity, 0, len(list))
	for _, a := range list {
		if text != "" &&
			!strings.Contains(strings.ToLower(a.Name), text) &&
			!strings.Contains(strings.ToLower(a.Location), text) &&
			!strings.Contains(strings.ToLower(a.Teacher), text) {
			continue
		}
		switch f.Visibility {
		case VisibilityPublic:
			if !a.Visible {
				continue
			}
		case VisibilityPrivate:
			if a.Visible {
				continue
			}
		}
		if f.Year != "" && a.Year() != f.Year {
			continue
		}
		out = append(out, a)
	}
	if s.Field != "" {
		sort.SliceStable(out, func(i, j int) bool {
			return ordered(compareActivities(out[i], out[j], s.Field), s.Dir)
		})
	}
	return out
}

// Students projects the roster. participantCount is supplied by the caller
// so this package stays free of the cache.
func Students(list []models.Student, participantCount func(id string) int, f StudentFilter, s Sort) []models.Student {
	text := strings.ToLower(strings.TrimSpace(f.Text))
	out := make([]models.Student, 0, len(list))
	for _, st := range list {
		if text != "" &&
			!strings.Contains(strings.ToLower(st.Name), text) &&
			!strings.Contains(strings.ToLower(st.ID), text) {
			continue
		}
		if f.AdmissionYear != "" && st.AdmissionYear != f.AdmissionYear {
			continue
		}
		switch f.Binding {
		case BindingBound:
			if !st.Bound() {
				continue
			}
		case BindingUnbound:
			if st.Bound() {
				continue
			}
		}
		out = append(out, st)
	}
	if s.Field != "" {
		sort.SliceStable(out, func(i, j int) bool {
			return ordered(compareStudents(out[i], out[j], s.Field, participantCount), s.Dir)
		})
	}
	return out
}

func compareActivities(a, b models.Activity, field string) int {
	switch field {
	case "name":
		return strings.Compare(a.Name, b.Name)
	case "date":
		return strings.Compare(a.Date, b.Date)
	case "location":
		return strings.Compare(a.Location, b.Location)
	case "teacher":
		return strings.Compare(a.Teacher, b.Teacher)
	case "participants":
		return len(a.Participants) - len(b.Participants)
	case "visible":
		return boolOrd(a.Visible) - boolOrd(b.Visible)
	default:
		return 0
	}
}

func compareStudents(a, b models.Student, field string, participantCount func(id string) int) int {
	switch field {
	case "name":
		return strings.Compare(a.Name, b.Name)
	case "id":
		return strings.Compare(a.ID, b.ID)
	case "admissionYear":
		return atoi(a.AdmissionYear) - atoi(b.AdmissionYear)
	case "participantCount":
		return participantCount(a.ID) - participantCount(b.ID)
	case "googleAccount":
		return boolOrd(a.Bound()) - boolOrd(b.Bound())
	default:
		return 0
	}
}

// ordered turns a three-way comparison into a less for the direction.
// Ties report false so the stable sort keeps input order.
func ordered(c int, dir Direction) bool {
	if dir == Desc {
		c = -c
	}
	return c < 0
}

func boolOrd(b bool) int {
	if b {
		return 1
	}
	return 0
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
