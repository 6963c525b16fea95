// Package cache holds the in-memory mirror of the remote collections. A load
// replaces the whole collection; everything else is a patch applied by the
// mutation coordinator after the remote write was acknowledged. Readers only
// ever get copies, never references into the mirror.
package cache

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/watsonshih/nsysu-isi-ae/internal/models"
	"github.com/watsonshih/nsysu-isi-ae/internal/store"
)

type Store struct {
	mu         sync.RWMutex
	years      []models.AdmissionYear
	students   map[string]models.Student
	activities map[string]models.Activity
	// order of last load, so projections are deterministic across re-sorts
	studentOrder  []string
	activityOrder []string
}

func New() *Store {
	return &Store{
		students:   make(map[string]models.Student),
		activities: make(map[string]models.Activity),
	}
}

// LoadAdmissionYears replaces the year list from a fresh read, newest first.
// On failure the list is reset to empty before the error is returned, so the
// mirror never keeps stale data for a failed load.
func (s *Store) LoadAdmissionYears(ctx context.Context, cl store.Client) error {
	years, err := cl.AdmissionYears(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.years = nil
		return err
	}
	sort.SliceStable(years, func(i, j int) bool {
		return yearNum(years[i].Year) > yearNum(years[j].Year)
	})
	s.years = years
	return nil
}

func (s *Store) LoadStudents(ctx context.Context, cl store.Client) error {
	list, err := cl.Students(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.students = make(map[string]models.Student)
		s.studentOrder = nil
		return err
	}
	s.students = make(map[string]models.Student, len(list))
	s.studentOrder = make([]string, 0, len(list))
	for _, st := range list {
		s.students[st.ID] = st
		s.studentOrder = append(s.studentOrder, st.ID)
	}
	return nil
}

func (s *Store) LoadActivities(ctx context.Context, cl store.Client) error {
	list, err := cl.Activities(ctx)
	if err != nil {
		s.mu.Lock()
		s.activities = make(map[string]models.Activity)
		s.activityOrder = nil
		s.mu.Unlock()
		return err
	}
	s.ReplaceActivities(list)
	return nil
}

// ReplaceActivities swaps in a full collection snapshot, date-desc like the
// remote load. Used by LoadActivities and by the watch subscription.
func (s *Store) ReplaceActivities(list []models.Activity) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].Date > list[j].Date })
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = make(map[string]models.Activity, len(list))
	s.activityOrder = make([]string, 0, len(list))
	for _, a := range list {
		s.activities[a.ID] = a
		s.activityOrder = append(s.activityOrder, a.ID)
	}
}

func (s *Store) AdmissionYears() []models.AdmissionYear {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.AdmissionYear, len(s.years))
	copy(out, s.years)
	return out
}

func (s *Store) HasAdmissionYear(year string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, y := range s.years {
		if y.Year == year {
			return true
		}
	}
	return false
}

// Students returns the collection in last-load order, with entities upserted
// since the load appended at the end.
func (s *Store) Students() []models.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Student, 0, len(s.students))
	for _, id := range s.studentOrder {
		if st, ok := s.students[id]; ok {
			out = append(out, st)
		}
	}
	return out
}

func (s *Store) Activities() []models.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Activity, 0, len(s.activities))
	for _, id := range s.activityOrder {
		if a, ok := s.activities[id]; ok {
			out = append(out, copyActivity(a))
		}
	}
	return out
}

func (s *Store) Student(id string) (models.Student, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.students[id]
	return st, ok
}

func (s *Store) Activity(id string) (models.Activity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.activities[id]
	if !ok {
		return models.Activity{}, false
	}
	return copyActivity(a), true
}

func (s *Store) UpsertStudent(st models.Student) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.students[st.ID]; !ok {
		s.studentOrder = append(s.studentOrder, st.ID)
	}
	s.students[st.ID] = st
}

func (s *Store) RemoveStudent(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.students, id)
}

// SetStudentAccount patches the googleAccount field; empty clears it.
func (s *Store) SetStudentAccount(id, email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.students[id]
	if !ok {
		return
	}
	st.GoogleAccount = email
	s.students[id] = st
}

func (s *Store) UpsertActivity(a models.Activity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.activities[a.ID]; !ok {
		s.activityOrder = append(s.activityOrder, a.ID)
	}
	s.activities[a.ID] = copyActivity(a)
}

func (s *Store) RemoveActivity(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.activities, id)
}

func (s *Store) SetActivityVisible(id string, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.activities[id]
	if !ok {
		return
	}
	a.Visible = visible
	s.activities[id] = a
}

func (s *Store) SetParticipants(id string, participants []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.activities[id]
	if !ok {
		return
	}
	a.Participants = append([]string(nil), participants...)
	s.activities[id] = a
}

func (s *Store) AddAdmissionYear(y models.AdmissionYear) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.years = append(s.years, y)
	sort.SliceStable(s.years, func(i, j int) bool {
		return yearNum(s.years[i].Year) > yearNum(s.years[j].Year)
	})
}

// ParticipantCount is the number of activities whose participant list
// contains the student. Linear scan; there is no reverse index.
func (s *Store) ParticipantCount(studentID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, a := range s.activities {
		if a.HasParticipant(studentID) {
			n++
		}
	}
	return n
}

// ActivitiesFor is the student-facing view: visible activities the student
// attended, newest first.
func (s *Store) ActivitiesFor(studentID string) []models.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Activity
	for _, id := range s.activityOrder {
		a, ok := s.activities[id]
		if !ok || !a.Visible || !a.HasParticipant(studentID) {
			continue
		}
		out = append(out, copyActivity(a))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// ActivityYears lists the distinct calendar years present, newest first.
func (s *Store) ActivityYears() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	var out []string
	for _, a := range s.activities {
		y := a.Year()
		if y == "" {
			continue
		}
		if _, ok := seen[y]; !ok {
			seen[y] = struct{}{}
			out = append(out, y)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out
}

func copyActivity(a models.Activity) models.Activity {
	a.Participants = append([]string(nil), a.Participants...)
	return a
}

func yearNum(y string) int {
	n, _ := strconv.Atoi(y)
	return n
}
