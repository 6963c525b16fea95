// Package fakestore is an in-memory store.Client for tests, with per-path
// failure injection: FailWrites["activities/A1"] makes every write against
// that document fail, FailReads["students"] makes the collection read fail.
package fakestore

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/watsonshih/nsysu-isi-ae/internal/models"
	"github.com/watsonshih/nsysu-isi-ae/internal/store"
)

type Store struct {
	mu sync.Mutex

	YearsM      map[string]models.AdmissionYear
	StudentsM   map[string]models.Student
	ActivitiesM map[string]models.Activity
	UsersM      map[string]models.UserRecord

	FailWrites map[string]error
	FailReads  map[string]error

	nextID   int
	watchers []chan []models.Activity
}

var _ store.Client = (*Store)(nil)

func New() *Store {
	return &Store{
		YearsM:      make(map[string]models.AdmissionYear),
		StudentsM:   make(map[string]models.Student),
		ActivitiesM: make(map[string]models.Activity),
		UsersM:      make(map[string]models.UserRecord),
		FailWrites:  make(map[string]error),
		FailReads:   make(map[string]error),
	}
}

// Seed helpers keep tests terse.

func (s *Store) SeedStudent(st models.Student) { s.StudentsM[st.ID] = st }

func (s *Store) SeedActivity(a models.Activity) { s.ActivitiesM[a.ID] = a }

func (s *Store) SeedYear(year string) {
	s.YearsM[year] = models.AdmissionYear{Year: year, CreatedAt: time.Now()}
}

func (s *Store) AdmissionYears(context.Context) ([]models.AdmissionYear, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.FailReads[store.ColAdmissionYears]; err != nil {
		return nil, err
	}
	out := make([]models.AdmissionYear, 0, len(s.YearsM))
	for _, y := range s.YearsM {
		out = append(out, y)
	}
	return out, nil
}

func (s *Store) Students(context.Context) ([]models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.FailReads[store.ColStudents]; err != nil {
		return nil, err
	}
	out := make([]models.Student, 0, len(s.StudentsM))
	for _, st := range s.StudentsM {
		out = append(out, st)
	}
	return out, nil
}

func (s *Store) Activities(context.Context) ([]models.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.FailReads[store.ColActivities]; err != nil {
		return nil, err
	}
	out := make([]models.Activity, 0, len(s.ActivitiesM))
	for _, a := range s.ActivitiesM {
		a.Participants = append([]string(nil), a.Participants...)
		out = append(out, a)
	}
	return out, nil
}

func (s *Store) PutAdmissionYear(_ context.Context, y models.AdmissionYear) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failWrite(store.ColAdmissionYears + "/" + y.Year); err != nil {
		return err
	}
	s.YearsM[y.Year] = y
	return nil
}

func (s *Store) PutStudent(_ context.Context, st models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failWrite(store.ColStudents + "/" + st.ID); err != nil {
		return err
	}
	s.StudentsM[st.ID] = st
	return nil
}

func (s *Store) UpdateStudent(_ context.Context, id, name, admissionYear string, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failWrite(store.ColStudents + "/" + id); err != nil {
		return err
	}
	st := s.StudentsM[id]
	st.ID = id
	st.Name = name
	st.AdmissionYear = admissionYear
	st.UpdatedAt = updatedAt
	s.StudentsM[id] = st
	return nil
}

func (s *Store) DeleteStudent(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failWrite(store.ColStudents + "/" + id); err != nil {
		return err
	}
	delete(s.StudentsM, id)
	return nil
}

func (s *Store) SetStudentAccount(_ context.Context, id, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failWrite(store.ColStudents + "/" + id); err != nil {
		return err
	}
	st := s.StudentsM[id]
	st.GoogleAccount = email
	s.StudentsM[id] = st
	return nil
}

func (s *Store) ClearStudentAccount(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failWrite(store.ColStudents + "/" + id); err != nil {
		return err
	}
	st := s.StudentsM[id]
	st.GoogleAccount = ""
	s.StudentsM[id] = st
	return nil
}

func (s *Store) CreateActivity(_ context.Context, a models.Activity) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failWrite(store.ColActivities + "/new"); err != nil {
		return "", err
	}
	s.nextID++
	a.ID = "gen-" + strconv.Itoa(s.nextID)
	s.ActivitiesM[a.ID] = a
	return a.ID, nil
}

func (s *Store) UpdateActivity(_ context.Context, id string, a models.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failWrite(store.ColActivities + "/" + id); err != nil {
		return err
	}
	cur := s.ActivitiesM[id]
	cur.ID = id
	cur.Name = a.Name
	cur.Date = a.Date
	cur.Location = a.Location
	cur.Teacher = a.Teacher
	cur.Notes = a.Notes
	cur.Visible = a.Visible
	cur.UpdatedAt = a.UpdatedAt
	s.ActivitiesM[id] = cur
	return nil
}

func (s *Store) DeleteActivity(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failWrite(store.ColActivities + "/" + id); err != nil {
		return err
	}
	delete(s.ActivitiesM, id)
	return nil
}

func (s *Store) SetActivityVisible(_ context.Context, id string, visible bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failWrite(store.ColActivities + "/" + id); err != nil {
		return err
	}
	a := s.ActivitiesM[id]
	a.Visible = visible
	s.ActivitiesM[id] = a
	return nil
}

func (s *Store) SetParticipants(_ context.Context, id string, participants []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failWrite(store.ColActivities + "/" + id); err != nil {
		return err
	}
	a := s.ActivitiesM[id]
	a.Participants = append([]string(nil), participants...)
	s.ActivitiesM[id] = a
	return nil
}

func (s *Store) User(_ context.Context, emailKey string) (*models.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.FailReads[store.ColUsers]; err != nil {
		return nil, err
	}
	u, ok := s.UsersM[emailKey]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *Store) PutUser(_ context.Context, emailKey string, u models.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failWrite(store.ColUsers + "/" + emailKey); err != nil {
		return err
	}
	s.UsersM[emailKey] = u
	return nil
}

func (s *Store) DeleteUser(_ context.Context, emailKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failWrite(store.ColUsers + "/" + emailKey); err != nil {
		return err
	}
	delete(s.UsersM, emailKey)
	return nil
}

func (s *Store) WatchActivities(ctx context.Context) (<-chan []models.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan []models.Activity, 4)
	s.watchers = append(s.watchers, ch)
	go func() {
		<-ctx.Done()
		// leave the channel open; tests drain what was pushed
	}()
	return ch, nil
}

// PushSnapshot feeds every watcher, standing in for a remote change event.
func (s *Store) PushSnapshot() {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]models.Activity, 0, len(s.ActivitiesM))
	for _, a := range s.ActivitiesM {
		a.Participants = append([]string(nil), a.Participants...)
		list = append(list, a)
	}
	for _, ch := range s.watchers {
		select {
		case ch <- list:
		default:
		}
	}
}

func (s *Store) failWrite(path string) error {
	if err, ok := s.FailWrites[path]; ok {
		return err
	}
	return nil
}
