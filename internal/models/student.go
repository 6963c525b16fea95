package models

import "time"

// Student is a roster entry. The student number is the document key and is
// not stored inside the document itself.
type Student struct {
	ID            string    `firestore:"-"`
	Name          string    `firestore:"name"`
	AdmissionYear string    `firestore:"admissionYear"`
	GoogleAccount string    `firestore:"googleAccount,omitempty"`
	CreatedAt     time.Time `firestore:"createdAt"`
	UpdatedAt     time.Time `firestore:"updatedAt,omitempty"`
}

func (s Student) Bound() bool { return s.GoogleAccount != "" }
