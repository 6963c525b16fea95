package models

import "time"

// AdmissionYear is a cohort label. The numeric year string is the document key.
type AdmissionYear struct {
	Year      string    `firestore:"-"`
	CreatedAt time.Time `firestore:"createdAt"`
}
