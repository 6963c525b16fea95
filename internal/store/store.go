// Package store is the boundary to the hosted document store. The rest of
// the program only sees the Client interface; the real implementation lives
// in firestore.go and tests use an in-memory fake.
package store

import (
	"context"
	"time"

	"github.com/watsonshih/nsysu-isi-ae/internal/models"
)

// Collection names in the document tree.
const (
	ColAdmissionYears = "admissionYears"
	ColStudents       = "students"
	ColActivities     = "activities"
	ColUsers          = "users"
)

// Client exposes the store primitives the coordinator needs: read a whole
// collection, replace/merge/delete single documents, create with a generated
// key, and subscribe to activity changes. Every write either fully happens
// or returns an error; there is no retry at this layer.
type Client interface {
	AdmissionYears(ctx context.Context) ([]models.AdmissionYear, error)
	Students(ctx context.Context) ([]models.Student, error)
	Activities(ctx context.Context) ([]models.Activity, error)

	PutAdmissionYear(ctx context.Context, y models.AdmissionYear) error

	PutStudent(ctx context.Context, s models.Student) error
	UpdateStudent(ctx context.Context, id, name, admissionYear string, updatedAt time.Time) error
	DeleteStudent(ctx context.Context, id string) error
	SetStudentAccount(ctx context.Context, id, email string) error
	// ClearStudentAccount removes the googleAccount field, not the document.
	ClearStudentAccount(ctx context.Context, id string) error

	// CreateActivity stores a new document under a generated key and returns it.
	CreateActivity(ctx context.Context, a models.Activity) (string, error)
	// UpdateActivity merges the editable fields; participants and createdAt
	// are left untouched.
	UpdateActivity(ctx context.Context, id string, a models.Activity) error
	DeleteActivity(ctx context.Context, id string) error
	SetActivityVisible(ctx context.Context, id string, visible bool) error
	// SetParticipants replaces the whole participant list.
	SetParticipants(ctx context.Context, id string, participants []string) error

	// User returns (nil, nil) when no record exists under the key.
	User(ctx context.Context, emailKey string) (*models.UserRecord, error)
	PutUser(ctx context.Context, emailKey string, u models.UserRecord) error
	DeleteUser(ctx context.Context, emailKey string) error

	// WatchActivities streams the full activity collection on every remote
	// change until ctx is done. The channel is closed on terminal error.
	WatchActivities(ctx context.Context) (<-chan []models.Activity, error)
}
