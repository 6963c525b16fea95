package models

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
	RoleNew     Role = "new"
)

// UserRecord binds a login identity to a student number. It is keyed by the
// sanitized email (see store.EmailKey); the original email lives only here.
type UserRecord struct {
	Email       string    `firestore:"email"`
	DisplayName string    `firestore:"displayName"`
	PhotoURL    string    `firestore:"photoURL"`
	StudentID   string    `firestore:"studentId,omitempty"`
	Role        Role      `firestore:"role,omitempty"`
	CreatedAt   time.Time `firestore:"createdAt"`
}

// EffectiveRole resolves records written before the role field existed:
// an explicit role wins, a bare studentId means student, anything else is new.
func (u UserRecord) EffectiveRole() Role {
	if u.Role != "" {
		return u.Role
	}
	if u.StudentID != "" {
		return RoleStudent
	}
	return RoleNew
}
