package models

import "time"

// Activity is a catalog entry. Date is the calendar date as "2006-01-02";
// Participants holds student numbers, no duplicates.
type Activity struct {
	ID           string    `firestore:"-"`
	Name         string    `firestore:"name"`
	Date         string    `firestore:"date"`
	Location     string    `firestore:"location"`
	Teacher      string    `firestore:"teacher"`
	Notes        string    `firestore:"notes,omitempty"`
	Visible      bool      `firestore:"visible"`
	Participants []string  `firestore:"participants"`
	CreatedAt    time.Time `firestore:"createdAt"`
	UpdatedAt    time.Time `firestore:"updatedAt,omitempty"`
}

// Year is the calendar year of Date, "" when the date is malformed.
func (a Activity) Year() string {
	if len(a.Date) < 4 {
		return ""
	}
	return a.Date[:4]
}

func (a Activity) HasParticipant(studentID string) bool {
	for _, id := range a.Participants {
		if id == studentID {
			return true
		}
	}
	return false
}
