package store

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/watsonshih/nsysu-isi-ae/internal/ctxutil"
	"github.com/watsonshih/nsysu-isi-ae/internal/metrics"
	"github.com/watsonshih/nsysu-isi-ae/internal/models"
)

// Firestore implements Client against Cloud Firestore. One document per
// entity, collection names as in store.go, entity ids as document ids.
type Firestore struct {
	c *firestore.Client
}

var _ Client = (*Firestore)(nil)

func Connect(ctx context.Context, projectID string) (*Firestore, error) {
	c, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("firestore connect: %w", err)
	}
	return &Firestore{c: c}, nil
}

func NewFirestore(c *firestore.Client) *Firestore { return &Firestore{c: c} }

func (f *Firestore) Close() error { return f.c.Close() }

func (f *Firestore) AdmissionYears(ctx context.Context) ([]models.AdmissionYear, error) {
	ctx, cancel := ctxutil.WithRemoteTimeout(ctx)
	defer cancel()
	metrics.RemoteReads.WithLabelValues(ColAdmissionYears).Inc()
	it := f.c.Collection(ColAdmissionYears).Documents(ctx)
	defer it.Stop()

	var out []models.AdmissionYear
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			metrics.RemoteErrors.WithLabelValues(ColAdmissionYears).Inc()
			return nil, fmt.Errorf("list admission years: %w", err)
		}
		var y models.AdmissionYear
		if err := doc.DataTo(&y); err != nil {
			return nil, fmt.Errorf("decode admission year %q: %w", doc.Ref.ID, err)
		}
		y.Year = doc.Ref.ID
		out = append(out, y)
	}
	return out, nil
}

func (f *Firestore) Students(ctx context.Context) ([]models.Student, error) {
	ctx, cancel := ctxutil.WithRemoteTimeout(ctx)
	defer cancel()
	metrics.RemoteReads.WithLabelValues(ColStudents).Inc()
	it := f.c.Collection(ColStudents).Documents(ctx)
	defer it.Stop()

	var out []models.Student
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			metrics.RemoteErrors.WithLabelValues(ColStudents).Inc()
			return nil, fmt.Errorf("list students: %w", err)
		}
		var s models.Student
		if err := doc.DataTo(&s); err != nil {
			return nil, fmt.Errorf("decode student %q: %w", doc.Ref.ID, err)
		}
		s.ID = doc.Ref.ID
		out = append(out, s)
	}
	return out, nil
}

func (f *Firestore) Activities(ctx context.Context) ([]models.Activity, error) {
	ctx, cancel := ctxutil.WithRemoteTimeout(ctx)
	defer cancel()
	metrics.RemoteReads.WithLabelValues(ColActivities).Inc()
	it := f.c.Collection(ColActivities).Documents(ctx)
	defer it.Stop()

	var out []models.Activity
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			metrics.RemoteErrors.WithLabelValues(ColActivities).Inc()
			return nil, fmt.Errorf("list activities: %w", err)
		}
		var a models.Activity
		if err := doc.DataTo(&a); err != nil {
			return nil, fmt.Errorf("decode activity %q: %w", doc.Ref.ID, err)
		}
		a.ID = doc.Ref.ID
		out = append(out, a)
	}
	return out, nil
}

func (f *Firestore) PutAdmissionYear(ctx context.Context, y models.AdmissionYear) error {
	return f.write(ctx, ColAdmissionYears, "set", func(ctx context.Context) error {
		_, err := f.c.Collection(ColAdmissionYears).Doc(y.Year).Set(ctx, y)
		return err
	})
}

func (f *Firestore) PutStudent(ctx context.Context, s models.Student) error {
	return f.write(ctx, ColStudents, "set", func(ctx context.Context) error {
		_, err := f.c.Collection(ColStudents).Doc(s.ID).Set(ctx, s)
		return err
	})
}

func (f *Firestore) UpdateStudent(ctx context.Context, id, name, admissionYear string, updatedAt time.Time) error {
	return f.write(ctx, ColStudents, "update", func(ctx context.Context) error {
		_, err := f.c.Collection(ColStudents).Doc(id).Update(ctx, []firestore.Update{
			{Path: "name", Value: name},
			{Path: "admissionYear", Value: admissionYear},
			{Path: "updatedAt", Value: updatedAt},
		})
		return err
	})
}

func (f *Firestore) DeleteStudent(ctx context.Context, id string) error {
	return f.write(ctx, ColStudents, "delete", func(ctx context.Context) error {
		_, err := f.c.Collection(ColStudents).Doc(id).Delete(ctx)
		return err
	})
}

func (f *Firestore) SetStudentAccount(ctx context.Context, id, email string) error {
	return f.write(ctx, ColStudents, "update", func(ctx context.Context) error {
		_, err := f.c.Collection(ColStudents).Doc(id).Update(ctx, []firestore.Update{
			{Path: "googleAccount", Value: email},
		})
		return err
	})
}

func (f *Firestore) ClearStudentAccount(ctx context.Context, id string) error {
	return f.write(ctx, ColStudents, "update", func(ctx context.Context) error {
		_, err := f.c.Collection(ColStudents).Doc(id).Update(ctx, []firestore.Update{
			{Path: "googleAccount", Value: firestore.Delete},
		})
		return err
	})
}

func (f *Firestore) CreateActivity(ctx context.Context, a models.Activity) (string, error) {
	if a.Participants == nil {
		a.Participants = []string{}
	}
	doc := f.c.Collection(ColActivities).NewDoc()
	err := f.write(ctx, ColActivities, "create", func(ctx context.Context) error {
		_, err := doc.Set(ctx, a)
		return err
	})
	if err != nil {
		return "", err
	}
	return doc.ID, nil
}

func (f *Firestore) UpdateActivity(ctx context.Context, id string, a models.Activity) error {
	return f.write(ctx, ColActivities, "update", func(ctx context.Context) error {
		_, err := f.c.Collection(ColActivities).Doc(id).Update(ctx, []firestore.Update{
			{Path: "name", Value: a.Name},
			{Path: "date", Value: a.Date},
			{Path: "location", Value: a.Location},
			{Path: "teacher", Value: a.Teacher},
			{Path: "notes", Value: a.Notes},
			{Path: "visible", Value: a.Visible},
			{Path: "updatedAt", Value: a.UpdatedAt},
		})
		return err
	})
}

func (f *Firestore) DeleteActivity(ctx context.Context, id string) error {
	return f.write(ctx, ColActivities, "delete", func(ctx context.Context) error {
		_, err := f.c.Collection(ColActivities).Doc(id).Delete(ctx)
		return err
	})
}

func (f *Firestore) SetActivityVisible(ctx context.Context, id string, visible bool) error {
	return f.write(ctx, ColActivities, "update", func(ctx context.Context) error {
		_, err := f.c.Collection(ColActivities).Doc(id).Update(ctx, []firestore.Update{
			{Path: "visible", Value: visible},
		})
		return err
	})
}

func (f *Firestore) SetParticipants(ctx context.Context, id string, participants []string) error {
	if participants == nil {
		participants = []string{}
	}
	return f.write(ctx, ColActivities, "update", func(ctx context.Context) error {
		_, err := f.c.Collection(ColActivities).Doc(id).Update(ctx, []firestore.Update{
			{Path: "participants", Value: participants},
		})
		return err
	})
}

func (f *Firestore) User(ctx context.Context, emailKey string) (*models.UserRecord, error) {
	ctx, cancel := ctxutil.WithRemoteTimeout(ctx)
	defer cancel()
	metrics.RemoteReads.WithLabelValues(ColUsers).Inc()
	snap, err := f.c.Collection(ColUsers).Doc(emailKey).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		metrics.RemoteErrors.WithLabelValues(ColUsers).Inc()
		return nil, fmt.Errorf("get user %q: %w", emailKey, err)
	}
	var u models.UserRecord
	if err := snap.DataTo(&u); err != nil {
		return nil, fmt.Errorf("decode user %q: %w", emailKey, err)
	}
	return &u, nil
}

func (f *Firestore) PutUser(ctx context.Context, emailKey string, u models.UserRecord) error {
	return f.write(ctx, ColUsers, "set", func(ctx context.Context) error {
		_, err := f.c.Collection(ColUsers).Doc(emailKey).Set(ctx, u)
		return err
	})
}

func (f *Firestore) DeleteUser(ctx context.Context, emailKey string) error {
	return f.write(ctx, ColUsers, "delete", func(ctx context.Context) error {
		_, err := f.c.Collection(ColUsers).Doc(emailKey).Delete(ctx)
		return err
	})
}

// WatchActivities re-reads the collection from each snapshot; the mirror is
// small enough that diffing individual changes is not worth it.
func (f *Firestore) WatchActivities(ctx context.Context) (<-chan []models.Activity, error) {
	snaps := f.c.Collection(ColActivities).Snapshots(ctx)
	ch := make(chan []models.Activity, 1)
	go func() {
		defer close(ch)
		defer snaps.Stop()
		for {
			snap, err := snaps.Next()
			if err != nil {
				return
			}
			var list []models.Activity
			docs := snap.Documents
			for {
				doc, err := docs.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					return
				}
				var a models.Activity
				if err := doc.DataTo(&a); err != nil {
					continue
				}
				a.ID = doc.Ref.ID
				list = append(list, a)
			}
			select {
			case ch <- list:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}

func (f *Firestore) write(ctx context.Context, collection, op string, fn func(ctx context.Context) error) error {
	ctx, cancel := ctxutil.WithRemoteTimeout(ctx)
	defer cancel()
	metrics.RemoteWrites.WithLabelValues(collection, op).Inc()
	if err := fn(ctx); err != nil {
		metrics.RemoteErrors.WithLabelValues(collection).Inc()
		return fmt.Errorf("%s %s: %w", op, collection, err)
	}
	return nil
}
