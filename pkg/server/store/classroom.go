package store

import (
	"errors"

	"github.com/ppa-angola/portal-pedagogico/pkg/model"
)

// ErrNotOwned is returned when a row doesn't exist or belongs to another user
var ErrNotOwned = errors.New("record not found for user")

// AnyOwner disables the owner filter on deletes.
const AnyOwner int64 = 0

// StudentsStore abstracts class roster storage
type StudentsStore interface {
	List(userID int64) ([]model.Student, error)
	Add(student *model.Student) error

	// Delete removes the student owned by userID (AnyOwner for admins).
	// Returns ErrNotOwned when nothing was removed.
	Delete(id, userID int64) error
}

// CalendarStore abstracts lesson calendar storage
type CalendarStore interface {
	List(userID int64) ([]model.CalendarEvent, error)
	Add(event *model.CalendarEvent) error
	Delete(id, userID int64) error
}

// QuestionsStore abstracts question bank storage
type QuestionsStore interface {
	// List returns the user's questions, newest first.
	List(userID int64) ([]model.Question, error)
	Save(question *model.Question) error
}
