package store

import (
	"errors"
	"time"

	"github.com/ppa-angola/portal-pedagogico/pkg/model"
)

// ErrPlanNotFound is returned when a plan doesn't exist
var ErrPlanNotFound = errors.New("plan not found")

// PlansStore abstracts lesson plan history storage
type PlansStore interface {
	// ListByUser returns the user's plans, newest first.
	ListByUser(userID int64) ([]model.Plan, error)

	Get(id int64) (*model.Plan, error)
	Save(plan *model.Plan) error

	// UpdateContent returns ErrPlanNotFound when no row was changed.
	UpdateContent(id int64, content string) error

	// DeleteOlderThan removes plans created before cutoff.
	DeleteOlderThan(cutoff time.Time) (int64, error)
}
