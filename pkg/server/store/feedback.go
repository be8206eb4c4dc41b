package store

import (
	"errors"

	"github.com/ppa-angola/portal-pedagogico/pkg/model"
	"github.com/ppa-angola/portal-pedagogico/pkg/status"
)

var (
	// ErrFeedbackNotFound is returned when a feedback row doesn't exist
	ErrFeedbackNotFound = errors.New("feedback not found")

	// ErrCommunityPlanNotFound is returned when a shared plan doesn't exist
	ErrCommunityPlanNotFound = errors.New("community plan not found")

	// ErrAlreadyShared is returned when a plan was shared before
	ErrAlreadyShared = errors.New("plan already shared")
)

// FeedbackStore abstracts teacher feedback storage
type FeedbackStore interface {
	Create(feedback *model.Feedback) error

	// ListWithUsers returns every feedback joined with its author, newest first.
	ListWithUsers() ([]model.FeedbackView, error)

	Resolve(id int64) error
}

// CommunityStore abstracts shared plan storage
type CommunityStore interface {
	// ListApproved returns approved plans joined with their author, newest first.
	ListApproved() ([]model.CommunityPlanView, error)

	// Share stores a plan for moderation.
	// Returns ErrAlreadyShared if plan.PlanID was shared before.
	Share(plan *model.CommunityPlan) error

	Like(id int64) error

	// ListPending returns plans awaiting moderation, oldest first.
	ListPending() ([]model.CommunityPlanView, error)

	Moderate(id int64, s status.CommunityStatus) error
}
