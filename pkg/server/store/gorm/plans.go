package gorm

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ppa-angola/portal-pedagogico/pkg/model"
	"github.com/ppa-angola/portal-pedagogico/pkg/server/store"
)

// Ensure PlansStore implements store.PlansStore
var _ store.PlansStore = (*PlansStore)(nil)

// PlansStore implements store.PlansStore using GORM
type PlansStore struct {
	db *gorm.DB
}

// NewPlansStore creates a new PlansStore
func NewPlansStore(db *gorm.DB) *PlansStore {
	return &PlansStore{db: db}
}

// ListByUser returns a user's plans, newest first
func (s *PlansStore) ListByUser(userID int64) ([]model.Plan, error) {
	var plans []model.Plan
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Order("id DESC").Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// Get retrieves a plan by id
func (s *PlansStore) Get(id int64) (*model.Plan, error) {
	var plan model.Plan
	if err := s.db.First(&plan, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// Save inserts a plan into the history
func (s *PlansStore) Save(plan *model.Plan) error {
	return s.db.Create(plan).Error
}

// UpdateContent replaces a plan's content
func (s *PlansStore) UpdateContent(id int64, content string) error {
	tx := s.db.Model(&model.Plan{}).Where("id = ?", id).Update("content", content)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrPlanNotFound
	}
	return nil
}

// DeleteOlderThan removes plans created before cutoff
func (s *PlansStore) DeleteOlderThan(cutoff time.Time) (int64, error) {
	tx := s.db.Where("created_at < ?", cutoff.UTC()).Delete(&model.Plan{})
	return tx.RowsAffected, tx.Error
}
