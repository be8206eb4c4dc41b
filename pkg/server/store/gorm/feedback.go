package gorm

import (
	"gorm.io/gorm"

	"github.com/ppa-angola/portal-pedagogico/pkg/model"
	"github.com/ppa-angola/portal-pedagogico/pkg/server/store"
	"github.com/ppa-angola/portal-pedagogico/pkg/status"
)

// Ensure FeedbackStore implements store.FeedbackStore
var _ store.FeedbackStore = (*FeedbackStore)(nil)

// FeedbackStore implements store.FeedbackStore using GORM
type FeedbackStore struct {
	db *gorm.DB
}

// NewFeedbackStore creates a new FeedbackStore
func NewFeedbackStore(db *gorm.DB) *FeedbackStore {
	return &FeedbackStore{db: db}
}

// Create stores a pending feedback
func (s *FeedbackStore) Create(feedback *model.Feedback) error {
	feedback.Status = status.FeedbackPendente
	return s.db.Create(feedback).Error
}

// ListWithUsers returns feedback joined with the author's contact fields
func (s *FeedbackStore) ListWithUsers() ([]model.FeedbackView, error) {
	var views []model.FeedbackView
	err := s.db.Table("feedback AS f").
		Select("f.*, u.professor_nome, u.email, u.telefone").
		Joins("JOIN users u ON f.user_id = u.id").
		Order("f.created_at DESC").Order("f.id DESC").
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}

// Resolve marks a feedback as resolved
func (s *FeedbackStore) Resolve(id int64) error {
	tx := s.db.Model(&model.Feedback{}).Where("id = ?", id).Update("status", status.FeedbackResolvido)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrFeedbackNotFound
	}
	return nil
}
