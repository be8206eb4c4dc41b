package gorm

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/ppa-angola/portal-pedagogico/pkg/model"
	"github.com/ppa-angola/portal-pedagogico/pkg/server/store"
	"github.com/ppa-angola/portal-pedagogico/pkg/status"
)

// Ensure CommunityStore implements store.CommunityStore
var _ store.CommunityStore = (*CommunityStore)(nil)

// CommunityStore implements store.CommunityStore using GORM
type CommunityStore struct {
	db *gorm.DB
}

// NewCommunityStore creates a new CommunityStore
func NewCommunityStore(db *gorm.DB) *CommunityStore {
	return &CommunityStore{db: db}
}

// ListApproved returns approved plans with author name, school and photo
func (s *CommunityStore) ListApproved() ([]model.CommunityPlanView, error) {
	var views []model.CommunityPlanView
	err := s.db.Table("community_plans AS cp").
		Select("cp.*, u.professor_nome, u.escola, u.foto_url").
		Joins("JOIN users u ON cp.user_id = u.id").
		Where("cp.status = ?", status.CommunityAprovado).
		Order("cp.created_at DESC").Order("cp.id DESC").
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}

// Share submits a plan for moderation
func (s *CommunityStore) Share(plan *model.CommunityPlan) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if plan.PlanID != nil {
			var n int64
			if err := tx.Model(&model.CommunityPlan{}).Where("plan_id = ?", *plan.PlanID).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return store.ErrAlreadyShared
			}
		}

		plan.Status = status.CommunityPendente
		plan.Likes = 0
		return tx.Create(plan).Error
	})
}

// Like increments a shared plan's likes
func (s *CommunityStore) Like(id int64) error {
	tx := s.db.Model(&model.CommunityPlan{}).Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + 1"))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrCommunityPlanNotFound
	}
	return nil
}

// ListPending returns plans awaiting moderation with author contact fields
func (s *CommunityStore) ListPending() ([]model.CommunityPlanView, error) {
	var views []model.CommunityPlanView
	err := s.db.Table("community_plans AS cp").
		Select("cp.*, u.professor_nome, u.email, u.telefone").
		Joins("JOIN users u ON cp.user_id = u.id").
		Where("cp.status = ?", status.CommunityPendente).
		Order("cp.created_at ASC").Order("cp.id ASC").
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}

// Moderate sets the moderation outcome of a shared plan
func (s *CommunityStore) Moderate(id int64, st status.CommunityStatus) error {
	if !st.IsModeration() {
		return fmt.Errorf("invalid moderation status %q", st.String())
	}
	tx := s.db.Model(&model.CommunityPlan{}).Where("id = ?", id).Update("status", st)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrCommunityPlanNotFound
	}
	return nil
}
