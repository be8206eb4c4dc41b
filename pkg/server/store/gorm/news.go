package gorm

import (
	"time"

	"gorm.io/gorm"

	"github.com/ppa-angola/portal-pedagogico/pkg/model"
	"github.com/ppa-angola/portal-pedagogico/pkg/server/store"
)

// Ensure NewsStore implements store.NewsStore
var _ store.NewsStore = (*NewsStore)(nil)

// NewsStore implements store.NewsStore using GORM
type NewsStore struct {
	db *gorm.DB
}

// NewNewsStore creates a new NewsStore
func NewNewsStore(db *gorm.DB) *NewsStore {
	return &NewsStore{db: db}
}

// ListActive returns news that has not expired at now
func (s *NewsStore) ListActive(now time.Time) ([]model.News, error) {
	var news []model.News
	err := s.db.Where("expires_at IS NULL OR expires_at > ?", now.UTC()).
		Order("date DESC").Order("id DESC").
		Find(&news).Error
	if err != nil {
		return nil, err
	}
	return news, nil
}

// Create publishes a news item
func (s *NewsStore) Create(news *model.News) error {
	if news.Source == "" {
		news.Source = model.DefaultNewsSource
	}
	if news.Date.IsZero() {
		news.Date = s.db.NowFunc()
	}
	return s.db.Create(news).Error
}

// Delete removes a news item
func (s *NewsStore) Delete(id int64) error {
	tx := s.db.Delete(&model.News{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrNewsNotFound
	}
	return nil
}

// ExistsByTitle reports whether a news item with title exists
func (s *NewsStore) ExistsByTitle(title string) (bool, error) {
	var n int64
	err := s.db.Model(&model.News{}).Where("title = ?", title).Count(&n).Error
	return n > 0, err
}

// DeleteExpired removes news whose expiry has passed
func (s *NewsStore) DeleteExpired(now time.Time) (int64, error) {
	tx := s.db.Where("expires_at IS NOT NULL AND expires_at <= ?", now.UTC()).Delete(&model.News{})
	return tx.RowsAffected, tx.Error
}

// Count returns the number of news items
func (s *NewsStore) Count() (int64, error) {
	var n int64
	err := s.db.Model(&model.News{}).Count(&n).Error
	return n, err
}
