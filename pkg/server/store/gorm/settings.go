package gorm

import (
	"errors"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ppa-angola/portal-pedagogico/pkg/model"
	"github.com/ppa-angola/portal-pedagogico/pkg/server/store"
)

// Ensure SettingsStore implements store.SettingsStore
var _ store.SettingsStore = (*SettingsStore)(nil)

// SettingsStore implements store.SettingsStore using GORM. Sealed values are
// decrypted by the model hooks.
type SettingsStore struct {
	db *gorm.DB
}

// NewSettingsStore creates a new SettingsStore
func NewSettingsStore(db *gorm.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// All returns every setting
func (s *SettingsStore) All() (map[string]string, error) {
	var settings []model.Setting
	if err := s.db.Find(&settings).Error; err != nil {
		return nil, err
	}
	values := make(map[string]string, len(settings))
	for _, setting := range settings {
		values[setting.Key] = setting.Value
	}
	return values, nil
}

// Get returns one setting
func (s *SettingsStore) Get(key string) (string, bool, error) {
	var setting model.Setting
	if err := s.db.Where("key = ?", key).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return setting.Value, true, nil
}

// Set upserts one setting
func (s *SettingsStore) Set(key, value string) error {
	return s.db.Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&model.Setting{Key: key, Value: value}).Error
}

// SetMany upserts several settings in one transaction
func (s *SettingsStore) SetMany(values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, k := range keys {
			err := tx.Clauses(clause.OnConflict{UpdateAll: true}).
				Create(&model.Setting{Key: k, Value: values[k]}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
