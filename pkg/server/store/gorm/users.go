package gorm

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ppa-angola/portal-pedagogico/pkg/model"
	"github.com/ppa-angola/portal-pedagogico/pkg/server/store"
)

// Ensure UsersStore implements store.UsersStore
var _ store.UsersStore = (*UsersStore)(nil)

// UsersStore implements store.UsersStore using GORM
type UsersStore struct {
	db *gorm.DB
}

// NewUsersStore creates a new UsersStore
func NewUsersStore(db *gorm.DB) *UsersStore {
	return &UsersStore{db: db}
}

func (s *UsersStore) first(query interface{}, args ...interface{}) (*model.User, error) {
	var user model.User
	tx := s.db.Where(query, args...).First(&user)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrUserNotFound
		}
		return nil, tx.Error
	}
	return &user, nil
}

// FindByID retrieves a user by primary key
func (s *UsersStore) FindByID(id int64) (*model.User, error) {
	return s.first("id = ?", id)
}

// FindByIdentifier retrieves a user whose email or telefone equals identifier
func (s *UsersStore) FindByIdentifier(identifier string) (*model.User, error) {
	return s.first("email = ? OR telefone = ?", identifier, identifier)
}

// FindByEmail retrieves a user by email
func (s *UsersStore) FindByEmail(email string) (*model.User, error) {
	return s.first("email = ?", email)
}

// Create inserts a new user
func (s *UsersStore) Create(user *model.User) error {
	var existing int64
	q := s.db.Model(&model.User{})
	switch {
	case user.Email != nil && user.Telefone != nil:
		q = q.Where("email = ? OR telefone = ?", *user.Email, *user.Telefone)
	case user.Email != nil:
		q = q.Where("email = ?", *user.Email)
	case user.Telefone != nil:
		q = q.Where("telefone = ?", *user.Telefone)
	default:
		q = nil
	}
	if q != nil {
		if err := q.Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return store.ErrDuplicateUser
		}
	}

	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return store.ErrDuplicateUser
		}
		return err
	}
	return nil
}

// List returns all users ordered by id
func (s *UsersStore) List() ([]model.User, error) {
	var users []model.User
	if err := s.db.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateAdmin applies an administrator's changes to a user
func (s *UsersStore) UpdateAdmin(id int64, update store.UserAdminUpdate) error {
	tx := s.db.Model(&model.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"data_ativacao":  update.DataAtivacao,
		"data_expiracao": update.DataExpiracao,
		"plano_tipo":     update.PlanoTipo,
		"limite_planos":  update.LimitePlanos,
		"status":         update.Status,
	})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrUserNotFound
	}
	return nil
}

// UpdatePassword stores a new password hash
func (s *UsersStore) UpdatePassword(id int64, hash string) error {
	tx := s.db.Model(&model.User{}).Where("id = ?", id).Update("password", hash)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrUserNotFound
	}
	return nil
}

// UpdateProfile updates the teacher-editable profile fields
func (s *UsersStore) UpdateProfile(id int64, update store.ProfileUpdate) (*model.User, error) {
	tx := s.db.Model(&model.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"professor_nome":  update.ProfessorNome,
		"numero_agente":   update.NumeroAgente,
		"biografia":       update.Biografia,
		"especializacoes": update.Especializacoes,
		"foto_url":        update.FotoURL,
		"escola":          update.Escola,
		"provincia":       update.Provincia,
		"municipio":       update.Municipio,
	})
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, store.ErrUserNotFound
	}
	return s.FindByID(id)
}

// IncrementCredits adds one consumed plan for non-admin users
func (s *UsersStore) IncrementCredits(id int64) (*model.User, error) {
	user, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin {
		return user, nil
	}

	tx := s.db.Model(&model.User{}).
		Where("id = ? AND is_admin = ?", id, false).
		UpdateColumn("planos_consumidos", gorm.Expr("planos_consumidos + 1"))
	if tx.Error != nil {
		return nil, tx.Error
	}
	return s.FindByID(id)
}

// Delete removes a non-admin user and everything they own
func (s *UsersStore) Delete(id int64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.Where("id = ? AND is_admin = ?", id, false).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return store.ErrUserNotFound
			}
			return err
		}

		for _, m := range []interface{}{
			&model.CommunityPlan{}, &model.Feedback{}, &model.Question{},
			&model.CalendarEvent{}, &model.Student{}, &model.Plan{},
		} {
			if err := tx.Where("user_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.User{}, id).Error
	})
}
