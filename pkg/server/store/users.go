package store

import (
	"errors"

	"github.com/ppa-angola/portal-pedagogico/pkg/model"
	"github.com/ppa-angola/portal-pedagogico/pkg/status"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateUser is returned when the e-mail or telefone is taken
	ErrDuplicateUser = errors.New("e-mail or telefone already registered")

	// ErrPlanLimit is returned when a user has no plan credits left
	ErrPlanLimit = errors.New("plan limit reached")
)

// UserAdminUpdate carries the fields an administrator may change.
type UserAdminUpdate struct {
	DataAtivacao  string
	DataExpiracao string
	PlanoTipo     string
	LimitePlanos  *int
	Status        status.UserStatus
}

// ProfileUpdate carries the fields a teacher may change on their profile.
type ProfileUpdate struct {
	ProfessorNome   string
	NumeroAgente    string
	Biografia       string
	Especializacoes string
	FotoURL         string
	Escola          string
	Provincia       string
	Municipio       string
}

// UsersStore abstracts user account storage
type UsersStore interface {
	// FindByID returns ErrUserNotFound when the id is unknown.
	FindByID(id int64) (*model.User, error)

	// FindByIdentifier matches identifier against email or telefone.
	FindByIdentifier(identifier string) (*model.User, error)

	FindByEmail(email string) (*model.User, error)

	// Create inserts the user and sets its ID.
	// Returns ErrDuplicateUser if the email or telefone exists.
	Create(user *model.User) error

	// List returns every user ordered by id.
	List() ([]model.User, error)

	UpdateAdmin(id int64, update UserAdminUpdate) error
	UpdatePassword(id int64, hash string) error
	UpdateProfile(id int64, update ProfileUpdate) (*model.User, error)

	// IncrementCredits adds one consumed plan to a non-admin user and
	// returns the updated user. Admin users are returned unchanged.
	IncrementCredits(id int64) (*model.User, error)

	// Delete removes a non-admin user together with their rows.
	Delete(id int64) error
}
