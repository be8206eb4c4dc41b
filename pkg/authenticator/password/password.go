// Package password authenticates users against bcrypt hashes in the users
// table.
package password

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ppa-angola/portal-pedagogico/pkg/authenticator"
	"github.com/ppa-angola/portal-pedagogico/pkg/crypt"
	"github.com/ppa-angola/portal-pedagogico/pkg/model"
	"github.com/ppa-angola/portal-pedagogico/pkg/server/store"
	"github.com/ppa-angola/portal-pedagogico/pkg/status"
)

// Ensure Authenticator implements authenticator.Authenticator
var _ authenticator.Authenticator = (*Authenticator)(nil)

// Cost is the bcrypt work factor for new hashes.
const Cost = bcrypt.DefaultCost

// Hash returns the bcrypt hash of a plain password.
func Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(b), nil
}

// Authenticator implements password login
type Authenticator struct {
	users store.UsersStore
	now   func() time.Time
}

// New creates a password authenticator over the users store
func New(users store.UsersStore) *Authenticator {
	return &Authenticator{users: users, now: time.Now}
}

// Name returns the authenticator name
func (a *Authenticator) Name() string {
	return "password"
}

// Authenticate checks the identifier and password, then the account state.
func (a *Authenticator) Authenticate(ctx context.Context, input authenticator.Input) (*model.User, error) {
	if input.Identifier == "" || len(input.Credentials) == 0 {
		return nil, authenticator.ErrInvalidCredentials
	}

	user, err := a.users.FindByIdentifier(input.Identifier)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, authenticator.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authentication failed: %w", err)
	}

	if user.Password == "" {
		return nil, authenticator.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), input.Credentials); err != nil {
		return nil, authenticator.ErrInvalidCredentials
	}

	if err := authenticator.CheckAccount(user, a.now()); err != nil {
		return nil, err
	}
	return user, nil
}

// Reset replaces the user's password with a fresh temporary one and returns
// it in clear text so it can be handed to the user once.
func Reset(users store.UsersStore, userID int64) (string, error) {
	plain, err := crypt.TempPassword()
	if err != nil {
		return "", fmt.Errorf("failed to generate password: %w", err)
	}
	hash, err := Hash(plain)
	if err != nil {
		return "", err
	}
	if err := users.UpdatePassword(userID, hash); err != nil {
		return "", err
	}
	return plain, nil
}

// EnsureAdmin creates an active administrator with the given e-mail unless
// one already exists. It reports whether a user was created.
func EnsureAdmin(users store.UsersStore, email, plain string) (bool, error) {
	if email == "" || plain == "" {
		return false, nil
	}
	if _, err := users.FindByEmail(email); err == nil {
		return false, nil
	} else if !errors.Is(err, store.ErrUserNotFound) {
		return false, err
	}

	hash, err := Hash(plain)
	if err != nil {
		return false, err
	}
	admin := &model.User{
		Email:         &email,
		Password:      hash,
		Status:        status.UserAtivo,
		IsAdmin:       true,
		ProfessorNome: "Administrador",
		PlanoTipo:     "Ilimitado",
	}
	if err := users.Create(admin); err != nil {
		return false, fmt.Errorf("failed to create admin: %w", err)
	}
	return true, nil
}
