package authenticator

import (
	"context"
	"errors"
	"time"

	"github.com/ppa-angola/portal-pedagogico/pkg/model"
	"github.com/ppa-angola/portal-pedagogico/pkg/status"
)

var (
	// ErrInvalidCredentials is returned for unknown identifiers and wrong
	// passwords alike
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrExpired is returned when a teacher's subscription has ended
	ErrExpired = errors.New("subscription expired")

	// ErrPending is returned while the account awaits approval
	ErrPending = errors.New("account pending approval")

	// ErrInactive is returned for blocked or deactivated accounts
	ErrInactive = errors.New("account inactive")
)

// Authenticator defines the interface for login methods
type Authenticator interface {
	// Name returns the authenticator name (e.g., "password")
	Name() string

	// Authenticate validates credentials and returns the user on success
	Authenticate(ctx context.Context, input Input) (*model.User, error)
}

// Input contains the input for authentication
type Input struct {
	// Identifier is an e-mail address or telefone
	Identifier  string
	Credentials []byte
	ClientIP    string
}

// CheckAccount reports whether the account may use the portal at now. Both
// login and every authenticated request apply it, so a blocked or expired
// teacher loses access without waiting for the token to lapse.
func CheckAccount(user *model.User, now time.Time) error {
	if user.IsExpired(now) {
		return ErrExpired
	}
	if user.IsAdmin {
		return nil
	}
	switch user.Status {
	case status.UserPendente:
		return ErrPending
	case status.UserInativo, status.UserBloqueado:
		return ErrInactive
	}
	return nil
}
