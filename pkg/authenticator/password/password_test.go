package password

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ppa-angola/portal-pedagogico/pkg/authenticator"
	"github.com/ppa-angola/portal-pedagogico/pkg/db/dbtest"
	"github.com/ppa-angola/portal-pedagogico/pkg/model"
	"github.com/ppa-angola/portal-pedagogico/pkg/server/store"
	gormstore "github.com/ppa-angola/portal-pedagogico/pkg/server/store/gorm"
	"github.com/ppa-angola/portal-pedagogico/pkg/status"
)

// mockUsers implements the lookup part of store.UsersStore
type mockUsers struct {
	store.UsersStore
	mock.Mock
}

func (m *mockUsers) FindByIdentifier(identifier string) (*model.User, error) {
	args := m.Called(identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func TestHash(t *testing.T) {
	h, err := Hash("segredo")
	require.NoError(t, err)
	assert.NotEqual(t, "segredo", h)
	assert.Contains(t, h, "$2a$")
}

func TestAuthenticate(t *testing.T) {
	hash, err := Hash("segredo")
	require.NoError(t, err)
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		user     *model.User
		findErr  error
		password string
		wantErr  error
	}{
		{"active teacher", &model.User{ID: 1, Password: hash, Status: status.UserAtivo}, nil, "segredo", nil},
		{"wrong password", &model.User{ID: 1, Password: hash, Status: status.UserAtivo}, nil, "errado", authenticator.ErrInvalidCredentials},
		{"unknown user", nil, store.ErrUserNotFound, "segredo", authenticator.ErrInvalidCredentials},
		{"expired", &model.User{ID: 1, Password: hash, Status: status.UserAtivo, DataExpiracao: "2026-04-01"}, nil, "segredo", authenticator.ErrExpired},
		{"pending", &model.User{ID: 1, Password: hash, Status: status.UserPendente}, nil, "segredo", authenticator.ErrPending},
		{"blocked", &model.User{ID: 1, Password: hash, Status: status.UserBloqueado}, nil, "segredo", authenticator.ErrInactive},
		{"inactive", &model.User{ID: 1, Password: hash, Status: status.UserInativo}, nil, "segredo", authenticator.ErrInactive},
		{"admin ignores status and expiry", &model.User{ID: 1, Password: hash, IsAdmin: true, Status: status.UserPendente, DataExpiracao: "2020-01-01"}, nil, "segredo", nil},
		{"no password set", &model.User{ID: 1, Status: status.UserAtivo}, nil, "segredo", authenticator.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &mockUsers{}
			users.On("FindByIdentifier", "ana@escola.ao").Return(tt.user, tt.findErr)

			a := New(users)
			a.now = func() time.Time { return now }

			user, err := a.Authenticate(context.Background(), authenticator.Input{
				Identifier:  "ana@escola.ao",
				Credentials: []byte(tt.password),
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.user.ID, user.ID)
		})
	}
}

func TestAuthenticate_StoreError(t *testing.T) {
	users := &mockUsers{}
	users.On("FindByIdentifier", "x").Return(nil, errors.New("disk I/O error"))

	_, err := New(users).Authenticate(context.Background(), authenticator.Input{Identifier: "x", Credentials: []byte("y")})
	require.Error(t, err)
	assert.NotErrorIs(t, err, authenticator.ErrInvalidCredentials)
}

func TestAuthenticate_EmptyInput(t *testing.T) {
	a := New(&mockUsers{})
	_, err := a.Authenticate(context.Background(), authenticator.Input{})
	assert.ErrorIs(t, err, authenticator.ErrInvalidCredentials)
	assert.Equal(t, "password", a.Name())
}

func TestReset(t *testing.T) {
	users := gormstore.NewUsersStore(dbtest.New(t, nil))
	email := "ana@escola.ao"
	u := &model.User{Email: &email, Password: "old", Status: status.UserAtivo}
	require.NoError(t, users.Create(u))

	plain, err := Reset(users, u.ID)
	require.NoError(t, err)
	assert.Len(t, plain, 8)

	got, err := New(users).Authenticate(context.Background(), authenticator.Input{
		Identifier:  email,
		Credentials: []byte(plain),
	})
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestEnsureAdmin(t *testing.T) {
	users := gormstore.NewUsersStore(dbtest.New(t, nil))

	created, err := EnsureAdmin(users, "", "x")
	require.NoError(t, err)
	assert.False(t, created)

	created, err = EnsureAdmin(users, "admin@ppa.ao", "segredo")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = EnsureAdmin(users, "admin@ppa.ao", "outra")
	require.NoError(t, err)
	assert.False(t, created)

	admin, err := users.FindByEmail("admin@ppa.ao")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
	assert.Equal(t, status.UserAtivo, admin.Status)
	assert.NotEqual(t, "segredo", admin.Password)
}
