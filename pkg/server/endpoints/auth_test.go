package endpoints

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppa-angola/portal-pedagogico/pkg/server/middleware"
	"github.com/ppa-angola/portal-pedagogico/pkg/status"
)

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	t.Run("valid credentials return user and token", func(t *testing.T) {
		rec := env.do(t, "POST", "/api/auth/login", LoginRequest{Identifier: "ana@escola.ao", Password: "ana-pass"}, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp LoginResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, env.teacher.ID, resp.User.ID)
		assert.NotEmpty(t, resp.Token)
		assert.NotContains(t, rec.Body.String(), "password")

		claims, err := env.sessions.Parse(resp.Token)
		require.NoError(t, err)
		id, err := claims.UserID()
		require.NoError(t, err)
		assert.Equal(t, env.teacher.ID, id)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := env.do(t, "POST", "/api/auth/login", LoginRequest{Identifier: "ana@escola.ao", Password: "x"}, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, msgInvalidCredentials, errorOf(t, rec))
	})

	t.Run("pending account", func(t *testing.T) {
		env.createUser(t, "novo@escola.ao", "novo-pass", false, status.UserPendente)
		rec := env.do(t, "POST", "/api/auth/login", LoginRequest{Identifier: "novo@escola.ao", Password: "novo-pass"}, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, msgPending, errorOf(t, rec))
	})

	t.Run("expired subscription", func(t *testing.T) {
		u := env.createUser(t, "velho@escola.ao", "velho-pass", false, status.UserAtivo)
		require.NoError(t, env.db.Model(u).Update("data_expiracao", "2020-01-01").Error)

		rec := env.do(t, "POST", "/api/auth/login", LoginRequest{Identifier: "velho@escola.ao", Password: "velho-pass"}, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, msgExpired, errorOf(t, rec))
	})
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "POST", "/api/auth/register", RegisterRequest{
		Telefone:      "923000111",
		Password:      "segredo",
		ProfessorNome: "Maria",
		Escola:        "Escola Primária 12",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	u, err := env.srv.UsersStore.FindByIdentifier("923000111")
	require.NoError(t, err)
	assert.Equal(t, status.UserPendente, u.Status)
	assert.Nil(t, u.Email)

	t.Run("duplicate", func(t *testing.T) {
		rec := env.do(t, "POST", "/api/auth/register", RegisterRequest{Telefone: "923000111", Password: "x"}, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, msgDuplicateUser, errorOf(t, rec))
	})

	t.Run("missing identifier", func(t *testing.T) {
		rec := env.do(t, "POST", "/api/auth/register", RegisterRequest{Password: "x"}, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRequestEmail(t *testing.T) {
	env := newTestEnv(t)
	req := AccessRequest{ProfessorNome: "Maria", Escola: "EP 12", Telefone: "923"}

	t.Run("delivered", func(t *testing.T) {
		rec := env.do(t, "POST", "/api/auth/request-email", req, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, env.notifier.sent, 1)
		assert.Equal(t, "Novo Pedido de Acesso: Maria", env.notifier.sent[0].subject)
		assert.Contains(t, env.notifier.sent[0].body, "E-mail: N/A")
	})

	t.Run("simulated", func(t *testing.T) {
		env.notifier.simulated = true
		defer func() { env.notifier.simulated = false }()

		rec := env.do(t, "POST", "/api/auth/request-email", req, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]interface{}
		decodeBody(t, rec, &body)
		assert.Equal(t, msgMailSimulated, body["message"])
	})

	t.Run("transport failure", func(t *testing.T) {
		env.notifier.err = errors.New("dial tcp: refused")
		defer func() { env.notifier.err = nil }()

		rec := env.do(t, "POST", "/api/auth/request-email", req, nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, msgMailFailed, errorOf(t, rec))
	})
}

func TestForgotPassword(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "POST", "/api/auth/forgot-password", map[string]string{"identifier": "ana@escola.ao"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success  bool   `json:"success"`
		Message  string `json:"message"`
		TempPass string `json:"tempPass"`
	}
	decodeBody(t, rec, &body)
	assert.True(t, body.Success)
	assert.Equal(t, msgTempPassword, body.Message)
	assert.Len(t, body.TempPass, 8)
	require.Len(t, env.notifier.sent, 1)

	login := env.do(t, "POST", "/api/auth/login", LoginRequest{Identifier: "ana@escola.ao", Password: body.TempPass}, nil)
	assert.Equal(t, http.StatusOK, login.Code)

	t.Run("unknown identifier", func(t *testing.T) {
		rec := env.do(t, "POST", "/api/auth/forgot-password", map[string]string{"identifier": "ninguem"}, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, msgUserNotFound, errorOf(t, rec))
	})
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "GET", "/api/auth/me", nil, env.teacher)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		User struct {
			ID int64 `json:"id"`
		} `json:"user"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, env.teacher.ID, body.User.ID)

	t.Run("no token", func(t *testing.T) {
		rec := env.do(t, "GET", "/api/auth/me", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, middleware.MsgAuthRequired, errorOf(t, rec))
	})
}
