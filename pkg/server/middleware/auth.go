package middleware

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/ppa-angola/portal-pedagogico/pkg/authenticator"
	"github.com/ppa-angola/portal-pedagogico/pkg/identity"
	"github.com/ppa-angola/portal-pedagogico/pkg/model"
	"github.com/ppa-angola/portal-pedagogico/pkg/server/store"
	"github.com/ppa-angola/portal-pedagogico/pkg/session"
)

// Messages returned to the client on authentication failures.
const (
	MsgAuthRequired = "Autenticação necessária"
	MsgInvalidToken = "Token inválido"
	MsgExpired      = "Sessão expirada"
	MsgForbidden    = "Acesso negado"

	MsgPending             = "A sua conta aguarda aprovação do administrador."
	MsgInactive            = "Conta inactiva. Contacte o administrador."
	MsgSubscriptionExpired = "Sua assinatura expirou. Por favor, renove seu plano."
	MsgInternal            = "Erro interno do servidor"
)

// TokenParser verifies a bearer token.
type TokenParser interface {
	Parse(token string) (*session.Claims, error)
}

// UserLookup loads the account a token was issued for.
type UserLookup interface {
	FindByID(id int64) (*model.User, error)
}

// Authenticator is middleware that validates session tokens
type Authenticator struct {
	Sessions TokenParser

	// Users, when set, is read on every request so that blocking,
	// deactivating or expiring an account revokes its open sessions.
	Users UserLookup

	now func() time.Time
}

// NewAuthenticator creates a new session authenticator middleware
func NewAuthenticator(sessions TokenParser) *Authenticator {
	return &Authenticator{Sessions: sessions, now: time.Now}
}

// WithUsers makes the middleware check the account state on each request.
func (a *Authenticator) WithUsers(users UserLookup) *Authenticator {
	a.Users = users
	return a
}

// Middleware returns an HTTP middleware that validates bearer tokens and
// stores the caller's identity in the request context.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, MsgAuthRequired)
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			writeError(w, http.StatusUnauthorized, MsgInvalidToken)
			return
		}

		claims, err := a.Sessions.Parse(strings.TrimSpace(token))
		if err != nil {
			if errors.Is(err, session.ErrExpired) {
				writeError(w, http.StatusUnauthorized, MsgExpired)
				return
			}
			writeError(w, http.StatusUnauthorized, MsgInvalidToken)
			return
		}

		id, err := identity.FromClaims(claims)
		if err != nil {
			writeError(w, http.StatusUnauthorized, MsgInvalidToken)
			return
		}
		if a.Users != nil {
			code, msg := a.checkAccount(id)
			if code != 0 {
				writeError(w, code, msg)
				return
			}
		}
		id.WithRemoteIP(ClientIP(r)).WithRequestID(w.Header().Get(RequestIDHeader))

		next.ServeHTTP(w, r.WithContext(identity.Set(r.Context(), id)))
	})
}

// checkAccount reloads the user behind id and returns a non-zero status
// when the account may no longer be used. The admin flag is refreshed from
// the stored account.
func (a *Authenticator) checkAccount(id *identity.Identity) (int, string) {
	user, err := a.Users.FindByID(id.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return http.StatusUnauthorized, MsgInvalidToken
		}
		return http.StatusInternalServerError, MsgInternal
	}

	now := time.Now
	if a.now != nil {
		now = a.now
	}
	switch err := authenticator.CheckAccount(user, now()); {
	case errors.Is(err, authenticator.ErrExpired):
		return http.StatusForbidden, MsgSubscriptionExpired
	case errors.Is(err, authenticator.ErrPending):
		return http.StatusForbidden, MsgPending
	case errors.Is(err, authenticator.ErrInactive):
		return http.StatusForbidden, MsgInactive
	}

	id.IsAdmin = user.IsAdmin
	return 0, ""
}

// RequireAdmin rejects callers whose identity is not an administrator. It
// must run after Authenticator.Middleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, MsgAuthRequired)
			return
		}
		if !id.IsAdmin {
			writeError(w, http.StatusForbidden, MsgForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClientIP returns the caller address, preferring the first X-Forwarded-For
// hop.
func ClientIP(r *http.Request) net.IP {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return net.ParseIP(host)
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
