// Package session issues and verifies the bearer tokens handed out at login.
//
// Tokens are HS256 JWTs. The subject is the user id and the "adm" claim
// carries the administrator flag so authorization checks need no database
// round trip.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ppa-angola/portal-pedagogico/pkg/crypt"
)

// Issuer is the iss claim of every token.
const Issuer = "ppa"

var (
	// ErrExpired is returned for tokens past their exp claim
	ErrExpired = errors.New("session expired")

	// ErrInvalid is returned for malformed or badly signed tokens
	ErrInvalid = errors.New("invalid session token")
)

// Claims are the JWT claims of a session token.
type Claims struct {
	jwt.RegisteredClaims
	Admin bool `json:"adm"`
}

// UserID parses the subject claim.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: bad subject %q", ErrInvalid, c.Subject)
	}
	return id, nil
}

// Manager signs and verifies session tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager returns a Manager. An empty secret is replaced by a random one,
// which invalidates sessions on restart; ok reports whether the given secret
// was used.
func NewManager(secret string, ttl time.Duration) (m *Manager, ok bool, err error) {
	key := []byte(secret)
	ok = len(key) > 0
	if !ok {
		key, err = crypt.RandomBytes(32)
		if err != nil {
			return nil, false, err
		}
	}
	return &Manager{secret: key, ttl: ttl, now: time.Now}, ok, nil
}

// WithClock overrides the time source. Used by tests.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// TTL returns the lifetime of issued tokens.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a token for the user.
func (m *Manager) Issue(userID int64, admin bool) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Admin: admin,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, exp, nil
}

// Parse verifies a token and returns its claims.
func (m *Manager) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (interface{}, error) {
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := claims.UserID(); err != nil {
		return nil, err
	}
	return claims, nil
}
