package identity

import (
	"context"
	"net"
	"time"

	"github.com/ppa-angola/portal-pedagogico/pkg/session"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// Key is the context key for Identity.
	Key ContextKey = "identity"
)

// Identity represents the authenticated user of a request.
type Identity struct {
	// Token claims
	UserID    int64
	IsAdmin   bool
	IssuedAt  time.Time
	ExpiresAt time.Time

	// Request context
	RemoteIP  net.IP
	RequestID string
}

// FromClaims creates an Identity from verified session claims.
func FromClaims(c *session.Claims) (*Identity, error) {
	id, err := c.UserID()
	if err != nil {
		return nil, err
	}

	ident := &Identity{UserID: id, IsAdmin: c.Admin}
	if c.IssuedAt != nil {
		ident.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		ident.ExpiresAt = c.ExpiresAt.Time
	}
	return ident, nil
}

// WithRemoteIP sets the remote IP address.
func (i *Identity) WithRemoteIP(ip net.IP) *Identity {
	i.RemoteIP = ip
	return i
}

// WithRequestID sets the request id used in audit records.
func (i *Identity) WithRequestID(id string) *Identity {
	i.RequestID = id
	return i
}

// CanAccess reports whether the identity may act on rows owned by userID.
func (i *Identity) CanAccess(userID int64) bool {
	return i.IsAdmin || i.UserID == userID
}

// Get retrieves Identity from context.
func Get(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(Key).(*Identity)
	return id, ok
}

// Set stores Identity in context.
func Set(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, Key, id)
}
