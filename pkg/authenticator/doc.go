// Package authenticator defines the login contract used by the auth
// endpoints.
//
// Implementations resolve an identifier and credentials to a user, or fail
// with one of the sentinel errors so handlers can pick the right message:
//
//	user, err := auth.Authenticate(ctx, authenticator.Input{
//	    Identifier:  "923000000",
//	    Credentials: []byte(password),
//	})
//	switch {
//	case errors.Is(err, authenticator.ErrInvalidCredentials): // 401
//	case errors.Is(err, authenticator.ErrExpired):            // 403
//	}
//
// The password subpackage checks bcrypt hashes stored in the users table.
package authenticator
