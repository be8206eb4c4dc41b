// Package identity carries the authenticated user through a request.
//
// The auth middleware builds an Identity from the verified session claims
// and stores it in the request context. Handlers read it back to enforce
// ownership:
//
//	id, ok := identity.Get(r.Context())
//	if !ok || !id.CanAccess(userID) {
//	    // 403
//	}
package identity
