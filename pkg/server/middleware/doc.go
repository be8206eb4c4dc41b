// Package middleware holds the HTTP middleware shared by the API routes:
// request ids, bearer session authentication and the administrator gate.
package middleware
