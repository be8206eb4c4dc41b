package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ppa-angola/portal-pedagogico/pkg/identity"
	"github.com/ppa-angola/portal-pedagogico/pkg/server/middleware"
)

// maxBodyBytes bounds JSON bodies; logos and plans travel inline.
const maxBodyBytes = 50 << 20

const (
	msgInvalidBody = "Pedido inválido"
	msgInternal    = "Erro interno do servidor"
)

var errMissingVar = errors.New("missing route variable")

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

func respondSuccess(w http.ResponseWriter) {
	respondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// decodeJSON reads the request body into v. On failure it writes a 400 and
// returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondWithError(w, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	return true
}

// pathVar returns the unescaped route variable. The router matches on the
// encoded path, so values arrive percent-encoded.
func pathVar(r *http.Request, name string) (string, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return "", errMissingVar
	}
	return url.PathUnescape(raw)
}

func pathInt64(r *http.Request, name string) (int64, error) {
	raw, err := pathVar(r, name)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(raw, 10, 64)
}

// caller returns the authenticated identity set by the session middleware.
func caller(r *http.Request) *identity.Identity {
	id, ok := identity.Get(r.Context())
	if !ok {
		return &identity.Identity{}
	}
	return id
}

// allowUser writes 403 and returns false unless the caller may act on
// userID's data.
func allowUser(w http.ResponseWriter, r *http.Request, userID int64) bool {
	if !caller(r).CanAccess(userID) {
		respondWithError(w, http.StatusForbidden, middleware.MsgForbidden)
		return false
	}
	return true
}

func clientIP(r *http.Request) string {
	if ip := middleware.ClientIP(r); ip != nil {
		return ip.String()
	}
	return ""
}
