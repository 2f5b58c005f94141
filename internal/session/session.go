// Package session carries an authenticated user's identity across requests
// without a server-side store. Two interchangeable strategies implement
// Authenticator: an encrypted+signed cookie and a signed bearer token. The
// deployment variant picks one at startup.
package session

import "net/http"

// Identity is the session payload.
type Identity struct {
	UserID int64 `json:"userId"`
}

// Authenticator issues a session at login, validates it on each request
// and invalidates it at logout. Issue returns a token string for
// token-based strategies and the empty string for cookie-based ones, which
// write to the response instead.
type Authenticator interface {
	Issue(w http.ResponseWriter, ident Identity) (string, error)
	Validate(r *http.Request) (Identity, error)
	Invalidate(w http.ResponseWriter)
}
