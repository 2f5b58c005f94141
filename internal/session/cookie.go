package session

import (
	"fmt"
	"net/http"

	"github.com/gorilla/securecookie"

	appErr "github.com/mkarlsson/webdemo/internal/pkg/errors"
)

const (
	cookieName = "user-session"

	// The cookie itself is the durable session state; its lifetime bounds
	// the session.
	cookieMaxAge = 30 * 24 * 60 * 60
)

// CookieAuthenticator stores the identity in a cookie that is encrypted
// and signed with two independent keys. There is no server-side session
// table to revoke from; clearing the cookie is the only logout.
type CookieAuthenticator struct {
	codec  *securecookie.SecureCookie
	secure bool
}

// NewCookieAuthenticator builds the cookie strategy. secure controls the
// Secure cookie flag and must only be false for local plaintext-HTTP
// development.
func NewCookieAuthenticator(signingKey, encryptionKey []byte, secure bool) *CookieAuthenticator {
	codec := securecookie.New(signingKey, encryptionKey)
	codec.MaxAge(cookieMaxAge)
	return &CookieAuthenticator{codec: codec, secure: secure}
}

func (a *CookieAuthenticator) Issue(w http.ResponseWriter, ident Identity) (string, error) {
	encoded, err := a.codec.Encode(cookieName, ident)
	if err != nil {
		return "", fmt.Errorf("encode session cookie: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		Secure:   a.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return "", nil
}

func (a *CookieAuthenticator) Validate(r *http.Request) (Identity, error) {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return Identity{}, appErr.ErrUnauthorized
	}
	var ident Identity
	if err := a.codec.Decode(cookieName, cookie.Value, &ident); err != nil {
		return Identity{}, appErr.ErrUnauthorized
	}
	return ident, nil
}

func (a *CookieAuthenticator) Invalidate(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
