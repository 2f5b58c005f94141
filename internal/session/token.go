package session

import (
	"net/http"
	"strings"
	"time"

	appErr "github.com/mkarlsson/webdemo/internal/pkg/errors"
	"github.com/mkarlsson/webdemo/internal/pkg/token"
)

const tokenTTL = 30 * 24 * time.Hour

// TokenAuthenticator carries the identity in a signed bearer token. Expiry
// is the only invalidation mechanism: there is no logout and no
// revocation list.
type TokenAuthenticator struct {
	secret   []byte
	audience string
	issuer   string
}

func NewTokenAuthenticator(secret []byte, audience, issuer string) *TokenAuthenticator {
	return &TokenAuthenticator{secret: secret, audience: audience, issuer: issuer}
}

func (a *TokenAuthenticator) Issue(_ http.ResponseWriter, ident Identity) (string, error) {
	return token.Generate(ident.UserID, a.secret, a.audience, a.issuer, tokenTTL)
}

func (a *TokenAuthenticator) Validate(r *http.Request) (Identity, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return Identity{}, appErr.ErrUnauthorized
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return Identity{}, appErr.ErrUnauthorized
	}
	claims, err := token.Parse(parts[1], a.secret, a.audience)
	if err != nil {
		return Identity{}, appErr.ErrUnauthorized
	}
	return Identity{UserID: claims.UserID}, nil
}

// Invalidate is a no-op: issued tokens stay valid until they expire.
func (a *TokenAuthenticator) Invalidate(_ http.ResponseWriter) {}
