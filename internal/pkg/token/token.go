package token

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID int64 `json:"userId"`
	jwtlib.RegisteredClaims
}

// Generate signs a token carrying the user id plus audience, issuer and
// expiry. Expiry is the only invalidation mechanism for issued tokens.
func Generate(userID int64, secret []byte, audience, issuer string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Audience:  jwtlib.ClaimStrings{audience},
			Issuer:    issuer,
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}
	tok := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return tok.SignedString(secret)
}

// Parse verifies the signature, expiry and audience of tokenString and
// returns its claims.
func Parse(tokenString string, secret []byte, audience string) (*Claims, error) {
	tok, err := jwtlib.ParseWithClaims(tokenString, &Claims{},
		func(tok *jwtlib.Token) (interface{}, error) {
			if tok.Method.Alg() != jwtlib.SigningMethodHS256.Alg() {
				return nil, errors.New("unexpected signing method")
			}
			return secret, nil
		},
		jwtlib.WithAudience(audience),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
