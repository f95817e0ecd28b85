package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RefreshToken is the long-lived rotation credential. It carries no
// identity and exists only to prove continued authorization within its
// own validity window.
type RefreshToken struct {
	codec  *Codec
	claims RefreshClaims
	signed string
}

// MintRefreshToken signs a refresh token expiring refreshTTL from now.
// There is no unbound state: a refresh token has no identity to wait for.
func (c *Codec) MintRefreshToken(now time.Time) (*RefreshToken, error) {
	claims := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(c.refreshTTL)),
		},
	}
	signed, err := c.sign(claims)
	if err != nil {
		return nil, err
	}
	return &RefreshToken{codec: c, claims: claims, signed: signed}, nil
}

// LoadRefreshToken decodes WITH expiry enforced: unlike access tokens, a
// refresh token that is structurally invalid, badly signed, or expired
// fails immediately at load time.
func (c *Codec) LoadRefreshToken(now time.Time, signedString string) (*RefreshToken, error) {
	var claims RefreshClaims
	if err := c.decode(signedString, &claims, true, now); err != nil {
		return nil, err
	}
	return &RefreshToken{codec: c, claims: claims, signed: signedString}, nil
}

// Verify re-asserts the load-time check before the token is used in the
// refresh flow. Idempotent.
func (t *RefreshToken) Verify(now time.Time) error {
	var claims RefreshClaims
	return t.codec.decode(t.signed, &claims, true, now)
}

func (t *RefreshToken) String() string { return t.signed }
