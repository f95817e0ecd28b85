package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fiaisis/fia-auth/internal/identity"
	"github.com/fiaisis/fia-auth/internal/roles"
)

// AccessToken is the short-lived bearer credential carrying identity and
// role. It is self-contained; the server keeps no copy after issuing it.
type AccessToken struct {
	codec  *Codec
	claims AccessClaims
	signed string
}

// MintAccessToken builds and signs an access token for the given identity
// and role, expiring accessTTL from now.
func (c *Codec) MintAccessToken(now time.Time, id identity.Identity, role roles.Role) (*AccessToken, error) {
	claims := AccessClaims{
		UserNumber: id.UserNumber,
		Role:       role,
		Username:   id.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(c.accessTTL)),
		},
	}
	signed, err := c.sign(claims)
	if err != nil {
		return nil, err
	}
	return &AccessToken{codec: c, claims: claims, signed: signed}, nil
}

// LoadAccessToken decodes signedString WITHOUT checking expiry, so that an
// expired access token can still be loaded and handed to Refresh, which
// enforces expiry itself. Malformed or badly signed tokens fail here.
func (c *Codec) LoadAccessToken(signedString string) (*AccessToken, error) {
	var claims AccessClaims
	if err := c.decode(signedString, &claims, false, time.Time{}); err != nil {
		return nil, err
	}
	return &AccessToken{codec: c, claims: claims, signed: signedString}, nil
}

// Verify re-decodes the held string with expiry enforced. This is the sole
// gate for the checkToken use case.
func (t *AccessToken) Verify(now time.Time) error {
	var claims AccessClaims
	return t.codec.decode(t.signed, &claims, true, now)
}

// Refresh extends a still-valid token: it verifies first, then re-stamps
// exp and re-signs in place. An already expired or otherwise invalid token
// is never silently revived.
func (t *AccessToken) Refresh(now time.Time) error {
	if err := t.Verify(now); err != nil {
		return err
	}
	t.claims.ExpiresAt = jwt.NewNumericDate(now.Add(t.codec.accessTTL))
	signed, err := t.codec.sign(t.claims)
	if err != nil {
		return err
	}
	t.signed = signed
	return nil
}

func (t *AccessToken) String() string { return t.signed }

func (t *AccessToken) Claims() AccessClaims { return t.claims }
