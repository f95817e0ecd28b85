package token

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/fiaisis/fia-auth/internal/roles"
)

// AccessClaims is the only supported payload shape for access tokens.
// Field names match the wire format consumed by downstream facility
// services, so they must not change casually.
type AccessClaims struct {
	UserNumber int64      `json:"usernumber"`
	Role       roles.Role `json:"role"`
	Username   string     `json:"username"`

	jwt.RegisteredClaims
}

// RefreshClaims carries expiry and nothing else. A refresh token proves
// time-bounded continued authorization; identity is re-derived from the
// access token it is paired with at refresh time.
type RefreshClaims struct {
	jwt.RegisteredClaims
}
