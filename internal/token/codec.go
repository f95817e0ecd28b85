package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fiaisis/fia-auth/internal/config"
)

// Codec signs and decodes both token kinds with the process-wide HS256
// secret. It holds no mutable state and is safe for concurrent use.
type Codec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewCodec(cfg config.AuthConfig) (*Codec, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.AccessTokenTTL <= 0 {
		return nil, errors.New("access token TTL must be positive")
	}
	return &Codec{
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: config.RefreshTokenTTL,
	}, nil
}

func (c *Codec) sign(claims jwt.Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// decode parses and signature-checks signedString into claims. Expiry is
// validated only when verifyExpiry is set, but a missing exp claim is a
// decode failure regardless: every token this service issues carries one.
func (c *Codec) decode(signedString string, claims jwt.Claims, verifyExpiry bool, now time.Time) error {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	_, err := parser.ParseWithClaims(signedString, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		return classifyParseError(err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return ErrMalformed
	}
	if verifyExpiry && now.After(exp.Time) {
		return ErrExpired
	}
	return nil
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return errors.Join(ErrBadSignature, err)
	case errors.Is(err, jwt.ErrTokenMalformed):
		return errors.Join(ErrMalformed, err)
	default:
		return errors.Join(ErrMalformed, err)
	}
}
