package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fiaisis/fia-auth/internal/identity"
	"github.com/fiaisis/fia-auth/internal/roles"
	"github.com/fiaisis/fia-auth/internal/token"
)

// ErrMissingRefreshToken is raised when the refresh use case is invoked
// without a refresh token cookie at all, as opposed to with an invalid one.
var ErrMissingRefreshToken = errors.New("missing refresh token")

// LoginResult is what a successful login hands back to the transport
// layer: the access token for the response body, the refresh token for the
// cookie, and the resolved role for observability.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	Role         roles.Role
}

// Service orchestrates the three session use cases. It is stateless; every
// request stands alone.
type Service struct {
	exchange identity.Exchange
	resolver *roles.Resolver
	codec    *token.Codec
	log      *slog.Logger

	// now is injectable for tests.
	now func() time.Time
}

func NewService(exchange identity.Exchange, resolver *roles.Resolver, codec *token.Codec, log *slog.Logger) *Service {
	return &Service{
		exchange: exchange,
		resolver: resolver,
		codec:    codec,
		log:      log,
		now:      time.Now,
	}
}

// Login exchanges credentials for a verified identity, resolves the role
// fresh, and mints an independent access/refresh token pair. Any failure
// that is not a credential rejection is reported as a provider error.
func (s *Service) Login(ctx context.Context, creds identity.Credentials) (LoginResult, error) {
	id, err := s.exchange.Authenticate(ctx, creds)
	if err != nil {
		if errors.Is(err, identity.ErrBadCredentials) {
			return LoginResult{}, err
		}
		return LoginResult{}, classifyProviderError(err)
	}

	role, err := s.resolver.Resolve(ctx, id.UserNumber)
	if err != nil {
		s.log.Error("role resolution failed", "user_number", id.UserNumber, "err", err)
		return LoginResult{}, classifyProviderError(err)
	}

	now := s.now()
	access, err := s.codec.MintAccessToken(now, id, role)
	if err != nil {
		return LoginResult{}, classifyProviderError(err)
	}
	refresh, err := s.codec.MintRefreshToken(now)
	if err != nil {
		return LoginResult{}, classifyProviderError(err)
	}

	return LoginResult{
		AccessToken:  access.String(),
		RefreshToken: refresh.String(),
		Role:         role,
	}, nil
}

// VerifyAccessToken checks that an access token was issued by this service
// and has not expired.
func (s *Service) VerifyAccessToken(signedString string) error {
	access, err := s.codec.LoadAccessToken(signedString)
	if err != nil {
		s.log.Warn("access token failed to load", "err", err)
		return err
	}
	if err := access.Verify(s.now()); err != nil {
		s.log.Warn("access token failed verification", "err", err)
		return err
	}
	return nil
}

// RefreshAccessToken re-issues an access token that is still within its
// validity window, gated on a live refresh token. The access token is
// loaded without an expiry check, but Refresh re-verifies with expiry
// enforced, so a lapsed access token is rejected rather than revived.
func (s *Service) RefreshAccessToken(accessString, refreshString string) (string, error) {
	if refreshString == "" {
		return "", ErrMissingRefreshToken
	}

	access, err := s.codec.LoadAccessToken(accessString)
	if err != nil {
		s.log.Warn("access token failed to load for refresh", "err", err)
		return "", err
	}

	now := s.now()
	refresh, err := s.codec.LoadRefreshToken(now, refreshString)
	if err != nil {
		s.log.Warn("refresh token rejected", "err", err)
		return "", err
	}
	if err := refresh.Verify(now); err != nil {
		s.log.Warn("refresh token failed verification", "err", err)
		return "", err
	}

	if err := access.Refresh(now); err != nil {
		s.log.Warn("access token refresh rejected", "err", err)
		return "", err
	}
	return access.String(), nil
}

// classifyProviderError keeps already-classified failures as they are and
// folds anything unexpected into the provider-error kind.
func classifyProviderError(err error) error {
	if errors.Is(err, identity.ErrProvider) {
		return err
	}
	return fmt.Errorf("%w: %v", identity.ErrProvider, err)
}
