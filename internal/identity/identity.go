package identity

import (
	"context"
	"errors"
)

// Credentials are the facility account credentials presented at login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Identity is what the provider resolves a credential pair to. It is used
// once to pack an access token and is not persisted.
type Identity struct {
	UserNumber  int64
	DisplayName string
}

var (
	// ErrBadCredentials means the provider rejected the username/password.
	ErrBadCredentials = errors.New("bad credentials")

	// ErrProvider covers every other failure talking to the provider.
	ErrProvider = errors.New("identity provider error")
)

// Exchange trades credentials for a verified identity.
type Exchange interface {
	Authenticate(ctx context.Context, creds Credentials) (Identity, error)
}
