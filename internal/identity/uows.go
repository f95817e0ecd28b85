package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/fiaisis/fia-auth/internal/config"
)

const exchangeTimeout = 30 * time.Second

// UOWSExchange authenticates against the user office web service's
// sessions endpoint.
type UOWSExchange struct {
	baseURL string
	client  *http.Client
	log     *slog.Logger
}

func NewUOWSExchange(cfg config.UOWSConfig, log *slog.Logger) *UOWSExchange {
	return &UOWSExchange{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: exchangeTimeout},
		log:     log,
	}
}

type sessionResponse struct {
	UserID      int64  `json:"userId"`
	DisplayName string `json:"displayName"`
}

func (e *UOWSExchange) Authenticate(ctx context.Context, creds Credentials) (Identity, error) {
	body, err := json.Marshal(creds)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/v0/sessions", bytes.NewReader(body))
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		e.log.Error("user office session request failed", "err", err)
		return Identity{}, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		var session sessionResponse
		if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
			return Identity{}, fmt.Errorf("%w: decoding session response: %v", ErrProvider, err)
		}
		name := session.DisplayName
		if name == "" {
			name = creds.Username
		}
		return Identity{UserNumber: session.UserID, DisplayName: name}, nil
	case http.StatusUnauthorized:
		return Identity{}, ErrBadCredentials
	default:
		e.log.Error("unexpected user office session status", "status", resp.StatusCode)
		return Identity{}, fmt.Errorf("%w: unexpected status %d", ErrProvider, resp.StatusCode)
	}
}
