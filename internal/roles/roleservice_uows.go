package roles

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/fiaisis/fia-auth/internal/config"
)

const instrumentScientistRole = "ISIS Instrument Scientist"

// The role lookup is best-effort; a short timeout keeps a slow user office
// from delaying every login.
const roleLookupTimeout = 1 * time.Second

// UOWSRoleService queries the user office web service for a user's role
// entries.
type UOWSRoleService struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     *slog.Logger
}

func NewUOWSRoleService(cfg config.UOWSConfig, log *slog.Logger) *UOWSRoleService {
	return &UOWSRoleService{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: roleLookupTimeout},
		log:     log,
	}
}

type roleEntry struct {
	Name string `json:"name"`
}

// IsInstrumentScientist reports whether the user office lists an
// instrument scientist entry for userNumber. Every failure mode degrades
// to false so a user office outage downgrades privilege instead of
// blocking login.
func (s *UOWSRoleService) IsInstrumentScientist(ctx context.Context, userNumber int64) bool {
	url := fmt.Sprintf("%s/v1/role/%d", s.baseURL, userNumber)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		s.log.Info("role lookup request build failed", "user_number", userNumber, "err", err)
		return false
	}
	req.Header.Set("Authorization", "Api-key "+s.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Info("role lookup failed, treating as not an instrument scientist",
			"user_number", userNumber, "err", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.log.Info("user is not an instrument scientist or the user office is down",
			"user_number", userNumber, "status", resp.StatusCode)
		return false
	}

	var entries []roleEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		s.log.Info("role lookup response undecodable", "user_number", userNumber, "err", err)
		return false
	}
	for _, e := range entries {
		if e.Name == instrumentScientistRole {
			return true
		}
	}
	return false
}
