package experiments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fiaisis/fia-auth/internal/config"
)

const allocationsTimeout = 30 * time.Second

// GraphQLClient queries the proposal-allocations GraphQL API. The query is
// a single static shape, so no GraphQL client library is needed.
type GraphQLClient struct {
	url    string
	apiKey string
	client *http.Client
	log    *slog.Logger
}

func NewGraphQLClient(cfg config.AllocationsConfig, apiKey string, log *slog.Logger) *GraphQLClient {
	return &GraphQLClient{
		url:    cfg.URL,
		apiKey: apiKey,
		client: &http.Client{Timeout: allocationsTimeout},
		log:    log,
	}
}

type graphQLRequest struct {
	Query string `json:"query"`
}

type proposalsResponse struct {
	Data struct {
		Proposals []struct {
			ReferenceNumber referenceNumber `json:"referenceNumber"`
		} `json:"proposals"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// referenceNumber tolerates the API emitting RB numbers as either JSON
// numbers or quoted strings.
type referenceNumber int

func (n *referenceNumber) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("reference number %q is not an integer", s)
	}
	*n = referenceNumber(v)
	return nil
}

func (g *GraphQLClient) ExperimentsFor(ctx context.Context, userNumber int64) ([]int, error) {
	query := fmt.Sprintf(`{
  proposals(
    filter: {un: "%d", facilities: ["ISIS"], includeWithdrawn: false}
  ) {
    referenceNumber
  }
}`, userNumber)

	body, err := json.Marshal(graphQLRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAllocations, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAllocations, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "token "+g.apiKey)

	g.log.Info("fetching experiments", "user_number", userNumber)
	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Error("allocations request failed", "err", err)
		return nil, fmt.Errorf("%w: %v", ErrAllocations, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.log.Error("allocations responded non-OK", "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", ErrAllocations, resp.StatusCode)
	}

	var parsed proposalsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrAllocations, err)
	}
	if len(parsed.Errors) > 0 {
		g.log.Error("allocations query rejected", "message", parsed.Errors[0].Message)
		return nil, fmt.Errorf("%w: %s", ErrAllocations, parsed.Errors[0].Message)
	}

	numbers := make([]int, 0, len(parsed.Data.Proposals))
	for _, p := range parsed.Data.Proposals {
		numbers = append(numbers, int(p.ReferenceNumber))
	}
	return numbers, nil
}
