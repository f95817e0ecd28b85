package experiments

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fiaisis/fia-auth/internal/config"
)

func newAllocationsServer(t *testing.T, status int, body string) *GraphQLClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "token test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		var req struct {
			Query string `json:"query"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("undecodable request body: %v", err)
		}
		if !strings.Contains(req.Query, `un: "1234"`) {
			t.Errorf("query does not filter on user number: %s", req.Query)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewGraphQLClient(config.AllocationsConfig{URL: srv.URL}, "test-key", slog.Default())
}

func TestGraphQLClient_ParsesReferenceNumbers(t *testing.T) {
	g := newAllocationsServer(t, http.StatusOK,
		`{"data":{"proposals":[{"referenceNumber":"210001"},{"referenceNumber":210002}]}}`)

	numbers, err := g.ExperimentsFor(context.Background(), 1234)
	if err != nil {
		t.Fatalf("experiments: %v", err)
	}
	if len(numbers) != 2 || numbers[0] != 210001 || numbers[1] != 210002 {
		t.Fatalf("unexpected numbers: %v", numbers)
	}
}

func TestGraphQLClient_EmptyProposals(t *testing.T) {
	g := newAllocationsServer(t, http.StatusOK, `{"data":{"proposals":[]}}`)

	numbers, err := g.ExperimentsFor(context.Background(), 1234)
	if err != nil {
		t.Fatalf("experiments: %v", err)
	}
	if len(numbers) != 0 {
		t.Fatalf("expected no numbers, got %v", numbers)
	}
}

func TestGraphQLClient_GraphQLErrors(t *testing.T) {
	g := newAllocationsServer(t, http.StatusOK,
		`{"errors":[{"message":"field does not exist"}]}`)

	_, err := g.ExperimentsFor(context.Background(), 1234)
	if !errors.Is(err, ErrAllocations) {
		t.Fatalf("expected ErrAllocations, got %v", err)
	}
}

func TestGraphQLClient_NonSuccessStatus(t *testing.T) {
	g := newAllocationsServer(t, http.StatusBadGateway, ``)

	_, err := g.ExperimentsFor(context.Background(), 1234)
	if !errors.Is(err, ErrAllocations) {
		t.Fatalf("expected ErrAllocations, got %v", err)
	}
}

func TestGraphQLClient_NonIntegerReference(t *testing.T) {
	g := newAllocationsServer(t, http.StatusOK,
		`{"data":{"proposals":[{"referenceNumber":"RB-21"}]}}`)

	_, err := g.ExperimentsFor(context.Background(), 1234)
	if !errors.Is(err, ErrAllocations) {
		t.Fatalf("expected ErrAllocations, got %v", err)
	}
}
