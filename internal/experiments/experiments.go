package experiments

import (
	"context"
	"errors"
)

// ErrAllocations means the proposal-allocations API could not be queried
// or returned an unusable response.
var ErrAllocations = errors.New("proposal allocations lookup failed")

// Allocations resolves the experiment (RB) numbers a user is attached to.
type Allocations interface {
	ExperimentsFor(ctx context.Context, userNumber int64) ([]int, error)
}
