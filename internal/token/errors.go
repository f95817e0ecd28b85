package token

import (
	"errors"
	"fmt"
)

// ErrBadToken is the umbrella error for every token failure the service
// reports to callers. The boundary maps it to a generic Forbidden; the
// wrapped variants below exist so logs can tell the cases apart.
var ErrBadToken = errors.New("bad token")

var (
	ErrMalformed    = fmt.Errorf("%w: malformed", ErrBadToken)
	ErrBadSignature = fmt.Errorf("%w: bad signature", ErrBadToken)
	ErrExpired      = fmt.Errorf("%w: expired", ErrBadToken)
)
