package roles

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Roster answers whether a user number belongs to the local authoritative
// staff roster. A lookup error is fatal to the request in progress.
type Roster interface {
	IsStaff(ctx context.Context, userNumber int64) (bool, error)
}

// RoleService answers whether the remote user office lists an instrument
// scientist designation for the user number. It never fails: any
// non-success, transport error, or timeout degrades to false.
type RoleService interface {
	IsInstrumentScientist(ctx context.Context, userNumber int64) bool
}

// Resolver combines both signals into a single role decision. It holds no
// cache; it is invoked fresh at every token mint so a roster change takes
// effect on the next mint.
type Resolver struct {
	roster      Roster
	roleService RoleService
}

func NewResolver(roster Roster, roleService RoleService) *Resolver {
	return &Resolver{roster: roster, roleService: roleService}
}

// Resolve issues both signal lookups concurrently and returns staff if
// either reports true. The OR is commutative; neither signal short-circuits
// the other.
func (r *Resolver) Resolve(ctx context.Context, userNumber int64) (Role, error) {
	var staff, scientist bool

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		staff, err = r.roster.IsStaff(ctx, userNumber)
		return err
	})
	g.Go(func() error {
		scientist = r.roleService.IsInstrumentScientist(ctx, userNumber)
		return nil
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	if staff || scientist {
		return RoleStaff, nil
	}
	return RoleUser, nil
}
