package roles

import (
	"context"
	"errors"
	"testing"
)

type fakeRoster struct {
	staff bool
	err   error
}

func (f fakeRoster) IsStaff(ctx context.Context, userNumber int64) (bool, error) {
	return f.staff, f.err
}

type fakeRoleService struct {
	scientist bool
}

func (f fakeRoleService) IsInstrumentScientist(ctx context.Context, userNumber int64) bool {
	return f.scientist
}

func TestResolver_ORSemantics(t *testing.T) {
	cases := []struct {
		name      string
		staff     bool
		scientist bool
		want      Role
	}{
		{"neither", false, false, RoleUser},
		{"roster only", true, false, RoleStaff},
		{"role service only", false, true, RoleStaff},
		{"both", true, true, RoleStaff},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewResolver(fakeRoster{staff: tc.staff}, fakeRoleService{scientist: tc.scientist})
			role, err := r.Resolve(context.Background(), 1234)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if role != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, role)
			}
		})
	}
}

func TestResolver_RosterErrorIsFatal(t *testing.T) {
	rosterErr := errors.New("db unreachable")
	r := NewResolver(fakeRoster{err: rosterErr}, fakeRoleService{scientist: true})

	_, err := r.Resolve(context.Background(), 1234)
	if !errors.Is(err, rosterErr) {
		t.Fatalf("expected roster error to surface, got %v", err)
	}
}
