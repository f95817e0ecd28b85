package roles

// Role differentiates between regular users and staff. Staff are assumed
// to see all data; the distinction is embedded in access tokens at mint
// time and never trusted from caller input.
type Role string

const (
	RoleUser  Role = "user"
	RoleStaff Role = "staff"
)
