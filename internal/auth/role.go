package auth // auth centralizes roles, operations and the capability table

import "strings"

// Role is the closed set of privilege tiers. The values match what is
// stored in accounts.role and embedded in the JWT "role" claim.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleGuard      Role = "guard"
)

// Operation names a protected action. Authorization decisions are made
// against (Role, Operation) pairs in one place instead of ad-hoc role
// checks scattered across handlers.
type Operation string

const (
	OpRegisterAccount Operation = "account.register"
	OpCreateVehicle   Operation = "vehicle.create"
	OpListVehicles    Operation = "vehicle.list"
	OpSearchVehicle   Operation = "vehicle.search"
	OpDeleteVehicle   Operation = "vehicle.delete"
)

// capabilities is the single source of truth for who may do what.
// Read access does not imply write access: creation and deletion use
// explicit allow-lists rather than the read hierarchy.
var capabilities = map[Operation]map[Role]bool{
	OpRegisterAccount: {RoleSuperadmin: true, RoleAdmin: true},
	OpCreateVehicle:   {RoleSuperadmin: true, RoleAdmin: true},
	OpListVehicles:    {RoleSuperadmin: true, RoleAdmin: true},
	OpSearchVehicle:   {RoleSuperadmin: true, RoleAdmin: true, RoleGuard: true},
	OpDeleteVehicle:   {RoleSuperadmin: true},
}

// Allowed reports whether the given role may perform the operation.
// Unknown roles and unknown operations are both denied.
func Allowed(r Role, op Operation) bool {
	return capabilities[op][r]
}

// ParseRole maps a raw string (claim or payload value) onto a known Role.
// Matching is case-insensitive; unknown values return ok=false.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleSuperadmin:
		return RoleSuperadmin, true
	case RoleAdmin:
		return RoleAdmin, true
	case RoleGuard:
		return RoleGuard, true
	}
	return "", false
}

// Assignable reports whether an actor with the given role may create an
// account with the requested role. Admins may only mint guards; the
// superadmin may mint admins and guards; nobody mints a superadmin at
// runtime (only the bootstrap path does).
func Assignable(actor, requested Role) bool {
	switch actor {
	case RoleSuperadmin:
		return requested == RoleAdmin || requested == RoleGuard
	case RoleAdmin:
		return requested == RoleGuard
	}
	return false
}
