package auth

import "testing"

func TestAllowed(t *testing.T) {
	cases := []struct {
		role Role
		op   Operation
		want bool
	}{
		// guards can only search
		{RoleGuard, OpSearchVehicle, true},
		{RoleGuard, OpRegisterAccount, false},
		{RoleGuard, OpCreateVehicle, false},
		{RoleGuard, OpListVehicles, false},
		{RoleGuard, OpDeleteVehicle, false},
		// admins manage vehicles and guards but never delete
		{RoleAdmin, OpRegisterAccount, true},
		{RoleAdmin, OpCreateVehicle, true},
		{RoleAdmin, OpListVehicles, true},
		{RoleAdmin, OpSearchVehicle, true},
		{RoleAdmin, OpDeleteVehicle, false},
		// superadmin can do everything
		{RoleSuperadmin, OpRegisterAccount, true},
		{RoleSuperadmin, OpCreateVehicle, true},
		{RoleSuperadmin, OpListVehicles, true},
		{RoleSuperadmin, OpSearchVehicle, true},
		{RoleSuperadmin, OpDeleteVehicle, true},
	}
	for _, tc := range cases {
		if got := Allowed(tc.role, tc.op); got != tc.want {
			t.Errorf("Allowed(%s, %s) = %v, want %v", tc.role, tc.op, got, tc.want)
		}
	}
	if Allowed("visitor", OpSearchVehicle) {
		t.Error("unknown role must be denied")
	}
	if Allowed(RoleSuperadmin, "vehicle.teleport") {
		t.Error("unknown operation must be denied")
	}
}

func TestParseRole(t *testing.T) {
	for in, want := range map[string]Role{
		"superadmin": RoleSuperadmin,
		"Admin":      RoleAdmin,
		" GUARD ":    RoleGuard,
	} {
		got, ok := ParseRole(in)
		if !ok || got != want {
			t.Errorf("ParseRole(%q) = (%q, %v), want (%q, true)", in, got, ok, want)
		}
	}
	for _, in := range []string{"", "root", "super admin"} {
		if _, ok := ParseRole(in); ok {
			t.Errorf("ParseRole(%q) should fail", in)
		}
	}
}

func TestAssignable(t *testing.T) {
	cases := []struct {
		actor, requested Role
		want             bool
	}{
		{RoleSuperadmin, RoleAdmin, true},
		{RoleSuperadmin, RoleGuard, true},
		{RoleSuperadmin, RoleSuperadmin, false}, // only bootstrap mints a superadmin
		{RoleAdmin, RoleGuard, true},
		{RoleAdmin, RoleAdmin, false}, // no peer minting
		{RoleAdmin, RoleSuperadmin, false},
		{RoleGuard, RoleGuard, false}, // guards register nobody
	}
	for _, tc := range cases {
		if got := Assignable(tc.actor, tc.requested); got != tc.want {
			t.Errorf("Assignable(%s, %s) = %v, want %v", tc.actor, tc.requested, got, tc.want)
		}
	}
}
