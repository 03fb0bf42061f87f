// Package repository defines error values reused across repositories.
// These sentinels let handlers distinguish failure kinds without parsing
// driver errors themselves: duplicate-key violations are translated here,
// at the store boundary, and never leak upward as generic failures.
package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a lookup or delete targets a row that does
// not exist. For plate search this is a normal outcome, not a fault.
var ErrNotFound = errors.New("not found")

// ErrMobileExists is returned when an account insert collides with an
// existing mobile number. Handlers translate this into HTTP 409.
var ErrMobileExists = errors.New("mobile already exists")

// ErrDuplicateVehicleNumber is returned when a vehicle insert collides on
// the normalized plate.
var ErrDuplicateVehicleNumber = errors.New("vehicle number already exists")

// ErrDuplicatePassNumber is returned when a vehicle insert collides on the
// pass number.
var ErrDuplicatePassNumber = errors.New("pass number already exists")

// duplicateKey reports whether err is a MySQL duplicate-entry error (1062)
// on an index whose name contains key. The index name appears in the
// driver's error message ("... for key 'vehicles.uq_vehicles_pass'").
func duplicateKey(err error, key string) bool {
	var me *mysql.MySQLError
	if !errors.As(err, &me) || me.Number != 1062 {
		return false
	}
	return strings.Contains(me.Message, key)
}
