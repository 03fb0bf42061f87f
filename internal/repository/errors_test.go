package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestDuplicateKey(t *testing.T) {
	dupPass := &mysql.MySQLError{
		Number:  1062,
		Message: "Duplicate entry 'P-100' for key 'vehicles.uq_vehicles_pass'",
	}
	dupPlate := &mysql.MySQLError{
		Number:  1062,
		Message: "Duplicate entry 'KA05MZ1234' for key 'vehicles.uq_vehicles_number'",
	}

	if !duplicateKey(dupPass, "uq_vehicles_pass") {
		t.Error("expected pass duplicate to match its index")
	}
	if duplicateKey(dupPass, "uq_vehicles_number") {
		t.Error("pass duplicate must not match the plate index")
	}
	if !duplicateKey(dupPlate, "uq_vehicles_number") {
		t.Error("expected plate duplicate to match its index")
	}
	// wrapping must not hide the driver error
	if !duplicateKey(fmt.Errorf("insert: %w", dupPlate), "uq_vehicles_number") {
		t.Error("expected wrapped duplicate to match")
	}
	// other error numbers are not duplicates
	if duplicateKey(&mysql.MySQLError{Number: 1451, Message: "foreign key"}, "uq_vehicles_pass") {
		t.Error("non-1062 error must not match")
	}
	if duplicateKey(errors.New("connection refused"), "uq_vehicles_pass") {
		t.Error("plain error must not match")
	}
}
