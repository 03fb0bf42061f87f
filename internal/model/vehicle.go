package model

import "time"

// Vehicle represents a row in the `vehicles` table: one entry pass issued
// for one vehicle. VehicleNumber is stored normalized (uppercase, no
// whitespace or hyphens) and is unique, as is PassNumber; both are enforced
// by unique indexes so concurrent inserts cannot race past the check.
//
// Fields:
//  ID               – primary key identifier of the record.
//  VehicleNumber    – normalized plate, e.g. "MH12AB1234" (unique).
//  PassNumber       – pass sticker number (unique).
//  VehicleType      – free-form type ("Car", "Bike", ...), optional.
//  OwnerName        – vehicle owner.
//  FlatNumber       – flat the vehicle belongs to.
//  DlOrRcNumber     – driving licence or RC book number.
//  OwnerContact     – owner phone number.
//  AlternateContact – optional second phone number.
//  Email            – optional contact email.
//  PermanentAddress – owner's permanent address.
//  FlatOwnerName    – owner of the flat (may differ from the vehicle owner).
//  FlatOwnerContact – optional flat owner phone number.
//  ValidTill        – date the pass stops being valid.
//  CreatedAt        – timestamp of creation.
//  UpdatedAt        – timestamp of last update.
type Vehicle struct {
	ID               uint64    // vehicles.id
	VehicleNumber    string    // vehicles.vehicle_number
	PassNumber       string    // vehicles.pass_number
	VehicleType      string    // vehicles.vehicle_type
	OwnerName        string    // vehicles.owner_name
	FlatNumber       string    // vehicles.flat_number
	DlOrRcNumber     string    // vehicles.dl_or_rc_number
	OwnerContact     string    // vehicles.owner_contact
	AlternateContact string    // vehicles.alternate_contact
	Email            string    // vehicles.email
	PermanentAddress string    // vehicles.permanent_address
	FlatOwnerName    string    // vehicles.flat_owner_name
	FlatOwnerContact string    // vehicles.flat_owner_contact
	ValidTill        time.Time // vehicles.valid_till (DATE)
	CreatedAt        time.Time // vehicles.created_at
	UpdatedAt        time.Time // vehicles.updated_at
}
