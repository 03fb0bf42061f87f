// Package queue contains the message payloads exchanged over the broker and
// the background consumer that feeds the society office's pass-event log.
package queue

// PassIssuedEvent is published when a vehicle pass is registered. It carries
// enough for downstream consumers (printed pass slips, notices to the flat
// owner) without querying the primary database.
type PassIssuedEvent struct {
	EventID       string `json:"event_id"` // uuid, for de-duplication by consumers
	VehicleID     uint64 `json:"vehicle_id"`
	VehicleNumber string `json:"vehicle_number"`
	PassNumber    string `json:"pass_number"`
	OwnerName     string `json:"owner_name"`
	FlatNumber    string `json:"flat_number"`
	ValidTill     string `json:"valid_till"`
	IssuedBy      uint64 `json:"issued_by"` // account id of the registering admin
	IssuedAt      string `json:"issued_at"`
}

// PassRevokedEvent is published when a vehicle record is deleted.
type PassRevokedEvent struct {
	EventID       string `json:"event_id"`
	VehicleID     uint64 `json:"vehicle_id"`
	VehicleNumber string `json:"vehicle_number"`
	PassNumber    string `json:"pass_number"`
	RevokedBy     uint64 `json:"revoked_by"`
	RevokedAt     string `json:"revoked_at"`
}
