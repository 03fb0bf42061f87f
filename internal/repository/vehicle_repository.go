package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/gate-pass-service/internal/model"
)

// VehicleRepo persists pass records over the `vehicles` table.
type VehicleRepo struct{ DB *sql.DB }

func NewVehicleRepo(db *sql.DB) *VehicleRepo { return &VehicleRepo{DB: db} }

const vehicleCols = `id,vehicle_number,pass_number,vehicle_type,owner_name,flat_number,
	dl_or_rc_number,owner_contact,alternate_contact,email,permanent_address,
	flat_owner_name,flat_owner_contact,valid_till,created_at,updated_at`

// Create inserts a vehicle record and returns it with its assigned id.
// VehicleNumber must already be normalized. Uniqueness is not pre-checked
// here: the insert goes straight to the unique indexes so two concurrent
// creates for the same plate or pass cannot both win, and the losing one is
// translated to the matching sentinel by offended index.
func (r *VehicleRepo) Create(ctx context.Context, v model.Vehicle) (model.Vehicle, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO vehicles (vehicle_number, pass_number, vehicle_type, owner_name,
			flat_number, dl_or_rc_number, owner_contact, alternate_contact, email,
			permanent_address, flat_owner_name, flat_owner_contact, valid_till)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		v.VehicleNumber, v.PassNumber, v.VehicleType, v.OwnerName,
		v.FlatNumber, v.DlOrRcNumber, v.OwnerContact, v.AlternateContact, v.Email,
		v.PermanentAddress, v.FlatOwnerName, v.FlatOwnerContact, v.ValidTill)
	if err != nil {
		switch {
		case duplicateKey(err, "uq_vehicles_number"):
			return model.Vehicle{}, ErrDuplicateVehicleNumber
		case duplicateKey(err, "uq_vehicles_pass"):
			return model.Vehicle{}, ErrDuplicatePassNumber
		}
		return model.Vehicle{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Vehicle{}, err
	}
	v.ID = uint64(id)
	return v, nil
}

// List returns all vehicle records in stable insertion order. No
// pagination: a society's fleet is a few hundred rows at most.
func (r *VehicleRepo) List(ctx context.Context) ([]model.Vehicle, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+vehicleCols+" FROM vehicles ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Vehicle, 0, 64)
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// GetByNumber fetches a record by exact normalized plate.
func (r *VehicleRepo) GetByNumber(ctx context.Context, number string) (model.Vehicle, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+vehicleCols+" FROM vehicles WHERE vehicle_number=? LIMIT 1", number)
	v, err := scanVehicle(row)
	if err == sql.ErrNoRows {
		return model.Vehicle{}, ErrNotFound
	}
	return v, err
}

// GetByID fetches a record by id.
func (r *VehicleRepo) GetByID(ctx context.Context, id uint64) (model.Vehicle, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+vehicleCols+" FROM vehicles WHERE id=? LIMIT 1", id)
	v, err := scanVehicle(row)
	if err == sql.ErrNoRows {
		return model.Vehicle{}, ErrNotFound
	}
	return v, err
}

// Delete removes a record by id. ErrNotFound when no row matched.
func (r *VehicleRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM vehicles WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface{ Scan(dest ...any) error }

func scanVehicle(s scanner) (model.Vehicle, error) {
	var v model.Vehicle
	err := s.Scan(&v.ID, &v.VehicleNumber, &v.PassNumber, &v.VehicleType, &v.OwnerName,
		&v.FlatNumber, &v.DlOrRcNumber, &v.OwnerContact, &v.AlternateContact, &v.Email,
		&v.PermanentAddress, &v.FlatOwnerName, &v.FlatOwnerContact, &v.ValidTill,
		&v.CreatedAt, &v.UpdatedAt)
	return v, err
}
