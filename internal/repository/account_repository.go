package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/gate-pass-service/internal/model"
)

// AccountRepo persists staff accounts over the `accounts` table.
type AccountRepo struct{ DB *sql.DB }

func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{DB: db} }

const accountCols = "id,name,mobile,password_hash,role,designation,address,email,created_at,updated_at"

// Create inserts an account and returns its ID. The password must already
// be hashed by the caller; this layer never sees plaintext. A collision on
// the mobile unique index comes back as ErrMobileExists.
func (r *AccountRepo) Create(ctx context.Context, a model.Account) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO accounts (name, mobile, password_hash, role, designation, address, email) VALUES (?,?,?,?,?,?,?)",
		a.Name, strings.TrimSpace(a.Mobile), a.PasswordHash, a.Role, a.Designation, a.Address, a.Email)
	if err != nil {
		if duplicateKey(err, "uq_accounts_mobile") {
			return 0, ErrMobileExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByMobile fetches an account by its login mobile number.
func (r *AccountRepo) GetByMobile(ctx context.Context, mobile string) (model.Account, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+accountCols+" FROM accounts WHERE mobile=? LIMIT 1",
		strings.TrimSpace(mobile)))
}

// GetByID fetches an account by id.
func (r *AccountRepo) GetByID(ctx context.Context, id uint64) (model.Account, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+accountCols+" FROM accounts WHERE id=? LIMIT 1", id))
}

// HasRole reports whether at least one account with the given role exists.
// Used by the superadmin bootstrap check.
func (r *AccountRepo) HasRole(ctx context.Context, role string) (bool, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM accounts WHERE role=?", role).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *AccountRepo) scanOne(row *sql.Row) (model.Account, error) {
	var a model.Account
	err := row.Scan(&a.ID, &a.Name, &a.Mobile, &a.PasswordHash, &a.Role,
		&a.Designation, &a.Address, &a.Email, &a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Account{}, ErrNotFound
	}
	return a, err
}
