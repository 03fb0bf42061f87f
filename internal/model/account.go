package model

import "time"

// Account represents a row in the `accounts` table. Accounts are the staff
// of the society office: the single bootstrapped superadmin, the admins it
// creates and the gate guards created by either. The json tags are omitted
// because these structs are used by the repository layer; handlers define
// their own response types.
//
// Fields:
//  ID           – primary key identifier of the account.
//  Name         – display name.
//  Mobile       – unique mobile number, used as the login key.
//  PasswordHash – bcrypt hashed password; the plaintext is never stored.
//  Role         – one of "superadmin", "admin", "guard".
//  Designation  – job title shown in the app (required at registration).
//  Address      – postal address (required at registration).
//  Email        – optional contact email.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type Account struct {
	ID           uint64    // accounts.id
	Name         string    // accounts.name
	Mobile       string    // accounts.mobile
	PasswordHash string    // accounts.password_hash
	Role         string    // accounts.role
	Designation  string    // accounts.designation
	Address      string    // accounts.address
	Email        string    // accounts.email
	CreatedAt    time.Time // accounts.created_at
	UpdatedAt    time.Time // accounts.updated_at
}
