package service

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/gate-pass-service/internal/config"
	"github.com/iliyamo/gate-pass-service/internal/model"
	"github.com/iliyamo/gate-pass-service/internal/repository"
	"github.com/iliyamo/gate-pass-service/internal/utils"
)

type fakeBootstrapStore struct {
	accounts []model.Account
	creates  int
}

func (f *fakeBootstrapStore) HasRole(_ context.Context, role string) (bool, error) {
	for _, a := range f.accounts {
		if a.Role == role {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBootstrapStore) Create(_ context.Context, a model.Account) (uint64, error) {
	for _, e := range f.accounts {
		if e.Mobile == a.Mobile {
			return 0, repository.ErrMobileExists
		}
	}
	f.creates++
	a.ID = uint64(len(f.accounts) + 1)
	f.accounts = append(f.accounts, a)
	return a.ID, nil
}

func bootstrapConfig() config.Config {
	return config.Config{
		BcryptCost:       bcrypt.MinCost,
		SuperadminName:   "Root",
		SuperadminMobile: "9999999999",
		SuperadminPass:   "boot-pw",
	}
}

func TestEnsureSuperAdminCreatesOnFirstBoot(t *testing.T) {
	store := &fakeBootstrapStore{}
	if err := EnsureSuperAdmin(context.Background(), store, bootstrapConfig()); err != nil {
		t.Fatalf("EnsureSuperAdmin: %v", err)
	}
	if store.creates != 1 {
		t.Fatalf("creates = %d, want 1", store.creates)
	}
	a := store.accounts[0]
	if a.Role != "superadmin" {
		t.Errorf("role = %q, want superadmin", a.Role)
	}
	if a.PasswordHash == "boot-pw" || a.PasswordHash == "" {
		t.Error("password must be stored hashed")
	}
	if !utils.VerifyPassword(a.PasswordHash, "boot-pw") {
		t.Error("stored hash must verify against the configured password")
	}
}

// Running the bootstrap again with a superadmin present must be a silent
// no-op, not a conflict.
func TestEnsureSuperAdminIdempotent(t *testing.T) {
	store := &fakeBootstrapStore{}
	cfg := bootstrapConfig()
	for i := 0; i < 2; i++ {
		if err := EnsureSuperAdmin(context.Background(), store, cfg); err != nil {
			t.Fatalf("run %d: %v", i+1, err)
		}
	}
	if store.creates != 1 {
		t.Fatalf("creates = %d, want exactly 1 across two boots", store.creates)
	}
}

// If the configured mobile is already taken by a non-superadmin account the
// bootstrap must fail loudly instead of silently doing nothing.
func TestEnsureSuperAdminMobileTaken(t *testing.T) {
	store := &fakeBootstrapStore{accounts: []model.Account{
		{ID: 1, Mobile: "9999999999", Role: "guard"},
	}}
	if err := EnsureSuperAdmin(context.Background(), store, bootstrapConfig()); err == nil {
		t.Fatal("expected an error when the mobile belongs to another account")
	}
}
