// Package service holds startup logic that sits above the repositories but
// below the HTTP layer.
package service

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/iliyamo/gate-pass-service/internal/auth"
	"github.com/iliyamo/gate-pass-service/internal/config"
	"github.com/iliyamo/gate-pass-service/internal/model"
	"github.com/iliyamo/gate-pass-service/internal/repository"
	"github.com/iliyamo/gate-pass-service/internal/utils"
)

// BootstrapStore is what EnsureSuperAdmin needs from the account repository.
type BootstrapStore interface {
	HasRole(ctx context.Context, role string) (bool, error)
	Create(ctx context.Context, a model.Account) (uint64, error)
}

// EnsureSuperAdmin seeds the single superadmin account from configuration
// on first boot. There is no runtime operation that creates a superadmin,
// so this is the only path that mints one, and it bypasses the actor-role
// rules because there is no actor yet. The function is idempotent: when a
// superadmin already exists it does nothing and reports success, so it is
// safe to run on every process start.
func EnsureSuperAdmin(ctx context.Context, store BootstrapStore, cfg config.Config) error {
	exists, err := store.HasRole(ctx, string(auth.RoleSuperadmin))
	if err != nil {
		return fmt.Errorf("check superadmin: %w", err)
	}
	if exists {
		log.Debug("bootstrap: superadmin already present")
		return nil
	}

	hash, err := utils.HashPassword(cfg.SuperadminPass, cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash superadmin password: %w", err)
	}

	id, err := store.Create(ctx, model.Account{
		Name:         cfg.SuperadminName,
		Mobile:       cfg.SuperadminMobile,
		PasswordHash: hash,
		Role:         string(auth.RoleSuperadmin),
		Designation:  "Super Admin",
		Address:      "Society Office",
	})
	if err != nil {
		// Two instances booting at once can both see "no superadmin" and
		// race on the insert; the mobile unique index picks the winner.
		if errors.Is(err, repository.ErrMobileExists) {
			again, checkErr := store.HasRole(ctx, string(auth.RoleSuperadmin))
			if checkErr == nil && again {
				log.Debug("bootstrap: superadmin created concurrently")
				return nil
			}
			return fmt.Errorf("superadmin mobile taken by a non-superadmin account: %w", err)
		}
		return fmt.Errorf("create superadmin: %w", err)
	}

	log.Infof("bootstrap: superadmin account %d created", id)
	return nil
}
