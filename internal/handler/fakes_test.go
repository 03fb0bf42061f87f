package handler

// In-memory store fakes shared by the handler tests. They mimic the
// repository contract including the uniqueness sentinels, so handlers can
// be exercised end to end without MySQL.

import (
	"context"

	"github.com/iliyamo/gate-pass-service/internal/model"
	"github.com/iliyamo/gate-pass-service/internal/repository"
)

type fakeAccounts struct {
	nextID   uint64
	accounts []model.Account
}

func (f *fakeAccounts) Create(_ context.Context, a model.Account) (uint64, error) {
	for _, e := range f.accounts {
		if e.Mobile == a.Mobile {
			return 0, repository.ErrMobileExists
		}
	}
	f.nextID++
	a.ID = f.nextID
	f.accounts = append(f.accounts, a)
	return a.ID, nil
}

func (f *fakeAccounts) GetByMobile(_ context.Context, mobile string) (model.Account, error) {
	for _, e := range f.accounts {
		if e.Mobile == mobile {
			return e, nil
		}
	}
	return model.Account{}, repository.ErrNotFound
}

func (f *fakeAccounts) GetByID(_ context.Context, id uint64) (model.Account, error) {
	for _, e := range f.accounts {
		if e.ID == id {
			return e, nil
		}
	}
	return model.Account{}, repository.ErrNotFound
}

type fakeVehicles struct {
	nextID   uint64
	vehicles []model.Vehicle
}

func (f *fakeVehicles) Create(_ context.Context, v model.Vehicle) (model.Vehicle, error) {
	for _, e := range f.vehicles {
		if e.VehicleNumber == v.VehicleNumber {
			return model.Vehicle{}, repository.ErrDuplicateVehicleNumber
		}
		if e.PassNumber == v.PassNumber {
			return model.Vehicle{}, repository.ErrDuplicatePassNumber
		}
	}
	f.nextID++
	v.ID = f.nextID
	f.vehicles = append(f.vehicles, v)
	return v, nil
}

func (f *fakeVehicles) List(_ context.Context) ([]model.Vehicle, error) {
	out := make([]model.Vehicle, len(f.vehicles))
	copy(out, f.vehicles)
	return out, nil
}

func (f *fakeVehicles) GetByNumber(_ context.Context, number string) (model.Vehicle, error) {
	for _, e := range f.vehicles {
		if e.VehicleNumber == number {
			return e, nil
		}
	}
	return model.Vehicle{}, repository.ErrNotFound
}

func (f *fakeVehicles) GetByID(_ context.Context, id uint64) (model.Vehicle, error) {
	for _, e := range f.vehicles {
		if e.ID == id {
			return e, nil
		}
	}
	return model.Vehicle{}, repository.ErrNotFound
}

func (f *fakeVehicles) Delete(_ context.Context, id uint64) error {
	for i, e := range f.vehicles {
		if e.ID == id {
			f.vehicles = append(f.vehicles[:i], f.vehicles[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}
