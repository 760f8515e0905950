package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"carloc-backend/internal/domain"
	"carloc-backend/internal/service"
)

type maintenanceFixture struct {
	maintenances *MockMaintenanceRepo
	vehicles     *MockVehicleRepo
	uow          *MockUnitOfWork
	svc          service.MaintenanceService
}

func newMaintenanceFixture() *maintenanceFixture {
	f := &maintenanceFixture{
		maintenances: new(MockMaintenanceRepo),
		vehicles:     new(MockVehicleRepo),
		uow:          NewMockUnitOfWork(),
	}
	f.svc = service.NewMaintenanceService(f.maintenances, f.vehicles, f.uow)
	return f
}

func (f *maintenanceFixture) reset() {
	f.maintenances.ExpectedCalls = nil
	f.maintenances.Calls = nil
	f.vehicles.ExpectedCalls = nil
	f.vehicles.Calls = nil
	f.uow.Ops.ExpectedCalls = nil
	f.uow.Ops.Calls = nil
	f.uow.LockedVehicle = 0
}

func TestMaintenanceService_Create(t *testing.T) {
	ctx := context.Background()
	f := newMaintenanceFixture()

	t.Run("an already started window takes the vehicle off the road", func(t *testing.T) {
		f.reset()
		f.vehicles.On("GetByID", mock.Anything, int64(7)).Return(testVehicle(), nil)
		f.uow.Ops.On("InsertMaintenance", mock.AnythingOfType("*domain.Maintenance")).Return(nil)
		f.uow.Ops.On("SetVehicleStatus", int64(7), domain.VehicleStatusInMaintenance).Return(nil)

		m, err := f.svc.Create(ctx, &service.MaintenanceInput{
			VehicleID: 7,
			Kind:      "vidange",
			EntryDate: time.Now().Add(-time.Hour),
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.MaintenanceStatusScheduled, m.Status)
		assert.Equal(t, int64(7), f.uow.LockedVehicle)
		f.uow.Ops.AssertExpectations(t)
	})

	t.Run("a future window leaves the vehicle bookable", func(t *testing.T) {
		f.reset()
		f.vehicles.On("GetByID", mock.Anything, int64(7)).Return(testVehicle(), nil)
		f.uow.Ops.On("InsertMaintenance", mock.Anything).Return(nil)

		_, err := f.svc.Create(ctx, &service.MaintenanceInput{
			VehicleID: 7,
			Kind:      "contrôle technique",
			EntryDate: time.Now().AddDate(0, 0, 14),
		})

		assert.NoError(t, err)
		f.uow.Ops.AssertNotCalled(t, "SetVehicleStatus", mock.Anything, mock.Anything)
	})

	t.Run("rejects an exit before the entry", func(t *testing.T) {
		f.reset()
		entry := time.Now()
		exit := entry.Add(-time.Hour)

		_, err := f.svc.Create(ctx, &service.MaintenanceInput{
			VehicleID:    7,
			Kind:         "vidange",
			EntryDate:    entry,
			ExpectedExit: &exit,
		})

		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestMaintenanceService_Update(t *testing.T) {
	ctx := context.Background()
	f := newMaintenanceFixture()

	entry := time.Now().Add(-48 * time.Hour)
	stored := func() *domain.Maintenance {
		return &domain.Maintenance{
			ID:        5,
			VehicleID: 7,
			Kind:      "vidange",
			EntryDate: entry,
			Status:    domain.MaintenanceStatusInProgress,
		}
	}

	t.Run("closing releases the vehicle when nothing holds it", func(t *testing.T) {
		f.reset()
		f.maintenances.On("GetByID", mock.Anything, int64(5)).Return(stored(), nil)
		f.uow.Ops.On("UpdateMaintenance", mock.AnythingOfType("*domain.Maintenance")).Return(nil)
		f.uow.Ops.On("CountActiveReservations", int64(7)).Return(int64(0), nil)
		f.uow.Ops.On("SetVehicleStatus", int64(7), domain.VehicleStatusAvailable).Return(nil)

		m, err := f.svc.Update(ctx, 5, &service.MaintenanceInput{
			VehicleID: 7,
			Kind:      "vidange",
			EntryDate: entry,
			CostCents: 12000,
			Status:    domain.MaintenanceStatusDone,
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.MaintenanceStatusDone, m.Status)
		f.uow.Ops.AssertExpectations(t)
	})

	t.Run("closing keeps the vehicle held by an active rental", func(t *testing.T) {
		f.reset()
		f.maintenances.On("GetByID", mock.Anything, int64(5)).Return(stored(), nil)
		f.uow.Ops.On("UpdateMaintenance", mock.Anything).Return(nil)
		f.uow.Ops.On("CountActiveReservations", int64(7)).Return(int64(1), nil)

		_, err := f.svc.Update(ctx, 5, &service.MaintenanceInput{
			VehicleID: 7,
			Kind:      "vidange",
			EntryDate: entry,
			Status:    domain.MaintenanceStatusDone,
		})

		assert.NoError(t, err)
		f.uow.Ops.AssertNotCalled(t, "SetVehicleStatus", mock.Anything, mock.Anything)
	})

	t.Run("a plain edit does not touch the vehicle", func(t *testing.T) {
		f.reset()
		f.maintenances.On("GetByID", mock.Anything, int64(5)).Return(stored(), nil)
		f.uow.Ops.On("UpdateMaintenance", mock.Anything).Return(nil)

		_, err := f.svc.Update(ctx, 5, &service.MaintenanceInput{
			VehicleID:   7,
			Kind:        "vidange",
			Description: "filtre à huile remplacé",
			EntryDate:   entry,
			Status:      domain.MaintenanceStatusInProgress,
		})

		assert.NoError(t, err)
		f.uow.Ops.AssertNotCalled(t, "CountActiveReservations", mock.Anything)
	})
}
