package service

import (
	"context"
	"time"

	"carloc-backend/internal/domain"
	"carloc-backend/internal/repository"
)

type maintenanceService struct {
	maintenanceRepo repository.MaintenanceRepository
	vehicleRepo     repository.VehicleRepository
	uow             repository.UnitOfWork
}

func NewMaintenanceService(
	maintenanceRepo repository.MaintenanceRepository,
	vehicleRepo repository.VehicleRepository,
	uow repository.UnitOfWork,
) MaintenanceService {
	return &maintenanceService{
		maintenanceRepo: maintenanceRepo,
		vehicleRepo:     vehicleRepo,
		uow:             uow,
	}
}

func validateMaintenanceInput(in *MaintenanceInput) error {
	var verr domain.ValidationErrors
	if in.VehicleID <= 0 {
		verr.Add("vehicule_id", "véhicule requis")
	}
	if in.Kind == "" {
		verr.Add("type", "type requis")
	}
	if in.EntryDate.IsZero() {
		verr.Add("date_entree", "date d'entrée requise")
	}
	if in.ExpectedExit != nil && !in.EntryDate.IsZero() && in.ExpectedExit.Before(in.EntryDate) {
		verr.Add("date_sortie_prevue", "la sortie prévue doit suivre l'entrée")
	}
	if in.Status != "" && !validMaintenanceStatus(in.Status) {
		verr.Add("statut", "statut inconnu")
	}
	return verr.Err()
}

func validMaintenanceStatus(s domain.MaintenanceStatus) bool {
	switch s {
	case domain.MaintenanceStatusScheduled, domain.MaintenanceStatusInProgress, domain.MaintenanceStatusDone:
		return true
	}
	return false
}

func (s *maintenanceService) Create(ctx context.Context, in *MaintenanceInput) (*domain.Maintenance, error) {
	if err := validateMaintenanceInput(in); err != nil {
		return nil, err
	}
	if _, err := s.vehicleRepo.GetByID(ctx, in.VehicleID); err != nil {
		return nil, err
	}

	maintenance := &domain.Maintenance{
		VehicleID:    in.VehicleID,
		Kind:         in.Kind,
		Description:  in.Description,
		EntryDate:    in.EntryDate,
		ExpectedExit: in.ExpectedExit,
		CostCents:    in.CostCents,
		Status:       in.Status,
	}
	if maintenance.Status == "" {
		maintenance.Status = domain.MaintenanceStatusScheduled
	}

	err := s.uow.RunLocked(ctx, in.VehicleID, func(ops repository.TxOps) error {
		if err := ops.InsertMaintenance(maintenance); err != nil {
			return err
		}
		// Only a window that has already started takes the vehicle off
		// the road; a future entry date leaves it bookable until then.
		if maintenance.Blocking() && !maintenance.EntryDate.After(time.Now()) {
			return ops.SetVehicleStatus(in.VehicleID, domain.VehicleStatusInMaintenance)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return maintenance, nil
}

func (s *maintenanceService) Get(ctx context.Context, id int64) (*domain.Maintenance, error) {
	return s.maintenanceRepo.GetByID(ctx, id)
}

func (s *maintenanceService) Update(ctx context.Context, id int64, in *MaintenanceInput) (*domain.Maintenance, error) {
	if err := validateMaintenanceInput(in); err != nil {
		return nil, err
	}

	existing, err := s.maintenanceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	updated.Kind = in.Kind
	updated.Description = in.Description
	updated.EntryDate = in.EntryDate
	updated.ExpectedExit = in.ExpectedExit
	updated.CostCents = in.CostCents
	if in.Status != "" {
		updated.Status = in.Status
	}

	closing := existing.Blocking() && updated.Status == domain.MaintenanceStatusDone

	err = s.uow.RunLocked(ctx, existing.VehicleID, func(ops repository.TxOps) error {
		if err := ops.UpdateMaintenance(&updated); err != nil {
			return err
		}
		if !closing {
			return nil
		}
		// Closing releases the vehicle unless an active rental holds it.
		active, err := ops.CountActiveReservations(existing.VehicleID)
		if err != nil {
			return err
		}
		if active == 0 {
			return ops.SetVehicleStatus(existing.VehicleID, domain.VehicleStatusAvailable)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *maintenanceService) List(ctx context.Context, vehicleID int64, status domain.MaintenanceStatus, page, pageSize int64) ([]domain.Maintenance, int64, error) {
	return s.maintenanceRepo.List(ctx, vehicleID, status, page, pageSize)
}
