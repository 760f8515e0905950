package service

import (
	"context"

	"carloc-backend/internal/domain"
	"carloc-backend/internal/repository"
)

type vehicleService struct {
	vehicleRepo     repository.VehicleRepository
	reservationRepo repository.ReservationRepository
	maintenanceRepo repository.MaintenanceRepository
}

func NewVehicleService(
	vehicleRepo repository.VehicleRepository,
	reservationRepo repository.ReservationRepository,
	maintenanceRepo repository.MaintenanceRepository,
) VehicleService {
	return &vehicleService{
		vehicleRepo:     vehicleRepo,
		reservationRepo: reservationRepo,
		maintenanceRepo: maintenanceRepo,
	}
}

func validateVehicle(v *domain.Vehicle) error {
	var verr domain.ValidationErrors
	if v.Plate == "" {
		verr.Add("immatriculation", "immatriculation requise")
	}
	if v.Make == "" {
		verr.Add("marque", "marque requise")
	}
	if v.Model == "" {
		verr.Add("modele", "modèle requis")
	}
	if v.DailyRateCents < 0 {
		verr.Add("tarif_journalier_cents", "tarif invalide")
	}
	return verr.Err()
}

func (s *vehicleService) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	if err := validateVehicle(vehicle); err != nil {
		return err
	}
	if vehicle.Status == "" {
		vehicle.Status = domain.VehicleStatusAvailable
	}
	return s.vehicleRepo.Create(ctx, vehicle)
}

func (s *vehicleService) Get(ctx context.Context, id int64) (*domain.Vehicle, error) {
	return s.vehicleRepo.GetByID(ctx, id)
}

// Update rejects direct status edits while a reservation or an open
// maintenance window holds the vehicle; those flows own the status.
func (s *vehicleService) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	if err := validateVehicle(vehicle); err != nil {
		return err
	}
	existing, err := s.vehicleRepo.GetByID(ctx, vehicle.ID)
	if err != nil {
		return err
	}
	if vehicle.Status != existing.Status {
		held, err := s.vehicleHeld(ctx, vehicle.ID)
		if err != nil {
			return err
		}
		if held {
			return domain.ConflictError("le statut du véhicule %d est géré par ses réservations et maintenances", vehicle.ID)
		}
	}
	return s.vehicleRepo.Update(ctx, vehicle)
}

func (s *vehicleService) vehicleHeld(ctx context.Context, vehicleID int64) (bool, error) {
	for _, status := range domain.ActiveReservationStatuses {
		_, total, err := s.reservationRepo.List(ctx, status, 0, vehicleID, 1, 1)
		if err != nil {
			return false, err
		}
		if total > 0 {
			return true, nil
		}
	}
	for _, status := range []domain.MaintenanceStatus{domain.MaintenanceStatusScheduled, domain.MaintenanceStatusInProgress} {
		_, total, err := s.maintenanceRepo.List(ctx, vehicleID, status, 1, 1)
		if err != nil {
			return false, err
		}
		if total > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (s *vehicleService) Delete(ctx context.Context, id int64) error {
	held, err := s.vehicleHeld(ctx, id)
	if err != nil {
		return err
	}
	if held {
		return domain.ConflictError("le véhicule %d a des réservations ou maintenances actives", id)
	}
	return s.vehicleRepo.Delete(ctx, id)
}

func (s *vehicleService) List(ctx context.Context, status domain.VehicleStatus, page, pageSize int64) ([]domain.Vehicle, int64, error) {
	return s.vehicleRepo.List(ctx, status, page, pageSize)
}

type clientService struct {
	clientRepo repository.ClientRepository
}

func NewClientService(clientRepo repository.ClientRepository) ClientService {
	return &clientService{clientRepo: clientRepo}
}

func validateClient(c *domain.Client) error {
	var verr domain.ValidationErrors
	if c.FirstName == "" {
		verr.Add("prenom", "prénom requis")
	}
	if c.LastName == "" {
		verr.Add("nom", "nom requis")
	}
	return verr.Err()
}

func (s *clientService) Create(ctx context.Context, client *domain.Client) error {
	if err := validateClient(client); err != nil {
		return err
	}
	return s.clientRepo.Create(ctx, client)
}

func (s *clientService) Get(ctx context.Context, id int64) (*domain.Client, error) {
	return s.clientRepo.GetByID(ctx, id)
}

func (s *clientService) Update(ctx context.Context, client *domain.Client) error {
	if err := validateClient(client); err != nil {
		return err
	}
	existing, err := s.clientRepo.GetByID(ctx, client.ID)
	if err != nil {
		return err
	}
	// The counter is owned by reservation creation.
	client.ReservationCount = existing.ReservationCount
	return s.clientRepo.Update(ctx, client)
}

func (s *clientService) Delete(ctx context.Context, id int64) error {
	return s.clientRepo.Delete(ctx, id)
}

func (s *clientService) List(ctx context.Context, query string, page, pageSize int64) ([]domain.Client, int64, error) {
	return s.clientRepo.List(ctx, query, page, pageSize)
}

type agencyService struct {
	agencyRepo repository.AgencyRepository
}

func NewAgencyService(agencyRepo repository.AgencyRepository) AgencyService {
	return &agencyService{agencyRepo: agencyRepo}
}

func (s *agencyService) Create(ctx context.Context, agency *domain.Agency) error {
	if agency.Name == "" {
		var verr domain.ValidationErrors
		verr.Add("nom", "nom requis")
		return verr.Err()
	}
	return s.agencyRepo.Create(ctx, agency)
}

func (s *agencyService) Get(ctx context.Context, id int64) (*domain.Agency, error) {
	return s.agencyRepo.GetByID(ctx, id)
}

func (s *agencyService) Update(ctx context.Context, agency *domain.Agency) error {
	if agency.Name == "" {
		var verr domain.ValidationErrors
		verr.Add("nom", "nom requis")
		return verr.Err()
	}
	return s.agencyRepo.Update(ctx, agency)
}

func (s *agencyService) Delete(ctx context.Context, id int64) error {
	return s.agencyRepo.Delete(ctx, id)
}

func (s *agencyService) List(ctx context.Context) ([]domain.Agency, error) {
	return s.agencyRepo.List(ctx)
}
