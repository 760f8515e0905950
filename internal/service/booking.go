package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"carloc-backend/internal/docnum"
	"carloc-backend/internal/domain"
	"carloc-backend/internal/logger"
	"carloc-backend/internal/pricing"
	"carloc-backend/internal/repository"
)

type reservationService struct {
	reservationRepo repository.ReservationRepository
	vehicleRepo     repository.VehicleRepository
	clientRepo      repository.ClientRepository
	agencyRepo      repository.AgencyRepository
	maintenanceRepo repository.MaintenanceRepository
	uow             repository.UnitOfWork
	settingsSvc     SettingsService
	emailSvc        EmailService
}

func NewReservationService(
	reservationRepo repository.ReservationRepository,
	vehicleRepo repository.VehicleRepository,
	clientRepo repository.ClientRepository,
	agencyRepo repository.AgencyRepository,
	maintenanceRepo repository.MaintenanceRepository,
	uow repository.UnitOfWork,
	settingsSvc SettingsService,
	emailSvc EmailService,
) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		vehicleRepo:     vehicleRepo,
		clientRepo:      clientRepo,
		agencyRepo:      agencyRepo,
		maintenanceRepo: maintenanceRepo,
		uow:             uow,
		settingsSvc:     settingsSvc,
		emailSvc:        emailSvc,
	}
}

func validateReservationInput(in *ReservationInput) error {
	var verr domain.ValidationErrors
	if in.ClientID <= 0 {
		verr.Add("client_id", "client requis")
	}
	if in.VehicleID <= 0 {
		verr.Add("vehicule_id", "véhicule requis")
	}
	if in.PickupAgencyID <= 0 {
		verr.Add("agence_retrait_id", "agence de retrait requise")
	}
	if in.ReturnAgencyID <= 0 {
		verr.Add("agence_retour_id", "agence de retour requise")
	}
	if in.StartDate.IsZero() {
		verr.Add("date_debut", "date de début requise")
	}
	if in.EndDate.IsZero() {
		verr.Add("date_fin", "date de fin requise")
	}
	if !in.StartDate.IsZero() && !in.EndDate.IsZero() && in.EndDate.Before(in.StartDate) {
		verr.Add("date_fin", "la date de fin doit être postérieure à la date de début")
	}
	return verr.Err()
}

// priceInput resolves the money fields of an input: the total falls back
// to rate*days when the caller did not price the booking, and the deposit
// falls back to the configured percentage of the total.
func (s *reservationService) priceInput(ctx context.Context, in *ReservationInput, dailyRateCents int64) (total, deposit int64, err error) {
	total = in.TotalPriceCents
	if total <= 0 {
		bd := pricing.Compute(dailyRateCents, in.StartDate, in.EndDate, pricing.Fees{}, 0, in.DownPaymentCents)
		total = bd.TotalCents
	}

	if in.DepositCents != nil {
		return total, *in.DepositCents, nil
	}
	pct, err := s.settingsSvc.CautionPercentage(ctx)
	if err != nil {
		return 0, 0, err
	}
	return total, pricing.Deposit(total, pct), nil
}

func (s *reservationService) Create(ctx context.Context, in *ReservationInput) (*domain.Reservation, error) {
	if err := validateReservationInput(in); err != nil {
		return nil, err
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, in.VehicleID)
	if err != nil {
		return nil, err
	}
	client, err := s.clientRepo.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}

	total, deposit, err := s.priceInput(ctx, in, vehicle.DailyRateCents)
	if err != nil {
		return nil, err
	}

	reservation := &domain.Reservation{
		ClientID:         in.ClientID,
		VehicleID:        in.VehicleID,
		PickupAgencyID:   in.PickupAgencyID,
		ReturnAgencyID:   in.ReturnAgencyID,
		StartDate:        in.StartDate,
		EndDate:          in.EndDate,
		TotalPriceCents:  total,
		DepositCents:     deposit,
		DownPaymentCents: in.DownPaymentCents,
		PaymentMethod:    in.PaymentMethod,
		Notes:            in.Notes,
		Status:           domain.ReservationStatusPending,
	}

	err = s.uow.RunLocked(ctx, in.VehicleID, func(ops repository.TxOps) error {
		if err := s.ensureNoConflict(ops, in.VehicleID, in.StartDate, in.EndDate, 0); err != nil {
			return err
		}
		if err := ops.InsertReservation(reservation); err != nil {
			return err
		}
		if err := ops.SetVehicleStatus(in.VehicleID, domain.VehicleStatusReserved); err != nil {
			return err
		}
		if err := ops.IncrementClientReservations(in.ClientID); err != nil {
			return err
		}
		if in.DownPaymentCents > 0 && in.PaymentMethod != "" {
			payment := &domain.Payment{
				Target:     domain.PaymentTarget{Kind: domain.PaymentTargetReservation, ID: reservation.ID},
				Reference:  uuid.NewString(),
				TotalCents: total,
				PaidCents:  in.DownPaymentCents,
				Method:     in.PaymentMethod,
				Status:     domain.DerivePaymentStatus(in.DownPaymentCents, total),
			}
			if err := ops.InsertPayment(payment); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyConfirmation(ctx, client, vehicle, reservation)
	return reservation, nil
}

// ensureNoConflict runs both conflict probes inside the transaction; the
// caller must hold the vehicle advisory lock.
func (s *reservationService) ensureNoConflict(ops repository.TxOps, vehicleID int64, start, end time.Time, excludeID int64) error {
	overlapping, err := ops.CountOverlappingReservations(vehicleID, start, end, excludeID)
	if err != nil {
		return err
	}
	if overlapping > 0 {
		return domain.ConflictError("le véhicule %d a déjà une réservation sur cette période", vehicleID)
	}
	blocking, err := ops.CountBlockingMaintenance(vehicleID, start, end)
	if err != nil {
		return err
	}
	if blocking > 0 {
		return domain.ConflictError("le véhicule %d est en maintenance sur cette période", vehicleID)
	}
	return nil
}

func (s *reservationService) Get(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.reservationRepo.GetByID(ctx, id)
}

func (s *reservationService) Update(ctx context.Context, id int64, in *ReservationInput) (*domain.Reservation, error) {
	if err := validateReservationInput(in); err != nil {
		return nil, err
	}

	existing, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, in.VehicleID)
	if err != nil {
		return nil, err
	}

	total, deposit, err := s.priceInput(ctx, in, vehicle.DailyRateCents)
	if err != nil {
		return nil, err
	}

	bookingChanged := in.VehicleID != existing.VehicleID ||
		!in.StartDate.Equal(existing.StartDate) ||
		!in.EndDate.Equal(existing.EndDate)

	updated := *existing
	updated.ClientID = in.ClientID
	updated.VehicleID = in.VehicleID
	updated.PickupAgencyID = in.PickupAgencyID
	updated.ReturnAgencyID = in.ReturnAgencyID
	updated.StartDate = in.StartDate
	updated.EndDate = in.EndDate
	updated.TotalPriceCents = total
	updated.DepositCents = deposit
	updated.DownPaymentCents = in.DownPaymentCents
	updated.PaymentMethod = in.PaymentMethod
	updated.Notes = in.Notes

	vehicleSwitched := in.VehicleID != existing.VehicleID &&
		(existing.Status == domain.ReservationStatusPending || existing.Status == domain.ReservationStatusConfirmed)

	err = s.uow.RunLocked(ctx, in.VehicleID, func(ops repository.TxOps) error {
		if bookingChanged {
			if err := s.ensureNoConflict(ops, in.VehicleID, in.StartDate, in.EndDate, id); err != nil {
				return err
			}
		}
		if err := ops.UpdateReservation(&updated); err != nil {
			return err
		}
		if !vehicleSwitched {
			return nil
		}
		// The booking now holds the new vehicle; the old one is
		// released unless another active reservation still holds it.
		if err := ops.SetVehicleStatus(in.VehicleID, domain.VehicleStatusReserved); err != nil {
			return err
		}
		held, err := ops.CountActiveReservations(existing.VehicleID)
		if err != nil {
			return err
		}
		if held == 0 {
			return ops.SetVehicleStatus(existing.VehicleID, domain.VehicleStatusAvailable)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *reservationService) ChangeStatus(ctx context.Context, id int64, to domain.ReservationStatus) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransition(reservation.Status, to) {
		return nil, domain.ConflictError("transition de %s vers %s refusée", reservation.Status, to)
	}

	err = s.uow.RunLocked(ctx, reservation.VehicleID, func(ops repository.TxOps) error {
		if err := ops.SetReservationStatus(id, to); err != nil {
			return err
		}
		switch to {
		case domain.ReservationStatusInProgress:
			return ops.SetVehicleStatus(reservation.VehicleID, domain.VehicleStatusRented)
		case domain.ReservationStatusCompleted, domain.ReservationStatusCancelled:
			return ops.SetVehicleStatus(reservation.VehicleID, domain.VehicleStatusAvailable)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	reservation.Status = to
	if to == domain.ReservationStatusCancelled {
		s.notifyCancellation(ctx, reservation)
	}
	return reservation, nil
}

func (s *reservationService) Delete(ctx context.Context, id int64) error {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return s.uow.RunLocked(ctx, reservation.VehicleID, func(ops repository.TxOps) error {
		if reservation.Status != domain.ReservationStatusCompleted {
			if err := ops.SetVehicleStatus(reservation.VehicleID, domain.VehicleStatusAvailable); err != nil {
				return err
			}
		}
		return ops.DeleteReservation(id)
	})
}

func (s *reservationService) List(ctx context.Context, status domain.ReservationStatus, clientID, vehicleID, page, pageSize int64) ([]domain.Reservation, int64, error) {
	return s.reservationRepo.List(ctx, status, clientID, vehicleID, page, pageSize)
}

func (s *reservationService) CheckAvailability(ctx context.Context, vehicleID int64, start, end time.Time, excludeID int64) (*AvailabilityResult, error) {
	var verr domain.ValidationErrors
	if vehicleID <= 0 {
		verr.Add("vehicule_id", "véhicule requis")
	}
	if start.IsZero() || end.IsZero() {
		verr.Add("date_debut", "période requise")
	} else if end.Before(start) {
		verr.Add("date_fin", "la date de fin doit être postérieure à la date de début")
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	overlapping, err := s.reservationRepo.CountOverlapping(ctx, vehicleID, start, end, excludeID)
	if err != nil {
		return nil, err
	}
	blocking, err := s.maintenanceRepo.CountBlocking(ctx, vehicleID, start, end)
	if err != nil {
		return nil, err
	}

	conflicts := overlapping + blocking
	result := &AvailabilityResult{
		Available: conflicts == 0,
		Conflicts: conflicts,
		Message:   "Le véhicule est disponible sur cette période",
	}
	if conflicts > 0 {
		result.Message = fmt.Sprintf("Le véhicule n'est pas disponible: %d conflit(s) sur cette période", conflicts)
	}
	return result, nil
}

func (s *reservationService) GenerateContract(ctx context.Context, reservationID int64) (*domain.Contract, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	vehicle, err := s.vehicleRepo.GetByID(ctx, reservation.VehicleID)
	if err != nil {
		return nil, err
	}
	pickup, err := s.agencyRepo.GetByID(ctx, reservation.PickupAgencyID)
	if err != nil {
		return nil, err
	}
	ret, err := s.agencyRepo.GetByID(ctx, reservation.ReturnAgencyID)
	if err != nil {
		return nil, err
	}

	contract := &domain.Contract{
		ReservationID:    &reservation.ID,
		ClientID:         reservation.ClientID,
		VehicleID:        reservation.VehicleID,
		StartDate:        reservation.StartDate,
		EndDate:          reservation.EndDate,
		DailyRateCents:   vehicle.DailyRateCents,
		TotalCents:       reservation.TotalPriceCents,
		DepositCents:     reservation.DepositCents,
		DownPaymentCents: reservation.DownPaymentCents,
		BalanceDueCents:  reservation.BalanceDueCents(),
		PickupLocation:   pickup.Location(),
		ReturnLocation:   ret.Location(),
		Notes:            reservation.Notes,
		Status:           domain.ContractStatusToSign,
	}

	err = s.uow.Run(ctx, func(ops repository.TxOps) error {
		exists, err := ops.ContractExistsForReservation(reservationID)
		if err != nil {
			return err
		}
		if exists {
			return domain.ConflictError("un contrat existe déjà pour la réservation %d", reservationID)
		}

		number, err := ops.ClaimDocumentNumber(docnum.TypeContract, time.Now())
		if err != nil {
			return err
		}
		contract.Number = number

		if err := ops.InsertContract(contract); err != nil {
			return err
		}
		if reservation.Status == domain.ReservationStatusPending {
			return ops.SetReservationStatus(reservationID, domain.ReservationStatusConfirmed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyContractReady(ctx, reservation.ClientID, contract)
	return contract, nil
}

func vehicleLabel(v *domain.Vehicle) string {
	return fmt.Sprintf("%s %s (%s)", v.Make, v.Model, v.Plate)
}

// Email failures never fail the booking; they are logged and dropped.
func (s *reservationService) notifyConfirmation(ctx context.Context, client *domain.Client, vehicle *domain.Vehicle, r *domain.Reservation) {
	if s.emailSvc == nil || client.Email == "" {
		return
	}
	name := client.FirstName + " " + client.LastName
	if err := s.emailSvc.SendReservationConfirmation(ctx, client.Email, name, vehicleLabel(vehicle), r.StartDate, r.EndDate); err != nil {
		logger.Warn("Failed to send reservation confirmation", "reservation_id", r.ID, "error", err)
	}
}

func (s *reservationService) notifyContractReady(ctx context.Context, clientID int64, c *domain.Contract) {
	if s.emailSvc == nil {
		return
	}
	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil || client.Email == "" {
		return
	}
	name := client.FirstName + " " + client.LastName
	if err := s.emailSvc.SendContractReady(ctx, client.Email, name, c.Number); err != nil {
		logger.Warn("Failed to send contract notice", "contract_id", c.ID, "error", err)
	}
}

func (s *reservationService) notifyCancellation(ctx context.Context, r *domain.Reservation) {
	if s.emailSvc == nil {
		return
	}
	client, err := s.clientRepo.GetByID(ctx, r.ClientID)
	if err != nil || client.Email == "" {
		return
	}
	vehicle, err := s.vehicleRepo.GetByID(ctx, r.VehicleID)
	if err != nil {
		return
	}
	name := client.FirstName + " " + client.LastName
	if err := s.emailSvc.SendReservationCancellation(ctx, client.Email, name, vehicleLabel(vehicle)); err != nil {
		logger.Warn("Failed to send cancellation notice", "reservation_id", r.ID, "error", err)
	}
}
