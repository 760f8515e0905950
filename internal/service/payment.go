package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"carloc-backend/internal/domain"
	"carloc-backend/internal/repository"
)

type paymentService struct {
	paymentRepo     repository.PaymentRepository
	contractRepo    repository.ContractRepository
	reservationRepo repository.ReservationRepository
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	contractRepo repository.ContractRepository,
	reservationRepo repository.ReservationRepository,
) PaymentService {
	return &paymentService{
		paymentRepo:     paymentRepo,
		contractRepo:    contractRepo,
		reservationRepo: reservationRepo,
	}
}

func (s *paymentService) Create(ctx context.Context, in *PaymentInput) (*domain.Payment, error) {
	var verr domain.ValidationErrors
	switch in.Target.Kind {
	case domain.PaymentTargetContract, domain.PaymentTargetReservation:
	default:
		verr.Add("reference_type", "cible de paiement inconnue")
	}
	if in.Target.ID <= 0 {
		verr.Add("reference_id", "référence requise")
	}
	if in.TotalCents <= 0 {
		verr.Add("montant_total_cents", "montant requis")
	}
	if in.PaidCents < 0 || in.PaidCents > in.TotalCents {
		verr.Add("montant_paye_cents", "montant payé invalide")
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	if err := s.resolveTarget(ctx, in.Target); err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		Target:     in.Target,
		Reference:  uuid.NewString(),
		TotalCents: in.TotalCents,
		PaidCents:  in.PaidCents,
		Method:     in.Method,
		Status:     domain.DerivePaymentStatus(in.PaidCents, in.TotalCents),
	}
	if in.PaidCents > 0 {
		now := time.Now()
		payment.PaidOn = &now
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// resolveTarget checks the referenced document exists; the reference is
// not a database foreign key.
func (s *paymentService) resolveTarget(ctx context.Context, target domain.PaymentTarget) error {
	switch target.Kind {
	case domain.PaymentTargetContract:
		_, err := s.contractRepo.GetByID(ctx, target.ID)
		return err
	case domain.PaymentTargetReservation:
		_, err := s.reservationRepo.GetByID(ctx, target.ID)
		return err
	}
	return nil
}

func (s *paymentService) Get(ctx context.Context, id int64) (*domain.Payment, error) {
	return s.paymentRepo.GetByID(ctx, id)
}

func (s *paymentService) RecordPayment(ctx context.Context, id, amountCents int64) (*domain.Payment, error) {
	if amountCents <= 0 {
		var verr domain.ValidationErrors
		verr.Add("montant_cents", "montant requis")
		return nil, verr.Err()
	}

	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment.Status == domain.PaymentStatusPaid {
		return nil, domain.ConflictError("le paiement %d est déjà soldé", id)
	}
	if payment.PaidCents+amountCents > payment.TotalCents {
		return nil, domain.ConflictError("le montant dépasse le solde du paiement %d", id)
	}

	payment.PaidCents += amountCents
	payment.Status = domain.DerivePaymentStatus(payment.PaidCents, payment.TotalCents)
	now := time.Now()
	payment.PaidOn = &now

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *paymentService) ListByTarget(ctx context.Context, target domain.PaymentTarget) ([]domain.Payment, error) {
	return s.paymentRepo.ListByTarget(ctx, target)
}

func (s *paymentService) List(ctx context.Context, page, pageSize int64) ([]domain.Payment, int64, error) {
	return s.paymentRepo.List(ctx, page, pageSize)
}
