package service

import (
	"context"
	"time"

	"carloc-backend/internal/docnum"
	"carloc-backend/internal/domain"
	"carloc-backend/internal/pricing"
	"carloc-backend/internal/repository"
)

type quoteService struct {
	quoteRepo   repository.QuoteRepository
	vehicleRepo repository.VehicleRepository
	clientRepo  repository.ClientRepository
	uow         repository.UnitOfWork
}

func NewQuoteService(
	quoteRepo repository.QuoteRepository,
	vehicleRepo repository.VehicleRepository,
	clientRepo repository.ClientRepository,
	uow repository.UnitOfWork,
) QuoteService {
	return &quoteService{
		quoteRepo:   quoteRepo,
		vehicleRepo: vehicleRepo,
		clientRepo:  clientRepo,
		uow:         uow,
	}
}

func validateQuoteInput(in *QuoteInput) error {
	var verr domain.ValidationErrors
	if in.ClientID <= 0 {
		verr.Add("client_id", "client requis")
	}
	if in.VehicleID <= 0 {
		verr.Add("vehicule_id", "véhicule requis")
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
	if in.Status != "" && !validQuoteStatus(in.Status) {
		verr.Add("statut", "statut inconnu")
	}
	return verr.Err()
}

func validQuoteStatus(s domain.QuoteStatus) bool {
	switch s {
	case domain.QuoteStatusDraft, domain.QuoteStatusSent, domain.QuoteStatusAccepted, domain.QuoteStatusRefused, domain.QuoteStatusConverted:
		return true
	}
	return false
}

// applyPricing fills the derived fields from the input's raw figures.
func applyQuotePricing(q *domain.Quote, in *QuoteInput) {
	fees := pricing.Fees{
		DriverCents:   in.DriverFeeCents,
		DeliveryCents: in.DeliveryCents,
		FuelCents:     in.FuelFeeCents,
		MileageCents:  in.MileageCents,
	}
	bd := pricing.Compute(in.DailyRateCents, in.StartDate, in.EndDate, fees, in.DiscountCents, 0)
	q.StartDate = in.StartDate
	q.EndDate = in.EndDate
	q.DailyRateCents = in.DailyRateCents
	q.Days = bd.Days
	q.DriverFeeCents = in.DriverFeeCents
	q.DeliveryCents = in.DeliveryCents
	q.FuelFeeCents = in.FuelFeeCents
	q.MileageCents = in.MileageCents
	q.DiscountCents = in.DiscountCents
	q.TotalCents = bd.TotalCents
}

func (s *quoteService) Create(ctx context.Context, in *QuoteInput) (*domain.Quote, error) {
	if err := validateQuoteInput(in); err != nil {
		return nil, err
	}
	if _, err := s.clientRepo.GetByID(ctx, in.ClientID); err != nil {
		return nil, err
	}
	vehicle, err := s.vehicleRepo.GetByID(ctx, in.VehicleID)
	if err != nil {
		return nil, err
	}
	if in.DailyRateCents <= 0 {
		in.DailyRateCents = vehicle.DailyRateCents
	}

	quote := &domain.Quote{
		ClientID:  in.ClientID,
		VehicleID: in.VehicleID,
		Notes:     in.Notes,
		Status:    domain.QuoteStatusDraft,
	}
	if in.Status != "" {
		quote.Status = in.Status
	}
	applyQuotePricing(quote, in)

	err = s.uow.Run(ctx, func(ops repository.TxOps) error {
		number, err := ops.ClaimDocumentNumber(docnum.TypeQuote, time.Now())
		if err != nil {
			return err
		}
		quote.Number = number
		return ops.InsertQuote(quote)
	})
	if err != nil {
		return nil, err
	}
	return quote, nil
}

func (s *quoteService) Get(ctx context.Context, id int64) (*domain.Quote, error) {
	return s.quoteRepo.GetByID(ctx, id)
}

func (s *quoteService) Update(ctx context.Context, id int64, in *QuoteInput) (*domain.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote.Converted() {
		return nil, domain.ConflictError("le devis %s est déjà converti", quote.Number)
	}

	// Fields absent from the payload keep their stored values, so a
	// status or notes change does not resend the pricing snapshot.
	// Only a date or rate in the payload triggers a reprice.
	reprice := !in.StartDate.IsZero() || !in.EndDate.IsZero() || in.DailyRateCents > 0
	if in.ClientID <= 0 {
		in.ClientID = quote.ClientID
	}
	if in.VehicleID <= 0 {
		in.VehicleID = quote.VehicleID
	}
	if in.StartDate.IsZero() {
		in.StartDate = quote.StartDate
	}
	if in.EndDate.IsZero() {
		in.EndDate = quote.EndDate
	}
	if in.DailyRateCents <= 0 {
		in.DailyRateCents = quote.DailyRateCents
	}
	if err := validateQuoteInput(in); err != nil {
		return nil, err
	}

	quote.ClientID = in.ClientID
	quote.VehicleID = in.VehicleID
	quote.Notes = in.Notes
	if in.Status != "" {
		quote.Status = in.Status
	}
	if reprice {
		applyQuotePricing(quote, in)
	}

	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, err
	}
	return quote, nil
}

func (s *quoteService) Delete(ctx context.Context, id int64) error {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if quote.Converted() {
		return domain.ConflictError("le devis %s est déjà converti", quote.Number)
	}
	return s.quoteRepo.Delete(ctx, id)
}

func (s *quoteService) List(ctx context.Context, status domain.QuoteStatus, clientID, page, pageSize int64) ([]domain.Quote, int64, error) {
	return s.quoteRepo.List(ctx, status, clientID, page, pageSize)
}

func (s *quoteService) Stats(ctx context.Context) (map[domain.QuoteStatus]int64, error) {
	return s.quoteRepo.CountByStatus(ctx)
}

// Convert turns an unconverted quote into a contract. The contract copies
// the quote's pricing verbatim; its deposit is the fixed conversion
// percentage of the total, distinct from the configurable reservation
// deposit. Numbering, contract insert and quote stamping commit together.
func (s *quoteService) Convert(ctx context.Context, id int64) (*domain.Contract, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote.Converted() {
		return nil, domain.ConflictError("le devis %s est déjà converti", quote.Number)
	}

	contract := &domain.Contract{
		QuoteID:          &quote.ID,
		ClientID:         quote.ClientID,
		VehicleID:        quote.VehicleID,
		StartDate:        quote.StartDate,
		EndDate:          quote.EndDate,
		DailyRateCents:   quote.DailyRateCents,
		TotalCents:       quote.TotalCents,
		DepositCents:     pricing.Deposit(quote.TotalCents, pricing.QuoteConversionDepositPct),
		DownPaymentCents: 0,
		BalanceDueCents:  quote.TotalCents,
		Notes:            quote.Notes,
		Status:           domain.ContractStatusToSign,
	}

	now := time.Now()
	err = s.uow.Run(ctx, func(ops repository.TxOps) error {
		number, err := ops.ClaimDocumentNumber(docnum.TypeContract, now)
		if err != nil {
			return err
		}
		contract.Number = number

		if err := ops.InsertContract(contract); err != nil {
			return err
		}
		return ops.MarkQuoteConverted(quote.ID, contract.ID, now)
	})
	if err != nil {
		return nil, err
	}
	return contract, nil
}
