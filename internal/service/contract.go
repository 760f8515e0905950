package service

import (
	"context"

	"carloc-backend/internal/domain"
	"carloc-backend/internal/repository"
)

// Contract transitions mirror the reservation machine: forward only, with
// cancellation possible until the rental starts.
var contractTransitions = map[domain.ContractStatus][]domain.ContractStatus{
	domain.ContractStatusToSign:     {domain.ContractStatusSigned, domain.ContractStatusCancelled},
	domain.ContractStatusSigned:     {domain.ContractStatusInProgress, domain.ContractStatusCancelled},
	domain.ContractStatusInProgress: {domain.ContractStatusCompleted},
}

func contractCanTransition(from, to domain.ContractStatus) bool {
	for _, allowed := range contractTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

type contractService struct {
	contractRepo repository.ContractRepository
}

func NewContractService(contractRepo repository.ContractRepository) ContractService {
	return &contractService{contractRepo: contractRepo}
}

func (s *contractService) Get(ctx context.Context, id int64) (*domain.Contract, error) {
	return s.contractRepo.GetByID(ctx, id)
}

func (s *contractService) Update(ctx context.Context, contract *domain.Contract) error {
	existing, err := s.contractRepo.GetByID(ctx, contract.ID)
	if err != nil {
		return err
	}
	// The number and the origin links are assigned once and never edited.
	contract.Number = existing.Number
	contract.QuoteID = existing.QuoteID
	contract.ReservationID = existing.ReservationID
	if contract.Status != existing.Status && !contractCanTransition(existing.Status, contract.Status) {
		return domain.ConflictError("transition de %s vers %s refusée", existing.Status, contract.Status)
	}
	return s.contractRepo.Update(ctx, contract)
}

func (s *contractService) ChangeStatus(ctx context.Context, id int64, to domain.ContractStatus) (*domain.Contract, error) {
	contract, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !contractCanTransition(contract.Status, to) {
		return nil, domain.ConflictError("transition de %s vers %s refusée", contract.Status, to)
	}
	contract.Status = to
	if err := s.contractRepo.Update(ctx, contract); err != nil {
		return nil, err
	}
	return contract, nil
}

func (s *contractService) Delete(ctx context.Context, id int64) error {
	contract, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if contract.Status == domain.ContractStatusInProgress {
		return domain.ConflictError("le contrat %s est en cours", contract.Number)
	}
	return s.contractRepo.Delete(ctx, id)
}

func (s *contractService) List(ctx context.Context, status domain.ContractStatus, clientID, page, pageSize int64) ([]domain.Contract, int64, error) {
	return s.contractRepo.List(ctx, status, clientID, page, pageSize)
}

func (s *contractService) Stats(ctx context.Context) (map[domain.ContractStatus]int64, error) {
	return s.contractRepo.CountByStatus(ctx)
}
