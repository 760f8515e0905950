package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"carloc-backend/internal/domain"
	"carloc-backend/internal/service"
)

func TestContractService_Update(t *testing.T) {
	ctx := context.Background()
	contracts := new(MockContractRepo)
	svc := service.NewContractService(contracts)

	quoteID := int64(12)
	stored := func() *domain.Contract {
		return &domain.Contract{
			ID:      9,
			Number:  "CTR-202609-0004",
			QuoteID: &quoteID,
			Status:  domain.ContractStatusToSign,
		}
	}

	t.Run("the number and origin links survive edits", func(t *testing.T) {
		contracts.ExpectedCalls = nil
		contracts.Calls = nil
		contracts.On("GetByID", mock.Anything, int64(9)).Return(stored(), nil)
		var saved *domain.Contract
		contracts.On("Update", mock.Anything, mock.AnythingOfType("*domain.Contract")).Run(func(args mock.Arguments) {
			saved = args.Get(1).(*domain.Contract)
		}).Return(nil)

		edit := &domain.Contract{
			ID:     9,
			Number: "CTR-999999-9999",
			Notes:  "caution versée en espèces",
			Status: domain.ContractStatusToSign,
		}
		err := svc.Update(ctx, edit)

		assert.NoError(t, err)
		assert.Equal(t, "CTR-202609-0004", saved.Number)
		assert.Equal(t, quoteID, *saved.QuoteID)
		assert.Equal(t, "caution versée en espèces", saved.Notes)
	})

	t.Run("rejects a backward status edit", func(t *testing.T) {
		contracts.ExpectedCalls = nil
		contracts.Calls = nil
		existing := stored()
		existing.Status = domain.ContractStatusSigned
		contracts.On("GetByID", mock.Anything, int64(9)).Return(existing, nil)

		err := svc.Update(ctx, &domain.Contract{ID: 9, Status: domain.ContractStatusToSign})

		assert.ErrorIs(t, err, domain.ErrConflict)
		contracts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestContractService_ChangeStatus(t *testing.T) {
	ctx := context.Background()
	contracts := new(MockContractRepo)
	svc := service.NewContractService(contracts)

	cases := []struct {
		name string
		from domain.ContractStatus
		to   domain.ContractStatus
		ok   bool
	}{
		{"to_sign can be signed", domain.ContractStatusToSign, domain.ContractStatusSigned, true},
		{"signed can start", domain.ContractStatusSigned, domain.ContractStatusInProgress, true},
		{"in_progress can complete", domain.ContractStatusInProgress, domain.ContractStatusCompleted, true},
		{"signed can be cancelled", domain.ContractStatusSigned, domain.ContractStatusCancelled, true},
		{"in_progress cannot be cancelled", domain.ContractStatusInProgress, domain.ContractStatusCancelled, false},
		{"completed is final", domain.ContractStatusCompleted, domain.ContractStatusInProgress, false},
		{"to_sign cannot skip to in_progress", domain.ContractStatusToSign, domain.ContractStatusInProgress, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			contracts.ExpectedCalls = nil
			contracts.Calls = nil
			contracts.On("GetByID", mock.Anything, int64(9)).Return(&domain.Contract{ID: 9, Status: tc.from}, nil)
			if tc.ok {
				contracts.On("Update", mock.Anything, mock.Anything).Return(nil)
			}

			contract, err := svc.ChangeStatus(ctx, 9, tc.to)

			if tc.ok {
				assert.NoError(t, err)
				assert.Equal(t, tc.to, contract.Status)
			} else {
				assert.ErrorIs(t, err, domain.ErrConflict)
				contracts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestContractService_Delete(t *testing.T) {
	ctx := context.Background()
	contracts := new(MockContractRepo)
	svc := service.NewContractService(contracts)

	t.Run("refuses to delete a running contract", func(t *testing.T) {
		contracts.ExpectedCalls = nil
		contracts.Calls = nil
		contracts.On("GetByID", mock.Anything, int64(9)).Return(&domain.Contract{ID: 9, Number: "CTR-202609-0004", Status: domain.ContractStatusInProgress}, nil)

		err := svc.Delete(ctx, 9)

		assert.ErrorIs(t, err, domain.ErrConflict)
		contracts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deletes a cancelled contract", func(t *testing.T) {
		contracts.ExpectedCalls = nil
		contracts.Calls = nil
		contracts.On("GetByID", mock.Anything, int64(9)).Return(&domain.Contract{ID: 9, Status: domain.ContractStatusCancelled}, nil)
		contracts.On("Delete", mock.Anything, int64(9)).Return(nil)

		assert.NoError(t, svc.Delete(ctx, 9))
	})
}
