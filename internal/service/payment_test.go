package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"carloc-backend/internal/domain"
	"carloc-backend/internal/service"
)

func TestPaymentService_Create(t *testing.T) {
	ctx := context.Background()
	payments := new(MockPaymentRepo)
	contracts := new(MockContractRepo)
	reservations := new(MockReservationRepo)
	svc := service.NewPaymentService(payments, contracts, reservations)

	reset := func() {
		payments.ExpectedCalls = nil
		payments.Calls = nil
		contracts.ExpectedCalls = nil
		contracts.Calls = nil
		reservations.ExpectedCalls = nil
		reservations.Calls = nil
	}

	t.Run("creates a partial payment against a contract", func(t *testing.T) {
		reset()
		contracts.On("GetByID", mock.Anything, int64(9)).Return(&domain.Contract{ID: 9}, nil)
		payments.On("Create", mock.Anything, mock.AnythingOfType("*domain.Payment")).Return(nil)

		payment, err := svc.Create(ctx, &service.PaymentInput{
			Target:     domain.PaymentTarget{Kind: domain.PaymentTargetContract, ID: 9},
			TotalCents: 22000,
			PaidCents:  10000,
			Method:     "cash",
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusPartial, payment.Status)
		assert.NotEmpty(t, payment.Reference)
		assert.NotNil(t, payment.PaidOn)
	})

	t.Run("rejects a payment on a missing contract", func(t *testing.T) {
		reset()
		contracts.On("GetByID", mock.Anything, int64(99)).Return(nil, domain.NotFoundError("contrat", 99))

		payment, err := svc.Create(ctx, &service.PaymentInput{
			Target:     domain.PaymentTarget{Kind: domain.PaymentTargetContract, ID: 99},
			TotalCents: 22000,
		})

		assert.Nil(t, payment)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects paid over total", func(t *testing.T) {
		reset()

		payment, err := svc.Create(ctx, &service.PaymentInput{
			Target:     domain.PaymentTarget{Kind: domain.PaymentTargetReservation, ID: 41},
			TotalCents: 10000,
			PaidCents:  12000,
		})

		assert.Nil(t, payment)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestPaymentService_RecordPayment(t *testing.T) {
	ctx := context.Background()
	payments := new(MockPaymentRepo)
	contracts := new(MockContractRepo)
	reservations := new(MockReservationRepo)
	svc := service.NewPaymentService(payments, contracts, reservations)

	reset := func() {
		payments.ExpectedCalls = nil
		payments.Calls = nil
	}

	stored := func(paid int64, status domain.PaymentStatus) *domain.Payment {
		return &domain.Payment{
			ID:         4,
			Target:     domain.PaymentTarget{Kind: domain.PaymentTargetContract, ID: 9},
			TotalCents: 22000,
			PaidCents:  paid,
			Status:     status,
		}
	}

	t.Run("settles the balance and flips to paid", func(t *testing.T) {
		reset()
		payments.On("GetByID", mock.Anything, int64(4)).Return(stored(10000, domain.PaymentStatusPartial), nil)
		payments.On("Update", mock.Anything, mock.AnythingOfType("*domain.Payment")).Return(nil)

		payment, err := svc.RecordPayment(ctx, 4, 12000)

		assert.NoError(t, err)
		assert.Equal(t, int64(22000), payment.PaidCents)
		assert.Equal(t, domain.PaymentStatusPaid, payment.Status)
		assert.NotNil(t, payment.PaidOn)
	})

	t.Run("refuses to touch a settled payment", func(t *testing.T) {
		reset()
		payments.On("GetByID", mock.Anything, int64(4)).Return(stored(22000, domain.PaymentStatusPaid), nil)

		payment, err := svc.RecordPayment(ctx, 4, 100)

		assert.Nil(t, payment)
		assert.ErrorIs(t, err, domain.ErrConflict)
		payments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("refuses an amount over the balance", func(t *testing.T) {
		reset()
		payments.On("GetByID", mock.Anything, int64(4)).Return(stored(10000, domain.PaymentStatusPartial), nil)

		payment, err := svc.RecordPayment(ctx, 4, 13000)

		assert.Nil(t, payment)
		assert.ErrorIs(t, err, domain.ErrConflict)
		payments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
