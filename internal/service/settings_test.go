package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"carloc-backend/internal/domain"
	"carloc-backend/internal/service"
)

type mockSettingRepo struct {
	mock.Mock
}

func (m *mockSettingRepo) Get(ctx context.Context, key string) (*domain.Setting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Setting), args.Error(1)
}
func (m *mockSettingRepo) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}
func (m *mockSettingRepo) List(ctx context.Context) ([]domain.Setting, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Setting), args.Error(1)
}

func TestSettingsService_CautionPercentage(t *testing.T) {
	ctx := context.Background()
	repo := new(mockSettingRepo)
	svc := service.NewSettingsService(repo)

	t.Run("reads the configured percentage", func(t *testing.T) {
		repo.ExpectedCalls = nil
		repo.Calls = nil
		repo.On("Get", mock.Anything, domain.SettingCautionPercentage).Return(&domain.Setting{Key: domain.SettingCautionPercentage, Value: "25"}, nil)

		pct, err := svc.CautionPercentage(ctx)

		assert.NoError(t, err)
		assert.Equal(t, int64(25), pct)
	})

	t.Run("a missing key means no automatic deposit", func(t *testing.T) {
		repo.ExpectedCalls = nil
		repo.Calls = nil
		repo.On("Get", mock.Anything, domain.SettingCautionPercentage).Return(nil, nil)

		pct, err := svc.CautionPercentage(ctx)

		assert.NoError(t, err)
		assert.Equal(t, int64(0), pct)
	})

	t.Run("an unparsable value means no automatic deposit", func(t *testing.T) {
		repo.ExpectedCalls = nil
		repo.Calls = nil
		repo.On("Get", mock.Anything, domain.SettingCautionPercentage).Return(&domain.Setting{Key: domain.SettingCautionPercentage, Value: "vingt"}, nil)

		pct, err := svc.CautionPercentage(ctx)

		assert.NoError(t, err)
		assert.Equal(t, int64(0), pct)
	})
}

func TestSettingsService_Set(t *testing.T) {
	ctx := context.Background()
	repo := new(mockSettingRepo)
	svc := service.NewSettingsService(repo)

	t.Run("stores a valid percentage", func(t *testing.T) {
		repo.ExpectedCalls = nil
		repo.Calls = nil
		repo.On("Set", mock.Anything, domain.SettingCautionPercentage, "30").Return(nil)

		assert.NoError(t, svc.Set(ctx, domain.SettingCautionPercentage, "30"))
	})

	t.Run("rejects a percentage over 100", func(t *testing.T) {
		repo.ExpectedCalls = nil
		repo.Calls = nil

		err := svc.Set(ctx, domain.SettingCautionPercentage, "150")

		assert.ErrorIs(t, err, domain.ErrValidation)
		repo.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects a non-numeric percentage", func(t *testing.T) {
		repo.ExpectedCalls = nil
		repo.Calls = nil

		err := svc.Set(ctx, domain.SettingCautionPercentage, "beaucoup")

		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("other keys are stored as-is", func(t *testing.T) {
		repo.ExpectedCalls = nil
		repo.Calls = nil
		repo.On("Set", mock.Anything, "company_name", "CarLoc SARL").Return(nil)

		assert.NoError(t, svc.Set(ctx, "company_name", "CarLoc SARL"))
	})
}
