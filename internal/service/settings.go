package service

import (
	"context"
	"strconv"

	"carloc-backend/internal/domain"
	"carloc-backend/internal/logger"
	"carloc-backend/internal/repository"
)

type settingsService struct {
	settingRepo repository.SettingRepository
}

func NewSettingsService(settingRepo repository.SettingRepository) SettingsService {
	return &settingsService{settingRepo: settingRepo}
}

func (s *settingsService) Get(ctx context.Context, key string) (*domain.Setting, error) {
	setting, err := s.settingRepo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, domain.NotFoundError("setting", 0)
	}
	return setting, nil
}

func (s *settingsService) Set(ctx context.Context, key, value string) error {
	var verr domain.ValidationErrors
	if key == "" {
		verr.Add("key", "clé requise")
	}
	if key == domain.SettingCautionPercentage {
		pct, err := strconv.ParseInt(value, 10, 64)
		if err != nil || pct < 0 || pct > 100 {
			verr.Add("value", "pourcentage entre 0 et 100 requis")
		}
	}
	if err := verr.Err(); err != nil {
		return err
	}
	return s.settingRepo.Set(ctx, key, value)
}

func (s *settingsService) List(ctx context.Context) ([]domain.Setting, error) {
	return s.settingRepo.List(ctx)
}

// CautionPercentage reads the deposit percentage. Missing or unparsable
// values mean no automatic deposit, not an error.
func (s *settingsService) CautionPercentage(ctx context.Context) (int64, error) {
	setting, err := s.settingRepo.Get(ctx, domain.SettingCautionPercentage)
	if err != nil {
		return 0, err
	}
	if setting == nil || setting.Value == "" {
		return 0, nil
	}
	pct, err := strconv.ParseInt(setting.Value, 10, 64)
	if err != nil {
		logger.Warn("Ignoring unparsable caution_percentage setting", "value", setting.Value)
		return 0, nil
	}
	return pct, nil
}
