package settings

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=settings_service.go -destination=mock/settings_service_mock.go -package=mock
type Service interface {
	Get(ctx context.Context) (SettingsResponse, error)
	Update(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)
	ProfitReferencePercent(ctx context.Context) (float64, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("settings.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("settings.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Get(ctx context.Context) (SettingsResponse, error) {
	row, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SettingsResponse{ProfitReferencePercent: DefaultProfitReferencePercent}, nil
		}
		return SettingsResponse{}, err
	}
	return mapToResponse(*row), nil
}

// Update performs a full replace of the settings row, creating it on first
// use.
func (s *service) Update(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error) {
	row, err := s.repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return SettingsResponse{}, err
		}
		row = &CompanySettings{
			ID:                     uuid.New(),
			ProfitReferencePercent: DefaultProfitReferencePercent,
		}
	}

	row.CompanyName = req.CompanyName
	row.Address = req.Address
	row.Phone = req.Phone
	row.Email = req.Email
	if req.TaxRate != nil {
		row.TaxRate = *req.TaxRate
	}
	if req.ProfitReferencePercent != nil {
		row.ProfitReferencePercent = *req.ProfitReferencePercent
	}

	if err := s.repo.Save(ctx, row); err != nil {
		s.logger.Error("save settings failed", zap.Error(err))
		return SettingsResponse{}, err
	}

	s.logger.Info("update settings success", zap.String("company", row.CompanyName))
	return mapToResponse(*row), nil
}

// ProfitReferencePercent satisfies the provider interface the payout
// calculator consumes.
func (s *service) ProfitReferencePercent(ctx context.Context) (float64, error) {
	row, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DefaultProfitReferencePercent, nil
		}
		return 0, err
	}
	if row.ProfitReferencePercent <= 0 {
		return DefaultProfitReferencePercent, nil
	}
	return row.ProfitReferencePercent, nil
}

func mapToResponse(s CompanySettings) SettingsResponse {
	return SettingsResponse{
		CompanyName:            s.CompanyName,
		Address:                s.Address,
		Phone:                  s.Phone,
		Email:                  s.Email,
		TaxRate:                s.TaxRate,
		ProfitReferencePercent: s.ProfitReferencePercent,
	}
}
