package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sangkips/retailpos-api/internal/domain/entity"
	"github.com/sangkips/retailpos-api/internal/domain/repository"
	"github.com/sangkips/retailpos-api/pkg/apperror"
)

// SettingsService handles the company settings shown on invoices
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
	}
}

// GetCompany returns the stored settings, or the defaults before the first save.
func (s *SettingsService) GetCompany(ctx context.Context) (*entity.CompanySettings, error) {
	settings, err := s.settingsRepo.GetCompany(ctx)
	if err != nil {
		return nil, fmt.Errorf("get company settings: %w", err)
	}
	if settings == nil {
		return entity.DefaultCompanySettings(), nil
	}
	return settings, nil
}

// EnsureCompany writes the default settings if none exist yet.
func (s *SettingsService) EnsureCompany(ctx context.Context) error {
	settings, err := s.settingsRepo.GetCompany(ctx)
	if err != nil {
		return fmt.Errorf("get company settings: %w", err)
	}
	if settings != nil {
		return nil
	}
	return s.settingsRepo.SaveCompany(ctx, entity.DefaultCompanySettings())
}

// UpdateCompanyInput represents the input for updating company settings.
// The whole record is replaced.
type UpdateCompanyInput struct {
	BrandName  string
	Tagline    string
	Address    string
	Phone      string
	Email      string
	Website    string
	Instagram  string
	Facebook   string
	WhatsApp   string
	PaymentID  string
	PayeeName  string
	FooterNote string
}

// UpdateCompany validates and replaces the company settings
func (s *SettingsService) UpdateCompany(ctx context.Context, input *UpdateCompanyInput) (*entity.CompanySettings, error) {
	var errs []apperror.FieldError
	brand, fe := validateName("brand_name", input.BrandName)
	if fe != nil {
		errs = append(errs, *fe)
	}
	email := strings.TrimSpace(input.Email)
	if email != "" {
		if fe := validateEmail("email", email); fe != nil {
			errs = append(errs, *fe)
		}
	}
	paymentID := strings.TrimSpace(input.PaymentID)
	if paymentID != "" && !strings.Contains(paymentID, "@") {
		errs = append(errs, apperror.FieldError{Field: "payment_id", Message: "must be a payment address like name@bank"})
	}
	if len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	settings := &entity.CompanySettings{
		ID:         entity.CompanySettingsID,
		BrandName:  brand,
		Tagline:    strings.TrimSpace(input.Tagline),
		Address:    strings.TrimSpace(input.Address),
		Phone:      strings.TrimSpace(input.Phone),
		Email:      email,
		Website:    strings.TrimSpace(input.Website),
		Instagram:  strings.TrimSpace(input.Instagram),
		Facebook:   strings.TrimSpace(input.Facebook),
		WhatsApp:   strings.TrimSpace(input.WhatsApp),
		PaymentID:  paymentID,
		PayeeName:  strings.TrimSpace(input.PayeeName),
		FooterNote: strings.TrimSpace(input.FooterNote),
	}
	if err := s.settingsRepo.SaveCompany(ctx, settings); err != nil {
		return nil, fmt.Errorf("save company settings: %w", err)
	}
	return settings, nil
}
