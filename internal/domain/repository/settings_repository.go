package repository

import (
	"context"

	"github.com/sangkips/retailpos-api/internal/domain/entity"
)

// SettingsRepository reads and writes the company settings singleton.
type SettingsRepository interface {
	// GetCompany returns (nil, nil) before the settings were ever saved.
	GetCompany(ctx context.Context) (*entity.CompanySettings, error)
	SaveCompany(ctx context.Context, settings *entity.CompanySettings) error
}
