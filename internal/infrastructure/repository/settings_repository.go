package repository

import (
	"context"
	"errors"

	"github.com/sangkips/retailpos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/retailpos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) domainRepo.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetCompany(ctx context.Context) (*entity.CompanySettings, error) {
	var settings entity.CompanySettings
	err := r.db.WithContext(ctx).First(&settings, "id = ?", entity.CompanySettingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &settings, err
}

// SaveCompany upserts the singleton row.
func (r *settingsRepository) SaveCompany(ctx context.Context, settings *entity.CompanySettings) error {
	settings.ID = entity.CompanySettingsID
	return r.db.WithContext(ctx).Save(settings).Error
}

type authorizedUserRepository struct {
	db *gorm.DB
}

// NewAuthorizedUserRepository creates the allow-list repository
func NewAuthorizedUserRepository(db *gorm.DB) domainRepo.AuthorizedUserRepository {
	return &authorizedUserRepository{db: db}
}

func (r *authorizedUserRepository) GetByEmail(ctx context.Context, email string) (*entity.AuthorizedUser, error) {
	var user entity.AuthorizedUser
	err := r.db.WithContext(ctx).First(&user, "email = LOWER(?)", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *authorizedUserRepository) List(ctx context.Context) ([]entity.AuthorizedUser, error) {
	var users []entity.AuthorizedUser
	err := r.db.WithContext(ctx).Order("email ASC").Find(&users).Error
	return users, err
}

func (r *authorizedUserRepository) Create(ctx context.Context, user *entity.AuthorizedUser) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *authorizedUserRepository) Delete(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Delete(&entity.AuthorizedUser{}, "email = LOWER(?)", email).Error
}
