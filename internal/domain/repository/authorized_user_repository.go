package repository

import (
	"context"

	"github.com/sangkips/retailpos-api/internal/domain/entity"
)

// AuthorizedUserRepository is the allow-list store. Emails are stored lower-cased.
type AuthorizedUserRepository interface {
	GetByEmail(ctx context.Context, email string) (*entity.AuthorizedUser, error)
	List(ctx context.Context) ([]entity.AuthorizedUser, error)
	Create(ctx context.Context, user *entity.AuthorizedUser) error
	Delete(ctx context.Context, email string) error
}
