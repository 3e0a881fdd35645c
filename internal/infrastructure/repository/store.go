package repository

import (
	domainRepo "github.com/sangkips/retailpos-api/internal/domain/repository"
	"gorm.io/gorm"
)

// Store groups the Postgres repositories behind the same accessors the
// memory and firestore stores expose.
type Store struct {
	db *gorm.DB
}

// NewStore creates a Postgres-backed store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Products() domainRepo.ProductRepository {
	return NewProductRepository(s.db)
}

func (s *Store) Categories() domainRepo.CategoryRepository {
	return NewCategoryRepository(s.db)
}

func (s *Store) Bills() domainRepo.BillRepository {
	return NewBillRepository(s.db)
}

func (s *Store) Settings() domainRepo.SettingsRepository {
	return NewSettingsRepository(s.db)
}

func (s *Store) AuthorizedUsers() domainRepo.AuthorizedUserRepository {
	return NewAuthorizedUserRepository(s.db)
}
