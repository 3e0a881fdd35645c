// Package memory is an in-process implementation of the domain repositories.
// It backs STORE_DRIVER=memory and the service tests. Nothing survives a restart.
package memory

import (
	"sync"
	"time"

	"github.com/sangkips/retailpos-api/internal/domain/entity"
	"github.com/sangkips/retailpos-api/internal/domain/repository"
)

// Store holds every collection behind one lock.
type Store struct {
	mu          sync.RWMutex
	products    map[string]entity.Product
	categories  map[string]entity.Category
	bills       []entity.Bill
	billCounter int64
	settings    *entity.CompanySettings
	users       map[string]entity.AuthorizedUser
	now         func() time.Time
}

func NewStore() *Store {
	return &Store{
		products:   make(map[string]entity.Product),
		categories: make(map[string]entity.Category),
		users:      make(map[string]entity.AuthorizedUser),
		now:        time.Now,
	}
}

func (s *Store) Products() repository.ProductRepository {
	return &productRepository{s: s}
}

func (s *Store) Categories() repository.CategoryRepository {
	return &categoryRepository{s: s}
}

func (s *Store) Bills() repository.BillRepository {
	return &billRepository{s: s}
}

func (s *Store) Settings() repository.SettingsRepository {
	return &settingsRepository{s: s}
}

func (s *Store) AuthorizedUsers() repository.AuthorizedUserRepository {
	return &authorizedUserRepository{s: s}
}
