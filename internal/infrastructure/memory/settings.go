package memory

import (
	"context"
	"strings"

	"github.com/sangkips/retailpos-api/internal/domain/entity"
	"github.com/sangkips/retailpos-api/pkg/utils"
)

type settingsRepository struct {
	s *Store
}

func (r *settingsRepository) GetCompany(_ context.Context) (*entity.CompanySettings, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if r.s.settings == nil {
		return nil, nil
	}
	out := *r.s.settings
	return &out, nil
}

func (r *settingsRepository) SaveCompany(_ context.Context, settings *entity.CompanySettings) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	settings.ID = entity.CompanySettingsID
	settings.UpdatedAt = r.s.now()
	saved := *settings
	r.s.settings = &saved
	return nil
}

type authorizedUserRepository struct {
	s *Store
}

func (r *authorizedUserRepository) GetByEmail(_ context.Context, email string) (*entity.AuthorizedUser, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *authorizedUserRepository) List(_ context.Context) ([]entity.AuthorizedUser, error) {
	r.s.mu.RLock()
	out := make([]entity.AuthorizedUser, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, u)
	}
	r.s.mu.RUnlock()

	utils.SortByName(out, func(u entity.AuthorizedUser) string { return u.Email })
	return out, nil
}

func (r *authorizedUserRepository) Create(_ context.Context, user *entity.AuthorizedUser) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user.Email = strings.ToLower(user.Email)
	if user.AddedAt.IsZero() {
		user.AddedAt = r.s.now()
	}
	r.s.users[user.Email] = *user
	return nil
}

func (r *authorizedUserRepository) Delete(_ context.Context, email string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.users, strings.ToLower(email))
	return nil
}
