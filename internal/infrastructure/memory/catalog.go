package memory

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/retailpos-api/internal/domain/entity"
	"github.com/sangkips/retailpos-api/internal/domain/repository"
	"github.com/sangkips/retailpos-api/pkg/pagination"
	"github.com/sangkips/retailpos-api/pkg/utils"
)

type productRepository struct {
	s *Store
}

func (r *productRepository) Create(_ context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	now := r.s.now()
	product.CreatedAt, product.UpdatedAt = now, now
	r.s.products[product.ID] = *product
	return nil
}

func (r *productRepository) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *productRepository) GetByIDs(_ context.Context, ids []string) ([]entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]entity.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *productRepository) Update(_ context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	product.UpdatedAt = r.s.now()
	r.s.products[product.ID] = *product
	return nil
}

func (r *productRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.products, id)
	return nil
}

func (r *productRepository) List(_ context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	r.s.mu.RLock()
	matched := make([]entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		if params.Search != "" && !utils.ContainsFold(p.Name, params.Search) {
			continue
		}
		if params.Category != "" && !strings.EqualFold(p.Category, params.Category) {
			continue
		}
		if params.UnitType != "" && p.UnitType != params.UnitType {
			continue
		}
		matched = append(matched, p)
	}
	r.s.mu.RUnlock()

	utils.SortByName(matched, func(p entity.Product) string { return p.Name })
	return pagination.Page(matched, params.Pagination), int64(len(matched)), nil
}

type categoryRepository struct {
	s *Store
}

func (r *categoryRepository) Create(_ context.Context, category *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	category.CreatedAt = r.s.now()
	r.s.categories[category.ID] = *category
	return nil
}

func (r *categoryRepository) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *categoryRepository) GetByName(_ context.Context, name string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.categories {
		if strings.EqualFold(c.Name, name) {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *categoryRepository) Update(_ context.Context, category *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.categories[category.ID] = *category
	return nil
}

func (r *categoryRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.categories, id)
	return nil
}

func (r *categoryRepository) List(_ context.Context) ([]entity.Category, error) {
	r.s.mu.RLock()
	out := make([]entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		out = append(out, c)
	}
	r.s.mu.RUnlock()

	utils.SortByName(out, func(c entity.Category) string { return c.Name })
	return out, nil
}
