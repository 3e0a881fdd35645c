package firestore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/sangkips/retailpos-api/internal/domain/entity"
	"github.com/sangkips/retailpos-api/internal/domain/repository"
	"github.com/sangkips/retailpos-api/pkg/pagination"
	"github.com/sangkips/retailpos-api/pkg/utils"
)

type productRepository struct {
	client *firestore.Client
}

func decodeProduct(snap *firestore.DocumentSnapshot) (entity.Product, error) {
	var p entity.Product
	if err := snap.DataTo(&p); err != nil {
		return p, fmt.Errorf("decode product %s: %w", snap.Ref.ID, err)
	}
	p.ID = snap.Ref.ID
	return p, nil
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	now := time.Now()
	product.CreatedAt, product.UpdatedAt = now, now
	_, err := r.client.Collection(productsCollection).Doc(product.ID).Create(ctx, product)
	return err
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	snap, err := r.client.Collection(productsCollection).Doc(id).Get(ctx)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p, err := decodeProduct(snap)
	return &p, err
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	refs := make([]*firestore.DocumentRef, len(ids))
	for i, id := range ids {
		refs[i] = r.client.Collection(productsCollection).Doc(id)
	}
	snaps, err := r.client.GetAll(ctx, refs)
	if err != nil {
		return nil, err
	}

	out := make([]entity.Product, 0, len(snaps))
	for _, snap := range snaps {
		if !snap.Exists() {
			continue
		}
		p, err := decodeProduct(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	product.UpdatedAt = time.Now()
	_, err := r.client.Collection(productsCollection).Doc(product.ID).Set(ctx, product)
	return err
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(productsCollection).Doc(id).Delete(ctx)
	return err
}

// List filters category and unit type in the query. Firestore has no
// substring match, so name search and paging happen after the read.
func (r *productRepository) List(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	q := r.client.Collection(productsCollection).Query
	if params.Category != "" {
		q = q.Where("category", "==", params.Category)
	}
	if params.UnitType != "" {
		q = q.Where("unitType", "==", string(params.UnitType))
	}

	all, err := collect(q.Documents(ctx), decodeProduct)
	if err != nil {
		return nil, 0, err
	}

	matched := all[:0]
	for _, p := range all {
		if params.Search == "" || utils.ContainsFold(p.Name, params.Search) {
			matched = append(matched, p)
		}
	}
	utils.SortByName(matched, func(p entity.Product) string { return p.Name })
	return pagination.Page(matched, params.Pagination), int64(len(matched)), nil
}

type categoryRepository struct {
	client *firestore.Client
}

func decodeCategory(snap *firestore.DocumentSnapshot) (entity.Category, error) {
	var c entity.Category
	if err := snap.DataTo(&c); err != nil {
		return c, fmt.Errorf("decode category %s: %w", snap.Ref.ID, err)
	}
	c.ID = snap.Ref.ID
	return c, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	category.CreatedAt = time.Now()
	_, err := r.client.Collection(categoriesCollection).Doc(category.ID).Create(ctx, category)
	return err
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	snap, err := r.client.Collection(categoriesCollection).Doc(id).Get(ctx)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c, err := decodeCategory(snap)
	return &c, err
}

// GetByName scans the collection since Firestore equality is case-sensitive.
func (r *categoryRepository) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if strings.EqualFold(all[i].Name, name) {
			return &all[i], nil
		}
	}
	return nil, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	_, err := r.client.Collection(categoriesCollection).Doc(category.ID).Set(ctx, category)
	return err
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(categoriesCollection).Doc(id).Delete(ctx)
	return err
}

func (r *categoryRepository) List(ctx context.Context) ([]entity.Category, error) {
	all, err := collect(r.client.Collection(categoriesCollection).Documents(ctx), decodeCategory)
	if err != nil {
		return nil, err
	}
	utils.SortByName(all, func(c entity.Category) string { return c.Name })
	return all, nil
}
