package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sangkips/retailpos-api/internal/domain/entity"
	"github.com/sangkips/retailpos-api/internal/domain/enum"
	"github.com/sangkips/retailpos-api/internal/domain/repository"
	"github.com/sangkips/retailpos-api/pkg/apperror"
	"github.com/sangkips/retailpos-api/pkg/pagination"
)

const maxNameLength = 255

// ProductService handles product-related operations
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name      string
	UnitType  enum.UnitType
	UnitValue float64
	Category  string
	Price     float64
}

// UpdateProductInput carries the fields to change; nil fields are kept.
type UpdateProductInput struct {
	ID        string
	Name      *string
	UnitType  *enum.UnitType
	UnitValue *float64
	Category  *string
	Price     *float64
}

func validateName(field, name string) (string, *apperror.FieldError) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &apperror.FieldError{Field: field, Message: "is required"}
	}
	if len([]rune(name)) > maxNameLength {
		return "", &apperror.FieldError{Field: field, Message: fmt.Sprintf("must be at most %d characters", maxNameLength)}
	}
	return name, nil
}

func validateProduct(p *entity.Product) error {
	var errs []apperror.FieldError
	name, fe := validateName("name", p.Name)
	if fe != nil {
		errs = append(errs, *fe)
	}
	p.Name = name
	p.Category = strings.TrimSpace(p.Category)
	if !p.UnitType.IsValid() {
		errs = append(errs, apperror.FieldError{Field: "unit_type", Message: "must be weight or piece"})
	}
	if p.UnitValue <= 0 {
		errs = append(errs, apperror.FieldError{Field: "unit_value", Message: "must be greater than 0"})
	}
	if p.Price < 0 {
		errs = append(errs, apperror.FieldError{Field: "price", Message: "must not be negative"})
	}
	if len(errs) > 0 {
		return apperror.NewValidationError(errs)
	}
	return nil
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	product := &entity.Product{
		Name:      input.Name,
		UnitType:  input.UnitType,
		UnitValue: input.UnitValue,
		Category:  input.Category,
		Price:     input.Price,
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// UpdateProduct updates a product. The last write wins.
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.UnitType != nil {
		product.UnitType = *input.UnitType
	}
	if input.UnitValue != nil {
		product.UnitValue = *input.UnitValue
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return product, nil
}

// DeleteProduct deletes a product. Bills keep their own copy of the line.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
