package request

import "github.com/sangkips/retailpos-api/internal/domain/enum"

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name      string        `json:"name" binding:"required,max=255"`
	UnitType  enum.UnitType `json:"unit_type" binding:"required"`
	UnitValue float64       `json:"unit_value"`
	Category  string        `json:"category" binding:"omitempty,max=255"`
	Price     float64       `json:"price"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Name      *string        `json:"name" binding:"omitempty,max=255"`
	UnitType  *enum.UnitType `json:"unit_type"`
	UnitValue *float64       `json:"unit_value"`
	Category  *string        `json:"category" binding:"omitempty,max=255"`
	Price     *float64       `json:"price"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	UnitType string `form:"unit_type"`
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
}

// CategoryRequest creates or renames a category.
type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}
