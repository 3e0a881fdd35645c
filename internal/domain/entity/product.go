package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/retailpos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Product is a catalog item. Category holds the category name, not its id.
type Product struct {
	ID        string        `gorm:"type:uuid;primaryKey" json:"id" firestore:"-"`
	Name      string        `gorm:"size:255;not null;index" json:"name" firestore:"name"`
	UnitType  enum.UnitType `gorm:"size:16;not null" json:"unit_type" firestore:"unitType"`
	UnitValue float64       `gorm:"not null" json:"unit_value" firestore:"unitValue"`
	Category  string        `gorm:"size:255;index" json:"category" firestore:"category"`
	Price     float64       `gorm:"type:numeric(12,2);not null" json:"price" firestore:"price"`
	CreatedAt time.Time     `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time     `json:"updated_at" firestore:"updatedAt"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (Product) TableName() string {
	return "products"
}

// Category groups products for filtering and display.
type Category struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id" firestore:"-"`
	Name      string    `gorm:"size:255;not null;uniqueIndex" json:"name" firestore:"name"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func (Category) TableName() string {
	return "product_categories"
}
