package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bill is a finalized sale. Bills are never updated or deleted.
type Bill struct {
	ID              string     `gorm:"type:uuid;primaryKey" json:"id" firestore:"-"`
	BillNumber      int64      `gorm:"uniqueIndex;not null" json:"bill_number" firestore:"billNumber"`
	CustomerName    string     `gorm:"size:255;not null" json:"customer_name" firestore:"customerName"`
	CustomerNumber  string     `gorm:"size:32;index" json:"customer_number" firestore:"customerNumber"`
	CustomerAddress string     `gorm:"type:text" json:"customer_address" firestore:"customerAddress"`
	BillingDate     string     `gorm:"size:10;not null;index" json:"billing_date" firestore:"billingDate"`
	BillingTime     string     `gorm:"size:5" json:"billing_time" firestore:"billingTime"`
	ModeOfDelivery  string     `gorm:"size:50" json:"mode_of_delivery" firestore:"modeOfDelivery"`
	ModeOfPayment   string     `gorm:"size:50" json:"mode_of_payment" firestore:"modeOfPayment"`
	Products        []BillLine `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE" json:"products" firestore:"products"`
	OverallTotal    float64    `gorm:"type:numeric(12,2);not null" json:"overall_total" firestore:"overallTotal"`
	OverallDiscount float64    `gorm:"not null;default:0" json:"overall_discount" firestore:"overallDiscount"`
	FinalTotal      float64    `gorm:"type:numeric(12,2);not null" json:"final_total" firestore:"finalTotal"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at" firestore:"createdAt,serverTimestamp"`
}

func (b *Bill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

func (Bill) TableName() string {
	return "bills"
}

// DiscountAmount is the money taken off by the overall discount.
func (b *Bill) DiscountAmount() float64 {
	return b.OverallTotal - b.FinalTotal
}

// BillLine is one product row of a bill, priced at the time of sale.
type BillLine struct {
	ID              uint    `gorm:"primaryKey" json:"-" firestore:"-"`
	BillID          string  `gorm:"type:uuid;not null;index" json:"-" firestore:"-"`
	Position        int     `gorm:"not null" json:"-" firestore:"-"`
	Name            string  `gorm:"size:255;not null" json:"name" firestore:"name"`
	Quantity        float64 `gorm:"not null" json:"quantity" firestore:"quantity"`
	UnitPrice       float64 `gorm:"type:numeric(12,2);not null" json:"unit_price" firestore:"unitPrice"`
	Discount        float64 `gorm:"type:numeric(5,2);not null;default:0" json:"discount" firestore:"discount"`
	DiscountedTotal float64 `gorm:"type:numeric(12,2);not null" json:"discounted_total" firestore:"discountedTotal"`
}

func (BillLine) TableName() string {
	return "bill_lines"
}

// BillCounter is the sequence record bill numbers are drawn from.
type BillCounter struct {
	Name  string `gorm:"size:64;primaryKey" firestore:"-"`
	Value int64  `gorm:"not null;default:0" firestore:"value"`
}

func (BillCounter) TableName() string {
	return "bill_counters"
}
