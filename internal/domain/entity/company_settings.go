package entity

import "time"

// CompanySettingsID is the fixed key of the singleton settings record.
const CompanySettingsID = "company"

// CompanySettings holds the branding and contact details printed on invoices
// and shown on the public bill page.
type CompanySettings struct {
	ID         string    `gorm:"size:32;primaryKey" json:"-" firestore:"-"`
	BrandName  string    `gorm:"size:255" json:"brand_name" firestore:"brandName"`
	Tagline    string    `gorm:"size:255" json:"tagline" firestore:"tagline"`
	Address    string    `gorm:"type:text" json:"address" firestore:"address"`
	Phone      string    `gorm:"size:32" json:"phone" firestore:"phone"`
	Email      string    `gorm:"size:255" json:"email" firestore:"email"`
	Website    string    `gorm:"size:255" json:"website" firestore:"website"`
	Instagram  string    `gorm:"size:255" json:"instagram" firestore:"instagram"`
	Facebook   string    `gorm:"size:255" json:"facebook" firestore:"facebook"`
	WhatsApp   string    `gorm:"size:32" json:"whatsapp" firestore:"whatsapp"`
	PaymentID  string    `gorm:"size:255" json:"payment_id" firestore:"paymentId"`
	PayeeName  string    `gorm:"size:255" json:"payee_name" firestore:"payeeName"`
	FooterNote string    `gorm:"type:text" json:"footer_note" firestore:"footerNote"`
	UpdatedAt  time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (CompanySettings) TableName() string {
	return "company_settings"
}

// DefaultCompanySettings is what a fresh store starts with.
func DefaultCompanySettings() *CompanySettings {
	return &CompanySettings{
		ID:         CompanySettingsID,
		BrandName:  "My Store",
		FooterNote: "Thank you for shopping with us!",
	}
}
