package request

// UpdateCompanyRequest replaces the company settings.
type UpdateCompanyRequest struct {
	BrandName  string `json:"brand_name"`
	Tagline    string `json:"tagline"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Website    string `json:"website"`
	Instagram  string `json:"instagram"`
	Facebook   string `json:"facebook"`
	WhatsApp   string `json:"whatsapp"`
	PaymentID  string `json:"payment_id"`
	PayeeName  string `json:"payee_name"`
	FooterNote string `json:"footer_note"`
}

// AddAuthorizedUserRequest grants an account access.
type AddAuthorizedUserRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"omitempty,oneof=admin staff"`
}
