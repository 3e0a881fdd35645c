package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/retailpos-api/internal/application/service"
	"github.com/sangkips/retailpos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/retailpos-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles company settings requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetCompany returns the company settings
func (h *SettingsHandler) GetCompany(c *gin.Context) {
	company, err := h.settingsService.GetCompany(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Company settings retrieved successfully", company)
}

// UpdateCompany replaces the company settings
func (h *SettingsHandler) UpdateCompany(c *gin.Context) {
	var req request.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	company, err := h.settingsService.UpdateCompany(c.Request.Context(), &service.UpdateCompanyInput{
		BrandName:  req.BrandName,
		Tagline:    req.Tagline,
		Address:    req.Address,
		Phone:      req.Phone,
		Email:      req.Email,
		Website:    req.Website,
		Instagram:  req.Instagram,
		Facebook:   req.Facebook,
		WhatsApp:   req.WhatsApp,
		PaymentID:  req.PaymentID,
		PayeeName:  req.PayeeName,
		FooterNote: req.FooterNote,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Company settings updated successfully", company)
}
