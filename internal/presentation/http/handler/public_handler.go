package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/retailpos-api/internal/application/service"
	"github.com/sangkips/retailpos-api/internal/presentation/http/dto/response"
)

// PublicHandler serves the pages a customer opens from a shared bill link.
// No authentication.
type PublicHandler struct {
	invoiceService *service.InvoiceService
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(invoiceService *service.InvoiceService) *PublicHandler {
	return &PublicHandler{invoiceService: invoiceService}
}

// Bill returns the bill with company details and payment link
func (h *PublicHandler) Bill(c *gin.Context) {
	view, err := h.invoiceService.PublicView(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved successfully", view)
}

// Invoice downloads the invoice document
func (h *PublicHandler) Invoice(c *gin.Context) {
	doc, err := h.invoiceService.RenderInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Attachment(c, doc.FileName, doc.ContentType, doc.Data)
}
