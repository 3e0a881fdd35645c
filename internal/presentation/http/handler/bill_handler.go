package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/retailpos-api/internal/application/service"
	"github.com/sangkips/retailpos-api/internal/domain/repository"
	"github.com/sangkips/retailpos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/retailpos-api/internal/presentation/http/dto/response"
)

// BillHandler handles bill-related HTTP requests
type BillHandler struct {
	billingService *service.BillingService
	invoiceService *service.InvoiceService
	printerService *service.PrinterService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(
	billingService *service.BillingService,
	invoiceService *service.InvoiceService,
	printerService *service.PrinterService,
) *BillHandler {
	return &BillHandler{
		billingService: billingService,
		invoiceService: invoiceService,
		printerService: printerService,
	}
}

func toBillInput(req *request.CreateBillRequest) *service.CreateBillInput {
	items := make([]service.BillItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.BillItemInput{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Discount:  item.Discount,
		}
	}
	return &service.CreateBillInput{
		CustomerName:    req.CustomerName,
		CustomerNumber:  req.CustomerNumber,
		CustomerAddress: req.CustomerAddress,
		BillingDate:     req.BillingDate,
		BillingTime:     req.BillingTime,
		ModeOfDelivery:  req.ModeOfDelivery,
		ModeOfPayment:   req.ModeOfPayment,
		Items:           items,
		OverallDiscount: req.OverallDiscount,
		GrandTotal:      req.GrandTotal,
	}
}

// List handles listing bills, newest first
// @Summary List bills
// @Tags bills
// @Param search query string false "Customer name or number"
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Router /bills [get]
func (h *BillHandler) List(c *gin.Context) {
	var filter request.BillFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.billingService.ListBills(c.Request.Context(), &repository.BillFilterParams{
		Pagination: paginationParams(filter.Page, filter.PerPage),
		Search:     filter.Search,
		From:       filter.From,
		To:         filter.To,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Bills retrieved successfully", result)
}

// Create handles saving a bill
// @Summary Create bill
// @Tags bills
// @Accept json
// @Param Idempotency-Key header string false "Replay protection key"
// @Router /bills [post]
func (h *BillHandler) Create(c *gin.Context) {
	var req request.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	bill, err := h.billingService.CreateBill(c.Request.Context(), toBillInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Bill created successfully", bill)
}

// Preview computes the totals of a cart without saving it
func (h *BillHandler) Preview(c *gin.Context) {
	var req request.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	preview, err := h.billingService.PreviewBill(c.Request.Context(), toBillInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill preview computed", preview)
}

// Get handles getting a single bill
func (h *BillHandler) Get(c *gin.Context) {
	bill, err := h.billingService.GetBill(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved successfully", bill)
}

// Invoice downloads the rendered invoice of a bill
// @Summary Download invoice
// @Tags bills
// @Produce application/pdf
// @Router /bills/{id}/invoice [get]
func (h *BillHandler) Invoice(c *gin.Context) {
	doc, err := h.invoiceService.RenderInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Attachment(c, doc.FileName, doc.ContentType, doc.Data)
}

// Share builds a chat link for sending the bill to its customer
func (h *BillHandler) Share(c *gin.Context) {
	link, err := h.invoiceService.ShareLink(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Share link created", link)
}

// Print sends the bill receipt to the configured printer
func (h *BillHandler) Print(c *gin.Context) {
	result, err := h.printerService.PrintBill(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Receipt printed"
	if !result.Printed {
		message = "No printer configured, receipt preview returned"
	}
	response.OK(c, message, result)
}
