package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sangkips/retailpos-api/internal/domain/entity"
	"github.com/sangkips/retailpos-api/internal/domain/invoice"
	"github.com/sangkips/retailpos-api/pkg/printer"
)

// receiptWidth is the character width of 58mm paper.
const receiptWidth = 32

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer     printer.Printer
	billing     *BillingService
	settings    *SettingsService
	printerType string
	logger      *slog.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	billing *BillingService,
	settings *SettingsService,
	printerType string,
	logger *slog.Logger,
) *PrinterService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PrinterService{
		printer:     p,
		billing:     billing,
		settings:    settings,
		printerType: printerType,
		logger:      logger,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// PrintResult is the receipt that was sent, and whether it reached a printer.
// With no printer configured the receipt is still returned as a preview.
type PrintResult struct {
	Receipt *entity.Receipt `json:"receipt"`
	Printed bool            `json:"printed"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != printer.TypeNone && s.printerType != "",
		Connected:  s.printer.IsConnected(ctx),
		Type:       s.printerType,
	}
}

func (s *PrinterService) send(ctx context.Context, receipt *entity.Receipt) (*PrintResult, error) {
	err := s.printer.Print(ctx, FormatReceipt(receipt))
	if errors.Is(err, printer.ErrNotConfigured) {
		return &PrintResult{Receipt: receipt}, nil
	}
	if err != nil {
		s.logger.Error("printer error", "bill_number", receipt.BillNumber, "error", err)
		return nil, fmt.Errorf("failed to print receipt: %w", err)
	}
	return &PrintResult{Receipt: receipt, Printed: true}, nil
}

// TestPrint sends a test page to the printer.
func (s *PrinterService) TestPrint(ctx context.Context) (*PrintResult, error) {
	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: "PRINTER TEST",
			Address:   "Test Address",
		},
		Date:     "Test Date",
		Customer: "Walk-in",
		Items: []entity.ReceiptItem{
			{Name: "Test Item 1", Quantity: "1", Total: 10.00},
			{Name: "Test Item 2", Quantity: "0.5", Discount: 10, Total: 4.50},
		},
		SubTotal: 14.50,
		Total:    14.50,
	}
	return s.send(ctx, receipt)
}

// BuildReceipt composes the thermal copy of a stored bill.
func BuildReceipt(bill *entity.Bill, company *entity.CompanySettings) *entity.Receipt {
	r := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: company.BrandName,
			Address:   company.Address,
			Phone:     company.Phone,
		},
		BillNumber:      bill.BillNumber,
		Date:            bill.BillingDate + " " + bill.BillingTime,
		Customer:        bill.CustomerName,
		PaymentMode:     bill.ModeOfPayment,
		SubTotal:        bill.OverallTotal,
		OverallDiscount: bill.OverallDiscount,
		Total:           bill.FinalTotal,
		Footer:          company.FooterNote,
	}
	for _, line := range bill.Products {
		r.Items = append(r.Items, entity.ReceiptItem{
			Name:     line.Name,
			Quantity: invoice.FormatQuantity(line.Quantity),
			Discount: line.Discount,
			Total:    line.DiscountedTotal,
		})
	}
	return r
}

// PrintBill prints the receipt of a stored bill.
func (s *PrinterService) PrintBill(ctx context.Context, billID string) (*PrintResult, error) {
	bill, err := s.billing.GetBill(ctx, billID)
	if err != nil {
		return nil, err
	}
	company, err := s.settings.GetCompany(ctx)
	if err != nil {
		return nil, err
	}
	return s.send(ctx, BuildReceipt(bill, company))
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt) []byte {
	doc := printer.NewDocument(receiptWidth)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	if r.BillNumber > 0 {
		doc.KeyValue("Bill No:", fmt.Sprintf("%d", r.BillNumber))
	}
	doc.KeyValue("Date:", r.Date)
	if r.Customer != "" {
		doc.KeyValue("Customer:", r.Customer)
	}
	if r.PaymentMode != "" {
		doc.KeyValue("Payment:", r.PaymentMode)
	}

	doc.Separator('-')

	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, fmt.Sprintf("%.2f", item.Total))
		if item.Discount > 0 {
			doc.TextF("  less %s%%", invoice.FormatPercent(item.Discount))
		}
	}

	doc.Separator('-')

	doc.KeyValue("Subtotal:", fmt.Sprintf("%.2f", r.SubTotal))
	if r.OverallDiscount > 0 {
		doc.KeyValue("Discount:", invoice.FormatPercent(r.OverallDiscount)+"%")
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", fmt.Sprintf("%.2f", r.Total)).
		SetBold(false)

	doc.Separator('-')

	footer := r.Footer
	if footer == "" {
		footer = "Thank you for shopping with us!"
	}
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text(footer).
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
