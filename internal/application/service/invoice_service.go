package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/sangkips/retailpos-api/internal/domain/entity"
	"github.com/sangkips/retailpos-api/internal/domain/invoice"
	"github.com/sangkips/retailpos-api/internal/infrastructure/metrics"
	"github.com/sangkips/retailpos-api/pkg/apperror"
)

// InvoiceOptions configures how invoices are drawn and shared.
type InvoiceOptions struct {
	CurrencySymbol      string
	LogoPath            string
	PublicBaseURL       string
	WhatsAppCountryCode string
}

// InvoiceService renders bills as documents and builds their share links.
type InvoiceService struct {
	billing  *BillingService
	settings *SettingsService
	renderer invoice.Renderer
	metrics  *metrics.Metrics
	logger   *slog.Logger
	opts     InvoiceOptions
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	billing *BillingService,
	settings *SettingsService,
	renderer invoice.Renderer,
	m *metrics.Metrics,
	logger *slog.Logger,
	opts InvoiceOptions,
) *InvoiceService {
	if logger == nil {
		logger = slog.Default()
	}
	return &InvoiceService{
		billing:  billing,
		settings: settings,
		renderer: renderer,
		metrics:  m,
		logger:   logger,
		opts:     opts,
	}
}

// Document is a rendered invoice ready to be sent.
type Document struct {
	FileName    string
	ContentType string
	Data        []byte
}

// PublicBill is what the unauthenticated bill page shows.
type PublicBill struct {
	Bill       *entity.Bill            `json:"bill"`
	Company    *entity.CompanySettings `json:"company"`
	PaymentURI string                  `json:"payment_uri,omitempty"`
	InvoiceURL string                  `json:"invoice_url"`
}

// ShareLink is a ready-to-open chat link carrying the bill URL.
type ShareLink struct {
	URL     string `json:"url"`
	Message string `json:"message"`
	BillURL string `json:"bill_url"`
}

// loadLogo reads the configured logo. A missing or unreadable file is logged
// and the invoice is drawn without it.
func (s *InvoiceService) loadLogo() []byte {
	if s.opts.LogoPath == "" {
		return nil
	}
	data, err := os.ReadFile(s.opts.LogoPath)
	if err != nil {
		s.logger.Warn("invoice logo unavailable", "path", s.opts.LogoPath, "error", err)
		return nil
	}
	return data
}

func (s *InvoiceService) load(ctx context.Context, billID string) (*entity.Bill, *entity.CompanySettings, error) {
	bill, err := s.billing.GetBill(ctx, billID)
	if err != nil {
		return nil, nil, err
	}
	company, err := s.settings.GetCompany(ctx)
	if err != nil {
		return nil, nil, err
	}
	return bill, company, nil
}

// Layout composes the printable layout of a bill.
func (s *InvoiceService) Layout(ctx context.Context, billID string) (*invoice.Layout, *entity.Bill, error) {
	bill, company, err := s.load(ctx, billID)
	if err != nil {
		return nil, nil, err
	}
	layout := invoice.Compose(bill, company, invoice.Options{
		CurrencySymbol: s.opts.CurrencySymbol,
		Logo:           s.loadLogo(),
	})
	return layout, bill, nil
}

// RenderInvoice draws the bill into a downloadable document.
func (s *InvoiceService) RenderInvoice(ctx context.Context, billID string) (*Document, error) {
	layout, bill, err := s.Layout(ctx, billID)
	if err != nil {
		return nil, err
	}

	data, err := s.renderer.Render(ctx, layout)
	s.metrics.InvoiceRendered(err == nil)
	if err != nil {
		return nil, fmt.Errorf("render invoice for bill %d: %w", bill.BillNumber, err)
	}

	return &Document{
		FileName:    invoice.FileName(bill, s.renderer.Extension()),
		ContentType: s.renderer.ContentType(),
		Data:        data,
	}, nil
}

func (s *InvoiceService) invoiceURL(billID string) string {
	return fmt.Sprintf("%s/api/v1/public/bills/%s/invoice", s.opts.PublicBaseURL, billID)
}

// PublicView returns a bill with the details needed to pay it.
func (s *InvoiceService) PublicView(ctx context.Context, billID string) (*PublicBill, error) {
	bill, company, err := s.load(ctx, billID)
	if err != nil {
		return nil, err
	}

	view := &PublicBill{
		Bill:       bill,
		Company:    company,
		InvoiceURL: s.invoiceURL(bill.ID),
	}
	if company.PaymentID != "" {
		view.PaymentURI = invoice.PaymentURI(company.PaymentID, company.PayeeName, bill.FinalTotal)
	}
	return view, nil
}

// ShareLink builds the messaging link that sends the bill to its customer.
func (s *InvoiceService) ShareLink(ctx context.Context, billID string) (*ShareLink, error) {
	bill, company, err := s.load(ctx, billID)
	if err != nil {
		return nil, err
	}

	billURL := s.invoiceURL(bill.ID)
	message := invoice.ShareMessage(bill, company, s.opts.CurrencySymbol, billURL)
	link, err := invoice.WhatsAppLink(bill.CustomerNumber, s.opts.WhatsAppCountryCode, message)
	if errors.Is(err, invoice.ErrNoPhoneNumber) {
		return nil, apperror.NewAppError(http.StatusUnprocessableEntity, "This bill has no customer phone number to share with")
	}
	if err != nil {
		return nil, err
	}
	return &ShareLink{URL: link, Message: message, BillURL: billURL}, nil
}
