package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sangkips/retailpos-api/internal/domain/billing"
	"github.com/sangkips/retailpos-api/internal/domain/entity"
	"github.com/sangkips/retailpos-api/internal/domain/repository"
	"github.com/sangkips/retailpos-api/internal/infrastructure/metrics"
	"github.com/sangkips/retailpos-api/pkg/apperror"
	"github.com/sangkips/retailpos-api/pkg/pagination"
)

// BillSavedHook runs after a bill is stored, e.g. to invalidate cached reports.
type BillSavedHook interface {
	BillSaved(ctx context.Context, bill *entity.Bill)
}

// BillingService turns carts into stored bills.
type BillingService struct {
	billRepo    repository.BillRepository
	productRepo repository.ProductRepository
	metrics     *metrics.Metrics
	hooks       []BillSavedHook
	location    *time.Location
	now         func() time.Time
}

// NewBillingService creates a new billing service. loc is the shop's timezone
// used when a bill arrives without a date or time.
func NewBillingService(
	billRepo repository.BillRepository,
	productRepo repository.ProductRepository,
	m *metrics.Metrics,
	loc *time.Location,
	hooks ...BillSavedHook,
) *BillingService {
	if loc == nil {
		loc = time.UTC
	}
	return &BillingService{
		billRepo:    billRepo,
		productRepo: productRepo,
		metrics:     m,
		hooks:       hooks,
		location:    loc,
		now:         time.Now,
	}
}

// BillItemInput is one cart line. With ProductID set, the name and price are
// taken from the catalog at the time of billing.
type BillItemInput struct {
	ProductID string
	Name      string
	Quantity  float64
	UnitPrice *float64
	Discount  float64
}

// CreateBillInput represents the create bill input. At most one of
// OverallDiscount and GrandTotal may be given.
type CreateBillInput struct {
	CustomerName    string
	CustomerNumber  string
	CustomerAddress string
	BillingDate     string
	BillingTime     string
	ModeOfDelivery  string
	ModeOfPayment   string
	Items           []BillItemInput
	OverallDiscount *float64
	GrandTotal      *float64
}

// BillPreview is a priced cart that has not been saved.
type BillPreview struct {
	Lines  []entity.BillLine `json:"lines"`
	Totals billing.Totals    `json:"totals"`
}

func cartError(err error) error {
	var inputErr *billing.InputError
	switch {
	case errors.Is(err, billing.ErrEmptyCart):
		return apperror.ErrEmptyCart
	case errors.As(err, &inputErr):
		return apperror.NewFieldError(inputErr.Field, "%s", inputErr.Reason)
	default:
		return err
	}
}

// resolveItems fills catalog names and prices in one batch read.
func (s *BillingService) resolveItems(ctx context.Context, items []BillItemInput) ([]billing.Item, error) {
	var ids []string
	for _, item := range items {
		if item.ProductID != "" {
			ids = append(ids, item.ProductID)
		}
	}

	catalog := make(map[string]entity.Product, len(ids))
	if len(ids) > 0 {
		products, err := s.productRepo.GetByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("load cart products: %w", err)
		}
		for _, p := range products {
			catalog[p.ID] = p
		}
	}

	out := make([]billing.Item, 0, len(items))
	for i, item := range items {
		resolved := billing.Item{
			Name:     item.Name,
			Quantity: item.Quantity,
			Discount: item.Discount,
		}
		if item.ProductID != "" {
			p, ok := catalog[item.ProductID]
			if !ok {
				return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
			}
			resolved.Name = p.Name
			resolved.UnitPrice = p.Price
		}
		if item.UnitPrice != nil {
			resolved.UnitPrice = *item.UnitPrice
		} else if item.ProductID == "" {
			return nil, apperror.NewFieldError(fmt.Sprintf("items[%d].unit_price", i), "is required without a product_id")
		}
		out = append(out, resolved)
	}
	return out, nil
}

// compose builds and validates the cart for input.
func (s *BillingService) compose(ctx context.Context, input *CreateBillInput) (*billing.Cart, error) {
	if input.OverallDiscount != nil && input.GrandTotal != nil {
		return nil, apperror.NewFieldError("grand_total", "cannot be combined with overall_discount")
	}

	items, err := s.resolveItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	cart := billing.NewCart()
	for _, item := range items {
		if err := cart.Add(item); err != nil {
			return nil, cartError(err)
		}
	}
	if err := cart.Validate(); err != nil {
		return nil, cartError(err)
	}

	switch {
	case input.OverallDiscount != nil:
		err = cart.SetOverallDiscount(*input.OverallDiscount)
	case input.GrandTotal != nil:
		err = cart.SetGrandTotal(*input.GrandTotal)
	}
	if err != nil {
		return nil, cartError(err)
	}
	return cart, nil
}

func billLines(cart *billing.Cart) []entity.BillLine {
	lines := cart.Lines()
	out := make([]entity.BillLine, len(lines))
	for i, l := range lines {
		out[i] = entity.BillLine{
			Position:        i,
			Name:            l.Name,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
			Discount:        l.Discount,
			DiscountedTotal: l.Final.Round(2).InexactFloat64(),
		}
	}
	return out
}

// PreviewBill prices a cart without saving it.
func (s *BillingService) PreviewBill(ctx context.Context, input *CreateBillInput) (*BillPreview, error) {
	cart, err := s.compose(ctx, input)
	if err != nil {
		return nil, err
	}
	return &BillPreview{Lines: billLines(cart), Totals: cart.Totals()}, nil
}

func (s *BillingService) stampDateTime(input *CreateBillInput) (string, string, error) {
	now := s.now().In(s.location)
	date := strings.TrimSpace(input.BillingDate)
	clock := strings.TrimSpace(input.BillingTime)

	if date == "" {
		date = now.Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return "", "", apperror.NewFieldError("billing_date", "must be formatted YYYY-MM-DD")
	}
	if clock == "" {
		clock = now.Format("15:04")
	} else if _, err := time.Parse("15:04", clock); err != nil {
		return "", "", apperror.NewFieldError("billing_time", "must be formatted HH:MM")
	}
	return date, clock, nil
}

// CreateBill validates the cart, then stores it under the next bill number.
// Nothing is written when validation fails.
func (s *BillingService) CreateBill(ctx context.Context, input *CreateBillInput) (*entity.Bill, error) {
	name, fe := validateName("customer_name", input.CustomerName)
	if fe != nil {
		return nil, apperror.NewValidationError([]apperror.FieldError{*fe})
	}
	date, clock, err := s.stampDateTime(input)
	if err != nil {
		return nil, err
	}
	cart, err := s.compose(ctx, input)
	if err != nil {
		return nil, err
	}

	totals := cart.Totals()
	bill := &entity.Bill{
		CustomerName:    name,
		CustomerNumber:  strings.TrimSpace(input.CustomerNumber),
		CustomerAddress: strings.TrimSpace(input.CustomerAddress),
		BillingDate:     date,
		BillingTime:     clock,
		ModeOfDelivery:  strings.TrimSpace(input.ModeOfDelivery),
		ModeOfPayment:   strings.TrimSpace(input.ModeOfPayment),
		Products:        billLines(cart),
		OverallTotal:    totals.Subtotal,
		OverallDiscount: totals.OverallDiscount,
		FinalTotal:      totals.GrandTotal,
	}

	if err := s.billRepo.CreateWithNextNumber(ctx, bill); err != nil {
		return nil, fmt.Errorf("save bill: %w", err)
	}

	s.metrics.BillCreated(bill.FinalTotal)
	for _, h := range s.hooks {
		h.BillSaved(ctx, bill)
	}
	return bill, nil
}

// GetBill retrieves a bill by ID
func (s *BillingService) GetBill(ctx context.Context, id string) (*entity.Bill, error) {
	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get bill: %w", err)
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

// ListBills lists bills newest first.
func (s *BillingService) ListBills(ctx context.Context, params *repository.BillFilterParams) (*pagination.PaginatedResult[entity.Bill], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()
	if params.From != "" && params.To != "" && params.From > params.To {
		return nil, apperror.NewFieldError("from", "must not be after to")
	}

	bills, total, err := s.billRepo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(bills, pag), nil
}
