package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sangkips/retailpos-api/internal/domain/entity"
	"github.com/sangkips/retailpos-api/internal/domain/repository"
	"github.com/sangkips/retailpos-api/pkg/apperror"
	"github.com/sangkips/retailpos-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// CustomerService derives the customer directory from bill history.
type CustomerService struct {
	billRepo repository.BillRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(billRepo repository.BillRepository) *CustomerService {
	return &CustomerService{billRepo: billRepo}
}

// SummarizeCustomers groups bills by customer number. Name and address come
// from the customer's latest bill. Bills without a number are left out.
func SummarizeCustomers(bills []entity.Bill) []entity.CustomerSummary {
	type acc struct {
		summary    entity.CustomerSummary
		total      decimal.Decimal
		lastNumber int64
	}
	byNumber := make(map[string]*acc)

	for _, b := range bills {
		number := strings.TrimSpace(b.CustomerNumber)
		if number == "" {
			continue
		}
		a, ok := byNumber[number]
		if !ok {
			a = &acc{summary: entity.CustomerSummary{Number: number}, total: decimal.Zero}
			byNumber[number] = a
		}
		a.summary.BillCount++
		a.total = a.total.Add(decimal.NewFromFloat(b.FinalTotal))
		if b.BillNumber >= a.lastNumber {
			a.lastNumber = b.BillNumber
			a.summary.Name = b.CustomerName
			a.summary.Address = b.CustomerAddress
		}
		if b.BillingDate > a.summary.LastBillDate {
			a.summary.LastBillDate = b.BillingDate
		}
	}

	out := make([]entity.CustomerSummary, 0, len(byNumber))
	for _, a := range byNumber {
		a.summary.TotalSpent = a.total.Round(2).InexactFloat64()
		out = append(out, a.summary)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastBillDate != out[j].LastBillDate {
			return out[i].LastBillDate > out[j].LastBillDate
		}
		return out[i].Number < out[j].Number
	})
	return out
}

// ListCustomers returns customers matching search on name or number, most
// recent first.
func (s *CustomerService) ListCustomers(ctx context.Context, search string, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.CustomerSummary], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()

	bills, err := s.billRepo.ListByDateRange(ctx, "", "")
	if err != nil {
		return nil, fmt.Errorf("load bills for customers: %w", err)
	}

	customers := SummarizeCustomers(bills)
	if search = strings.ToLower(strings.TrimSpace(search)); search != "" {
		matched := customers[:0]
		for _, c := range customers {
			if strings.Contains(strings.ToLower(c.Name), search) || strings.Contains(c.Number, search) {
				matched = append(matched, c)
			}
		}
		customers = matched
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, int64(len(customers)))
	return pagination.NewPaginatedResult(pagination.Page(customers, params), pag), nil
}

// CustomerBills returns a customer's bills newest first.
func (s *CustomerService) CustomerBills(ctx context.Context, number string) ([]entity.Bill, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, apperror.NewFieldError("number", "is required")
	}
	bills, err := s.billRepo.ListByCustomerNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("list customer bills: %w", err)
	}
	if len(bills) == 0 {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return bills, nil
}
