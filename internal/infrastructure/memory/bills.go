package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/sangkips/retailpos-api/internal/domain/entity"
	"github.com/sangkips/retailpos-api/internal/domain/repository"
	"github.com/sangkips/retailpos-api/pkg/pagination"
	"github.com/sangkips/retailpos-api/pkg/utils"
)

type billRepository struct {
	s *Store
}

func cloneBill(b entity.Bill) entity.Bill {
	b.Products = append([]entity.BillLine(nil), b.Products...)
	return b
}

func (r *billRepository) CreateWithNextNumber(_ context.Context, bill *entity.Bill) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if bill.ID == "" {
		bill.ID = uuid.NewString()
	}
	r.s.billCounter++
	bill.BillNumber = r.s.billCounter
	bill.CreatedAt = r.s.now()
	r.s.bills = append(r.s.bills, cloneBill(*bill))
	return nil
}

func (r *billRepository) GetByID(_ context.Context, id string) (*entity.Bill, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, b := range r.s.bills {
		if b.ID == id {
			out := cloneBill(b)
			return &out, nil
		}
	}
	return nil, nil
}

// newestFirst walks bills from the latest insert backwards.
func (r *billRepository) newestFirst(keep func(entity.Bill) bool) []entity.Bill {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]entity.Bill, 0)
	for i := len(r.s.bills) - 1; i >= 0; i-- {
		if keep(r.s.bills[i]) {
			out = append(out, cloneBill(r.s.bills[i]))
		}
	}
	return out
}

func (r *billRepository) List(_ context.Context, params *repository.BillFilterParams) ([]entity.Bill, int64, error) {
	matched := r.newestFirst(func(b entity.Bill) bool {
		if params.From != "" && b.BillingDate < params.From {
			return false
		}
		if params.To != "" && b.BillingDate > params.To {
			return false
		}
		if params.Search != "" && !utils.ContainsFold(b.CustomerName, params.Search) && !utils.ContainsFold(b.CustomerNumber, params.Search) {
			return false
		}
		return true
	})
	return pagination.Page(matched, params.Pagination), int64(len(matched)), nil
}

func (r *billRepository) ListByDateRange(_ context.Context, from, to string) ([]entity.Bill, error) {
	matched := r.newestFirst(func(b entity.Bill) bool {
		return (from == "" || b.BillingDate >= from) && (to == "" || b.BillingDate <= to)
	})
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].BillingDate != matched[j].BillingDate {
			return matched[i].BillingDate < matched[j].BillingDate
		}
		return matched[i].BillNumber < matched[j].BillNumber
	})
	return matched, nil
}

func (r *billRepository) ListByCustomerNumber(_ context.Context, number string) ([]entity.Bill, error) {
	return r.newestFirst(func(b entity.Bill) bool { return b.CustomerNumber == number }), nil
}
