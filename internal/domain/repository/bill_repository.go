package repository

import (
	"context"

	"github.com/sangkips/retailpos-api/internal/domain/entity"
	"github.com/sangkips/retailpos-api/pkg/pagination"
)

// BillCounterName names the sequence bill numbers are drawn from.
const BillCounterName = "bills"

// BillRepository stores finalized bills. There is no update or delete.
type BillRepository interface {
	// CreateWithNextNumber takes the next value of the bill counter and stores
	// the bill under it in one atomic step. bill.BillNumber is set on success.
	CreateWithNextNumber(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id string) (*entity.Bill, error)
	List(ctx context.Context, params *BillFilterParams) ([]entity.Bill, int64, error)
	// ListByDateRange returns bills whose billing date lies in [from, to].
	// Empty bounds are open. Results are ordered oldest first.
	ListByDateRange(ctx context.Context, from, to string) ([]entity.Bill, error)
	ListByCustomerNumber(ctx context.Context, number string) ([]entity.Bill, error)
}

// BillFilterParams contains filtering parameters for bill listings
type BillFilterParams struct {
	Pagination *pagination.PaginationParams
	// Search matches customer name or number.
	Search string
	From   string
	To     string
}
