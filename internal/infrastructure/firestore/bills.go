package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/sangkips/retailpos-api/internal/domain/entity"
	"github.com/sangkips/retailpos-api/internal/domain/repository"
	"github.com/sangkips/retailpos-api/pkg/pagination"
	"github.com/sangkips/retailpos-api/pkg/utils"
)

type billRepository struct {
	client *firestore.Client
}

func decodeBill(snap *firestore.DocumentSnapshot) (entity.Bill, error) {
	var b entity.Bill
	if err := snap.DataTo(&b); err != nil {
		return b, fmt.Errorf("decode bill %s: %w", snap.Ref.ID, err)
	}
	b.ID = snap.Ref.ID
	for i := range b.Products {
		b.Products[i].BillID = b.ID
		b.Products[i].Position = i
	}
	return b, nil
}

// CreateWithNextNumber reads and bumps counters/bills and creates the bill in
// one transaction. Firestore retries the function on contention, so two
// writers never see the same counter value.
func (r *billRepository) CreateWithNextNumber(ctx context.Context, bill *entity.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.NewString()
	}
	counterRef := r.client.Collection(countersCollection).Doc(repository.BillCounterName)
	billRef := r.client.Collection(billsCollection).Doc(bill.ID)

	var next int64
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var counter entity.BillCounter
		snap, err := tx.Get(counterRef)
		switch {
		case isNotFound(err):
		case err != nil:
			return err
		default:
			if err := snap.DataTo(&counter); err != nil {
				return fmt.Errorf("decode bill counter: %w", err)
			}
		}

		next = counter.Value + 1
		if err := tx.Set(counterRef, entity.BillCounter{Value: next}); err != nil {
			return err
		}
		numbered := *bill
		numbered.BillNumber = next
		return tx.Create(billRef, numbered)
	})
	if err != nil {
		return storeError(err)
	}
	bill.BillNumber = next
	return nil
}

func (r *billRepository) GetByID(ctx context.Context, id string) (*entity.Bill, error) {
	snap, err := r.client.Collection(billsCollection).Doc(id).Get(ctx)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	b, err := decodeBill(snap)
	return &b, err
}

// dateRange narrows q to billing dates inside [from, to]. The range field must
// lead the ordering, so callers order by billingDate first.
func dateRange(q firestore.Query, from, to string) firestore.Query {
	if from != "" {
		q = q.Where("billingDate", ">=", from)
	}
	if to != "" {
		q = q.Where("billingDate", "<=", to)
	}
	return q
}

// List pages server-side unless a search term is given; customer search has
// no index so it is matched after the read.
func (r *billRepository) List(ctx context.Context, params *repository.BillFilterParams) ([]entity.Bill, int64, error) {
	q := dateRange(r.client.Collection(billsCollection).Query, params.From, params.To)
	if params.From != "" || params.To != "" {
		q = q.OrderBy("billingDate", firestore.Desc)
	}
	q = q.OrderBy("billNumber", firestore.Desc)

	if params.Search != "" {
		all, err := collect(q.Documents(ctx), decodeBill)
		if err != nil {
			return nil, 0, err
		}
		matched := all[:0]
		for _, b := range all {
			if utils.ContainsFold(b.CustomerName, params.Search) || utils.ContainsFold(b.CustomerNumber, params.Search) {
				matched = append(matched, b)
			}
		}
		return pagination.Page(matched, params.Pagination), int64(len(matched)), nil
	}

	total, err := count(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	if p := params.Pagination; p != nil {
		q = q.Offset(p.Offset()).Limit(p.PerPage)
	}
	bills, err := collect(q.Documents(ctx), decodeBill)
	return bills, total, err
}

func (r *billRepository) ListByDateRange(ctx context.Context, from, to string) ([]entity.Bill, error) {
	q := dateRange(r.client.Collection(billsCollection).Query, from, to).
		OrderBy("billingDate", firestore.Asc).
		OrderBy("billNumber", firestore.Asc)
	return collect(q.Documents(ctx), decodeBill)
}

func (r *billRepository) ListByCustomerNumber(ctx context.Context, number string) ([]entity.Bill, error) {
	q := r.client.Collection(billsCollection).
		Where("customerNumber", "==", number).
		OrderBy("billNumber", firestore.Desc)
	return collect(q.Documents(ctx), decodeBill)
}
