package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/sangkips/retailpos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/retailpos-api/internal/domain/repository"
	"gorm.io/gorm"
)

// nextBillNumberSQL bumps the counter row, creating it on first use. The row
// lock taken by the upsert serializes concurrent bill inserts.
const nextBillNumberSQL = `INSERT INTO bill_counters (name, value) VALUES (?, 1)
ON CONFLICT (name) DO UPDATE SET value = bill_counters.value + 1
RETURNING value`

type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *gorm.DB) domainRepo.BillRepository {
	return &billRepository{db: db}
}

// nextBillNumber must run inside the transaction that inserts the bill so a
// failed insert gives the number back.
func nextBillNumber(tx *gorm.DB) (int64, error) {
	var next int64
	if err := tx.Raw(nextBillNumberSQL, domainRepo.BillCounterName).Scan(&next).Error; err != nil {
		return 0, fmt.Errorf("next bill number: %w", err)
	}
	if next == 0 {
		return 0, errors.New("next bill number: counter returned no value")
	}
	return next, nil
}

func (r *billRepository) CreateWithNextNumber(ctx context.Context, bill *entity.Bill) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		next, err := nextBillNumber(tx)
		if err != nil {
			return err
		}
		bill.BillNumber = next
		for i := range bill.Products {
			bill.Products[i].Position = i
		}
		return tx.Create(bill).Error
	})
}

func (r *billRepository) withLines(db *gorm.DB) *gorm.DB {
	return db.Preload("Products", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

func (r *billRepository) GetByID(ctx context.Context, id string) (*entity.Bill, error) {
	if !validID(id) {
		return nil, nil
	}
	var bill entity.Bill
	err := r.db.WithContext(ctx).Scopes(r.withLines).First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) List(ctx context.Context, params *domainRepo.BillFilterParams) ([]entity.Bill, int64, error) {
	var bills []entity.Bill
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Bill{}).
		Scopes(BillingDateBetween(params.From, params.To))
	if params.Search != "" {
		query = query.Where("customer_name ILIKE ? OR customer_number ILIKE ?",
			likePattern(params.Search), likePattern(params.Search))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(r.withLines, Paginate(params.Pagination)).
		Order("bill_number DESC").
		Find(&bills).Error
	return bills, total, err
}

func (r *billRepository) ListByDateRange(ctx context.Context, from, to string) ([]entity.Bill, error) {
	var bills []entity.Bill
	err := r.db.WithContext(ctx).
		Scopes(r.withLines, BillingDateBetween(from, to)).
		Order("billing_date ASC, bill_number ASC").
		Find(&bills).Error
	return bills, err
}

func (r *billRepository) ListByCustomerNumber(ctx context.Context, number string) ([]entity.Bill, error) {
	var bills []entity.Bill
	err := r.db.WithContext(ctx).
		Scopes(r.withLines).
		Where("customer_number = ?", number).
		Order("bill_number DESC").
		Find(&bills).Error
	return bills, err
}
