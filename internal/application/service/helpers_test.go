package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/sangkips/retailpos-api/internal/domain/entity"
	"github.com/sangkips/retailpos-api/internal/domain/enum"
	"github.com/sangkips/retailpos-api/internal/domain/repository"
	"github.com/sangkips/retailpos-api/internal/infrastructure/cache"
	"github.com/sangkips/retailpos-api/internal/infrastructure/memory"
	"github.com/sangkips/retailpos-api/pkg/apperror"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// countingBills counts the range scans that reach the store.
type countingBills struct {
	repository.BillRepository
	rangeScans int
}

func (c *countingBills) ListByDateRange(ctx context.Context, from, to string) ([]entity.Bill, error) {
	c.rangeScans++
	return c.BillRepository.ListByDateRange(ctx, from, to)
}

type testEnv struct {
	store    *memory.Store
	bills    *countingBills
	products *ProductService
	billing  *BillingService
	reports  *ReportService
	settings *SettingsService
	guard    *AccessGuard
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	bills := &countingBills{BillRepository: store.Bills()}
	reports := NewReportService(bills, cache.NewMemoryStore(), time.Minute, nil, discardLogger())
	billingSvc := NewBillingService(bills, store.Products(), nil, time.UTC, reports)
	billingSvc.now = func() time.Time { return fixedNow }

	return &testEnv{
		store:    store,
		bills:    bills,
		products: NewProductService(store.Products()),
		billing:  billingSvc,
		reports:  reports,
		settings: NewSettingsService(store.Settings()),
		guard:    NewAccessGuard(store.AuthorizedUsers(), "owner@shop.test", discardLogger()),
	}
}

func (e *testEnv) addProduct(t *testing.T, name string, price float64) *entity.Product {
	t.Helper()
	p, err := e.products.CreateProduct(context.Background(), &CreateProductInput{
		Name:      name,
		UnitType:  enum.UnitTypePiece,
		UnitValue: 1,
		Price:     price,
	})
	require.NoError(t, err)
	return p
}

func (e *testEnv) addBill(t *testing.T, customer, number, date string, total float64) *entity.Bill {
	t.Helper()
	price := total
	bill, err := e.billing.CreateBill(context.Background(), &CreateBillInput{
		CustomerName:   customer,
		CustomerNumber: number,
		BillingDate:    date,
		BillingTime:    "12:00",
		ModeOfPayment:  "cash",
		Items:          []BillItemInput{{Name: "Item", Quantity: 1, UnitPrice: &price}},
	})
	require.NoError(t, err)
	return bill
}

func requireStatus(t *testing.T, err error, code int) *apperror.AppError {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected an AppError, got %v", err)
	require.Equal(t, code, appErr.Code, appErr.Message)
	return appErr
}

func ptr[T any](v T) *T {
	return &v
}
