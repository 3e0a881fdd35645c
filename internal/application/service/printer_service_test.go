package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sangkips/retailpos-api/internal/domain/entity"
	"github.com/sangkips/retailpos-api/pkg/printer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePrinter struct {
	jobs [][]byte
	err  error
}

func (p *capturePrinter) Print(_ context.Context, data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, data)
	return nil
}

func (p *capturePrinter) Close() error                     { return nil }
func (p *capturePrinter) IsConnected(context.Context) bool { return p.err == nil }

func TestPrinterService_PrintBill(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	dev := &capturePrinter{}
	svc := NewPrinterService(dev, env.billing, env.settings, printer.TypeNetwork, discardLogger())

	bill, err := env.billing.CreateBill(ctx, &CreateBillInput{
		CustomerName:    "Asha",
		ModeOfPayment:   "cash",
		OverallDiscount: ptr(10.0),
		Items:           []BillItemInput{{Name: "Rice", Quantity: 2.5, UnitPrice: ptr(40.0)}},
	})
	require.NoError(t, err)

	result, err := svc.PrintBill(ctx, bill.ID)
	require.NoError(t, err)
	assert.True(t, result.Printed)
	assert.Equal(t, int64(1), result.Receipt.BillNumber)
	assert.Equal(t, "2.5", result.Receipt.Items[0].Quantity)
	assert.Equal(t, 90.0, result.Receipt.Total)

	require.Len(t, dev.jobs, 1)
	job := dev.jobs[0]
	assert.True(t, bytes.Contains(job, []byte("2.5x Rice")))
	assert.True(t, bytes.Contains(job, []byte("Discount:")))
	assert.True(t, bytes.Contains(job, []byte("90.00")))
	assert.True(t, bytes.Contains(job, []byte(entity.DefaultCompanySettings().FooterNote)))
}

func TestPrinterService_NoPrinterReturnsPreview(t *testing.T) {
	env := newTestEnv(t)
	svc := NewPrinterService(printer.NewNullPrinter(), env.billing, env.settings, printer.TypeNone, discardLogger())

	result, err := svc.TestPrint(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Printed)
	assert.Len(t, result.Receipt.Items, 2)

	status := svc.GetStatus(context.Background())
	assert.False(t, status.Configured)
	assert.False(t, status.Connected)
}

func TestPrinterService_DeviceError(t *testing.T) {
	env := newTestEnv(t)
	svc := NewPrinterService(&capturePrinter{err: errors.New("paper out")}, env.billing, env.settings, printer.TypeUSB, discardLogger())
	bill := env.addBill(t, "Asha", "", "2024-03-05", 10)

	_, err := svc.PrintBill(context.Background(), bill.ID)
	assert.Error(t, err)

	_, err = svc.PrintBill(context.Background(), "missing")
	assert.Error(t, err)
}
