package pdf

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"testing"

	"github.com/sangkips/retailpos-api/internal/domain/entity"
	"github.com/sangkips/retailpos-api/internal/domain/invoice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLayout(logo []byte) *invoice.Layout {
	bill := &entity.Bill{
		BillNumber:     12,
		CustomerName:   "John Doe",
		CustomerNumber: "9876543210",
		BillingDate:    "2024-01-05",
		BillingTime:    "14:30",
		ModeOfPayment:  "UPI",
		Products: []entity.BillLine{
			{Name: "Rice", Quantity: 2.5, UnitPrice: 60, Discount: 0, DiscountedTotal: 150},
			{Name: "Soap", Quantity: 3, UnitPrice: 40, Discount: 10, DiscountedTotal: 108},
		},
		OverallTotal:    258,
		OverallDiscount: 5,
		FinalTotal:      245.1,
	}
	company := entity.DefaultCompanySettings()
	company.PaymentID = "store@upi"
	company.PayeeName = "My Store"
	company.Instagram = "mystore"
	return invoice.Compose(bill, company, invoice.Options{CurrencySymbol: "Rs.", Logo: logo})
}

func quietRenderer() *Renderer {
	return NewRenderer(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRenderProducesPDF(t *testing.T) {
	out, err := quietRenderer().Render(context.Background(), sampleLayout(nil))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderWithPNGLogo(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	out, err := quietRenderer().Render(context.Background(), sampleLayout(buf.Bytes()))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderSkipsUnreadableLogo(t *testing.T) {
	out, err := quietRenderer().Render(context.Background(), sampleLayout([]byte("not an image")))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := quietRenderer().Render(ctx, sampleLayout(nil))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRendererDescribesOutput(t *testing.T) {
	r := quietRenderer()
	assert.Equal(t, "pdf", r.Extension())
	assert.Equal(t, "application/pdf", r.ContentType())
}
