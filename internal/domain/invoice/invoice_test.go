package invoice

import (
	"net/url"
	"testing"

	"github.com/sangkips/retailpos-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBill() *entity.Bill {
	return &entity.Bill{
		ID:              "3f0e8f6a-6a8b-4c4e-9c57-1f9b7e0f2a11",
		BillNumber:      12,
		CustomerName:    "John Doe",
		CustomerNumber:  "98765 43210",
		CustomerAddress: "12 Market Road",
		BillingDate:     "2024-01-05",
		BillingTime:     "14:30",
		ModeOfDelivery:  "pickup",
		ModeOfPayment:   "upi",
		Products: []entity.BillLine{
			{Name: "Rice", Quantity: 2.5, UnitPrice: 60, Discount: 10, DiscountedTotal: 135},
			{Name: "Soap", Quantity: 3, UnitPrice: 45, DiscountedTotal: 135},
		},
		OverallTotal:    270,
		OverallDiscount: 5,
		FinalTotal:      256.5,
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "12_John_Doe_050120241430.pdf", FileName(sampleBill(), "pdf"))
}

func TestFileNameFallbackStamp(t *testing.T) {
	b := sampleBill()
	b.BillingTime = ""
	assert.Equal(t, "12_John_Doe_000000000000.pdf", FileName(b, "pdf"))

	b.BillingTime = "14:30"
	b.BillingDate = "05/01/2024"
	assert.Equal(t, "12_John_Doe_000000000000.pdf", FileName(b, "pdf"))
}

func TestFileNameStripsPathCharacters(t *testing.T) {
	b := sampleBill()
	b.CustomerName = " A/B  Traders "
	assert.Equal(t, "12_AB__Traders_050120241430.pdf", FileName(b, "pdf"))
}

func TestPaymentURI(t *testing.T) {
	uri := PaymentURI("shop@okbank", "My Store", 256.5)
	assert.Equal(t, "upi://pay?pa=shop@okbank&pn=My%20Store&am=256.50&cu=INR", uri)

	parsed, err := url.Parse(uri)
	require.NoError(t, err)
	assert.Equal(t, "My Store", parsed.Query().Get("pn"))
	assert.Equal(t, "INR", parsed.Query().Get("cu"))
}

func TestCompose(t *testing.T) {
	company := &entity.CompanySettings{
		BrandName: "Fresh Mart",
		Address:   "Main Street",
		Phone:     "+91 99999 00000",
		PaymentID: "fresh@upi",
		PayeeName: "Fresh Mart",
		Instagram: "@freshmart",
		WhatsApp:  "+91 99999 00000",
	}

	l := Compose(sampleBill(), company, Options{CurrencySymbol: "Rs."})

	assert.Equal(t, "Fresh Mart", l.Header.BrandName)
	assert.Equal(t, []string{"+91 99999 00000"}, l.Header.Contact)
	require.Len(t, l.Items.Rows, 2)
	assert.Equal(t, []string{"Rice", "2.5", "Rs. 60.00", "Rs. 150.00", "10.00", "Rs. 135.00"}, l.Items.Rows[0])
	assert.Equal(t, []Field{
		{Label: "Subtotal", Value: "Rs. 270.00"},
		{Label: "Discount (5.00%)", Value: "Rs. 13.50"},
		{Label: "Grand Total", Value: "Rs. 256.50"},
	}, l.Totals)
	require.NotNil(t, l.Payment)
	assert.Contains(t, l.Payment.URI, "am=256.50")
	assert.Equal(t, []Link{
		{Label: "Instagram", URL: "https://instagram.com/freshmart"},
		{Label: "WhatsApp", URL: "https://wa.me/919999900000"},
	}, l.Footer.Links)
}

func TestComposeWithoutPaymentID(t *testing.T) {
	l := Compose(sampleBill(), nil, Options{})

	assert.Nil(t, l.Payment)
	assert.Equal(t, "My Store", l.Header.BrandName)
	assert.Equal(t, "256.50", l.Totals[2].Value)
}

func TestWhatsAppLink(t *testing.T) {
	link, err := WhatsAppLink("98765 43210", "91", "Hi there & thanks")
	require.NoError(t, err)
	assert.Equal(t, "https://wa.me/919876543210?text=Hi%20there%20%26%20thanks", link)

	link, err = WhatsAppLink("+44 20 7946 0958", "91", "x")
	require.NoError(t, err)
	assert.Equal(t, "https://wa.me/442079460958?text=x", link)

	_, err = WhatsAppLink("n/a", "91", "x")
	assert.ErrorIs(t, err, ErrNoPhoneNumber)
}

func TestShareMessage(t *testing.T) {
	msg := ShareMessage(sampleBill(), &entity.CompanySettings{BrandName: "Fresh Mart"}, "Rs.", "https://shop.example.com/bills/1")
	assert.Equal(t, "Hello John Doe, thank you for shopping with Fresh Mart! Your bill #12 comes to Rs. 256.50. View it here: https://shop.example.com/bills/1", msg)
}
