// Package invoice describes a printable bill independently of how it is drawn.
//
// Compose turns a bill and the company settings into a Layout; a Renderer
// turns the Layout into bytes.
package invoice

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/sangkips/retailpos-api/internal/domain/entity"
)

// Renderer draws a layout into a downloadable document.
type Renderer interface {
	Render(ctx context.Context, layout *Layout) ([]byte, error)
	// Extension is the file extension of rendered documents, without the dot.
	Extension() string
	ContentType() string
}

// Field is a label/value pair.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Link is a clickable footer entry.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type Header struct {
	BrandName string   `json:"brand_name"`
	Tagline   string   `json:"tagline,omitempty"`
	Address   string   `json:"address,omitempty"`
	Contact   []string `json:"contact,omitempty"`
}

// InfoGrid is the two-column block under the header.
type InfoGrid struct {
	Left  []Field `json:"left"`
	Right []Field `json:"right"`
}

type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// PaymentBlock is rendered as a scannable code of URI.
type PaymentBlock struct {
	URI     string `json:"uri"`
	Caption string `json:"caption"`
}

type Footer struct {
	Note  string `json:"note,omitempty"`
	Links []Link `json:"links,omitempty"`
}

// Layout is the full content of an invoice in reading order.
type Layout struct {
	Title   string        `json:"title"`
	Logo    []byte        `json:"-"`
	Header  Header        `json:"header"`
	Info    InfoGrid      `json:"info"`
	Items   Table         `json:"items"`
	Totals  []Field       `json:"totals"`
	Payment *PaymentBlock `json:"payment,omitempty"`
	Footer  Footer        `json:"footer"`
}

// Options tune Compose.
type Options struct {
	CurrencySymbol string
	Logo           []byte
}

// Compose lays out bill for printing.
func Compose(bill *entity.Bill, company *entity.CompanySettings, opts Options) *Layout {
	if company == nil {
		company = entity.DefaultCompanySettings()
	}
	money := func(v float64) string { return FormatMoney(opts.CurrencySymbol, v) }

	l := &Layout{
		Title: fmt.Sprintf("Invoice #%d", bill.BillNumber),
		Logo:  opts.Logo,
		Header: Header{
			BrandName: company.BrandName,
			Tagline:   company.Tagline,
			Address:   company.Address,
			Contact:   nonEmpty(company.Phone, company.Email, company.Website),
		},
		Info: InfoGrid{
			Left: []Field{
				{Label: "Customer", Value: bill.CustomerName},
				{Label: "Phone", Value: bill.CustomerNumber},
				{Label: "Address", Value: bill.CustomerAddress},
			},
			Right: []Field{
				{Label: "Bill No", Value: strconv.FormatInt(bill.BillNumber, 10)},
				{Label: "Date", Value: bill.BillingDate},
				{Label: "Time", Value: bill.BillingTime},
				{Label: "Delivery", Value: bill.ModeOfDelivery},
				{Label: "Payment", Value: bill.ModeOfPayment},
			},
		},
		Items: Table{
			Columns: []string{"Item", "Qty", "Rate", "Total", "Disc %", "Final"},
		},
		Totals: []Field{
			{Label: "Subtotal", Value: money(bill.OverallTotal)},
			{Label: fmt.Sprintf("Discount (%s%%)", FormatPercent(bill.OverallDiscount)), Value: money(bill.DiscountAmount())},
			{Label: "Grand Total", Value: money(bill.FinalTotal)},
		},
		Footer: Footer{
			Note:  company.FooterNote,
			Links: socialLinks(company),
		},
	}

	for _, line := range bill.Products {
		l.Items.Rows = append(l.Items.Rows, []string{
			line.Name,
			FormatQuantity(line.Quantity),
			money(line.UnitPrice),
			money(line.Quantity * line.UnitPrice),
			FormatPercent(line.Discount),
			money(line.DiscountedTotal),
		})
	}

	if company.PaymentID != "" {
		l.Payment = &PaymentBlock{
			URI:     PaymentURI(company.PaymentID, company.PayeeName, bill.FinalTotal),
			Caption: "Scan to pay " + money(bill.FinalTotal),
		}
	}
	return l
}

// PaymentURI builds the UPI deep link encoded in the payment code.
func PaymentURI(payeeID, payeeName string, amount float64) string {
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%.2f&cu=INR",
		url.PathEscape(payeeID), url.PathEscape(payeeName), amount)
}

func FormatMoney(symbol string, v float64) string {
	if symbol == "" {
		return fmt.Sprintf("%.2f", v)
	}
	return fmt.Sprintf("%s %.2f", symbol, v)
}

// FormatQuantity drops trailing zeros so pieces print as "3" and weights as "2.5".
func FormatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

func FormatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func socialLinks(c *entity.CompanySettings) []Link {
	var links []Link
	add := func(label, base, value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			value = base + strings.TrimPrefix(value, "@")
		}
		links = append(links, Link{Label: label, URL: value})
	}
	add("Instagram", "https://instagram.com/", c.Instagram)
	add("Facebook", "https://facebook.com/", c.Facebook)
	add("WhatsApp", "https://wa.me/", digitsOnly(c.WhatsApp))
	add("Website", "https://", c.Website)
	return links
}
