package invoice

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/sangkips/retailpos-api/internal/domain/entity"
)

// ErrNoPhoneNumber means a share link was asked for a bill without a usable number.
var ErrNoPhoneNumber = errors.New("invoice: customer has no phone number")

// WhatsAppLink opens a chat with number pre-filled with text. Ten digit local
// numbers get countryCode in front.
func WhatsAppLink(number, countryCode, text string) (string, error) {
	digits := digitsOnly(number)
	if len(digits) < 7 {
		return "", ErrNoPhoneNumber
	}
	if len(digits) == 10 && countryCode != "" {
		digits = digitsOnly(countryCode) + digits
	}
	msg := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return "https://wa.me/" + digits + "?text=" + msg, nil
}

// ShareMessage is the text sent along with a public bill link.
func ShareMessage(bill *entity.Bill, company *entity.CompanySettings, currency, billURL string) string {
	brand := "us"
	if company != nil && company.BrandName != "" {
		brand = company.BrandName
	}
	return fmt.Sprintf("Hello %s, thank you for shopping with %s! Your bill #%d comes to %s. View it here: %s",
		strings.TrimSpace(bill.CustomerName), brand, bill.BillNumber, FormatMoney(currency, bill.FinalTotal), billURL)
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
