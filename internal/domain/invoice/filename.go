package invoice

import (
	"fmt"
	"strings"
	"time"

	"github.com/sangkips/retailpos-api/internal/domain/entity"
)

const zeroStamp = "000000000000"

var unsafeFileChars = strings.NewReplacer(
	" ", "_",
	"/", "", `\`, "", ":", "", "*", "",
	"?", "", `"`, "", "<", "", ">", "", "|", "",
)

// FileName is {billNumber}_{customer name with spaces as underscores}_{ddMMyyyyHHmm}.{ext}.
func FileName(bill *entity.Bill, ext string) string {
	name := unsafeFileChars.Replace(strings.TrimSpace(bill.CustomerName))
	return fmt.Sprintf("%d_%s_%s.%s", bill.BillNumber, name, Stamp(bill.BillingDate, bill.BillingTime), ext)
}

// Stamp formats a billing date and time as ddMMyyyyHHmm. Missing or malformed
// input gives twelve zeros.
func Stamp(date, clock string) string {
	if date == "" || clock == "" {
		return zeroStamp
	}
	t, err := time.Parse("2006-01-02 15:04", date+" "+clock)
	if err != nil {
		return zeroStamp
	}
	return t.Format("020120061504")
}
