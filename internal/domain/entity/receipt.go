package entity

// ReceiptHeader holds the store header printed at the top of a thermal receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// ReceiptItem is one printed line. Quantity is preformatted since weighed
// goods print with decimals.
type ReceiptItem struct {
	Name     string  `json:"name"`
	Quantity string  `json:"quantity"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// Receipt is composed from a bill at print time; it is never stored.
type Receipt struct {
	Header          ReceiptHeader `json:"header"`
	BillNumber      int64         `json:"bill_number"`
	Date            string        `json:"date"`
	Customer        string        `json:"customer,omitempty"`
	PaymentMode     string        `json:"payment_mode,omitempty"`
	Items           []ReceiptItem `json:"items"`
	SubTotal        float64       `json:"sub_total"`
	OverallDiscount float64       `json:"overall_discount"`
	Total           float64       `json:"total"`
	Footer          string        `json:"footer,omitempty"`
}
