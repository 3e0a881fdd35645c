package entity

// CustomerSummary is a customer as seen through their bills. Customers are not
// stored separately; they are grouped from bill history by phone number.
type CustomerSummary struct {
	Name         string  `json:"name"`
	Number       string  `json:"number"`
	Address      string  `json:"address,omitempty"`
	BillCount    int     `json:"bill_count"`
	TotalSpent   float64 `json:"total_spent"`
	LastBillDate string  `json:"last_bill_date"`
}
