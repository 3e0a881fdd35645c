package request

// BillItemRequest is one cart line. Either product_id or name with
// unit_price identifies what was sold.
type BillItemRequest struct {
	ProductID string   `json:"product_id"`
	Name      string   `json:"name"`
	Quantity  float64  `json:"quantity"`
	UnitPrice *float64 `json:"unit_price"`
	Discount  float64  `json:"discount"`
}

// CreateBillRequest represents a bill creation request. overall_discount and
// grand_total are alternatives.
type CreateBillRequest struct {
	CustomerName    string            `json:"customer_name"`
	CustomerNumber  string            `json:"customer_number" binding:"omitempty,max=32"`
	CustomerAddress string            `json:"customer_address"`
	BillingDate     string            `json:"billing_date"`
	BillingTime     string            `json:"billing_time"`
	ModeOfDelivery  string            `json:"mode_of_delivery" binding:"omitempty,max=50"`
	ModeOfPayment   string            `json:"mode_of_payment" binding:"omitempty,max=50"`
	Items           []BillItemRequest `json:"items"`
	OverallDiscount *float64          `json:"overall_discount"`
	GrandTotal      *float64          `json:"grand_total"`
}

// BillFilterRequest represents bill list filter parameters
type BillFilterRequest struct {
	Search  string `form:"search"`
	From    string `form:"from"`
	To      string `form:"to"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

// CustomerFilterRequest represents customer list filter parameters
type CustomerFilterRequest struct {
	Search  string `form:"search"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

// SalesReportRequest selects a sales report window.
type SalesReportRequest struct {
	Granularity string `form:"granularity"`
	From        string `form:"from"`
	To          string `form:"to"`
	Top         int    `form:"top" binding:"omitempty,min=1,max=100"`
}
