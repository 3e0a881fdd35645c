// Package reporting turns bill history into chart series and rankings.
package reporting

import (
	"fmt"
	"sort"
	"time"

	"github.com/sangkips/retailpos-api/internal/domain/entity"
	"github.com/sangkips/retailpos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Range is an inclusive billing-date window compared as ISO date strings.
// An empty bound is open.
type Range struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

func (r Range) Contains(date string) bool {
	if r.Start != "" && date < r.Start {
		return false
	}
	if r.End != "" && date > r.End {
		return false
	}
	return true
}

// Filter keeps the bills whose billing date lies in r, preserving order.
func Filter(bills []entity.Bill, r Range) []entity.Bill {
	out := make([]entity.Bill, 0, len(bills))
	for _, b := range bills {
		if r.Contains(b.BillingDate) {
			out = append(out, b)
		}
	}
	return out
}

// Label returns the bucket a billing date falls in.
//
//	daily   2024-01-05
//	weekly  2023-12-31 (the Sunday the week starts on)
//	monthly Jan 2024
//	yearly  2024
func Label(date string, g enum.Granularity) (string, error) {
	if len(date) > len(dateLayout) {
		date = date[:len(dateLayout)]
	}
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", fmt.Errorf("reporting: bad billing date %q: %w", date, err)
	}

	switch g {
	case enum.GranularityDaily:
		return t.Format(dateLayout), nil
	case enum.GranularityWeekly:
		return t.AddDate(0, 0, -int(t.Weekday())).Format(dateLayout), nil
	case enum.GranularityMonthly:
		return t.Format("Jan 2006"), nil
	case enum.GranularityYearly:
		return t.Format("2006"), nil
	default:
		return "", fmt.Errorf("reporting: unknown granularity %q", g)
	}
}

// Bucket is one point of a sales series.
type Bucket struct {
	Label string  `json:"label"`
	Total float64 `json:"total"`
	Bills int     `json:"bills"`
}

// Series is revenue grouped by period, in first-seen label order.
type Series struct {
	Granularity enum.Granularity `json:"granularity"`
	Buckets     []Bucket         `json:"buckets"`
	Total       float64          `json:"total"`
	// Average is Total over the number of buckets, 0 for an empty series.
	Average float64 `json:"average"`
	Peak    float64 `json:"peak"`
	// Skipped counts bills dropped for an unreadable billing date.
	Skipped int `json:"skipped,omitempty"`
}

// Aggregate sums final totals per label for the bills inside r.
func Aggregate(bills []entity.Bill, g enum.Granularity, r Range) Series {
	type acc struct {
		sum   decimal.Decimal
		count int
	}
	var (
		order   []string
		byLabel = make(map[string]*acc)
		skipped int
	)

	for _, b := range bills {
		if !r.Contains(b.BillingDate) {
			continue
		}
		label, err := Label(b.BillingDate, g)
		if err != nil {
			skipped++
			continue
		}
		a, ok := byLabel[label]
		if !ok {
			a = &acc{sum: decimal.Zero}
			byLabel[label] = a
			order = append(order, label)
		}
		a.sum = a.sum.Add(decimal.NewFromFloat(b.FinalTotal))
		a.count++
	}

	s := Series{Granularity: g, Buckets: make([]Bucket, 0, len(order)), Skipped: skipped}
	total := decimal.Zero
	peak := decimal.Zero
	for i, label := range order {
		a := byLabel[label]
		s.Buckets = append(s.Buckets, Bucket{Label: label, Total: a.sum.Round(2).InexactFloat64(), Bills: a.count})
		total = total.Add(a.sum)
		if i == 0 || a.sum.GreaterThan(peak) {
			peak = a.sum
		}
	}
	s.Total = total.Round(2).InexactFloat64()
	s.Average = Average(total, len(order)).Round(2).InexactFloat64()
	s.Peak = peak.Round(2).InexactFloat64()
	return s
}

// Average divides sum by max(count, 1).
func Average(sum decimal.Decimal, count int) decimal.Decimal {
	if count < 1 {
		count = 1
	}
	return sum.Div(decimal.NewFromInt(int64(count)))
}

// ProductSales is the quantity and revenue of one product across bills.
type ProductSales struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

func productTotals(bills []entity.Bill) []ProductSales {
	type acc struct {
		qty decimal.Decimal
		rev decimal.Decimal
	}
	var order []string
	byName := make(map[string]*acc)
	for _, b := range bills {
		for _, line := range b.Products {
			a, ok := byName[line.Name]
			if !ok {
				a = &acc{qty: decimal.Zero, rev: decimal.Zero}
				byName[line.Name] = a
				order = append(order, line.Name)
			}
			a.qty = a.qty.Add(decimal.NewFromFloat(line.Quantity))
			a.rev = a.rev.Add(decimal.NewFromFloat(line.DiscountedTotal))
		}
	}

	out := make([]ProductSales, 0, len(order))
	for _, name := range order {
		a := byName[name]
		out = append(out, ProductSales{
			Name:     name,
			Quantity: a.qty.InexactFloat64(),
			Revenue:  a.rev.Round(2).InexactFloat64(),
		})
	}
	return out
}

// TopProduct returns the product with the highest total quantity. On a tie
// the product seen first in bill order wins. ok is false when no bill has lines.
func TopProduct(bills []entity.Bill) (top ProductSales, ok bool) {
	for _, p := range productTotals(bills) {
		if !ok || p.Quantity > top.Quantity {
			top, ok = p, true
		}
	}
	return top, ok
}

// RankProducts orders products by quantity, keeping first-seen order among
// equals. limit <= 0 returns all of them.
func RankProducts(bills []entity.Bill, limit int) []ProductSales {
	ranked := productTotals(bills)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Quantity > ranked[j].Quantity
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// ModeShare is revenue taken through one payment mode.
type ModeShare struct {
	Mode  string  `json:"mode"`
	Bills int     `json:"bills"`
	Total float64 `json:"total"`
}

// PaymentModes groups revenue by mode of payment in first-seen order.
func PaymentModes(bills []entity.Bill) []ModeShare {
	var order []string
	sums := make(map[string]decimal.Decimal)
	counts := make(map[string]int)
	for _, b := range bills {
		mode := b.ModeOfPayment
		if mode == "" {
			mode = "unspecified"
		}
		if _, ok := sums[mode]; !ok {
			order = append(order, mode)
			sums[mode] = decimal.Zero
		}
		sums[mode] = sums[mode].Add(decimal.NewFromFloat(b.FinalTotal))
		counts[mode]++
	}

	out := make([]ModeShare, 0, len(order))
	for _, mode := range order {
		out = append(out, ModeShare{Mode: mode, Bills: counts[mode], Total: sums[mode].Round(2).InexactFloat64()})
	}
	return out
}

// Report is everything the sales dashboard shows for one window.
type Report struct {
	Range        Range          `json:"range"`
	Series       Series         `json:"series"`
	BillCount    int            `json:"bill_count"`
	AverageBill  float64        `json:"average_bill"`
	TopProduct   *ProductSales  `json:"top_product,omitempty"`
	Products     []ProductSales `json:"products"`
	PaymentModes []ModeShare    `json:"payment_modes"`
}

// Build computes a full report. topN limits the product ranking.
func Build(bills []entity.Bill, g enum.Granularity, r Range, topN int) *Report {
	inRange := Filter(bills, r)
	series := Aggregate(inRange, g, Range{})

	sum := decimal.Zero
	for _, b := range inRange {
		sum = sum.Add(decimal.NewFromFloat(b.FinalTotal))
	}

	report := &Report{
		Range:        r,
		Series:       series,
		BillCount:    len(inRange),
		AverageBill:  Average(sum, len(inRange)).Round(2).InexactFloat64(),
		Products:     RankProducts(inRange, topN),
		PaymentModes: PaymentModes(inRange),
	}
	if top, ok := TopProduct(inRange); ok {
		report.TopProduct = &top
	}
	return report
}
