package reporting

import (
	"math"
	"testing"

	"github.com/sangkips/retailpos-api/internal/domain/entity"
	"github.com/sangkips/retailpos-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bill(date string, total float64, lines ...entity.BillLine) entity.Bill {
	return entity.Bill{BillingDate: date, FinalTotal: total, Products: lines, ModeOfPayment: "cash"}
}

func line(name string, qty float64) entity.BillLine {
	return entity.BillLine{Name: name, Quantity: qty, DiscountedTotal: qty * 10}
}

func sampleBills() []entity.Bill {
	return []entity.Bill{
		bill("2024-01-01", 100),
		bill("2024-01-02", 50),
		bill("2024-01-08", 200),
	}
}

func TestAggregateEmpty(t *testing.T) {
	for _, g := range []enum.Granularity{enum.GranularityDaily, enum.GranularityWeekly, enum.GranularityMonthly, enum.GranularityYearly} {
		s := Aggregate(nil, g, Range{})

		assert.Empty(t, s.Buckets, g)
		assert.Equal(t, 0.0, s.Average, g)
		assert.False(t, math.IsNaN(s.Average), g)
		assert.Equal(t, 0.0, s.Peak, g)
	}
}

func TestAggregateDaily(t *testing.T) {
	s := Aggregate(sampleBills(), enum.GranularityDaily, Range{})

	require.Len(t, s.Buckets, 3)
	assert.Equal(t, []Bucket{
		{Label: "2024-01-01", Total: 100, Bills: 1},
		{Label: "2024-01-02", Total: 50, Bills: 1},
		{Label: "2024-01-08", Total: 200, Bills: 1},
	}, s.Buckets)
	assert.Equal(t, 350.0, s.Total)
	assert.Equal(t, 116.67, s.Average)
	assert.Equal(t, 200.0, s.Peak)
}

func TestAggregateWeeklyStartsOnSunday(t *testing.T) {
	s := Aggregate(sampleBills(), enum.GranularityWeekly, Range{})

	require.Len(t, s.Buckets, 2)
	assert.Equal(t, "2023-12-31", s.Buckets[0].Label)
	assert.Equal(t, 150.0, s.Buckets[0].Total)
	assert.Equal(t, "2024-01-07", s.Buckets[1].Label)
	assert.Equal(t, 200.0, s.Buckets[1].Total)
}

func TestAggregateMonthlyAndYearly(t *testing.T) {
	bills := append(sampleBills(), bill("2024-02-10", 25), bill("2023-12-30", 5))

	monthly := Aggregate(bills, enum.GranularityMonthly, Range{})
	require.Len(t, monthly.Buckets, 3)
	assert.Equal(t, "Jan 2024", monthly.Buckets[0].Label)
	assert.Equal(t, 350.0, monthly.Buckets[0].Total)
	assert.Equal(t, "Feb 2024", monthly.Buckets[1].Label)
	assert.Equal(t, "Dec 2023", monthly.Buckets[2].Label)

	yearly := Aggregate(bills, enum.GranularityYearly, Range{})
	require.Len(t, yearly.Buckets, 2)
	assert.Equal(t, Bucket{Label: "2024", Total: 375, Bills: 4}, yearly.Buckets[0])
	assert.Equal(t, Bucket{Label: "2023", Total: 5, Bills: 1}, yearly.Buckets[1])
}

func TestRangeBoundsAreInclusive(t *testing.T) {
	bills := sampleBills()

	both := Aggregate(bills, enum.GranularityDaily, Range{Start: "2024-01-02", End: "2024-01-08"})
	require.Len(t, both.Buckets, 2)
	assert.Equal(t, "2024-01-02", both.Buckets[0].Label)

	startOnly := Filter(bills, Range{Start: "2024-01-02"})
	assert.Len(t, startOnly, 2)

	endOnly := Filter(bills, Range{End: "2024-01-02"})
	assert.Len(t, endOnly, 2)
}

func TestAggregateSkipsUnreadableDates(t *testing.T) {
	bills := append(sampleBills(), bill("yesterday", 10))

	s := Aggregate(bills, enum.GranularityDaily, Range{})
	assert.Len(t, s.Buckets, 3)
	assert.Equal(t, 1, s.Skipped)
}

func TestTopProductTieGoesToFirstEncountered(t *testing.T) {
	bills := []entity.Bill{
		bill("2024-01-01", 10, line("A", 3)),
		bill("2024-01-02", 10, line("B", 3)),
	}

	top, ok := TopProduct(bills)
	require.True(t, ok)
	assert.Equal(t, "A", top.Name)

	reversed := []entity.Bill{bills[1], bills[0]}
	top, ok = TopProduct(reversed)
	require.True(t, ok)
	assert.Equal(t, "B", top.Name)

	_, ok = TopProduct(nil)
	assert.False(t, ok)
}

func TestRankProductsIsStable(t *testing.T) {
	bills := []entity.Bill{
		bill("2024-01-01", 10, line("Zucchini", 2), line("Apple", 5)),
		bill("2024-01-02", 10, line("Milk", 2), line("Zucchini", 1)),
	}

	ranked := RankProducts(bills, 0)
	require.Len(t, ranked, 3)
	assert.Equal(t, "Apple", ranked[0].Name)
	assert.Equal(t, "Zucchini", ranked[1].Name)
	assert.Equal(t, "Milk", ranked[2].Name)

	assert.Len(t, RankProducts(bills, 1), 1)
}

func TestBuild(t *testing.T) {
	bills := sampleBills()
	bills[0].Products = []entity.BillLine{line("Rice", 2)}
	bills[2].ModeOfPayment = "upi"

	r := Build(bills, enum.GranularityWeekly, Range{Start: "2024-01-02"}, 5)

	assert.Equal(t, 2, r.BillCount)
	assert.Equal(t, 125.0, r.AverageBill)
	assert.Len(t, r.Series.Buckets, 2)
	assert.Nil(t, r.TopProduct)
	assert.Equal(t, []ModeShare{{Mode: "cash", Bills: 1, Total: 50}, {Mode: "upi", Bills: 1, Total: 200}}, r.PaymentModes)
}

func TestBuildEmpty(t *testing.T) {
	r := Build(nil, enum.GranularityDaily, Range{}, 5)

	assert.Equal(t, 0, r.BillCount)
	assert.Equal(t, 0.0, r.AverageBill)
	assert.Empty(t, r.Series.Buckets)
	assert.Empty(t, r.Products)
}
