package enum

import "fmt"

// Granularity is the bucket size of a sales report.
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
	GranularityYearly  Granularity = "yearly"
)

func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(s); g {
	case GranularityDaily, GranularityWeekly, GranularityMonthly, GranularityYearly:
		return g, nil
	case "":
		return GranularityDaily, nil
	default:
		return "", fmt.Errorf("unknown granularity %q", s)
	}
}
