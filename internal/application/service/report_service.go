package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sangkips/retailpos-api/internal/domain/entity"
	"github.com/sangkips/retailpos-api/internal/domain/enum"
	"github.com/sangkips/retailpos-api/internal/domain/reporting"
	"github.com/sangkips/retailpos-api/internal/domain/repository"
	"github.com/sangkips/retailpos-api/internal/infrastructure/cache"
	"github.com/sangkips/retailpos-api/internal/infrastructure/metrics"
	"github.com/sangkips/retailpos-api/internal/infrastructure/spreadsheet"
	"github.com/sangkips/retailpos-api/pkg/apperror"
)

const (
	reportGenerationKey = "reports:generation"
	defaultTopProducts  = 10
)

// ReportQuery selects the window and bucket size of a sales report.
type ReportQuery struct {
	Granularity enum.Granularity
	From        string
	To          string
	TopN        int
}

// ReportService computes sales reports from bill history. Results are cached
// under a generation number that every saved bill bumps, so a cached report
// never outlives the data it was built from.
type ReportService struct {
	billRepo repository.BillRepository
	cache    cache.Store
	ttl      time.Duration
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewReportService creates a new report service
func NewReportService(billRepo repository.BillRepository, store cache.Store, ttl time.Duration, m *metrics.Metrics, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		billRepo: billRepo,
		cache:    store,
		ttl:      ttl,
		metrics:  m,
		logger:   logger,
	}
}

func validateQuery(q *ReportQuery) error {
	if q.Granularity == "" {
		q.Granularity = enum.GranularityDaily
	}
	if _, err := enum.ParseGranularity(string(q.Granularity)); err != nil {
		return apperror.NewFieldError("granularity", "must be daily, weekly, monthly or yearly")
	}
	for _, f := range []struct{ field, value string }{{"from", q.From}, {"to", q.To}} {
		if f.value == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", f.value); err != nil {
			return apperror.NewFieldError(f.field, "must be formatted YYYY-MM-DD")
		}
	}
	if q.From != "" && q.To != "" && q.From > q.To {
		return apperror.NewFieldError("from", "must not be after to")
	}
	if q.TopN <= 0 {
		q.TopN = defaultTopProducts
	}
	return nil
}

func (s *ReportService) cacheKey(ctx context.Context, q ReportQuery) (string, bool) {
	gen, err := s.cache.Counter(ctx, reportGenerationKey)
	if err != nil {
		s.logger.Warn("report cache unavailable", "error", err)
		return "", false
	}
	return fmt.Sprintf("reports:sales:%d:%s:%s:%s:%d", gen, q.Granularity, q.From, q.To, q.TopN), true
}

// SalesReport returns the report for q, from cache when possible.
func (s *ReportService) SalesReport(ctx context.Context, q ReportQuery) (*reporting.Report, error) {
	if err := validateQuery(&q); err != nil {
		return nil, err
	}

	key, cacheable := s.cacheKey(ctx, q)
	if cacheable {
		var cached reporting.Report
		hit, err := cache.GetJSON(ctx, s.cache, key, &cached)
		if err != nil {
			s.logger.Warn("report cache read failed", "key", key, "error", err)
		}
		s.metrics.ReportCacheLookup(hit)
		if hit {
			return &cached, nil
		}
	}

	bills, err := s.billRepo.ListByDateRange(ctx, q.From, q.To)
	if err != nil {
		return nil, fmt.Errorf("load bills for report: %w", err)
	}
	report := reporting.Build(bills, q.Granularity, reporting.Range{Start: q.From, End: q.To}, q.TopN)
	if report.Series.Skipped > 0 {
		s.logger.Warn("bills skipped in report", "count", report.Series.Skipped)
	}

	if cacheable {
		if err := cache.SetJSON(ctx, s.cache, key, report, s.ttl); err != nil {
			s.logger.Warn("report cache write failed", "key", key, "error", err)
		}
	}
	return report, nil
}

// ExportSalesReport renders the report for q as an xlsx workbook and names it.
func (s *ReportService) ExportSalesReport(ctx context.Context, q ReportQuery) ([]byte, string, error) {
	report, err := s.SalesReport(ctx, q)
	if err != nil {
		return nil, "", err
	}
	data, err := spreadsheet.ExportReport(report)
	if err != nil {
		return nil, "", fmt.Errorf("export report: %w", err)
	}

	from, to := report.Range.Start, report.Range.End
	if from == "" {
		from = "start"
	}
	if to == "" {
		to = "today"
	}
	name := fmt.Sprintf("sales_%s_%s_%s.xlsx", report.Series.Granularity, from, to)
	return data, name, nil
}

// BillSaved invalidates every cached report.
func (s *ReportService) BillSaved(ctx context.Context, bill *entity.Bill) {
	if _, err := s.cache.Incr(ctx, reportGenerationKey); err != nil {
		s.logger.Warn("could not invalidate report cache", "bill_number", bill.BillNumber, "error", err)
	}
}
