package service

import (
	"errors"
	"sort"
	"time"

	"github.com/sankalp-nadiger/Auditryx/internal/dto"
	"github.com/sankalp-nadiger/Auditryx/internal/model"

	"github.com/shopspring/decimal"
)

// MetricsWindow is the relative time range applied to compliance records.
type MetricsWindow string

const (
	Window6M  MetricsWindow = "6M"
	Window1Y  MetricsWindow = "1Y"
	WindowAll MetricsWindow = "ALL"
)

// ErrInvalidWindow is returned for an unknown range value.
var ErrInvalidWindow = errors.New("invalid range: must be 6M, 1Y or ALL")

// Window cutoffs are day-count approximations, not true month arithmetic:
// 6M ≈ 6×31 days, 1Y ≈ 366 days. Frontend charts depend on these exact
// boundaries — do not switch to AddDate.
const (
	sixMonthsDays = 6 * 31
	oneYearDays   = 366
	tableLimit    = 10
)

type MetricsService interface {
	// ComputeMetrics buckets records by calendar month and returns a
	// chart-ready series plus the most recent records as a table.
	ComputeMetrics(records []model.ComplianceRecord, window MetricsWindow) (*dto.SupplierMetricsResponse, error)
}

type metricsService struct {
	now func() time.Time
}

func NewMetricsService() MetricsService {
	return &metricsService{now: time.Now}
}

func (s *metricsService) ComputeMetrics(records []model.ComplianceRecord, window MetricsWindow) (*dto.SupplierMetricsResponse, error) {
	cutoff, err := s.windowCutoff(window)
	if err != nil {
		return nil, err
	}

	// A record is in the window iff midnight of its recorded date is at or
	// after the cutoff.
	filtered := make([]model.ComplianceRecord, 0, len(records))
	for _, r := range records {
		if cutoff == nil || !midnight(r.DateRecorded).Before(*cutoff) {
			filtered = append(filtered, r)
		}
	}

	return &dto.SupplierMetricsResponse{
		Chart: buildChart(filtered),
		Table: buildTable(filtered),
	}, nil
}

func (s *metricsService) windowCutoff(window MetricsWindow) (*time.Time, error) {
	var days int
	switch window {
	case Window6M:
		days = sixMonthsDays
	case Window1Y:
		days = oneYearDays
	case WindowAll:
		return nil, nil
	default:
		return nil, ErrInvalidWindow
	}
	cutoff := s.now().UTC().AddDate(0, 0, -days)
	return &cutoff, nil
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// buildChart groups records by year-month and averages the present numeric
// results per bucket, 1 decimal place. A bucket whose records carry no
// numeric result gets a nil average — never zero, never dropped.
func buildChart(records []model.ComplianceRecord) []dto.ChartPoint {
	buckets := make(map[string][]decimal.Decimal)
	for _, r := range records {
		key := r.DateRecorded.Format("2006-01")
		if _, ok := buckets[key]; !ok {
			buckets[key] = nil
		}
		if r.Result != nil {
			buckets[key] = append(buckets[key], decimal.NewFromFloat(*r.Result))
		}
	}

	months := make([]string, 0, len(buckets))
	for m := range buckets {
		months = append(months, m)
	}
	sort.Strings(months) // lexicographic == chronological for YYYY-MM

	chart := make([]dto.ChartPoint, 0, len(months))
	for _, m := range months {
		point := dto.ChartPoint{Month: m}
		if values := buckets[m]; len(values) > 0 {
			avg := decimal.Avg(values[0], values[1:]...).Round(1).InexactFloat64()
			point.Average = &avg
		}
		chart = append(chart, point)
	}
	return chart
}

// buildTable sorts the filtered records by date descending (stable — input
// order breaks ties) and projects the first 10.
func buildTable(records []model.ComplianceRecord) []dto.MetricsTableRow {
	sorted := make([]model.ComplianceRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DateRecorded.After(sorted[j].DateRecorded)
	})

	if len(sorted) > tableLimit {
		sorted = sorted[:tableLimit]
	}

	table := make([]dto.MetricsTableRow, 0, len(sorted))
	for _, r := range sorted {
		table = append(table, dto.MetricsTableRow{
			ID:     r.ID.String(),
			Metric: r.Metric,
			Result: r.Result,
			Status: r.Status,
			Date:   r.DateRecorded.Format("2006-01-02"),
			Notes:  r.Notes,
		})
	}
	return table
}
