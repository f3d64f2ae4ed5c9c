package dto

// ChartPoint is one month bucket of the metrics chart. Average is nil when
// no record in the bucket carries a numeric result.
type ChartPoint struct {
	Month   string   `json:"month"` // YYYY-MM
	Average *float64 `json:"avg"`
}

// MetricsTableRow is one line of the recent-records table.
type MetricsTableRow struct {
	ID     string   `json:"id"`
	Metric string   `json:"metric"`
	Result *float64 `json:"result"`
	Status string   `json:"status"`
	Date   string   `json:"date"` // YYYY-MM-DD
	Notes  *string  `json:"notes"`
}

type SupplierMetricsResponse struct {
	Chart []ChartPoint      `json:"chart"`
	Table []MetricsTableRow `json:"table"`
}
