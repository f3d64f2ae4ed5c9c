package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateComplianceRecordRequest struct {
	SupplierID   string   `json:"supplier_id"   validate:"required,uuid"`
	Metric       string   `json:"metric"        validate:"required"`
	DateRecorded string   `json:"date_recorded" validate:"required"` // YYYY-MM-DD
	Result       *float64 `json:"result"`
	Status       string   `json:"status"        validate:"required"`
	Notes        *string  `json:"notes"`
}

type UpdateComplianceRecordRequest struct {
	Metric       *string  `json:"metric"`
	DateRecorded *string  `json:"date_recorded"` // YYYY-MM-DD
	Result       *float64 `json:"result"`
	Status       *string  `json:"status"`
	Notes        *string  `json:"notes"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ComplianceRecordResponse struct {
	ID           string   `json:"id"`
	SupplierID   string   `json:"supplier_id"`
	Metric       string   `json:"metric"`
	DateRecorded string   `json:"date_recorded"`
	Result       *float64 `json:"result"`
	Status       string   `json:"status"`
	Notes        *string  `json:"notes"`
}
