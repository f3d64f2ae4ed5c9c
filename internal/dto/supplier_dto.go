package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateSupplierRequest struct {
	Name            string            `json:"name"             validate:"required,min=2"`
	Country         string            `json:"country"          validate:"required"`
	City            *string           `json:"city"`
	ContractTerms   map[string]string `json:"contract_terms"   validate:"required"`
	RiskLevel       *string           `json:"risk_level"`
	Status          *string           `json:"status"`
	ComplianceScore *int              `json:"compliance_score"`
	LastAudit       *string           `json:"last_audit"` // YYYY-MM-DD
}

type UpdateSupplierRequest struct {
	Name            *string           `json:"name"             validate:"omitempty,min=2"`
	Country         *string           `json:"country"`
	City            *string           `json:"city"`
	ContractTerms   map[string]string `json:"contract_terms"`
	RiskLevel       *string           `json:"risk_level"`
	Status          *string           `json:"status"`
	ComplianceScore *int              `json:"compliance_score"`
	LastAudit       *string           `json:"last_audit"` // YYYY-MM-DD
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SupplierResponse struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Country         string            `json:"country"`
	City            *string           `json:"city"`
	ContractTerms   map[string]string `json:"contract_terms"`
	ComplianceScore int               `json:"compliance_score"`
	LastAudit       *string           `json:"last_audit"`
	RiskLevel       *string           `json:"risk_level"`
	Status          *string           `json:"status"`
}

type InsightResponse struct {
	Supplier string `json:"supplier"`
	Analysis string `json:"analysis"`
}

type EmailReportResponse struct {
	Queued bool   `json:"queued"`
	To     string `json:"to"`
}
