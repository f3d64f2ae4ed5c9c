package model

import (
	"time"

	"github.com/google/uuid"
)

// ComplianceRecord is one audit observation for a supplier.
// Result is nil for qualitative metrics.
type ComplianceRecord struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SupplierID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Metric       string    `gorm:"not null"`
	DateRecorded time.Time `gorm:"type:date;not null"`
	Result       *float64
	Status       string `gorm:"not null"`
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Supplier *Supplier `gorm:"foreignKey:SupplierID"`
}

func (ComplianceRecord) TableName() string { return "compliance_records" }
