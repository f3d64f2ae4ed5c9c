package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Supplier is a vendor tracked by the compliance dashboard.
// ContractTerms is an open term→value mapping stored as JSONB.
type Supplier struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name            string    `gorm:"not null"`
	Country         string    `gorm:"not null"`
	City            *string
	ContractTerms   datatypes.JSONMap `gorm:"not null"`
	ComplianceScore int               `gorm:"not null;default:0"`
	LastAudit       *time.Time        `gorm:"type:date"`
	RiskLevel       *string
	Status          *string
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Records []ComplianceRecord `gorm:"foreignKey:SupplierID"`
}

func (Supplier) TableName() string { return "suppliers" }

// Location returns the place name used for geocoding: city when present,
// country otherwise.
func (s *Supplier) Location() string {
	if s.City != nil && *s.City != "" {
		return *s.City
	}
	return s.Country
}
