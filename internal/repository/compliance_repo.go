package repository

import (
	"context"
	"time"

	"github.com/sankalp-nadiger/Auditryx/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ComplianceRepository interface {
	Create(ctx context.Context, rec *model.ComplianceRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ComplianceRecord, error)
	ListAll(ctx context.Context, offset, limit int) ([]model.ComplianceRecord, error)
	// ListBySupplier returns records in insertion order.
	ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]model.ComplianceRecord, error)
	// FindByMetricAndDate locates one record by its (supplier, metric, date)
	// triple — used by the weather-delay upsert.
	FindByMetricAndDate(ctx context.Context, supplierID uuid.UUID, metric string, date time.Time) (*model.ComplianceRecord, error)
	Update(ctx context.Context, rec *model.ComplianceRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type complianceRepo struct{ db *gorm.DB }

func NewComplianceRepository(db *gorm.DB) ComplianceRepository { return &complianceRepo{db: db} }

func (r *complianceRepo) Create(ctx context.Context, rec *model.ComplianceRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *complianceRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ComplianceRecord, error) {
	var rec model.ComplianceRecord
	err := r.db.WithContext(ctx).First(&rec, id).Error
	return &rec, err
}

func (r *complianceRepo) ListAll(ctx context.Context, offset, limit int) ([]model.ComplianceRecord, error) {
	var records []model.ComplianceRecord
	err := r.db.WithContext(ctx).Order("created_at ASC").Offset(offset).Limit(limit).Find(&records).Error
	return records, err
}

func (r *complianceRepo) ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]model.ComplianceRecord, error) {
	var records []model.ComplianceRecord
	err := r.db.WithContext(ctx).Where("supplier_id = ?", supplierID).Order("created_at ASC").Find(&records).Error
	return records, err
}

func (r *complianceRepo) FindByMetricAndDate(ctx context.Context, supplierID uuid.UUID, metric string, date time.Time) (*model.ComplianceRecord, error) {
	var rec model.ComplianceRecord
	err := r.db.WithContext(ctx).
		Where("supplier_id = ? AND metric = ? AND date_recorded = ?", supplierID, metric, date).
		First(&rec).Error
	return &rec, err
}

func (r *complianceRepo) Update(ctx context.Context, rec *model.ComplianceRecord) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *complianceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ComplianceRecord{}, id).Error
}
