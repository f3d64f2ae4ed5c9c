package service

import (
	"context"
	"math"

	"github.com/google/uuid"

	"github.com/sankalp-nadiger/Auditryx/internal/dto"
	"github.com/sankalp-nadiger/Auditryx/internal/model"
	"github.com/sankalp-nadiger/Auditryx/internal/repository"
)

type ComplianceService interface {
	Create(ctx context.Context, req dto.CreateComplianceRecordRequest) (*dto.ComplianceRecordResponse, error)
	List(ctx context.Context, offset, limit int) ([]dto.ComplianceRecordResponse, error)
	ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]dto.ComplianceRecordResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateComplianceRecordRequest) (*dto.ComplianceRecordResponse, error)
	// Delete removes a record and returns it, so callers can show what was
	// deleted.
	Delete(ctx context.Context, id uuid.UUID) (*dto.ComplianceRecordResponse, error)
}

type complianceService struct {
	records   repository.ComplianceRepository
	suppliers repository.SupplierRepository
}

func NewComplianceService(records repository.ComplianceRepository, suppliers repository.SupplierRepository) ComplianceService {
	return &complianceService{records: records, suppliers: suppliers}
}

func (s *complianceService) Create(ctx context.Context, req dto.CreateComplianceRecordRequest) (*dto.ComplianceRecordResponse, error) {
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return nil, ErrSupplierNotFound
	}
	if _, err := s.suppliers.FindByID(ctx, supplierID); err != nil {
		return nil, ErrSupplierNotFound
	}

	date, err := parseOptionalDate(&req.DateRecorded)
	if err != nil || date == nil {
		return nil, ErrInvalidDate
	}
	if err := validateResult(req.Result); err != nil {
		return nil, err
	}

	rec := &model.ComplianceRecord{
		SupplierID:   supplierID,
		Metric:       req.Metric,
		DateRecorded: *date,
		Result:       req.Result,
		Status:       req.Status,
		Notes:        req.Notes,
	}
	if err := s.records.Create(ctx, rec); err != nil {
		return nil, err
	}
	return toRecordResponse(rec), nil
}

func (s *complianceService) List(ctx context.Context, offset, limit int) ([]dto.ComplianceRecordResponse, error) {
	records, err := s.records.ListAll(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return toRecordResponses(records), nil
}

func (s *complianceService) ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]dto.ComplianceRecordResponse, error) {
	if _, err := s.suppliers.FindByID(ctx, supplierID); err != nil {
		return nil, ErrSupplierNotFound
	}
	records, err := s.records.ListBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	return toRecordResponses(records), nil
}

func (s *complianceService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateComplianceRecordRequest) (*dto.ComplianceRecordResponse, error) {
	rec, err := s.records.FindByID(ctx, id)
	if err != nil {
		return nil, ErrRecordNotFound
	}

	if req.Metric != nil {
		rec.Metric = *req.Metric
	}
	if req.DateRecorded != nil {
		date, err := parseOptionalDate(req.DateRecorded)
		if err != nil || date == nil {
			return nil, ErrInvalidDate
		}
		rec.DateRecorded = *date
	}
	if req.Result != nil {
		if err := validateResult(req.Result); err != nil {
			return nil, err
		}
		rec.Result = req.Result
	}
	if req.Status != nil {
		rec.Status = *req.Status
	}
	if req.Notes != nil {
		rec.Notes = req.Notes
	}

	if err := s.records.Update(ctx, rec); err != nil {
		return nil, err
	}
	return toRecordResponse(rec), nil
}

func (s *complianceService) Delete(ctx context.Context, id uuid.UUID) (*dto.ComplianceRecordResponse, error) {
	rec, err := s.records.FindByID(ctx, id)
	if err != nil {
		return nil, ErrRecordNotFound
	}
	if err := s.records.Delete(ctx, id); err != nil {
		return nil, err
	}
	return toRecordResponse(rec), nil
}

func validateResult(result *float64) error {
	if result == nil {
		return nil
	}
	if math.IsNaN(*result) || math.IsInf(*result, 0) {
		return ErrInvalidResult
	}
	return nil
}

func toRecordResponse(rec *model.ComplianceRecord) *dto.ComplianceRecordResponse {
	return &dto.ComplianceRecordResponse{
		ID:           rec.ID.String(),
		SupplierID:   rec.SupplierID.String(),
		Metric:       rec.Metric,
		DateRecorded: rec.DateRecorded.Format("2006-01-02"),
		Result:       rec.Result,
		Status:       rec.Status,
		Notes:        rec.Notes,
	}
}

func toRecordResponses(records []model.ComplianceRecord) []dto.ComplianceRecordResponse {
	resp := make([]dto.ComplianceRecordResponse, len(records))
	for i := range records {
		resp[i] = *toRecordResponse(&records[i])
	}
	return resp
}
