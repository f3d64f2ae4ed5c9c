package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/sankalp-nadiger/Auditryx/internal/dto"
	"github.com/sankalp-nadiger/Auditryx/internal/infra"
	"github.com/sankalp-nadiger/Auditryx/internal/model"
	"github.com/sankalp-nadiger/Auditryx/internal/repository"
	"github.com/sankalp-nadiger/Auditryx/internal/worker"
)

type SupplierService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error)
	List(ctx context.Context, userID uuid.UUID) ([]dto.SupplierResponse, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*dto.SupplierResponse, error)
	Update(ctx context.Context, userID, id uuid.UUID, req dto.UpdateSupplierRequest) (*dto.SupplierResponse, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// Metrics aggregates the supplier's compliance history into chart and
	// table series for the requested window.
	Metrics(ctx context.Context, id uuid.UUID, window MetricsWindow) (*dto.SupplierMetricsResponse, error)
	// Insight asks the advisory service for a free-text compliance analysis.
	Insight(ctx context.Context, id uuid.UUID) (*dto.InsightResponse, error)
	// ReportPDF renders the audit report synchronously and returns its path.
	ReportPDF(ctx context.Context, id uuid.UUID) (string, error)
	// EmailReport queues an async job that renders the report and mails it to
	// the requesting user.
	EmailReport(ctx context.Context, id, userID uuid.UUID) (*dto.EmailReportResponse, error)
}

type supplierService struct {
	suppliers   repository.SupplierRepository
	records     repository.ComplianceRepository
	users       repository.UserRepository
	metrics     MetricsService
	advisor     Advisor
	dispatcher  *worker.Dispatcher
	storagePath string
}

func NewSupplierService(
	suppliers repository.SupplierRepository,
	records repository.ComplianceRepository,
	users repository.UserRepository,
	metrics MetricsService,
	advisor Advisor,
	dispatcher *worker.Dispatcher,
	storagePath string,
) SupplierService {
	return &supplierService{
		suppliers:   suppliers,
		records:     records,
		users:       users,
		metrics:     metrics,
		advisor:     advisor,
		dispatcher:  dispatcher,
		storagePath: storagePath,
	}
}

func (s *supplierService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	lastAudit, err := parseOptionalDate(req.LastAudit)
	if err != nil {
		return nil, err
	}

	sup := &model.Supplier{
		Name:          req.Name,
		Country:       req.Country,
		City:          req.City,
		ContractTerms: termsToJSON(req.ContractTerms),
		LastAudit:     lastAudit,
		RiskLevel:     req.RiskLevel,
		Status:        req.Status,
		UserID:        userID,
	}
	if req.ComplianceScore != nil {
		sup.ComplianceScore = *req.ComplianceScore
	}
	if err := s.suppliers.Create(ctx, sup); err != nil {
		return nil, err
	}
	return toSupplierResponse(sup), nil
}

func (s *supplierService) List(ctx context.Context, userID uuid.UUID) ([]dto.SupplierResponse, error) {
	suppliers, err := s.suppliers.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SupplierResponse, len(suppliers))
	for i := range suppliers {
		resp[i] = *toSupplierResponse(&suppliers[i])
	}
	return resp, nil
}

func (s *supplierService) GetByID(ctx context.Context, userID, id uuid.UUID) (*dto.SupplierResponse, error) {
	sup, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(sup), nil
}

func (s *supplierService) Update(ctx context.Context, userID, id uuid.UUID, req dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	sup, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		sup.Name = *req.Name
	}
	if req.Country != nil {
		sup.Country = *req.Country
	}
	if req.City != nil {
		sup.City = req.City
	}
	if req.ContractTerms != nil {
		sup.ContractTerms = termsToJSON(req.ContractTerms)
	}
	if req.RiskLevel != nil {
		sup.RiskLevel = req.RiskLevel
	}
	if req.Status != nil {
		sup.Status = req.Status
	}
	if req.ComplianceScore != nil {
		sup.ComplianceScore = *req.ComplianceScore
	}
	if req.LastAudit != nil {
		lastAudit, err := parseOptionalDate(req.LastAudit)
		if err != nil {
			return nil, err
		}
		sup.LastAudit = lastAudit
	}

	if err := s.suppliers.Update(ctx, sup); err != nil {
		return nil, err
	}
	return toSupplierResponse(sup), nil
}

func (s *supplierService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.findOwned(ctx, userID, id); err != nil {
		return err
	}
	return s.suppliers.Delete(ctx, id)
}

func (s *supplierService) Metrics(ctx context.Context, id uuid.UUID, window MetricsWindow) (*dto.SupplierMetricsResponse, error) {
	if _, err := s.suppliers.FindByID(ctx, id); err != nil {
		return nil, ErrSupplierNotFound
	}
	records, err := s.records.ListBySupplier(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.metrics.ComputeMetrics(records, window)
}

func (s *supplierService) Insight(ctx context.Context, id uuid.UUID) (*dto.InsightResponse, error) {
	sup, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, ErrSupplierNotFound
	}
	records, err := s.records.ListBySupplier(ctx, id)
	if err != nil {
		return nil, err
	}

	analysis, err := s.advisor.Generate(ctx, buildInsightPrompt(sup, records))
	if err != nil {
		return nil, fmt.Errorf("advisory service unavailable: %w", err)
	}

	return &dto.InsightResponse{Supplier: sup.Name, Analysis: analysis}, nil
}

func (s *supplierService) ReportPDF(ctx context.Context, id uuid.UUID) (string, error) {
	sup, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return "", ErrSupplierNotFound
	}
	records, err := s.records.ListBySupplier(ctx, id)
	if err != nil {
		return "", err
	}
	return infra.GenerateAuditReportPDF(sup, records, s.storagePath)
}

func (s *supplierService) EmailReport(ctx context.Context, id, userID uuid.UUID) (*dto.EmailReportResponse, error) {
	sup, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, ErrSupplierNotFound
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	payload := worker.ReportJobPayload{
		SupplierID: sup.ID.String(),
		ToEmail:    user.Email,
	}
	if err := s.dispatcher.EnqueueReport(ctx, payload); err != nil {
		return nil, fmt.Errorf("failed to enqueue report job: %w", err)
	}

	return &dto.EmailReportResponse{Queued: true, To: user.Email}, nil
}

// findOwned loads a supplier and hides it from non-owners.
func (s *supplierService) findOwned(ctx context.Context, userID, id uuid.UUID) (*model.Supplier, error) {
	sup, err := s.suppliers.FindByID(ctx, id)
	if err != nil || sup.UserID != userID {
		return nil, ErrSupplierNotFound
	}
	return sup, nil
}

func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return &t, nil
}

func termsToJSON(terms map[string]string) datatypes.JSONMap {
	out := datatypes.JSONMap{}
	for k, v := range terms {
		out[k] = v
	}
	return out
}

func termsToMap(terms datatypes.JSONMap) map[string]string {
	out := make(map[string]string, len(terms))
	for k, v := range terms {
		out[k] = fmt.Sprint(v)
	}
	return out
}

func toSupplierResponse(sup *model.Supplier) *dto.SupplierResponse {
	var lastAudit *string
	if sup.LastAudit != nil {
		formatted := sup.LastAudit.Format("2006-01-02")
		lastAudit = &formatted
	}
	return &dto.SupplierResponse{
		ID:              sup.ID.String(),
		Name:            sup.Name,
		Country:         sup.Country,
		City:            sup.City,
		ContractTerms:   termsToMap(sup.ContractTerms),
		ComplianceScore: sup.ComplianceScore,
		LastAudit:       lastAudit,
		RiskLevel:       sup.RiskLevel,
		Status:          sup.Status,
	}
}

func buildInsightPrompt(sup *model.Supplier, records []model.ComplianceRecord) string {
	return fmt.Sprintf(`Analyze the compliance posture of supplier '%s' (country: %s, compliance score: %d).
Recent compliance history:
%s
Summarize strengths, weaknesses and concrete follow-up actions. Format your response for a business/procurement dashboard, with a clear summary and bullet points.
`, sup.Name, sup.Country, sup.ComplianceScore, formatComplianceHistory(records))
}
