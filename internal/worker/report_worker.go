package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/sankalp-nadiger/Auditryx/internal/infra"
	"github.com/sankalp-nadiger/Auditryx/internal/repository"
)

// ReportJobPayload asks the pool to render an audit report PDF and email it.
type ReportJobPayload struct {
	SupplierID string `json:"supplier_id"`
	ToEmail    string `json:"to_email"`
}

type ReportWorker struct {
	suppliers   repository.SupplierRepository
	records     repository.ComplianceRepository
	mailer      *infra.Mailer
	rdb         *redis.Client
	storagePath string
}

func NewReportWorker(
	suppliers repository.SupplierRepository,
	records repository.ComplianceRepository,
	mailer *infra.Mailer,
	rdb *redis.Client,
	storagePath string,
) *ReportWorker {
	return &ReportWorker{
		suppliers:   suppliers,
		records:     records,
		mailer:      mailer,
		rdb:         rdb,
		storagePath: storagePath,
	}
}

func (w *ReportWorker) Process(ctx context.Context, payload json.RawMessage) {
	var job ReportJobPayload
	if err := json.Unmarshal(payload, &job); err != nil {
		log.Error().Err(err).Msg("invalid report job payload")
		SendToDLQ(ctx, w.rdb, QueueReport, payload, err)
		return
	}

	if err := w.run(ctx, job); err != nil {
		log.Error().Str("supplier_id", job.SupplierID).Err(err).Msg("report job failed")
		SendToDLQ(ctx, w.rdb, QueueReport, payload, err)
		return
	}

	log.Info().Str("supplier_id", job.SupplierID).Str("to", job.ToEmail).Msg("audit report delivered")
}

func (w *ReportWorker) run(ctx context.Context, job ReportJobPayload) error {
	id, err := uuid.Parse(job.SupplierID)
	if err != nil {
		return fmt.Errorf("parse supplier id: %w", err)
	}

	supplier, err := w.suppliers.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load supplier: %w", err)
	}

	records, err := w.records.ListBySupplier(ctx, id)
	if err != nil {
		return fmt.Errorf("load compliance records: %w", err)
	}

	path, err := infra.GenerateAuditReportPDF(supplier, records, w.storagePath)
	if err != nil {
		return fmt.Errorf("generate pdf: %w", err)
	}

	if !w.mailer.Configured() {
		log.Warn().Str("supplier_id", job.SupplierID).Msg("SMTP not configured, report generated but not emailed")
		return nil
	}

	subject := fmt.Sprintf("Audit report: %s", supplier.Name)
	body := fmt.Sprintf("Please find attached the compliance audit report for %s.", supplier.Name)
	if err := w.mailer.Send(job.ToEmail, subject, body, path); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
