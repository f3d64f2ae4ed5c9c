package worker

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/sankalp-nadiger/Auditryx/internal/infra"
)

// EmailJobPayload is the wire format for queued notification emails.
type EmailJobPayload struct {
	ToEmail        string `json:"to_email"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
	AttachmentPath string `json:"attachment_path,omitempty"`
}

type EmailWorker struct {
	mailer *infra.Mailer
	rdb    *redis.Client
}

func NewEmailWorker(mailer *infra.Mailer, rdb *redis.Client) *EmailWorker {
	return &EmailWorker{mailer: mailer, rdb: rdb}
}

func (w *EmailWorker) Process(ctx context.Context, payload json.RawMessage) {
	var job EmailJobPayload
	if err := json.Unmarshal(payload, &job); err != nil {
		log.Error().Err(err).Msg("invalid email job payload")
		SendToDLQ(ctx, w.rdb, QueueEmail, payload, err)
		return
	}

	if !w.mailer.Configured() {
		log.Warn().Str("to", job.ToEmail).Msg("SMTP not configured, dropping email job")
		return
	}

	if err := w.mailer.Send(job.ToEmail, job.Subject, job.Body, job.AttachmentPath); err != nil {
		log.Error().Str("to", job.ToEmail).Err(err).Msg("failed to send email")
		SendToDLQ(ctx, w.rdb, QueueEmail, payload, err)
		return
	}

	log.Info().Str("to", job.ToEmail).Str("subject", job.Subject).Msg("email sent")
}
