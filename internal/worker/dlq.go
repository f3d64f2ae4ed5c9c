package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const DLQKey = "jobs:dead"

type deadLetter struct {
	Queue    string          `json:"queue"`
	Payload  json.RawMessage `json:"payload"`
	Error    string          `json:"error"`
	FailedAt time.Time       `json:"failed_at"`
}

// SendToDLQ records a permanently failed job so it can be inspected and
// replayed by an operator.
func SendToDLQ(ctx context.Context, rdb *redis.Client, queue string, payload json.RawMessage, jobErr error) {
	entry := deadLetter{
		Queue:    queue,
		Payload:  payload,
		Error:    jobErr.Error(),
		FailedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal dead letter")
		return
	}
	if err := rdb.LPush(ctx, DLQKey, data).Err(); err != nil {
		log.Error().Err(err).Msg("failed to push to DLQ")
		return
	}
	log.Warn().Str("queue", queue).Str("reason", jobErr.Error()).Msg("job sent to DLQ")
}

// DLQLength returns the number of dead jobs, surfaced by the health endpoint.
func DLQLength(ctx context.Context, rdb *redis.Client) (int64, error) {
	return rdb.LLen(ctx, DLQKey).Result()
}
