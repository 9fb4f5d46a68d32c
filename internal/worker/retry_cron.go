package worker

// retry_cron.go
// Background goroutine that periodically re-attempts quote emails stuck in
// email_estado='erro' with a next_retry_at in the past. Uses the circuit
// breaker to avoid hammering a downed SMTP relay.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/infra"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10

	// MaxEmailRetries is the total delivery attempts before a quote email is
	// abandoned to the DLQ.
	MaxEmailRetries = 5
)

// emailRetryBackoff returns the wait before the given attempt number:
// 1m, 2m, 4m... capped at 30 minutes.
func emailRetryBackoff(retryCount int) time.Duration {
	backoff := time.Minute << uint(retryCount-1)
	if backoff > 30*time.Minute {
		return 30 * time.Minute
	}
	return backoff
}

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	OrcamentoRepo repository.OrcamentoRepository
	Dispatcher    *Dispatcher
	CB            *infra.CircuitBreaker
	RDB           *redis.Client
}

// StartRetryCron launches a goroutine that ticks every 30s, queries quotes
// with an overdue email retry, and re-enqueues their jobs. It respects the
// context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	// If CB is open, skip entirely — don't hammer a downed relay
	if cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("retry_cron: circuit breaker is open, skipping tick")
		return
	}

	now := time.Now()
	orcamentos, err := cfg.OrcamentoRepo.ListEmailRetries(ctx, now, retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query pending retries")
		return
	}
	if len(orcamentos) == 0 {
		return
	}

	log.Info().Int("count", len(orcamentos)).Msg("retry_cron: re-enqueueing quote emails")

	for i := range orcamentos {
		o := &orcamentos[i]
		if o.EmailDestino == nil || *o.EmailDestino == "" {
			continue
		}

		// Push the retry window forward before enqueueing so a crashed worker
		// doesn't cause a tight retry loop on the next tick.
		nextRetry := now.Add(emailRetryBackoff(o.EmailRetryCount + 1))
		if err := cfg.OrcamentoRepo.UpdateEmailEstado(ctx, o.ID, map[string]interface{}{
			"email_next_retry_at": nextRetry,
		}); err != nil {
			log.Error().Err(err).Str("orcamento_id", o.ID.String()).Msg("retry_cron: failed to reschedule")
			continue
		}

		job := EmailJob{OrcamentoID: o.ID.String(), Destino: *o.EmailDestino}
		if err := cfg.Dispatcher.EnqueueEmail(ctx, job); err != nil {
			log.Error().Err(err).Str("orcamento_id", o.ID.String()).Msg("retry_cron: failed to enqueue")
			continue
		}

		raw, _ := json.Marshal(job)
		log.Debug().RawJSON("job", raw).Int("retry_count", o.EmailRetryCount).Msg("retry_cron: email re-enqueued")
	}
}
