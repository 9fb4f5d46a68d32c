package worker

// email_worker.go
// Processes quote-confirmation email jobs from QueueEmail. Delivery goes
// through the SMTP circuit breaker; failures are recorded on the quote and
// retried by the cron until MaxEmailRetries, then moved to the DLQ.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/infra"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/model"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// EmailWorker sends quote confirmation emails.
type EmailWorker struct {
	mailer      *infra.Mailer
	cb          *infra.CircuitBreaker
	repo        repository.OrcamentoRepository
	rdb         *redis.Client
	nomeEmpresa string
}

func NewEmailWorker(
	mailer *infra.Mailer,
	cb *infra.CircuitBreaker,
	repo repository.OrcamentoRepository,
	rdb *redis.Client,
	nomeEmpresa string,
) *EmailWorker {
	return &EmailWorker{mailer: mailer, cb: cb, repo: repo, rdb: rdb, nomeEmpresa: nomeEmpresa}
}

// Process delivers one quote email and updates the quote's delivery state.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload EmailJob
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.Destino == "" {
		log.Warn().Msg("email_worker: empty destino, skipping")
		return
	}

	id, err := uuid.Parse(payload.OrcamentoID)
	if err != nil {
		log.Error().Str("orcamento_id", payload.OrcamentoID).Msg("email_worker: invalid orcamento_id")
		return
	}
	o, err := w.repo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("orcamento_id", payload.OrcamentoID).Msg("email_worker: orcamento not found")
		return
	}

	subject, body := montarEmailOrcamento(w.nomeEmpresa, o)

	sendErr := w.cb.Execute(func() error {
		return w.mailer.Send(payload.Destino, subject, body)
	})
	if sendErr != nil {
		w.registrarFalha(ctx, o, payload, sendErr)
		return
	}

	_ = w.repo.UpdateEmailEstado(ctx, o.ID, map[string]interface{}{
		"email_estado":        model.EmailEnviado,
		"email_next_retry_at": nil,
		"email_last_error":    nil,
	})
	log.Info().Str("to", payload.Destino).Int("numero", o.Numero).Msg("email_worker: orcamento enviado")
}

func (w *EmailWorker) registrarFalha(ctx context.Context, o *model.Orcamento, payload EmailJob, sendErr error) {
	retries := o.EmailRetryCount + 1
	errMsg := sendErr.Error()

	if retries >= MaxEmailRetries {
		_ = w.repo.UpdateEmailEstado(ctx, o.ID, map[string]interface{}{
			"email_estado":        model.EmailErro,
			"email_retry_count":   retries,
			"email_next_retry_at": nil,
			"email_last_error":    errMsg,
		})
		raw, _ := json.Marshal(payload)
		SendToDLQ(ctx, w.rdb, QueueEmail, "email", raw,
			fmt.Sprintf("max retries (%d) exceeded: %s", MaxEmailRetries, errMsg), retries)
		return
	}

	nextRetry := time.Now().Add(emailRetryBackoff(retries))
	_ = w.repo.UpdateEmailEstado(ctx, o.ID, map[string]interface{}{
		"email_estado":        model.EmailErro,
		"email_retry_count":   retries,
		"email_next_retry_at": nextRetry,
		"email_last_error":    errMsg,
	})
	log.Warn().
		Err(sendErr).
		Str("to", payload.Destino).
		Int("retry_count", retries).
		Time("next_retry_at", nextRetry).
		Msg("email_worker: envio falhou, nova tentativa agendada")
}

// montarEmailOrcamento renders the plain-text confirmation email.
func montarEmailOrcamento(nomeEmpresa string, o *model.Orcamento) (subject, body string) {
	subject = fmt.Sprintf("%s - Orçamento #%d", nomeEmpresa, o.Numero)

	body = fmt.Sprintf("Olá %s,\n\nSegue o resumo do seu orçamento #%d:\n\n", o.ClienteNome, o.Numero)
	for _, item := range o.Itens {
		body += fmt.Sprintf("- %s", item.ProdutoNome)
		if item.Variante != "" {
			body += fmt.Sprintf(" (%s)", item.Variante)
		}
		body += fmt.Sprintf(" x%s: R$ %s\n", item.Quantidade.String(), item.Preco.StringFixed(2))
	}
	body += fmt.Sprintf("\nSubtotal: R$ %s\n", o.Subtotal.StringFixed(2))
	if !o.Frete.IsZero() {
		body += fmt.Sprintf("Frete: R$ %s\n", o.Frete.StringFixed(2))
	}
	if !o.Instalacao.IsZero() {
		body += fmt.Sprintf("Instalação: R$ %s\n", o.Instalacao.StringFixed(2))
	}
	if !o.Desconto.IsZero() {
		body += fmt.Sprintf("Desconto: R$ %s\n", o.Desconto.StringFixed(2))
	}
	body += fmt.Sprintf("Total: R$ %s\n\nAtenciosamente,\n%s", o.Total.StringFixed(2), nomeEmpresa)
	return subject, body
}
