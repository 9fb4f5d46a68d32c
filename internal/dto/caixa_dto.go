package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

// MovimentoManualRequest registers a manual cash entry or exit.
type MovimentoManualRequest struct {
	Tipo      string          `json:"tipo"      validate:"required,oneof=entrada saida"`
	Categoria string          `json:"categoria" validate:"omitempty,oneof=venda despesa estorno outro"`
	Valor     decimal.Decimal `json:"valor"     validate:"required"`
	Descricao string          `json:"descricao" validate:"required,min=3"`
	Data      string          `json:"data"` // YYYY-MM-DD; empty = today
}

// CaixaFilter is bound from the query string of GET /v1/caixa/movimentos.
type CaixaFilter struct {
	De    string `form:"de"`
	Ate   string `form:"ate"`
	Tipo  string `form:"tipo"` // entrada | saida | all
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=100" validate:"min=1,max=500"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type MovimentoCaixaResponse struct {
	ID           string          `json:"id"`
	Tipo         string          `json:"tipo"`
	Categoria    string          `json:"categoria"`
	Valor        decimal.Decimal `json:"valor"`
	Descricao    string          `json:"descricao"`
	ReferenciaID *string         `json:"referencia_id,omitempty"`
	Data         string          `json:"data"`
}

type CaixaListResponse struct {
	Data  []MovimentoCaixaResponse `json:"data"`
	Total int64                    `json:"total"`
	Page  int                      `json:"page"`
	Limit int                      `json:"limit"`
}

// ResumoCaixaResponse is the period roll-up of the cash ledger.
type ResumoCaixaResponse struct {
	De       string          `json:"de"`
	Ate      string          `json:"ate"`
	Entradas decimal.Decimal `json:"entradas"`
	Saidas   decimal.Decimal `json:"saidas"`
	Saldo    decimal.Decimal `json:"saldo"`
}
