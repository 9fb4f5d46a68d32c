package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

type CriarDespesaRequest struct {
	Nome  string          `json:"nome"  validate:"required"`
	Tipo  string          `json:"tipo"  validate:"required,oneof=percentual fixa"`
	Valor decimal.Decimal `json:"valor" validate:"min=0"`
	// Categoria is optional: when empty, the legacy name classifier decides
	// (e.g. "Maquininha de cartão" → taxa_cartao).
	Categoria string `json:"categoria" validate:"omitempty,oneof=comissao imposto taxa_cartao outra"`
}

type AtualizarDespesaRequest struct {
	Nome      string           `json:"nome"`
	Tipo      string           `json:"tipo" validate:"omitempty,oneof=percentual fixa"`
	Valor     *decimal.Decimal `json:"valor"`
	Categoria string           `json:"categoria" validate:"omitempty,oneof=comissao imposto taxa_cartao outra"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type DespesaResponse struct {
	ID        string          `json:"id"`
	Nome      string          `json:"nome"`
	Tipo      string          `json:"tipo"`
	Valor     decimal.Decimal `json:"valor"`
	Categoria string          `json:"categoria"`
}

// ResumoDespesasResponse is the aggregate the quoting screens display.
type ResumoDespesasResponse struct {
	Despesas []DespesaResponse `json:"despesas"`
	// PercentualTotal is the variable cost % the pricing formula uses.
	PercentualTotal decimal.Decimal `json:"percentual_total"`
	// TotalFixas sums the fixed-typed expenses (reporting only).
	TotalFixas decimal.Decimal `json:"total_fixas"`
}
