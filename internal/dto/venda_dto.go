package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ───────────────────────────────────────────────────────────

// VendaFilter is bound from the query string of GET /v1/vendas.
type VendaFilter struct {
	Estado string `form:"estado"` // concluida | cancelada | all
	De     string `form:"de"`     // YYYY-MM-DD
	Ate    string `form:"ate"`    // YYYY-MM-DD
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type VendaListResponse struct {
	Data  []VendaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// ─── Requests ────────────────────────────────────────────────────────────────

// RegistrarVendaRequest records an over-the-counter sale with no quote behind it.
type RegistrarVendaRequest struct {
	ClienteNome    string          `json:"cliente_nome" validate:"required"`
	Total          decimal.Decimal `json:"total"        validate:"required"`
	CustoProducao  decimal.Decimal `json:"custo_producao" validate:"min=0"`
	FormaPagamento string          `json:"forma_pagamento"`
}

type CancelarVendaRequest struct {
	Motivo string `json:"motivo" validate:"required,min=5"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type VendaResponse struct {
	ID             string          `json:"id"`
	OrcamentoID    *string         `json:"orcamento_id,omitempty"`
	ClienteNome    string          `json:"cliente_nome"`
	Total          decimal.Decimal `json:"total"`
	CustoProducao  decimal.Decimal `json:"custo_producao"`
	FormaPagamento string          `json:"forma_pagamento,omitempty"`
	Vendedor       string          `json:"vendedor"`
	Estado         string          `json:"estado"`
	Data           string          `json:"data"`
}
