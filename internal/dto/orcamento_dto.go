package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ───────────────────────────────────────────────────────────

// OrcamentoFilter is bound from the query string of GET /v1/orcamentos.
type OrcamentoFilter struct {
	Estado  string `form:"estado"` // Pendente | Aprovado | Recusado | all
	Cliente string `form:"cliente"`
	De      string `form:"de"`  // YYYY-MM-DD
	Ate     string `form:"ate"` // YYYY-MM-DD
	Page    int    `form:"page,default=1"   validate:"min=1"`
	Limit   int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type OrcamentoListResponse struct {
	Data  []OrcamentoResponse `json:"data"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}

// ─── Requests ────────────────────────────────────────────────────────────────

// ItemOrcamentoRequest is one line to be priced and added to a quote.
// The price is computed server-side at this moment — clients never send it.
type ItemOrcamentoRequest struct {
	ProdutoID  string          `json:"produto_id" validate:"required,uuid"`
	Variante   string          `json:"variante"`
	Descricao  string          `json:"descricao"`
	LarguraMM  decimal.Decimal `json:"largura_mm" validate:"min=0"`
	AlturaMM   decimal.Decimal `json:"altura_mm"  validate:"min=0"`
	Quantidade decimal.Decimal `json:"quantidade" validate:"min=0"`
}

type CriarOrcamentoRequest struct {
	ClienteID      *string                `json:"cliente_id" validate:"omitempty,uuid"`
	ClienteNome    string                 `json:"cliente_nome" validate:"required"`
	Itens          []ItemOrcamentoRequest `json:"itens"      validate:"required,min=1,dive"`
	Desconto       decimal.Decimal        `json:"desconto"   validate:"min=0"`
	Frete          decimal.Decimal        `json:"frete"      validate:"min=0"`
	Instalacao     decimal.Decimal        `json:"instalacao" validate:"min=0"`
	FormaPagamento string                 `json:"forma_pagamento"`
	Observacoes    *string                `json:"observacoes"`
	// EmailCliente: when present, a confirmation email is queued on save.
	EmailCliente *string `json:"email_cliente" validate:"omitempty,email"`
}

// AtualizarOrcamentoRequest edits the aggregate charges of a pending quote.
// Totals are re-derived; items are edited through their own endpoints.
type AtualizarOrcamentoRequest struct {
	Desconto       *decimal.Decimal `json:"desconto"`
	Frete          *decimal.Decimal `json:"frete"`
	Instalacao     *decimal.Decimal `json:"instalacao"`
	FormaPagamento string           `json:"forma_pagamento"`
	Observacoes    *string          `json:"observacoes"`
}

// AtualizarItemOrcamentoRequest re-prices one line. Only the edited line is
// recomputed; the quote totals are then re-derived from all current lines.
type AtualizarItemOrcamentoRequest struct {
	ProdutoID  string          `json:"produto_id" validate:"required,uuid"`
	Variante   string          `json:"variante"`
	Descricao  string          `json:"descricao"`
	LarguraMM  decimal.Decimal `json:"largura_mm" validate:"min=0"`
	AlturaMM   decimal.Decimal `json:"altura_mm"  validate:"min=0"`
	Quantidade decimal.Decimal `json:"quantidade" validate:"min=0"`
}

type MudarEstadoRequest struct {
	Estado string `json:"estado" validate:"required,oneof=Pendente Aprovado Recusado"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type ItemOrcamentoResponse struct {
	ID          string          `json:"id"`
	ProdutoID   string          `json:"produto_id"`
	ProdutoNome string          `json:"produto_nome"`
	Variante    string          `json:"variante"`
	Descricao   string          `json:"descricao,omitempty"`
	LarguraMM   decimal.Decimal `json:"largura_mm"`
	AlturaMM    decimal.Decimal `json:"altura_mm"`
	Quantidade  decimal.Decimal `json:"quantidade"`
	Preco       decimal.Decimal `json:"preco"`
	Custo       decimal.Decimal `json:"custo"`
	Inviavel    bool            `json:"inviavel"`
}

type OrcamentoResponse struct {
	ID             string                  `json:"id"`
	Numero         int                     `json:"numero"`
	ClienteID      *string                 `json:"cliente_id,omitempty"`
	ClienteNome    string                  `json:"cliente_nome"`
	Itens          []ItemOrcamentoResponse `json:"itens"`
	Subtotal       decimal.Decimal         `json:"subtotal"`
	Desconto       decimal.Decimal         `json:"desconto"`
	Frete          decimal.Decimal         `json:"frete"`
	Instalacao     decimal.Decimal         `json:"instalacao"`
	Total          decimal.Decimal         `json:"total"`
	CustoProducao  decimal.Decimal         `json:"custo_producao"`
	FormaPagamento string                  `json:"forma_pagamento,omitempty"`
	Observacoes    *string                 `json:"observacoes,omitempty"`
	Vendedor       string                  `json:"vendedor"`
	Estado         string                  `json:"estado"`
	MargemInviavel bool                    `json:"margem_inviavel"`

	CustoFixoEstimado decimal.Decimal `json:"custo_fixo_estimado"`
	ValorComissao     decimal.Decimal `json:"valor_comissao"`
	ValorImposto      decimal.Decimal `json:"valor_imposto"`
	ValorTaxaCartao   decimal.Decimal `json:"valor_taxa_cartao"`

	Data      string `json:"data"`
	CreatedAt string `json:"created_at"`
}
