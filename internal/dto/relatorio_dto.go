package dto

import "github.com/shopspring/decimal"

// RelatorioFilter selects the reporting period (inclusive dates).
type RelatorioFilter struct {
	De  string `form:"de"  validate:"required"` // YYYY-MM-DD
	Ate string `form:"ate" validate:"required"` // YYYY-MM-DD
}

// RelatorioFinanceiroResponse is the period income statement the dashboard
// renders: revenue from completed sales, cost of goods, the variable-expense
// deductions by category, the flat fixed-cost estimate, and the remainder.
type RelatorioFinanceiroResponse struct {
	De  string `json:"de"`
	Ate string `json:"ate"`

	Faturamento   decimal.Decimal `json:"faturamento"`
	CustoProducao decimal.Decimal `json:"custo_producao"`
	LucroBruto    decimal.Decimal `json:"lucro_bruto"`

	Comissao          decimal.Decimal `json:"comissao"`
	Imposto           decimal.Decimal `json:"imposto"`
	TaxaCartao        decimal.Decimal `json:"taxa_cartao"`
	CustoFixoEstimado decimal.Decimal `json:"custo_fixo_estimado"`

	ResultadoLiquido decimal.Decimal `json:"resultado_liquido"`

	QuantidadeVendas    int64 `json:"quantidade_vendas"`
	OrcamentosAprovados int64 `json:"orcamentos_aprovados"`
	OrcamentosPendentes int64 `json:"orcamentos_pendentes"`
}
