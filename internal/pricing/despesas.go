package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Categoria tags a variable expense with its role in the cost breakdown.
// The legacy data located these deductions by substring-matching free-text
// names; the category is now resolved once at data entry (see
// CategoriaPorNome) and the engine only ever does an exact match.
type Categoria string

const (
	CategoriaComissao   Categoria = "comissao"
	CategoriaImposto    Categoria = "imposto"
	CategoriaTaxaCartao Categoria = "taxa_cartao"
	CategoriaOutra      Categoria = "outra"
)

// Expense types. Only percent-typed expenses enter the pricing formula;
// fixed expenses exist for fixed-cost reporting.
const (
	TipoPercentual = "percentual"
	TipoFixa       = "fixa"
)

// Despesa is the engine-side snapshot of one registered deduction.
type Despesa struct {
	Nome      string
	Tipo      string // percentual | fixa
	Valor     decimal.Decimal
	Categoria Categoria
}

// SomaPercentuais returns the aggregate "variable cost %": the sum of every
// percent-typed expense value. This is the despesasPct input of PrecoVenda.
func SomaPercentuais(despesas []Despesa) decimal.Decimal {
	soma := decimal.Zero
	for _, d := range despesas {
		if d.Tipo == TipoPercentual {
			soma = soma.Add(d.Valor)
		}
	}
	return soma
}

// PercentualPorCategoria sums the percent-typed expenses of one category.
func PercentualPorCategoria(despesas []Despesa, c Categoria) decimal.Decimal {
	soma := decimal.Zero
	for _, d := range despesas {
		if d.Tipo == TipoPercentual && d.Categoria == c {
			soma = soma.Add(d.Valor)
		}
	}
	return soma
}

// CategoriaPorNome classifies a free-text expense name into a Categoria.
// It recognizes the names the legacy registry used ("Comissão do vendedor",
// "Imposto Simples", "Maquininha de cartão" and accent-free variants).
// Used only when an expense is registered without an explicit category.
func CategoriaPorNome(nome string) Categoria {
	n := strings.ToLower(nome)
	switch {
	case strings.Contains(n, "comiss"):
		return CategoriaComissao
	case strings.Contains(n, "imposto"), strings.Contains(n, "simples"):
		return CategoriaImposto
	case strings.Contains(n, "maquininha"), strings.Contains(n, "cartão"), strings.Contains(n, "cartao"):
		return CategoriaTaxaCartao
	}
	return CategoriaOutra
}

// CustoFixoEstimadoPct is the flat fixed-cost share applied to each sale in
// quote snapshots and the financial report. It is an estimate, not a
// measured value.
var CustoFixoEstimadoPct = decimal.NewFromInt(20)

// DetalhamentoCustos breaks a sale total into the conventional deductions.
// Display/reporting data only — the sale-price formula uses SomaPercentuais.
type DetalhamentoCustos struct {
	Comissao          decimal.Decimal
	Imposto           decimal.Decimal
	TaxaCartao        decimal.Decimal
	CustoFixoEstimado decimal.Decimal
}

// Detalhamento computes the per-category deduction amounts for a sale total.
func Detalhamento(total decimal.Decimal, despesas []Despesa) DetalhamentoCustos {
	parcela := func(c Categoria) decimal.Decimal {
		return total.Mul(PercentualPorCategoria(despesas, c)).Div(cem)
	}
	return DetalhamentoCustos{
		Comissao:          parcela(CategoriaComissao),
		Imposto:           parcela(CategoriaImposto),
		TaxaCartao:        parcela(CategoriaTaxaCartao),
		CustoFixoEstimado: total.Mul(CustoFixoEstimadoPct).Div(cem),
	}
}
