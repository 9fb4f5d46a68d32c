// Package pricing implements the quote-pricing engine: composition-rule
// evaluation, markup/margin derivation, and quote aggregation.
//
// The engine is a family of pure functions. It performs no I/O, keeps no
// state, and never returns an error: every degenerate input (dangling
// material reference, unknown variant, zero dimensions, infeasible margin
// configuration) degrades to a defined numeric answer. Callers pass
// immutable snapshots of the material catalog and the expense registry —
// never live repositories — so a recomputation is an idempotent call.
package pricing

import "github.com/shopspring/decimal"

// Regra identifies how a composition line converts the piece's dimensions
// into consumed material quantity. Closed enumeration; an unknown value
// contributes zero quantity.
type Regra string

const (
	// RegraPerimetro consumes 2·largura + 2·altura (in meters) — frame
	// profiles and edge finishing.
	RegraPerimetro Regra = "perimeter"
	// RegraAlturaX consumes altura × multiplicador.
	RegraAlturaX Regra = "height_multiplier"
	// RegraLarguraX consumes largura × multiplicador.
	RegraLarguraX Regra = "width_multiplier"
	// RegraAreaX consumes largura × altura × multiplicador.
	RegraAreaX Regra = "area_multiplier"
	// RegraPreenchimento fills the span. For materials sold by area the
	// consumption is largura × altura; otherwise the span is filled with
	// slats of FatorMM width: ceil(largura / fator) × altura.
	RegraPreenchimento Regra = "fill"
	// RegraQuantidadeFixa consumes Quantidade units regardless of dimensions
	// (hardware, hinges, accessories).
	RegraQuantidadeFixa Regra = "fixed_quantity"
)

// UnidadeM2 is the area unit of measure; it changes how RegraPreenchimento
// evaluates.
const UnidadeM2 = "m2"

// Variante is a named cost/price option of a material (a color or finish).
type Variante struct {
	Nome       string
	Custo      decimal.Decimal
	PrecoVenda decimal.Decimal
}

// Material is the engine-side snapshot of a raw material.
type Material struct {
	ID        string
	Unidade   string // m2 | ml | unidade | kg | g | cm | mm
	Variantes []Variante
}

// Variante resolves a variant by name, falling back to the material's first
// variant when the name does not match. ok is false only when the material
// has no variants at all — a state the catalog invariant forbids but the
// engine still tolerates.
func (m Material) Variante(nome string) (Variante, bool) {
	if len(m.Variantes) == 0 {
		return Variante{}, false
	}
	for _, v := range m.Variantes {
		if v.Nome == nome {
			return v, true
		}
	}
	return m.Variantes[0], true
}

// ItemComposicao is one line of a product's composition. Exactly one of the
// parameter fields is meaningful for a given Regra; the others are ignored.
// A zero parameter is treated as absent and takes the rule's default.
type ItemComposicao struct {
	MaterialID    string
	Regra         Regra
	Multiplicador decimal.Decimal // height/width/area rules; default 1
	FatorMM       decimal.Decimal // fill rule slat width in mm; default 1
	Quantidade    decimal.Decimal // fixed_quantity count; default 1
}

// Produto is the engine-side snapshot of a sellable product.
type Produto struct {
	Composicao  []ItemComposicao
	MaoDeObra   decimal.Decimal
	MargemLucro decimal.Decimal // desired profit margin, percent of sale price
}

// Catalogo is an immutable material lookup passed explicitly on every call.
type Catalogo map[string]Material

var (
	um   = decimal.NewFromInt(1)
	dois = decimal.NewFromInt(2)
	cem  = decimal.NewFromInt(100)
	mil  = decimal.NewFromInt(1000)
)

// umSeZero implements the "zero means absent" convention for rule parameters.
func umSeZero(d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return um
	}
	return d
}

// QuantidadeMaterial evaluates a composition line against the piece's
// dimensions and returns the consumed quantity in the material's own unit.
// Dimensions arrive in millimeters and are converted to meters internally.
func QuantidadeMaterial(item ItemComposicao, m Material, larguraMM, alturaMM decimal.Decimal) decimal.Decimal {
	largura := larguraMM.Div(mil)
	altura := alturaMM.Div(mil)

	switch item.Regra {
	case RegraPerimetro:
		return largura.Add(altura).Mul(dois)
	case RegraAlturaX:
		return altura.Mul(umSeZero(item.Multiplicador))
	case RegraLarguraX:
		return largura.Mul(umSeZero(item.Multiplicador))
	case RegraAreaX:
		return largura.Mul(altura).Mul(umSeZero(item.Multiplicador))
	case RegraPreenchimento:
		if m.Unidade == UnidadeM2 {
			return largura.Mul(altura)
		}
		// Fator ≤ 0 would divide by (near) zero — fall back to the 1mm default.
		fator := item.FatorMM
		if fator.Sign() <= 0 {
			fator = um
		}
		pecas := largura.Div(fator.Div(mil)).Ceil()
		return pecas.Mul(altura)
	case RegraQuantidadeFixa:
		return umSeZero(item.Quantidade)
	}
	return decimal.Zero
}

// CustoProducao returns the unit cost of goods: the sum over the composition
// of consumed quantity × variant unit cost, plus the product's labor cost.
//
// A composition line whose material is missing from the catalog contributes
// zero — dangling references are a defined no-op, not an error. An unknown
// variant name falls back to the material's first variant.
func CustoProducao(p Produto, cat Catalogo, variante string, larguraMM, alturaMM decimal.Decimal) decimal.Decimal {
	custo := p.MaoDeObra
	for _, item := range p.Composicao {
		m, ok := cat[item.MaterialID]
		if !ok {
			continue
		}
		v, ok := m.Variante(variante)
		if !ok {
			continue
		}
		qtd := QuantidadeMaterial(item, m, larguraMM, alturaMM)
		custo = custo.Add(qtd.Mul(v.Custo))
	}
	return custo
}

// Resultado is a derived sale price. Inviavel=true means the configured
// percentages consume 100% or more of the sale price, and Valor is the
// legacy cost-doubling placeholder rather than a derived price — callers
// should surface it as a warning, not a real quote.
type Resultado struct {
	Valor    decimal.Decimal
	Inviavel bool
}

// PrecoVenda backs a sale price out of the unit cost with the markup
// divisor 1 − despesas% − margem%: after variable costs and profit are
// taken as shares of the sale price, the remainder covers cost of goods.
func PrecoVenda(custo, margemPct, despesasPct decimal.Decimal) Resultado {
	divisor := um.Sub(despesasPct.Div(cem)).Sub(margemPct.Div(cem))
	if divisor.IsPositive() {
		return Resultado{Valor: custo.Div(divisor)}
	}
	return Resultado{Valor: custo.Mul(dois), Inviavel: true}
}

// ItemPrecificado is one priced quote line. Preco and Custo are always
// quantity-scaled totals; unit values are total / quantidade.
type ItemPrecificado struct {
	Preco    decimal.Decimal
	Custo    decimal.Decimal
	Inviavel bool
}

// PrecificarItem prices one quote line from current catalog, product, and
// expense data. Zero (or negative) quantity yields zero price and cost.
func PrecificarItem(p Produto, cat Catalogo, variante string, larguraMM, alturaMM, quantidade, despesasPct decimal.Decimal) ItemPrecificado {
	if quantidade.Sign() <= 0 {
		return ItemPrecificado{Preco: decimal.Zero, Custo: decimal.Zero}
	}
	custoUnitario := CustoProducao(p, cat, variante, larguraMM, alturaMM)
	r := PrecoVenda(custoUnitario, p.MargemLucro, despesasPct)
	return ItemPrecificado{
		Preco:    r.Valor.Mul(quantidade),
		Custo:    custoUnitario.Mul(quantidade),
		Inviavel: r.Inviavel,
	}
}

// TotaisOrcamento are the aggregate values of a quote.
type TotaisOrcamento struct {
	Subtotal decimal.Decimal
	Total    decimal.Decimal
	Custo    decimal.Decimal
}

// Totais re-derives quote totals from the current line values. This is a
// full re-derivation, never an incremental update: running it twice on the
// same lines yields identical totals. Total = subtotal + frete + instalacao
// − desconto, and it MAY go negative when the discount exceeds the rest —
// that behavior is preserved deliberately.
func Totais(itens []ItemPrecificado, frete, instalacao, desconto decimal.Decimal) TotaisOrcamento {
	subtotal := decimal.Zero
	custo := decimal.Zero
	for _, it := range itens {
		subtotal = subtotal.Add(it.Preco)
		custo = custo.Add(it.Custo)
	}
	return TotaisOrcamento{
		Subtotal: subtotal,
		Total:    subtotal.Add(frete).Add(instalacao).Sub(desconto),
		Custo:    custo,
	}
}
