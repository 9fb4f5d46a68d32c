package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// catalogoTeste builds a one-material catalog with a single variant.
func catalogoTeste(id, unidade string, custo string) Catalogo {
	return Catalogo{
		id: {
			ID:      id,
			Unidade: unidade,
			Variantes: []Variante{
				{Nome: "Padrão", Custo: d(custo), PrecoVenda: d(custo).Mul(dois)},
			},
		},
	}
}

// ── Rule correctness ─────────────────────────────────────────────────────────

func TestQuantidadeMaterial_Perimetro(t *testing.T) {
	item := ItemComposicao{MaterialID: "perfil", Regra: RegraPerimetro}
	m := Material{ID: "perfil", Unidade: "ml"}

	qtd := QuantidadeMaterial(item, m, d("2000"), d("1000"))

	// 2·2m + 2·1m = 6 linear meters
	assert.True(t, qtd.Equal(d("6")), "got %s", qtd)
}

func TestQuantidadeMaterial_AreaComMultiplicador(t *testing.T) {
	item := ItemComposicao{Regra: RegraAreaX, Multiplicador: d("1")}
	m := Material{Unidade: "m2"}

	qtd := QuantidadeMaterial(item, m, d("1000"), d("2000"))

	assert.True(t, qtd.Equal(d("2")), "got %s", qtd)
}

func TestQuantidadeMaterial_MultiplicadorZeroViraUm(t *testing.T) {
	// Zero multiplier means "absent" and defaults to 1 — legacy `|| 1`.
	item := ItemComposicao{Regra: RegraAlturaX}
	m := Material{Unidade: "ml"}

	qtd := QuantidadeMaterial(item, m, d("500"), d("3000"))

	assert.True(t, qtd.Equal(d("3")), "got %s", qtd)
}

func TestQuantidadeMaterial_LarguraComMultiplicador(t *testing.T) {
	item := ItemComposicao{Regra: RegraLarguraX, Multiplicador: d("2")}
	m := Material{Unidade: "ml"}

	qtd := QuantidadeMaterial(item, m, d("1500"), d("9999"))

	assert.True(t, qtd.Equal(d("3")), "got %s", qtd)
}

func TestQuantidadeMaterial_PreenchimentoPorArea(t *testing.T) {
	item := ItemComposicao{Regra: RegraPreenchimento, FatorMM: d("120")}
	m := Material{Unidade: UnidadeM2}

	qtd := QuantidadeMaterial(item, m, d("1000"), d("2500"))

	// Area materials ignore the factor: 1m × 2.5m
	assert.True(t, qtd.Equal(d("2.5")), "got %s", qtd)
}

func TestQuantidadeMaterial_PreenchimentoPorRipas(t *testing.T) {
	item := ItemComposicao{Regra: RegraPreenchimento, FatorMM: d("120")}
	m := Material{Unidade: "ml"}

	qtd := QuantidadeMaterial(item, m, d("1000"), d("2500"))

	// ceil(1 / 0.12) = 9 slats × 2.5m each
	assert.True(t, qtd.Equal(d("22.5")), "got %s", qtd)
}

func TestQuantidadeMaterial_PreenchimentoFatorZero(t *testing.T) {
	// Factor ≤ 0 must not divide by zero; it falls back to the 1mm default.
	item := ItemComposicao{Regra: RegraPreenchimento}
	m := Material{Unidade: "ml"}

	qtd := QuantidadeMaterial(item, m, d("10"), d("1000"))

	// ceil(0.01 / 0.001) = 10 slats × 1m
	assert.True(t, qtd.Equal(d("10")), "got %s", qtd)
}

func TestQuantidadeMaterial_QuantidadeFixa(t *testing.T) {
	item := ItemComposicao{Regra: RegraQuantidadeFixa, Quantidade: d("3")}
	m := Material{Unidade: "unidade"}

	// Dimensions are irrelevant for fixed-quantity lines.
	qtd := QuantidadeMaterial(item, m, d("123"), d("456"))

	assert.True(t, qtd.Equal(d("3")), "got %s", qtd)
}

func TestQuantidadeMaterial_RegraDesconhecida(t *testing.T) {
	item := ItemComposicao{Regra: "telepathy"}
	m := Material{Unidade: "ml"}

	qtd := QuantidadeMaterial(item, m, d("1000"), d("1000"))

	assert.True(t, qtd.IsZero())
}

// ── Cost of goods ────────────────────────────────────────────────────────────

func TestCustoProducao_SomaMateriaisEMaoDeObra(t *testing.T) {
	cat := catalogoTeste("vidro", UnidadeM2, "50")
	p := Produto{
		Composicao: []ItemComposicao{
			{MaterialID: "vidro", Regra: RegraPreenchimento},
		},
		MaoDeObra: d("30"),
	}

	custo := CustoProducao(p, cat, "Padrão", d("1000"), d("2000"))

	// 2m² × 50 + 30 labor
	assert.True(t, custo.Equal(d("130")), "got %s", custo)
}

func TestCustoProducao_MaterialInexistenteContribuiZero(t *testing.T) {
	cat := catalogoTeste("vidro", UnidadeM2, "50")
	p := Produto{
		Composicao: []ItemComposicao{
			{MaterialID: "vidro", Regra: RegraPreenchimento},
			{MaterialID: "fantasma", Regra: RegraPerimetro},
		},
		MaoDeObra: d("10"),
	}

	custo := CustoProducao(p, cat, "Padrão", d("1000"), d("1000"))

	// The dangling reference is silently skipped: 1m² × 50 + 10
	assert.True(t, custo.Equal(d("60")), "got %s", custo)
}

func TestCustoProducao_VarianteDesconhecidaUsaPrimeira(t *testing.T) {
	cat := Catalogo{
		"granito": {
			ID:      "granito",
			Unidade: UnidadeM2,
			Variantes: []Variante{
				{Nome: "Preto São Gabriel", Custo: d("80")},
				{Nome: "Branco Siena", Custo: d("120")},
			},
		},
	}
	p := Produto{Composicao: []ItemComposicao{{MaterialID: "granito", Regra: RegraPreenchimento}}}

	custo := CustoProducao(p, cat, "Verde Ubatuba", d("1000"), d("1000"))

	assert.True(t, custo.Equal(d("80")), "got %s", custo)
}

func TestCustoProducao_MaterialSemVariantes(t *testing.T) {
	cat := Catalogo{"vazio": {ID: "vazio", Unidade: UnidadeM2}}
	p := Produto{Composicao: []ItemComposicao{{MaterialID: "vazio", Regra: RegraPreenchimento}}}

	custo := CustoProducao(p, cat, "", d("1000"), d("1000"))

	assert.True(t, custo.IsZero())
}

// ── Markup divisor ───────────────────────────────────────────────────────────

func TestPrecoVenda_DivisorDeMarkup(t *testing.T) {
	r := PrecoVenda(d("100"), d("20"), d("18"))

	require.False(t, r.Inviavel)
	// divisor = 1 − 0.18 − 0.20 = 0.62 ⇒ 100 / 0.62 ≈ 161.29
	assert.Equal(t, "161.29", r.Valor.Round(2).String())
}

func TestPrecoVenda_MargemInviavel(t *testing.T) {
	// 60% + 45% = 105% ≥ 100%: the placeholder doubles the cost and the
	// result is flagged so callers can warn the user.
	r := PrecoVenda(d("100"), d("60"), d("45"))

	assert.True(t, r.Inviavel)
	assert.True(t, r.Valor.Equal(d("200")), "got %s", r.Valor)
}

func TestPrecoVenda_DivisorExatamenteZero(t *testing.T) {
	r := PrecoVenda(d("50"), d("50"), d("50"))

	assert.True(t, r.Inviavel)
	assert.True(t, r.Valor.Equal(d("100")), "got %s", r.Valor)
}

// ── Line pricing ─────────────────────────────────────────────────────────────

func produtoTeste() (Produto, Catalogo) {
	cat := catalogoTeste("vidro", UnidadeM2, "50")
	p := Produto{
		Composicao:  []ItemComposicao{{MaterialID: "vidro", Regra: RegraPreenchimento}},
		MaoDeObra:   d("30"),
		MargemLucro: d("20"),
	}
	return p, cat
}

func TestPrecificarItem_EscalaPorQuantidade(t *testing.T) {
	p, cat := produtoTeste()

	unitario := PrecificarItem(p, cat, "Padrão", d("1000"), d("2000"), d("1"), d("18"))
	tres := PrecificarItem(p, cat, "Padrão", d("1000"), d("2000"), d("3"), d("18"))

	require.False(t, unitario.Inviavel)
	assert.True(t, tres.Preco.Equal(unitario.Preco.Mul(d("3"))), "preco %s vs %s", tres.Preco, unitario.Preco)
	assert.True(t, tres.Custo.Equal(unitario.Custo.Mul(d("3"))), "custo %s vs %s", tres.Custo, unitario.Custo)
}

func TestPrecificarItem_EntradasZeradas(t *testing.T) {
	p, cat := produtoTeste()

	item := PrecificarItem(p, cat, "Padrão", decimal.Zero, decimal.Zero, decimal.Zero, d("18"))

	assert.True(t, item.Preco.IsZero())
	assert.True(t, item.Custo.IsZero())
	assert.False(t, item.Inviavel)
}

func TestPrecificarItem_Idempotente(t *testing.T) {
	p, cat := produtoTeste()

	a := PrecificarItem(p, cat, "Padrão", d("1200"), d("800"), d("2"), d("18"))
	b := PrecificarItem(p, cat, "Padrão", d("1200"), d("800"), d("2"), d("18"))

	assert.Equal(t, a.Preco.String(), b.Preco.String())
	assert.Equal(t, a.Custo.String(), b.Custo.String())
	assert.Equal(t, a.Inviavel, b.Inviavel)
}

func TestPrecificarItem_PropagaInviavel(t *testing.T) {
	p, cat := produtoTeste()
	p.MargemLucro = d("90")

	item := PrecificarItem(p, cat, "Padrão", d("1000"), d("1000"), d("1"), d("18"))

	assert.True(t, item.Inviavel)
	assert.True(t, item.Preco.Equal(item.Custo.Mul(dois)), "preco %s custo %s", item.Preco, item.Custo)
}

// ── Aggregation ──────────────────────────────────────────────────────────────

func TestTotais_SomaESubtracao(t *testing.T) {
	itens := []ItemPrecificado{
		{Preco: d("100"), Custo: d("60")},
		{Preco: d("250.50"), Custo: d("130")},
	}

	tot := Totais(itens, d("40"), d("80"), d("25"))

	assert.True(t, tot.Subtotal.Equal(d("350.50")), "got %s", tot.Subtotal)
	assert.True(t, tot.Total.Equal(d("445.50")), "got %s", tot.Total)
	assert.True(t, tot.Custo.Equal(d("190")), "got %s", tot.Custo)
}

func TestTotais_DescontoMaiorQueTudoFicaNegativo(t *testing.T) {
	itens := []ItemPrecificado{{Preco: d("100"), Custo: d("60")}}

	tot := Totais(itens, decimal.Zero, decimal.Zero, d("150"))

	// No floor: the legacy behavior allows a negative total and it is kept.
	assert.True(t, tot.Total.Equal(d("-50")), "got %s", tot.Total)
}

func TestTotais_SemItens(t *testing.T) {
	tot := Totais(nil, d("10"), decimal.Zero, decimal.Zero)

	assert.True(t, tot.Subtotal.IsZero())
	assert.True(t, tot.Total.Equal(d("10")))
	assert.True(t, tot.Custo.IsZero())
}
