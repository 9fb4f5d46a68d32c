package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ───────────────────────────────────────────────────────────

type ProdutoFilter struct {
	Nome      string `form:"nome"`
	Categoria string `form:"categoria"`
	Ativo     string `form:"ativo"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ProdutoListResponse struct {
	Data  []ProdutoResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// ─── Requests ────────────────────────────────────────────────────────────────

type ItemComposicaoRequest struct {
	MaterialID string `json:"material_id" validate:"required,uuid"`
	Regra      string `json:"regra"       validate:"required,oneof=perimeter height_multiplier width_multiplier area_multiplier fill fixed_quantity"`
	// Rule parameters — only the one matching the rule matters, the rest are
	// ignored. Zero means "absent" and takes the rule's default.
	Multiplicador decimal.Decimal `json:"multiplicador" validate:"min=0"`
	FatorMM       decimal.Decimal `json:"fator_mm"      validate:"min=0"`
	Quantidade    decimal.Decimal `json:"quantidade"    validate:"min=0"`
}

type CriarProdutoRequest struct {
	Nome        string                  `json:"nome"         validate:"required"`
	Categoria   string                  `json:"categoria"    validate:"required"`
	ImagemURL   *string                 `json:"imagem_url"`
	MaoDeObra   decimal.Decimal         `json:"mao_de_obra"  validate:"min=0"`
	MargemLucro decimal.Decimal         `json:"margem_lucro" validate:"min=0,max=100"`
	Composicao  []ItemComposicaoRequest `json:"composicao"   validate:"dive"`
}

type AtualizarProdutoRequest struct {
	Nome        string                  `json:"nome"`
	Categoria   string                  `json:"categoria"`
	ImagemURL   *string                 `json:"imagem_url"`
	MaoDeObra   *decimal.Decimal        `json:"mao_de_obra"`
	MargemLucro *decimal.Decimal        `json:"margem_lucro"`
	// When present, replaces the composition as a set (no per-line patching).
	Composicao []ItemComposicaoRequest `json:"composicao" validate:"omitempty,dive"`
}

// SimulacaoRequest prices a product for given dimensions without touching any
// quote — the quoting screen uses it for live previews.
type SimulacaoRequest struct {
	ProdutoID  string          `json:"produto_id" validate:"required,uuid"`
	Variante   string          `json:"variante"`
	LarguraMM  decimal.Decimal `json:"largura_mm"  validate:"min=0"`
	AlturaMM   decimal.Decimal `json:"altura_mm"   validate:"min=0"`
	Quantidade decimal.Decimal `json:"quantidade"  validate:"min=0"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type ItemComposicaoResponse struct {
	ID            string          `json:"id"`
	MaterialID    string          `json:"material_id"`
	MaterialNome  string          `json:"material_nome,omitempty"`
	Regra         string          `json:"regra"`
	Multiplicador decimal.Decimal `json:"multiplicador"`
	FatorMM       decimal.Decimal `json:"fator_mm"`
	Quantidade    decimal.Decimal `json:"quantidade"`
}

type ProdutoResponse struct {
	ID          string                   `json:"id"`
	Nome        string                   `json:"nome"`
	Categoria   string                   `json:"categoria"`
	ImagemURL   *string                  `json:"imagem_url,omitempty"`
	MaoDeObra   decimal.Decimal          `json:"mao_de_obra"`
	MargemLucro decimal.Decimal          `json:"margem_lucro"`
	Ativo       bool                     `json:"ativo"`
	Composicao  []ItemComposicaoResponse `json:"composicao"`
}

type SimulacaoResponse struct {
	ProdutoNome string          `json:"produto_nome"`
	Preco       decimal.Decimal `json:"preco"`
	Custo       decimal.Decimal `json:"custo"`
	// MargemInviavel is true when the price came from the cost-doubling
	// fallback (variable costs + margin ≥ 100%) and should be reviewed.
	MargemInviavel bool `json:"margem_inviavel"`
}
