package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ───────────────────────────────────────────────────────────

// MaterialFilter is bound from the query string of GET /v1/materiais.
type MaterialFilter struct {
	Nome      string `form:"nome"`
	Categoria string `form:"categoria"`
	Ativo     string `form:"ativo"` // "false" = inativos, "all" = todos, default ativos
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type MaterialListResponse struct {
	Data  []MaterialResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// ─── Requests ────────────────────────────────────────────────────────────────

type VarianteRequest struct {
	Nome       string          `json:"nome"        validate:"required"`
	Custo      decimal.Decimal `json:"custo"       validate:"min=0"`
	PrecoVenda decimal.Decimal `json:"preco_venda" validate:"min=0"`
}

type CriarMaterialRequest struct {
	Nome          string            `json:"nome"           validate:"required"`
	CategoriaUso  string            `json:"categoria_uso"  validate:"required,oneof=chapa linear componente peso servico"`
	Unidade       string            `json:"unidade"        validate:"required,oneof=m2 ml unidade kg g cm mm"`
	EstoqueAtual  decimal.Decimal   `json:"estoque_atual"  validate:"min=0"`
	TamanhoPadrao *string           `json:"tamanho_padrao"`
	ImagemURL     *string           `json:"imagem_url"`
	// Every material needs at least one variant — the first is the pricing fallback.
	Variantes []VarianteRequest `json:"variantes" validate:"required,min=1,dive"`
}

type AtualizarMaterialRequest struct {
	Nome          string            `json:"nome"`
	CategoriaUso  string            `json:"categoria_uso" validate:"omitempty,oneof=chapa linear componente peso servico"`
	Unidade       string            `json:"unidade"       validate:"omitempty,oneof=m2 ml unidade kg g cm mm"`
	TamanhoPadrao *string           `json:"tamanho_padrao"`
	ImagemURL     *string           `json:"imagem_url"`
	// When present, replaces the variant set as a whole.
	Variantes []VarianteRequest `json:"variantes" validate:"omitempty,min=1,dive"`
}

type AjusteEstoqueRequest struct {
	// Quantidade: positive = entrada, negative = saida.
	Quantidade decimal.Decimal `json:"quantidade" validate:"required"`
	Motivo     string          `json:"motivo"     validate:"required,min=3"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type VarianteResponse struct {
	ID         string          `json:"id"`
	Nome       string          `json:"nome"`
	Custo      decimal.Decimal `json:"custo"`
	PrecoVenda decimal.Decimal `json:"preco_venda"`
}

type MaterialResponse struct {
	ID            string             `json:"id"`
	Nome          string             `json:"nome"`
	CategoriaUso  string             `json:"categoria_uso"`
	Unidade       string             `json:"unidade"`
	EstoqueAtual  decimal.Decimal    `json:"estoque_atual"`
	TamanhoPadrao *string            `json:"tamanho_padrao,omitempty"`
	ImagemURL     *string            `json:"imagem_url,omitempty"`
	Ativo         bool               `json:"ativo"`
	Variantes     []VarianteResponse `json:"variantes"`
}

type MovimentoEstoqueResponse struct {
	ID              string          `json:"id"`
	MaterialID      string          `json:"material_id"`
	MaterialNome    string          `json:"material_nome"`
	Quantidade      decimal.Decimal `json:"quantidade"`
	EstoqueAnterior decimal.Decimal `json:"estoque_anterior"`
	EstoqueNovo     decimal.Decimal `json:"estoque_novo"`
	Motivo          string          `json:"motivo"`
	CreatedAt       string          `json:"created_at"`
}
