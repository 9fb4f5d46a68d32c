package dto

// ─── Requests ────────────────────────────────────────────────────────────────

type CriarClienteRequest struct {
	Nome     string  `json:"nome" validate:"required"`
	Telefone *string `json:"telefone"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Endereco *string `json:"endereco"`
}

type AtualizarClienteRequest struct {
	Nome     string  `json:"nome"`
	Telefone *string `json:"telefone"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Endereco *string `json:"endereco"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type ClienteResponse struct {
	ID       string  `json:"id"`
	Nome     string  `json:"nome"`
	Telefone *string `json:"telefone,omitempty"`
	Email    *string `json:"email,omitempty"`
	Endereco *string `json:"endereco,omitempty"`
	Ativo    bool    `json:"ativo"`
}

// ClienteFilter is bound from the query string of GET /v1/clientes.
type ClienteFilter struct {
	Nome  string `form:"nome"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ClienteListResponse struct {
	Data  []ClienteResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
