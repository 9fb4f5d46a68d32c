package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Quote lifecycle states.
const (
	OrcamentoPendente = "Pendente"
	OrcamentoAprovado = "Aprovado"
	OrcamentoRecusado = "Recusado"
)

// Email delivery states for the quote confirmation mail (retried by the
// worker cron until sent or given up on).
const (
	EmailNaoSolicitado = "nao_solicitado"
	EmailPendente      = "pendente"
	EmailEnviado       = "enviado"
	EmailErro          = "erro"
)

// Orcamento is a quote: an ordered collection of priced lines plus aggregate
// charges. Line prices are snapshotted when the line is created or edited;
// later catalog or expense changes never reprice a saved quote.
type Orcamento struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero int       `gorm:"uniqueIndex;not null"`

	ClienteID   *uuid.UUID `gorm:"type:uuid;index"`
	ClienteNome string     `gorm:"not null"` // snapshot

	// Aggregates are always re-derived from the current lines — never edited
	// directly. Total may go negative when Desconto exceeds the rest; that is
	// preserved legacy behavior.
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Desconto      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Frete         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Instalacao    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CustoProducao decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	// Save-time snapshots from the expense registry and the flat 20%
	// fixed-cost estimate. Display/report data only.
	CustoFixoEstimado decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ValorComissao     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ValorImposto      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ValorTaxaCartao   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	FormaPagamento string  `gorm:"type:varchar(30)"`
	Observacoes    *string
	Vendedor       string  `gorm:"not null"`
	Data           time.Time
	Estado         string `gorm:"type:varchar(12);not null;default:'Pendente';index"`
	// MargemInviavel marks quotes where at least one line was priced through
	// the cost-doubling fallback and needs review.
	MargemInviavel bool `gorm:"not null;default:false"`

	// Email retry bookkeeping, consumed by the worker retry cron.
	EmailEstado      string     `gorm:"type:varchar(16);not null;default:'nao_solicitado'"`
	EmailDestino     *string
	EmailRetryCount  int        `gorm:"not null;default:0"`
	EmailNextRetryAt *time.Time `gorm:"index"`
	EmailLastError   *string

	CreatedAt time.Time
	UpdatedAt time.Time

	Itens []ItemOrcamento `gorm:"foreignKey:OrcamentoID;constraint:OnDelete:CASCADE"`
}

// ItemOrcamento is one priced quote line. Preco and Custo are quantity-scaled
// totals (unit value = total / quantidade). They are recomputed by the
// pricing engine whenever produto, variante, dimensions, or quantity change,
// and by nothing else.
type ItemOrcamento struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrcamentoID uuid.UUID `gorm:"type:uuid;not null;index"`

	// ProdutoID is a plain reference, not a constraint: the line keeps its
	// snapshot even if the product is later deleted.
	ProdutoID  uuid.UUID `gorm:"type:uuid;not null"`
	ProdutoNome string    `gorm:"not null"` // snapshot
	Variante    string
	Descricao   string

	LarguraMM  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	AlturaMM   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Quantidade decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`

	Preco    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Custo    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Inviavel bool            `gorm:"not null;default:false"`
	Posicao  int             `gorm:"not null;default:0"`
}

func (ItemOrcamento) TableName() string { return "itens_orcamento" }
