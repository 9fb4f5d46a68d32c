package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale states.
const (
	VendaConcluida = "concluida"
	VendaCancelada = "cancelada"
)

// Venda is a closed sale: created when a quote is approved (carrying its
// totals as a snapshot) or registered directly for over-the-counter sales.
type Venda struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrcamentoID *uuid.UUID `gorm:"type:uuid;index"`
	ClienteNome string     `gorm:"not null"`

	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CustoProducao decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	FormaPagamento string `gorm:"type:varchar(30)"`
	Vendedor       string `gorm:"not null"`
	Estado         string `gorm:"type:varchar(12);not null;default:'concluida';index"`
	Data           time.Time `gorm:"index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
