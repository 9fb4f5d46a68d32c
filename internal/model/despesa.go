package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Despesa is a registered deduction. Percent-typed expenses are summed into
// the "variable cost %" the pricing engine backs out of every sale price;
// fixed-typed expenses only feed fixed-cost reporting.
type Despesa struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome string    `gorm:"not null"`
	// Tipo: "percentual" | "fixa"
	Tipo  string          `gorm:"type:varchar(12);not null"`
	Valor decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Categoria: "comissao" | "imposto" | "taxa_cartao" | "outra".
	// Resolved at data entry (explicitly or via the legacy name classifier);
	// the engine and reports only ever do exact matches on it.
	Categoria string `gorm:"type:varchar(20);not null;default:'outra'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
