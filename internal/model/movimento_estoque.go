package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovimentoEstoque records each manual stock adjustment on a material.
// Quoting never writes here — material stock is informational, and only
// explicit inventory operations change it.
type MovimentoEstoque struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MaterialID uuid.UUID `gorm:"type:uuid;not null;index"`
	// Quantidade: positive = entrada, negative = saida, in the material's unit.
	Quantidade      decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	EstoqueAnterior decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	EstoqueNovo     decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Motivo          string
	CreatedAt       time.Time

	Material *Material `gorm:"foreignKey:MaterialID"`
}

func (MovimentoEstoque) TableName() string { return "movimentos_estoque" }
