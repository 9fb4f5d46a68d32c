package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovimentoCaixa is an immutable entry in the cash-flow ledger.
// Tipo: "entrada" | "saida". Entries are NEVER updated or deleted —
// a cancelled sale produces an inverse entry instead.
type MovimentoCaixa struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Tipo string    `gorm:"type:varchar(10);not null"`
	// Categoria: "venda" | "despesa" | "estorno" | "outro"
	Categoria string          `gorm:"type:varchar(20);not null;default:'outro'"`
	Valor     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Descricao string          `gorm:"not null"`
	// ReferenciaID links to the originating Venda, when applicable.
	ReferenciaID *uuid.UUID `gorm:"type:uuid"`
	Data         time.Time  `gorm:"index"`
	CreatedAt    time.Time
}

func (MovimentoCaixa) TableName() string { return "movimentos_caixa" }
