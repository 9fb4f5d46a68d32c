package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Produto is a sellable, price-computed item: a composition of materials plus
// labor and a desired profit margin. It carries no price of its own — prices
// are always derived by the pricing engine at quote time.
type Produto struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome        string          `gorm:"index;not null"`
	Categoria   string          `gorm:"not null"` // free text: "Box", "Bancada", "Portão"...
	ImagemURL   *string
	MaoDeObra   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	MargemLucro decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"` // percent
	Ativo       bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Composicao []ItemComposicao `gorm:"foreignKey:ProdutoID;constraint:OnDelete:CASCADE"`
}

// ItemComposicao is one line of a product's composition: which material it
// consumes and under which quantity-derivation rule. Exactly one of
// Multiplicador / FatorMM / Quantidade matters per rule; the others are
// ignored (see internal/pricing).
//
// MaterialID intentionally has no foreign-key constraint: deleting a material
// leaves the reference dangling and the pricing engine prices that line as
// zero, matching the legacy behavior.
type ItemComposicao struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProdutoID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	MaterialID    uuid.UUID       `gorm:"type:uuid;not null"`
	Regra         string          `gorm:"type:varchar(30);not null"`
	Multiplicador decimal.Decimal `gorm:"type:decimal(10,4);not null;default:0"`
	FatorMM       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Quantidade    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Posicao       int             `gorm:"not null;default:0"`
}

func (ItemComposicao) TableName() string { return "itens_composicao" }
