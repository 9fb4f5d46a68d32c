package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Material is a purchasable raw input (slab, glass sheet, metal profile,
// hardware, service...). EstoqueAtual is informational: quoting never
// decrements it, only explicit stock adjustments do.
type Material struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome string    `gorm:"index;not null"`
	// CategoriaUso: "chapa" | "linear" | "componente" | "peso" | "servico"
	CategoriaUso string `gorm:"type:varchar(20);not null"`
	// Unidade: "m2" | "ml" | "unidade" | "kg" | "g" | "cm" | "mm"
	Unidade       string          `gorm:"type:varchar(10);not null"`
	EstoqueAtual  decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	TamanhoPadrao *string
	ImagemURL     *string
	Ativo         bool `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Variantes is never empty: creation rejects materials without at least
	// one variant, and the first one (by Posicao) is the pricing fallback.
	Variantes []MaterialVariante `gorm:"foreignKey:MaterialID;constraint:OnDelete:CASCADE"`
}

func (Material) TableName() string { return "materiais" }

// MaterialVariante is a named color/finish option with its own unit cost and
// unit sale price.
type MaterialVariante struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MaterialID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Nome       string          `gorm:"not null"`
	Custo      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PrecoVenda decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Posicao    int             `gorm:"not null;default:0"`
}

func (MaterialVariante) TableName() string { return "material_variantes" }
