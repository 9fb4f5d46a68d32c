package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is a customer of the shop. Quotes snapshot the client name at
// creation time, so renaming a client never rewrites past quotes.
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string    `gorm:"index;not null"`
	Telefone  *string
	Email     *string
	Endereco  *string
	Ativo     bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
