package infra

import (
	"fmt"

	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs
// AutoMigrate to create/update all tables.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return db, nil
}

// RunMigrations applies the schema. Also used by integration test setups.
func RunMigrations(db *gorm.DB) error {
	// pgcrypto provides gen_random_uuid() on Postgres < 13.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("pgcrypto: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Material{},
		&model.MaterialVariante{},
		&model.Produto{},
		&model.ItemComposicao{},
		&model.Despesa{},
		&model.Cliente{},
		&model.Orcamento{},
		&model.ItemOrcamento{},
		&model.Venda{},
		&model.MovimentoCaixa{},
		&model.MovimentoEstoque{},
		&model.Usuario{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}

	// Quote numbers come from a sequence so concurrent saves never collide.
	if err := db.Exec(`CREATE SEQUENCE IF NOT EXISTS orcamento_numero_seq START 1`).Error; err != nil {
		return fmt.Errorf("orcamento_numero_seq: %w", err)
	}

	return nil
}
