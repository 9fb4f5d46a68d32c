package repository

import (
	"context"

	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/dto"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CaixaRepository is append-only: the cash ledger has no update or delete.
// Corrections happen through inverse entries.
type CaixaRepository interface {
	Create(ctx context.Context, mov *model.MovimentoCaixa) error
	CreateTx(tx *gorm.DB, mov *model.MovimentoCaixa) error
	List(ctx context.Context, filter dto.CaixaFilter) ([]model.MovimentoCaixa, int64, error)
	// SomarPeriodo returns total entradas and saidas inside the day bounds.
	SomarPeriodo(ctx context.Context, de, ate string) (entradas, saidas decimal.Decimal, err error)
	DB() *gorm.DB
}

type caixaRepo struct{ db *gorm.DB }

func NewCaixaRepository(db *gorm.DB) CaixaRepository { return &caixaRepo{db: db} }

func (r *caixaRepo) Create(ctx context.Context, mov *model.MovimentoCaixa) error {
	return r.db.WithContext(ctx).Create(mov).Error
}

func (r *caixaRepo) CreateTx(tx *gorm.DB, mov *model.MovimentoCaixa) error {
	return tx.Create(mov).Error
}

func (r *caixaRepo) List(ctx context.Context, filter dto.CaixaFilter) ([]model.MovimentoCaixa, int64, error) {
	var movs []model.MovimentoCaixa
	var total int64

	q := r.db.WithContext(ctx).Model(&model.MovimentoCaixa{})

	if filter.Tipo != "" && filter.Tipo != "all" {
		q = q.Where("tipo = ?", filter.Tipo)
	}
	q, err := aplicarPeriodo(q, "data", filter.De, filter.Ate)
	if err != nil {
		return nil, 0, err
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err = q.Order("data DESC").Limit(filter.Limit).Offset(offset).Find(&movs).Error
	return movs, total, err
}

func (r *caixaRepo) SomarPeriodo(ctx context.Context, de, ate string) (decimal.Decimal, decimal.Decimal, error) {
	type soma struct {
		Tipo  string
		Valor decimal.Decimal
	}
	var somas []soma

	q := r.db.WithContext(ctx).Model(&model.MovimentoCaixa{}).
		Select("tipo, COALESCE(SUM(valor), 0) AS valor").Group("tipo")
	q, err := aplicarPeriodo(q, "data", de, ate)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	if err := q.Scan(&somas).Error; err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	entradas, saidas := decimal.Zero, decimal.Zero
	for _, s := range somas {
		switch s.Tipo {
		case "entrada":
			entradas = s.Valor
		case "saida":
			saidas = s.Valor
		}
	}
	return entradas, saidas, nil
}

func (r *caixaRepo) DB() *gorm.DB { return r.db }
