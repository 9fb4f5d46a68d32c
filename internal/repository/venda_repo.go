package repository

import (
	"context"
	"time"

	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/dto"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VendaRepository interface {
	CreateTx(tx *gorm.DB, v *model.Venda) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venda, error)
	FindByOrcamentoID(ctx context.Context, orcamentoID uuid.UUID) (*model.Venda, error)
	List(ctx context.Context, filter dto.VendaFilter) ([]model.Venda, int64, error)
	UpdateTx(tx *gorm.DB, v *model.Venda) error
	// ListConcluidasPeriodo feeds the financial report: every completed sale
	// whose date falls inside [de, ate].
	ListConcluidasPeriodo(ctx context.Context, de, ate time.Time) ([]model.Venda, error)
	DB() *gorm.DB
}

type vendaRepo struct{ db *gorm.DB }

func NewVendaRepository(db *gorm.DB) VendaRepository { return &vendaRepo{db: db} }

func (r *vendaRepo) CreateTx(tx *gorm.DB, v *model.Venda) error {
	return tx.Create(v).Error
}

func (r *vendaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venda, error) {
	var v model.Venda
	err := r.db.WithContext(ctx).First(&v, id).Error
	return &v, err
}

func (r *vendaRepo) FindByOrcamentoID(ctx context.Context, orcamentoID uuid.UUID) (*model.Venda, error) {
	var v model.Venda
	err := r.db.WithContext(ctx).Where("orcamento_id = ?", orcamentoID).First(&v).Error
	return &v, err
}

func (r *vendaRepo) List(ctx context.Context, filter dto.VendaFilter) ([]model.Venda, int64, error) {
	var vendas []model.Venda
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Venda{})

	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	q, err := aplicarPeriodo(q, "data", filter.De, filter.Ate)
	if err != nil {
		return nil, 0, err
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err = q.Order("data DESC").Limit(filter.Limit).Offset(offset).Find(&vendas).Error
	return vendas, total, err
}

func (r *vendaRepo) UpdateTx(tx *gorm.DB, v *model.Venda) error {
	return tx.Save(v).Error
}

func (r *vendaRepo) ListConcluidasPeriodo(ctx context.Context, de, ate time.Time) ([]model.Venda, error) {
	var vendas []model.Venda
	err := r.db.WithContext(ctx).
		Where("estado = ? AND data >= ? AND data < ?", model.VendaConcluida, de, ate).
		Order("data ASC").Find(&vendas).Error
	return vendas, err
}

func (r *vendaRepo) DB() *gorm.DB { return r.db }
