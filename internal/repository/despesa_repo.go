package repository

import (
	"context"

	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DespesaRepository interface {
	Create(ctx context.Context, d *model.Despesa) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Despesa, error)
	ListAll(ctx context.Context) ([]model.Despesa, error)
	Update(ctx context.Context, d *model.Despesa) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type despesaRepo struct{ db *gorm.DB }

func NewDespesaRepository(db *gorm.DB) DespesaRepository { return &despesaRepo{db: db} }

func (r *despesaRepo) Create(ctx context.Context, d *model.Despesa) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *despesaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Despesa, error) {
	var d model.Despesa
	err := r.db.WithContext(ctx).First(&d, id).Error
	return &d, err
}

// ListAll returns the whole registry. It is small (tens of rows) and read on
// every repricing, so no pagination.
func (r *despesaRepo) ListAll(ctx context.Context) ([]model.Despesa, error) {
	var despesas []model.Despesa
	err := r.db.WithContext(ctx).Order("nome ASC").Find(&despesas).Error
	return despesas, err
}

func (r *despesaRepo) Update(ctx context.Context, d *model.Despesa) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *despesaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Despesa{}, id).Error
}
