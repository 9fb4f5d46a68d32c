package repository

import (
	"context"

	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/dto"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MaterialRepository defines the data access contract for raw materials.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via in-memory stubs.
type MaterialRepository interface {
	Create(ctx context.Context, m *model.Material) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Material, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Material, error)
	ListAtivos(ctx context.Context) ([]model.Material, error)
	List(ctx context.Context, filter dto.MaterialFilter) ([]model.Material, int64, error)
	Update(ctx context.Context, m *model.Material) error
	ReplaceVariantes(ctx context.Context, materialID uuid.UUID, variantes []model.MaterialVariante) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	HardDelete(ctx context.Context, id uuid.UUID) error

	// AjustarEstoqueTx shifts estoque_atual by delta inside a transaction.
	AjustarEstoqueTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error
	RegistrarMovimentoTx(tx *gorm.DB, mov *model.MovimentoEstoque) error
	ListMovimentos(ctx context.Context, materialID uuid.UUID) ([]model.MovimentoEstoque, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type materialRepo struct{ db *gorm.DB }

func NewMaterialRepository(db *gorm.DB) MaterialRepository { return &materialRepo{db: db} }

func (r *materialRepo) Create(ctx context.Context, m *model.Material) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *materialRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Material, error) {
	var m model.Material
	err := r.db.WithContext(ctx).
		Preload("Variantes", func(db *gorm.DB) *gorm.DB { return db.Order("posicao ASC") }).
		First(&m, id).Error
	return &m, err
}

func (r *materialRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Material, error) {
	var materiais []model.Material
	err := r.db.WithContext(ctx).
		Preload("Variantes", func(db *gorm.DB) *gorm.DB { return db.Order("posicao ASC") }).
		Where("id IN ?", ids).Find(&materiais).Error
	return materiais, err
}

func (r *materialRepo) ListAtivos(ctx context.Context) ([]model.Material, error) {
	var materiais []model.Material
	err := r.db.WithContext(ctx).
		Preload("Variantes", func(db *gorm.DB) *gorm.DB { return db.Order("posicao ASC") }).
		Where("ativo = true").Order("nome ASC").Find(&materiais).Error
	return materiais, err
}

func (r *materialRepo) List(ctx context.Context, filter dto.MaterialFilter) ([]model.Material, int64, error) {
	var materiais []model.Material
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Material{})

	// Ativo filter: "false" = inativos, "all" = todos, anything else = ativos (default)
	switch filter.Ativo {
	case "false":
		q = q.Where("ativo = false")
	case "all":
		// no filter
	default:
		q = q.Where("ativo = true")
	}

	if filter.Nome != "" {
		q = q.Where("nome ILIKE ?", "%"+filter.Nome+"%")
	}
	if filter.Categoria != "" {
		q = q.Where("categoria_uso = ?", filter.Categoria)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Variantes", func(db *gorm.DB) *gorm.DB { return db.Order("posicao ASC") }).
		Order("nome ASC").Limit(filter.Limit).Offset(offset).Find(&materiais).Error
	return materiais, total, err
}

func (r *materialRepo) Update(ctx context.Context, m *model.Material) error {
	return r.db.WithContext(ctx).Omit("Variantes").Save(m).Error
}

// ReplaceVariantes swaps the whole variant set in one transaction, preserving
// the "at least one variant" invariant enforced by the service layer.
func (r *materialRepo) ReplaceVariantes(ctx context.Context, materialID uuid.UUID, variantes []model.MaterialVariante) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("material_id = ?", materialID).Delete(&model.MaterialVariante{}).Error; err != nil {
			return err
		}
		for i := range variantes {
			variantes[i].MaterialID = materialID
			variantes[i].Posicao = i
		}
		return tx.Create(&variantes).Error
	})
}

func (r *materialRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Material{}).Where("id = ?", id).Update("ativo", false).Error
}

// HardDelete removes the material row entirely. Product composition lines
// referencing it are left dangling on purpose — the engine prices them as zero.
func (r *materialRepo) HardDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Material{}, id).Error
}

func (r *materialRepo) AjustarEstoqueTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	return tx.Model(&model.Material{}).Where("id = ?", id).
		Update("estoque_atual", gorm.Expr("estoque_atual + ?", delta)).Error
}

func (r *materialRepo) RegistrarMovimentoTx(tx *gorm.DB, mov *model.MovimentoEstoque) error {
	return tx.Create(mov).Error
}

func (r *materialRepo) ListMovimentos(ctx context.Context, materialID uuid.UUID) ([]model.MovimentoEstoque, error) {
	var movs []model.MovimentoEstoque
	err := r.db.WithContext(ctx).
		Preload("Material").
		Where("material_id = ?", materialID).
		Order("created_at DESC").Find(&movs).Error
	return movs, err
}

func (r *materialRepo) DB() *gorm.DB { return r.db }
