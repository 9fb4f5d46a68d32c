package repository

import (
	"context"
	"time"

	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/dto"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrcamentoRepository persists quotes and their lines. Methods with a Tx
// suffix take an explicit *gorm.DB so services can compose them inside one
// transaction (line edit + aggregate re-derivation, approval + sale + cash).
type OrcamentoRepository interface {
	CreateTx(tx *gorm.DB, o *model.Orcamento) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Orcamento, error)
	List(ctx context.Context, filter dto.OrcamentoFilter) ([]model.Orcamento, int64, error)
	UpdateTx(tx *gorm.DB, o *model.Orcamento) error
	Delete(ctx context.Context, id uuid.UUID) error

	FindItem(ctx context.Context, orcamentoID, itemID uuid.UUID) (*model.ItemOrcamento, error)
	CreateItemTx(tx *gorm.DB, item *model.ItemOrcamento) error
	UpdateItemTx(tx *gorm.DB, item *model.ItemOrcamento) error
	DeleteItemTx(tx *gorm.DB, orcamentoID, itemID uuid.UUID) error

	// NextNumero reserves the next human-facing quote number from the
	// dedicated sequence. Numbers are never reused, even for deleted quotes.
	NextNumero(tx *gorm.DB) (int, error)

	// ContarPorEstado counts quotes in one state inside the day bounds.
	ContarPorEstado(ctx context.Context, estado, de, ate string) (int64, error)

	// ListEmailRetries returns quotes whose confirmation email is overdue for
	// another delivery attempt.
	ListEmailRetries(ctx context.Context, agora time.Time, limite int) ([]model.Orcamento, error)
	UpdateEmailEstado(ctx context.Context, id uuid.UUID, campos map[string]interface{}) error

	DB() *gorm.DB
}

type orcamentoRepo struct{ db *gorm.DB }

func NewOrcamentoRepository(db *gorm.DB) OrcamentoRepository { return &orcamentoRepo{db: db} }

func (r *orcamentoRepo) CreateTx(tx *gorm.DB, o *model.Orcamento) error {
	return tx.Create(o).Error
}

func (r *orcamentoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Orcamento, error) {
	var o model.Orcamento
	err := r.db.WithContext(ctx).
		Preload("Itens", func(db *gorm.DB) *gorm.DB { return db.Order("posicao ASC") }).
		First(&o, id).Error
	return &o, err
}

func (r *orcamentoRepo) List(ctx context.Context, filter dto.OrcamentoFilter) ([]model.Orcamento, int64, error) {
	var orcamentos []model.Orcamento
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Orcamento{})

	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Cliente != "" {
		q = q.Where("cliente_nome ILIKE ?", "%"+filter.Cliente+"%")
	}
	q, err := aplicarPeriodo(q, "data", filter.De, filter.Ate)
	if err != nil {
		return nil, 0, err
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err = q.Preload("Itens", func(db *gorm.DB) *gorm.DB { return db.Order("posicao ASC") }).
		Order("numero DESC").Limit(filter.Limit).Offset(offset).Find(&orcamentos).Error
	return orcamentos, total, err
}

func (r *orcamentoRepo) UpdateTx(tx *gorm.DB, o *model.Orcamento) error {
	return tx.Omit("Itens").Save(o).Error
}

func (r *orcamentoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select("Itens").Delete(&model.Orcamento{ID: id}).Error
}

func (r *orcamentoRepo) FindItem(ctx context.Context, orcamentoID, itemID uuid.UUID) (*model.ItemOrcamento, error) {
	var item model.ItemOrcamento
	err := r.db.WithContext(ctx).
		Where("id = ? AND orcamento_id = ?", itemID, orcamentoID).
		First(&item).Error
	return &item, err
}

func (r *orcamentoRepo) CreateItemTx(tx *gorm.DB, item *model.ItemOrcamento) error {
	return tx.Create(item).Error
}

func (r *orcamentoRepo) UpdateItemTx(tx *gorm.DB, item *model.ItemOrcamento) error {
	return tx.Save(item).Error
}

func (r *orcamentoRepo) DeleteItemTx(tx *gorm.DB, orcamentoID, itemID uuid.UUID) error {
	return tx.Where("id = ? AND orcamento_id = ?", itemID, orcamentoID).
		Delete(&model.ItemOrcamento{}).Error
}

func (r *orcamentoRepo) NextNumero(tx *gorm.DB) (int, error) {
	var numero int
	err := tx.Raw("SELECT nextval('orcamento_numero_seq')").Scan(&numero).Error
	return numero, err
}

func (r *orcamentoRepo) ContarPorEstado(ctx context.Context, estado, de, ate string) (int64, error) {
	var total int64
	q := r.db.WithContext(ctx).Model(&model.Orcamento{}).Where("estado = ?", estado)
	q, err := aplicarPeriodo(q, "data", de, ate)
	if err != nil {
		return 0, err
	}
	err = q.Count(&total).Error
	return total, err
}

func (r *orcamentoRepo) ListEmailRetries(ctx context.Context, agora time.Time, limite int) ([]model.Orcamento, error) {
	var orcamentos []model.Orcamento
	err := r.db.WithContext(ctx).
		Where("email_estado = ? AND email_next_retry_at IS NOT NULL AND email_next_retry_at <= ?",
			model.EmailErro, agora).
		Order("email_next_retry_at ASC").Limit(limite).Find(&orcamentos).Error
	return orcamentos, err
}

func (r *orcamentoRepo) UpdateEmailEstado(ctx context.Context, id uuid.UUID, campos map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Orcamento{}).Where("id = ?", id).Updates(campos).Error
}

func (r *orcamentoRepo) DB() *gorm.DB { return r.db }
