package service

import (
	"context"
	"errors"
	"time"

	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/dto"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/model"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository stubs shared by the service tests. Tx methods accept a
// nil *gorm.DB — runTx passes nil through when the repository has no database.

// ── Material ──────────────────────────────────────────────────────────────────

type stubMaterialRepo struct {
	materiais  map[uuid.UUID]*model.Material
	movimentos []model.MovimentoEstoque
}

func newStubMaterialRepo() *stubMaterialRepo {
	return &stubMaterialRepo{materiais: make(map[uuid.UUID]*model.Material)}
}

func (r *stubMaterialRepo) Create(_ context.Context, m *model.Material) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	for i := range m.Variantes {
		if m.Variantes[i].ID == uuid.Nil {
			m.Variantes[i].ID = uuid.New()
		}
		m.Variantes[i].MaterialID = m.ID
	}
	r.materiais[m.ID] = m
	return nil
}

func (r *stubMaterialRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Material, error) {
	m, ok := r.materiais[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return m, nil
}

func (r *stubMaterialRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.Material, error) {
	var out []model.Material
	for _, id := range ids {
		if m, ok := r.materiais[id]; ok {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *stubMaterialRepo) ListAtivos(_ context.Context) ([]model.Material, error) {
	var out []model.Material
	for _, m := range r.materiais {
		if m.Ativo {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *stubMaterialRepo) List(_ context.Context, _ dto.MaterialFilter) ([]model.Material, int64, error) {
	var out []model.Material
	for _, m := range r.materiais {
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

func (r *stubMaterialRepo) Update(_ context.Context, m *model.Material) error {
	r.materiais[m.ID] = m
	return nil
}

func (r *stubMaterialRepo) ReplaceVariantes(_ context.Context, materialID uuid.UUID, variantes []model.MaterialVariante) error {
	m, ok := r.materiais[materialID]
	if !ok {
		return errors.New("not found")
	}
	m.Variantes = variantes
	return nil
}

func (r *stubMaterialRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	m, ok := r.materiais[id]
	if !ok {
		return errors.New("not found")
	}
	m.Ativo = false
	return nil
}

func (r *stubMaterialRepo) HardDelete(_ context.Context, id uuid.UUID) error {
	delete(r.materiais, id)
	return nil
}

func (r *stubMaterialRepo) AjustarEstoqueTx(_ *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	m, ok := r.materiais[id]
	if !ok {
		return errors.New("not found")
	}
	m.EstoqueAtual = m.EstoqueAtual.Add(delta)
	return nil
}

func (r *stubMaterialRepo) RegistrarMovimentoTx(_ *gorm.DB, mov *model.MovimentoEstoque) error {
	if mov.ID == uuid.Nil {
		mov.ID = uuid.New()
	}
	r.movimentos = append(r.movimentos, *mov)
	return nil
}

func (r *stubMaterialRepo) ListMovimentos(_ context.Context, materialID uuid.UUID) ([]model.MovimentoEstoque, error) {
	var out []model.MovimentoEstoque
	for _, mov := range r.movimentos {
		if mov.MaterialID == materialID {
			out = append(out, mov)
		}
	}
	return out, nil
}

func (r *stubMaterialRepo) DB() *gorm.DB { return nil }

var _ repository.MaterialRepository = (*stubMaterialRepo)(nil)

// ── Produto ───────────────────────────────────────────────────────────────────

type stubProdutoRepo struct {
	produtos map[uuid.UUID]*model.Produto
}

func newStubProdutoRepo() *stubProdutoRepo {
	return &stubProdutoRepo{produtos: make(map[uuid.UUID]*model.Produto)}
}

func (r *stubProdutoRepo) Create(_ context.Context, p *model.Produto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for i := range p.Composicao {
		if p.Composicao[i].ID == uuid.Nil {
			p.Composicao[i].ID = uuid.New()
		}
		p.Composicao[i].ProdutoID = p.ID
	}
	r.produtos[p.ID] = p
	return nil
}

func (r *stubProdutoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Produto, error) {
	p, ok := r.produtos[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *stubProdutoRepo) List(_ context.Context, _ dto.ProdutoFilter) ([]model.Produto, int64, error) {
	var out []model.Produto
	for _, p := range r.produtos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProdutoRepo) ListAtivos(_ context.Context) ([]model.Produto, error) {
	var out []model.Produto
	for _, p := range r.produtos {
		if p.Ativo {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProdutoRepo) Update(_ context.Context, p *model.Produto) error {
	r.produtos[p.ID] = p
	return nil
}

func (r *stubProdutoRepo) ReplaceComposicao(_ context.Context, produtoID uuid.UUID, itens []model.ItemComposicao) error {
	p, ok := r.produtos[produtoID]
	if !ok {
		return errors.New("not found")
	}
	p.Composicao = itens
	return nil
}

func (r *stubProdutoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := r.produtos[id]
	if !ok {
		return errors.New("not found")
	}
	p.Ativo = false
	return nil
}

func (r *stubProdutoRepo) DB() *gorm.DB { return nil }

var _ repository.ProdutoRepository = (*stubProdutoRepo)(nil)

// ── Despesa ───────────────────────────────────────────────────────────────────

type stubDespesaRepo struct {
	despesas []model.Despesa
}

func (r *stubDespesaRepo) Create(_ context.Context, d *model.Despesa) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.despesas = append(r.despesas, *d)
	return nil
}

func (r *stubDespesaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Despesa, error) {
	for i := range r.despesas {
		if r.despesas[i].ID == id {
			return &r.despesas[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubDespesaRepo) ListAll(_ context.Context) ([]model.Despesa, error) {
	return r.despesas, nil
}

func (r *stubDespesaRepo) Update(_ context.Context, d *model.Despesa) error {
	for i := range r.despesas {
		if r.despesas[i].ID == d.ID {
			r.despesas[i] = *d
			return nil
		}
	}
	return errors.New("not found")
}

func (r *stubDespesaRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i := range r.despesas {
		if r.despesas[i].ID == id {
			r.despesas = append(r.despesas[:i], r.despesas[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

var _ repository.DespesaRepository = (*stubDespesaRepo)(nil)

// ── Cliente ───────────────────────────────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}

func (r *stubClienteRepo) List(_ context.Context, _ dto.ClienteFilter) ([]model.Cliente, int64, error) {
	var out []model.Cliente
	for _, c := range r.clientes {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	c, ok := r.clientes[id]
	if !ok {
		return errors.New("not found")
	}
	c.Ativo = false
	return nil
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

// ── Orcamento ─────────────────────────────────────────────────────────────────

type stubOrcamentoRepo struct {
	orcamentos map[uuid.UUID]*model.Orcamento
	numeroSeq  int
}

func newStubOrcamentoRepo() *stubOrcamentoRepo {
	return &stubOrcamentoRepo{orcamentos: make(map[uuid.UUID]*model.Orcamento)}
}

func (r *stubOrcamentoRepo) CreateTx(_ *gorm.DB, o *model.Orcamento) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	for i := range o.Itens {
		if o.Itens[i].ID == uuid.Nil {
			o.Itens[i].ID = uuid.New()
		}
		o.Itens[i].OrcamentoID = o.ID
	}
	r.orcamentos[o.ID] = o
	return nil
}

func (r *stubOrcamentoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Orcamento, error) {
	o, ok := r.orcamentos[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return o, nil
}

func (r *stubOrcamentoRepo) List(_ context.Context, _ dto.OrcamentoFilter) ([]model.Orcamento, int64, error) {
	var out []model.Orcamento
	for _, o := range r.orcamentos {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *stubOrcamentoRepo) UpdateTx(_ *gorm.DB, o *model.Orcamento) error {
	r.orcamentos[o.ID] = o
	return nil
}

func (r *stubOrcamentoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.orcamentos, id)
	return nil
}

func (r *stubOrcamentoRepo) FindItem(_ context.Context, orcamentoID, itemID uuid.UUID) (*model.ItemOrcamento, error) {
	o, ok := r.orcamentos[orcamentoID]
	if !ok {
		return nil, errors.New("not found")
	}
	for i := range o.Itens {
		if o.Itens[i].ID == itemID {
			item := o.Itens[i]
			return &item, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubOrcamentoRepo) CreateItemTx(_ *gorm.DB, item *model.ItemOrcamento) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return nil
}

func (r *stubOrcamentoRepo) UpdateItemTx(_ *gorm.DB, _ *model.ItemOrcamento) error { return nil }

func (r *stubOrcamentoRepo) DeleteItemTx(_ *gorm.DB, _, _ uuid.UUID) error { return nil }

func (r *stubOrcamentoRepo) NextNumero(_ *gorm.DB) (int, error) {
	r.numeroSeq++
	return r.numeroSeq, nil
}

func (r *stubOrcamentoRepo) ContarPorEstado(_ context.Context, estado, _, _ string) (int64, error) {
	var n int64
	for _, o := range r.orcamentos {
		if o.Estado == estado {
			n++
		}
	}
	return n, nil
}

func (r *stubOrcamentoRepo) ListEmailRetries(_ context.Context, agora time.Time, limite int) ([]model.Orcamento, error) {
	var out []model.Orcamento
	for _, o := range r.orcamentos {
		if o.EmailEstado == model.EmailErro && o.EmailNextRetryAt != nil && !o.EmailNextRetryAt.After(agora) {
			out = append(out, *o)
			if len(out) == limite {
				break
			}
		}
	}
	return out, nil
}

func (r *stubOrcamentoRepo) UpdateEmailEstado(_ context.Context, id uuid.UUID, campos map[string]interface{}) error {
	o, ok := r.orcamentos[id]
	if !ok {
		return errors.New("not found")
	}
	if v, ok := campos["email_estado"]; ok {
		o.EmailEstado = v.(string)
	}
	if v, ok := campos["email_destino"]; ok {
		destino := v.(string)
		o.EmailDestino = &destino
	}
	if v, ok := campos["email_retry_count"]; ok {
		o.EmailRetryCount = v.(int)
	}
	return nil
}

func (r *stubOrcamentoRepo) DB() *gorm.DB { return nil }

var _ repository.OrcamentoRepository = (*stubOrcamentoRepo)(nil)

// ── Venda ─────────────────────────────────────────────────────────────────────

type stubVendaRepo struct {
	vendas map[uuid.UUID]*model.Venda
}

func newStubVendaRepo() *stubVendaRepo {
	return &stubVendaRepo{vendas: make(map[uuid.UUID]*model.Venda)}
}

func (r *stubVendaRepo) CreateTx(_ *gorm.DB, v *model.Venda) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.vendas[v.ID] = v
	return nil
}

func (r *stubVendaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venda, error) {
	v, ok := r.vendas[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return v, nil
}

func (r *stubVendaRepo) FindByOrcamentoID(_ context.Context, orcamentoID uuid.UUID) (*model.Venda, error) {
	for _, v := range r.vendas {
		if v.OrcamentoID != nil && *v.OrcamentoID == orcamentoID {
			return v, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubVendaRepo) List(_ context.Context, _ dto.VendaFilter) ([]model.Venda, int64, error) {
	var out []model.Venda
	for _, v := range r.vendas {
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVendaRepo) UpdateTx(_ *gorm.DB, v *model.Venda) error {
	r.vendas[v.ID] = v
	return nil
}

func (r *stubVendaRepo) ListConcluidasPeriodo(_ context.Context, de, ate time.Time) ([]model.Venda, error) {
	var out []model.Venda
	for _, v := range r.vendas {
		if v.Estado == model.VendaConcluida && !v.Data.Before(de) && v.Data.Before(ate) {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *stubVendaRepo) DB() *gorm.DB { return nil }

var _ repository.VendaRepository = (*stubVendaRepo)(nil)

// ── Caixa ─────────────────────────────────────────────────────────────────────

type stubCaixaRepo struct {
	movimentos []model.MovimentoCaixa
}

func (r *stubCaixaRepo) Create(_ context.Context, mov *model.MovimentoCaixa) error {
	return r.CreateTx(nil, mov)
}

func (r *stubCaixaRepo) CreateTx(_ *gorm.DB, mov *model.MovimentoCaixa) error {
	if mov.ID == uuid.Nil {
		mov.ID = uuid.New()
	}
	r.movimentos = append(r.movimentos, *mov)
	return nil
}

func (r *stubCaixaRepo) List(_ context.Context, _ dto.CaixaFilter) ([]model.MovimentoCaixa, int64, error) {
	return r.movimentos, int64(len(r.movimentos)), nil
}

func (r *stubCaixaRepo) SomarPeriodo(_ context.Context, _, _ string) (decimal.Decimal, decimal.Decimal, error) {
	entradas := decimal.Zero
	saidas := decimal.Zero
	for _, mov := range r.movimentos {
		if mov.Tipo == "entrada" {
			entradas = entradas.Add(mov.Valor)
		} else {
			saidas = saidas.Add(mov.Valor)
		}
	}
	return entradas, saidas, nil
}

func (r *stubCaixaRepo) DB() *gorm.DB { return nil }

var _ repository.CaixaRepository = (*stubCaixaRepo)(nil)
