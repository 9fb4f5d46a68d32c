package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/dto"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/model"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/pricing"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/repository"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrcamentoService owns the quote lifecycle. Pricing is always snapshot-based:
// a line is priced when created or edited, from the catalog and expense data
// of that moment, and never silently repriced afterwards. Aggregates are
// always re-derived in full from the current lines.
type OrcamentoService interface {
	Criar(ctx context.Context, vendedor string, req dto.CriarOrcamentoRequest) (*dto.OrcamentoResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.OrcamentoResponse, error)
	Listar(ctx context.Context, filter dto.OrcamentoFilter) (*dto.OrcamentoListResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarOrcamentoRequest) (*dto.OrcamentoResponse, error)
	Excluir(ctx context.Context, id uuid.UUID) error

	AdicionarItem(ctx context.Context, id uuid.UUID, req dto.ItemOrcamentoRequest) (*dto.OrcamentoResponse, error)
	AtualizarItem(ctx context.Context, id, itemID uuid.UUID, req dto.AtualizarItemOrcamentoRequest) (*dto.OrcamentoResponse, error)
	RemoverItem(ctx context.Context, id, itemID uuid.UUID) (*dto.OrcamentoResponse, error)

	MudarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.OrcamentoResponse, error)
	EnviarEmail(ctx context.Context, id uuid.UUID, destino string) error
}

type orcamentoService struct {
	repo         repository.OrcamentoRepository
	produtoRepo  repository.ProdutoRepository
	materialRepo repository.MaterialRepository
	vendaRepo    repository.VendaRepository
	caixaRepo    repository.CaixaRepository
	clienteRepo  repository.ClienteRepository
	despesas     DespesaService
	dispatcher   *worker.Dispatcher
}

func NewOrcamentoService(
	repo repository.OrcamentoRepository,
	produtoRepo repository.ProdutoRepository,
	materialRepo repository.MaterialRepository,
	vendaRepo repository.VendaRepository,
	caixaRepo repository.CaixaRepository,
	clienteRepo repository.ClienteRepository,
	despesas DespesaService,
	dispatcher *worker.Dispatcher,
) OrcamentoService {
	return &orcamentoService{
		repo:         repo,
		produtoRepo:  produtoRepo,
		materialRepo: materialRepo,
		vendaRepo:    vendaRepo,
		caixaRepo:    caixaRepo,
		clienteRepo:  clienteRepo,
		despesas:     despesas,
		dispatcher:   dispatcher,
	}
}

// linhaPrecificada carries one freshly priced line before it is persisted.
type linhaPrecificada struct {
	item model.ItemOrcamento
}

// precificarLinha resolves the product, builds the catalog snapshot, and runs
// the engine for one line. The product name is snapshotted into the line.
func (s *orcamentoService) precificarLinha(
	ctx context.Context,
	req dto.ItemOrcamentoRequest,
	despesasPct decimal.Decimal,
) (*linhaPrecificada, error) {
	pid, err := uuid.Parse(req.ProdutoID)
	if err != nil {
		return nil, errors.New("produto_id invalido")
	}
	p, err := s.produtoRepo.FindByID(ctx, pid)
	if err != nil {
		return nil, fmt.Errorf("produto %s nao encontrado", req.ProdutoID)
	}
	cat, err := catalogoParaProduto(ctx, s.materialRepo, p)
	if err != nil {
		return nil, err
	}

	precificado := pricing.PrecificarItem(
		produtoParaEngine(p), cat, req.Variante,
		req.LarguraMM, req.AlturaMM, req.Quantidade,
		despesasPct,
	)

	return &linhaPrecificada{item: model.ItemOrcamento{
		ProdutoID:   pid,
		ProdutoNome: p.Nome,
		Variante:    req.Variante,
		Descricao:   req.Descricao,
		LarguraMM:   req.LarguraMM,
		AlturaMM:    req.AlturaMM,
		Quantidade:  req.Quantidade,
		Preco:       precificado.Preco,
		Custo:       precificado.Custo,
		Inviavel:    precificado.Inviavel,
	}}, nil
}

// rederivar recomputes every aggregate of the quote from its current lines.
// Full re-derivation, never incremental: calling it twice changes nothing.
func rederivar(o *model.Orcamento, despesas []pricing.Despesa) {
	itens := make([]pricing.ItemPrecificado, len(o.Itens))
	inviavel := false
	for i, item := range o.Itens {
		itens[i] = pricing.ItemPrecificado{Preco: item.Preco, Custo: item.Custo, Inviavel: item.Inviavel}
		if item.Inviavel {
			inviavel = true
		}
	}
	totais := pricing.Totais(itens, o.Frete, o.Instalacao, o.Desconto)
	o.Subtotal = totais.Subtotal
	o.Total = totais.Total
	o.CustoProducao = totais.Custo
	o.MargemInviavel = inviavel

	det := pricing.Detalhamento(o.Total, despesas)
	o.ValorComissao = det.Comissao
	o.ValorImposto = det.Imposto
	o.ValorTaxaCartao = det.TaxaCartao
	o.CustoFixoEstimado = det.CustoFixoEstimado
}

func (s *orcamentoService) Criar(ctx context.Context, vendedor string, req dto.CriarOrcamentoRequest) (*dto.OrcamentoResponse, error) {
	despesas, err := s.despesas.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	despesasPct := pricing.SomaPercentuais(despesas)

	o := &model.Orcamento{
		ClienteNome: req.ClienteNome,
		Desconto:    req.Desconto,
		Frete:       req.Frete,
		Instalacao:  req.Instalacao,

		FormaPagamento: req.FormaPagamento,
		Observacoes:    req.Observacoes,
		Vendedor:       vendedor,
		Data:           time.Now(),
		Estado:         model.OrcamentoPendente,
		EmailEstado:    model.EmailNaoSolicitado,
	}

	if req.ClienteID != nil {
		cid, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, errors.New("cliente_id invalido")
		}
		cliente, err := s.clienteRepo.FindByID(ctx, cid)
		if err != nil {
			return nil, errors.New("cliente nao encontrado")
		}
		o.ClienteID = &cid
		if o.ClienteNome == "" {
			o.ClienteNome = cliente.Nome
		}
	}

	for i, itemReq := range req.Itens {
		linha, err := s.precificarLinha(ctx, itemReq, despesasPct)
		if err != nil {
			return nil, err
		}
		linha.item.Posicao = i
		o.Itens = append(o.Itens, linha.item)
	}

	rederivar(o, despesas)

	if req.EmailCliente != nil && *req.EmailCliente != "" {
		o.EmailEstado = model.EmailPendente
		o.EmailDestino = req.EmailCliente
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		numero, err := s.repo.NextNumero(tx)
		if err != nil {
			return err
		}
		o.Numero = numero
		return s.repo.CreateTx(tx, o)
	})
	if txErr != nil {
		return nil, txErr
	}

	if o.EmailEstado == model.EmailPendente && s.dispatcher != nil {
		_ = s.dispatcher.EnqueueEmail(ctx, worker.EmailJob{
			OrcamentoID: o.ID.String(),
			Destino:     *o.EmailDestino,
		})
	}

	resp := orcamentoToResponse(o)
	return &resp, nil
}

func (s *orcamentoService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.OrcamentoResponse, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("orcamento nao encontrado")
	}
	resp := orcamentoToResponse(o)
	return &resp, nil
}

func (s *orcamentoService) Listar(ctx context.Context, filter dto.OrcamentoFilter) (*dto.OrcamentoListResponse, error) {
	orcamentos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.OrcamentoListResponse{
		Data:  make([]dto.OrcamentoResponse, len(orcamentos)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range orcamentos {
		resp.Data[i] = orcamentoToResponse(&orcamentos[i])
	}
	return resp, nil
}

func (s *orcamentoService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarOrcamentoRequest) (*dto.OrcamentoResponse, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("orcamento nao encontrado")
	}
	if o.Estado != model.OrcamentoPendente {
		return nil, errors.New("apenas orcamentos pendentes podem ser editados")
	}

	if req.Desconto != nil {
		o.Desconto = *req.Desconto
	}
	if req.Frete != nil {
		o.Frete = *req.Frete
	}
	if req.Instalacao != nil {
		o.Instalacao = *req.Instalacao
	}
	if req.FormaPagamento != "" {
		o.FormaPagamento = req.FormaPagamento
	}
	if req.Observacoes != nil {
		o.Observacoes = req.Observacoes
	}

	despesas, err := s.despesas.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	rederivar(o, despesas)

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.UpdateTx(tx, o)
	})
	if txErr != nil {
		return nil, txErr
	}
	resp := orcamentoToResponse(o)
	return &resp, nil
}

func (s *orcamentoService) Excluir(ctx context.Context, id uuid.UUID) error {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("orcamento nao encontrado")
	}
	if o.Estado == model.OrcamentoAprovado {
		return errors.New("orcamentos aprovados nao podem ser excluidos")
	}
	// The quote number is not recycled: the sequence only moves forward.
	return s.repo.Delete(ctx, id)
}

func (s *orcamentoService) AdicionarItem(ctx context.Context, id uuid.UUID, req dto.ItemOrcamentoRequest) (*dto.OrcamentoResponse, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("orcamento nao encontrado")
	}
	if o.Estado != model.OrcamentoPendente {
		return nil, errors.New("apenas orcamentos pendentes podem ser editados")
	}

	despesas, err := s.despesas.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	linha, err := s.precificarLinha(ctx, req, pricing.SomaPercentuais(despesas))
	if err != nil {
		return nil, err
	}
	linha.item.OrcamentoID = o.ID
	linha.item.Posicao = len(o.Itens)

	o.Itens = append(o.Itens, linha.item)
	rederivar(o, despesas)

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateItemTx(tx, &linha.item); err != nil {
			return err
		}
		return s.repo.UpdateTx(tx, o)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.ObterPorID(ctx, id)
}

// AtualizarItem re-prices ONE line from the current catalog and expense data,
// then re-derives the quote aggregates. Sibling lines keep their snapshots.
func (s *orcamentoService) AtualizarItem(ctx context.Context, id, itemID uuid.UUID, req dto.AtualizarItemOrcamentoRequest) (*dto.OrcamentoResponse, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("orcamento nao encontrado")
	}
	if o.Estado != model.OrcamentoPendente {
		return nil, errors.New("apenas orcamentos pendentes podem ser editados")
	}

	existente, err := s.repo.FindItem(ctx, id, itemID)
	if err != nil {
		return nil, errors.New("item nao encontrado")
	}

	despesas, err := s.despesas.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	linha, err := s.precificarLinha(ctx, dto.ItemOrcamentoRequest{
		ProdutoID:  req.ProdutoID,
		Variante:   req.Variante,
		Descricao:  req.Descricao,
		LarguraMM:  req.LarguraMM,
		AlturaMM:   req.AlturaMM,
		Quantidade: req.Quantidade,
	}, pricing.SomaPercentuais(despesas))
	if err != nil {
		return nil, err
	}

	existente.ProdutoID = linha.item.ProdutoID
	existente.ProdutoNome = linha.item.ProdutoNome
	existente.Variante = linha.item.Variante
	existente.Descricao = linha.item.Descricao
	existente.LarguraMM = linha.item.LarguraMM
	existente.AlturaMM = linha.item.AlturaMM
	existente.Quantidade = linha.item.Quantidade
	existente.Preco = linha.item.Preco
	existente.Custo = linha.item.Custo
	existente.Inviavel = linha.item.Inviavel

	for i := range o.Itens {
		if o.Itens[i].ID == itemID {
			o.Itens[i] = *existente
		}
	}
	rederivar(o, despesas)

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateItemTx(tx, existente); err != nil {
			return err
		}
		return s.repo.UpdateTx(tx, o)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.ObterPorID(ctx, id)
}

func (s *orcamentoService) RemoverItem(ctx context.Context, id, itemID uuid.UUID) (*dto.OrcamentoResponse, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("orcamento nao encontrado")
	}
	if o.Estado != model.OrcamentoPendente {
		return nil, errors.New("apenas orcamentos pendentes podem ser editados")
	}

	restantes := o.Itens[:0]
	achou := false
	for _, item := range o.Itens {
		if item.ID == itemID {
			achou = true
			continue
		}
		restantes = append(restantes, item)
	}
	if !achou {
		return nil, errors.New("item nao encontrado")
	}
	o.Itens = restantes

	despesas, err := s.despesas.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	rederivar(o, despesas)

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.DeleteItemTx(tx, id, itemID); err != nil {
			return err
		}
		return s.repo.UpdateTx(tx, o)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.ObterPorID(ctx, id)
}

// MudarEstado transitions the quote. Approval creates the sale and its cash
// entry atomically with the state change; leaving the approved state cancels
// the sale and writes the inverse cash entry. Approving twice is a no-op.
func (s *orcamentoService) MudarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.OrcamentoResponse, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("orcamento nao encontrado")
	}
	if o.Estado == estado {
		resp := orcamentoToResponse(o)
		return &resp, nil
	}

	saindoDeAprovado := o.Estado == model.OrcamentoAprovado
	entrandoEmAprovado := estado == model.OrcamentoAprovado

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		anterior := o.Estado
		o.Estado = estado
		if err := s.repo.UpdateTx(tx, o); err != nil {
			return err
		}

		if entrandoEmAprovado {
			venda := &model.Venda{
				OrcamentoID:    &o.ID,
				ClienteNome:    o.ClienteNome,
				Total:          o.Total,
				CustoProducao:  o.CustoProducao,
				FormaPagamento: o.FormaPagamento,
				Vendedor:       o.Vendedor,
				Estado:         model.VendaConcluida,
				Data:           time.Now(),
			}
			if err := s.vendaRepo.CreateTx(tx, venda); err != nil {
				return err
			}
			mov := &model.MovimentoCaixa{
				Tipo:         "entrada",
				Categoria:    "venda",
				Valor:        o.Total,
				Descricao:    fmt.Sprintf("Venda do orçamento #%d", o.Numero),
				ReferenciaID: &venda.ID,
				Data:         time.Now(),
			}
			return s.caixaRepo.CreateTx(tx, mov)
		}

		if saindoDeAprovado {
			venda, err := s.vendaRepo.FindByOrcamentoID(ctx, o.ID)
			if err != nil {
				// Approved quote without a sale should not happen; the state
				// change itself still goes through.
				return nil
			}
			if venda.Estado == model.VendaCancelada {
				return nil
			}
			venda.Estado = model.VendaCancelada
			if err := s.vendaRepo.UpdateTx(tx, venda); err != nil {
				return err
			}
			mov := &model.MovimentoCaixa{
				Tipo:         "saida",
				Categoria:    "estorno",
				Valor:        venda.Total,
				Descricao:    fmt.Sprintf("Estorno do orçamento #%d (%s para %s)", o.Numero, anterior, estado),
				ReferenciaID: &venda.ID,
				Data:         time.Now(),
			}
			return s.caixaRepo.CreateTx(tx, mov)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := orcamentoToResponse(o)
	return &resp, nil
}

// EnviarEmail queues (or re-queues) the confirmation email for a quote.
func (s *orcamentoService) EnviarEmail(ctx context.Context, id uuid.UUID, destino string) error {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("orcamento nao encontrado")
	}
	if destino == "" {
		if o.EmailDestino == nil || *o.EmailDestino == "" {
			return errors.New("orcamento sem email de destino")
		}
		destino = *o.EmailDestino
	}

	if err := s.repo.UpdateEmailEstado(ctx, id, map[string]interface{}{
		"email_estado":        model.EmailPendente,
		"email_destino":       destino,
		"email_retry_count":   0,
		"email_next_retry_at": nil,
		"email_last_error":    nil,
	}); err != nil {
		return err
	}

	if s.dispatcher != nil {
		return s.dispatcher.EnqueueEmail(ctx, worker.EmailJob{
			OrcamentoID: o.ID.String(),
			Destino:     destino,
		})
	}
	return nil
}

func orcamentoToResponse(o *model.Orcamento) dto.OrcamentoResponse {
	resp := dto.OrcamentoResponse{
		ID:             o.ID.String(),
		Numero:         o.Numero,
		ClienteNome:    o.ClienteNome,
		Itens:          make([]dto.ItemOrcamentoResponse, len(o.Itens)),
		Subtotal:       o.Subtotal,
		Desconto:       o.Desconto,
		Frete:          o.Frete,
		Instalacao:     o.Instalacao,
		Total:          o.Total,
		CustoProducao:  o.CustoProducao,
		FormaPagamento: o.FormaPagamento,
		Observacoes:    o.Observacoes,
		Vendedor:       o.Vendedor,
		Estado:         o.Estado,
		MargemInviavel: o.MargemInviavel,

		CustoFixoEstimado: o.CustoFixoEstimado,
		ValorComissao:     o.ValorComissao,
		ValorImposto:      o.ValorImposto,
		ValorTaxaCartao:   o.ValorTaxaCartao,

		Data:      o.Data.Format("2006-01-02"),
		CreatedAt: o.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if o.ClienteID != nil {
		cid := o.ClienteID.String()
		resp.ClienteID = &cid
	}
	for i, item := range o.Itens {
		resp.Itens[i] = dto.ItemOrcamentoResponse{
			ID:          item.ID.String(),
			ProdutoID:   item.ProdutoID.String(),
			ProdutoNome: item.ProdutoNome,
			Variante:    item.Variante,
			Descricao:   item.Descricao,
			LarguraMM:   item.LarguraMM,
			AlturaMM:    item.AlturaMM,
			Quantidade:  item.Quantidade,
			Preco:       item.Preco,
			Custo:       item.Custo,
			Inviavel:    item.Inviavel,
		}
	}
	return resp
}
