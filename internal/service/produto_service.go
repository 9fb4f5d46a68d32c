package service

import (
	"context"
	"errors"

	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/dto"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/model"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/pricing"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/repository"

	"github.com/google/uuid"
)

// ProdutoService owns the product catalog. Products never store a price:
// Simular derives one on demand from the current composition, material costs,
// and expense registry.
type ProdutoService interface {
	Criar(ctx context.Context, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error)
	Listar(ctx context.Context, filter dto.ProdutoFilter) (*dto.ProdutoListResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error)
	Desativar(ctx context.Context, id uuid.UUID) error
	Simular(ctx context.Context, req dto.SimulacaoRequest) (*dto.SimulacaoResponse, error)
}

type produtoService struct {
	repo         repository.ProdutoRepository
	materialRepo repository.MaterialRepository
	despesas     DespesaService
}

func NewProdutoService(
	repo repository.ProdutoRepository,
	materialRepo repository.MaterialRepository,
	despesas DespesaService,
) ProdutoService {
	return &produtoService{repo: repo, materialRepo: materialRepo, despesas: despesas}
}

func (s *produtoService) Criar(ctx context.Context, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error) {
	p := &model.Produto{
		Nome:        req.Nome,
		Categoria:   req.Categoria,
		ImagemURL:   req.ImagemURL,
		MaoDeObra:   req.MaoDeObra,
		MargemLucro: req.MargemLucro,
		Ativo:       true,
	}
	composicao, err := composicaoFromRequest(req.Composicao)
	if err != nil {
		return nil, err
	}
	p.Composicao = composicao

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return s.ObterPorID(ctx, p.ID)
}

func (s *produtoService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("produto nao encontrado")
	}
	resp, err := s.produtoToResponse(ctx, p)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *produtoService) Listar(ctx context.Context, filter dto.ProdutoFilter) (*dto.ProdutoListResponse, error) {
	produtos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.ProdutoListResponse{
		Data:  make([]dto.ProdutoResponse, len(produtos)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	nomes, err := s.nomesMateriais(ctx, produtos)
	if err != nil {
		return nil, err
	}
	for i := range produtos {
		resp.Data[i] = montarProdutoResponse(&produtos[i], nomes)
	}
	return resp, nil
}

func (s *produtoService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("produto nao encontrado")
	}
	if req.Nome != "" {
		p.Nome = req.Nome
	}
	if req.Categoria != "" {
		p.Categoria = req.Categoria
	}
	if req.ImagemURL != nil {
		p.ImagemURL = req.ImagemURL
	}
	if req.MaoDeObra != nil {
		p.MaoDeObra = *req.MaoDeObra
	}
	if req.MargemLucro != nil {
		p.MargemLucro = *req.MargemLucro
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	if req.Composicao != nil {
		composicao, err := composicaoFromRequest(req.Composicao)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceComposicao(ctx, id, composicao); err != nil {
			return nil, err
		}
	}

	return s.ObterPorID(ctx, id)
}

func (s *produtoService) Desativar(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

// Simular prices a product for given dimensions without creating anything.
// The quoting screen calls this on every dimension change.
func (s *produtoService) Simular(ctx context.Context, req dto.SimulacaoRequest) (*dto.SimulacaoResponse, error) {
	pid, err := uuid.Parse(req.ProdutoID)
	if err != nil {
		return nil, errors.New("produto_id invalido")
	}
	p, err := s.repo.FindByID(ctx, pid)
	if err != nil {
		return nil, errors.New("produto nao encontrado")
	}

	cat, err := catalogoParaProduto(ctx, s.materialRepo, p)
	if err != nil {
		return nil, err
	}
	despesas, err := s.despesas.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	quantidade := req.Quantidade
	if quantidade.IsZero() {
		quantidade = decimalUm
	}
	item := pricing.PrecificarItem(
		produtoParaEngine(p), cat, req.Variante,
		req.LarguraMM, req.AlturaMM, quantidade,
		pricing.SomaPercentuais(despesas),
	)

	return &dto.SimulacaoResponse{
		ProdutoNome:    p.Nome,
		Preco:          item.Preco,
		Custo:          item.Custo,
		MargemInviavel: item.Inviavel,
	}, nil
}

func composicaoFromRequest(itens []dto.ItemComposicaoRequest) ([]model.ItemComposicao, error) {
	composicao := make([]model.ItemComposicao, len(itens))
	for i, item := range itens {
		mid, err := uuid.Parse(item.MaterialID)
		if err != nil {
			return nil, errors.New("material_id invalido na composicao")
		}
		composicao[i] = model.ItemComposicao{
			MaterialID:    mid,
			Regra:         item.Regra,
			Multiplicador: item.Multiplicador,
			FatorMM:       item.FatorMM,
			Quantidade:    item.Quantidade,
			Posicao:       i,
		}
	}
	return composicao, nil
}

// nomesMateriais resolves material names for composition display across a
// page of products in one query.
func (s *produtoService) nomesMateriais(ctx context.Context, produtos []model.Produto) (map[uuid.UUID]string, error) {
	visto := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for i := range produtos {
		for _, item := range produtos[i].Composicao {
			if !visto[item.MaterialID] {
				visto[item.MaterialID] = true
				ids = append(ids, item.MaterialID)
			}
		}
	}
	nomes := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return nomes, nil
	}
	materiais, err := s.materialRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range materiais {
		nomes[materiais[i].ID] = materiais[i].Nome
	}
	return nomes, nil
}

func (s *produtoService) produtoToResponse(ctx context.Context, p *model.Produto) (*dto.ProdutoResponse, error) {
	nomes, err := s.nomesMateriais(ctx, []model.Produto{*p})
	if err != nil {
		return nil, err
	}
	resp := montarProdutoResponse(p, nomes)
	return &resp, nil
}

func montarProdutoResponse(p *model.Produto, nomesMateriais map[uuid.UUID]string) dto.ProdutoResponse {
	resp := dto.ProdutoResponse{
		ID:          p.ID.String(),
		Nome:        p.Nome,
		Categoria:   p.Categoria,
		ImagemURL:   p.ImagemURL,
		MaoDeObra:   p.MaoDeObra,
		MargemLucro: p.MargemLucro,
		Ativo:       p.Ativo,
		Composicao:  make([]dto.ItemComposicaoResponse, len(p.Composicao)),
	}
	for i, item := range p.Composicao {
		resp.Composicao[i] = dto.ItemComposicaoResponse{
			ID:            item.ID.String(),
			MaterialID:    item.MaterialID.String(),
			MaterialNome:  nomesMateriais[item.MaterialID],
			Regra:         item.Regra,
			Multiplicador: item.Multiplicador,
			FatorMM:       item.FatorMM,
			Quantidade:    item.Quantidade,
		}
	}
	return resp
}
