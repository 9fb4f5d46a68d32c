package service

import (
	"context"
	"errors"

	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/dto"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/model"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaterialService owns the raw-material catalog and its informational stock.
type MaterialService interface {
	Criar(ctx context.Context, req dto.CriarMaterialRequest) (*dto.MaterialResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.MaterialResponse, error)
	Listar(ctx context.Context, filter dto.MaterialFilter) (*dto.MaterialListResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarMaterialRequest) (*dto.MaterialResponse, error)
	Desativar(ctx context.Context, id uuid.UUID) error
	Excluir(ctx context.Context, id uuid.UUID) error
	AjustarEstoque(ctx context.Context, id uuid.UUID, req dto.AjusteEstoqueRequest) (*dto.MaterialResponse, error)
	ListarMovimentos(ctx context.Context, id uuid.UUID) ([]dto.MovimentoEstoqueResponse, error)
}

type materialService struct {
	repo repository.MaterialRepository
}

func NewMaterialService(repo repository.MaterialRepository) MaterialService {
	return &materialService{repo: repo}
}

func (s *materialService) Criar(ctx context.Context, req dto.CriarMaterialRequest) (*dto.MaterialResponse, error) {
	if len(req.Variantes) == 0 {
		return nil, errors.New("material precisa de ao menos uma variante")
	}

	m := &model.Material{
		Nome:          req.Nome,
		CategoriaUso:  req.CategoriaUso,
		Unidade:       req.Unidade,
		EstoqueAtual:  req.EstoqueAtual,
		TamanhoPadrao: req.TamanhoPadrao,
		ImagemURL:     req.ImagemURL,
		Ativo:         true,
	}
	for i, v := range req.Variantes {
		m.Variantes = append(m.Variantes, model.MaterialVariante{
			Nome:       v.Nome,
			Custo:      v.Custo,
			PrecoVenda: v.PrecoVenda,
			Posicao:    i,
		})
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	resp := materialToResponse(m)
	return &resp, nil
}

func (s *materialService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.MaterialResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("material nao encontrado")
	}
	resp := materialToResponse(m)
	return &resp, nil
}

func (s *materialService) Listar(ctx context.Context, filter dto.MaterialFilter) (*dto.MaterialListResponse, error) {
	materiais, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.MaterialListResponse{
		Data:  make([]dto.MaterialResponse, len(materiais)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range materiais {
		resp.Data[i] = materialToResponse(&materiais[i])
	}
	return resp, nil
}

func (s *materialService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarMaterialRequest) (*dto.MaterialResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("material nao encontrado")
	}
	if req.Nome != "" {
		m.Nome = req.Nome
	}
	if req.CategoriaUso != "" {
		m.CategoriaUso = req.CategoriaUso
	}
	if req.Unidade != "" {
		m.Unidade = req.Unidade
	}
	if req.TamanhoPadrao != nil {
		m.TamanhoPadrao = req.TamanhoPadrao
	}
	if req.ImagemURL != nil {
		m.ImagemURL = req.ImagemURL
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}

	if req.Variantes != nil {
		if len(req.Variantes) == 0 {
			return nil, errors.New("material precisa de ao menos uma variante")
		}
		variantes := make([]model.MaterialVariante, len(req.Variantes))
		for i, v := range req.Variantes {
			variantes[i] = model.MaterialVariante{
				Nome:       v.Nome,
				Custo:      v.Custo,
				PrecoVenda: v.PrecoVenda,
			}
		}
		if err := s.repo.ReplaceVariantes(ctx, id, variantes); err != nil {
			return nil, err
		}
	}

	return s.ObterPorID(ctx, id)
}

func (s *materialService) Desativar(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

// Excluir removes the material permanently. Composition lines that reference
// it stay in place and price as zero from then on.
func (s *materialService) Excluir(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("material nao encontrado")
	}
	return s.repo.HardDelete(ctx, id)
}

func (s *materialService) AjustarEstoque(ctx context.Context, id uuid.UUID, req dto.AjusteEstoqueRequest) (*dto.MaterialResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("material nao encontrado")
	}
	if req.Quantidade.IsZero() {
		return nil, errors.New("quantidade do ajuste nao pode ser zero")
	}

	anterior := m.EstoqueAtual
	novo := anterior.Add(req.Quantidade)
	if novo.Sign() < 0 {
		return nil, errors.New("estoque resultante nao pode ser negativo")
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.AjustarEstoqueTx(tx, id, req.Quantidade); err != nil {
			return err
		}
		mov := &model.MovimentoEstoque{
			MaterialID:      id,
			Quantidade:      req.Quantidade,
			EstoqueAnterior: anterior,
			EstoqueNovo:     novo,
			Motivo:          req.Motivo,
		}
		return s.repo.RegistrarMovimentoTx(tx, mov)
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.ObterPorID(ctx, id)
}

func (s *materialService) ListarMovimentos(ctx context.Context, id uuid.UUID) ([]dto.MovimentoEstoqueResponse, error) {
	movs, err := s.repo.ListMovimentos(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MovimentoEstoqueResponse, len(movs))
	for i, mov := range movs {
		nome := ""
		if mov.Material != nil {
			nome = mov.Material.Nome
		}
		resp[i] = dto.MovimentoEstoqueResponse{
			ID:              mov.ID.String(),
			MaterialID:      mov.MaterialID.String(),
			MaterialNome:    nome,
			Quantidade:      mov.Quantidade,
			EstoqueAnterior: mov.EstoqueAnterior,
			EstoqueNovo:     mov.EstoqueNovo,
			Motivo:          mov.Motivo,
			CreatedAt:       mov.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}
	return resp, nil
}

func materialToResponse(m *model.Material) dto.MaterialResponse {
	resp := dto.MaterialResponse{
		ID:            m.ID.String(),
		Nome:          m.Nome,
		CategoriaUso:  m.CategoriaUso,
		Unidade:       m.Unidade,
		EstoqueAtual:  m.EstoqueAtual,
		TamanhoPadrao: m.TamanhoPadrao,
		ImagemURL:     m.ImagemURL,
		Ativo:         m.Ativo,
		Variantes:     make([]dto.VarianteResponse, len(m.Variantes)),
	}
	for i, v := range m.Variantes {
		resp.Variantes[i] = dto.VarianteResponse{
			ID:         v.ID.String(),
			Nome:       v.Nome,
			Custo:      v.Custo,
			PrecoVenda: v.PrecoVenda,
		}
	}
	return resp
}
