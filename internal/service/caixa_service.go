package service

import (
	"context"
	"errors"
	"time"

	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/dto"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/model"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/repository"
)

// CaixaService exposes the cash-flow ledger: manual entries, the period
// listing, and the entradas/saidas/saldo roll-up. Entries are immutable.
type CaixaService interface {
	RegistrarMovimento(ctx context.Context, req dto.MovimentoManualRequest) (*dto.MovimentoCaixaResponse, error)
	ListarMovimentos(ctx context.Context, filter dto.CaixaFilter) (*dto.CaixaListResponse, error)
	Resumo(ctx context.Context, de, ate string) (*dto.ResumoCaixaResponse, error)
}

type caixaService struct {
	repo repository.CaixaRepository
}

func NewCaixaService(repo repository.CaixaRepository) CaixaService {
	return &caixaService{repo: repo}
}

func (s *caixaService) RegistrarMovimento(ctx context.Context, req dto.MovimentoManualRequest) (*dto.MovimentoCaixaResponse, error) {
	if req.Valor.Sign() <= 0 {
		return nil, errors.New("valor do movimento deve ser maior que zero")
	}

	data := time.Now()
	if req.Data != "" {
		parsed, err := time.Parse("2006-01-02", req.Data)
		if err != nil {
			return nil, errors.New("data invalida, use o formato YYYY-MM-DD")
		}
		data = parsed
	}

	categoria := req.Categoria
	if categoria == "" {
		categoria = "outro"
	}

	mov := &model.MovimentoCaixa{
		Tipo:      req.Tipo,
		Categoria: categoria,
		Valor:     req.Valor,
		Descricao: req.Descricao,
		Data:      data,
	}
	if err := s.repo.Create(ctx, mov); err != nil {
		return nil, err
	}
	resp := movimentoToResponse(mov)
	return &resp, nil
}

func (s *caixaService) ListarMovimentos(ctx context.Context, filter dto.CaixaFilter) (*dto.CaixaListResponse, error) {
	movs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.CaixaListResponse{
		Data:  make([]dto.MovimentoCaixaResponse, len(movs)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range movs {
		resp.Data[i] = movimentoToResponse(&movs[i])
	}
	return resp, nil
}

func (s *caixaService) Resumo(ctx context.Context, de, ate string) (*dto.ResumoCaixaResponse, error) {
	entradas, saidas, err := s.repo.SomarPeriodo(ctx, de, ate)
	if err != nil {
		return nil, err
	}
	return &dto.ResumoCaixaResponse{
		De:       de,
		Ate:      ate,
		Entradas: entradas,
		Saidas:   saidas,
		Saldo:    entradas.Sub(saidas),
	}, nil
}

func movimentoToResponse(mov *model.MovimentoCaixa) dto.MovimentoCaixaResponse {
	resp := dto.MovimentoCaixaResponse{
		ID:        mov.ID.String(),
		Tipo:      mov.Tipo,
		Categoria: mov.Categoria,
		Valor:     mov.Valor,
		Descricao: mov.Descricao,
		Data:      mov.Data.Format("2006-01-02"),
	}
	if mov.ReferenciaID != nil {
		ref := mov.ReferenciaID.String()
		resp.ReferenciaID = &ref
	}
	return resp
}
