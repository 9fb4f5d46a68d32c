package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/dto"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/model"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VendaService tracks closed sales. Quote approvals create sales through
// OrcamentoService; Registrar covers over-the-counter sales with no quote.
type VendaService interface {
	Registrar(ctx context.Context, vendedor string, req dto.RegistrarVendaRequest) (*dto.VendaResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.VendaResponse, error)
	Listar(ctx context.Context, filter dto.VendaFilter) (*dto.VendaListResponse, error)
	Cancelar(ctx context.Context, id uuid.UUID, motivo string) (*dto.VendaResponse, error)
}

type vendaService struct {
	repo      repository.VendaRepository
	caixaRepo repository.CaixaRepository
}

func NewVendaService(repo repository.VendaRepository, caixaRepo repository.CaixaRepository) VendaService {
	return &vendaService{repo: repo, caixaRepo: caixaRepo}
}

func (s *vendaService) Registrar(ctx context.Context, vendedor string, req dto.RegistrarVendaRequest) (*dto.VendaResponse, error) {
	if req.Total.Sign() <= 0 {
		return nil, errors.New("total da venda deve ser maior que zero")
	}

	venda := &model.Venda{
		ClienteNome:    req.ClienteNome,
		Total:          req.Total,
		CustoProducao:  req.CustoProducao,
		FormaPagamento: req.FormaPagamento,
		Vendedor:       vendedor,
		Estado:         model.VendaConcluida,
		Data:           time.Now(),
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, venda); err != nil {
			return err
		}
		mov := &model.MovimentoCaixa{
			Tipo:         "entrada",
			Categoria:    "venda",
			Valor:        venda.Total,
			Descricao:    fmt.Sprintf("Venda direta - %s", venda.ClienteNome),
			ReferenciaID: &venda.ID,
			Data:         time.Now(),
		}
		return s.caixaRepo.CreateTx(tx, mov)
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := vendaToResponse(venda)
	return &resp, nil
}

func (s *vendaService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.VendaResponse, error) {
	venda, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("venda nao encontrada")
	}
	resp := vendaToResponse(venda)
	return &resp, nil
}

func (s *vendaService) Listar(ctx context.Context, filter dto.VendaFilter) (*dto.VendaListResponse, error) {
	vendas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.VendaListResponse{
		Data:  make([]dto.VendaResponse, len(vendas)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range vendas {
		resp.Data[i] = vendaToResponse(&vendas[i])
	}
	return resp, nil
}

// Cancelar marks the sale cancelled and writes the inverse cash entry.
// The original entry stays: the ledger is append-only.
func (s *vendaService) Cancelar(ctx context.Context, id uuid.UUID, motivo string) (*dto.VendaResponse, error) {
	venda, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("venda nao encontrada")
	}
	if venda.Estado == model.VendaCancelada {
		return nil, errors.New("a venda ja esta cancelada")
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		venda.Estado = model.VendaCancelada
		if err := s.repo.UpdateTx(tx, venda); err != nil {
			return err
		}
		mov := &model.MovimentoCaixa{
			Tipo:         "saida",
			Categoria:    "estorno",
			Valor:        venda.Total,
			Descricao:    fmt.Sprintf("Estorno de venda: %s", motivo),
			ReferenciaID: &venda.ID,
			Data:         time.Now(),
		}
		return s.caixaRepo.CreateTx(tx, mov)
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := vendaToResponse(venda)
	return &resp, nil
}

func vendaToResponse(v *model.Venda) dto.VendaResponse {
	resp := dto.VendaResponse{
		ID:             v.ID.String(),
		ClienteNome:    v.ClienteNome,
		Total:          v.Total,
		CustoProducao:  v.CustoProducao,
		FormaPagamento: v.FormaPagamento,
		Vendedor:       v.Vendedor,
		Estado:         v.Estado,
		Data:           v.Data.Format("2006-01-02"),
	}
	if v.OrcamentoID != nil {
		oid := v.OrcamentoID.String()
		resp.OrcamentoID = &oid
	}
	return resp
}
