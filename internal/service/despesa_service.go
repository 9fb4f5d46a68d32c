package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/dto"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/model"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/pricing"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// cacheDespesasKey holds the serialized expense snapshot. Every repricing
// reads the registry, so it is cached briefly and invalidated on any write.
const cacheDespesasKey = "cache:despesas"

const cacheDespesasTTL = 5 * time.Minute

// DespesaService owns the expense registry that feeds the pricing formula.
type DespesaService interface {
	Criar(ctx context.Context, req dto.CriarDespesaRequest) (*dto.DespesaResponse, error)
	Listar(ctx context.Context) (*dto.ResumoDespesasResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarDespesaRequest) (*dto.DespesaResponse, error)
	Excluir(ctx context.Context, id uuid.UUID) error

	// Snapshot returns the registry as engine inputs. This is what the
	// quoting services consume; they never touch the repository directly.
	Snapshot(ctx context.Context) ([]pricing.Despesa, error)
}

type despesaService struct {
	repo repository.DespesaRepository
	rdb  *redis.Client
}

func NewDespesaService(repo repository.DespesaRepository, rdb *redis.Client) DespesaService {
	return &despesaService{repo: repo, rdb: rdb}
}

func (s *despesaService) Criar(ctx context.Context, req dto.CriarDespesaRequest) (*dto.DespesaResponse, error) {
	categoria := req.Categoria
	if categoria == "" {
		categoria = string(pricing.CategoriaPorNome(req.Nome))
	}
	d := &model.Despesa{
		Nome:      req.Nome,
		Tipo:      req.Tipo,
		Valor:     req.Valor,
		Categoria: categoria,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	s.invalidar(ctx)
	resp := despesaToResponse(d)
	return &resp, nil
}

func (s *despesaService) Listar(ctx context.Context) (*dto.ResumoDespesasResponse, error) {
	despesas, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.ResumoDespesasResponse{
		Despesas:        make([]dto.DespesaResponse, len(despesas)),
		PercentualTotal: decimal.Zero,
		TotalFixas:      decimal.Zero,
	}
	for i, d := range despesas {
		resp.Despesas[i] = despesaToResponse(&despesas[i])
		switch d.Tipo {
		case pricing.TipoPercentual:
			resp.PercentualTotal = resp.PercentualTotal.Add(d.Valor)
		case pricing.TipoFixa:
			resp.TotalFixas = resp.TotalFixas.Add(d.Valor)
		}
	}
	return resp, nil
}

func (s *despesaService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarDespesaRequest) (*dto.DespesaResponse, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("despesa nao encontrada")
	}
	if req.Nome != "" && req.Nome != d.Nome {
		d.Nome = req.Nome
		// Renaming re-runs the classifier unless the category is explicit.
		if req.Categoria == "" {
			d.Categoria = string(pricing.CategoriaPorNome(req.Nome))
		}
	}
	if req.Tipo != "" {
		d.Tipo = req.Tipo
	}
	if req.Valor != nil {
		d.Valor = *req.Valor
	}
	if req.Categoria != "" {
		d.Categoria = req.Categoria
	}
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	s.invalidar(ctx)
	resp := despesaToResponse(d)
	return &resp, nil
}

func (s *despesaService) Excluir(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("despesa nao encontrada")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidar(ctx)
	return nil
}

func (s *despesaService) Snapshot(ctx context.Context) ([]pricing.Despesa, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, cacheDespesasKey).Bytes(); err == nil {
			var cached []pricing.Despesa
			if json.Unmarshal(raw, &cached) == nil {
				return cached, nil
			}
		}
	}

	despesas, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	snapshot := make([]pricing.Despesa, len(despesas))
	for i, d := range despesas {
		snapshot[i] = pricing.Despesa{
			Nome:      d.Nome,
			Tipo:      d.Tipo,
			Valor:     d.Valor,
			Categoria: pricing.Categoria(d.Categoria),
		}
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(snapshot); err == nil {
			s.rdb.Set(ctx, cacheDespesasKey, raw, cacheDespesasTTL)
		}
	}
	return snapshot, nil
}

func (s *despesaService) invalidar(ctx context.Context) {
	if s.rdb != nil {
		s.rdb.Del(ctx, cacheDespesasKey)
	}
}

func despesaToResponse(d *model.Despesa) dto.DespesaResponse {
	return dto.DespesaResponse{
		ID:        d.ID.String(),
		Nome:      d.Nome,
		Tipo:      d.Tipo,
		Valor:     d.Valor,
		Categoria: d.Categoria,
	}
}
