package service

import (
	"context"
	"errors"
	"time"

	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/dto"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/model"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/pricing"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/repository"

	"github.com/shopspring/decimal"
)

// RelatorioService builds the period income statement. Revenue and cost come
// from completed sales; the deductions are the CURRENT expense percentages
// applied to period revenue, plus the flat fixed-cost estimate. It is a
// management estimate, not accounting.
type RelatorioService interface {
	Financeiro(ctx context.Context, filter dto.RelatorioFilter) (*dto.RelatorioFinanceiroResponse, error)
}

type relatorioService struct {
	vendaRepo     repository.VendaRepository
	orcamentoRepo repository.OrcamentoRepository
	despesas      DespesaService
}

func NewRelatorioService(
	vendaRepo repository.VendaRepository,
	orcamentoRepo repository.OrcamentoRepository,
	despesas DespesaService,
) RelatorioService {
	return &relatorioService{vendaRepo: vendaRepo, orcamentoRepo: orcamentoRepo, despesas: despesas}
}

func (s *relatorioService) Financeiro(ctx context.Context, filter dto.RelatorioFilter) (*dto.RelatorioFinanceiroResponse, error) {
	de, err := time.Parse("2006-01-02", filter.De)
	if err != nil {
		return nil, errors.New("data inicial invalida, use o formato YYYY-MM-DD")
	}
	ate, err := time.Parse("2006-01-02", filter.Ate)
	if err != nil {
		return nil, errors.New("data final invalida, use o formato YYYY-MM-DD")
	}
	if ate.Before(de) {
		return nil, errors.New("data final anterior a data inicial")
	}

	vendas, err := s.vendaRepo.ListConcluidasPeriodo(ctx, de, ate.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	faturamento := decimal.Zero
	custoProducao := decimal.Zero
	for _, v := range vendas {
		faturamento = faturamento.Add(v.Total)
		custoProducao = custoProducao.Add(v.CustoProducao)
	}
	lucroBruto := faturamento.Sub(custoProducao)

	despesas, err := s.despesas.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	det := pricing.Detalhamento(faturamento, despesas)

	resultado := lucroBruto.
		Sub(det.Comissao).
		Sub(det.Imposto).
		Sub(det.TaxaCartao).
		Sub(det.CustoFixoEstimado)

	aprovados, err := s.orcamentoRepo.ContarPorEstado(ctx, model.OrcamentoAprovado, filter.De, filter.Ate)
	if err != nil {
		return nil, err
	}
	pendentes, err := s.orcamentoRepo.ContarPorEstado(ctx, model.OrcamentoPendente, filter.De, filter.Ate)
	if err != nil {
		return nil, err
	}

	return &dto.RelatorioFinanceiroResponse{
		De:  filter.De,
		Ate: filter.Ate,

		Faturamento:   faturamento,
		CustoProducao: custoProducao,
		LucroBruto:    lucroBruto,

		Comissao:          det.Comissao,
		Imposto:           det.Imposto,
		TaxaCartao:        det.TaxaCartao,
		CustoFixoEstimado: det.CustoFixoEstimado,

		ResultadoLiquido: resultado,

		QuantidadeVendas:    int64(len(vendas)),
		OrcamentosAprovados: aprovados,
		OrcamentosPendentes: pendentes,
	}, nil
}
