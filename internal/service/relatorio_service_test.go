package service

import (
	"context"
	"testing"
	"time"

	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/dto"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedVenda(repo *stubVendaRepo, total, custo int64, estado string, data time.Time) {
	_ = repo.CreateTx(nil, &model.Venda{
		ClienteNome:   "Cliente",
		Total:         decimal.NewFromInt(total),
		CustoProducao: decimal.NewFromInt(custo),
		Vendedor:      "Maria",
		Estado:        estado,
		Data:          data,
	})
}

func TestRelatorioFinanceiro_Calcula(t *testing.T) {
	vendaRepo := newStubVendaRepo()
	orcamentoRepo := newStubOrcamentoRepo()
	despesaRepo := &stubDespesaRepo{despesas: []model.Despesa{
		{ID: uuid.New(), Nome: "Comissão", Tipo: "percentual", Valor: decimal.NewFromInt(5), Categoria: "comissao"},
		{ID: uuid.New(), Nome: "Imposto", Tipo: "percentual", Valor: decimal.NewFromInt(5), Categoria: "imposto"},
	}}
	svc := NewRelatorioService(vendaRepo, orcamentoRepo, NewDespesaService(despesaRepo, nil))

	jan10 := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	jan31 := time.Date(2026, 1, 31, 23, 0, 0, 0, time.UTC)
	fev05 := time.Date(2026, 2, 5, 12, 0, 0, 0, time.UTC)

	seedVenda(vendaRepo, 1000, 400, model.VendaConcluida, jan10)
	seedVenda(vendaRepo, 500, 200, model.VendaConcluida, jan31) // last day counts
	seedVenda(vendaRepo, 300, 100, model.VendaCancelada, jan10) // ignored
	seedVenda(vendaRepo, 900, 300, model.VendaConcluida, fev05) // outside period

	resp, err := svc.Financeiro(context.Background(), dto.RelatorioFilter{
		De: "2026-01-01", Ate: "2026-01-31",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), resp.QuantidadeVendas)
	assert.Equal(t, "1500", resp.Faturamento.String())
	assert.Equal(t, "600", resp.CustoProducao.String())
	assert.Equal(t, "900", resp.LucroBruto.String())

	// Deductions: 5% + 5% of revenue plus the flat 20% fixed-cost estimate.
	assert.Equal(t, "75", resp.Comissao.String())
	assert.Equal(t, "75", resp.Imposto.String())
	assert.Equal(t, "0", resp.TaxaCartao.String())
	assert.Equal(t, "300", resp.CustoFixoEstimado.String())
	// 900 − 75 − 75 − 0 − 300
	assert.Equal(t, "450", resp.ResultadoLiquido.String())
}

func TestRelatorioFinanceiro_ContaOrcamentos(t *testing.T) {
	vendaRepo := newStubVendaRepo()
	orcamentoRepo := newStubOrcamentoRepo()
	svc := NewRelatorioService(vendaRepo, orcamentoRepo, NewDespesaService(&stubDespesaRepo{}, nil))

	for _, estado := range []string{model.OrcamentoAprovado, model.OrcamentoAprovado, model.OrcamentoPendente} {
		_ = orcamentoRepo.CreateTx(nil, &model.Orcamento{
			ClienteNome: "Cliente", Vendedor: "Maria", Estado: estado,
			Data: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		})
	}

	resp, err := svc.Financeiro(context.Background(), dto.RelatorioFilter{
		De: "2026-01-01", Ate: "2026-01-31",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.OrcamentosAprovados)
	assert.Equal(t, int64(1), resp.OrcamentosPendentes)
}

func TestRelatorioFinanceiro_PeriodoInvalido(t *testing.T) {
	svc := NewRelatorioService(newStubVendaRepo(), newStubOrcamentoRepo(), NewDespesaService(&stubDespesaRepo{}, nil))

	_, err := svc.Financeiro(context.Background(), dto.RelatorioFilter{De: "2026-01-31", Ate: "2026-01-01"})
	assert.ErrorContains(t, err, "anterior")

	_, err = svc.Financeiro(context.Background(), dto.RelatorioFilter{De: "31/01/2026", Ate: "2026-02-01"})
	assert.ErrorContains(t, err, "formato")
}
