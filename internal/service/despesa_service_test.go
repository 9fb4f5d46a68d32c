package service

import (
	"context"
	"testing"

	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/dto"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCriarDespesa_ClassificaPorNome(t *testing.T) {
	svc := NewDespesaService(&stubDespesaRepo{}, nil)

	resp, err := svc.Criar(context.Background(), dto.CriarDespesaRequest{
		Nome:  "Maquininha de cartão",
		Tipo:  "percentual",
		Valor: decimal.NewFromFloat(3.5),
	})
	require.NoError(t, err)
	assert.Equal(t, "taxa_cartao", resp.Categoria)
}

func TestCriarDespesa_CategoriaExplicitaVence(t *testing.T) {
	svc := NewDespesaService(&stubDespesaRepo{}, nil)

	resp, err := svc.Criar(context.Background(), dto.CriarDespesaRequest{
		Nome:      "Comissão repasse",
		Tipo:      "fixa",
		Valor:     decimal.NewFromInt(500),
		Categoria: "outra",
	})
	require.NoError(t, err)
	assert.Equal(t, "outra", resp.Categoria)
}

func TestListarDespesas_Resumo(t *testing.T) {
	repo := &stubDespesaRepo{}
	svc := NewDespesaService(repo, nil)

	seed := []dto.CriarDespesaRequest{
		{Nome: "Comissão vendedor", Tipo: "percentual", Valor: decimal.NewFromInt(5)},
		{Nome: "Simples Nacional", Tipo: "percentual", Valor: decimal.NewFromInt(6)},
		{Nome: "Aluguel", Tipo: "fixa", Valor: decimal.NewFromInt(2000)},
	}
	for _, req := range seed {
		_, err := svc.Criar(context.Background(), req)
		require.NoError(t, err)
	}

	resumo, err := svc.Listar(context.Background())
	require.NoError(t, err)
	assert.Len(t, resumo.Despesas, 3)
	assert.Equal(t, "11", resumo.PercentualTotal.String())
	assert.Equal(t, "2000", resumo.TotalFixas.String())
}

func TestAtualizarDespesa_RenomearReclassifica(t *testing.T) {
	repo := &stubDespesaRepo{}
	svc := NewDespesaService(repo, nil)

	criada, err := svc.Criar(context.Background(), dto.CriarDespesaRequest{
		Nome:  "Comissão vendedor",
		Tipo:  "percentual",
		Valor: decimal.NewFromInt(5),
	})
	require.NoError(t, err)
	assert.Equal(t, "comissao", criada.Categoria)

	atualizada, err := svc.Atualizar(context.Background(), uuid.MustParse(criada.ID), dto.AtualizarDespesaRequest{
		Nome: "Imposto municipal",
	})
	require.NoError(t, err)
	assert.Equal(t, "imposto", atualizada.Categoria)
}

func TestSnapshot_SemRedis(t *testing.T) {
	repo := &stubDespesaRepo{}
	svc := NewDespesaService(repo, nil)

	_, err := svc.Criar(context.Background(), dto.CriarDespesaRequest{
		Nome: "Comissão", Tipo: "percentual", Valor: decimal.NewFromInt(5),
	})
	require.NoError(t, err)
	_, err = svc.Criar(context.Background(), dto.CriarDespesaRequest{
		Nome: "Aluguel", Tipo: "fixa", Valor: decimal.NewFromInt(1500), Categoria: "outra",
	})
	require.NoError(t, err)

	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snap, 2)
	assert.Equal(t, "5", pricing.SomaPercentuais(snap).String())
}
