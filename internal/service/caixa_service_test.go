package service

import (
	"context"
	"testing"

	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrarMovimentoManual(t *testing.T) {
	caixaRepo := &stubCaixaRepo{}
	svc := NewCaixaService(caixaRepo)

	resp, err := svc.RegistrarMovimento(context.Background(), dto.MovimentoManualRequest{
		Tipo:      "saida",
		Valor:     decimal.NewFromInt(80),
		Descricao: "combustível entrega",
		Data:      "2026-03-10",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-10", resp.Data)
	assert.Equal(t, "outro", resp.Categoria) // default when omitted

	_, err = svc.RegistrarMovimento(context.Background(), dto.MovimentoManualRequest{
		Tipo: "saida", Valor: decimal.Zero,
	})
	assert.ErrorContains(t, err, "maior que zero")

	_, err = svc.RegistrarMovimento(context.Background(), dto.MovimentoManualRequest{
		Tipo: "saida", Valor: decimal.NewFromInt(10), Data: "10/03/2026",
	})
	assert.ErrorContains(t, err, "formato")
}

func TestResumoCaixa_Saldo(t *testing.T) {
	caixaRepo := &stubCaixaRepo{}
	svc := NewCaixaService(caixaRepo)

	entradas := []int64{1000, 250}
	for _, v := range entradas {
		_, err := svc.RegistrarMovimento(context.Background(), dto.MovimentoManualRequest{
			Tipo: "entrada", Categoria: "venda", Valor: decimal.NewFromInt(v),
		})
		require.NoError(t, err)
	}
	_, err := svc.RegistrarMovimento(context.Background(), dto.MovimentoManualRequest{
		Tipo: "saida", Categoria: "despesa", Valor: decimal.NewFromInt(300),
	})
	require.NoError(t, err)

	resumo, err := svc.Resumo(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, "1250", resumo.Entradas.String())
	assert.Equal(t, "300", resumo.Saidas.String())
	assert.Equal(t, "950", resumo.Saldo.String())
}
