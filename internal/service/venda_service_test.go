package service

import (
	"context"
	"testing"

	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/dto"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildVendaSvc() (VendaService, *stubVendaRepo, *stubCaixaRepo) {
	vendaRepo := newStubVendaRepo()
	caixaRepo := &stubCaixaRepo{}
	return NewVendaService(vendaRepo, caixaRepo), vendaRepo, caixaRepo
}

func TestRegistrarVenda_CriaMovimentoCaixa(t *testing.T) {
	svc, vendaRepo, caixaRepo := buildVendaSvc()

	resp, err := svc.Registrar(context.Background(), "Maria", dto.RegistrarVendaRequest{
		ClienteNome:    "Balcão",
		Total:          decimal.NewFromInt(350),
		CustoProducao:  decimal.NewFromInt(120),
		FormaPagamento: "pix",
	})
	require.NoError(t, err)
	assert.Equal(t, model.VendaConcluida, resp.Estado)
	assert.Equal(t, "Maria", resp.Vendedor)

	stored, err := vendaRepo.FindByID(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.Nil(t, stored.OrcamentoID)

	require.Len(t, caixaRepo.movimentos, 1)
	mov := caixaRepo.movimentos[0]
	assert.Equal(t, "entrada", mov.Tipo)
	assert.Equal(t, "venda", mov.Categoria)
	assert.True(t, mov.Valor.Equal(decimal.NewFromInt(350)))
}

func TestRegistrarVenda_TotalInvalido(t *testing.T) {
	svc, _, _ := buildVendaSvc()

	_, err := svc.Registrar(context.Background(), "Maria", dto.RegistrarVendaRequest{
		ClienteNome: "Balcão",
		Total:       decimal.Zero,
	})
	assert.ErrorContains(t, err, "maior que zero")
}

func TestCancelarVenda_Estorno(t *testing.T) {
	svc, vendaRepo, caixaRepo := buildVendaSvc()

	resp, err := svc.Registrar(context.Background(), "Maria", dto.RegistrarVendaRequest{
		ClienteNome: "Balcão",
		Total:       decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	cancelada, err := svc.Cancelar(context.Background(), id, "cliente desistiu")
	require.NoError(t, err)
	assert.Equal(t, model.VendaCancelada, cancelada.Estado)

	stored, _ := vendaRepo.FindByID(context.Background(), id)
	assert.Equal(t, model.VendaCancelada, stored.Estado)

	// Original entry plus a positive saida, never a mutation of the first.
	require.Len(t, caixaRepo.movimentos, 2)
	estorno := caixaRepo.movimentos[1]
	assert.Equal(t, "saida", estorno.Tipo)
	assert.Equal(t, "estorno", estorno.Categoria)
	assert.True(t, estorno.Valor.Equal(decimal.NewFromInt(500)))

	// Cancelling twice is rejected.
	_, err = svc.Cancelar(context.Background(), id, "de novo")
	assert.ErrorContains(t, err, "ja esta cancelada")
}
