package service

import (
	"context"
	"testing"

	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCriarMaterial_SemVariantes(t *testing.T) {
	svc := NewMaterialService(newStubMaterialRepo())

	_, err := svc.Criar(context.Background(), dto.CriarMaterialRequest{
		Nome:         "Perfil alumínio",
		CategoriaUso: "linear",
		Unidade:      "ml",
	})
	assert.ErrorContains(t, err, "ao menos uma variante")
}

func TestAjustarEstoque_RegistraMovimento(t *testing.T) {
	repo := newStubMaterialRepo()
	svc := NewMaterialService(repo)
	m := seedVidro(repo)
	m.EstoqueAtual = decimal.NewFromInt(10)

	resp, err := svc.AjustarEstoque(context.Background(), m.ID, dto.AjusteEstoqueRequest{
		Quantidade: decimal.NewFromInt(-4),
		Motivo:     "consumo obra 112",
	})
	require.NoError(t, err)
	assert.Equal(t, "6", resp.EstoqueAtual.String())

	movs, err := svc.ListarMovimentos(context.Background(), m.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, "-4", movs[0].Quantidade.String())
	assert.Equal(t, "10", movs[0].EstoqueAnterior.String())
	assert.Equal(t, "6", movs[0].EstoqueNovo.String())
}

func TestAjustarEstoque_ZeroRejeitado(t *testing.T) {
	repo := newStubMaterialRepo()
	svc := NewMaterialService(repo)
	m := seedVidro(repo)

	_, err := svc.AjustarEstoque(context.Background(), m.ID, dto.AjusteEstoqueRequest{
		Quantidade: decimal.Zero,
	})
	assert.ErrorContains(t, err, "nao pode ser zero")
}

func TestAjustarEstoque_NegativoRejeitado(t *testing.T) {
	repo := newStubMaterialRepo()
	svc := NewMaterialService(repo)
	m := seedVidro(repo)
	m.EstoqueAtual = decimal.NewFromInt(3)

	_, err := svc.AjustarEstoque(context.Background(), m.ID, dto.AjusteEstoqueRequest{
		Quantidade: decimal.NewFromInt(-5),
		Motivo:     "quebra",
	})
	assert.ErrorContains(t, err, "negativo")

	// No movement recorded, stock untouched.
	movs, _ := svc.ListarMovimentos(context.Background(), m.ID)
	assert.Empty(t, movs)
	assert.Equal(t, "3", m.EstoqueAtual.String())
}
