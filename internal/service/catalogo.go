package service

import (
	"context"

	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/model"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/pricing"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/repository"

	"github.com/google/uuid"
)

// catalogoParaProduto loads the materials referenced by a product's
// composition and converts them into the engine's immutable snapshot.
// Dangling references simply don't make it into the map — the engine
// prices those lines as zero.
func catalogoParaProduto(ctx context.Context, repo repository.MaterialRepository, p *model.Produto) (pricing.Catalogo, error) {
	ids := make([]uuid.UUID, 0, len(p.Composicao))
	visto := make(map[uuid.UUID]bool, len(p.Composicao))
	for _, item := range p.Composicao {
		if !visto[item.MaterialID] {
			visto[item.MaterialID] = true
			ids = append(ids, item.MaterialID)
		}
	}
	if len(ids) == 0 {
		return pricing.Catalogo{}, nil
	}

	materiais, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	cat := make(pricing.Catalogo, len(materiais))
	for i := range materiais {
		cat[materiais[i].ID.String()] = materialParaEngine(&materiais[i])
	}
	return cat, nil
}

func materialParaEngine(m *model.Material) pricing.Material {
	em := pricing.Material{
		ID:        m.ID.String(),
		Unidade:   m.Unidade,
		Variantes: make([]pricing.Variante, len(m.Variantes)),
	}
	for i, v := range m.Variantes {
		em.Variantes[i] = pricing.Variante{
			Nome:       v.Nome,
			Custo:      v.Custo,
			PrecoVenda: v.PrecoVenda,
		}
	}
	return em
}

func produtoParaEngine(p *model.Produto) pricing.Produto {
	ep := pricing.Produto{
		MaoDeObra:   p.MaoDeObra,
		MargemLucro: p.MargemLucro,
		Composicao:  make([]pricing.ItemComposicao, len(p.Composicao)),
	}
	for i, item := range p.Composicao {
		ep.Composicao[i] = pricing.ItemComposicao{
			MaterialID:    item.MaterialID.String(),
			Regra:         pricing.Regra(item.Regra),
			Multiplicador: item.Multiplicador,
			FatorMM:       item.FatorMM,
			Quantidade:    item.Quantidade,
		}
	}
	return ep
}
