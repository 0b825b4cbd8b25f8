package service

import (
	"context"

	"github.com/Skotchmaster/vitrine/internal/models"
	"github.com/Skotchmaster/vitrine/internal/repo"
	"github.com/Skotchmaster/vitrine/internal/storefront"
)

type VitrineService struct {
	Repo *repo.GormRepo
}

type Categorias struct {
	Categorias []string           `json:"categorias"`
	Grupos     []storefront.Group `json:"grupos"`
	Total      int                `json:"total"`
}

// Categorias filters the active catalog and groups the result by category.
// order is "preco" or "nome"; anything else keeps newest first.
func (s *VitrineService) Categorias(ctx context.Context, lojistaID uint, q storefront.Query, order string) (*Categorias, error) {
	produtos, err := s.Repo.ListActiveProdutos(ctx, lojistaID)
	if err != nil {
		return nil, err
	}

	filtered := storefront.Filter(produtos, q)
	groups := storefront.GroupByCategory(filtered)

	var less func(a, b models.Produto) bool
	switch order {
	case "preco":
		less = storefront.ByPreco
	case "nome":
		less = storefront.ByNome
	}
	if less != nil {
		for i := range groups {
			groups[i].SortBy(less)
		}
	}

	return &Categorias{
		Categorias: storefront.Categories(produtos),
		Grupos:     groups,
		Total:      len(filtered),
	}, nil
}
