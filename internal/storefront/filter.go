// Package storefront filters and groups the public product listing.
package storefront

import (
	"sort"
	"strings"

	"github.com/Skotchmaster/vitrine/internal/models"
)

const (
	AllCategories   = "todos"
	NoCategoryLabel = "Sem categoria"
)

type Query struct {
	Q         string
	Categoria string
}

type Group struct {
	Categoria string           `json:"categoria"`
	Produtos  []models.Produto `json:"produtos"`
}

func CategoryOf(p models.Produto) string {
	if c := strings.TrimSpace(p.Categoria); c != "" {
		return c
	}
	return NoCategoryLabel
}

// Filter keeps active products whose nome or descricao contains q, ignoring
// case, and whose category matches. The input order is preserved.
func Filter(products []models.Produto, q Query) []models.Produto {
	needle := strings.ToLower(strings.TrimSpace(q.Q))
	cat := strings.TrimSpace(q.Categoria)
	anyCat := cat == "" || strings.EqualFold(cat, AllCategories)

	out := make([]models.Produto, 0, len(products))
	for _, p := range products {
		if !p.IsActive {
			continue
		}
		if !anyCat && CategoryOf(p) != cat {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Nome), needle) &&
			!strings.Contains(strings.ToLower(p.Descricao), needle) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// GroupByCategory partitions products by category. Groups are sorted by name;
// products keep their input order inside a group.
func GroupByCategory(products []models.Produto) []Group {
	idx := map[string]int{}
	groups := make([]Group, 0)
	for _, p := range products {
		c := CategoryOf(p)
		i, ok := idx[c]
		if !ok {
			i = len(groups)
			idx[c] = i
			groups = append(groups, Group{Categoria: c})
		}
		groups[i].Produtos = append(groups[i].Produtos, p)
	}

	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Categoria < groups[j].Categoria })
	return groups
}

// SortBy orders one group in place.
func (g *Group) SortBy(less func(a, b models.Produto) bool) {
	sort.SliceStable(g.Produtos, func(i, j int) bool { return less(g.Produtos[i], g.Produtos[j]) })
}

func Categories(products []models.Produto) []string {
	groups := GroupByCategory(products)
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.Categoria)
	}
	return out
}

func ByPreco(a, b models.Produto) bool { return a.Preco.LessThan(b.Preco) }

func ByNome(a, b models.Produto) bool { return strings.ToLower(a.Nome) < strings.ToLower(b.Nome) }
