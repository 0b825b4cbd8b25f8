package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Skotchmaster/vitrine/internal/models"
	"github.com/Skotchmaster/vitrine/internal/repo"
	"github.com/Skotchmaster/vitrine/internal/transport"
	"github.com/Skotchmaster/vitrine/pkg/logging"
	"github.com/Skotchmaster/vitrine/pkg/mykafka"
)

type ProdutoService struct {
	Repo   *repo.GormRepo
	Index  ProdutoIndex
	Events EventPublisher
}

type SearchResult struct {
	Total int64            `json:"total"`
	Items []models.Produto `json:"items"`
}

func (s *ProdutoService) Create(ctx context.Context, req transport.CreateProdutoRequest) (*models.Produto, error) {
	if strings.TrimSpace(req.Nome) == "" {
		return nil, fmt.Errorf("%w: nome required", ErrValidation)
	}
	if err := checkMoney("preco", req.Preco, true); err != nil {
		return nil, err
	}
	if req.Estoque < 0 {
		return nil, fmt.Errorf("%w: estoque must be >= 0", ErrValidation)
	}
	if req.LojistaID == 0 {
		return nil, fmt.Errorf("%w: lojistaId required", ErrValidation)
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	p := &models.Produto{
		Nome:      strings.TrimSpace(req.Nome),
		Descricao: req.Descricao,
		Preco:     req.Preco.Round(moneyScale),
		Categoria: strings.TrimSpace(req.Categoria),
		Tamanhos:  nonNil(req.Tamanhos),
		Cores:     nonNil(req.Cores),
		Imagens:   nonNil(req.Imagens),
		Estoque:   req.Estoque,
		IsActive:  active,
		LojistaID: req.LojistaID,
	}
	if err := s.Repo.CreateProduto(ctx, p); err != nil {
		return nil, mapStoreErr(err, "lojista")
	}

	s.reindex(ctx, p)
	s.emit(ctx, "produto_created", p)
	return p, nil
}

func (s *ProdutoService) List(ctx context.Context) ([]models.Produto, error) {
	return s.Repo.ListProdutos(ctx)
}

func (s *ProdutoService) ListVitrine(ctx context.Context) ([]models.Produto, error) {
	return s.Repo.ListActiveProdutos(ctx, 0)
}

func (s *ProdutoService) ListVitrineByLojista(ctx context.Context, lojistaID uint) ([]models.Produto, error) {
	return s.Repo.ListActiveProdutos(ctx, lojistaID)
}

func (s *ProdutoService) Get(ctx context.Context, id uint) (*models.Produto, error) {
	p, err := s.Repo.GetProduto(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "produto")
	}
	return p, nil
}

func (s *ProdutoService) Update(ctx context.Context, id uint, req transport.PatchProdutoRequest) (*models.Produto, error) {
	fields := map[string]any{}

	if req.Nome != nil {
		if strings.TrimSpace(*req.Nome) == "" {
			return nil, fmt.Errorf("%w: nome cannot be empty", ErrValidation)
		}
		fields["nome"] = strings.TrimSpace(*req.Nome)
	}
	if req.Descricao != nil {
		fields["descricao"] = *req.Descricao
	}
	if req.Preco != nil {
		if err := checkMoney("preco", *req.Preco, true); err != nil {
			return nil, err
		}
		fields["preco"] = req.Preco.Round(moneyScale)
	}
	if req.Categoria != nil {
		fields["categoria"] = strings.TrimSpace(*req.Categoria)
	}
	if req.Estoque != nil {
		if *req.Estoque < 0 {
			return nil, fmt.Errorf("%w: estoque must be >= 0", ErrValidation)
		}
		fields["estoque"] = *req.Estoque
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}

	p, err := s.Repo.UpdateProduto(ctx, id, fields, repo.ProdutoArrays{
		Tamanhos: req.Tamanhos,
		Cores:    req.Cores,
		Imagens:  req.Imagens,
	})
	if err != nil {
		return nil, mapStoreErr(err, "produto")
	}

	s.reindex(ctx, p)
	s.emit(ctx, "produto_updated", p)
	return p, nil
}

func (s *ProdutoService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduto(ctx, id); err != nil {
		return mapStoreErr(err, "produto")
	}

	if s.Index != nil {
		if err := s.Index.DeleteProduto(ctx, id); err != nil {
			logging.FromContext(ctx).Error("produto_unindex_failed", "produto_id", id, "error", err)
		}
	}
	publish(ctx, s.Events, mykafka.TopicProduto, strconv.FormatUint(uint64(id), 10), map[string]any{
		"type":      "produto_deleted",
		"produtoID": id,
	})
	return nil
}

// Search queries the index when one is configured and falls back to the
// database otherwise. Only active products are returned either way.
func (s *ProdutoService) Search(ctx context.Context, q string, from, size int) (*SearchResult, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, fmt.Errorf("%w: q required", ErrValidation)
	}

	if s.Index != nil {
		total, items, err := s.Index.Search(ctx, q, from, size)
		if err == nil {
			return &SearchResult{Total: total, Items: items}, nil
		}
		logging.FromContext(ctx).Error("search_index_failed", "reason", "falling back to database", "error", err)
	}

	total, items, err := s.Repo.SearchActiveProdutos(ctx, q, from, size)
	if err != nil {
		return nil, err
	}
	return &SearchResult{Total: total, Items: items}, nil
}

func (s *ProdutoService) reindex(ctx context.Context, p *models.Produto) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexProduto(ctx, p); err != nil {
		logging.FromContext(ctx).Error("produto_index_failed", "produto_id", p.ID, "error", err)
	}
}

func (s *ProdutoService) emit(ctx context.Context, typ string, p *models.Produto) {
	publish(ctx, s.Events, mykafka.TopicProduto, strconv.FormatUint(uint64(p.ID), 10), map[string]any{
		"type":      typ,
		"produtoID": p.ID,
		"lojistaID": p.LojistaID,
		"nome":      p.Nome,
		"preco":     p.Preco.StringFixed(2),
		"isActive":  p.IsActive,
	})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
