package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/vitrine/internal/models"
)

type PedidoFilter struct {
	LojistaID uint
	Status    string
}

// CreatePedido writes the order and its items in one transaction. The lojista
// and every referenced produto must exist, otherwise nothing is written and
// gorm.ErrRecordNotFound is returned. Stock is not touched.
func (r *GormRepo) CreatePedido(ctx context.Context, p *models.Pedido) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Lojista{}).Where("id = ?", p.LojistaID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}

		ids := distinctProdutoIDs(p.Itens)
		if err := tx.Model(&models.Produto{}).Where("id IN ?", ids).Count(&n).Error; err != nil {
			return err
		}
		if int(n) != len(ids) {
			return gorm.ErrRecordNotFound
		}

		return tx.Create(p).Error
	})
}

func (r *GormRepo) ListPedidos(ctx context.Context, f PedidoFilter, offset, limit int) (int64, []models.Pedido, error) {
	q := r.DB.WithContext(ctx).Model(&models.Pedido{})
	if f.LojistaID != 0 {
		q = q.Where("lojista_id = ?", f.LojistaID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Pedido, 0, limit)
	if err := q.Session(&gorm.Session{}).
		Preload("Itens", orderedItens).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}

	if err := r.attachProdutos(ctx, items...); err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) GetPedido(ctx context.Context, id uint) (*models.Pedido, error) {
	var p models.Pedido
	if err := r.DB.WithContext(ctx).
		Preload("Itens", orderedItens).
		Preload("Lojista").
		First(&p, id).Error; err != nil {
		return nil, err
	}

	pedidos := []models.Pedido{p}
	if err := r.attachProdutos(ctx, pedidos...); err != nil {
		return nil, err
	}
	return &pedidos[0], nil
}

func (r *GormRepo) UpdatePedido(ctx context.Context, id uint, fields map[string]any) (*models.Pedido, error) {
	if len(fields) > 0 {
		res := r.DB.WithContext(ctx).Model(&models.Pedido{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.GetPedido(ctx, id)
}

func (r *GormRepo) DeletePedido(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pedido_id = ?", id).Delete(&models.ItemPedido{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Pedido{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func orderedItens(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// attachProdutos fills each item's product summary with one query. Items whose
// produto was deleted keep a nil summary.
func (r *GormRepo) attachProdutos(ctx context.Context, pedidos ...models.Pedido) error {
	var ids []uint
	for i := range pedidos {
		ids = append(ids, distinctProdutoIDs(pedidos[i].Itens)...)
	}
	if len(ids) == 0 {
		return nil
	}

	var produtos []models.Produto
	if err := r.DB.WithContext(ctx).
		Select("id", "nome", "imagens").
		Where("id IN ?", ids).
		Find(&produtos).Error; err != nil {
		return err
	}

	byID := make(map[uint]*models.ProdutoResumo, len(produtos))
	for _, p := range produtos {
		byID[p.ID] = &models.ProdutoResumo{ID: p.ID, Nome: p.Nome, Imagens: p.Imagens}
	}
	for i := range pedidos {
		for j := range pedidos[i].Itens {
			pedidos[i].Itens[j].Produto = byID[pedidos[i].Itens[j].ProdutoID]
		}
	}
	return nil
}

func distinctProdutoIDs(itens []models.ItemPedido) []uint {
	seen := make(map[uint]struct{}, len(itens))
	ids := make([]uint, 0, len(itens))
	for _, it := range itens {
		if _, ok := seen[it.ProdutoID]; ok {
			continue
		}
		seen[it.ProdutoID] = struct{}{}
		ids = append(ids, it.ProdutoID)
	}
	return ids
}
