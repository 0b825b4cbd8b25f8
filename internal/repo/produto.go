package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/vitrine/internal/models"
)

func (r *GormRepo) CreateProduto(ctx context.Context, p *models.Produto) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Lojista{}).Where("id = ?", p.LojistaID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(p).Error
	})
}

func (r *GormRepo) ListProdutos(ctx context.Context) ([]models.Produto, error) {
	var items []models.Produto
	err := r.DB.WithContext(ctx).
		Preload("Lojista").
		Order("created_at DESC, id DESC").
		Find(&items).Error
	return items, err
}

// ListActiveProdutos returns the storefront listing. lojistaID 0 means every store.
func (r *GormRepo) ListActiveProdutos(ctx context.Context, lojistaID uint) ([]models.Produto, error) {
	q := r.DB.WithContext(ctx).Preload("Lojista").Where("is_active = ?", true)
	if lojistaID != 0 {
		q = q.Where("lojista_id = ?", lojistaID)
	}

	var items []models.Produto
	err := q.Order("created_at DESC, id DESC").Find(&items).Error
	return items, err
}

func (r *GormRepo) GetProduto(ctx context.Context, id uint) (*models.Produto, error) {
	var p models.Produto
	if err := r.DB.WithContext(ctx).Preload("Lojista").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ProdutoArrays replaces the json-serialized columns of a produto. A nil
// slice leaves its column unchanged.
type ProdutoArrays struct {
	Tamanhos []string
	Cores    []string
	Imagens  []string
}

func (a ProdutoArrays) empty() bool {
	return a.Tamanhos == nil && a.Cores == nil && a.Imagens == nil
}

// UpdateProduto applies scalar fields and array replacements in one
// transaction. Arrays are written from the struct so the json serializer applies.
func (r *GormRepo) UpdateProduto(ctx context.Context, id uint, fields map[string]any, arrays ProdutoArrays) (*models.Produto, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur models.Produto
		if err := tx.First(&cur, id).Error; err != nil {
			return err
		}

		if !arrays.empty() {
			if arrays.Tamanhos != nil {
				cur.Tamanhos = arrays.Tamanhos
			}
			if arrays.Cores != nil {
				cur.Cores = arrays.Cores
			}
			if arrays.Imagens != nil {
				cur.Imagens = arrays.Imagens
			}
			if err := tx.Model(&cur).Select("tamanhos", "cores", "imagens").Updates(&cur).Error; err != nil {
				return err
			}
		}

		if len(fields) > 0 {
			if err := tx.Model(&models.Produto{}).Where("id = ?", id).Updates(fields).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetProduto(ctx, id)
}

func (r *GormRepo) DeleteProduto(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Produto{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SearchActiveProdutos is the database fallback when no search index is
// configured: a case-insensitive substring match over nome and descricao.
func (r *GormRepo) SearchActiveProdutos(ctx context.Context, q string, offset, limit int) (int64, []models.Produto, error) {
	like := "%" + escapeLike(strings.ToLower(q)) + "%"
	where := r.DB.WithContext(ctx).Model(&models.Produto{}).
		Where("is_active = ?", true).
		Where("(LOWER(nome) LIKE ? ESCAPE '\\' OR LOWER(descricao) LIKE ? ESCAPE '\\')", like, like)

	var total int64
	if err := where.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Produto, 0, limit)
	if err := where.Session(&gorm.Session{}).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
