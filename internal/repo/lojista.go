package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/vitrine/internal/models"
)

func (r *GormRepo) CreateLojista(ctx context.Context, l *models.Lojista) error {
	return r.DB.WithContext(ctx).Create(l).Error
}

func (r *GormRepo) ListLojistas(ctx context.Context) ([]models.Lojista, error) {
	var items []models.Lojista
	err := r.DB.WithContext(ctx).
		Preload("User").
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (r *GormRepo) ListLojistasByUser(ctx context.Context, userID uint) ([]models.Lojista, error) {
	var items []models.Lojista
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (r *GormRepo) GetLojista(ctx context.Context, id uint) (*models.Lojista, error) {
	var l models.Lojista
	if err := r.DB.WithContext(ctx).Preload("User").First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *GormRepo) LojistaExists(ctx context.Context, id uint) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.Lojista{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// UpdateLojista writes the given columns. The caller has already checked
// existence and ownership.
func (r *GormRepo) UpdateLojista(ctx context.Context, id uint, fields map[string]any) (*models.Lojista, error) {
	if len(fields) > 0 {
		res := r.DB.WithContext(ctx).Model(&models.Lojista{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.GetLojista(ctx, id)
}

func (r *GormRepo) DeleteLojista(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Lojista{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
