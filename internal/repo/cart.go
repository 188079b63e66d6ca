package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/bistro/internal/models"
)

func (r *GormRepo) AddCartEntry(ctx context.Context, entry *models.CartEntry) error {
	return r.DB.WithContext(ctx).Create(entry).Error
}

func (r *GormRepo) ListCart(ctx context.Context, email string) ([]models.CartEntry, error) {
	var entries []models.CartEntry
	if err := r.DB.WithContext(ctx).Where("email = ?", email).Order("created_at ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *GormRepo) GetCartEntry(ctx context.Context, id string) (*models.CartEntry, error) {
	var entry models.CartEntry
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *GormRepo) RemoveCartEntry(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.CartEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RemoveCartEntries deletes every listed entry and returns how many existed.
// Absent ids are not an error.
func (r *GormRepo) RemoveCartEntries(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.DB.WithContext(ctx).Where("id IN ?", ids).Delete(&models.CartEntry{})
	return res.RowsAffected, res.Error
}
