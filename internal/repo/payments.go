package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/bistro/internal/models"
)

// InsertPayment stores the payment and its ordered line items. It never
// touches cart entries.
func (r *GormRepo) InsertPayment(ctx context.Context, p *models.Payment) error {
	p.Items = make([]models.PaymentItem, len(p.MenuItemIDs))
	for i, id := range p.MenuItemIDs {
		p.Items[i] = models.PaymentItem{Position: i, MenuItemID: id}
	}
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *GormRepo) ListPayments(ctx context.Context, email string) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("email = ?", email).
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *GormRepo) GetPayment(ctx context.Context, id string) (*models.Payment, error) {
	var p models.Payment
	err := r.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}
