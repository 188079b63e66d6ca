package repo

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/bistro/internal/models"
)

type Counts struct {
	Users     int64
	MenuItems int64
	Orders    int64
}

type CategoryRow struct {
	Category string
	Quantity int64
	Total    decimal.Decimal
}

func (r *GormRepo) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	db := r.DB.WithContext(ctx)
	if err := db.Model(&models.User{}).Count(&c.Users).Error; err != nil {
		return Counts{}, err
	}
	if err := db.Model(&models.MenuItem{}).Count(&c.MenuItems).Error; err != nil {
		return Counts{}, err
	}
	if err := db.Model(&models.Payment{}).Count(&c.Orders).Error; err != nil {
		return Counts{}, err
	}
	return c, nil
}

// TotalRevenue sums every payment amount in a single pass over the table.
// The sum is done with decimals so the result does not depend on how the
// driver reports an aggregate.
func (r *GormRepo) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	rows, err := r.DB.WithContext(ctx).Model(&models.Payment{}).Select("amount").Rows()
	if err != nil {
		return decimal.Zero, err
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var amount decimal.Decimal
		if err := rows.Scan(&amount); err != nil {
			return decimal.Zero, err
		}
		total = total.Add(amount)
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// CategoryStats joins every payment line with the menu item it references
// today. Lines whose menu item is gone are dropped by the inner join.
func (r *GormRepo) CategoryStats(ctx context.Context) ([]CategoryRow, error) {
	var rows []CategoryRow
	err := r.DB.WithContext(ctx).
		Table("payment_items AS pi").
		Select("m.category AS category, COUNT(*) AS quantity, SUM(m.price) AS total").
		Joins("JOIN payments AS p ON p.id = pi.payment_id").
		Joins("JOIN menu_items AS m ON m.id = pi.menu_item_id").
		Group("m.category").
		Order("m.category ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
