package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/bistro/internal/repo"
	"github.com/Skotchmaster/bistro/internal/transport"
)

type StatsRepo interface {
	Counts(ctx context.Context) (repo.Counts, error)
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
	CategoryStats(ctx context.Context) ([]repo.CategoryRow, error)
}

type ReportingService struct {
	Repo StatsRepo
}

func (s *ReportingService) AdminStats(ctx context.Context) (*transport.AdminStatsResponse, error) {
	counts, err := s.Repo.Counts(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.Repo.TotalRevenue(ctx)
	if err != nil {
		return nil, err
	}
	return &transport.AdminStatsResponse{
		Users:     counts.Users,
		MenuItems: counts.MenuItems,
		Orders:    counts.Orders,
		Revenue:   revenue.Round(2),
	}, nil
}

// OrderStats groups sold line items by the current category of their menu
// item. Recategorizing an item moves its past sales with it.
func (s *ReportingService) OrderStats(ctx context.Context) ([]transport.CategoryStat, error) {
	rows, err := s.Repo.CategoryStats(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]transport.CategoryStat, 0, len(rows))
	for _, r := range rows {
		out = append(out, transport.CategoryStat{
			Category: r.Category,
			Quantity: r.Quantity,
			Revenue:  r.Total.Round(2),
		})
	}
	return out, nil
}
