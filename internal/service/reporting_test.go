package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/bistro/internal/repo"
)

type fakeStats struct {
	counts  repo.Counts
	revenue decimal.Decimal
	rows    []repo.CategoryRow
	err     error
}

func (f *fakeStats) Counts(context.Context) (repo.Counts, error) { return f.counts, f.err }

func (f *fakeStats) TotalRevenue(context.Context) (decimal.Decimal, error) { return f.revenue, f.err }

func (f *fakeStats) CategoryStats(context.Context) ([]repo.CategoryRow, error) { return f.rows, f.err }

func TestReportingService_AdminStats(t *testing.T) {
	t.Parallel()

	svc := &ReportingService{Repo: &fakeStats{
		counts:  repo.Counts{Users: 3, MenuItems: 7, Orders: 2},
		revenue: decimal.RequireFromString("30.35"),
	}}
	got, err := svc.AdminStats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, got.Users)
	assert.EqualValues(t, 7, got.MenuItems)
	assert.EqualValues(t, 2, got.Orders)
	assert.Equal(t, "30.35", got.Revenue.StringFixed(2))
}

func TestReportingService_AdminStatsEmpty(t *testing.T) {
	t.Parallel()

	svc := &ReportingService{Repo: &fakeStats{revenue: decimal.Zero}}
	got, err := svc.AdminStats(context.Background())
	require.NoError(t, err)
	assert.True(t, got.Revenue.IsZero())
}

func TestReportingService_OrderStatsRounds(t *testing.T) {
	t.Parallel()

	svc := &ReportingService{Repo: &fakeStats{rows: []repo.CategoryRow{
		{Category: "soup", Quantity: 3, Total: decimal.RequireFromString("20.299999999")},
	}}}
	got, err := svc.OrderStats(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "soup", got[0].Category)
	assert.EqualValues(t, 3, got[0].Quantity)
	assert.Equal(t, "20.30", got[0].Revenue.StringFixed(2))
}

func TestReportingService_PropagatesErrors(t *testing.T) {
	t.Parallel()

	svc := &ReportingService{Repo: &fakeStats{err: errStore}}
	_, err := svc.AdminStats(context.Background())
	assert.ErrorIs(t, err, errStore)
	_, err = svc.OrderStats(context.Background())
	assert.ErrorIs(t, err, errStore)
}
