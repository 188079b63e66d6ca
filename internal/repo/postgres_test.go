package repo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/bistro/internal/models"
	pkgdb "github.com/Skotchmaster/bistro/pkg/db"
)

// Runs against a real postgres when BISTRO_TEST_DATABASE_URL is set.
func TestPostgres_SettlementAndStats(t *testing.T) {
	dsn := os.Getenv("BISTRO_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("BISTRO_TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := pkgdb.Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pkgdb.Close(db) })

	r := &GormRepo{DB: db}
	require.NoError(t, r.Migrate(ctx))
	require.NoError(t, db.Exec("TRUNCATE TABLE payment_items, payments, cart_entries, menu_items, reviews, users").Error)

	soup := &models.MenuItem{Name: "Soup", Category: "soup", Price: decimal.RequireFromString("4.50")}
	require.NoError(t, r.CreateMenuItem(ctx, soup))
	entry := &models.CartEntry{Email: "a@x.io", MenuItemID: soup.ID, Price: soup.Price}
	require.NoError(t, r.AddCartEntry(ctx, entry))

	require.NoError(t, r.InsertPayment(ctx, &models.Payment{
		Email:         "a@x.io",
		Amount:        decimal.RequireFromString("4.50"),
		TransactionID: "pi_pg",
		CartEntryIDs:  []string{entry.ID},
		MenuItemIDs:   []string{soup.ID},
	}))
	n, err := r.RemoveCartEntries(ctx, []string{entry.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	total, err := r.TotalRevenue(ctx)
	require.NoError(t, err)
	assert.Equal(t, "4.50", total.StringFixed(2))

	rows, err := r.CategoryStats(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.EqualValues(t, 1, rows[0].Quantity)
}
