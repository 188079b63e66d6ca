package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/bistro/internal/models"
	"github.com/Skotchmaster/bistro/pkg/events"
)

func newCartService() (*CartService, *memCart, *memPublisher) {
	cart := newMemCart()
	pub := &memPublisher{}
	menu := &memMenu{items: map[string]models.MenuItem{
		"m1": {ID: "m1", Name: "Soup", Image: "soup.png", Price: decimal.RequireFromString("4.50"), Category: "soup"},
	}}
	return &CartService{Repo: cart, Menu: menu, Events: pub}, cart, pub
}

func TestCartService_AddSnapshotsMenuItem(t *testing.T) {
	t.Parallel()

	svc, _, pub := newCartService()
	ctx := context.Background()

	first, err := svc.Add(ctx, "a@x.io", "m1")
	require.NoError(t, err)
	second, err := svc.Add(ctx, "a@x.io", "m1")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "Soup", first.Name)
	assert.Equal(t, "soup.png", first.Image)
	assert.True(t, decimal.RequireFromString("4.5").Equal(first.Price))

	entries, err := svc.ListByOwner(ctx, "a@x.io")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "9.00", Total(entries).StringFixed(2))

	ev := pub.last()
	assert.Equal(t, events.TopicCarts, ev.Topic)
	assert.Equal(t, "cart_item_added", ev.Event["type"])
}

func TestCartService_AddErrors(t *testing.T) {
	t.Parallel()

	svc, _, _ := newCartService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "", "m1")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Add(ctx, "a@x.io", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Add(ctx, "a@x.io", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCartService_Remove(t *testing.T) {
	t.Parallel()

	svc, cart, _ := newCartService()
	ctx := context.Background()

	e, err := svc.Add(ctx, "a@x.io", "m1")
	require.NoError(t, err)

	got, err := svc.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.io", got.Email)

	require.NoError(t, svc.RemoveOne(ctx, e.ID))
	assert.ErrorIs(t, svc.RemoveOne(ctx, e.ID), ErrNotFound)

	_, err = svc.Get(ctx, e.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	n, err := svc.RemoveMany(ctx, []string{e.ID})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, cart.entries)
}

func TestTotal_Empty(t *testing.T) {
	t.Parallel()
	assert.True(t, Total(nil).IsZero())
}
