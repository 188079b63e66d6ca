package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/bistro/internal/models"
	"github.com/Skotchmaster/bistro/pkg/events"
	"github.com/Skotchmaster/bistro/pkg/logging"
)

type CartRepo interface {
	AddCartEntry(ctx context.Context, entry *models.CartEntry) error
	ListCart(ctx context.Context, email string) ([]models.CartEntry, error)
	GetCartEntry(ctx context.Context, id string) (*models.CartEntry, error)
	RemoveCartEntry(ctx context.Context, id string) error
	RemoveCartEntries(ctx context.Context, ids []string) (int64, error)
}

type MenuReader interface {
	GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error)
}

type CartService struct {
	Repo   CartRepo
	Menu   MenuReader
	Events events.Publisher
}

// Add snapshots name, image and price of the menu item as it is right now.
// Adding the same item twice yields two entries.
func (s *CartService) Add(ctx context.Context, email, menuItemID string) (*models.CartEntry, error) {
	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("%w: email required", ErrValidation)
	}
	if menuItemID == "" {
		return nil, fmt.Errorf("%w: menu_item_id required", ErrValidation)
	}

	item, err := s.Menu.GetMenuItem(ctx, menuItemID)
	if err != nil {
		return nil, notFound(err, "menu item")
	}

	entry := &models.CartEntry{
		Email:      email,
		MenuItemID: item.ID,
		Name:       item.Name,
		Image:      item.Image,
		Price:      item.Price,
	}
	if err := s.Repo.AddCartEntry(ctx, entry); err != nil {
		return nil, err
	}

	s.publish(ctx, "cart_item_added", entry)
	return entry, nil
}

func (s *CartService) ListByOwner(ctx context.Context, email string) ([]models.CartEntry, error) {
	return s.Repo.ListCart(ctx, email)
}

func (s *CartService) Get(ctx context.Context, id string) (*models.CartEntry, error) {
	entry, err := s.Repo.GetCartEntry(ctx, id)
	if err != nil {
		return nil, notFound(err, "cart entry")
	}
	return entry, nil
}

// RemoveOne does not check ownership; callers authorize against the entry
// owner first.
func (s *CartService) RemoveOne(ctx context.Context, id string) error {
	if err := s.Repo.RemoveCartEntry(ctx, id); err != nil {
		return notFound(err, "cart entry")
	}
	return nil
}

func (s *CartService) RemoveMany(ctx context.Context, ids []string) (int64, error) {
	return s.Repo.RemoveCartEntries(ctx, ids)
}

// Total sums the snapshot prices of the entries.
func Total(entries []models.CartEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Price)
	}
	return total
}

func (s *CartService) publish(ctx context.Context, typ string, entry *models.CartEntry) {
	if s.Events == nil {
		return
	}
	event := map[string]any{
		"type":        typ,
		"email":       entry.Email,
		"cartEntryID": entry.ID,
		"menuItemID":  entry.MenuItemID,
	}
	if err := s.Events.PublishEvent(ctx, events.TopicCarts, entry.Email, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "topic", events.TopicCarts, "error", err)
	}
}
