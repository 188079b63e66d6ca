package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/bistro/internal/models"
	"github.com/Skotchmaster/bistro/internal/transport"
	"github.com/Skotchmaster/bistro/pkg/events"
	"github.com/Skotchmaster/bistro/pkg/logging"
)

type MenuRepo interface {
	ListMenu(ctx context.Context, category string) ([]models.MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error)
	CreateMenuItem(ctx context.Context, item *models.MenuItem) error
	PatchMenuItem(ctx context.Context, id string, req transport.PatchMenuItemRequest) (*models.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id string) error
	ListReviews(ctx context.Context) ([]models.Review, error)
}

// MenuIndex mirrors menu writes into a full-text index.
type MenuIndex interface {
	IndexMenuItem(ctx context.Context, item *models.MenuItem) error
	DeleteMenuItem(ctx context.Context, id string) error
	SearchMenu(ctx context.Context, query string, from, size int) (int64, []models.MenuItem, error)
}

type MenuService struct {
	Repo   MenuRepo
	Index  MenuIndex
	Events events.Publisher
}

func (s *MenuService) List(ctx context.Context, category string) ([]models.MenuItem, error) {
	return s.Repo.ListMenu(ctx, strings.TrimSpace(category))
}

func (s *MenuService) Get(ctx context.Context, id string) (*models.MenuItem, error) {
	item, err := s.Repo.GetMenuItem(ctx, id)
	if err != nil {
		return nil, notFound(err, "menu item")
	}
	return item, nil
}

func (s *MenuService) Create(ctx context.Context, req transport.CreateMenuItemRequest) (*models.MenuItem, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if strings.TrimSpace(req.Category) == "" {
		return nil, fmt.Errorf("%w: category required", ErrValidation)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}

	item := &models.MenuItem{
		Name:     req.Name,
		Image:    req.Image,
		Price:    req.Price,
		Category: req.Category,
		Recipe:   req.Recipe,
	}
	if err := s.Repo.CreateMenuItem(ctx, item); err != nil {
		return nil, err
	}

	s.reindex(ctx, item)
	s.publish(ctx, "menu_item_created", item.ID)
	return item, nil
}

func (s *MenuService) Patch(ctx context.Context, id string, req transport.PatchMenuItemRequest) (*models.MenuItem, error) {
	if req.Price != nil && req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
	}
	if req.Category != nil && strings.TrimSpace(*req.Category) == "" {
		return nil, fmt.Errorf("%w: category must not be empty", ErrValidation)
	}

	item, err := s.Repo.PatchMenuItem(ctx, id, req)
	if err != nil {
		return nil, notFound(err, "menu item")
	}

	s.reindex(ctx, item)
	s.publish(ctx, "menu_item_updated", item.ID)
	return item, nil
}

func (s *MenuService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.DeleteMenuItem(ctx, id); err != nil {
		return notFound(err, "menu item")
	}

	if s.Index != nil {
		if err := s.Index.DeleteMenuItem(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("menu_unindex_error", "svc", "menu.delete", "menu_item_id", id, "error", err)
		}
	}
	s.publish(ctx, "menu_item_deleted", id)
	return nil
}

func (s *MenuService) Search(ctx context.Context, query string, from, size int) (int64, []models.MenuItem, error) {
	if strings.TrimSpace(query) == "" {
		return 0, nil, fmt.Errorf("%w: query required", ErrValidation)
	}
	if s.Index == nil {
		return 0, nil, fmt.Errorf("%w: search index not configured", ErrNotFound)
	}
	return s.Index.SearchMenu(ctx, query, from, size)
}

func (s *MenuService) Reviews(ctx context.Context) ([]models.Review, error) {
	return s.Repo.ListReviews(ctx)
}

func (s *MenuService) reindex(ctx context.Context, item *models.MenuItem) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexMenuItem(ctx, item); err != nil {
		logging.FromContext(ctx).Warn("menu_index_error", "svc", "menu.reindex", "menu_item_id", item.ID, "error", err)
	}
}

func (s *MenuService) publish(ctx context.Context, typ, id string) {
	if s.Events == nil {
		return
	}
	event := map[string]any{
		"type":       typ,
		"menuItemID": id,
	}
	if err := s.Events.PublishEvent(ctx, events.TopicMenu, id, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "topic", events.TopicMenu, "error", err)
	}
}
