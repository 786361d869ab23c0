package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tabledine/internal/catalog"
	"github.com/mmynk/tabledine/internal/models"
	"github.com/mmynk/tabledine/internal/rpc"
	"github.com/mmynk/tabledine/internal/storage"
)

// CatalogService implements the Connect CatalogService
type CatalogService struct {
	store storage.MenuStore
}

var _ rpc.CatalogServiceHandler = (*CatalogService)(nil)

// NewCatalogService creates a new CatalogService with the given menu store.
func NewCatalogService(store storage.MenuStore) *CatalogService {
	return &CatalogService{store: store}
}

// ListMenu returns a restaurant's menu. Unavailable items are hidden unless asked for.
func (s *CatalogService) ListMenu(ctx context.Context, req *connect.Request[rpc.ListMenuRequest]) (*connect.Response[rpc.ListMenuResponse], error) {
	restaurant := strings.TrimSpace(req.Msg.Restaurant)
	if restaurant == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("restaurant is required"))
	}

	items, err := s.store.ListMenu(ctx, restaurant)
	if err != nil {
		slog.Error("ListMenu failed", "restaurant", restaurant, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	visible := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		if item.Available || req.Msg.IncludeUnavailable {
			visible = append(visible, item)
		}
	}

	return connect.NewResponse(&rpc.ListMenuResponse{Items: visible}), nil
}

// GetMenuItem returns one menu item.
func (s *CatalogService) GetMenuItem(ctx context.Context, req *connect.Request[rpc.GetMenuItemRequest]) (*connect.Response[rpc.GetMenuItemResponse], error) {
	item, err := s.store.GetMenuItem(ctx, req.Msg.Restaurant, req.Msg.ProductID)
	if err != nil {
		return nil, storageError("GetMenuItem", err)
	}
	return connect.NewResponse(&rpc.GetMenuItemResponse{Item: item}), nil
}

// UpsertMenuItem validates and stores a menu item.
func (s *CatalogService) UpsertMenuItem(ctx context.Context, req *connect.Request[rpc.UpsertMenuItemRequest]) (*connect.Response[rpc.UpsertMenuItemResponse], error) {
	item := req.Msg.Item
	if err := catalog.Validate(&item); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	if err := s.store.UpsertMenuItem(ctx, &item); err != nil {
		slog.Error("UpsertMenuItem failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Menu item saved", "restaurant", item.Restaurant, "product_id", item.ID)
	return connect.NewResponse(&rpc.UpsertMenuItemResponse{Item: &item}), nil
}
