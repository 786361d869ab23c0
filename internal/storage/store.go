// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/tabledine/internal/models"
)

// ErrNotFound is returned (wrapped) when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the persistence operations used by the services.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	CartStore
	MenuStore
	OrderStore

	// Close releases any resources held by the store.
	Close() error
}

// CartStore persists cart session snapshots.
type CartStore interface {
	// CreateCartSession persists a new session. ID and timestamps are filled in
	// when empty.
	CreateCartSession(ctx context.Context, session *models.CartSession) error

	// GetCartSession returns the session or an error wrapping ErrNotFound.
	GetCartSession(ctx context.Context, id string) (*models.CartSession, error)

	// SaveCartSnapshot replaces the stored snapshot of an existing session.
	SaveCartSnapshot(ctx context.Context, id string, snapshot []byte) error

	// DeleteCartSession removes a session. Deleting a missing session is not an error.
	DeleteCartSession(ctx context.Context, id string) error
}

// MenuStore persists restaurant menus.
type MenuStore interface {
	// UpsertMenuItem inserts or replaces an item keyed by (restaurant, id).
	UpsertMenuItem(ctx context.Context, item *models.MenuItem) error

	// GetMenuItem returns one item or an error wrapping ErrNotFound.
	GetMenuItem(ctx context.Context, restaurant, id string) (*models.MenuItem, error)

	// ListMenu returns a restaurant's items ordered by category then name.
	ListMenu(ctx context.Context, restaurant string) ([]models.MenuItem, error)
}

// OrderStore persists placed orders.
type OrderStore interface {
	// CreateOrder persists an order and its lines atomically.
	// The order.ID and CreatedAt fields are populated when empty.
	CreateOrder(ctx context.Context, order *models.Order) error

	// PlaceOrder persists order and replaces the snapshot of cart session
	// sessionID in one transaction. Either both writes land or neither does.
	PlaceOrder(ctx context.Context, order *models.Order, sessionID string, snapshot []byte) error

	// GetOrder returns an order with its lines or an error wrapping ErrNotFound.
	GetOrder(ctx context.Context, id string) (*models.Order, error)

	// ListOrders returns a restaurant's orders with their lines, newest first.
	// An empty table matches every table.
	ListOrders(ctx context.Context, restaurant, table string) ([]models.Order, error)
}
