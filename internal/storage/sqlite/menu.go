package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/tabledine/internal/models"
	"github.com/mmynk/tabledine/internal/storage"
)

// UpsertMenuItem inserts or replaces a menu item.
func (s *SQLiteStore) UpsertMenuItem(ctx context.Context, item *models.MenuItem) error {
	groups := item.OptionGroups
	if groups == nil {
		groups = []models.OptionGroup{}
	}
	groupsJSON, err := json.Marshal(groups)
	if err != nil {
		return fmt.Errorf("failed to encode option groups: %w", err)
	}
	item.UpdatedAt = time.Now().Unix()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO menu_items (restaurant, id, name, category, description, image, base_price, available, option_groups, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (restaurant, id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			description = excluded.description,
			image = excluded.image,
			base_price = excluded.base_price,
			available = excluded.available,
			option_groups = excluded.option_groups,
			updated_at = excluded.updated_at
	`,
		item.Restaurant, item.ID, item.Name, item.Category, item.Description, item.Image,
		item.BasePrice.String(), item.Available, string(groupsJSON), item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert menu item: %w", err)
	}
	return nil
}

const menuColumns = `restaurant, id, name, category, description, image, base_price, available, option_groups, updated_at`

// GetMenuItem retrieves a single menu item.
func (s *SQLiteStore) GetMenuItem(ctx context.Context, restaurant, id string) (*models.MenuItem, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+menuColumns+" FROM menu_items WHERE restaurant = ? AND id = ?",
		restaurant, id,
	)

	item, err := scanMenuItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("menu item %s/%s: %w", restaurant, id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	return item, nil
}

// ListMenu returns every item of a restaurant.
func (s *SQLiteStore) ListMenu(ctx context.Context, restaurant string) ([]models.MenuItem, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+menuColumns+" FROM menu_items WHERE restaurant = ? ORDER BY category, name",
		restaurant,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu: %w", err)
	}
	defer rows.Close()

	items := []models.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate menu items: %w", err)
	}
	return items, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMenuItem(row rowScanner) (*models.MenuItem, error) {
	item := &models.MenuItem{}
	var groupsJSON string

	err := row.Scan(
		&item.Restaurant, &item.ID, &item.Name, &item.Category, &item.Description, &item.Image,
		&item.BasePrice, &item.Available, &groupsJSON, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(groupsJSON), &item.OptionGroups); err != nil {
		return nil, fmt.Errorf("failed to decode option groups: %w", err)
	}
	return item, nil
}
