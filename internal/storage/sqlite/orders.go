package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tabledine/internal/models"
	"github.com/mmynk/tabledine/internal/storage"
)

// CreateOrder persists a new order and its lines in one transaction.
func (s *SQLiteStore) CreateOrder(ctx context.Context, order *models.Order) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertOrder(ctx, tx, order); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// PlaceOrder persists order and replaces the snapshot of cart session
// sessionID in the same transaction. Nothing is written if either fails.
func (s *SQLiteStore) PlaceOrder(ctx context.Context, order *models.Order, sessionID string, snapshot []byte) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertOrder(ctx, tx, order); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx,
		"UPDATE cart_sessions SET snapshot = ?, updated_at = ? WHERE id = ?",
		string(snapshot), time.Now().Unix(), sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to save cart snapshot: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("cart session %s: %w", sessionID, storage.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertOrder(ctx context.Context, tx *sql.Tx, order *models.Order) error {
	// Generate ID if not set
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.CreatedAt == 0 {
		order.CreatedAt = time.Now().Unix()
	}
	if order.Status == "" {
		order.Status = models.OrderPending
	}

	_, err := tx.ExecContext(ctx,
		`INSERT INTO orders (id, restaurant, table_label, session_id, subtotal, discounts, service_charge, total, note, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.Restaurant, order.Table, order.SessionID,
		order.Subtotal.String(), order.Discounts.String(), order.ServiceCharge.String(), order.Total.String(),
		order.Note, order.Status, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for i, line := range order.Lines {
		options := line.Options
		if len(options) == 0 {
			options = []byte("[]")
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_lines (order_id, position, line_id, product_id, name, category, base_price, price, quantity, options)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			order.ID, i, line.LineID, line.ProductID, line.Name, line.Category,
			line.BasePrice.String(), line.Price.String(), line.Quantity, string(options),
		)
		if err != nil {
			return fmt.Errorf("failed to insert order line: %w", err)
		}
	}
	return nil
}

const orderColumns = `id, restaurant, table_label, session_id, subtotal, discounts, service_charge, total, note, status, created_at`

func scanOrder(row rowScanner) (*models.Order, error) {
	o := &models.Order{}
	err := row.Scan(
		&o.ID, &o.Restaurant, &o.Table, &o.SessionID,
		&o.Subtotal, &o.Discounts, &o.ServiceCharge, &o.Total,
		&o.Note, &o.Status, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// GetOrder retrieves an order including its lines.
func (s *SQLiteStore) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	order, err := scanOrder(s.db.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE id = ?", id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("order %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	order.Lines, err = s.orderLines(ctx, id)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// orderLines loads the lines of one order in position order.
func (s *SQLiteStore) orderLines(ctx context.Context, orderID string) ([]models.OrderLine, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT line_id, product_id, name, category, base_price, price, quantity, options
		 FROM order_lines WHERE order_id = ? ORDER BY position`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get order lines: %w", err)
	}
	defer rows.Close()

	lines := []models.OrderLine{}
	for rows.Next() {
		var line models.OrderLine
		var options string
		if err := rows.Scan(&line.LineID, &line.ProductID, &line.Name, &line.Category,
			&line.BasePrice, &line.Price, &line.Quantity, &options); err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		line.Options = []byte(options)
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order lines: %w", err)
	}
	return lines, nil
}

// ListOrders lists a restaurant's orders with their lines, newest first.
func (s *SQLiteStore) ListOrders(ctx context.Context, restaurant, table string) ([]models.Order, error) {
	orders, err := s.listOrderRows(ctx, restaurant, table)
	if err != nil {
		return nil, err
	}

	// The store holds a single connection, so lines are read only after the
	// order rows are closed.
	for i := range orders {
		orders[i].Lines, err = s.orderLines(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (s *SQLiteStore) listOrderRows(ctx context.Context, restaurant, table string) ([]models.Order, error) {
	query := "SELECT " + orderColumns + " FROM orders WHERE restaurant = ?"
	args := []any{restaurant}
	if table != "" {
		query += " AND table_label = ?"
		args = append(args, table)
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}
	return orders, nil
}
