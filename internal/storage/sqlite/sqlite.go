// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/tabledine/internal/models"
	"github.com/mmynk/tabledine/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Concurrent writers queue on the pool instead of failing with SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateCartSession persists a new cart session.
func (s *SQLiteStore) CreateCartSession(ctx context.Context, session *models.CartSession) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if session.CreatedAt == 0 {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cart_sessions (id, restaurant, table_label, snapshot, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		session.ID, session.Restaurant, session.Table, string(session.Snapshot),
		session.CreatedAt, session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert cart session: %w", err)
	}
	return nil
}

// GetCartSession retrieves a cart session by ID.
func (s *SQLiteStore) GetCartSession(ctx context.Context, id string) (*models.CartSession, error) {
	session := &models.CartSession{}
	var snapshot string

	err := s.db.QueryRowContext(ctx,
		`SELECT id, restaurant, table_label, snapshot, created_at, updated_at
		 FROM cart_sessions WHERE id = ?`,
		id,
	).Scan(&session.ID, &session.Restaurant, &session.Table, &snapshot, &session.CreatedAt, &session.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("cart session %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart session: %w", err)
	}

	session.Snapshot = []byte(snapshot)
	return session, nil
}

// SaveCartSnapshot replaces the snapshot of an existing session.
func (s *SQLiteStore) SaveCartSnapshot(ctx context.Context, id string, snapshot []byte) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE cart_sessions SET snapshot = ?, updated_at = ? WHERE id = ?",
		string(snapshot), time.Now().Unix(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to save cart snapshot: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("cart session %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

// DeleteCartSession removes a cart session.
func (s *SQLiteStore) DeleteCartSession(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM cart_sessions WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete cart session: %w", err)
	}
	return nil
}
