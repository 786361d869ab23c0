package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// Money columns are TEXT holding decimal strings.
const schema = `
CREATE TABLE IF NOT EXISTS menu_items (
    restaurant TEXT NOT NULL,
    id TEXT NOT NULL,
    name TEXT NOT NULL,
    category TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    image TEXT NOT NULL DEFAULT '',
    base_price TEXT NOT NULL,
    available INTEGER NOT NULL DEFAULT 1,
    option_groups TEXT NOT NULL DEFAULT '[]',
    updated_at INTEGER NOT NULL,
    PRIMARY KEY (restaurant, id)
);

CREATE TABLE IF NOT EXISTS cart_sessions (
    id TEXT PRIMARY KEY,
    restaurant TEXT NOT NULL,
    table_label TEXT NOT NULL,
    snapshot TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS orders (
    id TEXT PRIMARY KEY,
    restaurant TEXT NOT NULL,
    table_label TEXT NOT NULL,
    session_id TEXT NOT NULL,
    subtotal TEXT NOT NULL,
    discounts TEXT NOT NULL,
    service_charge TEXT NOT NULL,
    total TEXT NOT NULL,
    note TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS order_lines (
    order_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    line_id TEXT NOT NULL,
    product_id TEXT NOT NULL,
    name TEXT NOT NULL,
    category TEXT NOT NULL DEFAULT '',
    base_price TEXT NOT NULL,
    price TEXT NOT NULL,
    quantity INTEGER NOT NULL,
    options TEXT NOT NULL DEFAULT '[]',
    PRIMARY KEY (order_id, position),
    FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_menu_items_restaurant ON menu_items(restaurant);
CREATE INDEX IF NOT EXISTS idx_cart_sessions_updated_at ON cart_sessions(updated_at);
CREATE INDEX IF NOT EXISTS idx_orders_restaurant ON orders(restaurant, table_label);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
