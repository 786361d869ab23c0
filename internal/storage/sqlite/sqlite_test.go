package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tabledine/internal/models"
	"github.com/mmynk/tabledine/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	// Create temp directory for test database
	tempDir, err := os.MkdirTemp("", "tabledine-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestCartSessions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateCartSession generates ID and timestamps", func(t *testing.T) {
		session := &models.CartSession{Restaurant: "cafe-blue", Table: "T4", Snapshot: []byte(`{"items":[]}`)}
		if err := store.CreateCartSession(ctx, session); err != nil {
			t.Fatalf("CreateCartSession failed: %v", err)
		}
		if session.ID == "" {
			t.Error("Expected session ID to be generated")
		}
		if session.CreatedAt == 0 || session.UpdatedAt == 0 {
			t.Error("Expected timestamps to be set")
		}
	})

	t.Run("SaveCartSnapshot replaces snapshot", func(t *testing.T) {
		session := &models.CartSession{Restaurant: "cafe-blue", Table: "T1", Snapshot: []byte(`{}`)}
		if err := store.CreateCartSession(ctx, session); err != nil {
			t.Fatalf("CreateCartSession failed: %v", err)
		}

		if err := store.SaveCartSnapshot(ctx, session.ID, []byte(`{"total":"5.5"}`)); err != nil {
			t.Fatalf("SaveCartSnapshot failed: %v", err)
		}

		got, err := store.GetCartSession(ctx, session.ID)
		if err != nil {
			t.Fatalf("GetCartSession failed: %v", err)
		}
		if string(got.Snapshot) != `{"total":"5.5"}` {
			t.Errorf("Snapshot = %s", got.Snapshot)
		}
		if got.Restaurant != "cafe-blue" || got.Table != "T1" {
			t.Errorf("Unexpected session scope: %+v", got)
		}
	})

	t.Run("missing session", func(t *testing.T) {
		if _, err := store.GetCartSession(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetCartSession error = %v, want ErrNotFound", err)
		}
		if err := store.SaveCartSnapshot(ctx, "nope", []byte(`{}`)); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("SaveCartSnapshot error = %v, want ErrNotFound", err)
		}
	})

	t.Run("DeleteCartSession", func(t *testing.T) {
		session := &models.CartSession{Restaurant: "cafe-blue", Table: "T2", Snapshot: []byte(`{}`)}
		if err := store.CreateCartSession(ctx, session); err != nil {
			t.Fatalf("CreateCartSession failed: %v", err)
		}
		if err := store.DeleteCartSession(ctx, session.ID); err != nil {
			t.Fatalf("DeleteCartSession failed: %v", err)
		}
		if _, err := store.GetCartSession(ctx, session.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected session to be gone, got %v", err)
		}
	})
}

func TestMenu(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	latte := &models.MenuItem{
		ID:         "latte",
		Restaurant: "cafe-blue",
		Name:       "Latte",
		Category:   "coffee",
		BasePrice:  decimal.RequireFromString("3.20"),
		Available:  true,
		OptionGroups: []models.OptionGroup{{
			ID: "milk", Name: "Milk", MaxSelections: 1,
			Items: []models.OptionItem{{ID: "oat", IngredientID: "ing-oat", IngredientName: "Oat Milk", PriceAddition: decimal.RequireFromString("0.50"), InStock: true}},
		}},
	}
	scone := &models.MenuItem{ID: "scone", Restaurant: "cafe-blue", Name: "Scone", Category: "bakery", BasePrice: decimal.RequireFromString("2.75")}
	other := &models.MenuItem{ID: "latte", Restaurant: "bakery-two", Name: "Latte", BasePrice: decimal.RequireFromString("4")}

	for _, item := range []*models.MenuItem{latte, scone, other} {
		if err := store.UpsertMenuItem(ctx, item); err != nil {
			t.Fatalf("UpsertMenuItem failed: %v", err)
		}
	}

	t.Run("GetMenuItem round-trips option groups", func(t *testing.T) {
		got, err := store.GetMenuItem(ctx, "cafe-blue", "latte")
		if err != nil {
			t.Fatalf("GetMenuItem failed: %v", err)
		}
		if !got.BasePrice.Equal(latte.BasePrice) {
			t.Errorf("BasePrice = %s, want %s", got.BasePrice, latte.BasePrice)
		}
		if !got.Available {
			t.Error("Expected item to be available")
		}
		if len(got.OptionGroups) != 1 || len(got.OptionGroups[0].Items) != 1 {
			t.Fatalf("Unexpected option groups: %+v", got.OptionGroups)
		}
		if add := got.OptionGroups[0].Items[0].PriceAddition; !add.Equal(decimal.RequireFromString("0.5")) {
			t.Errorf("PriceAddition = %s, want 0.50", add)
		}
	})

	t.Run("ListMenu is tenant scoped and ordered", func(t *testing.T) {
		items, err := store.ListMenu(ctx, "cafe-blue")
		if err != nil {
			t.Fatalf("ListMenu failed: %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("Expected 2 items, got %d", len(items))
		}
		if items[0].ID != "scone" || items[1].ID != "latte" {
			t.Errorf("Unexpected order: %s, %s", items[0].ID, items[1].ID)
		}
	})

	t.Run("Upsert replaces existing item", func(t *testing.T) {
		scone.BasePrice = decimal.RequireFromString("3.10")
		scone.Available = false
		if err := store.UpsertMenuItem(ctx, scone); err != nil {
			t.Fatalf("UpsertMenuItem failed: %v", err)
		}
		got, err := store.GetMenuItem(ctx, "cafe-blue", "scone")
		if err != nil {
			t.Fatalf("GetMenuItem failed: %v", err)
		}
		if !got.BasePrice.Equal(decimal.RequireFromString("3.1")) || got.Available {
			t.Errorf("Upsert did not replace item: %+v", got)
		}
	})

	t.Run("missing item", func(t *testing.T) {
		if _, err := store.GetMenuItem(ctx, "cafe-blue", "cake"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetMenuItem error = %v, want ErrNotFound", err)
		}
	})
}

func TestOrders(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	order := &models.Order{
		Restaurant:    "cafe-blue",
		Table:         "T4",
		SessionID:     "session-1",
		Subtotal:      decimal.RequireFromString("5.50"),
		Discounts:     decimal.Zero,
		ServiceCharge: decimal.RequireFromString("0.55"),
		Total:         decimal.RequireFromString("6.05"),
		Lines: []models.OrderLine{
			{LineID: "coffee::base", ProductID: "coffee", Name: "Coffee", BasePrice: decimal.RequireFromString("2.5"), Price: decimal.RequireFromString("2.5"), Quantity: 1},
			{LineID: "coffee::milk:oat", ProductID: "coffee", Name: "Coffee", BasePrice: decimal.RequireFromString("2.5"), Price: decimal.RequireFromString("3"), Quantity: 1, Options: []byte(`[{"id":"oat"}]`)},
		},
	}

	if err := store.CreateOrder(ctx, order); err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if order.ID == "" || order.CreatedAt == 0 {
		t.Fatal("Expected ID and CreatedAt to be generated")
	}
	if order.Status != models.OrderPending {
		t.Errorf("Status = %q, want pending", order.Status)
	}

	t.Run("GetOrder retrieves lines in order", func(t *testing.T) {
		got, err := store.GetOrder(ctx, order.ID)
		if err != nil {
			t.Fatalf("GetOrder failed: %v", err)
		}
		if !got.Total.Equal(order.Total) {
			t.Errorf("Total = %s, want %s", got.Total, order.Total)
		}
		if len(got.Lines) != 2 {
			t.Fatalf("Expected 2 lines, got %d", len(got.Lines))
		}
		if got.Lines[1].LineID != "coffee::milk:oat" || string(got.Lines[1].Options) != `[{"id":"oat"}]` {
			t.Errorf("Unexpected second line: %+v", got.Lines[1])
		}
		if string(got.Lines[0].Options) != "[]" {
			t.Errorf("Empty options stored as %q, want []", got.Lines[0].Options)
		}
	})

	t.Run("ListOrders filters by table", func(t *testing.T) {
		second := &models.Order{Restaurant: "cafe-blue", Table: "T9", SessionID: "session-2", Total: decimal.NewFromInt(1)}
		if err := store.CreateOrder(ctx, second); err != nil {
			t.Fatalf("CreateOrder failed: %v", err)
		}

		all, err := store.ListOrders(ctx, "cafe-blue", "")
		if err != nil {
			t.Fatalf("ListOrders failed: %v", err)
		}
		if len(all) != 2 {
			t.Fatalf("Expected 2 orders, got %d", len(all))
		}
		for _, o := range all {
			switch o.ID {
			case order.ID:
				if len(o.Lines) != 2 || o.Lines[1].LineID != "coffee::milk:oat" || o.Lines[1].Quantity != 1 {
					t.Errorf("Unexpected lines for first order: %+v", o.Lines)
				}
			case second.ID:
				if o.Lines == nil || len(o.Lines) != 0 {
					t.Errorf("Expected empty non-nil lines for second order, got %+v", o.Lines)
				}
			}
		}

		table, err := store.ListOrders(ctx, "cafe-blue", "T9")
		if err != nil {
			t.Fatalf("ListOrders failed: %v", err)
		}
		if len(table) != 1 || table[0].ID != second.ID {
			t.Errorf("Unexpected table orders: %+v", table)
		}

		none, err := store.ListOrders(ctx, "bakery-two", "")
		if err != nil {
			t.Fatalf("ListOrders failed: %v", err)
		}
		if len(none) != 0 {
			t.Errorf("Expected no orders for other tenant, got %d", len(none))
		}
	})

	t.Run("missing order", func(t *testing.T) {
		if _, err := store.GetOrder(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetOrder error = %v, want ErrNotFound", err)
		}
	})
}

func TestPlaceOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	session := &models.CartSession{Restaurant: "cafe-blue", Table: "T2", Snapshot: []byte(`{"items":[{"lineId":"tea::base"}]}`)}
	if err := store.CreateCartSession(ctx, session); err != nil {
		t.Fatalf("CreateCartSession failed: %v", err)
	}

	newOrder := func() *models.Order {
		return &models.Order{
			Restaurant: "cafe-blue",
			Table:      "T2",
			SessionID:  session.ID,
			Subtotal:   decimal.RequireFromString("2"),
			Total:      decimal.RequireFromString("2"),
			Lines: []models.OrderLine{
				{LineID: "tea::base", ProductID: "tea", Name: "Tea", BasePrice: decimal.RequireFromString("2"), Price: decimal.RequireFromString("2"), Quantity: 1},
			},
		}
	}

	t.Run("missing session rolls back the order", func(t *testing.T) {
		order := newOrder()
		err := store.PlaceOrder(ctx, order, "no-such-session", []byte(`{"items":[]}`))
		if !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("PlaceOrder error = %v, want ErrNotFound", err)
		}
		if _, err := store.GetOrder(ctx, order.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected order to be rolled back, GetOrder error = %v", err)
		}
	})

	t.Run("stores order and clears cart together", func(t *testing.T) {
		order := newOrder()
		if err := store.PlaceOrder(ctx, order, session.ID, []byte(`{"items":[]}`)); err != nil {
			t.Fatalf("PlaceOrder failed: %v", err)
		}

		got, err := store.GetOrder(ctx, order.ID)
		if err != nil {
			t.Fatalf("GetOrder failed: %v", err)
		}
		if len(got.Lines) != 1 {
			t.Errorf("Expected 1 line, got %d", len(got.Lines))
		}

		stored, err := store.GetCartSession(ctx, session.ID)
		if err != nil {
			t.Fatalf("GetCartSession failed: %v", err)
		}
		if string(stored.Snapshot) != `{"items":[]}` {
			t.Errorf("Snapshot = %s, want cleared cart", stored.Snapshot)
		}
	})

	orders, err := store.ListOrders(ctx, "cafe-blue", "T2")
	if err != nil {
		t.Fatalf("ListOrders failed: %v", err)
	}
	if len(orders) != 1 {
		t.Errorf("Expected exactly 1 stored order, got %d", len(orders))
	}
}
