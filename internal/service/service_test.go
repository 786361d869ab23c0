package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/tabledine/internal/cart"
	"github.com/mmynk/tabledine/internal/middleware"
	"github.com/mmynk/tabledine/internal/models"
	"github.com/mmynk/tabledine/internal/rpc"
	"github.com/mmynk/tabledine/internal/session"
	"github.com/mmynk/tabledine/internal/storage/sqlite"
)

const testRestaurant = "cafe-blue"

type testClients struct {
	cart    *rpc.CartServiceClient
	catalog *rpc.CatalogServiceClient
	orders  *rpc.OrderServiceClient
}

// setupTestServer creates a test server backed by a temporary SQLite database
// with a small menu seeded.
func setupTestServer(t *testing.T) (*testClients, func()) {
	t.Helper()

	// Create temp database
	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	for _, item := range testMenu() {
		if err := store.UpsertMenuItem(context.Background(), &item); err != nil {
			t.Fatalf("failed to seed menu: %v", err)
		}
	}

	sessions := session.NewManager("test-secret", time.Hour)
	interceptors := connect.WithInterceptors(middleware.RequireSession(sessions))

	cartPath, cartHandler := rpc.NewCartServiceHandler(NewCartService(store, sessions), interceptors)
	catalogPath, catalogHandler := rpc.NewCatalogServiceHandler(NewCatalogService(store))
	orderPath, orderHandler := rpc.NewOrderServiceHandler(NewOrderService(store), interceptors)

	mux := http.NewServeMux()
	mux.Handle(cartPath, cartHandler)
	mux.Handle(catalogPath, catalogHandler)
	mux.Handle(orderPath, orderHandler)

	server := httptest.NewServer(mux)

	clients := &testClients{
		cart:    rpc.NewCartServiceClient(http.DefaultClient, server.URL),
		catalog: rpc.NewCatalogServiceClient(http.DefaultClient, server.URL),
		orders:  rpc.NewOrderServiceClient(http.DefaultClient, server.URL),
	}

	cleanup := func() {
		server.Close()
		store.Close()
		os.Remove(tmpFile.Name())
	}

	return clients, cleanup
}

func testMenu() []models.MenuItem {
	return []models.MenuItem{
		{
			ID:         "latte",
			Restaurant: testRestaurant,
			Name:       "Latte",
			Category:   "coffee",
			BasePrice:  decimal.RequireFromString("3.20"),
			Available:  true,
			OptionGroups: []models.OptionGroup{
				{
					ID:            "milk",
					Name:          "Milk",
					Required:      true,
					MaxSelections: 1,
					Items: []models.OptionItem{
						{ID: "oat", IngredientID: "ing-oat", IngredientName: "Oat milk", PriceAddition: decimal.RequireFromString("0.50"), InStock: true},
						{ID: "whole", IngredientID: "ing-whole", IngredientName: "Whole milk", PriceAddition: decimal.Zero, InStock: true},
					},
				},
				{
					ID:            "extras",
					Name:          "Extras",
					MaxSelections: 2,
					Items: []models.OptionItem{
						{ID: "shot", IngredientID: "ing-shot", IngredientName: "Espresso shot", PriceAddition: decimal.RequireFromString("0.80"), InStock: true},
						{ID: "vanilla", IngredientID: "ing-vanilla", IngredientName: "Vanilla syrup", PriceAddition: decimal.RequireFromString("0.30"), InStock: true},
						{ID: "caramel", IngredientID: "ing-caramel", IngredientName: "Caramel syrup", PriceAddition: decimal.RequireFromString("0.30"), InStock: false},
					},
				},
			},
		},
		{
			ID:         "bagel",
			Restaurant: testRestaurant,
			Name:       "Bagel",
			Category:   "bakery",
			BasePrice:  decimal.RequireFromString("2.00"),
			Available:  true,
		},
		{
			ID:         "muffin",
			Restaurant: testRestaurant,
			Name:       "Muffin",
			Category:   "bakery",
			BasePrice:  decimal.RequireFromString("2.75"),
			Available:  false,
		},
		{
			ID:         "bagel",
			Restaurant: "other-place",
			Name:       "Bagel",
			Category:   "bakery",
			BasePrice:  decimal.RequireFromString("9.00"),
			Available:  true,
		},
	}
}

// option builds the raw record a client sends for a menu option.
func option(groupID, id, ingredientID, ingredientName, priceAddition string) cart.RawOption {
	return cart.RawOption{
		"id":             id,
		"groupId":        groupID,
		"ingredientId":   ingredientID,
		"ingredientName": ingredientName,
		"priceAddition":  priceAddition,
	}
}

func oatMilk() cart.RawOption {
	return option("milk", "oat", "ing-oat", "Oat milk", "0.50")
}

func wholeMilk() cart.RawOption {
	return option("milk", "whole", "ing-whole", "Whole milk", "0")
}

func startSession(t *testing.T, client *rpc.CartServiceClient, restaurant, table string) (string, *rpc.StartSessionResponse) {
	t.Helper()
	resp, err := client.StartSession(context.Background(), connect.NewRequest(&rpc.StartSessionRequest{
		Restaurant: restaurant,
		Table:      table,
	}))
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	return resp.Msg.Token, resp.Msg
}

// authed wraps msg in a request carrying the session token.
func authed[T any](token string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func expectCode(t *testing.T, err error, code connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %v, got nil", code)
	}
	if connect.CodeOf(err) != code {
		t.Errorf("expected code %v, got %v (%v)", code, connect.CodeOf(err), err)
	}
}

func expectMoney(t *testing.T, label string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("expected %s %s, got %s", label, want, got.String())
	}
}
