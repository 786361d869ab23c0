package rpc

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tabledine/internal/cart"
	"github.com/mmynk/tabledine/internal/models"
)

// Cart is the diner-facing view of a cart snapshot.
type Cart struct {
	SessionID     string          `json:"sessionId"`
	Lines         []CartLine      `json:"lines"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discounts     decimal.Decimal `json:"discounts"`
	ServiceCharge decimal.Decimal `json:"serviceCharge"`
	Total         decimal.Decimal `json:"total"`
	ItemCount     int             `json:"itemCount"`
}

// CartLine is one row of Cart.
type CartLine struct {
	LineID    string               `json:"lineId"`
	ProductID string               `json:"productId"`
	Name      string               `json:"name"`
	Category  string               `json:"category"`
	BasePrice decimal.Decimal      `json:"basePrice"`
	Price     decimal.Decimal      `json:"price"`
	Quantity  int                  `json:"quantity"`
	LineTotal decimal.Decimal      `json:"lineTotal"`
	Options   []cart.ProductOption `json:"options"`
}

type StartSessionRequest struct {
	Restaurant string `json:"restaurant"`
	Table      string `json:"table"`
}

type StartSessionResponse struct {
	SessionID string `json:"sessionId"`
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
	Cart      *Cart  `json:"cart"`
}

type GetCartRequest struct{}

// CartResponse is returned by every cart mutation.
type CartResponse struct {
	Cart *Cart `json:"cart"`
}

type AddItemRequest struct {
	ProductID string           `json:"productId"`
	Options   []cart.RawOption `json:"options"`
}

type AddItemResponse struct {
	Cart   *Cart  `json:"cart"`
	LineID string `json:"lineId"`
}

type RemoveItemRequest struct {
	LineID string `json:"lineId"`
}

type RemoveOneRequest struct {
	ProductID string `json:"productId"`
}

// UpdateQuantityRequest carries a JSON number; fractional values are truncated
// toward zero.
type UpdateQuantityRequest struct {
	LineID   string  `json:"lineId"`
	Quantity float64 `json:"quantity"`
}

type ClearCartRequest struct{}

type SetAdjustmentsRequest struct {
	Discounts     decimal.Decimal `json:"discounts"`
	ServiceCharge decimal.Decimal `json:"serviceCharge"`
}

type CheckoutRequest struct {
	Note string `json:"note"`
}

type CheckoutResponse struct {
	Order *Order `json:"order"`
}

// Order is the view of a placed order.
type Order struct {
	ID            string          `json:"id"`
	Restaurant    string          `json:"restaurant"`
	Table         string          `json:"table"`
	Lines         []OrderLine     `json:"lines"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discounts     decimal.Decimal `json:"discounts"`
	ServiceCharge decimal.Decimal `json:"serviceCharge"`
	Total         decimal.Decimal `json:"total"`
	Note          string          `json:"note,omitempty"`
	Status        string          `json:"status"`
	CreatedAt     int64           `json:"createdAt"`
}

type OrderLine struct {
	LineID    string          `json:"lineId"`
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
	Options   json.RawMessage `json:"options"`
}

type GetOrderRequest struct {
	OrderID string `json:"orderId"`
}

type GetOrderResponse struct {
	Order *Order `json:"order"`
}

// ListOrdersRequest lists the orders placed at the caller's table.
type ListOrdersRequest struct{}

type ListOrdersResponse struct {
	Orders []*Order `json:"orders"`
}

type ListMenuRequest struct {
	Restaurant         string `json:"restaurant"`
	IncludeUnavailable bool   `json:"includeUnavailable"`
}

type ListMenuResponse struct {
	Items []models.MenuItem `json:"items"`
}

type GetMenuItemRequest struct {
	Restaurant string `json:"restaurant"`
	ProductID  string `json:"productId"`
}

type GetMenuItemResponse struct {
	Item *models.MenuItem `json:"item"`
}

type UpsertMenuItemRequest struct {
	Item models.MenuItem `json:"item"`
}

type UpsertMenuItemResponse struct {
	Item *models.MenuItem `json:"item"`
}
