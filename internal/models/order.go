package models

import "github.com/shopspring/decimal"

// Order statuses.
const (
	OrderPending = "pending"
)

// Order is a checked-out cart.
type Order struct {
	// ID is the unique identifier for the order (UUID format).
	ID string

	// Restaurant is the tenant slug the order was placed at.
	Restaurant string

	// Table is the table label from the QR code.
	Table string

	// SessionID is the cart session that produced the order.
	SessionID string

	Lines []OrderLine

	Subtotal      decimal.Decimal
	Discounts     decimal.Decimal
	ServiceCharge decimal.Decimal
	Total         decimal.Decimal

	Note   string
	Status string

	// CreatedAt is the Unix timestamp when the order was placed.
	CreatedAt int64
}

// OrderLine is a frozen copy of a cart line.
type OrderLine struct {
	LineID    string
	ProductID string
	Name      string
	Category  string
	BasePrice decimal.Decimal
	Price     decimal.Decimal
	Quantity  int

	// Options is the JSON encoding of the line's selected options.
	Options []byte
}

// LineTotal is price x quantity.
func (l OrderLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
