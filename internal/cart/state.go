package cart

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/tabledine/internal/money"
)

// Product is the payload of an AddItem action: a menu item as priced by the caller.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`

	// Price is the unit price including option additions.
	Price decimal.Decimal `json:"price"`

	// BasePrice is the unit price before options. Price is used when unset.
	BasePrice decimal.NullDecimal `json:"basePrice"`

	SelectedOptions []ProductOption `json:"selectedOptions,omitempty"`
}

// Line is one distinct (product, option selection) row in the cart.
type Line struct {
	LineID          string          `json:"lineId"`
	ProductID       string          `json:"id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	BasePrice       decimal.Decimal `json:"basePrice"`
	Price           decimal.Decimal `json:"price"`
	SelectedOptions []ProductOption `json:"selectedOptions"`
	Quantity        int             `json:"quantity"`
}

// LineTotal is the line's unit price times its quantity.
func (l Line) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// State is an immutable cart snapshot. Values are replaced wholesale by Reduce;
// callers must not modify the Items slice of a State they did not build.
type State struct {
	Items         []Line          `json:"items"`
	Total         decimal.Decimal `json:"total"`
	Discounts     decimal.Decimal `json:"discounts"`
	ServiceCharge decimal.Decimal `json:"serviceCharge"`
}

// Empty returns a cart with no lines and no adjustments.
func Empty() State {
	return State{
		Items:         []Line{},
		Total:         decimal.Zero,
		Discounts:     decimal.Zero,
		ServiceCharge: decimal.Zero,
	}
}

// clone returns a deep copy of s whose lines and option slices share nothing
// with the original.
func (s State) clone() State {
	items := make([]Line, len(s.Items))
	for i, l := range s.Items {
		if l.SelectedOptions != nil {
			l.SelectedOptions = append([]ProductOption(nil), l.SelectedOptions...)
		}
		items[i] = l
	}
	s.Items = items
	return s
}

// Subtotal is the sum of price x quantity over all lines.
func (s State) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, l := range s.Items {
		subtotal = subtotal.Add(l.LineTotal())
	}
	return subtotal
}

// QuantityOfLine returns the quantity of the given line, or 0 if absent.
func (s State) QuantityOfLine(lineID string) int {
	for _, l := range s.Items {
		if l.LineID == lineID {
			return l.Quantity
		}
	}
	return 0
}

// QuantityOfProduct sums quantities across every line of productID, whatever
// options those lines carry.
func (s State) QuantityOfProduct(productID string) int {
	qty := 0
	for _, l := range s.Items {
		if l.ProductID == productID {
			qty += l.Quantity
		}
	}
	return qty
}

// ItemCount is the total number of units in the cart.
func (s State) ItemCount() int {
	n := 0
	for _, l := range s.Items {
		n += l.Quantity
	}
	return n
}

// IsEmpty reports whether the cart has no lines.
func (s State) IsEmpty() bool {
	return len(s.Items) == 0
}

// computeTotal applies max(0, subtotal - discounts + serviceCharge).
func computeTotal(items []Line, discounts, serviceCharge decimal.Decimal) decimal.Decimal {
	subtotal := State{Items: items}.Subtotal()
	return money.NonNegative(subtotal.Sub(discounts).Add(serviceCharge))
}
