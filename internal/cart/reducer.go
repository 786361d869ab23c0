package cart

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/tabledine/internal/money"
)

// Action is a single cart mutation. The set of actions is closed.
type Action interface {
	// Name is a stable label used in logs and metrics.
	Name() string
	isAction()
}

// AddItem adds one unit of Product, merging into an existing line when the
// product and option selection match.
type AddItem struct {
	Product Product
}

// RemoveItem drops a line entirely.
type RemoveItem struct {
	LineID string
}

// RemoveOneByProductID undoes the last add of a product: it decrements the
// highest-index line of that product regardless of its options.
type RemoveOneByProductID struct {
	ProductID string
}

// UpdateQuantity sets a line's quantity. Zero or negative removes the line.
type UpdateQuantity struct {
	LineID   string
	Quantity int
}

// ClearCart resets the cart, adjustments included.
type ClearCart struct{}

// SetAdjustments replaces the discount and service charge. Negative values are
// stored as zero.
type SetAdjustments struct {
	Discounts     decimal.Decimal
	ServiceCharge decimal.Decimal
}

func (AddItem) Name() string              { return "add_item" }
func (RemoveItem) Name() string           { return "remove_item" }
func (RemoveOneByProductID) Name() string { return "remove_one" }
func (UpdateQuantity) Name() string       { return "update_quantity" }
func (ClearCart) Name() string            { return "clear_cart" }
func (SetAdjustments) Name() string       { return "set_adjustments" }

func (AddItem) isAction()              {}
func (RemoveItem) isAction()           {}
func (RemoveOneByProductID) isAction() {}
func (UpdateQuantity) isAction()       {}
func (ClearCart) isAction()            {}
func (SetAdjustments) isAction()       {}

// Reduce applies action to state and returns the next state. It never modifies
// state and never fails; unknown ids leave the cart unchanged.
func Reduce(state State, action Action) State {
	switch a := action.(type) {
	case AddItem:
		return addItem(state, a.Product)
	case RemoveItem:
		return withItems(state, removeLine(state.Items, a.LineID))
	case RemoveOneByProductID:
		return removeOne(state, a.ProductID)
	case UpdateQuantity:
		return updateQuantity(state, a.LineID, a.Quantity)
	case ClearCart:
		return Empty()
	case SetAdjustments:
		next := state
		next.Items = cloneLines(state.Items)
		next.Discounts = money.NonNegative(a.Discounts)
		next.ServiceCharge = money.NonNegative(a.ServiceCharge)
		next.Total = computeTotal(next.Items, next.Discounts, next.ServiceCharge)
		return next
	default:
		return state
	}
}

func addItem(state State, p Product) State {
	opts := Normalize(p.SelectedOptions)
	lineID := BuildLineID(p.ID, opts)

	items := cloneLines(state.Items)
	for i := range items {
		if items[i].LineID == lineID {
			items[i].Quantity++
			return withItems(state, items)
		}
	}

	basePrice := p.Price
	if p.BasePrice.Valid {
		basePrice = p.BasePrice.Decimal
	}

	items = append(items, Line{
		LineID:          lineID,
		ProductID:       p.ID,
		Name:            p.Name,
		Category:        p.Category,
		BasePrice:       money.Round2(basePrice),
		Price:           money.Round2(p.Price),
		SelectedOptions: opts,
		Quantity:        1,
	})
	return withItems(state, items)
}

func removeOne(state State, productID string) State {
	idx := -1
	for i := len(state.Items) - 1; i >= 0; i-- {
		if state.Items[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return state
	}

	if state.Items[idx].Quantity <= 1 {
		return withItems(state, removeLine(state.Items, state.Items[idx].LineID))
	}

	items := cloneLines(state.Items)
	items[idx].Quantity--
	return withItems(state, items)
}

func updateQuantity(state State, lineID string, quantity int) State {
	if quantity <= 0 {
		return withItems(state, removeLine(state.Items, lineID))
	}

	items := cloneLines(state.Items)
	for i := range items {
		if items[i].LineID == lineID {
			items[i].Quantity = quantity
		}
	}
	return withItems(state, items)
}

// withItems builds the next state around items and recomputes the total with the
// current adjustments.
func withItems(state State, items []Line) State {
	return State{
		Items:         items,
		Total:         computeTotal(items, state.Discounts, state.ServiceCharge),
		Discounts:     state.Discounts,
		ServiceCharge: state.ServiceCharge,
	}
}

func removeLine(lines []Line, lineID string) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.LineID != lineID {
			out = append(out, l)
		}
	}
	return out
}

// cloneLines copies the slice so the previous state's backing array is never
// written. Option slices are shared; they are never mutated after a line is built.
func cloneLines(lines []Line) []Line {
	out := make([]Line, len(lines), len(lines)+1)
	copy(out, lines)
	return out
}
