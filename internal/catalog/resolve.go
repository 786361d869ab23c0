// Package catalog turns menu items and diner option selections into priced cart
// products, enforcing the option rules the cart engine deliberately does not check.
package catalog

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tabledine/internal/cart"
	"github.com/mmynk/tabledine/internal/models"
	"github.com/mmynk/tabledine/internal/money"
)

var (
	ErrUnavailable       = errors.New("menu item is not available")
	ErrUnknownOption     = errors.New("option does not belong to this menu item")
	ErrOutOfStock        = errors.New("option is out of stock")
	ErrTooManySelections = errors.New("too many selections for option group")
	ErrMissingRequired   = errors.New("required option group has no selection")
	ErrInvalidMenuItem   = errors.New("invalid menu item")
)

// IsSelectionError reports whether err is a diner input problem rather than an
// infrastructure failure.
func IsSelectionError(err error) bool {
	return errors.Is(err, ErrUnavailable) ||
		errors.Is(err, ErrUnknownOption) ||
		errors.Is(err, ErrOutOfStock) ||
		errors.Is(err, ErrTooManySelections) ||
		errors.Is(err, ErrMissingRequired)
}

// Resolve validates raw against item's option groups and returns the cart product
// to add. Option names and prices are taken from the menu, never from raw.
// Unit price is round2(basePrice + sum of option additions).
func Resolve(item *models.MenuItem, raw []cart.RawOption) (cart.Product, error) {
	if !item.Available {
		return cart.Product{}, fmt.Errorf("%w: %s", ErrUnavailable, item.ID)
	}

	selected := cart.NormalizeOptions(raw)
	counts := make(map[string]int, len(item.OptionGroups))
	trusted := make([]cart.ProductOption, 0, len(selected))

	for _, sel := range selected {
		group, ok := item.Group(sel.GroupID)
		if !ok {
			return cart.Product{}, fmt.Errorf("%w: group %q", ErrUnknownOption, sel.GroupID)
		}
		opt, ok := group.Item(sel.ID)
		if !ok {
			return cart.Product{}, fmt.Errorf("%w: %q in group %q", ErrUnknownOption, sel.ID, group.ID)
		}
		if !opt.InStock {
			return cart.Product{}, fmt.Errorf("%w: %s", ErrOutOfStock, opt.IngredientName)
		}

		counts[group.ID]++
		if group.MaxSelections > 0 && counts[group.ID] > group.MaxSelections {
			return cart.Product{}, fmt.Errorf("%w: %q allows %d", ErrTooManySelections, group.Name, group.MaxSelections)
		}

		trusted = append(trusted, cart.ProductOption{
			ID:             opt.ID,
			GroupID:        group.ID,
			GroupName:      group.Name,
			IngredientID:   opt.IngredientID,
			IngredientName: opt.IngredientName,
			PriceAddition:  opt.PriceAddition,
		})
	}

	for _, g := range item.OptionGroups {
		if g.Required && counts[g.ID] == 0 {
			return cart.Product{}, fmt.Errorf("%w: %q", ErrMissingRequired, g.Name)
		}
	}

	return cart.Product{
		ID:              item.ID,
		Name:            item.Name,
		Category:        item.Category,
		Description:     item.Description,
		Image:           item.Image,
		Price:           money.Round2(item.BasePrice.Add(cart.OptionsTotal(trusted))),
		BasePrice:       decimal.NewNullDecimal(item.BasePrice),
		SelectedOptions: trusted,
	}, nil
}

// Validate checks that a menu item is well formed before it is stored.
func Validate(item *models.MenuItem) error {
	if item.ID == "" || item.Restaurant == "" || item.Name == "" {
		return fmt.Errorf("%w: id, restaurant and name are required", ErrInvalidMenuItem)
	}
	if item.BasePrice.IsNegative() {
		return fmt.Errorf("%w: base price must not be negative", ErrInvalidMenuItem)
	}

	groups := make(map[string]bool, len(item.OptionGroups))
	for _, g := range item.OptionGroups {
		if g.ID == "" {
			return fmt.Errorf("%w: option group without id", ErrInvalidMenuItem)
		}
		if groups[g.ID] {
			return fmt.Errorf("%w: duplicate option group %q", ErrInvalidMenuItem, g.ID)
		}
		groups[g.ID] = true

		if g.MaxSelections < 0 {
			return fmt.Errorf("%w: group %q has negative max selections", ErrInvalidMenuItem, g.ID)
		}
		for _, o := range g.Items {
			if o.ID == "" || o.IngredientID == "" || o.IngredientName == "" {
				return fmt.Errorf("%w: group %q has an incomplete option", ErrInvalidMenuItem, g.ID)
			}
		}
	}
	return nil
}
