package models

import "github.com/shopspring/decimal"

// MenuItem is a sellable product on a restaurant's menu.
type MenuItem struct {
	// ID is the product identifier, unique within a restaurant.
	ID string `yaml:"id" json:"id"`

	// Restaurant is the tenant slug the item belongs to.
	Restaurant string `yaml:"restaurant" json:"restaurant"`

	Name        string `yaml:"name" json:"name"`
	Category    string `yaml:"category" json:"category"`
	Description string `yaml:"description" json:"description,omitempty"`
	Image       string `yaml:"image" json:"image,omitempty"`

	// BasePrice is the unit price before any option additions.
	BasePrice decimal.Decimal `yaml:"base_price" json:"basePrice"`

	// Available hides the item from diners when false.
	Available bool `yaml:"available" json:"available"`

	OptionGroups []OptionGroup `yaml:"option_groups" json:"optionGroups,omitempty"`

	// UpdatedAt is the Unix timestamp of the last upsert.
	UpdatedAt int64 `yaml:"-" json:"updatedAt"`
}

// Group returns the option group with the given id.
func (m *MenuItem) Group(id string) (*OptionGroup, bool) {
	for i := range m.OptionGroups {
		if m.OptionGroups[i].ID == id {
			return &m.OptionGroups[i], true
		}
	}
	return nil, false
}

// OptionGroup is a named set of related choices, e.g. "Milk type".
type OptionGroup struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`

	// Required groups need at least one selection.
	Required bool `yaml:"required" json:"required"`

	// MaxSelections caps the number of items chosen from the group. Zero means no cap.
	MaxSelections int `yaml:"max_selections" json:"maxSelections"`

	Items []OptionItem `yaml:"items" json:"items"`
}

// Item returns the option item with the given id.
func (g *OptionGroup) Item(id string) (*OptionItem, bool) {
	for i := range g.Items {
		if g.Items[i].ID == id {
			return &g.Items[i], true
		}
	}
	return nil, false
}

// OptionItem is one choice inside an option group, backed by an ingredient.
type OptionItem struct {
	ID             string          `yaml:"id" json:"id"`
	IngredientID   string          `yaml:"ingredient_id" json:"ingredientId"`
	IngredientName string          `yaml:"ingredient_name" json:"ingredientName"`
	PriceAddition  decimal.Decimal `yaml:"price_addition" json:"priceAddition"`
	InStock        bool            `yaml:"in_stock" json:"inStock"`
}
