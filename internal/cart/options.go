package cart

import (
	"encoding/json"
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"github.com/mmynk/tabledine/internal/money"
)

// ProductOption is one chosen modifier on a product instance.
type ProductOption struct {
	// ID identifies the option item that was chosen.
	ID string `json:"id"`

	// GroupID identifies the option group the item belongs to (e.g. "size").
	GroupID string `json:"groupId"`

	// GroupName is the display label of the group.
	GroupName string `json:"groupName"`

	IngredientID   string `json:"ingredientId"`
	IngredientName string `json:"ingredientName"`

	// PriceAddition is added to the unit price. It may be zero or negative.
	PriceAddition decimal.Decimal `json:"priceAddition"`
}

// key is the composite identity of an option inside a line id.
func (o ProductOption) key() string {
	return o.GroupID + ":" + o.ID
}

// RawOption is an untrusted option record as decoded from JSON.
type RawOption map[string]any

// NormalizeOptions converts loosely typed option records into validated
// ProductOptions. Identity fields (id, groupId, ingredientId, ingredientName)
// accept strings and numbers only; numbers are formatted in decimal. Records
// missing any identity field, or carrying another kind such as a boolean, are
// dropped. Order of the surviving records is preserved.
func NormalizeOptions(raw []RawOption) []ProductOption {
	opts := make([]ProductOption, 0, len(raw))
	for _, r := range raw {
		if r == nil {
			continue
		}
		opts = append(opts, ProductOption{
			ID:             trimmed(r["id"]),
			GroupID:        trimmed(r["groupId"]),
			GroupName:      cast.ToString(r["groupName"]),
			IngredientID:   trimmed(r["ingredientId"]),
			IngredientName: trimmed(r["ingredientName"]),
			PriceAddition:  toDecimal(r["priceAddition"]),
		})
	}
	return Normalize(opts)
}

// Normalize applies the same validation as NormalizeOptions to typed input:
// identity fields are trimmed, incomplete records dropped and duplicates by
// (groupId, id) collapsed onto their first occurrence.
func Normalize(opts []ProductOption) []ProductOption {
	out := make([]ProductOption, 0, len(opts))
	seen := make(map[string]bool, len(opts))
	for _, o := range opts {
		o.ID = strings.TrimSpace(o.ID)
		o.GroupID = strings.TrimSpace(o.GroupID)
		o.IngredientID = strings.TrimSpace(o.IngredientID)
		o.IngredientName = strings.TrimSpace(o.IngredientName)
		if o.ID == "" || o.GroupID == "" || o.IngredientID == "" || o.IngredientName == "" {
			continue
		}
		if seen[o.key()] {
			continue
		}
		seen[o.key()] = true
		out = append(out, o)
	}
	return out
}

// OptionsTotal sums the price additions of opts, rounded to two places.
func OptionsTotal(opts []ProductOption) decimal.Decimal {
	total := decimal.Zero
	for _, o := range opts {
		total = total.Add(o.PriceAddition)
	}
	return money.Round2(total)
}

// BuildLineID derives the cart line identity for a product and option selection.
// The result does not depend on the order options were selected in.
func BuildLineID(productID string, opts []ProductOption) string {
	opts = Normalize(opts)
	if len(opts) == 0 {
		return productID + "::base"
	}

	keys := make([]string, len(opts))
	for i, o := range opts {
		keys[i] = o.key()
	}
	sort.Strings(keys)

	return productID + "::" + strings.Join(keys, "|")
}

// trimmed returns v as an identity string, or "" if v is not a string or number.
func trimmed(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case json.Number, float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return cast.ToString(x)
	default:
		return ""
	}
}

func toDecimal(v any) decimal.Decimal {
	switch x := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return x
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		if err != nil {
			return decimal.Zero
		}
		return d
	}

	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return money.FromFloat(f)
}
