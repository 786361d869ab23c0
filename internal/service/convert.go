package service

import (
	"encoding/json"
	"fmt"

	"github.com/mmynk/tabledine/internal/cart"
	"github.com/mmynk/tabledine/internal/models"
	"github.com/mmynk/tabledine/internal/rpc"
	"github.com/mmynk/tabledine/internal/session"
)

func cartToRPC(sessionID string, state cart.State) *rpc.Cart {
	lines := make([]rpc.CartLine, len(state.Items))
	for i, l := range state.Items {
		lines[i] = rpc.CartLine{
			LineID:    l.LineID,
			ProductID: l.ProductID,
			Name:      l.Name,
			Category:  l.Category,
			BasePrice: l.BasePrice,
			Price:     l.Price,
			Quantity:  l.Quantity,
			LineTotal: l.LineTotal(),
			Options:   l.SelectedOptions,
		}
	}
	return &rpc.Cart{
		SessionID:     sessionID,
		Lines:         lines,
		Subtotal:      state.Subtotal(),
		Discounts:     state.Discounts,
		ServiceCharge: state.ServiceCharge,
		Total:         state.Total,
		ItemCount:     state.ItemCount(),
	}
}

// orderFromCart freezes a cart snapshot into an order for the session's table.
func orderFromCart(s session.Session, state cart.State, note string) (*models.Order, error) {
	lines := make([]models.OrderLine, len(state.Items))
	for i, l := range state.Items {
		options, err := json.Marshal(l.SelectedOptions)
		if err != nil {
			return nil, fmt.Errorf("failed to encode options of line %s: %w", l.LineID, err)
		}
		lines[i] = models.OrderLine{
			LineID:    l.LineID,
			ProductID: l.ProductID,
			Name:      l.Name,
			Category:  l.Category,
			BasePrice: l.BasePrice,
			Price:     l.Price,
			Quantity:  l.Quantity,
			Options:   options,
		}
	}
	return &models.Order{
		Restaurant:    s.Restaurant,
		Table:         s.Table,
		SessionID:     s.ID,
		Lines:         lines,
		Subtotal:      state.Subtotal(),
		Discounts:     state.Discounts,
		ServiceCharge: state.ServiceCharge,
		Total:         state.Total,
		Note:          note,
		Status:        models.OrderPending,
	}, nil
}

func orderToRPC(o *models.Order) *rpc.Order {
	lines := make([]rpc.OrderLine, len(o.Lines))
	for i, l := range o.Lines {
		options := json.RawMessage(l.Options)
		if len(options) == 0 {
			options = json.RawMessage("[]")
		}
		lines[i] = rpc.OrderLine{
			LineID:    l.LineID,
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			Quantity:  l.Quantity,
			LineTotal: l.LineTotal(),
			Options:   options,
		}
	}
	return &rpc.Order{
		ID:            o.ID,
		Restaurant:    o.Restaurant,
		Table:         o.Table,
		Lines:         lines,
		Subtotal:      o.Subtotal,
		Discounts:     o.Discounts,
		ServiceCharge: o.ServiceCharge,
		Total:         o.Total,
		Note:          o.Note,
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
	}
}
