package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/tabledine/internal/rpc"
	"github.com/mmynk/tabledine/internal/storage"
)

// OrderService implements the Connect OrderService. Callers only see orders of
// the restaurant their session belongs to.
type OrderService struct {
	store storage.OrderStore
}

var _ rpc.OrderServiceHandler = (*OrderService)(nil)

func NewOrderService(store storage.OrderStore) *OrderService {
	return &OrderService{store: store}
}

// GetOrder retrieves an order by ID.
func (s *OrderService) GetOrder(ctx context.Context, req *connect.Request[rpc.GetOrderRequest]) (*connect.Response[rpc.GetOrderResponse], error) {
	sess, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}

	order, err := s.store.GetOrder(ctx, req.Msg.OrderID)
	if err != nil {
		return nil, storageError("GetOrder", err)
	}
	if order.Restaurant != sess.Restaurant {
		return nil, connect.NewError(connect.CodePermissionDenied, fmt.Errorf("order belongs to another restaurant"))
	}

	return connect.NewResponse(&rpc.GetOrderResponse{Order: orderToRPC(order)}), nil
}

// ListOrders returns the orders placed at the caller's table, newest first.
func (s *OrderService) ListOrders(ctx context.Context, req *connect.Request[rpc.ListOrdersRequest]) (*connect.Response[rpc.ListOrdersResponse], error) {
	sess, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}

	orders, err := s.store.ListOrders(ctx, sess.Restaurant, sess.Table)
	if err != nil {
		slog.Error("ListOrders failed", "restaurant", sess.Restaurant, "table", sess.Table, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	out := make([]*rpc.Order, len(orders))
	for i := range orders {
		out[i] = orderToRPC(&orders[i])
	}
	return connect.NewResponse(&rpc.ListOrdersResponse{Orders: out}), nil
}
