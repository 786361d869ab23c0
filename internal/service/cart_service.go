package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tabledine/internal/cart"
	"github.com/mmynk/tabledine/internal/catalog"
	"github.com/mmynk/tabledine/internal/metrics"
	"github.com/mmynk/tabledine/internal/middleware"
	"github.com/mmynk/tabledine/internal/models"
	"github.com/mmynk/tabledine/internal/rpc"
	"github.com/mmynk/tabledine/internal/session"
	"github.com/mmynk/tabledine/internal/storage"
)

var errEmptyCart = errors.New("cart is empty")

// CartService implements the Connect CartService. Every mutation is reduced by the
// session's cart engine and persisted before the new state is published.
type CartService struct {
	store    storage.Store
	sessions *session.Manager
	carts    *cartRegistry
}

var _ rpc.CartServiceHandler = (*CartService)(nil)

// NewCartService creates a new CartService with the given storage backend and
// session token manager.
func NewCartService(store storage.Store, sessions *session.Manager) *CartService {
	return &CartService{
		store:    store,
		sessions: sessions,
		carts:    newCartRegistry(store),
	}
}

// StartSession opens an empty cart for a restaurant table and returns the token
// that scopes later calls to it.
func (s *CartService) StartSession(ctx context.Context, req *connect.Request[rpc.StartSessionRequest]) (*connect.Response[rpc.StartSessionResponse], error) {
	restaurant := strings.TrimSpace(req.Msg.Restaurant)
	table := strings.TrimSpace(req.Msg.Table)
	if restaurant == "" || table == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("restaurant and table are required"))
	}

	state := cart.Empty()
	snapshot, err := encodeCart(state)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	stored := &models.CartSession{Restaurant: restaurant, Table: table, Snapshot: snapshot}
	if err := s.store.CreateCartSession(ctx, stored); err != nil {
		slog.Error("StartSession failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	sess := session.Session{ID: stored.ID, Restaurant: restaurant, Table: table}
	token, expiresAt, err := s.sessions.Generate(sess)
	if err != nil {
		slog.Error("StartSession token generation failed", "session_id", sess.ID, "error", err)
		if delErr := s.store.DeleteCartSession(ctx, sess.ID); delErr != nil {
			slog.Warn("StartSession cleanup failed", "session_id", sess.ID, "error", delErr)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	sess.ExpiresAt = expiresAt
	s.carts.put(sess, cart.NewEngine(state))
	slog.Info("Cart session started", "session_id", sess.ID, "restaurant", restaurant, "table", table)

	return connect.NewResponse(&rpc.StartSessionResponse{
		SessionID: sess.ID,
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
		Cart:      cartToRPC(sess.ID, state),
	}), nil
}

// GetCart returns the caller's current cart.
func (s *CartService) GetCart(ctx context.Context, req *connect.Request[rpc.GetCartRequest]) (*connect.Response[rpc.CartResponse], error) {
	sess, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}
	engine, err := s.carts.get(ctx, sess)
	if err != nil {
		return nil, storageError("GetCart", err)
	}
	return connect.NewResponse(&rpc.CartResponse{Cart: cartToRPC(sess.ID, engine.Snapshot())}), nil
}

// AddItem prices the requested product from the menu and adds one unit of it.
func (s *CartService) AddItem(ctx context.Context, req *connect.Request[rpc.AddItemRequest]) (*connect.Response[rpc.AddItemResponse], error) {
	sess, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.ProductID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("product_id is required"))
	}

	item, err := s.store.GetMenuItem(ctx, sess.Restaurant, req.Msg.ProductID)
	if err != nil {
		return nil, storageError("AddItem", err)
	}

	product, err := catalog.Resolve(item, req.Msg.Options)
	if err != nil {
		slog.Debug("AddItem rejected", "product_id", item.ID, "error", err)
		if errors.Is(err, catalog.ErrUnavailable) {
			return nil, connect.NewError(connect.CodeFailedPrecondition, err)
		}
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	state, err := s.apply(ctx, sess, cart.AddItem{Product: product})
	if err != nil {
		return nil, storageError("AddItem", err)
	}

	return connect.NewResponse(&rpc.AddItemResponse{
		Cart:   cartToRPC(sess.ID, state),
		LineID: cart.BuildLineID(product.ID, product.SelectedOptions),
	}), nil
}

// RemoveItem drops a line. Unknown lines leave the cart unchanged.
func (s *CartService) RemoveItem(ctx context.Context, req *connect.Request[rpc.RemoveItemRequest]) (*connect.Response[rpc.CartResponse], error) {
	return s.mutate(ctx, "RemoveItem", cart.RemoveItem{LineID: req.Msg.LineID})
}

// RemoveOne decrements the most recently added line of a product.
func (s *CartService) RemoveOne(ctx context.Context, req *connect.Request[rpc.RemoveOneRequest]) (*connect.Response[rpc.CartResponse], error) {
	return s.mutate(ctx, "RemoveOne", cart.RemoveOneByProductID{ProductID: req.Msg.ProductID})
}

// UpdateQuantity sets a line's quantity, truncating fractions toward zero.
func (s *CartService) UpdateQuantity(ctx context.Context, req *connect.Request[rpc.UpdateQuantityRequest]) (*connect.Response[rpc.CartResponse], error) {
	quantity, err := toQuantity(req.Msg.Quantity)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	return s.mutate(ctx, "UpdateQuantity", cart.UpdateQuantity{LineID: req.Msg.LineID, Quantity: quantity})
}

// ClearCart empties the cart and resets adjustments.
func (s *CartService) ClearCart(ctx context.Context, req *connect.Request[rpc.ClearCartRequest]) (*connect.Response[rpc.CartResponse], error) {
	return s.mutate(ctx, "ClearCart", cart.ClearCart{})
}

// SetAdjustments replaces the cart's discount and service charge.
func (s *CartService) SetAdjustments(ctx context.Context, req *connect.Request[rpc.SetAdjustmentsRequest]) (*connect.Response[rpc.CartResponse], error) {
	return s.mutate(ctx, "SetAdjustments", cart.SetAdjustments{
		Discounts:     req.Msg.Discounts,
		ServiceCharge: req.Msg.ServiceCharge,
	})
}

// Checkout places an order from the current cart and clears it. The order is
// built from exactly the state the clear replaces, and the order and the
// cleared cart are stored together.
func (s *CartService) Checkout(ctx context.Context, req *connect.Request[rpc.CheckoutRequest]) (*connect.Response[rpc.CheckoutResponse], error) {
	sess, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}
	engine, err := s.carts.get(ctx, sess)
	if err != nil {
		return nil, storageError("Checkout", err)
	}

	var order *models.Order
	_, err = engine.Apply(cart.ClearCart{}, func(cleared cart.State) error {
		current := engine.Snapshot()
		if current.IsEmpty() {
			return errEmptyCart
		}

		o, err := orderFromCart(sess, current, strings.TrimSpace(req.Msg.Note))
		if err != nil {
			return err
		}
		snapshot, err := encodeCart(cleared)
		if err != nil {
			return err
		}
		if err := s.store.PlaceOrder(ctx, o, sess.ID, snapshot); err != nil {
			return fmt.Errorf("failed to place order: %w", err)
		}
		order = o
		return nil
	})
	if errors.Is(err, errEmptyCart) {
		return nil, connect.NewError(connect.CodeFailedPrecondition, err)
	}
	if err != nil {
		s.forgetIfGone(sess.ID, err)
		return nil, storageError("Checkout", err)
	}

	metrics.CartActions.WithLabelValues(cart.ClearCart{}.Name()).Inc()
	metrics.OrdersPlaced.WithLabelValues(sess.Restaurant).Inc()
	slog.Info("Order placed",
		"order_id", order.ID,
		"session_id", sess.ID,
		"restaurant", order.Restaurant,
		"table", order.Table,
		"total", order.Total.StringFixed(2),
	)

	return connect.NewResponse(&rpc.CheckoutResponse{Order: orderToRPC(order)}), nil
}

// mutate applies action to the caller's cart and returns the new cart.
func (s *CartService) mutate(ctx context.Context, op string, action cart.Action) (*connect.Response[rpc.CartResponse], error) {
	sess, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}
	state, err := s.apply(ctx, sess, action)
	if err != nil {
		return nil, storageError(op, err)
	}
	return connect.NewResponse(&rpc.CartResponse{Cart: cartToRPC(sess.ID, state)}), nil
}

// apply reduces action on the session's engine, persisting the result before it
// becomes visible.
func (s *CartService) apply(ctx context.Context, sess session.Session, action cart.Action) (cart.State, error) {
	engine, err := s.carts.get(ctx, sess)
	if err != nil {
		return cart.State{}, err
	}

	state, err := engine.Apply(action, func(next cart.State) error {
		return s.saveSnapshot(ctx, sess.ID, next)
	})
	if err != nil {
		s.forgetIfGone(sess.ID, err)
		return cart.State{}, err
	}

	metrics.CartActions.WithLabelValues(action.Name()).Inc()
	slog.Debug("Cart action applied",
		"session_id", sess.ID,
		"action", action.Name(),
		"items", state.ItemCount(),
		"total", state.Total.StringFixed(2),
	)
	return state, nil
}

func (s *CartService) saveSnapshot(ctx context.Context, sessionID string, state cart.State) error {
	data, err := encodeCart(state)
	if err != nil {
		return err
	}
	if err := s.store.SaveCartSnapshot(ctx, sessionID, data); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// forgetIfGone drops the cached engine once its session row no longer exists.
func (s *CartService) forgetIfGone(sessionID string, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		s.carts.forget(sessionID)
	}
}

// requireSession returns the caller's session or an Unauthenticated error.
func requireSession(ctx context.Context) (session.Session, error) {
	sess, ok := middleware.GetSession(ctx)
	if !ok {
		return session.Session{}, connect.NewError(connect.CodeUnauthenticated, session.ErrMissingToken)
	}
	return sess, nil
}

// storageError logs err and maps it to a Connect error.
func storageError(op string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	slog.Error(op+" failed", "error", err)
	return connect.NewError(connect.CodeInternal, err)
}

// toQuantity truncates a wire quantity toward zero.
func toQuantity(q float64) (int, error) {
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return 0, fmt.Errorf("quantity must be a finite number")
	}
	q = math.Trunc(q)
	if q > math.MaxInt32 || q < math.MinInt32 {
		return 0, fmt.Errorf("quantity %v out of range", q)
	}
	return int(q), nil
}
