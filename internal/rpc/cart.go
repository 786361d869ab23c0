package rpc

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// CartServiceName is the fully-qualified name of the CartService.
const CartServiceName = "tabledine.v1.CartService"

// Procedure paths of CartService.
const (
	CartServiceStartSessionProcedure   = "/tabledine.v1.CartService/StartSession"
	CartServiceGetCartProcedure        = "/tabledine.v1.CartService/GetCart"
	CartServiceAddItemProcedure        = "/tabledine.v1.CartService/AddItem"
	CartServiceRemoveItemProcedure     = "/tabledine.v1.CartService/RemoveItem"
	CartServiceRemoveOneProcedure      = "/tabledine.v1.CartService/RemoveOne"
	CartServiceUpdateQuantityProcedure = "/tabledine.v1.CartService/UpdateQuantity"
	CartServiceClearCartProcedure      = "/tabledine.v1.CartService/ClearCart"
	CartServiceSetAdjustmentsProcedure = "/tabledine.v1.CartService/SetAdjustments"
	CartServiceCheckoutProcedure       = "/tabledine.v1.CartService/Checkout"
)

// CartServiceHandler is implemented by the cart service.
type CartServiceHandler interface {
	StartSession(context.Context, *connect.Request[StartSessionRequest]) (*connect.Response[StartSessionResponse], error)
	GetCart(context.Context, *connect.Request[GetCartRequest]) (*connect.Response[CartResponse], error)
	AddItem(context.Context, *connect.Request[AddItemRequest]) (*connect.Response[AddItemResponse], error)
	RemoveItem(context.Context, *connect.Request[RemoveItemRequest]) (*connect.Response[CartResponse], error)
	RemoveOne(context.Context, *connect.Request[RemoveOneRequest]) (*connect.Response[CartResponse], error)
	UpdateQuantity(context.Context, *connect.Request[UpdateQuantityRequest]) (*connect.Response[CartResponse], error)
	ClearCart(context.Context, *connect.Request[ClearCartRequest]) (*connect.Response[CartResponse], error)
	SetAdjustments(context.Context, *connect.Request[SetAdjustmentsRequest]) (*connect.Response[CartResponse], error)
	Checkout(context.Context, *connect.Request[CheckoutRequest]) (*connect.Response[CheckoutResponse], error)
}

// NewCartServiceHandler builds an HTTP handler for svc and returns the path to
// mount it on.
func NewCartServiceHandler(svc CartServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(CartServiceStartSessionProcedure, connect.NewUnaryHandler(CartServiceStartSessionProcedure, svc.StartSession, opts...))
	mux.Handle(CartServiceGetCartProcedure, connect.NewUnaryHandler(CartServiceGetCartProcedure, svc.GetCart, opts...))
	mux.Handle(CartServiceAddItemProcedure, connect.NewUnaryHandler(CartServiceAddItemProcedure, svc.AddItem, opts...))
	mux.Handle(CartServiceRemoveItemProcedure, connect.NewUnaryHandler(CartServiceRemoveItemProcedure, svc.RemoveItem, opts...))
	mux.Handle(CartServiceRemoveOneProcedure, connect.NewUnaryHandler(CartServiceRemoveOneProcedure, svc.RemoveOne, opts...))
	mux.Handle(CartServiceUpdateQuantityProcedure, connect.NewUnaryHandler(CartServiceUpdateQuantityProcedure, svc.UpdateQuantity, opts...))
	mux.Handle(CartServiceClearCartProcedure, connect.NewUnaryHandler(CartServiceClearCartProcedure, svc.ClearCart, opts...))
	mux.Handle(CartServiceSetAdjustmentsProcedure, connect.NewUnaryHandler(CartServiceSetAdjustmentsProcedure, svc.SetAdjustments, opts...))
	mux.Handle(CartServiceCheckoutProcedure, connect.NewUnaryHandler(CartServiceCheckoutProcedure, svc.Checkout, opts...))
	return "/" + CartServiceName + "/", mux
}

// CartServiceClient calls a remote CartService.
type CartServiceClient struct {
	startSession   *connect.Client[StartSessionRequest, StartSessionResponse]
	getCart        *connect.Client[GetCartRequest, CartResponse]
	addItem        *connect.Client[AddItemRequest, AddItemResponse]
	removeItem     *connect.Client[RemoveItemRequest, CartResponse]
	removeOne      *connect.Client[RemoveOneRequest, CartResponse]
	updateQuantity *connect.Client[UpdateQuantityRequest, CartResponse]
	clearCart      *connect.Client[ClearCartRequest, CartResponse]
	setAdjustments *connect.Client[SetAdjustmentsRequest, CartResponse]
	checkout       *connect.Client[CheckoutRequest, CheckoutResponse]
}

// NewCartServiceClient returns a client for the CartService at baseURL.
func NewCartServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *CartServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &CartServiceClient{
		startSession:   connect.NewClient[StartSessionRequest, StartSessionResponse](httpClient, baseURL+CartServiceStartSessionProcedure, opts...),
		getCart:        connect.NewClient[GetCartRequest, CartResponse](httpClient, baseURL+CartServiceGetCartProcedure, opts...),
		addItem:        connect.NewClient[AddItemRequest, AddItemResponse](httpClient, baseURL+CartServiceAddItemProcedure, opts...),
		removeItem:     connect.NewClient[RemoveItemRequest, CartResponse](httpClient, baseURL+CartServiceRemoveItemProcedure, opts...),
		removeOne:      connect.NewClient[RemoveOneRequest, CartResponse](httpClient, baseURL+CartServiceRemoveOneProcedure, opts...),
		updateQuantity: connect.NewClient[UpdateQuantityRequest, CartResponse](httpClient, baseURL+CartServiceUpdateQuantityProcedure, opts...),
		clearCart:      connect.NewClient[ClearCartRequest, CartResponse](httpClient, baseURL+CartServiceClearCartProcedure, opts...),
		setAdjustments: connect.NewClient[SetAdjustmentsRequest, CartResponse](httpClient, baseURL+CartServiceSetAdjustmentsProcedure, opts...),
		checkout:       connect.NewClient[CheckoutRequest, CheckoutResponse](httpClient, baseURL+CartServiceCheckoutProcedure, opts...),
	}
}

func (c *CartServiceClient) StartSession(ctx context.Context, req *connect.Request[StartSessionRequest]) (*connect.Response[StartSessionResponse], error) {
	return c.startSession.CallUnary(ctx, req)
}

func (c *CartServiceClient) GetCart(ctx context.Context, req *connect.Request[GetCartRequest]) (*connect.Response[CartResponse], error) {
	return c.getCart.CallUnary(ctx, req)
}

func (c *CartServiceClient) AddItem(ctx context.Context, req *connect.Request[AddItemRequest]) (*connect.Response[AddItemResponse], error) {
	return c.addItem.CallUnary(ctx, req)
}

func (c *CartServiceClient) RemoveItem(ctx context.Context, req *connect.Request[RemoveItemRequest]) (*connect.Response[CartResponse], error) {
	return c.removeItem.CallUnary(ctx, req)
}

func (c *CartServiceClient) RemoveOne(ctx context.Context, req *connect.Request[RemoveOneRequest]) (*connect.Response[CartResponse], error) {
	return c.removeOne.CallUnary(ctx, req)
}

func (c *CartServiceClient) UpdateQuantity(ctx context.Context, req *connect.Request[UpdateQuantityRequest]) (*connect.Response[CartResponse], error) {
	return c.updateQuantity.CallUnary(ctx, req)
}

func (c *CartServiceClient) ClearCart(ctx context.Context, req *connect.Request[ClearCartRequest]) (*connect.Response[CartResponse], error) {
	return c.clearCart.CallUnary(ctx, req)
}

func (c *CartServiceClient) SetAdjustments(ctx context.Context, req *connect.Request[SetAdjustmentsRequest]) (*connect.Response[CartResponse], error) {
	return c.setAdjustments.CallUnary(ctx, req)
}

func (c *CartServiceClient) Checkout(ctx context.Context, req *connect.Request[CheckoutRequest]) (*connect.Response[CheckoutResponse], error) {
	return c.checkout.CallUnary(ctx, req)
}
