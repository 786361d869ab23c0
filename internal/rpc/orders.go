package rpc

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const OrderServiceName = "tabledine.v1.OrderService"

const (
	OrderServiceGetOrderProcedure   = "/tabledine.v1.OrderService/GetOrder"
	OrderServiceListOrdersProcedure = "/tabledine.v1.OrderService/ListOrders"
)

type OrderServiceHandler interface {
	GetOrder(context.Context, *connect.Request[GetOrderRequest]) (*connect.Response[GetOrderResponse], error)
	ListOrders(context.Context, *connect.Request[ListOrdersRequest]) (*connect.Response[ListOrdersResponse], error)
}

func NewOrderServiceHandler(svc OrderServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(OrderServiceGetOrderProcedure, connect.NewUnaryHandler(OrderServiceGetOrderProcedure, svc.GetOrder, opts...))
	mux.Handle(OrderServiceListOrdersProcedure, connect.NewUnaryHandler(OrderServiceListOrdersProcedure, svc.ListOrders, opts...))
	return "/" + OrderServiceName + "/", mux
}

type OrderServiceClient struct {
	getOrder   *connect.Client[GetOrderRequest, GetOrderResponse]
	listOrders *connect.Client[ListOrdersRequest, ListOrdersResponse]
}

func NewOrderServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *OrderServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &OrderServiceClient{
		getOrder:   connect.NewClient[GetOrderRequest, GetOrderResponse](httpClient, baseURL+OrderServiceGetOrderProcedure, opts...),
		listOrders: connect.NewClient[ListOrdersRequest, ListOrdersResponse](httpClient, baseURL+OrderServiceListOrdersProcedure, opts...),
	}
}

func (c *OrderServiceClient) GetOrder(ctx context.Context, req *connect.Request[GetOrderRequest]) (*connect.Response[GetOrderResponse], error) {
	return c.getOrder.CallUnary(ctx, req)
}

func (c *OrderServiceClient) ListOrders(ctx context.Context, req *connect.Request[ListOrdersRequest]) (*connect.Response[ListOrdersResponse], error) {
	return c.listOrders.CallUnary(ctx, req)
}
