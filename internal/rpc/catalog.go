package rpc

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const CatalogServiceName = "tabledine.v1.CatalogService"

const (
	CatalogServiceListMenuProcedure       = "/tabledine.v1.CatalogService/ListMenu"
	CatalogServiceGetMenuItemProcedure    = "/tabledine.v1.CatalogService/GetMenuItem"
	CatalogServiceUpsertMenuItemProcedure = "/tabledine.v1.CatalogService/UpsertMenuItem"
)

type CatalogServiceHandler interface {
	ListMenu(context.Context, *connect.Request[ListMenuRequest]) (*connect.Response[ListMenuResponse], error)
	GetMenuItem(context.Context, *connect.Request[GetMenuItemRequest]) (*connect.Response[GetMenuItemResponse], error)
	UpsertMenuItem(context.Context, *connect.Request[UpsertMenuItemRequest]) (*connect.Response[UpsertMenuItemResponse], error)
}

func NewCatalogServiceHandler(svc CatalogServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(CatalogServiceListMenuProcedure, connect.NewUnaryHandler(CatalogServiceListMenuProcedure, svc.ListMenu, opts...))
	mux.Handle(CatalogServiceGetMenuItemProcedure, connect.NewUnaryHandler(CatalogServiceGetMenuItemProcedure, svc.GetMenuItem, opts...))
	mux.Handle(CatalogServiceUpsertMenuItemProcedure, connect.NewUnaryHandler(CatalogServiceUpsertMenuItemProcedure, svc.UpsertMenuItem, opts...))
	return "/" + CatalogServiceName + "/", mux
}

type CatalogServiceClient struct {
	listMenu       *connect.Client[ListMenuRequest, ListMenuResponse]
	getMenuItem    *connect.Client[GetMenuItemRequest, GetMenuItemResponse]
	upsertMenuItem *connect.Client[UpsertMenuItemRequest, UpsertMenuItemResponse]
}

func NewCatalogServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *CatalogServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &CatalogServiceClient{
		listMenu:       connect.NewClient[ListMenuRequest, ListMenuResponse](httpClient, baseURL+CatalogServiceListMenuProcedure, opts...),
		getMenuItem:    connect.NewClient[GetMenuItemRequest, GetMenuItemResponse](httpClient, baseURL+CatalogServiceGetMenuItemProcedure, opts...),
		upsertMenuItem: connect.NewClient[UpsertMenuItemRequest, UpsertMenuItemResponse](httpClient, baseURL+CatalogServiceUpsertMenuItemProcedure, opts...),
	}
}

func (c *CatalogServiceClient) ListMenu(ctx context.Context, req *connect.Request[ListMenuRequest]) (*connect.Response[ListMenuResponse], error) {
	return c.listMenu.CallUnary(ctx, req)
}

func (c *CatalogServiceClient) GetMenuItem(ctx context.Context, req *connect.Request[GetMenuItemRequest]) (*connect.Response[GetMenuItemResponse], error) {
	return c.getMenuItem.CallUnary(ctx, req)
}

func (c *CatalogServiceClient) UpsertMenuItem(ctx context.Context, req *connect.Request[UpsertMenuItemRequest]) (*connect.Response[UpsertMenuItemResponse], error) {
	return c.upsertMenuItem.CallUnary(ctx, req)
}
