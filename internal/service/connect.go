package service

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const (
	// GroupServiceName is the fully-qualified name of the group service.
	GroupServiceName = "pourdecisions.v1.GroupService"
	// SettlementServiceName is the fully-qualified name of the settlement service.
	SettlementServiceName = "pourdecisions.v1.SettlementService"
)

// Procedure paths, in the form Connect routes them.
const (
	GroupServiceCreateGroupProcedure     = "/" + GroupServiceName + "/CreateGroup"
	GroupServiceListGroupsProcedure      = "/" + GroupServiceName + "/ListGroups"
	GroupServiceGetGroupProcedure        = "/" + GroupServiceName + "/GetGroup"
	GroupServiceAddMemberProcedure       = "/" + GroupServiceName + "/AddMember"
	GroupServiceAddItemProcedure         = "/" + GroupServiceName + "/AddItem"
	GroupServiceUpdateItemPriceProcedure = "/" + GroupServiceName + "/UpdateItemPrice"
	GroupServiceDeleteItemProcedure      = "/" + GroupServiceName + "/DeleteItem"
	GroupServiceCreateOrderProcedure     = "/" + GroupServiceName + "/CreateOrder"
	GroupServiceDeleteOrderProcedure     = "/" + GroupServiceName + "/DeleteOrder"
	GroupServiceListOrdersProcedure      = "/" + GroupServiceName + "/ListOrders"

	SettlementServiceGetSettlementsProcedure = "/" + SettlementServiceName + "/GetSettlements"
	SettlementServiceSettleGroupsProcedure   = "/" + SettlementServiceName + "/SettleGroups"
)

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
}

// route dispatches on the request path to the matching procedure handler.
func route(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

// NewGroupServiceHandler builds an HTTP handler for the group service and
// returns the path prefix to mount it on.
func NewGroupServiceHandler(svc *GroupService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + GroupServiceName + "/", route(map[string]http.Handler{
		GroupServiceCreateGroupProcedure:     connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, opts...),
		GroupServiceListGroupsProcedure:      connect.NewUnaryHandler(GroupServiceListGroupsProcedure, svc.ListGroups, opts...),
		GroupServiceGetGroupProcedure:        connect.NewUnaryHandler(GroupServiceGetGroupProcedure, svc.GetGroup, opts...),
		GroupServiceAddMemberProcedure:       connect.NewUnaryHandler(GroupServiceAddMemberProcedure, svc.AddMember, opts...),
		GroupServiceAddItemProcedure:         connect.NewUnaryHandler(GroupServiceAddItemProcedure, svc.AddItem, opts...),
		GroupServiceUpdateItemPriceProcedure: connect.NewUnaryHandler(GroupServiceUpdateItemPriceProcedure, svc.UpdateItemPrice, opts...),
		GroupServiceDeleteItemProcedure:      connect.NewUnaryHandler(GroupServiceDeleteItemProcedure, svc.DeleteItem, opts...),
		GroupServiceCreateOrderProcedure:     connect.NewUnaryHandler(GroupServiceCreateOrderProcedure, svc.CreateOrder, opts...),
		GroupServiceDeleteOrderProcedure:     connect.NewUnaryHandler(GroupServiceDeleteOrderProcedure, svc.DeleteOrder, opts...),
		GroupServiceListOrdersProcedure:      connect.NewUnaryHandler(GroupServiceListOrdersProcedure, svc.ListOrders, opts...),
	})
}

// NewSettlementServiceHandler builds an HTTP handler for the settlement service
// and returns the path prefix to mount it on.
func NewSettlementServiceHandler(svc *SettlementService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + SettlementServiceName + "/", route(map[string]http.Handler{
		SettlementServiceGetSettlementsProcedure: connect.NewUnaryHandler(SettlementServiceGetSettlementsProcedure, svc.GetSettlements, opts...),
		SettlementServiceSettleGroupsProcedure:   connect.NewUnaryHandler(SettlementServiceSettleGroupsProcedure, svc.SettleGroups, opts...),
	})
}

// GroupServiceClient calls the group service over Connect.
type GroupServiceClient struct {
	createGroup     *connect.Client[CreateGroupRequest, CreateGroupResponse]
	listGroups      *connect.Client[ListGroupsRequest, ListGroupsResponse]
	getGroup        *connect.Client[GetGroupRequest, GetGroupResponse]
	addMember       *connect.Client[AddMemberRequest, AddMemberResponse]
	addItem         *connect.Client[AddItemRequest, AddItemResponse]
	updateItemPrice *connect.Client[UpdateItemPriceRequest, UpdateItemPriceResponse]
	deleteItem      *connect.Client[DeleteItemRequest, DeleteItemResponse]
	createOrder     *connect.Client[CreateOrderRequest, CreateOrderResponse]
	deleteOrder     *connect.Client[DeleteOrderRequest, DeleteOrderResponse]
	listOrders      *connect.Client[ListOrdersRequest, ListOrdersResponse]
}

// NewGroupServiceClient returns a client for the group service at baseURL.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *GroupServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &GroupServiceClient{
		createGroup:     connect.NewClient[CreateGroupRequest, CreateGroupResponse](httpClient, baseURL+GroupServiceCreateGroupProcedure, opts...),
		listGroups:      connect.NewClient[ListGroupsRequest, ListGroupsResponse](httpClient, baseURL+GroupServiceListGroupsProcedure, opts...),
		getGroup:        connect.NewClient[GetGroupRequest, GetGroupResponse](httpClient, baseURL+GroupServiceGetGroupProcedure, opts...),
		addMember:       connect.NewClient[AddMemberRequest, AddMemberResponse](httpClient, baseURL+GroupServiceAddMemberProcedure, opts...),
		addItem:         connect.NewClient[AddItemRequest, AddItemResponse](httpClient, baseURL+GroupServiceAddItemProcedure, opts...),
		updateItemPrice: connect.NewClient[UpdateItemPriceRequest, UpdateItemPriceResponse](httpClient, baseURL+GroupServiceUpdateItemPriceProcedure, opts...),
		deleteItem:      connect.NewClient[DeleteItemRequest, DeleteItemResponse](httpClient, baseURL+GroupServiceDeleteItemProcedure, opts...),
		createOrder:     connect.NewClient[CreateOrderRequest, CreateOrderResponse](httpClient, baseURL+GroupServiceCreateOrderProcedure, opts...),
		deleteOrder:     connect.NewClient[DeleteOrderRequest, DeleteOrderResponse](httpClient, baseURL+GroupServiceDeleteOrderProcedure, opts...),
		listOrders:      connect.NewClient[ListOrdersRequest, ListOrdersResponse](httpClient, baseURL+GroupServiceListOrdersProcedure, opts...),
	}
}

func (c *GroupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) ListGroups(ctx context.Context, req *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *GroupServiceClient) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) AddMember(ctx context.Context, req *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *GroupServiceClient) AddItem(ctx context.Context, req *connect.Request[AddItemRequest]) (*connect.Response[AddItemResponse], error) {
	return c.addItem.CallUnary(ctx, req)
}

func (c *GroupServiceClient) UpdateItemPrice(ctx context.Context, req *connect.Request[UpdateItemPriceRequest]) (*connect.Response[UpdateItemPriceResponse], error) {
	return c.updateItemPrice.CallUnary(ctx, req)
}

func (c *GroupServiceClient) DeleteItem(ctx context.Context, req *connect.Request[DeleteItemRequest]) (*connect.Response[DeleteItemResponse], error) {
	return c.deleteItem.CallUnary(ctx, req)
}

func (c *GroupServiceClient) CreateOrder(ctx context.Context, req *connect.Request[CreateOrderRequest]) (*connect.Response[CreateOrderResponse], error) {
	return c.createOrder.CallUnary(ctx, req)
}

func (c *GroupServiceClient) DeleteOrder(ctx context.Context, req *connect.Request[DeleteOrderRequest]) (*connect.Response[DeleteOrderResponse], error) {
	return c.deleteOrder.CallUnary(ctx, req)
}

func (c *GroupServiceClient) ListOrders(ctx context.Context, req *connect.Request[ListOrdersRequest]) (*connect.Response[ListOrdersResponse], error) {
	return c.listOrders.CallUnary(ctx, req)
}

// SettlementServiceClient calls the settlement service over Connect.
type SettlementServiceClient struct {
	getSettlements *connect.Client[GetSettlementsRequest, GetSettlementsResponse]
	settleGroups   *connect.Client[SettleGroupsRequest, SettleGroupsResponse]
}

// NewSettlementServiceClient returns a client for the settlement service at baseURL.
func NewSettlementServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SettlementServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &SettlementServiceClient{
		getSettlements: connect.NewClient[GetSettlementsRequest, GetSettlementsResponse](httpClient, baseURL+SettlementServiceGetSettlementsProcedure, opts...),
		settleGroups:   connect.NewClient[SettleGroupsRequest, SettleGroupsResponse](httpClient, baseURL+SettlementServiceSettleGroupsProcedure, opts...),
	}
}

func (c *SettlementServiceClient) GetSettlements(ctx context.Context, req *connect.Request[GetSettlementsRequest]) (*connect.Response[GetSettlementsResponse], error) {
	return c.getSettlements.CallUnary(ctx, req)
}

func (c *SettlementServiceClient) SettleGroups(ctx context.Context, req *connect.Request[SettleGroupsRequest]) (*connect.Response[SettleGroupsResponse], error) {
	return c.settleGroups.CallUnary(ctx, req)
}
