package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/vixducis/pour-decisions/internal/calculator"
	"github.com/vixducis/pour-decisions/internal/models"
	"github.com/vixducis/pour-decisions/internal/money"
	"github.com/vixducis/pour-decisions/internal/storage"
)

// GroupService implements the Connect GroupService: the records that feed
// balance and settlement computations.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a new group.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error) {
	slog.Info("CreateGroup request received", "name", req.Msg.Name, "currency", req.Msg.Currency)
	if err := validateRequest(GroupServiceCreateGroupProcedure, req.Msg); err != nil {
		return nil, err
	}

	group := &models.Group{Name: req.Msg.Name, Currency: req.Msg.Currency}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, toConnectError(GroupServiceCreateGroupProcedure, err)
	}

	slog.Info("Group created", "group_id", group.ID)
	return connect.NewResponse(&CreateGroupResponse{Group: groupView(group)}), nil
}

// ListGroups retrieves all groups.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error) {
	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		return nil, toConnectError(GroupServiceListGroupsProcedure, err)
	}

	views := make([]Group, len(groups))
	for i, g := range groups {
		views[i] = groupView(g)
	}
	slog.Debug("ListGroups successful", "count", len(groups))
	return connect.NewResponse(&ListGroupsResponse{Groups: views}), nil
}

// GetGroup returns a group with its members and its menu. One-off items are
// left off the menu.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error) {
	if err := validateRequest(GroupServiceGetGroupProcedure, req.Msg); err != nil {
		return nil, err
	}

	detail, err := s.store.LoadGroupDetail(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(GroupServiceGetGroupProcedure, err)
	}

	resp := &GetGroupResponse{
		Group:   groupView(&detail.Group),
		Members: make([]Member, len(detail.Members)),
		Menu:    make([]Item, len(detail.Menu)),
	}
	for i := range detail.Members {
		resp.Members[i] = memberView(&detail.Members[i])
	}
	for i := range detail.Menu {
		resp.Menu[i] = itemView(&detail.Menu[i])
	}

	slog.Debug("GetGroup successful", "group_id", detail.Group.ID, "members", len(resp.Members), "menu", len(resp.Menu))
	return connect.NewResponse(resp), nil
}

// AddMember adds a participant to a group.
func (s *GroupService) AddMember(ctx context.Context, req *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error) {
	slog.Info("AddMember request received", "group_id", req.Msg.GroupID, "nickname", req.Msg.Nickname)
	if err := validateRequest(GroupServiceAddMemberProcedure, req.Msg); err != nil {
		return nil, err
	}

	member := &models.Member{GroupID: req.Msg.GroupID, Nickname: req.Msg.Nickname}
	if err := s.store.AddMember(ctx, member); err != nil {
		return nil, toConnectError(GroupServiceAddMemberProcedure, err)
	}

	slog.Info("Member added", "group_id", member.GroupID, "member_id", member.ID)
	return connect.NewResponse(&AddMemberResponse{Member: memberView(member)}), nil
}

// AddItem adds a priced item to a group. The price is parsed in the group's currency.
func (s *GroupService) AddItem(ctx context.Context, req *connect.Request[AddItemRequest]) (*connect.Response[AddItemResponse], error) {
	slog.Info("AddItem request received", "group_id", req.Msg.GroupID, "name", req.Msg.Name, "price", req.Msg.Price)
	if err := validateRequest(GroupServiceAddItemProcedure, req.Msg); err != nil {
		return nil, err
	}

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(GroupServiceAddItemProcedure, err)
	}
	price, err := money.Parse(req.Msg.Price, group.Currency)
	if err != nil {
		return nil, toConnectError(GroupServiceAddItemProcedure, err)
	}

	item := &models.Item{GroupID: group.ID, Name: req.Msg.Name, Price: price, OneOff: req.Msg.OneOff}
	if err := s.store.CreateItem(ctx, item); err != nil {
		return nil, toConnectError(GroupServiceAddItemProcedure, err)
	}

	slog.Info("Item added", "group_id", group.ID, "item_id", item.ID)
	return connect.NewResponse(&AddItemResponse{Item: itemView(item)}), nil
}

// UpdateItemPrice changes an item's listed price. Existing order lines
// referencing the item are valued at the new price from now on.
func (s *GroupService) UpdateItemPrice(ctx context.Context, req *connect.Request[UpdateItemPriceRequest]) (*connect.Response[UpdateItemPriceResponse], error) {
	slog.Info("UpdateItemPrice request received", "item_id", req.Msg.ItemID, "price", req.Msg.Price)
	if err := validateRequest(GroupServiceUpdateItemPriceProcedure, req.Msg); err != nil {
		return nil, err
	}

	item, err := s.store.GetItem(ctx, req.Msg.ItemID)
	if err != nil {
		return nil, toConnectError(GroupServiceUpdateItemPriceProcedure, err)
	}
	price, err := money.Parse(req.Msg.Price, item.Price.Currency())
	if err != nil {
		return nil, toConnectError(GroupServiceUpdateItemPriceProcedure, err)
	}
	if err := s.store.UpdateItemPrice(ctx, item.ID, price); err != nil {
		return nil, toConnectError(GroupServiceUpdateItemPriceProcedure, err)
	}
	item.Price = price

	slog.Info("Item price updated", "item_id", item.ID, "price", price)
	return connect.NewResponse(&UpdateItemPriceResponse{Item: itemView(item)}), nil
}

// DeleteItem removes an item from a group's menu. Items still referenced by
// an order line cannot be deleted.
func (s *GroupService) DeleteItem(ctx context.Context, req *connect.Request[DeleteItemRequest]) (*connect.Response[DeleteItemResponse], error) {
	slog.Info("DeleteItem request received", "group_id", req.Msg.GroupID, "item_id", req.Msg.ItemID)
	if err := validateRequest(GroupServiceDeleteItemProcedure, req.Msg); err != nil {
		return nil, err
	}

	if err := s.store.DeleteItem(ctx, req.Msg.GroupID, req.Msg.ItemID); err != nil {
		return nil, toConnectError(GroupServiceDeleteItemProcedure, err)
	}

	slog.Info("Item deleted", "group_id", req.Msg.GroupID, "item_id", req.Msg.ItemID)
	return connect.NewResponse(&DeleteItemResponse{}), nil
}

// CreateOrder records a purchase paid by one member, with one line per item instance.
func (s *GroupService) CreateOrder(ctx context.Context, req *connect.Request[CreateOrderRequest]) (*connect.Response[CreateOrderResponse], error) {
	slog.Info("CreateOrder request received",
		"group_id", req.Msg.GroupID,
		"payer_id", req.Msg.PayerID,
		"lines_count", len(req.Msg.Lines),
	)
	if err := validateRequest(GroupServiceCreateOrderProcedure, req.Msg); err != nil {
		return nil, err
	}

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(GroupServiceCreateOrderProcedure, err)
	}

	order := &models.Order{GroupID: group.ID, PayerID: req.Msg.PayerID}
	for _, l := range req.Msg.Lines {
		order.Lines = append(order.Lines, models.OrderLine{ItemID: l.ItemID, MemberID: l.MemberID})
	}
	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, toConnectError(GroupServiceCreateOrderProcedure, err)
	}

	total, err := models.CalculatorOrder(*order).Total(group.Currency)
	if err != nil {
		return nil, toConnectError(GroupServiceCreateOrderProcedure, err)
	}

	slog.Info("Order created", "group_id", group.ID, "order_id", order.ID, "total", total)
	return connect.NewResponse(&CreateOrderResponse{Order: orderView(*order, total)}), nil
}

// DeleteOrder removes an order and its lines.
func (s *GroupService) DeleteOrder(ctx context.Context, req *connect.Request[DeleteOrderRequest]) (*connect.Response[DeleteOrderResponse], error) {
	slog.Info("DeleteOrder request received", "order_id", req.Msg.OrderID)
	if err := validateRequest(GroupServiceDeleteOrderProcedure, req.Msg); err != nil {
		return nil, err
	}

	if err := s.store.DeleteOrder(ctx, req.Msg.OrderID); err != nil {
		return nil, toConnectError(GroupServiceDeleteOrderProcedure, err)
	}

	slog.Info("Order deleted", "order_id", req.Msg.OrderID)
	return connect.NewResponse(&DeleteOrderResponse{}), nil
}

// ListOrders returns a group's orders, newest first, with line prices
// resolved through their items, plus the group's overall spend.
func (s *GroupService) ListOrders(ctx context.Context, req *connect.Request[ListOrdersRequest]) (*connect.Response[ListOrdersResponse], error) {
	if err := validateRequest(GroupServiceListOrdersProcedure, req.Msg); err != nil {
		return nil, err
	}

	snapshot, err := s.store.LoadSnapshot(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(GroupServiceListOrdersProcedure, err)
	}
	currency := snapshot.Group.Currency

	orders := snapshot.CalculatorOrders()
	views := make([]Order, len(snapshot.Orders))
	for i, o := range snapshot.Orders {
		total, err := orders[i].Total(currency)
		if err != nil {
			return nil, toConnectError(GroupServiceListOrdersProcedure, err)
		}
		views[len(views)-1-i] = orderView(o, total)
	}
	total, err := calculator.SumOrders(currency, orders)
	if err != nil {
		return nil, toConnectError(GroupServiceListOrdersProcedure, err)
	}

	slog.Debug("ListOrders successful", "group_id", snapshot.Group.ID, "count", len(views))
	return connect.NewResponse(&ListOrdersResponse{Orders: views, Total: total.String()}), nil
}
