package service

import "github.com/vixducis/pour-decisions/internal/calculator"

// Group is the transport shape of a group.
type Group struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Currency  string `json:"currency"`
	CreatedAt int64  `json:"created_at"`
}

// Member is the transport shape of a group member.
type Member struct {
	ID       string `json:"id"`
	GroupID  string `json:"group_id"`
	Nickname string `json:"nickname"`
}

// Item is the transport shape of a priced item. Price is a fixed-point string such as "4.50".
type Item struct {
	ID      string `json:"id"`
	GroupID string `json:"group_id"`
	Name    string `json:"name"`
	Price   string `json:"price"`
	OneOff  bool   `json:"one_off"`
}

// OrderLine is the transport shape of one item instance on an order.
type OrderLine struct {
	ID       string `json:"id"`
	ItemID   string `json:"item_id"`
	ItemName string `json:"item_name"`
	MemberID string `json:"member_id"`
	Price    string `json:"price"`
}

// Order is the transport shape of an order with its resolved total.
type Order struct {
	ID        string      `json:"id"`
	GroupID   string      `json:"group_id"`
	PayerID   string      `json:"payer_id"`
	Total     string      `json:"total"`
	Lines     []OrderLine `json:"lines"`
	CreatedAt int64       `json:"created_at"`
}

type CreateGroupRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Currency string `json:"currency,omitempty" validate:"omitempty,iso4217"`
}

type CreateGroupResponse struct {
	Group Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []Group `json:"groups"`
}

type GetGroupRequest struct {
	GroupID string `json:"group_id" validate:"required"`
}

// GetGroupResponse lists members in the order they joined and the menu sorted by name.
type GetGroupResponse struct {
	Group   Group    `json:"group"`
	Members []Member `json:"members"`
	Menu    []Item   `json:"menu"`
}

type AddMemberRequest struct {
	GroupID  string `json:"group_id" validate:"required"`
	Nickname string `json:"nickname" validate:"required,max=50"`
}

type AddMemberResponse struct {
	Member Member `json:"member"`
}

type AddItemRequest struct {
	GroupID string `json:"group_id" validate:"required"`
	Name    string `json:"name" validate:"required,max=100"`
	Price   string `json:"price" validate:"required"`
	OneOff  bool   `json:"one_off"`
}

type AddItemResponse struct {
	Item Item `json:"item"`
}

type UpdateItemPriceRequest struct {
	ItemID string `json:"item_id" validate:"required"`
	Price  string `json:"price" validate:"required"`
}

type UpdateItemPriceResponse struct {
	Item Item `json:"item"`
}

type DeleteItemRequest struct {
	GroupID string `json:"group_id" validate:"required"`
	ItemID  string `json:"item_id" validate:"required"`
}

type DeleteItemResponse struct{}

// OrderLineInput attributes one instance of an item to the member who consumed it.
type OrderLineInput struct {
	ItemID   string `json:"item_id" validate:"required"`
	MemberID string `json:"member_id" validate:"required"`
}

type CreateOrderRequest struct {
	GroupID string           `json:"group_id" validate:"required"`
	PayerID string           `json:"payer_id" validate:"required"`
	Lines   []OrderLineInput `json:"lines" validate:"min=1,dive"`
}

type CreateOrderResponse struct {
	Order Order `json:"order"`
}

type DeleteOrderRequest struct {
	OrderID string `json:"order_id" validate:"required"`
}

type DeleteOrderResponse struct{}

type ListOrdersRequest struct {
	GroupID string `json:"group_id" validate:"required"`
}

type ListOrdersResponse struct {
	Orders []Order `json:"orders"`
	Total  string  `json:"total"`
}

type GetSettlementsRequest struct {
	GroupID string `json:"group_id" validate:"required"`
}

// GetSettlementsResponse carries each member's position and the transfers
// that settle the group, in the order they were computed.
type GetSettlementsResponse struct {
	Group       Group                       `json:"group"`
	Balances    []calculator.BalanceView    `json:"balances"`
	Settlements []calculator.SettlementView `json:"settlements"`
}

type SettleGroupsRequest struct {
	GroupIDs []string `json:"group_ids" validate:"min=1,max=100,dive,required"`
}

// SettleGroupsResponse holds one result per requested group, in request order.
type SettleGroupsResponse struct {
	Results []GetSettlementsResponse `json:"results"`
}
