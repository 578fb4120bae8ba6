package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
)

func TestCreateGroup(t *testing.T) {
	c := setupTestServer(t)

	resp, err := c.groups.CreateGroup(context.Background(), connect.NewRequest(&CreateGroupRequest{
		Name: "Roommates",
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	group := resp.Msg.Group
	if group.ID == "" {
		t.Error("expected group ID to be set")
	}
	if group.Name != "Roommates" {
		t.Errorf("expected name 'Roommates', got '%s'", group.Name)
	}
	if group.Currency != "EUR" {
		t.Errorf("expected default currency EUR, got %s", group.Currency)
	}
	if group.CreatedAt == 0 {
		t.Error("expected created_at to be set")
	}
}

func TestCreateGroup_InvalidRequest(t *testing.T) {
	c := setupTestServer(t)

	tests := []struct {
		name string
		req  *CreateGroupRequest
	}{
		{"missing name", &CreateGroupRequest{}},
		{"unknown currency", &CreateGroupRequest{Name: "Trip", Currency: "ABC"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.groups.CreateGroup(context.Background(), connect.NewRequest(tt.req))
			if connect.CodeOf(err) != connect.CodeInvalidArgument {
				t.Errorf("expected InvalidArgument, got %v", err)
			}
		})
	}
}

func TestListGroups(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	empty, err := c.groups.ListGroups(ctx, connect.NewRequest(&ListGroupsRequest{}))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(empty.Msg.Groups) != 0 {
		t.Errorf("expected no groups, got %d", len(empty.Msg.Groups))
	}

	for _, name := range []string{"Roommates", "Climbing"} {
		if _, err := c.groups.CreateGroup(ctx, connect.NewRequest(&CreateGroupRequest{Name: name, Currency: "USD"})); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
	}

	resp, err := c.groups.ListGroups(ctx, connect.NewRequest(&ListGroupsRequest{}))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(resp.Msg.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(resp.Msg.Groups))
	}
	if resp.Msg.Groups[0].Name != "Roommates" || resp.Msg.Groups[1].Currency != "USD" {
		t.Errorf("unexpected groups: %+v", resp.Msg.Groups)
	}
}

func TestAddMember_GroupNotFound(t *testing.T) {
	c := setupTestServer(t)

	_, err := c.groups.AddMember(context.Background(), connect.NewRequest(&AddMemberRequest{
		GroupID:  "nonexistent-id",
		Nickname: "Ghost",
	}))
	if connect.CodeOf(err) != connect.CodeNotFound {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestGetGroup(t *testing.T) {
	c := setupTestServer(t)
	f := newFixture(t, c, []string{"Alice", "Bob", "Carol"}, map[string]string{
		"Wine":   "6.00",
		"Crisps": "1.25",
		"Pint":   "4.50",
	})
	ctx := context.Background()

	if _, err := c.groups.AddItem(ctx, connect.NewRequest(&AddItemRequest{
		GroupID: f.group.ID,
		Name:    "Birthday cake",
		Price:   "20.00",
		OneOff:  true,
	})); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	resp, err := c.groups.GetGroup(ctx, connect.NewRequest(&GetGroupRequest{GroupID: f.group.ID}))
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if resp.Msg.Group != f.group {
		t.Errorf("expected group %+v, got %+v", f.group, resp.Msg.Group)
	}

	var nicknames []string
	for _, m := range resp.Msg.Members {
		nicknames = append(nicknames, m.Nickname)
	}
	if len(nicknames) != 3 || nicknames[0] != "Alice" || nicknames[1] != "Bob" || nicknames[2] != "Carol" {
		t.Errorf("expected members in join order, got %v", nicknames)
	}

	var menu []string
	for _, i := range resp.Msg.Menu {
		menu = append(menu, i.Name+"="+i.Price)
	}
	want := []string{"Crisps=1.25", "Pint=4.50", "Wine=6.00"}
	if len(menu) != len(want) {
		t.Fatalf("expected menu %v, got %v", want, menu)
	}
	for i := range want {
		if menu[i] != want[i] {
			t.Errorf("menu[%d]: expected %s, got %s", i, want[i], menu[i])
		}
	}
}

func TestGetGroup_NotFound(t *testing.T) {
	c := setupTestServer(t)

	_, err := c.groups.GetGroup(context.Background(), connect.NewRequest(&GetGroupRequest{GroupID: "nonexistent-id"}))
	if connect.CodeOf(err) != connect.CodeNotFound {
		t.Errorf("expected NotFound, got %v", err)
	}

	_, err = c.groups.GetGroup(context.Background(), connect.NewRequest(&GetGroupRequest{}))
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Errorf("expected InvalidArgument for empty group_id, got %v", err)
	}
}

func TestDeleteItem(t *testing.T) {
	c := setupTestServer(t)
	f := newFixture(t, c, []string{"Alice", "Bob"}, map[string]string{"Pint": "4.00", "Wine": "6.00"})
	other := newFixture(t, c, []string{"Mallory"}, map[string]string{"Cider": "3.00"})
	ctx := context.Background()

	order := f.order(t, c, "Alice", [2]string{"Pint", "Bob"})

	_, err := c.groups.DeleteItem(ctx, connect.NewRequest(&DeleteItemRequest{GroupID: f.group.ID, ItemID: f.items["Pint"].ID}))
	if connect.CodeOf(err) != connect.CodeFailedPrecondition {
		t.Errorf("expected FailedPrecondition for item on an order, got %v", err)
	}

	_, err = c.groups.DeleteItem(ctx, connect.NewRequest(&DeleteItemRequest{GroupID: f.group.ID, ItemID: other.items["Cider"].ID}))
	if connect.CodeOf(err) != connect.CodeNotFound {
		t.Errorf("expected NotFound for item of another group, got %v", err)
	}

	if _, err := c.groups.DeleteItem(ctx, connect.NewRequest(&DeleteItemRequest{GroupID: f.group.ID, ItemID: f.items["Wine"].ID})); err != nil {
		t.Fatalf("DeleteItem failed: %v", err)
	}
	if _, err := c.groups.DeleteOrder(ctx, connect.NewRequest(&DeleteOrderRequest{OrderID: order.ID})); err != nil {
		t.Fatalf("DeleteOrder failed: %v", err)
	}
	if _, err := c.groups.DeleteItem(ctx, connect.NewRequest(&DeleteItemRequest{GroupID: f.group.ID, ItemID: f.items["Pint"].ID})); err != nil {
		t.Fatalf("DeleteItem after order removal failed: %v", err)
	}

	resp, err := c.groups.GetGroup(ctx, connect.NewRequest(&GetGroupRequest{GroupID: f.group.ID}))
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if len(resp.Msg.Menu) != 0 {
		t.Errorf("expected empty menu, got %+v", resp.Msg.Menu)
	}

	otherResp, err := c.groups.GetGroup(ctx, connect.NewRequest(&GetGroupRequest{GroupID: other.group.ID}))
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if len(otherResp.Msg.Menu) != 1 {
		t.Errorf("expected other group's menu untouched, got %+v", otherResp.Msg.Menu)
	}
}

func TestAddItem_InvalidPrice(t *testing.T) {
	c := setupTestServer(t)
	f := newFixture(t, c, []string{"Alice"}, nil)

	for _, price := range []string{"abc", "-1.00", "1.005", "4.500", "100000000000.01"} {
		t.Run(price, func(t *testing.T) {
			_, err := c.groups.AddItem(context.Background(), connect.NewRequest(&AddItemRequest{
				GroupID: f.group.ID,
				Name:    "Pint",
				Price:   price,
			}))
			if connect.CodeOf(err) != connect.CodeInvalidArgument {
				t.Errorf("expected InvalidArgument for %q, got %v", price, err)
			}
		})
	}
}

func TestCreateOrder(t *testing.T) {
	c := setupTestServer(t)
	f := newFixture(t, c, []string{"Alice", "Bob"}, map[string]string{"Pint": "4.50", "Crisps": "1.25"})

	order := f.order(t, c, "Alice",
		[2]string{"Pint", "Alice"},
		[2]string{"Pint", "Bob"},
		[2]string{"Crisps", "Bob"},
	)

	if order.ID == "" {
		t.Error("expected order ID to be set")
	}
	if order.Total != "10.25" {
		t.Errorf("expected total 10.25, got %s", order.Total)
	}
	if len(order.Lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(order.Lines))
	}
	if order.Lines[2].ItemName != "Crisps" || order.Lines[2].Price != "1.25" {
		t.Errorf("unexpected line: %+v", order.Lines[2])
	}
}

func TestCreateOrder_Rejected(t *testing.T) {
	c := setupTestServer(t)
	f := newFixture(t, c, []string{"Alice", "Bob"}, map[string]string{"Pint": "4.50"})
	other := newFixture(t, c, []string{"Mallory"}, map[string]string{"Wine": "6.00"})
	ctx := context.Background()

	tests := []struct {
		name string
		req  *CreateOrderRequest
		code connect.Code
	}{
		{
			name: "no lines",
			req:  &CreateOrderRequest{GroupID: f.group.ID, PayerID: f.members["Alice"].ID},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "line without member",
			req: &CreateOrderRequest{GroupID: f.group.ID, PayerID: f.members["Alice"].ID, Lines: []OrderLineInput{
				{ItemID: f.items["Pint"].ID},
			}},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "unknown group",
			req: &CreateOrderRequest{GroupID: "nonexistent-id", PayerID: f.members["Alice"].ID, Lines: []OrderLineInput{
				{ItemID: f.items["Pint"].ID, MemberID: f.members["Bob"].ID},
			}},
			code: connect.CodeNotFound,
		},
		{
			name: "payer from another group",
			req: &CreateOrderRequest{GroupID: f.group.ID, PayerID: other.members["Mallory"].ID, Lines: []OrderLineInput{
				{ItemID: f.items["Pint"].ID, MemberID: f.members["Bob"].ID},
			}},
			code: connect.CodeFailedPrecondition,
		},
		{
			name: "item from another group",
			req: &CreateOrderRequest{GroupID: f.group.ID, PayerID: f.members["Alice"].ID, Lines: []OrderLineInput{
				{ItemID: other.items["Wine"].ID, MemberID: f.members["Bob"].ID},
			}},
			code: connect.CodeFailedPrecondition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.groups.CreateOrder(ctx, connect.NewRequest(tt.req))
			if connect.CodeOf(err) != tt.code {
				t.Errorf("expected %v, got %v", tt.code, err)
			}
		})
	}
}

func TestListOrders_PriceFollowsItem(t *testing.T) {
	c := setupTestServer(t)
	f := newFixture(t, c, []string{"Alice", "Bob"}, map[string]string{"Pint": "4.00"})
	ctx := context.Background()

	f.order(t, c, "Alice", [2]string{"Pint", "Bob"})
	f.order(t, c, "Bob", [2]string{"Pint", "Alice"}, [2]string{"Pint", "Bob"})

	list, err := c.groups.ListOrders(ctx, connect.NewRequest(&ListOrdersRequest{GroupID: f.group.ID}))
	if err != nil {
		t.Fatalf("ListOrders failed: %v", err)
	}
	if len(list.Msg.Orders) != 2 || list.Msg.Total != "12.00" {
		t.Fatalf("expected 2 orders totalling 12.00, got %d totalling %s", len(list.Msg.Orders), list.Msg.Total)
	}
	if list.Msg.Orders[0].PayerID != f.members["Bob"].ID || list.Msg.Orders[1].PayerID != f.members["Alice"].ID {
		t.Errorf("expected newest order first, got payers %s then %s", list.Msg.Orders[0].PayerID, list.Msg.Orders[1].PayerID)
	}

	updated, err := c.groups.UpdateItemPrice(ctx, connect.NewRequest(&UpdateItemPriceRequest{
		ItemID: f.items["Pint"].ID,
		Price:  "5.50",
	}))
	if err != nil {
		t.Fatalf("UpdateItemPrice failed: %v", err)
	}
	if updated.Msg.Item.Price != "5.50" {
		t.Errorf("expected updated price 5.50, got %s", updated.Msg.Item.Price)
	}

	list, err = c.groups.ListOrders(ctx, connect.NewRequest(&ListOrdersRequest{GroupID: f.group.ID}))
	if err != nil {
		t.Fatalf("ListOrders failed: %v", err)
	}
	if list.Msg.Total != "16.50" {
		t.Errorf("expected total 16.50 after price change, got %s", list.Msg.Total)
	}
	if list.Msg.Orders[0].Total != "11.00" {
		t.Errorf("expected newest order total 11.00, got %s", list.Msg.Orders[0].Total)
	}
	if list.Msg.Orders[1].Total != "5.50" {
		t.Errorf("expected oldest order total 5.50, got %s", list.Msg.Orders[1].Total)
	}
}

func TestDeleteOrder(t *testing.T) {
	c := setupTestServer(t)
	f := newFixture(t, c, []string{"Alice", "Bob"}, map[string]string{"Pint": "4.00"})
	ctx := context.Background()

	order := f.order(t, c, "Alice", [2]string{"Pint", "Bob"})

	if _, err := c.groups.DeleteOrder(ctx, connect.NewRequest(&DeleteOrderRequest{OrderID: order.ID})); err != nil {
		t.Fatalf("DeleteOrder failed: %v", err)
	}

	_, err := c.groups.DeleteOrder(ctx, connect.NewRequest(&DeleteOrderRequest{OrderID: order.ID}))
	if connect.CodeOf(err) != connect.CodeNotFound {
		t.Errorf("expected NotFound on second delete, got %v", err)
	}

	list, err := c.groups.ListOrders(ctx, connect.NewRequest(&ListOrdersRequest{GroupID: f.group.ID}))
	if err != nil {
		t.Fatalf("ListOrders failed: %v", err)
	}
	if len(list.Msg.Orders) != 0 || list.Msg.Total != "0.00" {
		t.Errorf("expected no orders, got %+v", list.Msg)
	}
}
