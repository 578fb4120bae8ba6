package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vixducis/pour-decisions/internal/calculator"
)

func TestGetSettlements_OnePayer(t *testing.T) {
	c := setupTestServer(t)
	f := newFixture(t, c, []string{"Alice", "Bob", "Carol"}, map[string]string{"Round": "10.00"})
	f.order(t, c, "Alice",
		[2]string{"Round", "Alice"},
		[2]string{"Round", "Bob"},
		[2]string{"Round", "Carol"},
	)

	resp, err := c.settlements.GetSettlements(context.Background(), connect.NewRequest(&GetSettlementsRequest{GroupID: f.group.ID}))
	require.NoError(t, err)

	assert.Equal(t, f.group, resp.Msg.Group)
	assert.Equal(t, []calculator.BalanceView{
		{ID: f.members["Alice"].ID, Nickname: "Alice", Paid: "30.00", Consumed: "10.00", Balance: "20.00", BalanceStatus: calculator.StatusPositive},
		{ID: f.members["Bob"].ID, Nickname: "Bob", Paid: "0.00", Consumed: "10.00", Balance: "10.00", BalanceStatus: calculator.StatusNegative},
		{ID: f.members["Carol"].ID, Nickname: "Carol", Paid: "0.00", Consumed: "10.00", Balance: "10.00", BalanceStatus: calculator.StatusNegative},
	}, resp.Msg.Balances)

	alice := calculator.MemberRef{ID: f.members["Alice"].ID, Nickname: "Alice"}
	assert.Equal(t, []calculator.SettlementView{
		{From: calculator.MemberRef{ID: f.members["Bob"].ID, Nickname: "Bob"}, To: alice, Amount: 10},
		{From: calculator.MemberRef{ID: f.members["Carol"].ID, Nickname: "Carol"}, To: alice, Amount: 10},
	}, resp.Msg.Settlements)
}

func TestGetSettlements_EveryonePaysOwn(t *testing.T) {
	c := setupTestServer(t)
	f := newFixture(t, c, []string{"Alice", "Bob"}, map[string]string{"Pint": "4.20"})
	f.order(t, c, "Alice", [2]string{"Pint", "Alice"})
	f.order(t, c, "Bob", [2]string{"Pint", "Bob"})

	resp, err := c.settlements.GetSettlements(context.Background(), connect.NewRequest(&GetSettlementsRequest{GroupID: f.group.ID}))
	require.NoError(t, err)

	assert.Empty(t, resp.Msg.Settlements)
	for _, b := range resp.Msg.Balances {
		assert.Equal(t, calculator.StatusZero, b.BalanceStatus)
		assert.Equal(t, "0.00", b.Balance)
	}
}

func TestGetSettlements_FractionalAmount(t *testing.T) {
	c := setupTestServer(t)
	f := newFixture(t, c, []string{"Alice", "Bob"}, map[string]string{"Cocktail": "12.50"})
	f.order(t, c, "Alice", [2]string{"Cocktail", "Bob"})

	resp, err := c.settlements.GetSettlements(context.Background(), connect.NewRequest(&GetSettlementsRequest{GroupID: f.group.ID}))
	require.NoError(t, err)

	require.Len(t, resp.Msg.Settlements, 1)
	assert.Equal(t, 12.5, resp.Msg.Settlements[0].Amount)
	assert.Equal(t, "Bob", resp.Msg.Settlements[0].From.Nickname)
	assert.Equal(t, "Alice", resp.Msg.Settlements[0].To.Nickname)
}

func TestGetSettlements_ReflectsCurrentData(t *testing.T) {
	c := setupTestServer(t)
	f := newFixture(t, c, []string{"Alice", "Bob"}, map[string]string{"Pint": "4.00"})
	ctx := context.Background()
	order := f.order(t, c, "Alice", [2]string{"Pint", "Bob"})

	_, err := c.groups.UpdateItemPrice(ctx, connect.NewRequest(&UpdateItemPriceRequest{ItemID: f.items["Pint"].ID, Price: "6.00"}))
	require.NoError(t, err)

	resp, err := c.settlements.GetSettlements(ctx, connect.NewRequest(&GetSettlementsRequest{GroupID: f.group.ID}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Settlements, 1)
	assert.Equal(t, 6.0, resp.Msg.Settlements[0].Amount)

	_, err = c.groups.DeleteOrder(ctx, connect.NewRequest(&DeleteOrderRequest{OrderID: order.ID}))
	require.NoError(t, err)

	resp, err = c.settlements.GetSettlements(ctx, connect.NewRequest(&GetSettlementsRequest{GroupID: f.group.ID}))
	require.NoError(t, err)
	assert.Empty(t, resp.Msg.Settlements)
}

func TestGetSettlements_Errors(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	_, err := c.settlements.GetSettlements(ctx, connect.NewRequest(&GetSettlementsRequest{}))
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	_, err = c.settlements.GetSettlements(ctx, connect.NewRequest(&GetSettlementsRequest{GroupID: "nonexistent-id"}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}

func TestGetSettlements_EmptyGroup(t *testing.T) {
	c := setupTestServer(t)
	f := newFixture(t, c, nil, nil)

	resp, err := c.settlements.GetSettlements(context.Background(), connect.NewRequest(&GetSettlementsRequest{GroupID: f.group.ID}))
	require.NoError(t, err)
	assert.Empty(t, resp.Msg.Balances)
	assert.Empty(t, resp.Msg.Settlements)
}

func TestSettleGroups(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	var groupIDs []string
	for i := 0; i < 5; i++ {
		f := newFixture(t, c, []string{"Alice", "Bob"}, map[string]string{"Pint": "3.00"})
		for j := 0; j <= i; j++ {
			f.order(t, c, "Alice", [2]string{"Pint", "Bob"})
		}
		groupIDs = append(groupIDs, f.group.ID)
	}

	resp, err := c.settlements.SettleGroups(ctx, connect.NewRequest(&SettleGroupsRequest{GroupIDs: groupIDs}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Results, len(groupIDs))

	for i, result := range resp.Msg.Results {
		assert.Equal(t, groupIDs[i], result.Group.ID, "results keep request order")
		require.Len(t, result.Settlements, 1)
		assert.Equal(t, float64(3*(i+1)), result.Settlements[0].Amount)
	}

	_, err = c.settlements.SettleGroups(ctx, connect.NewRequest(&SettleGroupsRequest{
		GroupIDs: append(groupIDs, "nonexistent-id"),
	}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	_, err = c.settlements.SettleGroups(ctx, connect.NewRequest(&SettleGroupsRequest{}))
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
}
