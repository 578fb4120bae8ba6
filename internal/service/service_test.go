package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vixducis/pour-decisions/internal/metrics"
	"github.com/vixducis/pour-decisions/internal/middleware"
	"github.com/vixducis/pour-decisions/internal/storage/sqlite"
)

type testClients struct {
	groups      *GroupServiceClient
	settlements *SettlementServiceClient
}

// setupTestServer creates a test server with both GroupService and SettlementService.
func setupTestServer(t *testing.T) testClients {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	opts := connect.WithInterceptors(middleware.LoggingInterceptor(nil))
	groupPath, groupHandler := NewGroupServiceHandler(NewGroupService(store), opts)
	settlementPath, settlementHandler := NewSettlementServiceHandler(
		NewSettlementService(store, metrics.NewSettlement("test", prometheus.NewRegistry()), 2),
		opts,
	)

	mux := http.NewServeMux()
	mux.Handle(groupPath, groupHandler)
	mux.Handle(settlementPath, settlementHandler)
	server := httptest.NewServer(mux)

	t.Cleanup(func() {
		server.Close()
		store.Close()
		os.Remove(tmpFile.Name())
	})

	return testClients{
		groups:      NewGroupServiceClient(http.DefaultClient, server.URL),
		settlements: NewSettlementServiceClient(http.DefaultClient, server.URL),
	}
}

// fixture is a group with members and items keyed by name.
type fixture struct {
	group   Group
	members map[string]Member
	items   map[string]Item
}

func newFixture(t *testing.T, c testClients, nicknames []string, prices map[string]string) fixture {
	t.Helper()
	ctx := context.Background()

	resp, err := c.groups.CreateGroup(ctx, connect.NewRequest(&CreateGroupRequest{Name: "Friday drinks"}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	f := fixture{group: resp.Msg.Group, members: map[string]Member{}, items: map[string]Item{}}

	for _, nickname := range nicknames {
		m, err := c.groups.AddMember(ctx, connect.NewRequest(&AddMemberRequest{GroupID: f.group.ID, Nickname: nickname}))
		if err != nil {
			t.Fatalf("AddMember(%s) failed: %v", nickname, err)
		}
		f.members[nickname] = m.Msg.Member
	}
	for name, price := range prices {
		i, err := c.groups.AddItem(ctx, connect.NewRequest(&AddItemRequest{GroupID: f.group.ID, Name: name, Price: price}))
		if err != nil {
			t.Fatalf("AddItem(%s) failed: %v", name, err)
		}
		f.items[name] = i.Msg.Item
	}
	return f
}

// order creates an order paid by payer; each pair is {item, consumer}.
func (f fixture) order(t *testing.T, c testClients, payer string, lines ...[2]string) Order {
	t.Helper()
	req := &CreateOrderRequest{GroupID: f.group.ID, PayerID: f.members[payer].ID}
	for _, l := range lines {
		req.Lines = append(req.Lines, OrderLineInput{ItemID: f.items[l[0]].ID, MemberID: f.members[l[1]].ID})
	}
	resp, err := c.groups.CreateOrder(context.Background(), connect.NewRequest(req))
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	return resp.Msg.Order
}
