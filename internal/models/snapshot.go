package models

import "github.com/vixducis/pour-decisions/internal/calculator"

// Snapshot is a consistent read of everything needed to settle one group.
// Members and Orders are in insertion order.
type Snapshot struct {
	Group   Group
	Members []Member
	Orders  []Order
}

// CalculatorMembers converts the snapshot's members for the calculator.
func (s *Snapshot) CalculatorMembers() []calculator.Member {
	members := make([]calculator.Member, len(s.Members))
	for i, m := range s.Members {
		members[i] = calculator.Member{ID: m.ID, Nickname: m.Nickname}
	}
	return members
}

// CalculatorOrders converts the snapshot's orders and lines for the calculator.
func (s *Snapshot) CalculatorOrders() []calculator.Order {
	orders := make([]calculator.Order, len(s.Orders))
	for i, o := range s.Orders {
		orders[i] = CalculatorOrder(o)
	}
	return orders
}

// CalculatorOrder converts a single order.
func CalculatorOrder(o Order) calculator.Order {
	lines := make([]calculator.Line, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = calculator.Line{ID: l.ID, ItemID: l.ItemID, MemberID: l.MemberID, Price: l.Price}
	}
	return calculator.Order{ID: o.ID, PayerID: o.PayerID, Lines: lines}
}

// Balances computes every member's balance from the snapshot.
func (s *Snapshot) Balances() ([]calculator.MemberBalance, error) {
	return calculator.GroupBalances(s.Group.Currency, s.CalculatorMembers(), s.CalculatorOrders())
}
