package calculator

import "github.com/vixducis/pour-decisions/internal/money"

// Settlement represents a suggested payment from a debtor to a creditor.
// Settlements are derived values; they are recomputed on every request and never stored.
type Settlement struct {
	From   Member // Who pays (debtor)
	To     Member // Who receives (creditor)
	Amount money.Money
}

// MemberRef is the transport shape of a member inside a settlement.
type MemberRef struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
}

// SettlementView is the transport shape of a settlement.
// Amount is expressed in major units as a plain number (e.g. 12.5).
type SettlementView struct {
	From   MemberRef `json:"from"`
	To     MemberRef `json:"to"`
	Amount float64   `json:"amount"`
}

// BalanceView is the transport shape of one member's position.
// Balance is the absolute value; its sign is carried by BalanceStatus.
type BalanceView struct {
	ID            string        `json:"id"`
	Nickname      string        `json:"nickname"`
	Paid          string        `json:"paid"`
	Consumed      string        `json:"consumed"`
	Balance       string        `json:"balance"`
	BalanceStatus BalanceStatus `json:"balance_status"`
}

// View converts the settlement to its transport shape.
func (s Settlement) View() SettlementView {
	return SettlementView{
		From:   MemberRef{ID: s.From.ID, Nickname: s.From.Nickname},
		To:     MemberRef{ID: s.To.ID, Nickname: s.To.Nickname},
		Amount: s.Amount.Float64(),
	}
}

// View converts the balance to its transport shape.
func (b MemberBalance) View() BalanceView {
	return BalanceView{
		ID:            b.Member.ID,
		Nickname:      b.Member.Nickname,
		Paid:          b.Paid.String(),
		Consumed:      b.Consumed.String(),
		Balance:       b.Balance.Absolute().String(),
		BalanceStatus: b.Status(),
	}
}

// SettlementViews converts settlements, preserving order.
func SettlementViews(settlements []Settlement) []SettlementView {
	views := make([]SettlementView, len(settlements))
	for i, s := range settlements {
		views[i] = s.View()
	}
	return views
}

// BalanceViews converts balances, preserving order.
func BalanceViews(balances []MemberBalance) []BalanceView {
	views := make([]BalanceView, len(balances))
	for i, b := range balances {
		views[i] = b.View()
	}
	return views
}
