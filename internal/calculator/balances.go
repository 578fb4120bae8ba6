package calculator

import (
	"errors"
	"fmt"

	"github.com/vixducis/pour-decisions/internal/money"
)

var (
	// ErrUnknownMember is returned when an order or line references someone outside the group.
	ErrUnknownMember = errors.New("unknown member")
	// ErrUnbalanced signals that balances do not net to zero. This is a defect upstream, never user error.
	ErrUnbalanced = errors.New("balances do not sum to zero")
)

// BalanceStatus describes the sign of a member's balance.
type BalanceStatus string

const (
	// StatusZero means the member is settled.
	StatusZero BalanceStatus = "zero"
	// StatusPositive means the member is owed money.
	StatusPositive BalanceStatus = "positive"
	// StatusNegative means the member owes money.
	StatusNegative BalanceStatus = "negative"
)

// Member identifies a group participant.
type Member struct {
	ID       string
	Nickname string
}

// Ledger is everything needed to compute one member's balance.
type Ledger struct {
	Member   Member
	Paid     []Order // Orders this member funded
	Consumed []Line  // Lines attributed to this member, across all orders
}

// MemberBalance represents the balance information for one group member.
type MemberBalance struct {
	Member   Member
	Paid     money.Money
	Consumed money.Money
	Balance  money.Money // Positive = owed money, Negative = owes money
}

// Status reports whether the member is settled, a creditor or a debtor.
func (b MemberBalance) Status() BalanceStatus {
	switch {
	case b.Balance.IsZero():
		return StatusZero
	case b.Balance.IsPositive():
		return StatusPositive
	default:
		return StatusNegative
	}
}

// ComputeBalance derives paid, consumed and balance for a single member.
// It is a pure function of the ledger; nothing is cached on the inputs.
func ComputeBalance(currency string, ledger Ledger) (MemberBalance, error) {
	paid, err := SumOrders(currency, ledger.Paid)
	if err != nil {
		return MemberBalance{}, fmt.Errorf("failed to sum paid for %s: %w", ledger.Member.ID, err)
	}
	consumed, err := SumLines(currency, ledger.Consumed)
	if err != nil {
		return MemberBalance{}, fmt.Errorf("failed to sum consumed for %s: %w", ledger.Member.ID, err)
	}
	balance, err := paid.Subtract(consumed)
	if err != nil {
		return MemberBalance{}, err
	}
	return MemberBalance{
		Member:   ledger.Member,
		Paid:     paid,
		Consumed: consumed,
		Balance:  balance,
	}, nil
}

// Ledgers distributes a group's orders over its members.
// The payer of an order is credited the whole order; each line is charged to
// the member it is attributed to. Ledgers are returned in member order.
func Ledgers(members []Member, orders []Order) ([]Ledger, error) {
	ledgers := make([]Ledger, len(members))
	index := make(map[string]int, len(members))
	for i, m := range members {
		ledgers[i].Member = m
		index[m.ID] = i
	}

	for _, o := range orders {
		payer, ok := index[o.PayerID]
		if !ok {
			return nil, fmt.Errorf("%w: order %s paid by %s", ErrUnknownMember, o.ID, o.PayerID)
		}
		ledgers[payer].Paid = append(ledgers[payer].Paid, o)

		for _, l := range o.Lines {
			consumer, ok := index[l.MemberID]
			if !ok {
				return nil, fmt.Errorf("%w: line %s attributed to %s", ErrUnknownMember, l.ID, l.MemberID)
			}
			ledgers[consumer].Consumed = append(ledgers[consumer].Consumed, l)
		}
	}
	return ledgers, nil
}

// GroupBalances computes every member's balance for one group.
//
// Algorithm:
//   - paid     = sum of totals of orders the member funded
//   - consumed = sum of prices of lines attributed to the member
//   - balance  = paid - consumed
//
// Every line counts once as consumed and once (through its order) as paid,
// so the balances of a group always net to zero.
func GroupBalances(currency string, members []Member, orders []Order) ([]MemberBalance, error) {
	ledgers, err := Ledgers(members, orders)
	if err != nil {
		return nil, err
	}
	balances := make([]MemberBalance, len(ledgers))
	for i, l := range ledgers {
		b, err := ComputeBalance(currency, l)
		if err != nil {
			return nil, err
		}
		balances[i] = b
	}
	return balances, nil
}

// CheckZeroSum returns ErrUnbalanced if the balances do not net to exactly zero.
func CheckZeroSum(currency string, balances []MemberBalance) error {
	values := make([]money.Money, len(balances))
	for i, b := range balances {
		values[i] = b.Balance
	}
	total, err := money.Sum(currency, values...)
	if err != nil {
		return err
	}
	if !total.IsZero() {
		return fmt.Errorf("%w: net %s %s", ErrUnbalanced, total, currency)
	}
	return nil
}
