package calculator

import (
	"fmt"
	"sort"

	"github.com/vixducis/pour-decisions/internal/money"
)

// position is a working copy of one member's outstanding amount.
type position struct {
	member    Member
	balance   money.Money // signed, as computed
	remaining money.Money // positive; reduced as transfers are emitted
}

// Settle computes the transfers that bring every balance to zero.
//
// Algorithm (greedy, largest debts first):
//   - Split members into debtors (balance < 0) and creditors (balance > 0);
//     settled members are skipped.
//   - Stable-sort both lists ascending by signed balance, so debtors run from
//     the largest debt and creditors from the smallest credit. Ties keep input order.
//   - Walk both lists with two cursors. Each step transfers
//     min(remaining debt, remaining credit) from debtor to creditor and advances
//     whichever side reached exactly zero (both on equal amounts).
//
// Transfers are returned in the order they are produced. The input balances are not modified.
func Settle(currency string, balances []MemberBalance) ([]Settlement, error) {
	var debtors, creditors []*position
	for _, b := range balances {
		if b.Balance.Currency() != currency {
			return nil, fmt.Errorf("%w: balance of %s is in %s, expected %s",
				money.ErrCurrencyMismatch, b.Member.ID, b.Balance.Currency(), currency)
		}
		p := &position{member: b.Member, balance: b.Balance, remaining: b.Balance.Absolute()}
		switch {
		case b.Balance.IsNegative():
			debtors = append(debtors, p)
		case b.Balance.IsPositive():
			creditors = append(creditors, p)
		}
	}
	sortBySignedBalance(debtors)
	sortBySignedBalance(creditors)

	var settlements []Settlement
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := debtors[i]
		creditor := creditors[j]

		// Amount to settle is minimum of what debtor owes and creditor is owed
		amount := creditor.remaining
		less, err := debtor.remaining.LessThan(creditor.remaining)
		if err != nil {
			return nil, err
		}
		if less {
			amount = debtor.remaining
		}

		if !amount.IsZero() {
			settlements = append(settlements, Settlement{
				From:   debtor.member,
				To:     creditor.member,
				Amount: amount,
			})
		}

		if debtor.remaining, err = debtor.remaining.Subtract(amount); err != nil {
			return nil, err
		}
		if creditor.remaining, err = creditor.remaining.Subtract(amount); err != nil {
			return nil, err
		}

		if debtor.remaining.IsZero() {
			i++
		}
		if creditor.remaining.IsZero() {
			j++
		}
	}

	return settlements, nil
}

// Verify applies settlements to a copy of the balances and checks that every
// member ends at exactly zero.
func Verify(currency string, balances []MemberBalance, settlements []Settlement) error {
	if err := CheckZeroSum(currency, balances); err != nil {
		return err
	}

	remaining := make(map[string]money.Money, len(balances))
	for _, b := range balances {
		remaining[b.Member.ID] = b.Balance
	}

	for _, s := range settlements {
		if s.From.ID == s.To.ID {
			return fmt.Errorf("%w: transfer from %s to itself", ErrUnbalanced, s.From.ID)
		}
		if !s.Amount.IsPositive() {
			return fmt.Errorf("%w: non-positive transfer %s from %s", ErrUnbalanced, s.Amount, s.From.ID)
		}
		from, ok := remaining[s.From.ID]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownMember, s.From.ID)
		}
		to, ok := remaining[s.To.ID]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownMember, s.To.ID)
		}
		var err error
		if remaining[s.From.ID], err = from.Add(s.Amount); err != nil {
			return err
		}
		if remaining[s.To.ID], err = to.Subtract(s.Amount); err != nil {
			return err
		}
	}

	for _, b := range balances {
		if left := remaining[b.Member.ID]; !left.IsZero() {
			return fmt.Errorf("%w: %s left with %s", ErrUnbalanced, b.Member.ID, left)
		}
	}
	return nil
}

// sortBySignedBalance orders positions ascending by signed minor units.
// All positions share a currency (checked by Settle), so comparing Amount is exact.
func sortBySignedBalance(ps []*position) {
	sort.SliceStable(ps, func(a, b int) bool {
		return ps[a].balance.Amount() < ps[b].balance.Amount()
	})
}
