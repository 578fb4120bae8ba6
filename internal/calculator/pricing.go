package calculator

import (
	"fmt"

	"github.com/vixducis/pour-decisions/internal/money"
)

// Line represents one item instance on an order, attributed to the member who consumed it.
// Price is the referenced item's price at the time the snapshot was loaded.
type Line struct {
	ID       string
	ItemID   string
	MemberID string
	Price    money.Money
}

// Order represents a purchase funded by a single member.
type Order struct {
	ID      string
	PayerID string
	Lines   []Line
}

// Total returns the sum of the order's line prices. An order without lines totals zero.
func (o Order) Total(currency string) (money.Money, error) {
	total, err := SumLines(currency, o.Lines)
	if err != nil {
		return money.Money{}, fmt.Errorf("failed to total order %s: %w", o.ID, err)
	}
	return total, nil
}

// SumLines adds up the prices of the given lines.
func SumLines(currency string, lines []Line) (money.Money, error) {
	prices := make([]money.Money, len(lines))
	for i, l := range lines {
		prices[i] = l.Price
	}
	return money.Sum(currency, prices...)
}

// SumOrders adds up the totals of the given orders.
func SumOrders(currency string, orders []Order) (money.Money, error) {
	totals := make([]money.Money, 0, len(orders))
	for _, o := range orders {
		t, err := o.Total(currency)
		if err != nil {
			return money.Money{}, err
		}
		totals = append(totals, t)
	}
	return money.Sum(currency, totals...)
}
