package models

import "github.com/vixducis/pour-decisions/internal/money"

// Item is something that can be ordered, with its current listed price.
type Item struct {
	ID      string
	GroupID string
	Name    string

	// Price is the listed price. Order lines resolve their price through the
	// item, so changing it also changes the value of past lines.
	Price money.Money

	// OneOff marks items created for a single order rather than the group's menu.
	OneOff bool

	CreatedAt int64
}

// Order is a purchase paid by a single member.
type Order struct {
	ID      string
	GroupID string

	// PayerID is the member who funded the order.
	PayerID string

	Lines     []OrderLine
	CreatedAt int64
}

// OrderLine is one item instance on an order.
type OrderLine struct {
	ID      string
	OrderID string
	ItemID  string

	// MemberID is the member who consumed the item.
	MemberID string

	// ItemName and Price are resolved from the referenced item when loaded.
	ItemName string
	Price    money.Money
}
