package models

// DefaultCurrency is used when a group is created without a currency.
const DefaultCurrency = "EUR"

// Group is a set of people sharing expenses in one fixed currency.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Friday drinks").
	Name string

	// Currency is the ISO 4217 code every amount in the group is expressed in.
	Currency string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// Member is a participant of a group.
type Member struct {
	ID      string
	GroupID string

	// Nickname is how the member is shown in balances and settlements.
	Nickname string

	CreatedAt int64
}

// GroupDetail is a group together with its members and its menu.
type GroupDetail struct {
	Group   Group
	Members []Member

	// Menu holds the items offered for new orders; one-off items are left out.
	Menu []Item
}
