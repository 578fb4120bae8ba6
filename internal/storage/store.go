// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/vixducis/pour-decisions/internal/models"
	"github.com/vixducis/pour-decisions/internal/money"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForeignRecord is returned when a write references a record that
	// belongs to a different group (or to no group at all).
	ErrForeignRecord = errors.New("record belongs to another group")

	// ErrInUse is returned when deleting a record that others still reference.
	ErrInUse = errors.New("record is still referenced")
)

// Store defines the interface for group expense storage operations.
// This abstraction allows swapping storage backends without changing the
// service layer.
type Store interface {
	// CreateGroup persists a new group. ID, CreatedAt and an empty Currency
	// are filled in by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID. Returns ErrNotFound if absent.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// LoadGroupDetail reads a group with its members in insertion order and
	// its menu: the items that are not one-off, ordered by name.
	LoadGroupDetail(ctx context.Context, groupID string) (*models.GroupDetail, error)

	// ListGroups returns all groups, oldest first.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// AddMember adds a member to an existing group.
	AddMember(ctx context.Context, member *models.Member) error

	// CreateItem adds a priced item to an existing group.
	// The item's price must be in the group's currency, otherwise
	// money.ErrCurrencyMismatch is returned.
	CreateItem(ctx context.Context, item *models.Item) error

	// GetItem retrieves an item by ID, priced in its group's currency.
	GetItem(ctx context.Context, itemID string) (*models.Item, error)

	// UpdateItemPrice changes an item's listed price. Lines referencing the
	// item pick up the new price on the next load.
	UpdateItemPrice(ctx context.Context, itemID string, price money.Money) error

	// DeleteItem removes an item of the given group. It returns ErrNotFound if
	// the item does not belong to the group and ErrInUse if an order line
	// still references it.
	DeleteItem(ctx context.Context, groupID, itemID string) error

	// CreateOrder persists an order with its lines in a single transaction.
	// The payer, every item and every consuming member must belong to the
	// order's group, otherwise ErrForeignRecord is returned.
	CreateOrder(ctx context.Context, order *models.Order) error

	// DeleteOrder removes an order and its lines.
	DeleteOrder(ctx context.Context, orderID string) error

	// LoadSnapshot reads the group, its members and its orders with lines
	// priced at the current item price, all within one transaction.
	LoadSnapshot(ctx context.Context, groupID string) (*models.Snapshot, error)

	// Close releases any resources held by the store.
	Close() error
}
