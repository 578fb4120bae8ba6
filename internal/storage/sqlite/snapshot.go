package sqlite

import (
	"context"
	"fmt"

	"github.com/vixducis/pour-decisions/internal/models"
	"github.com/vixducis/pour-decisions/internal/money"
)

// LoadSnapshot reads everything needed to settle a group in one transaction.
// Members, orders and lines are returned in insertion order. Line prices are
// the referenced item's current price.
func (s *SQLiteStore) LoadSnapshot(ctx context.Context, groupID string) (*models.Snapshot, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	group, err := getGroup(ctx, tx, groupID)
	if err != nil {
		return nil, err
	}
	snapshot := &models.Snapshot{Group: *group}

	if snapshot.Members, err = listMembers(ctx, tx, groupID); err != nil {
		return nil, err
	}

	// Orders
	orderRows, err := tx.QueryContext(ctx,
		"SELECT id, group_id, payer_id, created_at FROM orders WHERE group_id = ? ORDER BY rowid",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	defer orderRows.Close()
	index := make(map[string]int)
	for orderRows.Next() {
		var o models.Order
		if err := orderRows.Scan(&o.ID, &o.GroupID, &o.PayerID, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		index[o.ID] = len(snapshot.Orders)
		snapshot.Orders = append(snapshot.Orders, o)
	}
	if err := orderRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}

	// Lines, priced through the item they reference
	lineRows, err := tx.QueryContext(ctx, `
		SELECT l.id, l.order_id, l.item_id, l.member_id, i.name, i.price_minor
		FROM order_lines l
		JOIN orders o ON o.id = l.order_id
		JOIN items i ON i.id = l.item_id
		WHERE o.group_id = ?
		ORDER BY l.rowid`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get order lines: %w", err)
	}
	defer lineRows.Close()
	for lineRows.Next() {
		var l models.OrderLine
		var price int64
		if err := lineRows.Scan(&l.ID, &l.OrderID, &l.ItemID, &l.MemberID, &l.ItemName, &price); err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		l.Price = money.New(price, group.Currency)
		i, ok := index[l.OrderID]
		if !ok {
			return nil, fmt.Errorf("order line %s references unknown order %s", l.ID, l.OrderID)
		}
		snapshot.Orders[i].Lines = append(snapshot.Orders[i].Lines, l)
	}
	if err := lineRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order lines: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return snapshot, nil
}
