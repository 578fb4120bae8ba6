package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vixducis/pour-decisions/internal/models"
	"github.com/vixducis/pour-decisions/internal/money"
	"github.com/vixducis/pour-decisions/internal/storage"
)

// CreateOrder persists an order and its lines in one transaction.
// Line prices and item names are filled in from the referenced items.
func (s *SQLiteStore) CreateOrder(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.CreatedAt == 0 {
		order.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	group, err := getGroup(ctx, tx, order.GroupID)
	if err != nil {
		return err
	}

	memberIDs := []string{order.PayerID}
	itemIDs := make([]string, 0, len(order.Lines))
	for _, line := range order.Lines {
		memberIDs = append(memberIDs, line.MemberID)
		itemIDs = append(itemIDs, line.ItemID)
	}
	if err := checkMembers(ctx, tx, group.ID, memberIDs); err != nil {
		return err
	}
	items, err := itemsByID(ctx, tx, group, itemIDs)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO orders (id, group_id, payer_id, created_at) VALUES (?, ?, ?, ?)",
		order.ID, order.GroupID, order.PayerID, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for i := range order.Lines {
		line := &order.Lines[i]
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		line.OrderID = order.ID
		item := items[line.ItemID]
		line.ItemName = item.Name
		line.Price = item.Price

		_, err = tx.ExecContext(ctx,
			"INSERT INTO order_lines (id, order_id, item_id, member_id) VALUES (?, ?, ?, ?)",
			line.ID, order.ID, line.ItemID, line.MemberID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteOrder removes an order; its lines are removed by cascade.
func (s *SQLiteStore) DeleteOrder(ctx context.Context, orderID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM orders WHERE id = ?", orderID)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("order %s: %w", orderID, storage.ErrNotFound)
	}
	return nil
}

// checkMembers returns ErrForeignRecord unless every id is a member of the group.
func checkMembers(ctx context.Context, tx *sql.Tx, groupID string, ids []string) error {
	ids = distinct(ids)
	var count int
	err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM members WHERE group_id = ? AND id IN ("+placeholders(len(ids))+")",
		append([]any{groupID}, toArgs(ids)...)...,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check members: %w", err)
	}
	if count != len(ids) {
		return fmt.Errorf("%w: member not in group %s", storage.ErrForeignRecord, groupID)
	}
	return nil
}

// itemsByID loads the referenced items of the group, keyed by ID.
// It returns ErrForeignRecord if any id is missing or belongs to another group.
func itemsByID(ctx context.Context, tx *sql.Tx, group *models.Group, ids []string) (map[string]models.Item, error) {
	ids = distinct(ids)
	items := make(map[string]models.Item, len(ids))
	if len(ids) == 0 {
		return items, nil
	}

	rows, err := tx.QueryContext(ctx,
		"SELECT id, name, price_minor, one_off, created_at FROM items WHERE group_id = ? AND id IN ("+placeholders(len(ids))+")",
		append([]any{group.ID}, toArgs(ids)...)...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item := models.Item{GroupID: group.ID}
		var price int64
		if err := rows.Scan(&item.ID, &item.Name, &price, &item.OneOff, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		item.Price = money.New(price, group.Currency)
		items[item.ID] = item
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	if len(items) != len(ids) {
		return nil, fmt.Errorf("%w: item not in group %s", storage.ErrForeignRecord, group.ID)
	}
	return items, nil
}
