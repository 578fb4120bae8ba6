package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vixducis/pour-decisions/internal/models"
	"github.com/vixducis/pour-decisions/internal/money"
	"github.com/vixducis/pour-decisions/internal/storage"
)

// CreateItem inserts a priced item into an existing group.
func (s *SQLiteStore) CreateItem(ctx context.Context, item *models.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt == 0 {
		item.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	group, err := getGroup(ctx, tx, item.GroupID)
	if err != nil {
		return err
	}
	if item.Price.Currency() != group.Currency {
		return fmt.Errorf("%w: item priced in %s, group uses %s",
			money.ErrCurrencyMismatch, item.Price.Currency(), group.Currency)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO items (id, group_id, name, price_minor, one_off, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		item.ID, item.GroupID, item.Name, item.Price.Amount(), item.OneOff, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateItemPrice changes the listed price of an item.
func (s *SQLiteStore) UpdateItemPrice(ctx context.Context, itemID string, price money.Money) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var currency string
	err = tx.QueryRowContext(ctx,
		"SELECT g.currency FROM items i JOIN groups g ON g.id = i.group_id WHERE i.id = ?",
		itemID,
	).Scan(&currency)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("item %s: %w", itemID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get item: %w", err)
	}
	if price.Currency() != currency {
		return fmt.Errorf("%w: price in %s, group uses %s", money.ErrCurrencyMismatch, price.Currency(), currency)
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE items SET price_minor = ? WHERE id = ?",
		price.Amount(), itemID,
	); err != nil {
		return fmt.Errorf("failed to update item price: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetItem retrieves an item by ID.
func (s *SQLiteStore) GetItem(ctx context.Context, itemID string) (*models.Item, error) {
	item := &models.Item{}
	var price int64
	var currency string
	err := s.db.QueryRowContext(ctx, `
		SELECT i.id, i.group_id, i.name, i.price_minor, i.one_off, i.created_at, g.currency
		FROM items i JOIN groups g ON g.id = i.group_id
		WHERE i.id = ?`,
		itemID,
	).Scan(&item.ID, &item.GroupID, &item.Name, &price, &item.OneOff, &item.CreatedAt, &currency)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %s: %w", itemID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	item.Price = money.New(price, currency)
	return item, nil
}

// DeleteItem removes an item that belongs to groupID and is not on any order.
func (s *SQLiteStore) DeleteItem(ctx context.Context, groupID, itemID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var lines int
	err = tx.QueryRowContext(ctx, `
		SELECT (SELECT COUNT(*) FROM order_lines WHERE item_id = i.id)
		FROM items i WHERE i.id = ? AND i.group_id = ?`,
		itemID, groupID,
	).Scan(&lines)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("item %s in group %s: %w", itemID, groupID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get item: %w", err)
	}
	if lines > 0 {
		return fmt.Errorf("item %s is on %d order lines: %w", itemID, lines, storage.ErrInUse)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM items WHERE id = ?", itemID); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
