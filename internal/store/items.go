// items.go implements create, read, update, move and delete for items.
//
// Item ids are generated (UUIDs), so there is no uniqueness failure mode to
// translate; the constraint of interest is the location foreign key, which
// backs the existence check on every write that sets location_id.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stashhq/stash/internal/validate"
)

// CreateItem inserts a new item with a generated id and returns it.
func (s *SQLiteStore) CreateItem(ctx context.Context, name, description, locationID string, properties map[string]string) (*Item, error) {
	name, err := validate.Name(name)
	if err != nil {
		return nil, err
	}
	if err := validate.ID(locationID); err != nil {
		return nil, err
	}
	if err := validate.Properties(properties); err != nil {
		return nil, err
	}

	props, err := marshalProperties(properties)
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	item := &Item{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		LocationID:  locationID,
		Properties:  properties,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.Tx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO items (id, name, description, location_id, properties, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			item.ID, name, nullable(description), locationID, props, now, now)
		return translateConstraint(opWriteItem, err)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Item retrieves an item by id. Returns ErrNotFound if absent.
func (s *SQLiteStore) Item(ctx context.Context, id string) (*Item, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name, description, location_id, properties, created_at, updated_at
		FROM items WHERE id = ?`, id)

	i, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scan item: %w", err)
	}
	return &i, nil
}

// UpdateItem rewrites name, description and the property bag in place.
func (s *SQLiteStore) UpdateItem(ctx context.Context, id, name, description string, properties map[string]string) (*Item, error) {
	name, err := validate.Name(name)
	if err != nil {
		return nil, err
	}
	if err := validate.Properties(properties); err != nil {
		return nil, err
	}
	props, err := marshalProperties(properties)
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	err = s.Tx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE items SET name = ?, description = ?, properties = ?, updated_at = ?
			WHERE id = ?`,
			name, nullable(description), props, now, id)
		if err != nil {
			return translateConstraint(opWriteItem, err)
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update item %s: %w", id, err)
		}
		if rows == 0 {
			return fmt.Errorf("item %q: %w", id, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Item(ctx, id)
}

// MoveItem relocates an item to another location. The foreign key rejects a
// nonexistent destination; translateConstraint reports it as
// ErrLocationNotFound.
func (s *SQLiteStore) MoveItem(ctx context.Context, id, locationID string) (*Item, error) {
	if err := validate.ID(locationID); err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	err := s.Tx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE items SET location_id = ?, updated_at = ? WHERE id = ?`,
			locationID, now, id)
		if err != nil {
			return translateConstraint(opWriteItem, err)
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("move item %s: %w", id, err)
		}
		if rows == 0 {
			return fmt.Errorf("item %q: %w", id, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Item(ctx, id)
}

// DeleteItem removes an item. Returns ErrNotFound if absent.
func (s *SQLiteStore) DeleteItem(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return translateConstraint(opDeleteItem, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete item %s: %w", id, err)
	}
	if rows == 0 {
		return fmt.Errorf("item %q: %w", id, ErrNotFound)
	}
	return nil
}

// ItemsIn returns the items stored in one location ordered by name.
func (s *SQLiteStore) ItemsIn(ctx context.Context, locationID string) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, description, location_id, properties, created_at, updated_at
		FROM items WHERE location_id = ? ORDER BY name COLLATE NOCASE`, locationID)
	if err != nil {
		return nil, fmt.Errorf("list items in %s: %w", locationID, err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// ItemCount returns the number of items stored in one location.
func (s *SQLiteStore) ItemCount(ctx context.Context, locationID string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items WHERE location_id = ?`, locationID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count items in %s: %w", locationID, err)
	}
	return n, nil
}
