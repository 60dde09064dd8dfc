// locations.go implements create, read, update and delete for locations.
//
// All mutations run inside one transaction: the hierarchy validator (when a
// parent is involved) and the deletion guards read the same state the write
// commits against, and the foreign key backstop fires inside the same
// transaction if a concurrent writer got there first.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/stashhq/stash/internal/validate"
)

// CreateLocation inserts a new location with a caller-supplied id.
func (s *SQLiteStore) CreateLocation(ctx context.Context, id, name, description string, parentID *string) (*Location, error) {
	if err := validate.ID(id); err != nil {
		return nil, err
	}
	name, err := validate.Name(name)
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	loc := &Location{
		ID:          id,
		Name:        name,
		Description: description,
		ParentID:    parentID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.Tx(ctx, func(tx *sql.Tx) error {
		if parentID != nil {
			if err := validateParent(ctx, tx, id, *parentID); err != nil {
				return err
			}
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO locations (id, name, description, parent_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			id, name, nullable(description), parentID, now, now)
		return translateConstraint(opCreateLocation, err)
	})
	if err != nil {
		return nil, err
	}
	return loc, nil
}

// Location retrieves a location by id. Returns ErrNotFound if absent.
func (s *SQLiteStore) Location(ctx context.Context, id string) (*Location, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name, description, parent_id, created_at, updated_at
		FROM locations WHERE id = ?`, id)

	l, err := scanLocation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("location %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scan location: %w", err)
	}
	return &l, nil
}

// UpdateLocation rewrites name, description and parent in place. A non-nil
// parent re-runs the hierarchy validator before the write.
func (s *SQLiteStore) UpdateLocation(ctx context.Context, id, name, description string, parentID *string) (*Location, error) {
	name, err := validate.Name(name)
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	err = s.Tx(ctx, func(tx *sql.Tx) error {
		if parentID != nil {
			if err := validateParent(ctx, tx, id, *parentID); err != nil {
				return err
			}
		}
		res, err := tx.ExecContext(ctx, `UPDATE locations SET name = ?, description = ?, parent_id = ?, updated_at = ?
			WHERE id = ?`,
			name, nullable(description), parentID, now, id)
		if err != nil {
			return translateConstraint(opUpdateLocation, err)
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update location %s: %w", id, err)
		}
		if rows == 0 {
			return fmt.Errorf("location %q: %w", id, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Location(ctx, id)
}

// DeleteLocation removes a location if it has neither children nor items.
// The guards run in the delete's transaction; the foreign key RESTRICT is
// the backstop for writers that slip in between statement and commit.
func (s *SQLiteStore) DeleteLocation(ctx context.Context, id string) error {
	return s.Tx(ctx, func(tx *sql.Tx) error {
		var children int64
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM locations WHERE parent_id = ?`, id).Scan(&children); err != nil {
			return fmt.Errorf("count children of %s: %w", id, err)
		}
		if children > 0 {
			return fmt.Errorf("location %q: %w", id, ErrLocationHasChildren)
		}

		var items int64
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM items WHERE location_id = ?`, id).Scan(&items); err != nil {
			return fmt.Errorf("count items in %s: %w", id, err)
		}
		if items > 0 {
			return fmt.Errorf("location %q: %w", id, ErrLocationHasItems)
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM locations WHERE id = ?`, id)
		if err != nil {
			return translateConstraint(opDeleteLocation, err)
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete location %s: %w", id, err)
		}
		if rows == 0 {
			return fmt.Errorf("location %q: %w", id, ErrNotFound)
		}
		return nil
	})
}

// Children returns the direct children of a location ordered by name.
// Pass "" to list the root locations.
func (s *SQLiteStore) Children(ctx context.Context, id string) ([]Location, error) {
	query := `SELECT id, name, description, parent_id, created_at, updated_at
		FROM locations WHERE parent_id = ? ORDER BY name COLLATE NOCASE`
	args := []any{id}
	if id == "" {
		query = `SELECT id, name, description, parent_id, created_at, updated_at
			FROM locations WHERE parent_id IS NULL ORDER BY name COLLATE NOCASE`
		args = nil
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list children of %q: %w", id, err)
	}
	defer rows.Close()

	return collectLocations(rows)
}

// ChildCount returns the number of direct child locations.
func (s *SQLiteStore) ChildCount(ctx context.Context, id string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM locations WHERE parent_id = ?`, id).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count children of %s: %w", id, err)
	}
	return n, nil
}

// LocationExists checks presence without loading the row. Absence is an
// ordinary false, not an error.
func (s *SQLiteStore) LocationExists(ctx context.Context, id string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM locations WHERE id = ?`, id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check location %s: %w", id, err)
	}
	return n > 0, nil
}

// nullable maps "" to NULL for optional text columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
