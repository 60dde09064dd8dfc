// hierarchy.go enforces the location-forest invariant.
//
// The validator runs before any write that sets a parent, inside the same
// transaction as that write, so the chain it walks is at least as new as
// the state the write will see. The walk terminates because the stored tree
// is acyclic - every prior mutation passed through this same check - and
// visits at most depth-of-tree ancestors.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ValidateParent reports whether parentID may become the parent of the
// location id. Returns nil when the move is legal, ErrSelfParent,
// ErrParentNotFound or ErrParentCycle otherwise. id does not need to exist
// yet (create validates the parent of a new location).
func (s *SQLiteStore) ValidateParent(ctx context.Context, id, parentID string) error {
	return s.Tx(ctx, func(tx *sql.Tx) error {
		return validateParent(ctx, tx, id, parentID)
	})
}

// validateParent is the transaction-scoped implementation shared by
// ValidateParent, CreateLocation and UpdateLocation.
func validateParent(ctx context.Context, tx *sql.Tx, id, parentID string) error {
	if parentID == id {
		return fmt.Errorf("location %q: %w", id, ErrSelfParent)
	}

	// Walk the ancestor chain from the proposed parent to a root. The
	// first lookup doubles as the fail-fast existence check: a missing
	// proposed parent is reported here rather than as a foreign key
	// failure at write time.
	current := parentID
	for {
		var parent sql.NullString
		err := tx.QueryRowContext(ctx,
			`SELECT parent_id FROM locations WHERE id = ?`, current).Scan(&parent)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("parent location %q: %w", parentID, ErrParentNotFound)
		}
		if err != nil {
			return fmt.Errorf("walk ancestors of %s: %w", parentID, err)
		}
		if !parent.Valid {
			return nil // reached a root without meeting id
		}
		if parent.String == id {
			return fmt.Errorf("location %q: %w", id, ErrParentCycle)
		}
		current = parent.String
	}
}
