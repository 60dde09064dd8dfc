// interfaces.go defines the storage abstraction for the catalog.
//
// Separated from the SQLite implementation to enable testing and potential
// alternative backends. The interfaces are granular (Locations, Items,
// Maintainer) so consumers only depend on the capabilities they need.
//
// Design: deletes are physical and guarded. There is no soft-delete - a
// location with children or items cannot be deleted at all, and the checks
// run inside the same transaction as the delete.

package store

import (
	"context"
	"database/sql"
)

// Locations defines operations on the location forest.
type Locations interface {
	// CreateLocation inserts a new location. The id is caller-supplied;
	// a duplicate id returns ErrLocationExists. A non-nil parent is
	// validated against self-parenting, cycles and dangling references
	// before the insert.
	CreateLocation(ctx context.Context, id, name, description string, parentID *string) (*Location, error)

	// Location retrieves a location by id. Returns ErrNotFound if absent.
	Location(ctx context.Context, id string) (*Location, error)

	// UpdateLocation rewrites name, description and parent. A parent
	// change re-runs the hierarchy validator. Returns ErrNotFound if the
	// location does not exist.
	UpdateLocation(ctx context.Context, id, name, description string, parentID *string) (*Location, error)

	// DeleteLocation removes a location. Returns ErrLocationHasChildren or
	// ErrLocationHasItems when the location is not empty; nothing is
	// removed in that case.
	DeleteLocation(ctx context.Context, id string) error

	// Children returns the direct children of a location ordered by name.
	// Pass "" for the root locations.
	Children(ctx context.Context, id string) ([]Location, error)

	// ChildCount returns the number of direct child locations.
	ChildCount(ctx context.Context, id string) (int64, error)

	// LocationExists checks presence without loading the row.
	LocationExists(ctx context.Context, id string) (bool, error)

	// ValidateParent reports whether parentID may become the parent of id:
	// nil on success, ErrSelfParent, ErrParentCycle or ErrParentNotFound
	// otherwise. Create and update run the same check internally; this
	// entry point lets callers pre-validate a move before attempting it.
	ValidateParent(ctx context.Context, id, parentID string) error

	// SearchLocations runs the ranked search over locations. An empty or
	// operator-only term matches everything, ordered by name. offset and
	// limit are validated before any query runs.
	SearchLocations(ctx context.Context, term string, offset, limit int) (*LocationPage, error)
}

// Items defines operations on cataloged items.
type Items interface {
	// CreateItem inserts a new item with a generated id and returns it.
	// The target location must exist (ErrLocationNotFound otherwise).
	CreateItem(ctx context.Context, name, description, locationID string, properties map[string]string) (*Item, error)

	// Item retrieves an item by id. Returns ErrNotFound if absent.
	Item(ctx context.Context, id string) (*Item, error)

	// UpdateItem rewrites name, description and the property bag.
	UpdateItem(ctx context.Context, id, name, description string, properties map[string]string) (*Item, error)

	// MoveItem relocates an item to another location.
	MoveItem(ctx context.Context, id, locationID string) (*Item, error)

	// DeleteItem removes an item. Returns ErrNotFound if absent.
	DeleteItem(ctx context.Context, id string) error

	// ItemsIn returns the items stored in one location ordered by name.
	ItemsIn(ctx context.Context, locationID string) ([]Item, error)

	// ItemCount returns the number of items stored in one location.
	ItemCount(ctx context.Context, locationID string) (int64, error)

	// SearchItems runs the ranked search over items with the same term,
	// eligibility and ordering semantics as SearchLocations.
	SearchItems(ctx context.Context, term string, offset, limit int) (*ItemPage, error)
}

// Maintainer defines database lifecycle operations.
type Maintainer interface {
	// Close releases the database connection.
	Close() error

	// DB exposes the underlying connection for the audit logger and tests.
	DB() *sql.DB
}

// Store is the full persistence interface for the catalog.
type Store interface {
	Locations
	Items
	Maintainer
}
