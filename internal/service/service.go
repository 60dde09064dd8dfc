// Package service defines the application-facing interface for catalog
// operations. Commands (and any future transport layer) depend on this
// interface rather than the concrete store, enabling testing with mocks and
// backend changes without touching callers.
package service

import (
	"context"

	"github.com/stashhq/stash/internal/store"
)

// Service defines all catalog operations.
//
// Obtain an implementation with New and always Close it when done:
//
//	svc, err := service.Open(dbPath)
//	if err != nil {
//	    return err
//	}
//	defer svc.Close()
type Service interface {
	// Close releases database resources.
	Close() error

	// CreateLocation creates a location with a caller-supplied id. A
	// non-nil parent is validated (self-parent, cycle, existence) before
	// anything is written.
	CreateLocation(ctx context.Context, id, name, description string, parentID *string) (*store.Location, error)

	// Location returns a location by id, or store.ErrNotFound.
	Location(ctx context.Context, id string) (*store.Location, error)

	// UpdateLocation rewrites a location's name, description and parent.
	UpdateLocation(ctx context.Context, id, name, description string, parentID *string) (*store.Location, error)

	// MoveLocation re-parents a location, keeping its other fields. Pass
	// nil to make it a root.
	MoveLocation(ctx context.Context, id string, parentID *string) (*store.Location, error)

	// DeleteLocation removes an empty location. Non-empty locations fail
	// with store.ErrLocationHasChildren or store.ErrLocationHasItems and
	// nothing is removed.
	DeleteLocation(ctx context.Context, id string) error

	// Children lists the direct children of a location; "" lists roots.
	Children(ctx context.Context, id string) ([]store.Location, error)

	// ValidateParent checks a proposed re-parenting without performing it.
	ValidateParent(ctx context.Context, id, parentID string) error

	// SearchLocations runs the ranked search over locations. Empty terms
	// match everything ordered by name.
	SearchLocations(ctx context.Context, term string, offset, limit int) (*store.LocationPage, error)

	// CreateItem catalogs a new item in a location.
	CreateItem(ctx context.Context, name, description, locationID string, properties map[string]string) (*store.Item, error)

	// Item returns an item by id, or store.ErrNotFound.
	Item(ctx context.Context, id string) (*store.Item, error)

	// UpdateItem rewrites an item's name, description and property bag.
	UpdateItem(ctx context.Context, id, name, description string, properties map[string]string) (*store.Item, error)

	// MoveItem relocates an item to another location.
	MoveItem(ctx context.Context, id, locationID string) (*store.Item, error)

	// DeleteItem removes an item.
	DeleteItem(ctx context.Context, id string) error

	// ItemsIn lists the items stored in one location.
	ItemsIn(ctx context.Context, locationID string) ([]store.Item, error)

	// SearchItems runs the ranked search over items.
	SearchItems(ctx context.Context, term string, offset, limit int) (*store.ItemPage, error)
}
