// Package store persists locations and items in SQLite and implements the
// ranked full-text search and the hierarchy integrity rules on top of it.
// Consumers depend on the Store interface rather than the SQLite type,
// enabling testing and alternative backends.
package store

import (
	"encoding/json"
	"time"
)

// Location is a node in the location forest. Ids are caller-supplied and
// unique; ParentID is nil for roots and must reference an existing location
// otherwise. The parent relation never forms a cycle - every write that
// touches it runs the hierarchy validator first, with the foreign key as the
// race-safe backstop.
type Location struct {
	ID          string  // Caller-supplied unique identifier
	Name        string  // Display name
	Description string  // Optional free text
	ParentID    *string // Parent location id, nil for roots
	CreatedAt   int64   // Unix timestamp of creation
	UpdatedAt   int64   // Unix timestamp of last modification
}

// Item is a cataloged physical object. Ids are generated; LocationID always
// references an existing location. Properties is an open-ended string→string
// bag, stored as a JSON object ("{}" when absent, never NULL).
type Item struct {
	ID          string            // Generated unique identifier
	Name        string            // Display name
	Description string            // Optional free text
	LocationID  string            // Containing location (foreign key)
	Properties  map[string]string // Open-ended attributes
	CreatedAt   int64             // Unix timestamp of creation
	UpdatedAt   int64             // Unix timestamp of last modification
}

// LocationPage is one slice of a location search plus the total number of
// eligible rows, computed independently of the slice.
type LocationPage struct {
	Locations []Location
	Total     int64
}

// ItemPage is one slice of an item search plus the total eligible count.
type ItemPage struct {
	Items []Item
	Total int64
}

// LocationJSON is the API-friendly representation of a Location with
// RFC3339 timestamps.
type LocationJSON struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	ParentID    *string `json:"parent_id,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// ToJSON converts a Location to its API representation.
func (l *Location) ToJSON() LocationJSON {
	return LocationJSON{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		ParentID:    l.ParentID,
		CreatedAt:   time.Unix(l.CreatedAt, 0).UTC().Format(time.RFC3339),
		UpdatedAt:   time.Unix(l.UpdatedAt, 0).UTC().Format(time.RFC3339),
	}
}

// ItemJSON is the API-friendly representation of an Item. Properties is
// always present, an empty object when the item has none.
type ItemJSON struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	LocationID  string            `json:"location_id"`
	Properties  map[string]string `json:"properties"`
	CreatedAt   string            `json:"created_at"`
	UpdatedAt   string            `json:"updated_at"`
}

// ToJSON converts an Item to its API representation.
func (i *Item) ToJSON() ItemJSON {
	props := i.Properties
	if props == nil {
		props = map[string]string{}
	}
	return ItemJSON{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		LocationID:  i.LocationID,
		Properties:  props,
		CreatedAt:   time.Unix(i.CreatedAt, 0).UTC().Format(time.RFC3339),
		UpdatedAt:   time.Unix(i.UpdatedAt, 0).UTC().Format(time.RFC3339),
	}
}

// MarshalJSON encodes a value with indentation for human-readable CLI
// output. Use instead of json.Marshal when output is displayed to users.
func MarshalJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
