// integrity.go translates storage-level constraint failures into domain
// errors.
//
// Every write path runs through translateConstraint, so a raw SQLite
// constraint error never reaches a caller. SQLite names the table and
// column for UNIQUE violations but reports foreign key failures with a
// single generic message, so classification combines a substring mapping
// table (adaptable to other engines' naming conventions) with an operation
// hint that tells a foreign key failure what it must have meant.
//
// The application-level checks (hierarchy validator, deletion guards) are
// advisory and fast-fail; these translations are the race-safe backstop
// behind them.

package store

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound indicates the requested location or item does not exist.
	ErrNotFound = errors.New("not found")
	// ErrLocationExists is returned when creating a location whose
	// caller-supplied id is already taken.
	ErrLocationExists = errors.New("a location with this id already exists")
	// ErrParentNotFound is returned when a location's parent does not exist.
	ErrParentNotFound = errors.New("parent location does not exist")
	// ErrLocationNotFound is returned when an item references a location
	// that does not exist.
	ErrLocationNotFound = errors.New("location does not exist")
	// ErrLocationHasChildren blocks deleting a location with child locations.
	ErrLocationHasChildren = errors.New("location contains child locations and cannot be deleted")
	// ErrLocationHasItems blocks deleting a location that stores items.
	ErrLocationHasItems = errors.New("location contains items and cannot be deleted")
	// ErrSelfParent blocks a location from becoming its own parent.
	ErrSelfParent = errors.New("location cannot be its own parent")
	// ErrParentCycle blocks a location from moving under its own descendant.
	ErrParentCycle = errors.New("location cannot be moved under one of its own descendants")
	// ErrConstraint is the fallback for constraint failures the mapping
	// table does not recognise. It is still a domain error - raw storage
	// errors are never surfaced for constraint violations.
	ErrConstraint = errors.New("constraint violation")
)

// op identifies which write was in flight when a constraint fired. SQLite's
// foreign key errors don't say which key failed, so the operation supplies
// the meaning.
type op int

const (
	opCreateLocation op = iota
	opUpdateLocation
	opDeleteLocation
	opWriteItem
	opDeleteItem
)

// uniqueRules maps constraint-name substrings of UNIQUE violations to
// domain errors. Extend here when adding tables with caller-supplied keys.
var uniqueRules = []struct {
	substr string
	err    error
}{
	{"locations.id", ErrLocationExists},
}

// fkMeaning maps each operation to what a foreign key failure implies for
// it. Deleting a location has no entry: its guards re-check child and item
// counts in-transaction before the delete, so a backstop FK failure there
// falls through to ErrConstraint.
var fkMeaning = map[op]error{
	opCreateLocation: ErrParentNotFound,
	opUpdateLocation: ErrParentNotFound,
	opWriteItem:      ErrLocationNotFound,
}

// translateConstraint classifies a storage error from the given operation.
// Non-constraint errors pass through unchanged; constraint errors always
// come back as one of the sentinel domain errors above.
func translateConstraint(o op, err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if !strings.Contains(msg, "constraint failed") {
		return err
	}

	if strings.Contains(msg, "UNIQUE constraint failed") {
		for _, rule := range uniqueRules {
			if strings.Contains(msg, rule.substr) {
				return rule.err
			}
		}
		return fmt.Errorf("%w: %s", ErrConstraint, msg)
	}

	if strings.Contains(msg, "FOREIGN KEY constraint failed") {
		if meaning, ok := fkMeaning[o]; ok {
			return meaning
		}
		return fmt.Errorf("%w: %s", ErrConstraint, msg)
	}

	return fmt.Errorf("%w: %s", ErrConstraint, msg)
}
