// sqlite.go provides SQLite connection management and low-level helpers.
//
// Separated to isolate SQLite-specific concerns (pragmas, driver
// registration, transaction plumbing) from the catalog logic. This is the
// only file that imports the SQLite driver.
//
// Design: pragmas are set through the DSN rather than with Exec because
// database/sql pools connections - foreign_keys in particular is a
// per-connection setting, and a pooled connection opened later without it
// would silently stop enforcing the integrity backstop.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	// Register sqlite driver
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite in WAL mode, with FTS5 as the
// text-search primitive for the ranked search.
type SQLiteStore struct {
	db *sql.DB
}

// Compile-time interface compliance check: a missing or misdeclared method
// fails the build here instead of at a call site.
var _ Store = (*SQLiteStore)(nil)

// Open opens the SQLite database file at path and returns a configured
// SQLiteStore. The caller should call Close on the returned store.
//
//   - WAL: concurrent readers during writes; each catalog operation is one
//     short transaction, so writer contention is brief.
//   - busy_timeout 5000: wait for a held lock instead of failing with
//     "database is locked"; operations complete in milliseconds.
//   - synchronous NORMAL: safe with WAL, roughly 10x faster than FULL.
//   - foreign_keys ON: the race-safe backstop behind the application-level
//     hierarchy and deletion checks. Must be on for every connection.
func Open(path string) (*SQLiteStore, error) {
	dsn := path + "?_pragma=journal_mode(WAL)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=foreign_keys(1)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	return &SQLiteStore{db: db}, nil
}

// Init creates tables, indexes and the FTS5 search structures if they don't
// exist. Safe to call multiple times.
func (s *SQLiteStore) Init() error {
	return execSchema(s.db)
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying connection for the audit logger and tests.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// Tx executes fn within a database transaction, handling Begin, Commit and
// Rollback. If fn returns an error the transaction is rolled back and the
// error returned unchanged; otherwise the transaction is committed. Rollback
// is deferred so panics and early returns never leave a transaction open.
func (s *SQLiteStore) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// scanner abstracts sql.Row and sql.Rows, enabling one scan function to
// handle both single-row and multi-row queries.
type scanner interface {
	Scan(dest ...any) error
}

// scanLocation extracts a Location from a database row, handling nullable
// fields.
func scanLocation(sc scanner) (Location, error) {
	var l Location
	var desc, parent sql.NullString

	if err := sc.Scan(&l.ID, &l.Name, &desc, &parent, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return l, err
	}
	if desc.Valid {
		l.Description = desc.String
	}
	if parent.Valid {
		l.ParentID = &parent.String
	}
	return l, nil
}

// scanItem extracts an Item from a database row, decoding the property bag.
func scanItem(sc scanner) (Item, error) {
	var i Item
	var desc sql.NullString
	var props string

	if err := sc.Scan(&i.ID, &i.Name, &desc, &i.LocationID, &props, &i.CreatedAt, &i.UpdatedAt); err != nil {
		return i, err
	}
	if desc.Valid {
		i.Description = desc.String
	}
	if err := json.Unmarshal([]byte(props), &i.Properties); err != nil {
		return i, fmt.Errorf("decode properties for item %s: %w", i.ID, err)
	}
	return i, nil
}

// collectLocations iterates over query results into a slice.
func collectLocations(rows *sql.Rows) ([]Location, error) {
	var out []Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// collectItems iterates over query results into a slice.
func collectItems(rows *sql.Rows) ([]Item, error) {
	var out []Item
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

// marshalProperties serializes a property bag. Absent bags become "{}" so
// the column is never NULL and the serialized form is always searchable.
func marshalProperties(props map[string]string) (string, error) {
	if props == nil {
		props = map[string]string{}
	}
	b, err := json.Marshal(props)
	if err != nil {
		return "", fmt.Errorf("encode properties: %w", err)
	}
	return string(b), nil
}
