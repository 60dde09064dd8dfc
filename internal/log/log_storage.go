// log_storage.go implements SQLite-backed persistence for audit entries.
//
// Separated from log.go to isolate database concerns: log.go provides the
// fluent builder, this file writes rows. Errors during logging are reported
// to stderr and otherwise ignored - a catalog write should succeed even
// when its audit record cannot be stored.

package log

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
)

// Logger writes audit entries to an audit_log table.
type Logger struct {
	db *sql.DB
}

// New creates a Logger on db, creating the audit_log table if needed. The
// connection is shared with the store; the Logger never closes it.
func New(db *sql.DB) (*Logger, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS audit_log (
		id      INTEGER PRIMARY KEY AUTOINCREMENT,
		start   INTEGER NOT NULL,
		end     INTEGER NOT NULL,
		source  TEXT NOT NULL,
		author  TEXT,
		action  TEXT NOT NULL,
		entity  TEXT,
		success INTEGER NOT NULL,
		error   TEXT,
		detail  TEXT
	)`)
	if err != nil {
		return nil, fmt.Errorf("create audit_log table: %w", err)
	}
	return &Logger{db: db}, nil
}

func (l *Logger) log(e Entry) {
	var detail *string
	if len(e.Detail) > 0 {
		if b, err := json.Marshal(e.Detail); err == nil {
			s := string(b)
			detail = &s
		}
	}

	success := 0
	if e.Success {
		success = 1
	}

	_, err := l.db.Exec(`INSERT INTO audit_log (start, end, source, author, action, entity, success, error, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Start, e.End, e.Source, nilIfEmpty(e.Author), e.Action,
		nilIfEmpty(e.Entity), success, nilIfEmpty(e.Error), detail)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "stash: audit log write failed: %v\n", err)
	}
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
