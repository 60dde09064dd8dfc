package log_test

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/stashhq/stash/internal/log"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLog_WriteEntry(t *testing.T) {
	db := openDB(t)
	logger, err := log.New(db)
	require.NoError(t, err)
	log.Install(logger)
	defer log.Install(nil)

	log.Event("item:add", "create").
		Author("alice").
		Entity("abc-123").
		Detail("location", "garage").
		Write(nil)

	var source, author, entity, detail string
	var success int
	err = db.QueryRow(`SELECT source, author, entity, success, detail FROM audit_log`).
		Scan(&source, &author, &entity, &success, &detail)
	require.NoError(t, err)
	assert.Equal(t, "item:add", source)
	assert.Equal(t, "alice", author)
	assert.Equal(t, "abc-123", entity)
	assert.Equal(t, 1, success)
	assert.Contains(t, detail, "garage")
}

func TestLog_RecordsFailure(t *testing.T) {
	db := openDB(t)
	logger, err := log.New(db)
	require.NoError(t, err)
	log.Install(logger)
	defer log.Install(nil)

	log.Event("location:rm", "delete").Entity("garage").Write(errors.New("location contains items"))

	var success int
	var errMsg string
	require.NoError(t, db.QueryRow(`SELECT success, error FROM audit_log`).Scan(&success, &errMsg))
	assert.Equal(t, 0, success)
	assert.Contains(t, errMsg, "contains items")
}

// Write must be a safe no-op before Install.
func TestLog_NoLoggerInstalled(t *testing.T) {
	log.Install(nil)
	log.Event("item:add", "create").Write(nil)
}
