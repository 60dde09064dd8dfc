// Package log provides audit logging for stash operations.
//
// Entries record every mutation and search against the catalog in an
// audit_log table kept in the same database as the data it describes.
//
// Use the fluent builder API to construct and write entries:
//
//	log.Event("item:add", "create").
//		Author(cmd.Author()).
//		Entity(item.ID).
//		Detail("location", item.LocationID).
//		Write(err)
//
// The source parameter follows "{command group}:{command}" for CLI commands
// (e.g. "location:mv", "search:items"). Until Init installs a logger, Write
// is a no-op, which keeps library use and tests quiet.
package log

import (
	"sync"
	"time"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry is a single audit log record.
type Entry struct {
	Source string // e.g. "location:add", "search:items"
	Author string // who performed the action
	Action string // verb: create, update, move, delete, search
	Entity string // id of the location or item acted on

	Start int64 // unix timestamp when Event() was called
	End   int64 // unix timestamp when Write() was called

	Success bool
	Error   string         // error message when the operation failed
	Detail  map[string]any // operation-specific data
}

// Builder constructs an audit entry using a fluent API. Create with
// [Event], chain setters, then call [Builder.Write].
type Builder struct {
	entry Entry
}

// Event starts a new audit entry for an operation.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Author sets who performed the operation.
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// Entity sets the id of the location or item acted on.
func (b *Builder) Entity(id string) *Builder {
	b.entry.Entity = id
	return b
}

// Detail attaches operation-specific data to the entry.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write finalises the entry with the operation's outcome and records it.
// Logging is best-effort: a failed audit write never fails the operation.
func (b *Builder) Write(opErr error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = opErr == nil
	if opErr != nil {
		b.entry.Error = opErr.Error()
	}

	mu.Lock()
	l := global
	mu.Unlock()
	if l == nil {
		return
	}
	l.log(b.entry)
}

// Install makes l the process-wide logger. Pass nil to disable logging.
func Install(l *Logger) {
	mu.Lock()
	global = l
	mu.Unlock()
}
